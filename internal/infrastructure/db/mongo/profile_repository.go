package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bountyhq/platform-api/internal/core/domain"
)

const profileCollection = "profiles"

// MongoProfileRepository serves the profile and org-membership lookups
// behind the context builder and the org-admin guard.
type MongoProfileRepository struct {
	profiles *mongo.Collection
	orgs     *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *MongoProfileRepository {
	return &MongoProfileRepository{
		profiles: db.Collection(profileCollection),
		orgs:     db.Collection(orgCollection),
	}
}

type mongoProfile struct {
	UserID   string `bson:"user_id"`
	OrgID    string `bson:"org_id,omitempty"`
	Role     string `bson:"role"`
	Verified bool   `bson:"verified"`
}

func (r *MongoProfileRepository) GetProfile(ctx context.Context, userID string) (domain.Profile, error) {
	var mp mongoProfile
	if err := r.profiles.FindOne(ctx, bson.M{"user_id": userID}).Decode(&mp); err != nil {
		if err == mongo.ErrNoDocuments {
			return domain.Profile{}, domain.ErrProfileNotFound
		}
		return domain.Profile{}, fmt.Errorf("find profile: %w", err)
	}

	return domain.Profile{
		UserID:   mp.UserID,
		OrgID:    mp.OrgID,
		Role:     domain.Role(mp.Role),
		Verified: mp.Verified,
	}, nil
}

func (r *MongoProfileRepository) UpsertProfile(ctx context.Context, profile domain.Profile) error {
	doc := mongoProfile{
		UserID:   profile.UserID,
		OrgID:    profile.OrgID,
		Role:     string(profile.Role),
		Verified: profile.Verified,
	}

	_, err := r.profiles.UpdateOne(ctx,
		bson.M{"user_id": profile.UserID},
		bson.M{"$set": doc},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

// IsOrgAdmin answers membership directly from the organizations
// collection so revocations take effect on the next request.
func (r *MongoProfileRepository) IsOrgAdmin(ctx context.Context, userID, orgID string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(orgID)
	if err != nil {
		return false, nil
	}

	n, err := r.orgs.CountDocuments(ctx, bson.M{"_id": oid, "admin_ids": userID})
	if err != nil {
		return false, fmt.Errorf("org admin lookup: %w", err)
	}
	return n > 0, nil
}

package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bountyhq/platform-api/internal/core/domain"
)

const orgCollection = "organizations"

// MongoOrganizationRepository persists organizations.
type MongoOrganizationRepository struct {
	coll *mongo.Collection
}

func NewOrganizationRepository(db *mongo.Database) *MongoOrganizationRepository {
	return &MongoOrganizationRepository{coll: db.Collection(orgCollection)}
}

type mongoOrganization struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Website   string             `bson:"website,omitempty"`
	AdminIDs  []string           `bson:"admin_ids"`
	CreatedAt int64              `bson:"created_at"`
	UpdatedAt int64              `bson:"updated_at"`
}

func (r *MongoOrganizationRepository) Create(ctx context.Context, org *domain.Organization) (*domain.Organization, error) {
	doc := mongoOrganization{
		ID:        primitive.NewObjectID(),
		Name:      org.Name,
		Website:   org.Website,
		AdminIDs:  org.AdminIDs,
		CreatedAt: org.CreatedAt.Unix(),
		UpdatedAt: org.UpdatedAt.Unix(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrOrgExists
		}
		return nil, fmt.Errorf("insert organization: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *MongoOrganizationRepository) FindByID(ctx context.Context, id string) (*domain.Organization, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrOrgNotFound
	}

	var mo mongoOrganization
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mo); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrOrgNotFound
		}
		return nil, fmt.Errorf("find organization: %w", err)
	}
	return mo.toDomain(), nil
}

func (r *MongoOrganizationRepository) Update(ctx context.Context, org *domain.Organization) (*domain.Organization, error) {
	oid, err := primitive.ObjectIDFromHex(org.ID)
	if err != nil {
		return nil, domain.ErrOrgNotFound
	}

	doc := mongoOrganization{
		ID:        oid,
		Name:      org.Name,
		Website:   org.Website,
		AdminIDs:  org.AdminIDs,
		CreatedAt: org.CreatedAt.Unix(),
		UpdatedAt: org.UpdatedAt.Unix(),
	}

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return nil, fmt.Errorf("update organization: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrOrgNotFound
	}
	return doc.toDomain(), nil
}

func (r *MongoOrganizationRepository) List(ctx context.Context) ([]domain.Organization, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Organization
	for cur.Next(ctx) {
		var mo mongoOrganization
		if err := cur.Decode(&mo); err != nil {
			return nil, fmt.Errorf("decode organization: %w", err)
		}
		out = append(out, *mo.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	return out, nil
}

func (mo mongoOrganization) toDomain() *domain.Organization {
	return &domain.Organization{
		ID:        mo.ID.Hex(),
		Name:      mo.Name,
		Website:   mo.Website,
		AdminIDs:  mo.AdminIDs,
		CreatedAt: unixToTime(mo.CreatedAt),
		UpdatedAt: unixToTime(mo.UpdatedAt),
	}
}

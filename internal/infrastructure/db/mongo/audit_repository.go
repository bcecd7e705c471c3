package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bountyhq/platform-api/internal/core/domain"
)

const auditCollection = "audit_log"

// MongoAuditRepository appends entries to the append-only audit log
// collection. Entries are never updated or deleted.
type MongoAuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *MongoAuditRepository {
	return &MongoAuditRepository{coll: db.Collection(auditCollection)}
}

type mongoAuditEntry struct {
	UserID    string         `bson:"user_id"`
	Action    string         `bson:"action"`
	Entity    string         `bson:"entity"`
	EntityID  string         `bson:"entity_id"`
	Metadata  map[string]any `bson:"metadata,omitempty"`
	Timestamp int64          `bson:"timestamp"`
}

func (r *MongoAuditRepository) Append(ctx context.Context, entry domain.AuditLogEntry) error {
	doc := mongoAuditEntry{
		UserID:    entry.UserID,
		Action:    entry.Action,
		Entity:    entry.Entity,
		EntityID:  entry.EntityID,
		Metadata:  entry.Metadata,
		Timestamp: entry.Timestamp.Unix(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}

package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/evento-nomina/payroll-system/internal/core/domain"
)

const auditCollection = "session_audit"

// MongoAuditRepository appends review decisions to an append-only audit
// trail collection.
type MongoAuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *MongoAuditRepository {
	return &MongoAuditRepository{coll: db.Collection(auditCollection)}
}

type auditDoc struct {
	SessionID string             `bson:"session_id"`
	Status    string             `bson:"status"`
	Actor     string             `bson:"actor"`
	Timestamp primitive.DateTime `bson:"timestamp"`
}

func (r *MongoAuditRepository) Insert(ctx context.Context, event *domain.SessionEvent) error {
	doc := auditDoc{
		SessionID: event.SessionID,
		Status:    string(event.Status),
		Actor:     event.Actor,
		Timestamp: primitive.NewDateTimeFromTime(event.Timestamp),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

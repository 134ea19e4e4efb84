package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/evento-nomina/payroll-system/internal/core/domain"
)

const sessionCollection = "work_sessions"

// MongoReportRepository persists submitted work sessions. The staffing
// event is embedded in the session document.
type MongoReportRepository struct {
	coll *mongo.Collection
}

func NewReportRepository(db *mongo.Database) *MongoReportRepository {
	return &MongoReportRepository{coll: db.Collection(sessionCollection)}
}

func (r *MongoReportRepository) Create(ctx context.Context, session *domain.WorkSession) (*domain.WorkSession, error) {
	doc := sessionDoc{
		AccountID:      session.AccountID,
		EmployeeName:   session.EmployeeName,
		Event:          session.Event,
		StartTime:      primitive.NewDateTimeFromTime(session.StartTime),
		EndTime:        primitive.NewDateTimeFromTime(session.EndTime),
		TotalHours:     session.TotalHours,
		HourlyRate:     session.HourlyRate,
		Status:         session.Status,
		Notes:          session.Notes,
		IdempotencyKey: session.IdempotencyKey,
		CreatedAt:      primitive.NewDateTimeFromTime(session.CreatedAt),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert work session: %w", err)
	}

	created := *session
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoReportRepository) FindByID(ctx context.Context, id string) (*domain.WorkSession, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrReportNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoReportRepository) FindByIdempotencyKey(ctx context.Context, key string) (*domain.WorkSession, error) {
	return r.findOne(ctx, bson.M{"idempotency_key": key})
}

func (r *MongoReportRepository) findOne(ctx context.Context, filter bson.M) (*domain.WorkSession, error) {
	var doc sessionDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrReportNotFound
		}
		return nil, fmt.Errorf("find work session: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns all work sessions, newest first.
func (r *MongoReportRepository) List(ctx context.Context) ([]domain.WorkSession, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list work sessions: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []sessionDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode work sessions: %w", err)
	}

	sessions := make([]domain.WorkSession, 0, len(docs))
	for i := range docs {
		sessions = append(sessions, *docs[i].toDomain())
	}
	return sessions, nil
}

func (r *MongoReportRepository) UpdateStatus(ctx context.Context, id string, status domain.SessionStatus) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrReportNotFound
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("update work session status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrReportNotFound
	}
	return nil
}

// sessionDoc mirrors domain.WorkSession with a mongo ObjectID primary key.
type sessionDoc struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty"`
	AccountID      string               `bson:"account_id"`
	EmployeeName   string               `bson:"employee_name"`
	Event          domain.Event         `bson:"event"`
	StartTime      primitive.DateTime   `bson:"start_time"`
	EndTime        primitive.DateTime   `bson:"end_time"`
	TotalHours     float64              `bson:"total_hours"`
	HourlyRate     float64              `bson:"hourly_rate"`
	Status         domain.SessionStatus `bson:"status"`
	Notes          string               `bson:"notes,omitempty"`
	IdempotencyKey string               `bson:"idempotency_key,omitempty"`
	CreatedAt      primitive.DateTime   `bson:"created_at"`
}

func (d *sessionDoc) toDomain() *domain.WorkSession {
	return &domain.WorkSession{
		ID:             d.ID.Hex(),
		AccountID:      d.AccountID,
		EmployeeName:   d.EmployeeName,
		Event:          d.Event,
		StartTime:      d.StartTime.Time().UTC(),
		EndTime:        d.EndTime.Time().UTC(),
		TotalHours:     d.TotalHours,
		HourlyRate:     d.HourlyRate,
		Status:         d.Status,
		Notes:          d.Notes,
		IdempotencyKey: d.IdempotencyKey,
		CreatedAt:      d.CreatedAt.Time().UTC(),
	}
}

package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/evento-nomina/payroll-system/internal/core/domain"
)

const accountCollection = "accounts"

// MongoAccountRepository stores accounts with the profile embedded in
// the same document, so signup creates both atomically.
type MongoAccountRepository struct {
	coll *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *MongoAccountRepository {
	return &MongoAccountRepository{coll: db.Collection(accountCollection)}
}

// EnsureIndexes creates the unique email index duplicate detection
// relies on. Call once at startup.
func (r *MongoAccountRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

type mongoProfile struct {
	Role     string `bson:"role"`
	FullName string `bson:"full_name,omitempty"`
}

type mongoAccount struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Profile      mongoProfile       `bson:"profile"`
	CreatedAt    int64              `bson:"created_at"`
	UpdatedAt    int64              `bson:"updated_at"`
}

func (r *MongoAccountRepository) Create(ctx context.Context, account *domain.Account, profile *domain.Profile) (*domain.Account, *domain.Profile, error) {
	now := time.Now().UTC().Unix()
	doc := mongoAccount{
		Email:        account.Email,
		PasswordHash: account.PasswordHash,
		Profile: mongoProfile{
			Role:     profile.Role,
			FullName: profile.FullName,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, nil, domain.ErrUserExists
		}
		return nil, nil, fmt.Errorf("insert account: %w", err)
	}

	id, _ := res.InsertedID.(primitive.ObjectID)
	doc.ID = id
	created, createdProfile := doc.toDomain()
	return created, createdProfile, nil
}

func (r *MongoAccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, *domain.Profile, error) {
	var doc mongoAccount
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil, domain.ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("find account: %w", err)
	}
	account, profile := doc.toDomain()
	return account, profile, nil
}

func (r *MongoAccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, *domain.Profile, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil, domain.ErrUserNotFound
	}

	var doc mongoAccount
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil, domain.ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("find account: %w", err)
	}
	account, profile := doc.toDomain()
	return account, profile, nil
}

func (d *mongoAccount) toDomain() (*domain.Account, *domain.Profile) {
	id := d.ID.Hex()
	account := &domain.Account{
		ID:           id,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		CreatedAt:    unixToTime(d.CreatedAt),
		UpdatedAt:    unixToTime(d.UpdatedAt),
	}
	profile := &domain.Profile{
		AccountID: id,
		Role:      d.Profile.Role,
		FullName:  d.Profile.FullName,
		CreatedAt: unixToTime(d.CreatedAt),
		UpdatedAt: unixToTime(d.UpdatedAt),
	}
	return account, profile
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}

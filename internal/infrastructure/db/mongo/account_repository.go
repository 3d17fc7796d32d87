package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/identitylab/account-system/internal/core/domain"
)

const accountCollection = "accounts"

// MongoAccountRepository is the directory adapter for deployments where
// accounts live in a shared MongoDB directory instead of process memory.
type MongoAccountRepository struct {
	coll *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *MongoAccountRepository {
	return &MongoAccountRepository{coll: db.Collection(accountCollection)}
}

type mongoAccount struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Email          string             `bson:"email"`
	PhoneNumber    string             `bson:"phone_number,omitempty"`
	AvatarURL      string             `bson:"avatar_url,omitempty"`
	CredentialHash string             `bson:"credential_hash"`
	Role           string             `bson:"role"`
	CreatedAt      int64              `bson:"created_at"`

	SessionToken     string `bson:"session_token,omitempty"`
	SessionExpiresAt int64  `bson:"session_expires_at,omitempty"`
	LastLoginAt      int64  `bson:"last_login_at,omitempty"`
	LoginCount       int    `bson:"login_count"`
}

func (r *MongoAccountRepository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	doc := mongoAccount{
		Email:          account.Email,
		PhoneNumber:    account.PhoneNumber,
		AvatarURL:      account.AvatarURL,
		CredentialHash: account.CredentialHash,
		Role:           account.Role,
		CreatedAt:      account.CreatedAt.Unix(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAccountExists
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}

	// fetch back to get the assigned ID
	return r.FindByEmail(ctx, account.Email)
}

func (r *MongoAccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoAccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAccountNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoAccountRepository) SaveSession(ctx context.Context, account *domain.Account) error {
	oid, err := primitive.ObjectIDFromHex(account.ID)
	if err != nil {
		return domain.ErrAccountNotFound
	}

	session := account.Session()
	update := bson.M{"$set": bson.M{
		"session_token":      session.Token,
		"session_expires_at": unixOrZero(session.ExpiresAt),
		"last_login_at":      unixOrZero(session.LastLoginAt),
		"login_count":        session.LoginCount,
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *MongoAccountRepository) SaveProfile(ctx context.Context, account *domain.Account) error {
	oid, err := primitive.ObjectIDFromHex(account.ID)
	if err != nil {
		return domain.ErrAccountNotFound
	}

	update := bson.M{"$set": bson.M{
		"phone_number": account.PhoneNumber,
		"avatar_url":   account.AvatarURL,
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *MongoAccountRepository) findOne(ctx context.Context, filter bson.M) (*domain.Account, error) {
	var ma mongoAccount
	if err := r.coll.FindOne(ctx, filter).Decode(&ma); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}

	account := &domain.Account{
		ID:             ma.ID.Hex(),
		Email:          ma.Email,
		PhoneNumber:    ma.PhoneNumber,
		AvatarURL:      ma.AvatarURL,
		CredentialHash: ma.CredentialHash,
		Role:           ma.Role,
		CreatedAt:      unixToTime(ma.CreatedAt),
	}
	account.RestoreSession(domain.Session{
		Token:       ma.SessionToken,
		ExpiresAt:   unixToTime(ma.SessionExpiresAt),
		LastLoginAt: unixToTime(ma.LastLoginAt),
		LoginCount:  ma.LoginCount,
	})
	return account, nil
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}

func unixOrZero(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

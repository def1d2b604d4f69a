package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/barcrafted/bar-system/internal/core/domain"
)

const tokensCollection = "password_tokens"

// TokenRepository stores one-time password tokens. Redemption is a single
// conditional write; there is no read-then-write anywhere in this file.
type TokenRepository struct {
	coll *mongo.Collection
}

func NewTokenRepository(db *mongo.Database) *TokenRepository {
	return &TokenRepository{coll: db.Collection(tokensCollection)}
}

type mongoToken struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    int64              `bson:"user_id"`
	Purpose   string             `bson:"purpose"`
	TokenHash string             `bson:"token_hash"`
	ExpiresAt time.Time          `bson:"expires_at"`
	UsedAt    *time.Time         `bson:"used_at"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (r *TokenRepository) Create(ctx context.Context, t *domain.PasswordToken) (*domain.PasswordToken, error) {
	doc := mongoToken{
		ID:        primitive.NewObjectID(),
		UserID:    t.UserID,
		Purpose:   string(t.Purpose),
		TokenHash: t.TokenHash,
		ExpiresAt: t.ExpiresAt.UTC(),
		CreatedAt: t.CreatedAt.UTC(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert token: %w", err)
	}
	t.ID = doc.ID.Hex()
	return t, nil
}

func (r *TokenRepository) FindByID(ctx context.Context, id string, purpose domain.TokenPurpose) (*domain.PasswordToken, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}
	return r.findOne(ctx, bson.M{"_id": oid, "purpose": string(purpose)})
}

func (r *TokenRepository) FindByHash(ctx context.Context, tokenHash string, purpose domain.TokenPurpose) (*domain.PasswordToken, error) {
	return r.findOne(ctx, bson.M{"token_hash": tokenHash, "purpose": string(purpose)})
}

func (r *TokenRepository) FindByUserAndHash(ctx context.Context, userID int64, tokenHash string, purpose domain.TokenPurpose) (*domain.PasswordToken, error) {
	return r.findOne(ctx, bson.M{"user_id": userID, "token_hash": tokenHash, "purpose": string(purpose)})
}

// MarkUsed flips used_at in one conditional update guarded by "still
// unused". ModifiedCount tells the caller whether it won the race; two
// concurrent redeemers can never both see true.
func (r *TokenRepository) MarkUsed(ctx context.Context, id string, now time.Time) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, domain.ErrTokenInvalid
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "used_at": nil},
		bson.M{"$set": bson.M{"used_at": now.UTC()}},
	)
	if err != nil {
		return false, fmt.Errorf("mark token used: %w", err)
	}
	return res.ModifiedCount == 1, nil
}

func (r *TokenRepository) MarkAllUnused(ctx context.Context, userID int64, purpose domain.TokenPurpose, now time.Time) error {
	_, err := r.coll.UpdateMany(ctx,
		bson.M{"user_id": userID, "purpose": string(purpose), "used_at": nil},
		bson.M{"$set": bson.M{"used_at": now.UTC()}},
	)
	if err != nil {
		return fmt.Errorf("invalidate tokens: %w", err)
	}
	return nil
}

func (r *TokenRepository) findOne(ctx context.Context, filter bson.M) (*domain.PasswordToken, error) {
	var mt mongoToken
	if err := r.coll.FindOne(ctx, filter).Decode(&mt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrTokenInvalid
		}
		return nil, fmt.Errorf("find token: %w", err)
	}
	return &domain.PasswordToken{
		ID:        mt.ID.Hex(),
		UserID:    mt.UserID,
		Purpose:   domain.TokenPurpose(mt.Purpose),
		TokenHash: mt.TokenHash,
		ExpiresAt: mt.ExpiresAt,
		UsedAt:    mt.UsedAt,
		CreatedAt: mt.CreatedAt,
	}, nil
}

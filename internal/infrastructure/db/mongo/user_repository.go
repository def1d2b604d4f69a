package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/barcrafted/bar-system/internal/core/domain"
)

const usersCollection = "users"

// UserRepository is the user half of the credential store, backed by the
// users collection with a numeric id sequence.
type UserRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{db: db, coll: db.Collection(usersCollection)}
}

type mongoUser struct {
	ID           int64    `bson:"_id"`
	Email        string   `bson:"email"`
	Login        string   `bson:"login"`
	Name         string   `bson:"name"`
	Roles        []string `bson:"roles"`
	PasswordHash string   `bson:"password_hash,omitempty"`
	BarID        *int64   `bson:"bar_id,omitempty"`
	BarRef       string   `bson:"bar_ref,omitempty"`
	CreatedAt    int64    `bson:"created_at"`
	UpdatedAt    int64    `bson:"updated_at"`
}

// EnsureIndexes creates the unique indexes duplicate detection relies on.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "login", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return fmt.Errorf("user indexes: %w", err)
	}
	return nil
}

// FindByIdentifier matches email, login, or display name exactly.
func (r *UserRepository) FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	filter := bson.M{"$or": []bson.M{
		{"email": identifier},
		{"login": identifier},
		{"name": identifier},
	}}
	return r.findOne(ctx, filter)
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := r.checkConstraints(user); err != nil {
		return nil, err
	}

	id, err := nextSequence(ctx, r.db, usersCollection)
	if err != nil {
		return nil, err
	}
	user.ID = id

	if _, err := r.coll.InsertOne(ctx, toMongoUser(user)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) Save(ctx context.Context, user *domain.User) error {
	if err := r.checkConstraints(user); err != nil {
		return err
	}

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": user.ID}, toMongoUser(user))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("save user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// checkConstraints is the adapter-side refusal: a record violating the role
// constraints never reaches the collection, whatever the caller forgot.
func (r *UserRepository) checkConstraints(user *domain.User) error {
	return domain.ValidateRoleConstraints(user.Roles, user.HasPassword(), user.HasWorkplace())
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return fromMongoUser(&mu), nil
}

func toMongoUser(u *domain.User) *mongoUser {
	return &mongoUser{
		ID:           u.ID,
		Email:        u.Email,
		Login:        u.Login,
		Name:         u.Name,
		Roles:        u.Roles,
		PasswordHash: u.PasswordHash,
		BarID:        u.BarID,
		BarRef:       u.BarRef,
		CreatedAt:    u.CreatedAt.Unix(),
		UpdatedAt:    u.UpdatedAt.Unix(),
	}
}

func fromMongoUser(mu *mongoUser) *domain.User {
	return &domain.User{
		ID:           mu.ID,
		Email:        mu.Email,
		Login:        mu.Login,
		Name:         mu.Name,
		Roles:        mu.Roles,
		PasswordHash: mu.PasswordHash,
		BarID:        mu.BarID,
		BarRef:       mu.BarRef,
		CreatedAt:    unixToTime(mu.CreatedAt),
		UpdatedAt:    unixToTime(mu.UpdatedAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}

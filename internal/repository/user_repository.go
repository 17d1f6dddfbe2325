package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/evalpoint/evalpoint-backend/internal/model"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Sentinel errors returned by the user store.
var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

const usersCollection = "users"

// UserRepository handles user data access against MongoDB.
type UserRepository struct {
	coll *mongo.Collection
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

// EnsureIndexes provisions the unique email index plus the secondary query
// indexes. Safe to call on every startup.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "role", Value: 1}}},
		{Keys: bson.D{{Key: "isActive", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}
	return nil
}

// FindByEmail retrieves a user by their lowercased email. The password digest
// is only included when includeHash is set, mirroring the credential lookup
// path; every other read leaves the digest out of the loaded document.
func (r *UserRepository) FindByEmail(ctx context.Context, email string, includeHash bool) (*model.User, error) {
	opts := options.FindOne()
	if !includeHash {
		opts = opts.SetProjection(bson.M{"password": 0})
	}

	u := &model.User{}
	err := r.coll.FindOne(ctx, bson.M{"email": email}, opts).Decode(u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

// FindByID retrieves a user by their hex ID. The password digest is only
// included when includeHash is set (password-change verification).
func (r *UserRepository) FindByID(ctx context.Context, id string, includeHash bool) (*model.User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	opts := options.FindOne()
	if !includeHash {
		opts = opts.SetProjection(bson.M{"password": 0})
	}

	u := &model.User{}
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}, opts).Decode(u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

// Insert persists a new user and fills in its ID and timestamps. A unique
// index violation on email is reported as ErrDuplicateEmail so concurrent
// registrations of the same address resolve to exactly one winner.
func (r *UserRepository) Insert(ctx context.Context, u *model.User) error {
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}

	if oid, ok := res.InsertedID.(bson.ObjectID); ok {
		u.ID = oid
	}
	return nil
}

// Update applies a partial field update and returns the updated document
// (without the password digest).
func (r *UserRepository) Update(ctx context.Context, id string, fields map[string]interface{}) (*model.User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	for k, v := range fields {
		set[k] = v
	}

	u := &model.User{}
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().
			SetReturnDocument(options.After).
			SetProjection(bson.M{"password": 0}),
	).Decode(u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return u, nil
}

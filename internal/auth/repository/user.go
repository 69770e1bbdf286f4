package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	autherrors "github.com/Prasi710/Turffy/internal/auth/errors"
	migrations "github.com/Prasi710/Turffy/internal/migrations/mongo"
	"github.com/Prasi710/Turffy/pkg/config"
	"github.com/Prasi710/Turffy/pkg/model"
)

type UserRepository interface {
	FindOrCreateByPhone(ctx context.Context, phone, newUserID string) (*model.User, error)
	FindByUserID(ctx context.Context, userID string) (*model.User, error)
	UpdateProfile(ctx context.Context, userID string, update *model.ProfileUpdate) (*model.User, error)
}

type mongoUserRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoUserRepository(cfg *config.Config) UserRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoUserRepository{
		cfg:        cfg,
		collection: db.Collection(migrations.UsersCollection),
	}
}

func (r *mongoUserRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		return context.WithTimeout(ctx, time.Until(deadline))
	}
	return context.WithTimeout(ctx, timeout)
}

// FindOrCreateByPhone returns the existing user for a phone number or
// creates one atomically. The unique index on phone guarantees two
// concurrent first logins resolve to the same user document.
func (r *mongoUserRepository) FindOrCreateByPhone(ctx context.Context, phone, newUserID string) (*model.User, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.MongoWriteTimeout)
	defer cancel()

	filter := bson.M{"phone": phone}
	update := bson.M{
		"$setOnInsert": bson.M{
			"user_id":    newUserID,
			"phone":      phone,
			"name":       "",
			"email":      "",
			"dob":        "",
			"created_at": time.Now().UTC().Truncate(time.Millisecond),
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var user model.User
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to find or create user: %w", err)
	}

	return &user, nil
}

func (r *mongoUserRepository) FindByUserID(ctx context.Context, userID string) (*model.User, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.MongoReadTimeout)
	defer cancel()

	var user model.User
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, autherrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &user, nil
}

func (r *mongoUserRepository) UpdateProfile(ctx context.Context, userID string, update *model.ProfileUpdate) (*model.User, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.MongoWriteTimeout)
	defer cancel()

	filter := bson.M{"user_id": userID}
	set := bson.M{
		"$set": bson.M{
			"name":       update.Name,
			"email":      update.Email,
			"dob":        update.DOB,
			"updated_at": time.Now().UTC().Truncate(time.Millisecond),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user model.User
	if err := r.collection.FindOneAndUpdate(ctx, filter, set, opts).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, autherrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return &user, nil
}

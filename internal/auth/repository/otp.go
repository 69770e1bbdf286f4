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

// OtpRepository persists one-time login codes keyed by phone number.
// Storage-side expiry comes from the TTL index on expires_at; the
// expiry check on read covers the window before the reaper runs.
type OtpRepository interface {
	Save(ctx context.Context, code *model.OtpCode) error
	Consume(ctx context.Context, phone, code string) error
}

type mongoOtpRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoOtpRepository(cfg *config.Config) OtpRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoOtpRepository{
		cfg:        cfg,
		collection: db.Collection(migrations.OtpCodesCollection),
	}
}

func (r *mongoOtpRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		return context.WithTimeout(ctx, time.Until(deadline))
	}
	return context.WithTimeout(ctx, timeout)
}

// Save replaces any outstanding code for the phone; re-requesting a
// code invalidates the previous one.
func (r *mongoOtpRepository) Save(ctx context.Context, code *model.OtpCode) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.MongoWriteTimeout)
	defer cancel()

	code.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": code.Phone}, code, opts); err != nil {
		return fmt.Errorf("failed to save login code: %w", err)
	}
	return nil
}

// Consume validates and deletes the code in one conditional delete, so
// a code can be redeemed at most once.
func (r *mongoOtpRepository) Consume(ctx context.Context, phone, code string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.MongoWriteTimeout)
	defer cancel()

	filter := bson.M{
		"_id":        phone,
		"code":       code,
		"expires_at": bson.M{"$gt": time.Now().UTC()},
	}

	var stored model.OtpCode
	err := r.collection.FindOneAndDelete(ctx, filter).Decode(&stored)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return autherrors.ErrCodeMismatch
		}
		return fmt.Errorf("failed to consume login code: %w", err)
	}

	return nil
}

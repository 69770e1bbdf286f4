package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	bookingserrors "github.com/Prasi710/Turffy/internal/bookings/errors"
	migrations "github.com/Prasi710/Turffy/internal/migrations/mongo"
	"github.com/Prasi710/Turffy/pkg/config"
	"github.com/Prasi710/Turffy/pkg/model"
)

type BookingRepository interface {
	CreatePending(ctx context.Context, booking *model.Booking) error
	DeleteBatch(ctx context.Context, orderID string, bookingIDs []string) error
	FindActiveByTurfAndDate(ctx context.Context, turfID, date string) ([]*model.Booking, error)
	ConfirmOwned(ctx context.Context, userID string, bookingIDs []string, paymentID string, confirmedAt time.Time) (int64, error)
	FindOwnedByBookingIDs(ctx context.Context, userID string, bookingIDs []string) ([]*model.Booking, error)
	FindByUser(ctx context.Context, userID string) ([]*model.Booking, error)
}

type mongoBookingRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		cfg:        cfg,
		collection: db.Collection(migrations.BookingsCollection),
	}
}

func (r *mongoBookingRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		return context.WithTimeout(ctx, time.Until(deadline))
	}
	return context.WithTimeout(ctx, timeout)
}

// CreatePending inserts one hold. The partial unique index on
// (turf_id, date, slot_id) over active statuses decides the race:
// whichever concurrent insert lands second gets ErrSlotTaken. There is
// deliberately no availability pre-check here.
func (r *mongoBookingRepository) CreatePending(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.MongoWriteTimeout)
	defer cancel()

	booking.Status = model.BookingStatusPending
	booking.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	if _, err := r.collection.InsertOne(ctx, booking); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return bookingserrors.ErrSlotTaken
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// DeleteBatch removes still-pending rows of a hold batch after the
// batch was rejected part-way. Confirmed rows are never touched.
func (r *mongoBookingRepository) DeleteBatch(ctx context.Context, orderID string, bookingIDs []string) error {
	if len(bookingIDs) == 0 {
		return nil
	}

	ctx, cancel := r.withTimeout(ctx, r.cfg.MongoWriteTimeout)
	defer cancel()

	filter := bson.M{
		"order_id":   orderID,
		"booking_id": bson.M{"$in": bookingIDs},
		"status":     model.BookingStatusPending,
	}
	if _, err := r.collection.DeleteMany(ctx, filter); err != nil {
		return fmt.Errorf("failed to delete booking batch: %w", err)
	}
	return nil
}

// FindActiveByTurfAndDate returns every booking holding a slot on the
// calendar, pending and confirmed alike.
func (r *mongoBookingRepository) FindActiveByTurfAndDate(ctx context.Context, turfID, date string) ([]*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.MongoReadTimeout)
	defer cancel()

	filter := bson.M{
		"turf_id": turfID,
		"date":    date,
		"status":  bson.M{"$in": model.ActiveStatuses},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*model.Booking
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, nil
}

// ConfirmOwned promotes the caller's pending bookings in the ID list to
// confirmed in a single atomic update. IDs owned by other users match
// nothing; already-confirmed rows match nothing, which makes retries of
// the same confirmation a no-op.
func (r *mongoBookingRepository) ConfirmOwned(ctx context.Context, userID string, bookingIDs []string, paymentID string, confirmedAt time.Time) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.MongoWriteTimeout)
	defer cancel()

	filter := bson.M{
		"booking_id": bson.M{"$in": bookingIDs},
		"user_id":    userID,
		"status":     model.BookingStatusPending,
	}
	update := bson.M{
		"$set": bson.M{
			"status":       model.BookingStatusConfirmed,
			"payment_id":   paymentID,
			"confirmed_at": confirmedAt,
		},
	}

	result, err := r.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to confirm bookings: %w", err)
	}
	return result.ModifiedCount, nil
}

func (r *mongoBookingRepository) FindOwnedByBookingIDs(ctx context.Context, userID string, bookingIDs []string) ([]*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.MongoReadTimeout)
	defer cancel()

	filter := bson.M{
		"booking_id": bson.M{"$in": bookingIDs},
		"user_id":    userID,
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*model.Booking
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, nil
}

func (r *mongoBookingRepository) FindByUser(ctx context.Context, userID string) ([]*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.MongoReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*model.Booking
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, nil
}

package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"

	bookingserrors "github.com/Prasi710/Turffy/internal/bookings/errors"
	"github.com/Prasi710/Turffy/internal/bookings/repository"
	"github.com/Prasi710/Turffy/internal/bookings/validator"
	turfserrors "github.com/Prasi710/Turffy/internal/turfs/errors"
	turfsrepository "github.com/Prasi710/Turffy/internal/turfs/repository"
	apperrors "github.com/Prasi710/Turffy/pkg/errors"
	"github.com/Prasi710/Turffy/pkg/events"
	"github.com/Prasi710/Turffy/pkg/logger"
	"github.com/Prasi710/Turffy/pkg/model"
	"github.com/Prasi710/Turffy/pkg/payment"
)

// HoldResult is what the client needs to launch the processor checkout:
// the order to pay and the bookings the payment will confirm.
type HoldResult struct {
	OrderID    string   `json:"orderId"`
	Amount     int64    `json:"amount"`
	Currency   string   `json:"currency"`
	BookingIDs []string `json:"bookingIds"`
}

type BookingService interface {
	Availability(ctx context.Context, turfID, date string) ([]*model.Slot, error)
	CreateHold(ctx context.Context, userID string, req *validator.HoldRequest) (*HoldResult, error)
	Confirm(ctx context.Context, userID string, req *validator.ConfirmRequest) ([]*model.Booking, error)
	MyBookings(ctx context.Context, userID string) ([]*model.Booking, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	turfs     turfsrepository.TurfRepository
	calendar  *Calendar
	gateway   payment.Gateway
	publisher events.Publisher
	validator *validator.BookingValidator
	log       *logger.Logger
	now       func() time.Time
}

func NewBookingService(
	repo repository.BookingRepository,
	turfs turfsrepository.TurfRepository,
	calendar *Calendar,
	gateway payment.Gateway,
	publisher events.Publisher,
	log *logger.Logger,
) BookingService {
	return &bookingService{
		repo:      repo,
		turfs:     turfs,
		calendar:  calendar,
		gateway:   gateway,
		publisher: publisher,
		validator: validator.NewBookingValidator(),
		log:       log,
		now:       time.Now,
	}
}

// Availability overlays active holds onto the calendar's slot universe.
// The flags here are advisory; the uniqueness index is what actually
// arbitrates a race between two holds.
func (s *bookingService) Availability(ctx context.Context, turfID, date string) ([]*model.Slot, error) {
	if _, err := s.turfs.FindByID(ctx, turfID); err != nil {
		if errors.Is(err, turfserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("turf", turfID)
		}
		return nil, apperrors.Internal("failed to look up turf", err)
	}

	slots := s.calendar.Slots(date, s.now())
	if len(slots) == 0 {
		return slots, nil
	}

	active, err := s.repo.FindActiveByTurfAndDate(ctx, turfID, date)
	if err != nil {
		return nil, apperrors.Internal("failed to load bookings", err)
	}

	taken := make(map[string]struct{}, len(active))
	for _, b := range active {
		taken[b.SlotID] = struct{}{}
	}
	for _, slot := range slots {
		if _, ok := taken[slot.ID]; ok {
			slot.Available = false
		}
	}

	return slots, nil
}

// CreateHold opens pending bookings for the requested slots behind a
// fresh processor order. The order is created before any row is
// written, so a processor failure leaves no state behind. Rows are then
// inserted one by one; the first slot already held aborts the batch and
// releases the rows written so far.
func (s *bookingService) CreateHold(ctx context.Context, userID string, req *validator.HoldRequest) (*HoldResult, error) {
	if err := s.validator.ValidateHoldRequest(req); err != nil {
		return nil, apperrors.Validation("Invalid booking request", map[string]any{"errors": err.Error()})
	}
	if err := validator.ValidateSlotCount(req.Slots, s.calendar.openingHour, s.calendar.closingHour); err != nil {
		return nil, apperrors.Validation("Invalid booking request", map[string]any{"errors": err.Error()})
	}

	turf, err := s.turfs.FindByID(ctx, req.TurfID)
	if err != nil {
		if errors.Is(err, turfserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("turf", req.TurfID)
		}
		return nil, apperrors.Internal("failed to look up turf", err)
	}

	// Slot IDs are canonicalized before the duplicate check and before
	// storage: the uniqueness index keys on the raw slot_id string, so a
	// zero-padded variant of a generated ID must never reach the store
	// as a distinct key.
	now := s.now()
	seen := make(map[string]struct{}, len(req.Slots))
	slotIDs := make([]string, 0, len(req.Slots))
	for _, slotID := range req.Slots {
		date, hour, err := s.calendar.ParseSlotID(slotID)
		if err != nil {
			return nil, apperrors.InvalidInput("Invalid slot ID: " + slotID)
		}
		if date != req.Date {
			return nil, apperrors.InvalidInput("Slot " + slotID + " does not belong to date " + req.Date)
		}
		if s.calendar.Started(date, hour, now) {
			return nil, apperrors.InvalidInput("Slot " + slotID + " has already started")
		}

		canonical := model.SlotID(date, hour)
		if _, dup := seen[canonical]; dup {
			return nil, apperrors.InvalidInput("Duplicate slot ID: " + slotID)
		}
		seen[canonical] = struct{}{}
		slotIDs = append(slotIDs, canonical)
	}

	order, err := s.gateway.CreateOrder(ctx, payment.OrderRequest{
		Amount:   int64(math.Round(req.Amount * 100)),
		Currency: "INR",
		Receipt:  "rcpt_" + uuid.NewString()[:18],
		Notes: map[string]any{
			"turfId":   req.TurfID,
			"turfName": turf.Name,
			"date":     req.Date,
			"userId":   userID,
		},
	})
	if err != nil {
		return nil, apperrors.Upstream("payment gateway", err)
	}

	perSlot := req.Amount / float64(len(slotIDs))
	created := make([]*model.Booking, 0, len(slotIDs))
	for _, slotID := range slotIDs {
		booking := &model.Booking{
			BookingID: uuid.NewString(),
			UserID:    userID,
			TurfID:    req.TurfID,
			SlotID:    slotID,
			Date:      req.Date,
			Amount:    perSlot,
			OrderID:   order.ID,
		}

		if err := s.repo.CreatePending(ctx, booking); err != nil {
			s.releaseBatch(order.ID, created)
			if errors.Is(err, bookingserrors.ErrSlotTaken) {
				return nil, apperrors.Conflict("Slot " + slotID + " is no longer available")
			}
			return nil, apperrors.Internal("failed to create booking", err)
		}
		created = append(created, booking)
	}

	bookingIDs := make([]string, len(created))
	for i, b := range created {
		bookingIDs[i] = b.BookingID
		s.publish(ctx, events.TypeReservationHeld, b)
	}

	return &HoldResult{
		OrderID:    order.ID,
		Amount:     order.Amount,
		Currency:   order.Currency,
		BookingIDs: bookingIDs,
	}, nil
}

// Confirm promotes a hold's pending bookings to confirmed once the
// processor's signature over (order, payment) checks out. Replays are
// harmless: an already-confirmed batch matches nothing on the second
// pass, and the caller still gets the bookings back. IDs belonging to
// other users are silently ignored.
func (s *bookingService) Confirm(ctx context.Context, userID string, req *validator.ConfirmRequest) ([]*model.Booking, error) {
	if err := s.validator.ValidateConfirmRequest(req); err != nil {
		return nil, apperrors.Validation("Invalid verification request", map[string]any{"errors": err.Error()})
	}

	if !s.gateway.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
		s.log.Warn("Payment signature verification failed",
			"order_id", req.OrderID,
			"user_id", userID,
		)
		return nil, apperrors.Unauthorized("Invalid payment signature")
	}

	modified, err := s.repo.ConfirmOwned(ctx, userID, req.BookingIDs, req.PaymentID, s.now().UTC())
	if err != nil {
		return nil, apperrors.Internal("failed to confirm bookings", err)
	}

	bookings, err := s.repo.FindOwnedByBookingIDs(ctx, userID, req.BookingIDs)
	if err != nil {
		return nil, apperrors.Internal("failed to load bookings", err)
	}
	if len(bookings) == 0 {
		return nil, apperrors.NotFound("booking")
	}

	if modified > 0 {
		for _, b := range bookings {
			if b.Status == model.BookingStatusConfirmed && b.PaymentID == req.PaymentID {
				s.publish(ctx, events.TypeReservationConfirmed, b)
			}
		}
	}

	s.enrich(ctx, bookings)
	return bookings, nil
}

// MyBookings returns the caller's bookings, newest first, with the turf
// summary attached for display.
func (s *bookingService) MyBookings(ctx context.Context, userID string) ([]*model.Booking, error) {
	bookings, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to load bookings", err)
	}

	s.enrich(ctx, bookings)
	return bookings, nil
}

func (s *bookingService) enrich(ctx context.Context, bookings []*model.Booking) {
	summaries := make(map[string]*model.TurfSummary)
	for _, b := range bookings {
		summary, ok := summaries[b.TurfID]
		if !ok {
			turf, err := s.turfs.FindByID(ctx, b.TurfID)
			if err != nil {
				// A booking against a retired turf still renders,
				// just without the summary.
				summaries[b.TurfID] = nil
				continue
			}
			summary = turf.Summary()
			summaries[b.TurfID] = summary
		}
		b.TurfDetails = summary
	}
}

// releaseBatch undoes the pending rows of an aborted hold. Failures are
// logged and swallowed: the rows stay pending and keep their slots until
// cleaned up, which is the safe direction to fail in.
func (s *bookingService) releaseBatch(orderID string, created []*model.Booking) {
	if len(created) == 0 {
		return
	}

	ids := make([]string, len(created))
	for i, b := range created {
		ids[i] = b.BookingID
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.repo.DeleteBatch(ctx, orderID, ids); err != nil {
		s.log.Error("Failed to release aborted hold batch",
			"order_id", orderID,
			"booking_ids", ids,
			"error", err,
		)
	}
}

func (s *bookingService) publish(ctx context.Context, eventType string, b *model.Booking) {
	if err := s.publisher.Publish(ctx, events.FromBooking(eventType, b)); err != nil {
		s.log.Warn("Failed to publish booking event",
			"type", eventType,
			"booking_id", b.BookingID,
			"error", err,
		)
	}
}

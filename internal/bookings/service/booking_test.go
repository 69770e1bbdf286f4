package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	bookingserrors "github.com/Prasi710/Turffy/internal/bookings/errors"
	"github.com/Prasi710/Turffy/internal/bookings/validator"
	turfserrors "github.com/Prasi710/Turffy/internal/turfs/errors"
	apperrors "github.com/Prasi710/Turffy/pkg/errors"
	"github.com/Prasi710/Turffy/pkg/events"
	"github.com/Prasi710/Turffy/pkg/logger"
	"github.com/Prasi710/Turffy/pkg/model"
	"github.com/Prasi710/Turffy/pkg/payment"
)

// --- Mocks ---

type mockBookingRepo struct {
	createPendingFn           func(ctx context.Context, booking *model.Booking) error
	deleteBatchFn             func(ctx context.Context, orderID string, bookingIDs []string) error
	findActiveByTurfAndDateFn func(ctx context.Context, turfID, date string) ([]*model.Booking, error)
	confirmOwnedFn            func(ctx context.Context, userID string, bookingIDs []string, paymentID string, confirmedAt time.Time) (int64, error)
	findOwnedByBookingIDsFn   func(ctx context.Context, userID string, bookingIDs []string) ([]*model.Booking, error)
	findByUserFn              func(ctx context.Context, userID string) ([]*model.Booking, error)
}

func (m *mockBookingRepo) CreatePending(ctx context.Context, booking *model.Booking) error {
	return m.createPendingFn(ctx, booking)
}

func (m *mockBookingRepo) DeleteBatch(ctx context.Context, orderID string, bookingIDs []string) error {
	if m.deleteBatchFn == nil {
		return nil
	}
	return m.deleteBatchFn(ctx, orderID, bookingIDs)
}

func (m *mockBookingRepo) FindActiveByTurfAndDate(ctx context.Context, turfID, date string) ([]*model.Booking, error) {
	return m.findActiveByTurfAndDateFn(ctx, turfID, date)
}

func (m *mockBookingRepo) ConfirmOwned(ctx context.Context, userID string, bookingIDs []string, paymentID string, confirmedAt time.Time) (int64, error) {
	return m.confirmOwnedFn(ctx, userID, bookingIDs, paymentID, confirmedAt)
}

func (m *mockBookingRepo) FindOwnedByBookingIDs(ctx context.Context, userID string, bookingIDs []string) ([]*model.Booking, error) {
	return m.findOwnedByBookingIDsFn(ctx, userID, bookingIDs)
}

func (m *mockBookingRepo) FindByUser(ctx context.Context, userID string) ([]*model.Booking, error) {
	return m.findByUserFn(ctx, userID)
}

type mockTurfRepo struct {
	findByIDFn func(ctx context.Context, id string) (*model.Turf, error)
}

func (m *mockTurfRepo) FindByID(ctx context.Context, id string) (*model.Turf, error) {
	return m.findByIDFn(ctx, id)
}

func (m *mockTurfRepo) FindAll(context.Context, string) ([]*model.Turf, error) {
	return nil, nil
}

func (m *mockTurfRepo) Cities(context.Context) ([]string, error) {
	return nil, nil
}

type mockGateway struct {
	createOrderFn     func(ctx context.Context, req payment.OrderRequest) (*payment.Order, error)
	verifySignatureFn func(orderID, paymentID, signature string) bool
}

func (m *mockGateway) CreateOrder(ctx context.Context, req payment.OrderRequest) (*payment.Order, error) {
	return m.createOrderFn(ctx, req)
}

func (m *mockGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return m.verifySignatureFn(orderID, paymentID, signature)
}

type recordingPublisher struct {
	published []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) error {
	p.published = append(p.published, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

// --- Helpers ---

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Output: io.Discard})
}

func knownTurf() *mockTurfRepo {
	return &mockTurfRepo{
		findByIDFn: func(_ context.Context, id string) (*model.Turf, error) {
			if id != "turf-001" {
				return nil, turfserrors.ErrNotFound
			}
			return &model.Turf{ID: "turf-001", Name: "Green Arena", City: "Mumbai", Location: "Andheri"}, nil
		},
	}
}

func newTestService(repo *mockBookingRepo, turfs *mockTurfRepo, gateway *mockGateway, publisher events.Publisher) *bookingService {
	svc := NewBookingService(repo, turfs, NewCalendar(6, 23), gateway, publisher, testLogger()).(*bookingService)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func expectAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	appErr := apperrors.AsAppError(err)
	if appErr == nil {
		t.Fatalf("expected AppError with code %s, got %v", code, err)
	}
	if appErr.Code != code {
		t.Fatalf("expected code %s, got %s (%s)", code, appErr.Code, appErr.Message)
	}
}

// --- CreateHold ---

func TestCreateHoldSuccess(t *testing.T) {
	var created []*model.Booking
	repo := &mockBookingRepo{
		createPendingFn: func(_ context.Context, b *model.Booking) error {
			created = append(created, b)
			return nil
		},
	}
	gateway := &mockGateway{
		createOrderFn: func(_ context.Context, req payment.OrderRequest) (*payment.Order, error) {
			if req.Amount != 240000 {
				t.Errorf("expected 240000 paise, got %d", req.Amount)
			}
			if req.Currency != "INR" {
				t.Errorf("expected INR, got %s", req.Currency)
			}
			return &payment.Order{ID: "order_abc", Amount: req.Amount, Currency: req.Currency, Status: "created"}, nil
		},
	}
	publisher := &recordingPublisher{}
	svc := newTestService(repo, knownTurf(), gateway, publisher)

	result, err := svc.CreateHold(context.Background(), "user-1", &validator.HoldRequest{
		TurfID: "turf-001",
		Date:   "2026-03-10",
		Slots:  []string{"slot-2026-03-10-9", "slot-2026-03-10-10"},
		Amount: 2400,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.OrderID != "order_abc" {
		t.Errorf("unexpected order ID %s", result.OrderID)
	}
	if result.Amount != 240000 {
		t.Errorf("expected order amount 240000, got %d", result.Amount)
	}
	if len(result.BookingIDs) != 2 {
		t.Fatalf("expected 2 booking IDs, got %d", len(result.BookingIDs))
	}

	if len(created) != 2 {
		t.Fatalf("expected 2 pending rows, got %d", len(created))
	}
	for _, b := range created {
		if b.Amount != 1200 {
			t.Errorf("expected 1200 per slot, got %v", b.Amount)
		}
		if b.OrderID != "order_abc" {
			t.Errorf("booking not tied to order: %s", b.OrderID)
		}
		if b.UserID != "user-1" {
			t.Errorf("unexpected owner %s", b.UserID)
		}
	}

	if len(publisher.published) != 2 {
		t.Fatalf("expected 2 hold events, got %d", len(publisher.published))
	}
	if publisher.published[0].Type != events.TypeReservationHeld {
		t.Errorf("unexpected event type %s", publisher.published[0].Type)
	}
}

func TestCreateHoldSlotTakenReleasesBatch(t *testing.T) {
	var deletedIDs []string
	repo := &mockBookingRepo{
		createPendingFn: func(_ context.Context, b *model.Booking) error {
			if b.SlotID == "slot-2026-03-10-10" {
				return bookingserrors.ErrSlotTaken
			}
			return nil
		},
		deleteBatchFn: func(_ context.Context, orderID string, ids []string) error {
			if orderID != "order_abc" {
				t.Errorf("release targeted wrong order %s", orderID)
			}
			deletedIDs = ids
			return nil
		},
	}
	gateway := &mockGateway{
		createOrderFn: func(context.Context, payment.OrderRequest) (*payment.Order, error) {
			return &payment.Order{ID: "order_abc", Amount: 240000, Currency: "INR"}, nil
		},
	}
	publisher := &recordingPublisher{}
	svc := newTestService(repo, knownTurf(), gateway, publisher)

	_, err := svc.CreateHold(context.Background(), "user-1", &validator.HoldRequest{
		TurfID: "turf-001",
		Date:   "2026-03-10",
		Slots:  []string{"slot-2026-03-10-9", "slot-2026-03-10-10"},
		Amount: 2400,
	})

	expectAppErrorCode(t, err, apperrors.CodeConflict)
	if len(deletedIDs) != 1 {
		t.Fatalf("expected 1 released booking, got %d", len(deletedIDs))
	}
	if len(publisher.published) != 0 {
		t.Errorf("no events must be published for an aborted hold")
	}
}

func TestCreateHoldGatewayFailureWritesNothing(t *testing.T) {
	repo := &mockBookingRepo{
		createPendingFn: func(context.Context, *model.Booking) error {
			t.Fatal("no row may be written when order creation fails")
			return nil
		},
	}
	gateway := &mockGateway{
		createOrderFn: func(context.Context, payment.OrderRequest) (*payment.Order, error) {
			return nil, errors.New("gateway unreachable")
		},
	}
	svc := newTestService(repo, knownTurf(), gateway, &recordingPublisher{})

	_, err := svc.CreateHold(context.Background(), "user-1", &validator.HoldRequest{
		TurfID: "turf-001",
		Date:   "2026-03-10",
		Slots:  []string{"slot-2026-03-10-9"},
		Amount: 1200,
	})

	expectAppErrorCode(t, err, apperrors.CodeUpstream)
}

func TestCreateHoldUnknownTurf(t *testing.T) {
	svc := newTestService(&mockBookingRepo{}, knownTurf(), &mockGateway{}, &recordingPublisher{})

	_, err := svc.CreateHold(context.Background(), "user-1", &validator.HoldRequest{
		TurfID: "turf-999",
		Date:   "2026-03-10",
		Slots:  []string{"slot-2026-03-10-9"},
		Amount: 1200,
	})

	expectAppErrorCode(t, err, apperrors.CodeNotFound)
}

func TestCreateHoldRejectsBadInput(t *testing.T) {
	svc := newTestService(&mockBookingRepo{}, knownTurf(), &mockGateway{}, &recordingPublisher{})

	cases := []struct {
		name string
		req  *validator.HoldRequest
		code string
	}{
		{
			name: "no slots",
			req:  &validator.HoldRequest{TurfID: "turf-001", Date: "2026-03-10", Amount: 1200},
			code: apperrors.CodeValidation,
		},
		{
			name: "zero amount",
			req: &validator.HoldRequest{
				TurfID: "turf-001", Date: "2026-03-10",
				Slots: []string{"slot-2026-03-10-9"},
			},
			code: apperrors.CodeValidation,
		},
		{
			name: "malformed slot ID",
			req: &validator.HoldRequest{
				TurfID: "turf-001", Date: "2026-03-10",
				Slots: []string{"slot-9"}, Amount: 1200,
			},
			code: apperrors.CodeInvalidInput,
		},
		{
			name: "slot from another date",
			req: &validator.HoldRequest{
				TurfID: "turf-001", Date: "2026-03-10",
				Slots: []string{"slot-2026-03-11-9"}, Amount: 1200,
			},
			code: apperrors.CodeInvalidInput,
		},
		{
			name: "duplicate slot",
			req: &validator.HoldRequest{
				TurfID: "turf-001", Date: "2026-03-10",
				Slots: []string{"slot-2026-03-10-9", "slot-2026-03-10-9"}, Amount: 1200,
			},
			code: apperrors.CodeInvalidInput,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateHold(context.Background(), "user-1", tc.req)
			expectAppErrorCode(t, err, tc.code)
		})
	}
}

func TestCreateHoldCanonicalizesPaddedSlotIDs(t *testing.T) {
	var created []*model.Booking
	repo := &mockBookingRepo{
		createPendingFn: func(_ context.Context, b *model.Booking) error {
			created = append(created, b)
			return nil
		},
	}
	gateway := &mockGateway{
		createOrderFn: func(context.Context, payment.OrderRequest) (*payment.Order, error) {
			return &payment.Order{ID: "order_abc", Amount: 120000, Currency: "INR"}, nil
		},
	}
	svc := newTestService(repo, knownTurf(), gateway, &recordingPublisher{})

	// A zero-padded hour names the same slot as the generated ID; storing
	// it verbatim would give the uniqueness index a second key for the
	// same hour.
	result, err := svc.CreateHold(context.Background(), "user-1", &validator.HoldRequest{
		TurfID: "turf-001",
		Date:   "2026-03-10",
		Slots:  []string{"slot-2026-03-10-09"},
		Amount: 1200,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.BookingIDs) != 1 || len(created) != 1 {
		t.Fatalf("expected 1 booking, got %d", len(created))
	}
	if created[0].SlotID != "slot-2026-03-10-9" {
		t.Errorf("stored slot ID must be canonical, got %s", created[0].SlotID)
	}
}

func TestCreateHoldRejectsPaddedAlias(t *testing.T) {
	svc := newTestService(&mockBookingRepo{
		createPendingFn: func(context.Context, *model.Booking) error {
			t.Fatal("aliased slots must be rejected before any write")
			return nil
		},
	}, knownTurf(), &mockGateway{}, &recordingPublisher{})

	_, err := svc.CreateHold(context.Background(), "user-1", &validator.HoldRequest{
		TurfID: "turf-001",
		Date:   "2026-03-10",
		Slots:  []string{"slot-2026-03-10-9", "slot-2026-03-10-09"},
		Amount: 2400,
	})

	expectAppErrorCode(t, err, apperrors.CodeInvalidInput)
}

func TestCreateHoldRejectsElapsedSlots(t *testing.T) {
	// The fixture clock is 2026-03-01 12:00 UTC.
	cases := []struct {
		name string
		date string
		slot string
	}{
		{"past date", "2026-02-28", "slot-2026-02-28-9"},
		{"elapsed hour today", "2026-03-01", "slot-2026-03-01-9"},
		{"starting exactly now", "2026-03-01", "slot-2026-03-01-12"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestService(&mockBookingRepo{
				createPendingFn: func(context.Context, *model.Booking) error {
					t.Fatal("an elapsed slot must never be held")
					return nil
				},
			}, knownTurf(), &mockGateway{
				createOrderFn: func(context.Context, payment.OrderRequest) (*payment.Order, error) {
					t.Fatal("no order may be created for an elapsed slot")
					return nil, nil
				},
			}, &recordingPublisher{})

			_, err := svc.CreateHold(context.Background(), "user-1", &validator.HoldRequest{
				TurfID: "turf-001",
				Date:   tc.date,
				Slots:  []string{tc.slot},
				Amount: 1200,
			})

			expectAppErrorCode(t, err, apperrors.CodeInvalidInput)
		})
	}
}

// --- Confirm ---

func confirmRequest() *validator.ConfirmRequest {
	return &validator.ConfirmRequest{
		OrderID:    "order_abc",
		PaymentID:  "pay_xyz",
		Signature:  "sig",
		BookingIDs: []string{"b1", "b2"},
	}
}

func TestConfirmPromotesAndPublishes(t *testing.T) {
	confirmedAt := time.Date(2026, 3, 10, 9, 45, 0, 0, time.UTC)
	repo := &mockBookingRepo{
		confirmOwnedFn: func(_ context.Context, userID string, ids []string, paymentID string, _ time.Time) (int64, error) {
			if userID != "user-1" {
				t.Errorf("confirm scoped to wrong user %s", userID)
			}
			if paymentID != "pay_xyz" {
				t.Errorf("unexpected payment ID %s", paymentID)
			}
			return int64(len(ids)), nil
		},
		findOwnedByBookingIDsFn: func(context.Context, string, []string) ([]*model.Booking, error) {
			return []*model.Booking{
				{BookingID: "b1", TurfID: "turf-001", Status: model.BookingStatusConfirmed, PaymentID: "pay_xyz", ConfirmedAt: &confirmedAt},
				{BookingID: "b2", TurfID: "turf-001", Status: model.BookingStatusConfirmed, PaymentID: "pay_xyz", ConfirmedAt: &confirmedAt},
			}, nil
		},
	}
	gateway := &mockGateway{
		verifySignatureFn: func(orderID, paymentID, _ string) bool {
			return orderID == "order_abc" && paymentID == "pay_xyz"
		},
	}
	publisher := &recordingPublisher{}
	svc := newTestService(repo, knownTurf(), gateway, publisher)

	bookings, err := svc.Confirm(context.Background(), "user-1", confirmRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(bookings) != 2 {
		t.Fatalf("expected 2 bookings, got %d", len(bookings))
	}
	for _, b := range bookings {
		if b.Status != model.BookingStatusConfirmed {
			t.Errorf("booking %s not confirmed", b.BookingID)
		}
		if b.TurfDetails == nil || b.TurfDetails.Name != "Green Arena" {
			t.Errorf("booking %s missing turf summary", b.BookingID)
		}
	}

	if len(publisher.published) != 2 {
		t.Fatalf("expected 2 confirmed events, got %d", len(publisher.published))
	}
	if publisher.published[0].Type != events.TypeReservationConfirmed {
		t.Errorf("unexpected event type %s", publisher.published[0].Type)
	}
}

func TestConfirmBadSignatureLeavesStateAlone(t *testing.T) {
	repo := &mockBookingRepo{
		confirmOwnedFn: func(context.Context, string, []string, string, time.Time) (int64, error) {
			t.Fatal("no update may run on a bad signature")
			return 0, nil
		},
	}
	gateway := &mockGateway{
		verifySignatureFn: func(string, string, string) bool { return false },
	}
	svc := newTestService(repo, knownTurf(), gateway, &recordingPublisher{})

	_, err := svc.Confirm(context.Background(), "user-1", confirmRequest())

	expectAppErrorCode(t, err, apperrors.CodeUnauthorized)
}

func TestConfirmReplayIsIdempotent(t *testing.T) {
	confirmedAt := time.Date(2026, 3, 10, 9, 45, 0, 0, time.UTC)
	repo := &mockBookingRepo{
		confirmOwnedFn: func(context.Context, string, []string, string, time.Time) (int64, error) {
			return 0, nil // everything already confirmed
		},
		findOwnedByBookingIDsFn: func(context.Context, string, []string) ([]*model.Booking, error) {
			return []*model.Booking{
				{BookingID: "b1", TurfID: "turf-001", Status: model.BookingStatusConfirmed, PaymentID: "pay_xyz", ConfirmedAt: &confirmedAt},
			}, nil
		},
	}
	gateway := &mockGateway{
		verifySignatureFn: func(string, string, string) bool { return true },
	}
	publisher := &recordingPublisher{}
	svc := newTestService(repo, knownTurf(), gateway, publisher)

	bookings, err := svc.Confirm(context.Background(), "user-1", confirmRequest())
	if err != nil {
		t.Fatalf("replay must succeed, got %v", err)
	}
	if len(bookings) != 1 {
		t.Fatalf("expected 1 booking, got %d", len(bookings))
	}
	if len(publisher.published) != 0 {
		t.Errorf("a replay must not publish events again")
	}
}

func TestConfirmForeignBookingsNotFound(t *testing.T) {
	repo := &mockBookingRepo{
		confirmOwnedFn: func(context.Context, string, []string, string, time.Time) (int64, error) {
			return 0, nil
		},
		findOwnedByBookingIDsFn: func(context.Context, string, []string) ([]*model.Booking, error) {
			return nil, nil // caller owns none of the IDs
		},
	}
	gateway := &mockGateway{
		verifySignatureFn: func(string, string, string) bool { return true },
	}
	svc := newTestService(repo, knownTurf(), gateway, &recordingPublisher{})

	_, err := svc.Confirm(context.Background(), "user-2", confirmRequest())

	expectAppErrorCode(t, err, apperrors.CodeNotFound)
}

// --- Availability ---

func TestAvailabilityMarksHeldSlots(t *testing.T) {
	repo := &mockBookingRepo{
		findActiveByTurfAndDateFn: func(context.Context, string, string) ([]*model.Booking, error) {
			return []*model.Booking{
				{SlotID: "slot-2026-03-11-9", Status: model.BookingStatusPending},
				{SlotID: "slot-2026-03-11-18", Status: model.BookingStatusConfirmed},
			}, nil
		},
	}
	svc := newTestService(repo, knownTurf(), &mockGateway{}, &recordingPublisher{})
	svc.now = func() time.Time {
		return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	}

	slots, err := svc.Availability(context.Background(), "turf-001", "2026-03-11")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	unavailable := 0
	for _, slot := range slots {
		switch slot.ID {
		case "slot-2026-03-11-9", "slot-2026-03-11-18":
			if slot.Available {
				t.Errorf("held slot %s reported available", slot.ID)
			}
			unavailable++
		default:
			if !slot.Available {
				t.Errorf("free slot %s reported unavailable", slot.ID)
			}
		}
	}
	if unavailable != 2 {
		t.Errorf("expected 2 held slots in the calendar, got %d", unavailable)
	}
}

func TestAvailabilityUnknownTurf(t *testing.T) {
	svc := newTestService(&mockBookingRepo{}, knownTurf(), &mockGateway{}, &recordingPublisher{})

	_, err := svc.Availability(context.Background(), "turf-404", "2026-03-11")

	expectAppErrorCode(t, err, apperrors.CodeNotFound)
}

// --- MyBookings ---

func TestMyBookingsEnrichedNewestFirst(t *testing.T) {
	older := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	repo := &mockBookingRepo{
		findByUserFn: func(_ context.Context, userID string) ([]*model.Booking, error) {
			if userID != "user-1" {
				t.Errorf("listing scoped to wrong user %s", userID)
			}
			return []*model.Booking{
				{BookingID: "b2", TurfID: "turf-001", CreatedAt: newer},
				{BookingID: "b1", TurfID: "turf-404", CreatedAt: older},
			}, nil
		},
	}
	svc := newTestService(repo, knownTurf(), &mockGateway{}, &recordingPublisher{})

	bookings, err := svc.MyBookings(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(bookings) != 2 {
		t.Fatalf("expected 2 bookings, got %d", len(bookings))
	}
	if bookings[0].TurfDetails == nil || bookings[0].TurfDetails.City != "Mumbai" {
		t.Errorf("known turf must be enriched")
	}
	if bookings[1].TurfDetails != nil {
		t.Errorf("retired turf must render without a summary")
	}
}

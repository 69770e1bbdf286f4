package events

import (
	"time"

	"github.com/Prasi710/Turffy/pkg/model"
)

const (
	TypeReservationHeld      = "reservation.held"
	TypeReservationConfirmed = "reservation.confirmed"
)

// Event is the wire form of a reservation lifecycle change. Keyed by
// turf and date so consumers see changes to one calendar in order.
type Event struct {
	Type       string    `json:"type"`
	BookingID  string    `json:"booking_id"`
	UserID     string    `json:"user_id"`
	TurfID     string    `json:"turf_id"`
	SlotID     string    `json:"slot_id"`
	Date       string    `json:"date"`
	OrderID    string    `json:"order_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

func FromBooking(eventType string, b *model.Booking) Event {
	return Event{
		Type:       eventType,
		BookingID:  b.BookingID,
		UserID:     b.UserID,
		TurfID:     b.TurfID,
		SlotID:     b.SlotID,
		Date:       b.Date,
		OrderID:    b.OrderID,
		Status:     string(b.Status),
		OccurredAt: time.Now().UTC(),
	}
}

package model

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
)

// ActiveStatuses are the lifecycle states that hold a slot. Pending and
// confirmed must be treated identically by availability checks or a slot
// could be double-sold during the payment window.
var ActiveStatuses = []BookingStatus{BookingStatusPending, BookingStatusConfirmed}

// Booking is one reservation attempt for a single slot. A multi-slot
// checkout produces one Booking per slot, all sharing the same OrderID.
type Booking struct {
	BookingID   string        `json:"bookingId" bson:"booking_id" validate:"required,uuid4"`
	UserID      string        `json:"userId" bson:"user_id" validate:"required"`
	TurfID      string        `json:"turfId" bson:"turf_id" validate:"required"`
	SlotID      string        `json:"slotId" bson:"slot_id" validate:"required"`
	Date        string        `json:"date" bson:"date" validate:"required,datetime=2006-01-02"`
	Amount      float64       `json:"amount" bson:"amount" validate:"gt=0"`
	OrderID     string        `json:"orderId" bson:"order_id" validate:"required"`
	Status      BookingStatus `json:"status" bson:"status" validate:"required,oneof=pending confirmed"`
	PaymentID   string        `json:"paymentId,omitempty" bson:"payment_id,omitempty"`
	ConfirmedAt *time.Time    `json:"confirmedAt,omitempty" bson:"confirmed_at,omitempty"`
	CreatedAt   time.Time     `json:"createdAt" bson:"created_at"`

	// TurfDetails is populated on read paths only, never stored.
	TurfDetails *TurfSummary `json:"turfDetails,omitempty" bson:"-"`
}

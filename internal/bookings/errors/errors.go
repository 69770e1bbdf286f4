package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	// ErrSlotTaken is the storage layer's translation of a duplicate key
	// on the (turf, date, slot) uniqueness index.
	ErrSlotTaken = errors.New("slot already held by another booking")

	ErrInvalidSlotID = errors.New("invalid slot ID format")
)

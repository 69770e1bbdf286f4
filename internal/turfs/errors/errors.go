package errors

import "errors"

var (
	ErrNotFound = errors.New("turf not found")
)

package errors

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")

	ErrCodeNotFound = errors.New("login code not found or expired")

	ErrCodeMismatch = errors.New("login code does not match")

	ErrInvalidPhone = errors.New("invalid mobile number")
)

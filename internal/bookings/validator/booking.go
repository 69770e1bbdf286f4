package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(v))
	for i, e := range v {
		messages[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return strings.Join(messages, "; ")
}

// HoldRequest is the payload that opens a hold on one or more slots.
// Amount is in rupees; the gateway order is created in paise.
type HoldRequest struct {
	TurfID string   `json:"turfId" validate:"required"`
	Date   string   `json:"date" validate:"required,datetime=2006-01-02"`
	Slots  []string `json:"slots" validate:"required,min=1,dive,required"`
	Amount float64  `json:"amount" validate:"required,gt=0"`
}

// ConfirmRequest carries the gateway callback parameters plus the hold's
// booking IDs.
type ConfirmRequest struct {
	OrderID    string   `json:"razorpay_order_id" validate:"required"`
	PaymentID  string   `json:"razorpay_payment_id" validate:"required"`
	Signature  string   `json:"razorpay_signature" validate:"required"`
	BookingIDs []string `json:"-" validate:"required,min=1,dive,required"`
}

type BookingValidator struct {
	validate *validator.Validate
}

func NewBookingValidator() *BookingValidator {
	return &BookingValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (v *BookingValidator) ValidateHoldRequest(req *HoldRequest) error {
	if err := v.validate.Struct(req); err != nil {
		return translateValidationErrors(err)
	}
	return nil
}

func (v *BookingValidator) ValidateConfirmRequest(req *ConfirmRequest) error {
	if err := v.validate.Struct(req); err != nil {
		return translateValidationErrors(err)
	}
	return nil
}

func translateValidationErrors(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return ValidationErrors{{Field: "request", Message: "invalid request"}}
	}

	var errs ValidationErrors
	for _, fieldErr := range validationErrors {
		errs = append(errs, ValidationError{
			Field:   jsonFieldName(fieldErr),
			Message: messageForTag(fieldErr),
		})
	}
	return errs
}

func jsonFieldName(fieldErr validator.FieldError) string {
	// Namespace looks like HoldRequest.Slots[2]; strip the struct name
	// and lowercase the leading field.
	parts := strings.SplitN(fieldErr.Namespace(), ".", 2)
	if len(parts) == 2 {
		return strings.ToLower(parts[1][:1]) + parts[1][1:]
	}
	return strings.ToLower(fieldErr.Field())
}

func messageForTag(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must contain at least %s item(s)", fieldErr.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fieldErr.Param())
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	default:
		return "is invalid"
	}
}

// ValidateSlotCount guards against a hold spanning more slots than the
// calendar day can hold; a request like that is always a client bug.
func ValidateSlotCount(slots []string, openingHour, closingHour int) error {
	if max := closingHour - openingHour; len(slots) > max {
		return ValidationErrors{{
			Field:   "slots",
			Message: fmt.Sprintf("must contain at most %d item(s)", max),
		}}
	}
	return nil
}

package models

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the store, services and HTTP layer.
var (
	ErrNotFound           = errors.New("record not found")
	ErrWeaverNotFound     = errors.New("weaver not found")
	ErrLoanNotFound       = errors.New("loan not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrForbidden          = errors.New("role not allowed for this view")
	ErrHistoryNotRecorded = errors.New("change saved but not recorded in history")
	ErrUnknownReport      = errors.New("unknown report type")
	ErrDateRangeRequired  = errors.New("start and end dates are required")
)

// ValidationError describes a rejected form field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap lets callers match every validation failure with errors.Is(err, ErrInvalidInput).
func (e ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// Invalid is shorthand for building a ValidationError.
func Invalid(field, format string, args ...any) error {
	return ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

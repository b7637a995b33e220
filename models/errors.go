package models

import (
	"errors"
	"fmt"
)

// ErrorCode tags a BookingError so callers can branch without string matching.
type ErrorCode string

const (
	ErrCodeNotFound      ErrorCode = "notFound"
	ErrCodeInvalidDate   ErrorCode = "invalidDate"
	ErrCodeInvalidSlot   ErrorCode = "invalidSlot"
	ErrCodeSlotTaken     ErrorCode = "slotTaken"
	ErrCodeForbidden     ErrorCode = "forbidden"
	ErrCodeInvalidConfig ErrorCode = "invalidConfig"
)

// BookingError is the single error type returned by the booking core.
// Two BookingErrors match under errors.Is when their codes are equal.
type BookingError struct {
	Code    ErrorCode
	Message string
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BookingError) Is(target error) bool {
	t, ok := target.(*BookingError)
	return ok && t.Code == e.Code
}

// Sentinels for errors.Is checks.
var (
	ErrNotFound      = &BookingError{Code: ErrCodeNotFound, Message: "not found"}
	ErrInvalidDate   = &BookingError{Code: ErrCodeInvalidDate, Message: "invalid date"}
	ErrInvalidSlot   = &BookingError{Code: ErrCodeInvalidSlot, Message: "invalid slot"}
	ErrSlotTaken     = &BookingError{Code: ErrCodeSlotTaken, Message: "slot already taken"}
	ErrForbidden     = &BookingError{Code: ErrCodeForbidden, Message: "forbidden"}
	ErrInvalidConfig = &BookingError{Code: ErrCodeInvalidConfig, Message: "invalid availability configuration"}
)

func newError(code ErrorCode, format string, args ...any) error {
	return &BookingError{Code: code, Message: fmt.Sprintf(format, args...)}
}

func NewNotFoundError(format string, args ...any) error {
	return newError(ErrCodeNotFound, format, args...)
}

func NewInvalidDateError(format string, args ...any) error {
	return newError(ErrCodeInvalidDate, format, args...)
}

func NewInvalidSlotError(format string, args ...any) error {
	return newError(ErrCodeInvalidSlot, format, args...)
}

func NewSlotTakenError(format string, args ...any) error {
	return newError(ErrCodeSlotTaken, format, args...)
}

func NewForbiddenError(format string, args ...any) error {
	return newError(ErrCodeForbidden, format, args...)
}

func NewInvalidConfigError(format string, args ...any) error {
	return newError(ErrCodeInvalidConfig, format, args...)
}

// CodeOf returns the code of the first BookingError in err's chain, or "" if there is none.
func CodeOf(err error) ErrorCode {
	var be *BookingError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

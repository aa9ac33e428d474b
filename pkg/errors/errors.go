package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind groups error codes into the stable classes exposed to API clients.
type Kind string

const (
	KindInvalidIdentifier Kind = "INVALID_IDENTIFIER"
	KindInvalidFormat     Kind = "INVALID_FORMAT"
	KindNotFound          Kind = "NOT_FOUND"
	KindForbidden         Kind = "FORBIDDEN"
	KindUnauthorized      Kind = "UNAUTHORIZED"
	KindUnavailable       Kind = "UNAVAILABLE"
	KindInvalidRequest    Kind = "INVALID_REQUEST"
	KindConflict          Kind = "CONFLICT"
	KindInternal          Kind = "INTERNAL"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Kind    Kind   `json:"kind"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches errors sharing the same code, so errors.Is works against the predefined values.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) || e == nil || other == nil {
		return false
	}
	return e.Code == other.Code
}

// New creates a new Error instance.
func New(kind Kind, code string, status int, message string) *Error {
	return &Error{Kind: kind, Code: code, Status: status, Message: message}
}

// Wrap attaches a cause to a copy of a predefined error.
func Wrap(err error, base *Error, message string) *Error {
	clone := Clone(base, message)
	clone.Err = err
	return clone
}

// Predefined errors for common scenarios.
var (
	ErrNotFound     = New(KindNotFound, "NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrForbidden    = New(KindForbidden, "FORBIDDEN", http.StatusForbidden, "forbidden")
	ErrUnauthorized = New(KindUnauthorized, "UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrValidation   = New(KindInvalidRequest, "VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal     = New(KindInternal, "INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrCacheMiss    = New(KindNotFound, "CACHE_MISS", http.StatusNotFound, "cache miss")
)

// Reservation outcomes. Each failing check maps to exactly one of these.
var (
	ErrInvalidCourtID         = New(KindInvalidIdentifier, "INVALID_COURT_ID", http.StatusBadRequest, "invalid court id")
	ErrInvalidUserID          = New(KindInvalidIdentifier, "INVALID_USER_ID", http.StatusBadRequest, "invalid user id")
	ErrInvalidDateFormat      = New(KindInvalidFormat, "INVALID_DATE_FORMAT", http.StatusBadRequest, "date must be a real calendar date in YYYY-MM-DD format")
	ErrInvalidStartTimeFormat = New(KindInvalidFormat, "INVALID_START_TIME_FORMAT", http.StatusBadRequest, "startTime must be in HH:mm format")
	ErrInvalidEndTimeFormat   = New(KindInvalidFormat, "INVALID_END_TIME_FORMAT", http.StatusBadRequest, "endTime must be in HH:mm format")
	ErrCourtNotFound          = New(KindNotFound, "COURT_NOT_FOUND", http.StatusNotFound, "court not found")
	ErrNotAuthorized          = New(KindForbidden, "NOT_AUTHORIZED", http.StatusForbidden, "only verified students can reserve courts")
	ErrCourtUnavailable       = New(KindUnavailable, "COURT_UNAVAILABLE", http.StatusConflict, "unavailable on this date")
	ErrCourtClosed            = New(KindUnavailable, "COURT_UNAVAILABLE", http.StatusConflict, "closed on selected date")
	ErrSlotLengthMismatch     = New(KindInvalidRequest, "SLOT_LENGTH_MISMATCH", http.StatusBadRequest, "reservation length does not match the court slot length")
	ErrOutsideOpeningHours    = New(KindInvalidRequest, "OUTSIDE_OPENING_HOURS", http.StatusBadRequest, "requested time is outside opening hours")
	ErrSlotNotAligned         = New(KindInvalidRequest, "SLOT_NOT_ALIGNED", http.StatusBadRequest, "requested time does not match an available slot")
	ErrSlotAlreadyReserved    = New(KindConflict, "SLOT_ALREADY_RESERVED", http.StatusConflict, "slot already reserved")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal, "")
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

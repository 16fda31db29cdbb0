package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
)

var (
	// ErrCardNotFound is returned when a card does not exist or belongs to another owner.
	ErrCardNotFound = errors.New("card not found")
	// ErrCardInactive is returned when a payment or adjustment targets a deactivated card.
	ErrCardInactive = errors.New("card is not active")
	// ErrInsufficientFunds is returned when a payment exceeds the card balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrInvalidArgument is returned when input fails validation before any mutation.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrConflict is returned when a write collides with existing or concurrently modified data.
	ErrConflict = errors.New("conflict")
	// ErrStorageFailure is returned when the underlying store cannot complete an operation.
	ErrStorageFailure = errors.New("storage failure")
)

// InsufficientFundsError carries the balance a payment was checked against.
type InsufficientFundsError struct {
	CardNumber string
	Available  decimal.Decimal
	Requested  decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: available balance %s, requested %s",
		e.Available.StringFixed(2), e.Requested.StringFixed(2))
}

func (e *InsufficientFundsError) Unwrap() error {
	return ErrInsufficientFunds
}

// InvalidArgument wraps ErrInvalidArgument with a human-readable reason.
func InvalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// Storage wraps a store error so callers can match ErrStorageFailure while
// keeping the cause for logs.
func Storage(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorageFailure, err)
}

// IsClientError reports whether err was caused by the request rather than the system.
func IsClientError(err error) bool {
	return errors.Is(err, ErrCardNotFound) ||
		errors.Is(err, ErrCardInactive) ||
		errors.Is(err, ErrInsufficientFunds) ||
		errors.Is(err, ErrInvalidArgument)
}

// Message returns the text shown to the end user. Storage and unexpected
// errors never expose their cause.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case IsClientError(err):
		return err.Error()
	case errors.Is(err, ErrConflict):
		return "the request conflicted with another change, please retry"
	case errors.Is(err, ErrStorageFailure):
		return "service temporarily unavailable"
	default:
		return "internal server error"
	}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	msg := Message(err)
	switch {
	case errors.Is(err, ErrCardNotFound):
		return NewHTTPError(http.StatusNotFound, msg, "CARD_NOT_FOUND")
	case errors.Is(err, ErrCardInactive):
		return NewHTTPError(http.StatusBadRequest, msg, "CARD_INACTIVE")
	case errors.Is(err, ErrInsufficientFunds):
		return NewHTTPError(http.StatusBadRequest, msg, "INSUFFICIENT_FUNDS")
	case errors.Is(err, ErrInvalidArgument):
		return NewHTTPError(http.StatusBadRequest, msg, "INVALID_ARGUMENT")
	case errors.Is(err, ErrConflict):
		return NewHTTPError(http.StatusConflict, msg, "CONFLICT")
	case errors.Is(err, ErrStorageFailure):
		return NewHTTPError(http.StatusServiceUnavailable, msg, "STORAGE_FAILURE")
	default:
		return NewHTTPError(http.StatusInternalServerError, msg, "INTERNAL_ERROR")
	}
}

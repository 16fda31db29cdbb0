package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", ErrCardNotFound, http.StatusNotFound, "CARD_NOT_FOUND"},
		{"wrapped not found", fmt.Errorf("adjust: %w", ErrCardNotFound), http.StatusNotFound, "CARD_NOT_FOUND"},
		{"inactive", ErrCardInactive, http.StatusBadRequest, "CARD_INACTIVE"},
		{"insufficient funds", &InsufficientFundsError{Available: decimal.NewFromInt(50), Requested: decimal.NewFromInt(60)}, http.StatusBadRequest, "INSUFFICIENT_FUNDS"},
		{"invalid argument", InvalidArgument("count must be positive"), http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"conflict", ErrConflict, http.StatusConflict, "CONFLICT"},
		{"storage", Storage("find card", errors.New("connection refused")), http.StatusServiceUnavailable, "STORAGE_FAILURE"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, httpErr.StatusCode)
			assert.Equal(t, tt.wantCode, httpErr.Code)
		})
	}
}

func TestMessage_HidesInternals(t *testing.T) {
	err := Storage("append transaction", errors.New("dial tcp 10.0.0.3:3306: connection refused"))

	assert.True(t, errors.Is(err, ErrStorageFailure))
	assert.Equal(t, "service temporarily unavailable", Message(err))
	assert.NotContains(t, Message(err), "10.0.0.3")
	assert.Equal(t, "internal server error", Message(errors.New("nil pointer")))
}

func TestInsufficientFundsError(t *testing.T) {
	err := &InsufficientFundsError{
		CardNumber: "12345678",
		Available:  decimal.RequireFromString("50"),
		Requested:  decimal.RequireFromString("60"),
	}

	assert.True(t, errors.Is(err, ErrInsufficientFunds))
	assert.Equal(t, "insufficient funds: available balance 50.00, requested 60.00", Message(err))
}

func TestInvalidArgument(t *testing.T) {
	err := InvalidArgument("count must be between %d and %d", 1, 100)

	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.Equal(t, "invalid argument: count must be between 1 and 100", err.Error())
}

package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	apperrors "cardledger/internal/errors"
)

func TestCardValidator(t *testing.T) {
	v := NewCardValidator()
	d := decimal.RequireFromString

	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{"valid number", v.ValidateCardNumber("12345678"), false},
		{"short number", v.ValidateCardNumber("1234567"), true},
		{"long number", v.ValidateCardNumber("123456789"), true},
		{"non-digit number", v.ValidateCardNumber("1234567a"), true},
		{"zero balance", v.ValidateBalance("balance", decimal.Zero), false},
		{"two decimals", v.ValidateBalance("balance", d("10.25")), false},
		{"negative balance", v.ValidateBalance("balance", d("-0.01")), true},
		{"three decimals", v.ValidateBalance("balance", d("10.001")), true},
		{"trailing zero decimals", v.ValidateBalance("balance", d("10.500")), false},
		{"positive payment", v.ValidatePaymentAmount(d("0.01")), false},
		{"zero payment", v.ValidatePaymentAmount(decimal.Zero), true},
		{"negative payment", v.ValidatePaymentAmount(d("-5")), true},
		{"fractional cent payment", v.ValidatePaymentAmount(d("1.005")), true},
		{"batch of one", v.ValidateBatchCount(1), false},
		{"batch of hundred", v.ValidateBatchCount(100), false},
		{"empty batch", v.ValidateBatchCount(0), true},
		{"oversized batch", v.ValidateBatchCount(101), true},
		{"typical caller", v.ValidateCaller(Caller{OwnerID: "owner-1", Actor: "clerk@example.com", SourceAddress: "2001:db8::1"}), false},
		{"caller at column widths", v.ValidateCaller(Caller{OwnerID: strings.Repeat("o", 64), Actor: strings.Repeat("a", 255), SourceAddress: strings.Repeat("9", 64)}), false},
		{"multibyte owner within width", v.ValidateCaller(Caller{OwnerID: strings.Repeat("é", 64)}), false},
		{"owner too long", v.ValidateCaller(Caller{OwnerID: strings.Repeat("o", 65)}), true},
		{"actor too long", v.ValidateCaller(Caller{OwnerID: "owner-1", Actor: strings.Repeat("a", 256)}), true},
		{"source address too long", v.ValidateCaller(Caller{OwnerID: "owner-1", SourceAddress: strings.Repeat("9", 65)}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.wantErr {
				assert.True(t, errors.Is(tt.err, apperrors.ErrInvalidArgument), "got %v", tt.err)
			} else {
				assert.NoError(t, tt.err)
			}
		})
	}
}

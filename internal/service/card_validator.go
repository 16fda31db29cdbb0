package service

import (
	"regexp"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	apperrors "cardledger/internal/errors"
	"cardledger/internal/model"
)

// MaxBatchSize is the largest number of cards one batch issuance may create.
const MaxBatchSize = 100

var cardNumberPattern = regexp.MustCompile(`^\d{8}$`)

// CardValidator checks ledger input before anything is read or written.
type CardValidator struct{}

// NewCardValidator creates a new card validator.
func NewCardValidator() *CardValidator {
	return &CardValidator{}
}

// ValidateCardNumber checks the 8-digit format.
func (v *CardValidator) ValidateCardNumber(cardNumber string) error {
	if !cardNumberPattern.MatchString(cardNumber) {
		return apperrors.InvalidArgument("card number must be exactly 8 digits")
	}
	return nil
}

// ValidateBalance checks a balance to be stored on a card.
func (v *CardValidator) ValidateBalance(field string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return apperrors.InvalidArgument("%s cannot be negative", field)
	}
	return v.validatePrecision(field, amount)
}

// ValidatePaymentAmount checks the amount debited by a payment.
func (v *CardValidator) ValidatePaymentAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperrors.InvalidArgument("payment amount must be greater than zero")
	}
	return v.validatePrecision("payment amount", amount)
}

// ValidateBatchCount checks the size of a batch issuance.
func (v *CardValidator) ValidateBatchCount(count int) error {
	if count < 1 || count > MaxBatchSize {
		return apperrors.InvalidArgument("card count must be between 1 and %d", MaxBatchSize)
	}
	return nil
}

// ValidateCaller checks that the caller's identity fits the columns it is
// recorded in. The values themselves are opaque.
func (v *CardValidator) ValidateCaller(caller Caller) error {
	if utf8.RuneCountInString(caller.OwnerID) > model.MaxOwnerIDLength {
		return apperrors.InvalidArgument("owner id exceeds %d characters", model.MaxOwnerIDLength)
	}
	if utf8.RuneCountInString(caller.Actor) > model.MaxActorLength {
		return apperrors.InvalidArgument("actor exceeds %d characters", model.MaxActorLength)
	}
	if utf8.RuneCountInString(caller.SourceAddress) > model.MaxSourceAddressLength {
		return apperrors.InvalidArgument("source address exceeds %d characters", model.MaxSourceAddressLength)
	}
	return nil
}

// validatePrecision rejects amounts with more than two fractional digits;
// rounding is the caller's job.
func (v *CardValidator) validatePrecision(field string, amount decimal.Decimal) error {
	if !amount.Equal(amount.Truncate(2)) {
		return apperrors.InvalidArgument("%s must have at most two decimal places", field)
	}
	return nil
}

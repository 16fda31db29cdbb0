package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType identifies what a ledger entry documents.
type TransactionType string

const (
	TransactionPayment           TransactionType = "Payment"
	TransactionBalanceAdjustment TransactionType = "BalanceAdjustment"
	TransactionActivated         TransactionType = "Activated"
	TransactionDeactivated       TransactionType = "Deactivated"
)

// AffectsBalance reports whether entries of this type move money.
func (t TransactionType) AffectsBalance() bool {
	return t == TransactionPayment || t == TransactionBalanceAdjustment
}

// Transaction is an immutable ledger entry. Entries are only ever removed
// together with their card.
//
// Amount is the payment magnitude for Payment entries, the signed
// new-minus-old delta for BalanceAdjustment entries, and zero for status
// changes. Delta returns the signed effect for every type.
type Transaction struct {
	ID              uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	CardID          uint64          `json:"card_id" gorm:"not null;index"`
	CardNumber      string          `json:"card_number" gorm:"size:8;not null;index"`
	Amount          decimal.Decimal `json:"amount" gorm:"type:decimal(20,2);not null"`
	BalanceBefore   decimal.Decimal `json:"balance_before" gorm:"type:decimal(20,2);not null"`
	BalanceAfter    decimal.Decimal `json:"balance_after" gorm:"type:decimal(20,2);not null"`
	TransactionType TransactionType `json:"transaction_type" gorm:"type:varchar(32);not null;index"`
	TransactionDate time.Time       `json:"transaction_date" gorm:"not null;index"`
	ProcessedBy     string          `json:"processed_by" gorm:"size:255;not null"`
	SourceAddress   string          `json:"source_address" gorm:"size:64"`
	Notes           string          `json:"notes,omitempty" gorm:"type:text"`
}

// Delta is the signed change this entry applied to the card balance, so that
// BalanceAfter == BalanceBefore + Delta() holds for every entry.
func (t Transaction) Delta() decimal.Decimal {
	if t.TransactionType == TransactionPayment {
		return t.Amount.Neg()
	}
	return t.Amount
}

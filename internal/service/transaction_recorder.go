package service

import (
	"time"

	"github.com/shopspring/decimal"

	"cardledger/internal/model"
)

var defaultNotes = map[model.TransactionType]string{
	model.TransactionPayment:           "payment received",
	model.TransactionBalanceAdjustment: "balance adjusted",
	model.TransactionActivated:         "card activated",
	model.TransactionDeactivated:       "card deactivated",
}

// TransactionRecorder builds ledger entries. It never touches storage.
type TransactionRecorder struct {
	now func() time.Time
}

// NewTransactionRecorder creates a recorder stamping entries with now.
func NewTransactionRecorder(now func() time.Time) *TransactionRecorder {
	if now == nil {
		now = time.Now
	}
	return &TransactionRecorder{now: now}
}

// Record returns the entry documenting the change from before to after.
func (r *TransactionRecorder) Record(kind model.TransactionType, before, after model.Card, caller Caller) model.Transaction {
	var amount decimal.Decimal
	switch kind {
	case model.TransactionPayment:
		amount = before.Balance.Sub(after.Balance)
	case model.TransactionBalanceAdjustment:
		amount = after.Balance.Sub(before.Balance)
	default:
		amount = decimal.Zero
	}

	return model.Transaction{
		CardID:          after.ID,
		CardNumber:      after.CardNumber,
		Amount:          amount,
		BalanceBefore:   before.Balance,
		BalanceAfter:    after.Balance,
		TransactionType: kind,
		TransactionDate: r.now(),
		ProcessedBy:     caller.Actor,
		SourceAddress:   caller.SourceAddress,
		Notes:           defaultNotes[kind],
	}
}

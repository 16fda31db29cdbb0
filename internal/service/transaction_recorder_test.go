package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"cardledger/internal/model"
)

func TestTransactionRecorder_Record(t *testing.T) {
	at := time.Date(2025, time.June, 1, 9, 30, 0, 0, time.UTC)
	recorder := NewTransactionRecorder(func() time.Time { return at })
	caller := Caller{OwnerID: "owner-1", Actor: "clerk@example.com", SourceAddress: "203.0.113.7"}
	d := decimal.RequireFromString

	card := func(balance string, active bool) model.Card {
		return model.Card{ID: 9, CardNumber: "12345678", Balance: d(balance), IsActive: active}
	}

	tests := []struct {
		name       string
		kind       model.TransactionType
		before     model.Card
		after      model.Card
		wantAmount string
		wantNotes  string
	}{
		{"payment", model.TransactionPayment, card("50", true), card("20", true), "30", "payment received"},
		{"adjust up", model.TransactionBalanceAdjustment, card("20", true), card("75.5", true), "55.5", "balance adjusted"},
		{"adjust down", model.TransactionBalanceAdjustment, card("20", true), card("5", true), "-15", "balance adjusted"},
		{"deactivate", model.TransactionDeactivated, card("20", true), card("20", false), "0", "card deactivated"},
		{"activate", model.TransactionActivated, card("20", false), card("20", true), "0", "card activated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := recorder.Record(tt.kind, tt.before, tt.after, caller)

			assert.Equal(t, uint64(9), txn.CardID)
			assert.Equal(t, "12345678", txn.CardNumber)
			assert.Equal(t, tt.kind, txn.TransactionType)
			assert.True(t, d(tt.wantAmount).Equal(txn.Amount), "amount %s", txn.Amount)
			assert.True(t, tt.before.Balance.Equal(txn.BalanceBefore))
			assert.True(t, tt.after.Balance.Equal(txn.BalanceAfter))
			assert.True(t, txn.BalanceAfter.Equal(txn.BalanceBefore.Add(txn.Delta())), "balance identity")
			assert.Equal(t, at, txn.TransactionDate)
			assert.Equal(t, "clerk@example.com", txn.ProcessedBy)
			assert.Equal(t, "203.0.113.7", txn.SourceAddress)
			assert.Equal(t, tt.wantNotes, txn.Notes)
		})
	}
}

func TestTransactionRecorder_PaymentIdentity(t *testing.T) {
	recorder := NewTransactionRecorder(nil)
	before := model.Card{Balance: decimal.RequireFromString("50.00")}
	after := model.Card{Balance: decimal.RequireFromString("20.00")}

	txn := recorder.Record(model.TransactionPayment, before, after, Caller{})

	assert.True(t, txn.BalanceAfter.Equal(txn.BalanceBefore.Sub(txn.Amount)))
	assert.False(t, txn.TransactionDate.IsZero())
}

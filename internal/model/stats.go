package model

import "github.com/shopspring/decimal"

// OwnerCardCount is the number of live cards held by one owner.
type OwnerCardCount struct {
	OwnerID string `json:"owner_id"`
	Cards   int64  `json:"cards"`
}

// LedgerStats aggregates the whole ledger at one point in time.
type LedgerStats struct {
	TotalCards         int64
	ActiveCards        int64
	TotalTransactions  int64
	TransactionsSince  int64 // entries dated at or after the requested instant
	OutstandingBalance decimal.Decimal
	CardsByOwner       []OwnerCardCount
}

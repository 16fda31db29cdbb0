package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	apperrors "cardledger/internal/errors"
	"cardledger/internal/model"
)

// Stats aggregates card and transaction counts. TransactionsSince counts
// entries dated at or after since.
func (r *ledgerStore) Stats(ctx context.Context, since time.Time) (*model.LedgerStats, error) {
	db := r.db.WithContext(ctx)
	stats := &model.LedgerStats{}

	if err := db.Model(&model.Card{}).Count(&stats.TotalCards).Error; err != nil {
		return nil, apperrors.Storage("count cards", err)
	}
	if err := db.Model(&model.Card{}).Where("is_active = ?", true).Count(&stats.ActiveCards).Error; err != nil {
		return nil, apperrors.Storage("count active cards", err)
	}

	var total decimal.Decimal
	if err := db.Model(&model.Card{}).Select("COALESCE(SUM(balance), 0)").Row().Scan(&total); err != nil {
		return nil, apperrors.Storage("sum balances", err)
	}
	stats.OutstandingBalance = total.Round(2)

	if err := db.Model(&model.Transaction{}).Count(&stats.TotalTransactions).Error; err != nil {
		return nil, apperrors.Storage("count transactions", err)
	}
	if err := db.Model(&model.Transaction{}).
		Where("transaction_date >= ?", since).
		Count(&stats.TransactionsSince).Error; err != nil {
		return nil, apperrors.Storage("count recent transactions", err)
	}

	if err := db.Model(&model.Card{}).
		Select("owner_id, COUNT(*) AS cards").
		Group("owner_id").
		Order("cards DESC").Order("owner_id").
		Scan(&stats.CardsByOwner).Error; err != nil {
		return nil, apperrors.Storage("count cards by owner", err)
	}
	return stats, nil
}

package repository

import (
	"context"

	apperrors "cardledger/internal/errors"
	"cardledger/internal/model"
)

// AppendTransaction adds a ledger entry. Entries are never updated.
func (r *ledgerStore) AppendTransaction(ctx context.Context, txn *model.Transaction) error {
	if err := r.db.WithContext(ctx).Create(txn).Error; err != nil {
		return apperrors.Storage("append transaction", err)
	}
	return nil
}

// ListTransactionsByOwner lists entries for every card of an owner, newest first.
func (r *ledgerStore) ListTransactionsByOwner(ctx context.Context, ownerID string) ([]model.Transaction, error) {
	var txns []model.Transaction
	if err := r.db.WithContext(ctx).
		Joins("JOIN cards ON cards.id = transactions.card_id").
		Where("cards.owner_id = ?", ownerID).
		Order("transactions.transaction_date DESC").Order("transactions.id DESC").
		Find(&txns).Error; err != nil {
		return nil, apperrors.Storage("list owner transactions", err)
	}
	return txns, nil
}

// ListTransactionsByCard lists a card's entries, newest first. The card must
// belong to ownerID.
func (r *ledgerStore) ListTransactionsByCard(ctx context.Context, cardNumber, ownerID string) ([]model.Transaction, error) {
	card, err := r.FindByNumber(ctx, cardNumber, ownerID)
	if err != nil {
		return nil, err
	}

	var txns []model.Transaction
	if err := r.db.WithContext(ctx).
		Where("card_id = ?", card.ID).
		Order("transaction_date DESC").Order("id DESC").
		Find(&txns).Error; err != nil {
		return nil, apperrors.Storage("list card transactions", err)
	}
	return txns, nil
}

// ListAllTransactions lists every entry, newest first.
func (r *ledgerStore) ListAllTransactions(ctx context.Context) ([]model.Transaction, error) {
	var txns []model.Transaction
	if err := r.db.WithContext(ctx).
		Order("transaction_date DESC").Order("id DESC").
		Find(&txns).Error; err != nil {
		return nil, apperrors.Storage("list all transactions", err)
	}
	return txns, nil
}

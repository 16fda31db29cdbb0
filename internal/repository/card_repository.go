package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "cardledger/internal/errors"
	"cardledger/internal/model"
)

// Exists reports whether any owner holds the card number.
func (r *ledgerStore) Exists(ctx context.Context, cardNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Card{}).
		Where("card_number = ?", cardNumber).
		Count(&count).Error; err != nil {
		return false, apperrors.Storage("card exists", err)
	}
	return count > 0, nil
}

// Insert creates a new card. The unique index on card_number is the
// authority on uniqueness; a collision surfaces as ErrConflict.
func (r *ledgerStore) Insert(ctx context.Context, card *model.Card) error {
	if err := r.db.WithContext(ctx).Create(card).Error; err != nil {
		if isDuplicateKey(err) {
			return fmt.Errorf("card number %s: %w", card.CardNumber, apperrors.ErrConflict)
		}
		return apperrors.Storage("insert card", err)
	}
	return nil
}

// FindByNumber finds a card owned by ownerID.
func (r *ledgerStore) FindByNumber(ctx context.Context, cardNumber, ownerID string) (*model.Card, error) {
	return r.findByNumber(r.db.WithContext(ctx), cardNumber, ownerID)
}

// FindByNumberForUpdate finds a card owned by ownerID and locks its row until
// the surrounding transaction ends.
func (r *ledgerStore) FindByNumberForUpdate(ctx context.Context, cardNumber, ownerID string) (*model.Card, error) {
	return r.findByNumber(r.lockForUpdate(r.db.WithContext(ctx)), cardNumber, ownerID)
}

func (r *ledgerStore) findByNumber(q *gorm.DB, cardNumber, ownerID string) (*model.Card, error) {
	var card model.Card
	err := q.Where("card_number = ? AND owner_id = ?", cardNumber, ownerID).First(&card).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCardNotFound
		}
		return nil, apperrors.Storage("find card", err)
	}
	return &card, nil
}

// ListByOwner lists an owner's cards, newest first.
func (r *ledgerStore) ListByOwner(ctx context.Context, ownerID string) ([]model.Card, error) {
	var cards []model.Card
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").Order("id DESC").
		Find(&cards).Error; err != nil {
		return nil, apperrors.Storage("list cards", err)
	}
	return cards, nil
}

// ListAll lists every card, newest first.
func (r *ledgerStore) ListAll(ctx context.Context) ([]model.Card, error) {
	var cards []model.Card
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").Order("id DESC").
		Find(&cards).Error; err != nil {
		return nil, apperrors.Storage("list all cards", err)
	}
	return cards, nil
}

// Update writes the mutable card fields if nobody changed the card since it
// was read, and bumps its version.
func (r *ledgerStore) Update(ctx context.Context, card *model.Card) error {
	res := r.db.WithContext(ctx).Model(&model.Card{}).
		Where("id = ? AND version = ?", card.ID, card.Version).
		Updates(map[string]interface{}{
			"balance":   card.Balance,
			"is_active": card.IsActive,
			"version":   card.Version + 1,
		})
	if res.Error != nil {
		return apperrors.Storage("update card", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("card %s modified concurrently: %w", card.CardNumber, apperrors.ErrConflict)
	}
	card.Version++
	return nil
}

// DeleteCardCascade removes a card and its whole transaction history in one
// database transaction.
func (r *ledgerStore) DeleteCardCascade(ctx context.Context, cardID uint64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("card_id = ?", cardID).Delete(&model.Transaction{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Card{}, cardID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrCardNotFound
		}
		return nil
	})
	if err == nil || errors.Is(err, apperrors.ErrCardNotFound) {
		return err
	}
	return apperrors.Storage("delete card", err)
}

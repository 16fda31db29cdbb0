package service

import (
	"github.com/shopspring/decimal"

	apperrors "cardledger/internal/errors"
	"cardledger/internal/model"
)

// CardState is a position in the card lifecycle.
type CardState string

const (
	StateActive   CardState = "active"
	StateInactive CardState = "inactive"
	StateDeleted  CardState = "deleted"
)

// StateOf returns the lifecycle state of card; a nil card is deleted.
func StateOf(card *model.Card) CardState {
	switch {
	case card == nil:
		return StateDeleted
	case card.IsActive:
		return StateActive
	default:
		return StateInactive
	}
}

// LifecycleController enforces the card state machine. Active and inactive
// cards toggle freely; either may be deleted, and deleted is terminal since the
// row is gone.
type LifecycleController struct{}

// RequireMutable rejects balance operations on cards that are not active.
func (LifecycleController) RequireMutable(card *model.Card) error {
	if StateOf(card) != StateActive {
		return apperrors.ErrCardInactive
	}
	return nil
}

// Toggle flips the card between active and inactive and returns the entry
// type documenting the change.
func (LifecycleController) Toggle(card *model.Card) model.TransactionType {
	card.IsActive = !card.IsActive
	if card.IsActive {
		return model.TransactionActivated
	}
	return model.TransactionDeactivated
}

// ShouldAutoDelete reports whether a balance operation of kind that left the
// card at balance ends the card's life.
func (LifecycleController) ShouldAutoDelete(kind model.TransactionType, balance decimal.Decimal) bool {
	return kind.AffectsBalance() && !balance.IsPositive()
}

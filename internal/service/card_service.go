package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"cardledger/internal/model"
	"cardledger/internal/repository"
)

// AdjustBalance sets an active card's balance to newBalance. Setting it to
// zero deletes the card together with the adjustment just recorded.
func (s *ledgerService) AdjustBalance(ctx context.Context, caller Caller, cardNumber string, newBalance decimal.Decimal) (*Outcome, error) {
	if err := s.validator.ValidateBalance("new balance", newBalance); err != nil {
		return nil, err
	}

	m, err := s.mutate(ctx, caller, cardNumber, func(ctx context.Context, store repository.LedgerStore, card *model.Card) (*mutation, error) {
		if err := s.lifecycle.RequireMutable(card); err != nil {
			return nil, err
		}
		return s.applyBalance(ctx, store, caller, card, model.TransactionBalanceAdjustment, newBalance)
	})
	if err != nil {
		return nil, err
	}

	if m.deleted {
		return m.outcome(fmt.Sprintf("card %s was deleted because its balance was set to zero", m.card.CardNumber)), nil
	}
	return m.outcome(fmt.Sprintf("balance of card %s updated to %s", m.card.CardNumber, m.card.Balance.StringFixed(2))), nil
}

// ToggleStatus activates an inactive card or deactivates an active one.
func (s *ledgerService) ToggleStatus(ctx context.Context, caller Caller, cardNumber string) (*Outcome, error) {
	m, err := s.mutate(ctx, caller, cardNumber, func(ctx context.Context, store repository.LedgerStore, card *model.Card) (*mutation, error) {
		before := *card
		kind := s.lifecycle.Toggle(card)
		if err := store.Update(ctx, card); err != nil {
			return nil, err
		}

		txn := s.recorder.Record(kind, before, *card, caller)
		if err := store.AppendTransaction(ctx, &txn); err != nil {
			return nil, err
		}
		return &mutation{card: *card, txn: &txn}, nil
	})
	if err != nil {
		return nil, err
	}

	status := "deactivated"
	if m.card.IsActive {
		status = "activated"
	}
	return m.outcome(fmt.Sprintf("card %s %s", m.card.CardNumber, status)), nil
}

// Delete removes a card and its history whatever its balance or status.
func (s *ledgerService) Delete(ctx context.Context, caller Caller, cardNumber string) (*Outcome, error) {
	m, err := s.mutate(ctx, caller, cardNumber, func(ctx context.Context, store repository.LedgerStore, card *model.Card) (*mutation, error) {
		if err := store.DeleteCardCascade(ctx, card.ID); err != nil {
			return nil, err
		}
		return &mutation{card: *card, deleted: true}, nil
	})
	if err != nil {
		return nil, err
	}
	return m.outcome(fmt.Sprintf("card %s deleted", m.card.CardNumber)), nil
}

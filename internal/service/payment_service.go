package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	apperrors "cardledger/internal/errors"
	"cardledger/internal/model"
	"cardledger/internal/repository"
)

// ProcessPayment debits amount from an active card. A payment that empties
// the card deletes it, history included, before returning.
func (s *ledgerService) ProcessPayment(ctx context.Context, caller Caller, cardNumber string, amount decimal.Decimal) (*Outcome, error) {
	if err := s.validator.ValidatePaymentAmount(amount); err != nil {
		return nil, err
	}

	m, err := s.mutate(ctx, caller, cardNumber, func(ctx context.Context, store repository.LedgerStore, card *model.Card) (*mutation, error) {
		if err := s.lifecycle.RequireMutable(card); err != nil {
			return nil, err
		}
		if card.Balance.LessThan(amount) {
			return nil, &apperrors.InsufficientFundsError{
				CardNumber: card.CardNumber,
				Available:  card.Balance,
				Requested:  amount,
			}
		}
		return s.applyBalance(ctx, store, caller, card, model.TransactionPayment, card.Balance.Sub(amount))
	})
	if err != nil {
		return nil, err
	}

	if m.deleted {
		return m.outcome(fmt.Sprintf("payment of %s accepted; card %s was deleted because its balance reached zero",
			amount.StringFixed(2), m.card.CardNumber)), nil
	}
	return m.outcome(fmt.Sprintf("payment of %s accepted; remaining balance %s",
		amount.StringFixed(2), m.card.Balance.StringFixed(2))), nil
}

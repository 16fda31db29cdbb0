package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"cardledger/internal/cache"
	apperrors "cardledger/internal/errors"
	"cardledger/internal/events"
	"cardledger/internal/model"
	"cardledger/internal/repository"
)

const (
	defaultIssueAttempts = 10
	defaultCardCacheTTL  = 5 * time.Minute
)

// Caller identifies who requested an operation. All fields are opaque to the
// ledger: OwnerID scopes lookups, Actor and SourceAddress are copied into
// audit entries verbatim.
type Caller struct {
	OwnerID       string
	Actor         string
	SourceAddress string
}

// Outcome describes a committed mutation.
type Outcome struct {
	Message     string
	Card        *model.Card // nil when the card no longer exists
	Transaction *model.Transaction
	Deleted     bool
}

// LedgerService issues cards and applies every balance and status change.
type LedgerService interface {
	Issue(ctx context.Context, caller Caller, initialBalance decimal.Decimal) (*model.Card, error)
	IssueBatch(ctx context.Context, caller Caller, count int, initialBalance decimal.Decimal) ([]model.Card, error)
	AdjustBalance(ctx context.Context, caller Caller, cardNumber string, newBalance decimal.Decimal) (*Outcome, error)
	ProcessPayment(ctx context.Context, caller Caller, cardNumber string, amount decimal.Decimal) (*Outcome, error)
	ToggleStatus(ctx context.Context, caller Caller, cardNumber string) (*Outcome, error)
	Delete(ctx context.Context, caller Caller, cardNumber string) (*Outcome, error)

	Card(ctx context.Context, ownerID, cardNumber string) (*model.Card, error)
	CardsByOwner(ctx context.Context, ownerID string) ([]model.Card, error)
	TransactionsByOwner(ctx context.Context, ownerID string) ([]model.Transaction, error)
	TransactionsByCard(ctx context.Context, ownerID, cardNumber string) ([]model.Transaction, error)
	AllCards(ctx context.Context) ([]model.Card, error)
	AllTransactions(ctx context.Context) ([]model.Transaction, error)
	Stats(ctx context.Context) (*model.LedgerStats, error)
}

// Options carries the optional collaborators of the ledger service.
type Options struct {
	Cache            *cache.Client
	CacheTTL         time.Duration
	Publisher        events.Publisher
	Logger           *zap.Logger
	MaxIssueAttempts int
	Now              func() time.Time
}

type ledgerService struct {
	store     repository.LedgerStore
	generator NumberGenerator
	validator *CardValidator
	recorder  *TransactionRecorder
	lifecycle LifecycleController
	cache     *cache.Client
	cacheTTL  time.Duration
	publisher events.Publisher
	log       *zap.Logger
	attempts  int
	now       func() time.Time
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(store repository.LedgerStore, generator NumberGenerator, opts Options) LedgerService {
	s := &ledgerService{
		store:     store,
		generator: generator,
		validator: NewCardValidator(),
		cache:     opts.Cache,
		cacheTTL:  opts.CacheTTL,
		publisher: opts.Publisher,
		log:       opts.Logger,
		attempts:  opts.MaxIssueAttempts,
		now:       opts.Now,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.cacheTTL <= 0 {
		s.cacheTTL = defaultCardCacheTTL
	}
	if s.publisher == nil {
		s.publisher = events.Nop{}
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.attempts < 1 {
		s.attempts = defaultIssueAttempts
	}
	s.recorder = NewTransactionRecorder(s.now)
	return s
}

// Issue creates an active card holding initialBalance under a fresh number.
// Issuance itself is not recorded as a transaction.
func (s *ledgerService) Issue(ctx context.Context, caller Caller, initialBalance decimal.Decimal) (*model.Card, error) {
	if err := s.validateIssue(caller, initialBalance); err != nil {
		return nil, err
	}
	return s.issue(ctx, caller, initialBalance)
}

// IssueBatch issues count cards one after another. Cards issued before a
// failure stay issued and are returned alongside the error.
func (s *ledgerService) IssueBatch(ctx context.Context, caller Caller, count int, initialBalance decimal.Decimal) ([]model.Card, error) {
	if err := s.validator.ValidateBatchCount(count); err != nil {
		return nil, err
	}
	if err := s.validateIssue(caller, initialBalance); err != nil {
		return nil, err
	}

	cards := make([]model.Card, 0, count)
	for i := 0; i < count; i++ {
		card, err := s.issue(ctx, caller, initialBalance)
		if err != nil {
			return cards, fmt.Errorf("issued %d of %d cards: %w", len(cards), count, err)
		}
		cards = append(cards, *card)
	}
	return cards, nil
}

func (s *ledgerService) validateIssue(caller Caller, initialBalance decimal.Decimal) error {
	if caller.OwnerID == "" {
		return apperrors.InvalidArgument("owner is required")
	}
	if err := s.validator.ValidateCaller(caller); err != nil {
		return err
	}
	return s.validator.ValidateBalance("initial balance", initialBalance)
}

// issue draws numbers until one is free. The Exists pre-check only saves a
// round trip; the unique index decides, and a Conflict at insert means
// another issuance won the race for that number.
func (s *ledgerService) issue(ctx context.Context, caller Caller, initialBalance decimal.Decimal) (*model.Card, error) {
	for attempt := 1; attempt <= s.attempts; attempt++ {
		number := s.generator.Next()

		taken, err := s.store.Exists(ctx, number)
		if err != nil {
			return nil, err
		}
		if taken {
			s.log.Debug("card number taken, drawing again", zap.Int("attempt", attempt))
			continue
		}

		card := &model.Card{
			CardNumber:     number,
			Balance:        initialBalance,
			InitialBalance: initialBalance,
			IsActive:       true,
			OwnerID:        caller.OwnerID,
			CreatedBy:      caller.Actor,
			CreatedAt:      s.now(),
		}
		err = s.store.Insert(ctx, card)
		if err == nil {
			s.publish(ctx, events.Event{
				Type:       events.CardIssued,
				OwnerID:    card.OwnerID,
				CardNumber: card.CardNumber,
				Card:       card,
				Actor:      caller.Actor,
			})
			return card, nil
		}
		if !errors.Is(err, apperrors.ErrConflict) {
			return nil, err
		}
		s.log.Warn("card number collided at insert, drawing again", zap.Int("attempt", attempt))
	}

	s.log.Error("card number space exhausted", zap.Int("attempts", s.attempts))
	return nil, fmt.Errorf("no unused card number after %d attempts: %w", s.attempts, apperrors.ErrConflict)
}

// mutation is the result of one committed unit of work on a card.
type mutation struct {
	card    model.Card
	txn     *model.Transaction
	deleted bool
}

func (m *mutation) outcome(message string) *Outcome {
	out := &Outcome{
		Message:     message,
		Transaction: m.txn,
		Deleted:     m.deleted,
	}
	if !m.deleted {
		card := m.card
		out.Card = &card
	}
	return out
}

// mutate locks the caller's card inside one store transaction and runs apply
// against it. Side effects outside the database run only after commit.
func (s *ledgerService) mutate(
	ctx context.Context,
	caller Caller,
	cardNumber string,
	apply func(ctx context.Context, store repository.LedgerStore, card *model.Card) (*mutation, error),
) (*mutation, error) {
	if err := s.validator.ValidateCardNumber(cardNumber); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateCaller(caller); err != nil {
		return nil, err
	}

	var result *mutation
	err := s.store.WithTransaction(ctx, func(ctx context.Context, store repository.LedgerStore) error {
		card, err := store.FindByNumberForUpdate(ctx, cardNumber, caller.OwnerID)
		if err != nil {
			return err
		}
		result, err = apply(ctx, store, card)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.afterCommit(ctx, caller, result)
	return result, nil
}

// applyBalance writes the new balance, its ledger entry and, when the balance
// is exhausted, the cascading delete. It must run inside mutate.
func (s *ledgerService) applyBalance(
	ctx context.Context,
	store repository.LedgerStore,
	caller Caller,
	card *model.Card,
	kind model.TransactionType,
	newBalance decimal.Decimal,
) (*mutation, error) {
	before := *card
	card.Balance = newBalance
	if err := store.Update(ctx, card); err != nil {
		return nil, err
	}

	txn := s.recorder.Record(kind, before, *card, caller)
	if err := store.AppendTransaction(ctx, &txn); err != nil {
		return nil, err
	}

	result := &mutation{card: *card, txn: &txn}
	if s.lifecycle.ShouldAutoDelete(kind, card.Balance) {
		if err := store.DeleteCardCascade(ctx, card.ID); err != nil {
			return nil, err
		}
		result.deleted = true
	}
	return result, nil
}

func (s *ledgerService) afterCommit(ctx context.Context, caller Caller, m *mutation) {
	s.cache.Invalidate(ctx, cache.CardKey(caller.OwnerID, m.card.CardNumber), s.generationTTL())

	if m.txn != nil {
		s.publish(ctx, events.Event{
			Type:        events.TransactionRecorded,
			OwnerID:     caller.OwnerID,
			CardNumber:  m.card.CardNumber,
			Transaction: m.txn,
			Actor:       caller.Actor,
		})
	}
	if m.deleted {
		s.log.Info("card deleted",
			zap.String("card_number", m.card.CardNumber),
			zap.String("owner_id", caller.OwnerID),
			zap.String("actor", caller.Actor),
			zap.String("balance", m.card.Balance.StringFixed(2)),
		)
		s.publish(ctx, events.Event{
			Type:        events.CardDeleted,
			OwnerID:     caller.OwnerID,
			CardNumber:  m.card.CardNumber,
			Transaction: m.txn,
			Actor:       caller.Actor,
		})
	}
}

func (s *ledgerService) publish(ctx context.Context, evt events.Event) {
	evt.OccurredAt = s.now()
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.log.Warn("ledger event not published",
			zap.String("type", string(evt.Type)),
			zap.String("card_number", evt.CardNumber),
			zap.Error(err),
		)
	}
}

// Card returns one of the owner's cards, served from cache when possible.
// The generation is sampled before the store read so that a mutation
// committing in between prevents the stale snapshot from being cached.
func (s *ledgerService) Card(ctx context.Context, ownerID, cardNumber string) (*model.Card, error) {
	if err := s.validator.ValidateCardNumber(cardNumber); err != nil {
		return nil, err
	}

	key := cache.CardKey(ownerID, cardNumber)
	gen := s.cache.Generation(ctx, key)
	var cached model.Card
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	card, err := s.store.FindByNumber(ctx, cardNumber, ownerID)
	if err != nil {
		return nil, err
	}
	if !s.cache.SetJSONIfGeneration(ctx, key, gen, card, s.cacheTTL) {
		s.log.Debug("card snapshot not cached", zap.String("card_number", cardNumber))
	}
	return card, nil
}

// generationTTL outlives every snapshot filled under the previous generation.
func (s *ledgerService) generationTTL() time.Duration {
	return 2 * s.cacheTTL
}

// CardsByOwner lists the owner's cards, newest first.
func (s *ledgerService) CardsByOwner(ctx context.Context, ownerID string) ([]model.Card, error) {
	return s.store.ListByOwner(ctx, ownerID)
}

// TransactionsByOwner lists entries across the owner's cards, newest first.
func (s *ledgerService) TransactionsByOwner(ctx context.Context, ownerID string) ([]model.Transaction, error) {
	return s.store.ListTransactionsByOwner(ctx, ownerID)
}

// TransactionsByCard lists one card's entries, newest first.
func (s *ledgerService) TransactionsByCard(ctx context.Context, ownerID, cardNumber string) ([]model.Transaction, error) {
	if err := s.validator.ValidateCardNumber(cardNumber); err != nil {
		return nil, err
	}
	return s.store.ListTransactionsByCard(ctx, cardNumber, ownerID)
}

// AllCards lists every card in the ledger, newest first.
func (s *ledgerService) AllCards(ctx context.Context) ([]model.Card, error) {
	return s.store.ListAll(ctx)
}

// AllTransactions lists every entry in the ledger, newest first.
func (s *ledgerService) AllTransactions(ctx context.Context) ([]model.Transaction, error) {
	return s.store.ListAllTransactions(ctx)
}

// Stats summarises the ledger. TransactionsSince counts entries dated since
// local midnight of the service clock.
func (s *ledgerService) Stats(ctx context.Context) (*model.LedgerStats, error) {
	now := s.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return s.store.Stats(ctx, midnight)
}

package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "cardledger/internal/errors"
	"cardledger/internal/model"
	"cardledger/internal/repository"
)

// MockLedgerStore is a mock implementation of repository.LedgerStore.
type MockLedgerStore struct {
	mock.Mock
}

func (m *MockLedgerStore) Exists(ctx context.Context, cardNumber string) (bool, error) {
	args := m.Called(ctx, cardNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedgerStore) Insert(ctx context.Context, card *model.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockLedgerStore) FindByNumber(ctx context.Context, cardNumber, ownerID string) (*model.Card, error) {
	args := m.Called(ctx, cardNumber, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Card), args.Error(1)
}

func (m *MockLedgerStore) FindByNumberForUpdate(ctx context.Context, cardNumber, ownerID string) (*model.Card, error) {
	args := m.Called(ctx, cardNumber, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Card), args.Error(1)
}

func (m *MockLedgerStore) ListByOwner(ctx context.Context, ownerID string) ([]model.Card, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]model.Card), args.Error(1)
}

func (m *MockLedgerStore) ListAll(ctx context.Context) ([]model.Card, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Card), args.Error(1)
}

func (m *MockLedgerStore) Update(ctx context.Context, card *model.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockLedgerStore) DeleteCardCascade(ctx context.Context, cardID uint64) error {
	args := m.Called(ctx, cardID)
	return args.Error(0)
}

func (m *MockLedgerStore) AppendTransaction(ctx context.Context, txn *model.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockLedgerStore) ListTransactionsByOwner(ctx context.Context, ownerID string) ([]model.Transaction, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]model.Transaction), args.Error(1)
}

func (m *MockLedgerStore) ListTransactionsByCard(ctx context.Context, cardNumber, ownerID string) ([]model.Transaction, error) {
	args := m.Called(ctx, cardNumber, ownerID)
	return args.Get(0).([]model.Transaction), args.Error(1)
}

func (m *MockLedgerStore) ListAllTransactions(ctx context.Context) ([]model.Transaction, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Transaction), args.Error(1)
}

func (m *MockLedgerStore) Stats(ctx context.Context, since time.Time) (*model.LedgerStats, error) {
	args := m.Called(ctx, since)
	if v := args.Get(0); v != nil {
		return v.(*model.LedgerStats), args.Error(1)
	}
	return nil, args.Error(1)
}

// WithTransaction hands the mock itself to fn; a configured error skips fn.
func (m *MockLedgerStore) WithTransaction(ctx context.Context, fn func(ctx context.Context, store repository.LedgerStore) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx, m)
}

// sequenceGenerator replays a fixed list of card numbers, cycling at the end.
type sequenceGenerator struct {
	mu      sync.Mutex
	numbers []string
	next    int
}

func (g *sequenceGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := g.numbers[g.next%len(g.numbers)]
	g.next++
	return n
}

func withNumber(number string) interface{} {
	return mock.MatchedBy(func(c *model.Card) bool { return c.CardNumber == number })
}

func newMockLedger(numbers ...string) (LedgerService, *MockLedgerStore, *recordingPublisher) {
	store := new(MockLedgerStore)
	publisher := &recordingPublisher{}
	svc := NewLedgerService(store, &sequenceGenerator{numbers: numbers}, Options{
		Publisher:        publisher,
		MaxIssueAttempts: 3,
	})
	return svc, store, publisher
}

func TestIssue_SkipsNumberReportedTaken(t *testing.T) {
	svc, store, _ := newMockLedger("11111111", "22222222")
	ctx := context.Background()

	store.On("Exists", ctx, "11111111").Return(true, nil).Once()
	store.On("Exists", ctx, "22222222").Return(false, nil).Once()
	store.On("Insert", ctx, withNumber("22222222")).Return(nil).Once()

	card, err := svc.Issue(ctx, ownerA, money("5.00"))

	require.NoError(t, err)
	assert.Equal(t, "22222222", card.CardNumber)
	store.AssertExpectations(t)
	store.AssertNotCalled(t, "Insert", ctx, withNumber("11111111"))
}

func TestIssue_RetriesAfterInsertConflict(t *testing.T) {
	svc, store, publisher := newMockLedger("11111111", "22222222")
	ctx := context.Background()

	store.On("Exists", ctx, mock.Anything).Return(false, nil).Twice()
	store.On("Insert", ctx, withNumber("11111111")).Return(apperrors.ErrConflict).Once()
	store.On("Insert", ctx, withNumber("22222222")).Return(nil).Once()

	card, err := svc.Issue(ctx, ownerA, money("5.00"))

	require.NoError(t, err)
	assert.Equal(t, "22222222", card.CardNumber)
	assert.Len(t, publisher.types(), 1, "only the stored card is announced")
	store.AssertExpectations(t)
}

func TestIssue_GivesUpAfterMaxAttempts(t *testing.T) {
	svc, store, publisher := newMockLedger("11111111")
	ctx := context.Background()

	store.On("Exists", ctx, "11111111").Return(false, nil)
	store.On("Insert", ctx, mock.Anything).Return(apperrors.ErrConflict)

	card, err := svc.Issue(ctx, ownerA, money("5.00"))

	assert.Nil(t, card)
	assert.True(t, errors.Is(err, apperrors.ErrConflict))
	store.AssertNumberOfCalls(t, "Insert", 3)
	assert.Empty(t, publisher.types())
}

func TestIssue_StorageFailureIsNotRetried(t *testing.T) {
	svc, store, _ := newMockLedger("11111111")
	ctx := context.Background()

	store.On("Exists", ctx, "11111111").
		Return(false, apperrors.Storage("card exists", errors.New("connection refused"))).Once()

	_, err := svc.Issue(ctx, ownerA, money("5.00"))

	assert.True(t, errors.Is(err, apperrors.ErrStorageFailure))
	store.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	store.AssertNumberOfCalls(t, "Exists", 1)
}

func TestIssueBatch_ReturnsCardsIssuedBeforeFailure(t *testing.T) {
	svc, store, _ := newMockLedger("11111111", "22222222", "33333333")
	ctx := context.Background()

	store.On("Exists", ctx, mock.Anything).Return(false, nil)
	store.On("Insert", ctx, withNumber("11111111")).Return(nil).Once()
	store.On("Insert", ctx, withNumber("22222222")).Return(nil).Once()
	store.On("Insert", ctx, withNumber("33333333")).
		Return(apperrors.Storage("insert card", errors.New("disk full"))).Once()

	cards, err := svc.IssueBatch(ctx, ownerA, 5, money("1.00"))

	assert.True(t, errors.Is(err, apperrors.ErrStorageFailure))
	require.Len(t, cards, 2)
	assert.Equal(t, "11111111", cards[0].CardNumber)
	assert.Equal(t, "22222222", cards[1].CardNumber)
}

func TestProcessPayment_StorageFailureRollsBackSilently(t *testing.T) {
	svc, store, publisher := newMockLedger()
	ctx := context.Background()
	card := &model.Card{ID: 1, CardNumber: "12345678", Balance: money("50.00"), IsActive: true, OwnerID: "owner-a"}

	store.On("WithTransaction", ctx).Return(nil).Once()
	store.On("FindByNumberForUpdate", ctx, "12345678", "owner-a").Return(card, nil).Once()
	store.On("Update", ctx, mock.Anything).Return(nil).Once()
	store.On("AppendTransaction", ctx, mock.Anything).
		Return(apperrors.Storage("append transaction", errors.New("write timeout"))).Once()

	out, err := svc.ProcessPayment(ctx, ownerA, "12345678", money("10.00"))

	assert.Nil(t, out)
	assert.True(t, errors.Is(err, apperrors.ErrStorageFailure))
	assert.Empty(t, publisher.types())
	store.AssertNotCalled(t, "DeleteCardCascade", mock.Anything, mock.Anything)
	store.AssertExpectations(t)
}

func TestAdjustBalance_ConcurrentModificationSurfacesConflict(t *testing.T) {
	svc, store, publisher := newMockLedger()
	ctx := context.Background()
	card := &model.Card{ID: 1, CardNumber: "12345678", Balance: money("50.00"), IsActive: true, OwnerID: "owner-a"}

	store.On("WithTransaction", ctx).Return(nil).Once()
	store.On("FindByNumberForUpdate", ctx, "12345678", "owner-a").Return(card, nil).Once()
	store.On("Update", ctx, mock.Anything).Return(apperrors.ErrConflict).Once()

	_, err := svc.AdjustBalance(ctx, ownerA, "12345678", money("20.00"))

	assert.True(t, errors.Is(err, apperrors.ErrConflict))
	assert.Empty(t, publisher.types())
	store.AssertNotCalled(t, "AppendTransaction", mock.Anything, mock.Anything)
}

func TestStats_CountsFromLocalMidnight(t *testing.T) {
	store := new(MockLedgerStore)
	zone := time.FixedZone("UTC+3", 3*60*60)
	svc := NewLedgerService(store, &sequenceGenerator{numbers: []string{"11111111"}}, Options{
		Now: func() time.Time { return time.Date(2025, time.March, 10, 1, 30, 0, 0, zone) },
	})
	ctx := context.Background()
	midnight := time.Date(2025, time.March, 10, 0, 0, 0, 0, zone)
	want := &model.LedgerStats{TotalCards: 4, TransactionsSince: 2}

	store.On("Stats", ctx, midnight).Return(want, nil).Once()

	got, err := svc.Stats(ctx)

	require.NoError(t, err)
	assert.Same(t, want, got)
	store.AssertExpectations(t)
}

func TestStats_PropagatesStorageFailure(t *testing.T) {
	svc, store, _ := newMockLedger()
	ctx := context.Background()

	store.On("Stats", ctx, mock.Anything).Return(nil, apperrors.Storage("count cards", errors.New("disk full"))).Once()

	_, err := svc.Stats(ctx)

	assert.True(t, errors.Is(err, apperrors.ErrStorageFailure))
}

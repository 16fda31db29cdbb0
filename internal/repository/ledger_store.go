package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "cardledger/internal/errors"
	"cardledger/internal/model"
)

// mysqlDuplicateEntry is the MySQL server error for a unique key violation.
const mysqlDuplicateEntry = 1062

// LedgerStore defines card and transaction persistence operations.
// Lookups scoped by owner report apperrors.ErrCardNotFound both for missing
// cards and for cards held by another owner.
type LedgerStore interface {
	Exists(ctx context.Context, cardNumber string) (bool, error)
	Insert(ctx context.Context, card *model.Card) error
	FindByNumber(ctx context.Context, cardNumber, ownerID string) (*model.Card, error)
	FindByNumberForUpdate(ctx context.Context, cardNumber, ownerID string) (*model.Card, error)
	ListByOwner(ctx context.Context, ownerID string) ([]model.Card, error)
	ListAll(ctx context.Context) ([]model.Card, error)
	Update(ctx context.Context, card *model.Card) error
	DeleteCardCascade(ctx context.Context, cardID uint64) error

	AppendTransaction(ctx context.Context, txn *model.Transaction) error
	ListTransactionsByOwner(ctx context.Context, ownerID string) ([]model.Transaction, error)
	ListTransactionsByCard(ctx context.Context, cardNumber, ownerID string) ([]model.Transaction, error)
	ListAllTransactions(ctx context.Context) ([]model.Transaction, error)

	Stats(ctx context.Context, since time.Time) (*model.LedgerStats, error)

	// WithTransaction runs fn against a store bound to one database
	// transaction. Returning an error rolls every write back.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, store LedgerStore) error) error
}

type ledgerStore struct {
	db *gorm.DB
}

// NewLedgerStore creates a GORM-backed ledger store.
func NewLedgerStore(db *gorm.DB) LedgerStore {
	return &ledgerStore{db: db}
}

// WithTransaction executes a function within a database transaction.
func (r *ledgerStore) WithTransaction(ctx context.Context, fn func(ctx context.Context, store LedgerStore) error) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &ledgerStore{db: tx})
	})
	if err == nil || isDomainError(err) {
		return err
	}
	return apperrors.Storage("ledger transaction", err)
}

// lockForUpdate adds a row lock on dialects that support SELECT ... FOR UPDATE.
// SQLite serialises writers on its own.
func (r *ledgerStore) lockForUpdate(q *gorm.DB) *gorm.DB {
	if r.db.Dialector.Name() == "sqlite" {
		return q
	}
	return q.Clauses(clause.Locking{Strength: "UPDATE"})
}

func isDomainError(err error) bool {
	return apperrors.IsClientError(err) ||
		errors.Is(err, apperrors.ErrConflict) ||
		errors.Is(err, apperrors.ErrStorageFailure)
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

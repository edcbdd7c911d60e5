package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/maxempolk/bank-card-interface/internal/domain"
)

// TransactionRepository defines data access for stored transactions.
type TransactionRepository interface {
	// InsertMany persists a batch in one unordered operation. Rows that
	// collide on the fingerprint unique index are skipped individually;
	// any other failure is returned as an error. The returned count is
	// the number of rows actually written.
	InsertMany(ctx context.Context, transactions []*domain.Transaction) (int, error)
	CountByUser(ctx context.Context, telegramUserID string) (int, error)
	ListPage(ctx context.Context, telegramUserID string, limit, offset int) ([]*domain.Transaction, error)
	EnsureIndexes(ctx context.Context) error
}

// UserRepository defines data access for registered users.
type UserRepository interface {
	Upsert(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, telegramUserID string) (*domain.User, error)
}

// RawTransaction is a transaction as fetched from upstream or submitted
// by a save request, before fingerprinting.
type RawTransaction struct {
	OccurredOn       time.Time
	Direction        domain.Direction
	Description      string
	UpstreamCategory string
	Amount           decimal.Decimal
}

// BankClient fetches balance and transaction data from the upstream
// banking API. Both calls honor context cancellation and are bounded by
// the client's configured timeout.
type BankClient interface {
	// FetchBalance returns nil when upstream answered without a balance
	// field.
	FetchBalance(ctx context.Context, accountNumber string) (*decimal.Decimal, error)
	FetchTransactions(ctx context.Context, accountNumber string) ([]RawTransaction, error)
}

// BalanceCache stores the last successfully fetched balance per account,
// served when upstream is unavailable.
type BalanceCache interface {
	Get(ctx context.Context, accountNumber string) (*decimal.Decimal, error)
	Set(ctx context.Context, accountNumber string, balance decimal.Decimal) error
}

// Ingestor hands fetched transactions to the ingestion pipeline.
type Ingestor interface {
	Ingest(ctx context.Context, input IngestInput) (*IngestResult, error)
}

// PageReader serves stored transactions back in pages.
type PageReader interface {
	ListPage(ctx context.Context, input ListPageInput) (*TransactionPage, error)
}

// IDGenerator generates unique record IDs.
type IDGenerator interface {
	Generate() string
}

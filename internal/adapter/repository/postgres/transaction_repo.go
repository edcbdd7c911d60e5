package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/maxempolk/bank-card-interface/internal/domain"
)

const pgErrDuplicateObject = "42P07"

// TransactionRepository implements usecase.TransactionRepository on
// PostgreSQL. The fingerprint unique index is the enforcement point for
// deduplication; everything else builds on it.
type TransactionRepository struct {
	pool    *pgxpool.Pool
	retrier *Retrier
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool, logger zerolog.Logger) *TransactionRepository {
	return &TransactionRepository{
		pool:    pool,
		retrier: NewRetrier(logger),
	}
}

const insertTransactionQuery = `
	INSERT INTO transactions (
		id, fingerprint, telegram_user_id, account_number, amount,
		occurred_on, direction, description, upstream_category, inserted_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (fingerprint) DO NOTHING
`

// InsertMany submits the whole batch as one unordered pipeline. A
// fingerprint collision skips only its own row; any other error fails
// the batch. Returns the number of rows actually written.
func (r *TransactionRepository) InsertMany(ctx context.Context, transactions []*domain.Transaction) (int, error) {
	inserted := 0

	err := r.retrier.Retry(ctx, func() error {
		inserted = 0

		batch := &pgx.Batch{}
		for _, tx := range transactions {
			var category *string
			if tx.UpstreamCategory != "" {
				category = &tx.UpstreamCategory
			}

			batch.Queue(insertTransactionQuery,
				tx.ID,
				tx.Fingerprint,
				tx.TelegramUserID,
				tx.AccountNumber,
				tx.Amount.StringFixed(2),
				tx.OccurredOn,
				string(tx.Direction),
				tx.Description,
				category,
				tx.InsertedAt,
			)
		}

		results := r.pool.SendBatch(ctx, batch)
		defer results.Close()

		for range transactions {
			tag, err := results.Exec()
			if err != nil {
				return err
			}
			inserted += int(tag.RowsAffected())
		}

		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to insert transactions: %w", err)
	}

	return inserted, nil
}

// CountByUser returns the number of stored transactions for a user.
func (r *TransactionRepository) CountByUser(ctx context.Context, telegramUserID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM transactions WHERE telegram_user_id = $1`,
		telegramUserID,
	).Scan(&count)

	return count, err
}

// ListPage retrieves one page of a user's transactions, newest
// occurred_on first, tie-broken by insertion order via the ULID id.
func (r *TransactionRepository) ListPage(ctx context.Context, telegramUserID string, limit, offset int) ([]*domain.Transaction, error) {
	query := `
		SELECT id, fingerprint, telegram_user_id, account_number, amount::text,
		       occurred_on, direction, description, upstream_category, inserted_at
		FROM transactions
		WHERE telegram_user_id = $1
		ORDER BY occurred_on DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, telegramUserID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := make([]*domain.Transaction, 0, limit)
	for rows.Next() {
		var (
			tx        domain.Transaction
			amount    string
			direction string
			category  *string
		)

		err := rows.Scan(
			&tx.ID,
			&tx.Fingerprint,
			&tx.TelegramUserID,
			&tx.AccountNumber,
			&amount,
			&tx.OccurredOn,
			&direction,
			&tx.Description,
			&category,
			&tx.InsertedAt,
		)
		if err != nil {
			return nil, err
		}

		tx.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stored amount %q: %w", amount, err)
		}
		tx.Direction = domain.Direction(direction)
		if category != nil {
			tx.UpstreamCategory = *category
		}

		transactions = append(transactions, &tx)
	}

	return transactions, rows.Err()
}

// EnsureIndexes creates the two required indexes. Safe to call from
// multiple process instances at once: the loser of the creation race
// observes "already exists" and proceeds.
func (r *TransactionRepository) EnsureIndexes(ctx context.Context) error {
	statements := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS transaction_fingerprint_unique
			ON transactions (fingerprint)`,
		`CREATE INDEX IF NOT EXISTS transactions_user_date_idx
			ON transactions (telegram_user_id, occurred_on DESC)`,
	}

	for _, stmt := range statements {
		if _, err := r.pool.Exec(ctx, stmt); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgErrDuplicateObject {
				continue
			}
			return fmt.Errorf("failed to ensure index: %w", err)
		}
	}

	return nil
}

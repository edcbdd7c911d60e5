package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxempolk/bank-card-interface/internal/domain"
)

// UserRepository implements user persistence.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new user repository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Upsert inserts the user or replaces the card number of an existing
// one. created_at is kept from the first registration.
func (r *UserRepository) Upsert(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (telegram_user_id, card_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (telegram_user_id) DO UPDATE
		SET card_number = EXCLUDED.card_number,
		    updated_at = EXCLUDED.updated_at
	`

	_, err := r.pool.Exec(ctx, query,
		user.TelegramUserID,
		user.CardNumber,
		user.CreatedAt,
		user.UpdatedAt,
	)

	return err
}

// GetByID retrieves a user by Telegram user ID.
func (r *UserRepository) GetByID(ctx context.Context, telegramUserID string) (*domain.User, error) {
	query := `
		SELECT telegram_user_id, card_number, created_at, updated_at
		FROM users
		WHERE telegram_user_id = $1
	`

	var user domain.User
	err := r.pool.QueryRow(ctx, query, telegramUserID).Scan(
		&user.TelegramUserID,
		&user.CardNumber,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}

	return &user, err
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceRequest asks for the balance of one account.
type BalanceRequest struct {
	AccountNumber string `json:"accountNumber"`
}

// RegisterUserRequest registers a card number for a Telegram user.
type RegisterUserRequest struct {
	TelegramUserID string `json:"telegram_user_id"`
	CardNumber     string `json:"card_number"`
}

// SaveTransactionItem is one transaction in a save request.
type SaveTransactionItem struct {
	Amount       decimal.Decimal `json:"amount"`
	Date         string          `json:"date"`
	Type         string          `json:"type"`
	Description  string          `json:"description"`
	OriginalType string          `json:"original_type,omitempty"`
}

// OccurredOn parses the item date. Time-of-day, when present, is
// irrelevant downstream: fingerprints only keep the calendar day.
func (i SaveTransactionItem) OccurredOn() (time.Time, error) {
	var lastErr error
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		t, err := time.Parse(layout, i.Date)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// SaveTransactionsRequest submits a fetched batch for ingestion.
type SaveTransactionsRequest struct {
	TelegramUserID string                `json:"telegram_user_id"`
	AccountNumber  string                `json:"account_number"`
	Transactions   []SaveTransactionItem `json:"transactions"`
}

// RefreshRequest triggers a refresh cycle for a registered user.
type RefreshRequest struct {
	TelegramUserID string `json:"telegram_user_id"`
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/maxempolk/bank-card-interface/internal/domain"
	"github.com/maxempolk/bank-card-interface/internal/usecase"
)

// ErrorResponse is the generic error shape.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// UpstreamErrorResponse passes a non-200 upstream status through.
type UpstreamErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// BalanceResponse carries the proxied balance; null when upstream
// answered without one.
type BalanceResponse struct {
	Balance *decimal.Decimal `json:"balance"`
}

// TransactionResponse represents a stored transaction in API responses.
type TransactionResponse struct {
	ID             string          `json:"id"`
	Fingerprint    string          `json:"fingerprint"`
	TelegramUserID string          `json:"telegram_user_id"`
	AccountNumber  string          `json:"account_number"`
	Amount         decimal.Decimal `json:"amount"`
	Date           string          `json:"date"`
	Type           string          `json:"type"`
	Description    string          `json:"description"`
	OriginalType   string          `json:"original_type,omitempty"`
	InsertedAt     time.Time       `json:"inserted_at"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:             t.ID,
		Fingerprint:    t.Fingerprint,
		TelegramUserID: t.TelegramUserID,
		AccountNumber:  t.AccountNumber,
		Amount:         t.Amount,
		Date:           t.OccurredOn.Format("2006-01-02"),
		Type:           string(t.Direction),
		Description:    t.Description,
		OriginalType:   t.UpstreamCategory,
		InsertedAt:     t.InsertedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(transactions []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(transactions))
	for i, t := range transactions {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// PaginatedTransactionsResponse is one page of stored history.
type PaginatedTransactionsResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Total        int                    `json:"total"`
	Page         int                    `json:"page"`
	PageSize     int                    `json:"pageSize"`
	HasMore      bool                   `json:"hasMore"`
}

// PageFromUseCase converts a usecase page into the response shape.
func PageFromUseCase(page *usecase.TransactionPage) *PaginatedTransactionsResponse {
	return &PaginatedTransactionsResponse{
		Transactions: TransactionsFromDomain(page.Transactions),
		Total:        page.Total,
		Page:         page.Page,
		PageSize:     page.PageSize,
		HasMore:      page.HasMore,
	}
}

// SaveTransactionsResponse reports how a save batch was absorbed.
type SaveTransactionsResponse struct {
	Success    bool   `json:"success"`
	Inserted   int    `json:"inserted"`
	Duplicates int    `json:"duplicates"`
	Error      string `json:"error,omitempty"`
}

// FetchedTransactionResponse is one upstream transaction after mapping.
type FetchedTransactionResponse struct {
	Amount       decimal.Decimal `json:"amount"`
	Date         string          `json:"date"`
	Type         string          `json:"type"`
	Description  string          `json:"description"`
	OriginalType string          `json:"original_type,omitempty"`
}

// FetchedTransactionsResponse carries the mapped upstream batch.
type FetchedTransactionsResponse struct {
	Transactions []FetchedTransactionResponse `json:"transactions"`
}

// FetchedFromRaw converts mapped upstream transactions into the response
// shape.
func FetchedFromRaw(raws []usecase.RawTransaction) *FetchedTransactionsResponse {
	items := make([]FetchedTransactionResponse, len(raws))
	for i, raw := range raws {
		items[i] = FetchedTransactionResponse{
			Amount:       raw.Amount,
			Date:         raw.OccurredOn.Format("2006-01-02"),
			Type:         string(raw.Direction),
			Description:  raw.Description,
			OriginalType: raw.UpstreamCategory,
		}
	}
	return &FetchedTransactionsResponse{Transactions: items}
}

// UserResponse represents a registered user.
type UserResponse struct {
	TelegramUserID string    `json:"telegram_user_id"`
	CardNumber     string    `json:"card_number"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UserFromDomain converts a domain user to a response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		TelegramUserID: u.TelegramUserID,
		CardNumber:     u.CardNumber,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

// RegisterUserResponse reports the registration outcome.
type RegisterUserResponse struct {
	Success bool          `json:"success"`
	User    *UserResponse `json:"user,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// RefreshResponse is the result of one refresh cycle.
type RefreshResponse struct {
	Balance      *decimal.Decimal               `json:"balance"`
	Transactions *PaginatedTransactionsResponse `json:"transactions"`
}

package usecase

import (
	"context"

	"github.com/maxempolk/bank-card-interface/internal/domain"
)

// TransactionUseCase serves stored transactions back in pages.
type TransactionUseCase struct {
	transactionRepo TransactionRepository
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(transactionRepo TransactionRepository) *TransactionUseCase {
	return &TransactionUseCase{transactionRepo: transactionRepo}
}

// ListPageInput represents input for reading one page.
type ListPageInput struct {
	TelegramUserID string
	Page           int
	PageSize       int
}

// TransactionPage is one page of a user's stored history, newest first.
type TransactionPage struct {
	Transactions []*domain.Transaction
	Total        int
	Page         int
	PageSize     int
	HasMore      bool
}

// ListPage returns a fixed-size page of the user's transactions ordered
// newest occurred_on first. The total is counted independently of the
// page fetch, so it may briefly disagree with the page contents while an
// ingest is running for the same user.
func (uc *TransactionUseCase) ListPage(ctx context.Context, input ListPageInput) (*TransactionPage, error) {
	if input.Page < 0 {
		input.Page = 0
	}
	if input.PageSize <= 0 {
		input.PageSize = DefaultPageSize
	}
	if input.PageSize > MaxPageSize {
		input.PageSize = MaxPageSize
	}

	total, err := uc.transactionRepo.CountByUser(ctx, input.TelegramUserID)
	if err != nil {
		return nil, err
	}

	transactions, err := uc.transactionRepo.ListPage(ctx, input.TelegramUserID, input.PageSize, input.Page*input.PageSize)
	if err != nil {
		return nil, err
	}

	return &TransactionPage{
		Transactions: transactions,
		Total:        total,
		Page:         input.Page,
		PageSize:     input.PageSize,
		HasMore:      (input.Page+1)*input.PageSize < total,
	}, nil
}

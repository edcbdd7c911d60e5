package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/maxempolk/bank-card-interface/internal/domain"
	"github.com/maxempolk/bank-card-interface/internal/usecase"
	"github.com/maxempolk/bank-card-interface/internal/usecase/mocks"
)

func storedPage(count int) []*domain.Transaction {
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	page := make([]*domain.Transaction, count)
	for i := range page {
		page[i] = &domain.Transaction{
			ID:             "id",
			TelegramUserID: "12345",
			OccurredOn:     day.AddDate(0, 0, -i),
			Amount:         decimal.NewFromInt(-10),
			Direction:      domain.DirectionDebit,
		}
	}
	return page
}

func TestTransactionUseCase_ListPage(t *testing.T) {
	tests := []struct {
		name         string
		input        usecase.ListPageInput
		total        int
		wantLimit    int
		wantOffset   int
		returned     int
		wantPage     int
		wantPageSize int
		wantHasMore  bool
	}{
		{
			name:         "first page of 25",
			input:        usecase.ListPageInput{TelegramUserID: "12345", Page: 0, PageSize: 10},
			total:        25,
			wantLimit:    10,
			wantOffset:   0,
			returned:     10,
			wantPage:     0,
			wantPageSize: 10,
			wantHasMore:  true,
		},
		{
			name:         "last partial page of 25",
			input:        usecase.ListPageInput{TelegramUserID: "12345", Page: 2, PageSize: 10},
			total:        25,
			wantLimit:    10,
			wantOffset:   20,
			returned:     5,
			wantPage:     2,
			wantPageSize: 10,
			wantHasMore:  false,
		},
		{
			name:         "exact boundary has no more",
			input:        usecase.ListPageInput{TelegramUserID: "12345", Page: 1, PageSize: 10},
			total:        20,
			wantLimit:    10,
			wantOffset:   10,
			returned:     10,
			wantPage:     1,
			wantPageSize: 10,
			wantHasMore:  false,
		},
		{
			name:         "page beyond the end is empty",
			input:        usecase.ListPageInput{TelegramUserID: "12345", Page: 9, PageSize: 10},
			total:        25,
			wantLimit:    10,
			wantOffset:   90,
			returned:     0,
			wantPage:     9,
			wantPageSize: 10,
			wantHasMore:  false,
		},
		{
			name:         "negative page clamps to zero",
			input:        usecase.ListPageInput{TelegramUserID: "12345", Page: -3, PageSize: 10},
			total:        25,
			wantLimit:    10,
			wantOffset:   0,
			returned:     10,
			wantPage:     0,
			wantPageSize: 10,
			wantHasMore:  true,
		},
		{
			name:         "zero page size defaults",
			input:        usecase.ListPageInput{TelegramUserID: "12345", Page: 0, PageSize: 0},
			total:        25,
			wantLimit:    usecase.DefaultPageSize,
			wantOffset:   0,
			returned:     10,
			wantPage:     0,
			wantPageSize: usecase.DefaultPageSize,
			wantHasMore:  true,
		},
		{
			name:         "oversized page size caps",
			input:        usecase.ListPageInput{TelegramUserID: "12345", Page: 0, PageSize: 5000},
			total:        25,
			wantLimit:    usecase.MaxPageSize,
			wantOffset:   0,
			returned:     25,
			wantPage:     0,
			wantPageSize: usecase.MaxPageSize,
			wantHasMore:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := mocks.NewMockTransactionRepository(ctrl)
			repo.EXPECT().CountByUser(gomock.Any(), "12345").Return(tt.total, nil)
			repo.EXPECT().ListPage(gomock.Any(), "12345", tt.wantLimit, tt.wantOffset).Return(storedPage(tt.returned), nil)

			uc := usecase.NewTransactionUseCase(repo)

			page, err := uc.ListPage(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(page.Transactions) != tt.returned {
				t.Errorf("expected %d transactions, got %d", tt.returned, len(page.Transactions))
			}
			if page.Total != tt.total {
				t.Errorf("expected total %d, got %d", tt.total, page.Total)
			}
			if page.Page != tt.wantPage || page.PageSize != tt.wantPageSize {
				t.Errorf("expected page %d size %d, got page %d size %d", tt.wantPage, tt.wantPageSize, page.Page, page.PageSize)
			}
			if page.HasMore != tt.wantHasMore {
				t.Errorf("expected hasMore=%v, got %v", tt.wantHasMore, page.HasMore)
			}
		})
	}
}

func TestTransactionUseCase_ListPage_CountError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockTransactionRepository(ctrl)
	repo.EXPECT().CountByUser(gomock.Any(), "12345").Return(0, errors.New("connection lost"))

	uc := usecase.NewTransactionUseCase(repo)

	_, err := uc.ListPage(context.Background(), usecase.ListPageInput{TelegramUserID: "12345"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

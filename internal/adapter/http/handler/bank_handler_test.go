package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/maxempolk/bank-card-interface/internal/adapter/http/dto"
	"github.com/maxempolk/bank-card-interface/internal/adapter/upstream"
	"github.com/maxempolk/bank-card-interface/internal/domain"
	"github.com/maxempolk/bank-card-interface/internal/usecase"
)

type bankClientStub struct {
	balanceFn      func(ctx context.Context, accountNumber string) (*decimal.Decimal, error)
	transactionsFn func(ctx context.Context, accountNumber string) ([]usecase.RawTransaction, error)
}

func (s *bankClientStub) FetchBalance(ctx context.Context, accountNumber string) (*decimal.Decimal, error) {
	return s.balanceFn(ctx, accountNumber)
}

func (s *bankClientStub) FetchTransactions(ctx context.Context, accountNumber string) ([]usecase.RawTransaction, error) {
	return s.transactionsFn(ctx, accountNumber)
}

func balanceBody(accountNumber string) *bytes.Reader {
	body, _ := json.Marshal(dto.BalanceRequest{AccountNumber: accountNumber})
	return bytes.NewReader(body)
}

func TestBankHandler_Balance_Success(t *testing.T) {
	balance := decimal.NewFromFloat(1500.25)
	handler := NewBankHandler(&bankClientStub{
		balanceFn: func(ctx context.Context, accountNumber string) (*decimal.Decimal, error) {
			if accountNumber != "1234567890" {
				t.Errorf("unexpected account number %q", accountNumber)
			}
			return &balance, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/balance", balanceBody("1234567890"))
	rec := httptest.NewRecorder()

	handler.Balance(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.BalanceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Balance == nil || !resp.Balance.Equal(balance) {
		t.Fatalf("unexpected balance: %v", resp.Balance)
	}
}

func TestBankHandler_Balance_NullBalance(t *testing.T) {
	handler := NewBankHandler(&bankClientStub{
		balanceFn: func(ctx context.Context, accountNumber string) (*decimal.Decimal, error) {
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/balance", balanceBody("1234567890"))
	rec := httptest.NewRecorder()

	handler.Balance(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if v, ok := resp["balance"]; !ok || v != nil {
		t.Fatalf("expected explicit null balance, got %v", resp)
	}
}

func TestBankHandler_Balance_MissingAccountNumber(t *testing.T) {
	handler := NewBankHandler(&bankClientStub{
		balanceFn: func(ctx context.Context, accountNumber string) (*decimal.Decimal, error) {
			t.Fatal("FetchBalance should not be called without an account number")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/balance", balanceBody(""))
	rec := httptest.NewRecorder()

	handler.Balance(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestBankHandler_Balance_UpstreamStatusPassedThrough(t *testing.T) {
	handler := NewBankHandler(&bankClientStub{
		balanceFn: func(ctx context.Context, accountNumber string) (*decimal.Decimal, error) {
			return nil, &upstream.StatusError{StatusCode: http.StatusForbidden}
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/balance", balanceBody("1234567890"))
	rec := httptest.NewRecorder()

	handler.Balance(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected upstream 403 passed through, got %d", rec.Code)
	}

	var resp dto.UpstreamErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != http.StatusForbidden {
		t.Fatalf("expected status 403 in body, got %d", resp.Status)
	}
}

func TestBankHandler_Balance_NetworkError(t *testing.T) {
	handler := NewBankHandler(&bankClientStub{
		balanceFn: func(ctx context.Context, accountNumber string) (*decimal.Decimal, error) {
			return nil, errors.New("dial tcp: connection refused")
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/balance", balanceBody("1234567890"))
	rec := httptest.NewRecorder()

	handler.Balance(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestBankHandler_Transactions_Success(t *testing.T) {
	handler := NewBankHandler(&bankClientStub{
		transactionsFn: func(ctx context.Context, accountNumber string) ([]usecase.RawTransaction, error) {
			return []usecase.RawTransaction{
				{
					Amount:           decimal.NewFromFloat(-49.90),
					OccurredOn:       time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
					Direction:        domain.DirectionDebit,
					Description:      "Purchase of goods",
					UpstreamCategory: "Varekjøp",
				},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/fetch", balanceBody("1234567890"))
	rec := httptest.NewRecorder()

	handler.Transactions(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.FetchedTransactionsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Transactions) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(resp.Transactions))
	}
	item := resp.Transactions[0]
	if item.Date != "2026-03-15" || item.Type != "debit" || item.OriginalType != "Varekjøp" {
		t.Fatalf("unexpected item: %+v", item)
	}
}

func TestBankHandler_Transactions_UpstreamStatusPassedThrough(t *testing.T) {
	handler := NewBankHandler(&bankClientStub{
		transactionsFn: func(ctx context.Context, accountNumber string) ([]usecase.RawTransaction, error) {
			return nil, &upstream.StatusError{StatusCode: http.StatusBadGateway}
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/fetch", balanceBody("1234567890"))
	rec := httptest.NewRecorder()

	handler.Transactions(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected upstream 502 passed through, got %d", rec.Code)
	}
}

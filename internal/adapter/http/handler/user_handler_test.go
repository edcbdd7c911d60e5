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

	"github.com/maxempolk/bank-card-interface/internal/adapter/http/dto"
	"github.com/maxempolk/bank-card-interface/internal/domain"
	"github.com/maxempolk/bank-card-interface/internal/usecase"
)

type userServiceStub struct {
	registerFn func(ctx context.Context, input usecase.RegisterInput) (*domain.User, error)
	getFn      func(ctx context.Context, telegramUserID string) (*domain.User, error)
}

func (s *userServiceStub) Register(ctx context.Context, input usecase.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, input)
}

func (s *userServiceStub) Get(ctx context.Context, telegramUserID string) (*domain.User, error) {
	return s.getFn(ctx, telegramUserID)
}

func TestUserHandler_Register_Success(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	handler := NewUserHandler(&userServiceStub{
		registerFn: func(ctx context.Context, input usecase.RegisterInput) (*domain.User, error) {
			return &domain.User{
				TelegramUserID: input.TelegramUserID,
				CardNumber:     "12345678903",
				CreatedAt:      now,
				UpdatedAt:      now,
			}, nil
		},
	})

	body, _ := json.Marshal(dto.RegisterUserRequest{
		TelegramUserID: "12345",
		CardNumber:     "1234 5678 903",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Register(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.RegisterUserResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Success || resp.User == nil || resp.User.CardNumber != "12345678903" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestUserHandler_Register_MissingFields(t *testing.T) {
	handler := NewUserHandler(&userServiceStub{
		registerFn: func(ctx context.Context, input usecase.RegisterInput) (*domain.User, error) {
			t.Fatal("Register should not be called for incomplete payload")
			return nil, nil
		},
	})

	body, _ := json.Marshal(dto.RegisterUserRequest{TelegramUserID: "12345"})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Register(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUserHandler_Register_InvalidCard(t *testing.T) {
	handler := NewUserHandler(&userServiceStub{
		registerFn: func(ctx context.Context, input usecase.RegisterInput) (*domain.User, error) {
			return nil, domain.ErrInvalidCardNumber
		},
	})

	body, _ := json.Marshal(dto.RegisterUserRequest{
		TelegramUserID: "12345",
		CardNumber:     "not-a-card",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Register(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp dto.RegisterUserResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error != "Invalid card number format" {
		t.Fatalf("unexpected error message: %q", resp.Error)
	}
}

func TestUserHandler_Get_Success(t *testing.T) {
	handler := NewUserHandler(&userServiceStub{
		getFn: func(ctx context.Context, telegramUserID string) (*domain.User, error) {
			return &domain.User{TelegramUserID: telegramUserID, CardNumber: "12345678903"}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/12345", nil)
	req = withURLParam(req, "telegram_user_id", "12345")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.UserResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.TelegramUserID != "12345" {
		t.Fatalf("unexpected user: %+v", resp)
	}
}

func TestUserHandler_Get_NotFound(t *testing.T) {
	handler := NewUserHandler(&userServiceStub{
		getFn: func(ctx context.Context, telegramUserID string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/99999", nil)
	req = withURLParam(req, "telegram_user_id", "99999")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestUserHandler_Get_OtherError(t *testing.T) {
	handler := NewUserHandler(&userServiceStub{
		getFn: func(ctx context.Context, telegramUserID string) (*domain.User, error) {
			return nil, errors.New("connection lost")
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/12345", nil)
	req = withURLParam(req, "telegram_user_id", "12345")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

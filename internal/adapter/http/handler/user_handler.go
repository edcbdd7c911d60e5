package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/maxempolk/bank-card-interface/internal/adapter/http/dto"
	"github.com/maxempolk/bank-card-interface/internal/domain"
	"github.com/maxempolk/bank-card-interface/internal/usecase"
)

// UserService defines the behavior needed by UserHandler.
type UserService interface {
	Register(ctx context.Context, input usecase.RegisterInput) (*domain.User, error)
	Get(ctx context.Context, telegramUserID string) (*domain.User, error)
}

// UserHandler handles card registration and user lookup.
type UserHandler struct {
	userUC UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userUC UserService) *UserHandler {
	return &UserHandler{userUC: userUC}
}

// Register stores or replaces the card number for a Telegram user.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.RegisterUserResponse{
			Error: "invalid request body",
		})
		return
	}

	if req.TelegramUserID == "" || req.CardNumber == "" {
		writeJSON(w, http.StatusBadRequest, dto.RegisterUserResponse{
			Error: "Telegram user ID and card number are required",
		})
		return
	}

	user, err := h.userUC.Register(r.Context(), usecase.RegisterInput{
		TelegramUserID: req.TelegramUserID,
		CardNumber:     req.CardNumber,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCardNumber) {
			writeJSON(w, http.StatusBadRequest, dto.RegisterUserResponse{
				Error: "Invalid card number format",
			})
			return
		}
		writeJSON(w, http.StatusInternalServerError, dto.RegisterUserResponse{
			Error: "failed to register user",
		})
		return
	}

	writeJSON(w, http.StatusOK, dto.RegisterUserResponse{
		Success: true,
		User:    dto.UserFromDomain(user),
	})
}

// Get retrieves a registered user by Telegram user ID.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	telegramUserID := chi.URLParam(r, "telegram_user_id")
	if telegramUserID == "" {
		writeError(w, http.StatusBadRequest, "missing telegram user ID", "")
		return
	}

	user, err := h.userUC.Get(r.Context(), telegramUserID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get user", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.UserFromDomain(user))
}

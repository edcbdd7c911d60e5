package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/maxempolk/bank-card-interface/internal/adapter/http/dto"
	"github.com/maxempolk/bank-card-interface/internal/usecase"
)

// RefreshService defines the behavior needed by RefreshHandler.
type RefreshService interface {
	Refresh(ctx context.Context, telegramUserID string) (*usecase.RefreshResult, error)
}

// RefreshHandler triggers a full refresh cycle for a registered user.
type RefreshHandler struct {
	refreshUC RefreshService
}

// NewRefreshHandler creates a new RefreshHandler.
func NewRefreshHandler(refreshUC RefreshService) *RefreshHandler {
	return &RefreshHandler{refreshUC: refreshUC}
}

// Refresh fetches fresh upstream data for the user, dispatches ingestion
// and returns the balance plus page 0 of the merged history.
func (h *RefreshHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req dto.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if req.TelegramUserID == "" {
		writeError(w, http.StatusBadRequest, "Telegram user ID is required", "")
		return
	}

	result, err := h.refreshUC.Refresh(r.Context(), req.TelegramUserID)
	if err != nil {
		writeError(w, mapDomainError(err), "refresh failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RefreshResponse{
		Balance:      result.Balance,
		Transactions: dto.PageFromUseCase(result.Page),
	})
}

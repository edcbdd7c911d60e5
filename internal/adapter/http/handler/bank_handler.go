package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/maxempolk/bank-card-interface/internal/adapter/http/dto"
	"github.com/maxempolk/bank-card-interface/internal/adapter/upstream"
	"github.com/maxempolk/bank-card-interface/internal/usecase"
)

// BankHandler proxies balance and transaction fetches to the upstream
// banking API. A non-200 upstream status is passed through to the caller.
type BankHandler struct {
	bank usecase.BankClient
}

// NewBankHandler creates a new BankHandler.
func NewBankHandler(bank usecase.BankClient) *BankHandler {
	return &BankHandler{bank: bank}
}

// Balance proxies one balance fetch.
func (h *BankHandler) Balance(w http.ResponseWriter, r *http.Request) {
	var req dto.BalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if req.AccountNumber == "" {
		writeError(w, http.StatusBadRequest, "Account number is required", "")
		return
	}

	balance, err := h.bank.FetchBalance(r.Context(), req.AccountNumber)
	if err != nil {
		h.writeUpstreamError(w, err, "Failed to fetch balance")
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceResponse{Balance: balance})
}

// Transactions proxies one transaction fetch, mapped into the shape the
// client and the save endpoint consume.
func (h *BankHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	var req dto.BalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if req.AccountNumber == "" {
		writeError(w, http.StatusBadRequest, "Account number is required", "")
		return
	}

	fetched, err := h.bank.FetchTransactions(r.Context(), req.AccountNumber)
	if err != nil {
		h.writeUpstreamError(w, err, "Failed to fetch transactions")
		return
	}

	writeJSON(w, http.StatusOK, dto.FetchedFromRaw(fetched))
}

func (h *BankHandler) writeUpstreamError(w http.ResponseWriter, err error, message string) {
	var statusErr *upstream.StatusError
	if errors.As(err, &statusErr) {
		writeJSON(w, statusErr.StatusCode, dto.UpstreamErrorResponse{
			Error:  message,
			Status: statusErr.StatusCode,
		})
		return
	}

	writeError(w, http.StatusInternalServerError, message, err.Error())
}

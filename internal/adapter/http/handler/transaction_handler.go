package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/maxempolk/bank-card-interface/internal/adapter/http/dto"
	"github.com/maxempolk/bank-card-interface/internal/domain"
	"github.com/maxempolk/bank-card-interface/internal/usecase"
)

// TransactionHandler handles the stored-transaction endpoints: saving a
// fetched batch and reading pages of history.
type TransactionHandler struct {
	ingestor usecase.Ingestor
	reader   usecase.PageReader
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(ingestor usecase.Ingestor, reader usecase.PageReader) *TransactionHandler {
	return &TransactionHandler{
		ingestor: ingestor,
		reader:   reader,
	}
}

// Save ingests a batch of fetched transactions. Duplicates are counted,
// not errors; the endpoint always reports how the batch was absorbed.
func (h *TransactionHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req dto.SaveTransactionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.SaveTransactionsResponse{
			Error: "invalid request body",
		})
		return
	}

	if req.TelegramUserID == "" || req.AccountNumber == "" || len(req.Transactions) == 0 {
		writeJSON(w, http.StatusBadRequest, dto.SaveTransactionsResponse{
			Error: "Missing required fields",
		})
		return
	}

	raws := make([]usecase.RawTransaction, 0, len(req.Transactions))
	for _, item := range req.Transactions {
		occurredOn, err := item.OccurredOn()
		if err != nil {
			writeJSON(w, http.StatusBadRequest, dto.SaveTransactionsResponse{
				Error: "invalid transaction date: " + item.Date,
			})
			return
		}

		raws = append(raws, usecase.RawTransaction{
			Amount:           item.Amount,
			OccurredOn:       occurredOn,
			Direction:        domain.Direction(item.Type),
			Description:      item.Description,
			UpstreamCategory: item.OriginalType,
		})
	}

	result, err := h.ingestor.Ingest(r.Context(), usecase.IngestInput{
		TelegramUserID: req.TelegramUserID,
		AccountNumber:  req.AccountNumber,
		Transactions:   raws,
	})
	if err != nil {
		writeJSON(w, mapDomainError(err), dto.SaveTransactionsResponse{
			Error: "failed to save transactions",
		})
		return
	}

	writeJSON(w, http.StatusOK, dto.SaveTransactionsResponse{
		Success:    true,
		Inserted:   result.Inserted,
		Duplicates: result.Duplicates,
	})
}

// List returns one page of the user's stored transactions, newest first.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	telegramUserID := chi.URLParam(r, "telegram_user_id")
	if telegramUserID == "" {
		writeError(w, http.StatusBadRequest, "missing telegram user ID", "")
		return
	}

	page, err := h.reader.ListPage(r.Context(), usecase.ListPageInput{
		TelegramUserID: telegramUserID,
		Page:           parseIntQuery(r, "page", 0),
		PageSize:       parseIntQuery(r, "pageSize", usecase.DefaultPageSize),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PageFromUseCase(page))
}

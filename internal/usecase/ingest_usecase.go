package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/maxempolk/bank-card-interface/internal/domain"
	"github.com/maxempolk/bank-card-interface/internal/infrastructure/metrics"
)

// IngestUseCase deduplicates and persists freshly fetched transactions.
type IngestUseCase struct {
	transactionRepo TransactionRepository
	idGen           IDGenerator
	logger          zerolog.Logger
}

// NewIngestUseCase creates a new IngestUseCase.
func NewIngestUseCase(transactionRepo TransactionRepository, idGen IDGenerator, logger zerolog.Logger) *IngestUseCase {
	return &IngestUseCase{
		transactionRepo: transactionRepo,
		idGen:           idGen,
		logger:          logger,
	}
}

// IngestInput represents one batch of fetched transactions for a user.
type IngestInput struct {
	TelegramUserID string
	AccountNumber  string
	Transactions   []RawTransaction
}

// IngestResult reports how the batch was absorbed.
type IngestResult struct {
	Inserted   int
	Duplicates int
}

// Ingest fingerprints each raw transaction and submits the batch as one
// unordered bulk insert. Duplicate fingerprints are expected and counted,
// not treated as failures; there is deliberately no existence pre-check,
// since the unique index is the only dedup mechanism that holds up under
// concurrent ingestion for the same user.
func (uc *IngestUseCase) Ingest(ctx context.Context, input IngestInput) (*IngestResult, error) {
	if len(input.Transactions) == 0 {
		return nil, domain.ErrEmptyBatch
	}

	// One timestamp for the whole batch.
	now := time.Now().UTC()

	records := make([]*domain.Transaction, 0, len(input.Transactions))
	for _, raw := range input.Transactions {
		direction := raw.Direction
		if direction == "" {
			direction = domain.DirectionFromAmount(raw.Amount)
		}

		description := raw.Description
		if description == "" {
			description = domain.DescriptionForCategory(raw.UpstreamCategory)
		}

		records = append(records, &domain.Transaction{
			ID:               uc.idGen.Generate(),
			Fingerprint:      domain.Fingerprint(input.TelegramUserID, raw.OccurredOn, raw.Amount, direction, description),
			TelegramUserID:   input.TelegramUserID,
			AccountNumber:    input.AccountNumber,
			Amount:           raw.Amount,
			OccurredOn:       raw.OccurredOn,
			Direction:        direction,
			Description:      description,
			UpstreamCategory: raw.UpstreamCategory,
			InsertedAt:       now,
		})
	}

	inserted, err := uc.transactionRepo.InsertMany(ctx, records)
	if err != nil {
		return nil, fmt.Errorf("failed to insert transaction batch: %w", err)
	}

	duplicates := len(records) - inserted

	metrics.TransactionsIngested.Add(float64(inserted))
	metrics.TransactionsDeduplicated.Add(float64(duplicates))

	uc.logger.Info().
		Str("telegram_user_id", input.TelegramUserID).
		Int("inserted", inserted).
		Int("duplicates", duplicates).
		Msg("transaction batch ingested")

	return &IngestResult{Inserted: inserted, Duplicates: duplicates}, nil
}

package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ErrRefreshSuperseded is returned when a newer refresh for the same user
// cancelled this one. It is not a failure; the superseded call's results
// are discarded.
var ErrRefreshSuperseded = errors.New("refresh superseded by a newer request")

// RefreshUseCase coordinates one user-triggered refresh: cancel any
// in-flight refresh for the same user, fetch balance and transactions
// from upstream concurrently, dispatch ingestion fire-and-forget, then
// re-read page 0 so the caller sees the merged, deduplicated history.
type RefreshUseCase struct {
	userRepo UserRepository
	bank     BankClient
	ingestor Ingestor
	reader   PageReader
	balances BalanceCache
	logger   zerolog.Logger

	mu       sync.Mutex
	inflight map[string]*refreshToken
}

type refreshToken struct {
	cancel context.CancelFunc
}

// NewRefreshUseCase creates a new RefreshUseCase.
func NewRefreshUseCase(
	userRepo UserRepository,
	bank BankClient,
	ingestor Ingestor,
	reader PageReader,
	balances BalanceCache,
	logger zerolog.Logger,
) *RefreshUseCase {
	return &RefreshUseCase{
		userRepo: userRepo,
		bank:     bank,
		ingestor: ingestor,
		reader:   reader,
		balances: balances,
		logger:   logger,
		inflight: make(map[string]*refreshToken),
	}
}

// RefreshResult is what a completed refresh hands back to the client.
type RefreshResult struct {
	// Balance is nil when upstream gave nothing and no cached value exists.
	Balance *decimal.Decimal
	Page    *TransactionPage
}

// Refresh runs one refresh cycle for the user. A failed upstream fetch is
// not an error for the caller: the balance falls back to its last known
// value and the stored history is served as is. Ingestion failures are
// only logged. There is no retry loop; the user re-triggers.
func (uc *RefreshUseCase) Refresh(ctx context.Context, telegramUserID string) (*RefreshResult, error) {
	user, err := uc.userRepo.GetByID(ctx, telegramUserID)
	if err != nil {
		return nil, err
	}
	accountNumber := user.AccountNumber()

	refreshCtx, token := uc.begin(ctx, telegramUserID)
	defer uc.finish(telegramUserID, token)

	var (
		wg       sync.WaitGroup
		balance  *decimal.Decimal
		balErr   error
		fetched  []RawTransaction
		fetchErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		balance, balErr = uc.bank.FetchBalance(refreshCtx, accountNumber)
	}()
	go func() {
		defer wg.Done()
		fetched, fetchErr = uc.bank.FetchTransactions(refreshCtx, accountNumber)
	}()
	wg.Wait()

	if refreshCtx.Err() != nil {
		// Cancelled mid-flight. Whatever arrived must not be applied.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, ErrRefreshSuperseded
	}

	switch {
	case balErr != nil:
		uc.logger.Warn().
			Err(balErr).
			Str("telegram_user_id", telegramUserID).
			Msg("balance fetch failed, serving last known value")
		balance = uc.lastKnownBalance(refreshCtx, accountNumber)
	case balance != nil:
		if err := uc.balances.Set(refreshCtx, accountNumber, *balance); err != nil {
			uc.logger.Warn().Err(err).Msg("failed to cache balance")
		}
	}

	if fetchErr != nil {
		uc.logger.Warn().
			Err(fetchErr).
			Str("telegram_user_id", telegramUserID).
			Msg("transaction fetch failed, keeping stored history")
	} else if len(fetched) > 0 {
		uc.dispatchIngest(ctx, telegramUserID, accountNumber, fetched)
	}

	page, err := uc.reader.ListPage(refreshCtx, ListPageInput{
		TelegramUserID: telegramUserID,
		Page:           0,
		PageSize:       DefaultPageSize,
	})
	if err != nil {
		if refreshCtx.Err() != nil && ctx.Err() == nil {
			return nil, ErrRefreshSuperseded
		}
		return nil, err
	}

	return &RefreshResult{Balance: balance, Page: page}, nil
}

// dispatchIngest hands the fetched batch to the pipeline on a detached
// context: ingestion runs to completion even if the triggering refresh is
// cancelled right after. Partial or repeated ingestion is harmless since
// the pipeline is idempotent.
func (uc *RefreshUseCase) dispatchIngest(ctx context.Context, telegramUserID, accountNumber string, fetched []RawTransaction) {
	detached := context.WithoutCancel(ctx)

	go func() {
		_, err := uc.ingestor.Ingest(detached, IngestInput{
			TelegramUserID: telegramUserID,
			AccountNumber:  accountNumber,
			Transactions:   fetched,
		})
		if err != nil {
			uc.logger.Error().
				Err(err).
				Str("telegram_user_id", telegramUserID).
				Msg("background ingest failed")
		}
	}()
}

func (uc *RefreshUseCase) lastKnownBalance(ctx context.Context, accountNumber string) *decimal.Decimal {
	cached, err := uc.balances.Get(ctx, accountNumber)
	if err != nil {
		uc.logger.Warn().Err(err).Msg("failed to read cached balance")
		return nil
	}
	return cached
}

// begin registers this refresh as the in-flight one for the user,
// cancelling any previous refresh first.
func (uc *RefreshUseCase) begin(parent context.Context, telegramUserID string) (context.Context, *refreshToken) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if prev, ok := uc.inflight[telegramUserID]; ok {
		prev.cancel()
	}

	ctx, cancel := context.WithCancel(parent)
	token := &refreshToken{cancel: cancel}
	uc.inflight[telegramUserID] = token

	return ctx, token
}

func (uc *RefreshUseCase) finish(telegramUserID string, token *refreshToken) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	token.cancel()
	if uc.inflight[telegramUserID] == token {
		delete(uc.inflight, telegramUserID)
	}
}

package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/maxempolk/bank-card-interface/internal/domain"
	"github.com/maxempolk/bank-card-interface/internal/infrastructure/metrics"
	"github.com/maxempolk/bank-card-interface/internal/usecase"
)

const maxErrorBodyBytes = 512

// Config holds upstream banking API settings.
type Config struct {
	BalanceURL      string
	TransactionsURL string
	TraceID         string
	Channel         string
	Timeout         time.Duration
}

// Client calls the upstream banking API. Every call is bounded by the
// configured timeout; a timeout is reported the same way as any other
// network failure.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new upstream client.
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// StatusError reports a non-200 upstream response. The proxy endpoints
// pass the status through to the caller.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream responded with status %d", e.StatusCode)
}

type apiRequest struct {
	AccountNumber string `json:"accountNumber"`
}

type balanceResponse struct {
	Balance *json.Number `json:"balance"`
}

// FetchBalance fetches the current balance for the account. A 200
// response without a balance field yields nil.
func (c *Client) FetchBalance(ctx context.Context, accountNumber string) (*decimal.Decimal, error) {
	body, err := c.post(ctx, "balance", c.cfg.BalanceURL, accountNumber)
	if err != nil {
		return nil, err
	}

	var resp balanceResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode balance response: %w", err)
	}

	if resp.Balance == nil {
		c.logger.Warn().
			Str("account_number", accountNumber).
			Msg("upstream returned 200 without balance field")
		return nil, nil
	}

	balance, err := decimal.NewFromString(resp.Balance.String())
	if err != nil {
		return nil, fmt.Errorf("failed to parse balance %q: %w", resp.Balance.String(), err)
	}

	return &balance, nil
}

type rawAmount struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

type rawTransaction struct {
	Amount          rawAmount `json:"amount"`
	TransactionDate string    `json:"transactionDate"`
	TransactionType string    `json:"transactionType,omitempty"`
}

type transactionsResponse struct {
	Transactions []rawTransaction `json:"transactions"`
}

// FetchTransactions fetches recent transactions for the account and maps
// them into the shape the ingestion pipeline consumes.
func (c *Client) FetchTransactions(ctx context.Context, accountNumber string) ([]usecase.RawTransaction, error) {
	body, err := c.post(ctx, "transactions", c.cfg.TransactionsURL, accountNumber)
	if err != nil {
		return nil, err
	}

	var resp transactionsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode transactions response: %w", err)
	}

	mapped := make([]usecase.RawTransaction, 0, len(resp.Transactions))
	for _, raw := range resp.Transactions {
		amount, err := decimal.NewFromString(raw.Amount.Amount)
		if err != nil {
			c.logger.Warn().
				Str("amount", raw.Amount.Amount).
				Str("account_number", accountNumber).
				Msg("skipping transaction with unparseable amount")
			continue
		}

		mapped = append(mapped, usecase.RawTransaction{
			Amount:           amount,
			OccurredOn:       parseTransactionDate(raw.TransactionDate),
			Direction:        domain.DirectionFromAmount(amount),
			Description:      domain.DescriptionForCategory(raw.TransactionType),
			UpstreamCategory: raw.TransactionType,
		})
	}

	return mapped, nil
}

// parseTransactionDate accepts the timestamp shapes upstream has been
// seen returning. Only the calendar day survives into the fingerprint.
func parseTransactionDate(value string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Now().UTC()
}

func (c *Client) post(ctx context.Context, endpoint, url, accountNumber string) ([]byte, error) {
	payload, err := json.Marshal(apiRequest{AccountNumber: accountNumber})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Dnbapi-Trace-Id", c.cfg.TraceID)
	req.Header.Set("X-Dnbapi-Channel", c.cfg.Channel)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(endpoint, "network_error").Inc()
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.UpstreamRequests.WithLabelValues(endpoint, "upstream_error").Inc()

		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		c.logger.Warn().
			Int("status", resp.StatusCode).
			Str("endpoint", endpoint).
			Str("account_number", accountNumber).
			Str("body", string(snippet)).
			Msg("upstream returned non-200")

		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(snippet)}
	}

	metrics.UpstreamRequests.WithLabelValues(endpoint, "ok").Inc()

	return io.ReadAll(resp.Body)
}

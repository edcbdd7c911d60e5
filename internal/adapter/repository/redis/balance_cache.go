package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// BalanceCache keeps the last successfully fetched balance per account.
// When upstream is down the refresh serves this value instead of
// erroring out.
type BalanceCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewBalanceCache creates a new BalanceCache.
func NewBalanceCache(client *redis.Client, ttl time.Duration) *BalanceCache {
	return &BalanceCache{
		client: client,
		prefix: "balance:",
		ttl:    ttl,
	}
}

// Get returns the cached balance for the account, or nil when none is
// cached.
func (c *BalanceCache) Get(ctx context.Context, accountNumber string) (*decimal.Decimal, error) {
	val, err := c.client.Get(ctx, c.prefix+accountNumber).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	balance, err := decimal.NewFromString(val)
	if err != nil {
		return nil, fmt.Errorf("corrupt cached balance %q: %w", val, err)
	}

	return &balance, nil
}

// Set stores the balance with the configured TTL.
func (c *BalanceCache) Set(ctx context.Context, accountNumber string, balance decimal.Decimal) error {
	return c.client.Set(ctx, c.prefix+accountNumber, balance.String(), c.ttl).Err()
}

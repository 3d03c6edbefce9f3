package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const rateCachePrefix = "rates:v1:"

// CachedConverter wraps a RateProvider with a Redis-backed rate table cache.
// The cache handle is injected explicitly so tests can supply their own
// instance; there is no package-level cache.
type CachedConverter struct {
	provider RateProvider
	cache    *redis.Client
	ttl      time.Duration
	logger   *slog.Logger
}

// NewCachedConverter builds a converter that caches rate tables for ttl.
func NewCachedConverter(provider RateProvider, cache *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedConverter {
	return &CachedConverter{provider: provider, cache: cache, ttl: ttl, logger: logger}
}

// Convert resolves the rate table for the source currency, preferring the
// cache, and applies the target rate. Provider failures propagate; there is no
// silent fallback rate since balances computed from a partially converted set
// would be wrong.
func (c *CachedConverter) Convert(ctx context.Context, amount float64, from, to string) (float64, error) {
	if from == to {
		return amount, nil
	}

	rates, err := c.rates(ctx, from)
	if err != nil {
		return 0, err
	}

	rate, ok := rates[to]
	if !ok {
		return 0, fmt.Errorf("%w: %s to %s", ErrRateUnavailable, from, to)
	}
	return amount * rate, nil
}

func (c *CachedConverter) rates(ctx context.Context, base string) (map[string]float64, error) {
	key := rateCachePrefix + base

	if c.cache != nil {
		cached, err := c.cache.Get(ctx, key).Result()
		if err == nil {
			var rates map[string]float64
			if err := json.Unmarshal([]byte(cached), &rates); err == nil {
				return rates, nil
			}
			c.logger.Warn("discarding corrupt cached rate table", slog.String("base", base))
		} else if err != redis.Nil {
			c.logger.Warn("rate cache lookup failed", slog.String("base", base), slog.Any("error", err))
		}
	}

	rates, err := c.provider.Rates(ctx, base)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		payload, err := json.Marshal(rates)
		if err == nil {
			if err := c.cache.Set(ctx, key, payload, c.ttl).Err(); err != nil {
				c.logger.Warn("rate cache store failed", slog.String("base", base), slog.Any("error", err))
			}
		}
	}

	return rates, nil
}

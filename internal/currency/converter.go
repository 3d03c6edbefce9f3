package currency

import (
	"context"
	"errors"
	"fmt"
)

// ErrRateUnavailable indicates no exchange rate exists for a requested pair.
var ErrRateUnavailable = errors.New("exchange rate unavailable")

// Converter turns an amount in one currency into another. Implementations may
// reach out to an external rate provider; conversion is the only suspension
// point in a settlement calculation.
type Converter interface {
	Convert(ctx context.Context, amount float64, from, to string) (float64, error)
}

// Fixed converts using a static rate table keyed by "FROM:TO". Used in tests
// and as an offline default.
type Fixed struct {
	rates map[string]float64
}

// NewFixed builds a converter from a pair rate table, e.g. {"EUR:USD": 1.1}.
func NewFixed(rates map[string]float64) *Fixed {
	table := make(map[string]float64, len(rates))
	for pair, rate := range rates {
		table[pair] = rate
	}
	return &Fixed{rates: table}
}

// Convert applies the configured rate. Identity pairs return the amount unchanged.
func (f *Fixed) Convert(_ context.Context, amount float64, from, to string) (float64, error) {
	if from == to {
		return amount, nil
	}
	rate, ok := f.rates[from+":"+to]
	if !ok {
		return 0, fmt.Errorf("%w: %s to %s", ErrRateUnavailable, from, to)
	}
	return amount * rate, nil
}

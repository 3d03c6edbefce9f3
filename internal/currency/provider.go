package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// RateProvider fetches the full rate table for a base currency.
type RateProvider interface {
	Rates(ctx context.Context, base string) (map[string]float64, error)
}

// HTTPProvider retrieves exchange rates from an exchangerate-style API that
// serves GET {baseURL}/{base} returning {"rates": {"USD": 1.0, ...}}.
type HTTPProvider struct {
	baseURL string
	client  *http.Client
}

// NewHTTPProvider constructs a provider against the given endpoint.
func NewHTTPProvider(baseURL string) *HTTPProvider {
	return &HTTPProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type ratesResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// Rates fetches the rate table for the base currency.
func (p *HTTPProvider) Rates(ctx context.Context, base string) (map[string]float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/"+base, nil)
	if err != nil {
		return nil, fmt.Errorf("build rates request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch rates for %s: %w", base, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch rates for %s: status %d", base, resp.StatusCode)
	}

	var decoded ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode rates for %s: %w", base, err)
	}
	if len(decoded.Rates) == 0 {
		return nil, fmt.Errorf("%w: empty rate table for %s", ErrRateUnavailable, base)
	}

	return decoded.Rates, nil
}

// ProviderConverter adapts a RateProvider into a Converter.
type ProviderConverter struct {
	provider RateProvider
}

// NewProviderConverter wraps a rate provider.
func NewProviderConverter(provider RateProvider) *ProviderConverter {
	return &ProviderConverter{provider: provider}
}

// Convert looks up the from-currency rate table and applies the target rate.
func (c *ProviderConverter) Convert(ctx context.Context, amount float64, from, to string) (float64, error) {
	if from == to {
		return amount, nil
	}
	rates, err := c.provider.Rates(ctx, from)
	if err != nil {
		return 0, err
	}
	rate, ok := rates[to]
	if !ok {
		return 0, fmt.Errorf("%w: %s to %s", ErrRateUnavailable, from, to)
	}
	return amount * rate, nil
}

// Package exchangerateapi implements a RateProvider backed by the
// exchangerate-api.com v6 pair endpoint.
package exchangerateapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/buddybudget/networth-backend/internal/domain"
)

const sourceName = "exchangerate-api"

// Client fetches pair conversion rates over HTTP.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// pairResponse represents the v6 pair response from the ExchangeRate API.
// See: https://www.exchangerate-api.com/docs/pair-conversion-requests
type pairResponse struct {
	Result         string  `json:"result"`
	BaseCode       string  `json:"base_code"`
	TargetCode     string  `json:"target_code"`
	ConversionRate float64 `json:"conversion_rate"`
	ErrorType      string  `json:"error-type,omitempty"`
}

// New creates a new Client. baseURL should look like https://v6.exchangerate-api.com/v6.
func New(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// GetRate fetches the current exchange rate for a currency pair.
// Every failure mode (transport, status, payload) wraps
// domain.ErrExchangeRateUnavailable so the ledger can abort its transaction.
func (c *Client) GetRate(ctx context.Context, from, to string) (*domain.ExchangeRate, error) {
	url := fmt.Sprintf("%s/%s/pair/%s/%s", c.baseURL, c.apiKey, from, to)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rate %s->%s: %w: %w", from, to, domain.ErrExchangeRateUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Warn("rate API returned non-OK status",
			"status", resp.StatusCode, "from", from, "to", to, "body", string(body))
		return nil, fmt.Errorf("rate API returned status %d: %w", resp.StatusCode, domain.ErrExchangeRateUnavailable)
	}

	var apiResp pairResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode rate response: %w: %w", domain.ErrExchangeRateUnavailable, err)
	}

	if apiResp.Result != "success" {
		return nil, fmt.Errorf("rate API returned result=%s error-type=%s: %w",
			apiResp.Result, apiResp.ErrorType, domain.ErrExchangeRateUnavailable)
	}

	if apiResp.ConversionRate <= 0 {
		return nil, fmt.Errorf("rate API quoted non-positive rate %v: %w",
			apiResp.ConversionRate, domain.ErrExchangeRateUnavailable)
	}

	rate := &domain.ExchangeRate{
		From:      from,
		To:        to,
		Rate:      decimal.NewFromFloat(apiResp.ConversionRate),
		FetchedAt: time.Now().UTC(),
		Source:    sourceName,
	}

	c.logger.Debug("fetched exchange rate", "from", from, "to", to, "rate", rate.Rate.String())
	return rate, nil
}

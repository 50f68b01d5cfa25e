package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is a point-in-time multiplicative conversion rate between two
// currencies, as quoted by a provider.
type ExchangeRate struct {
	From      string          `json:"from"`
	To        string          `json:"to"`
	Rate      decimal.Decimal `json:"rate"`
	FetchedAt time.Time       `json:"fetchedAt"`
	Source    string          `json:"source"`
}

// RateProvider quotes exchange rates. A failed lookup is an explicit error
// (wrapping ErrExchangeRateUnavailable), never a sentinel rate value.
type RateProvider interface {
	GetRate(ctx context.Context, from, to string) (*ExchangeRate, error)
}

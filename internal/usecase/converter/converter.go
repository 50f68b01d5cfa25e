package converter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/buddybudget/networth-backend/internal/domain"
)

// Service converts monetary values between currencies using a RateProvider.
type Service struct {
	Rates  domain.RateProvider
	Logger *slog.Logger
}

// NewService creates a new converter Service instance
func NewService(rates domain.RateProvider, logger *slog.Logger) *Service {
	return &Service{
		Rates:  rates,
		Logger: logger,
	}
}

// Convert translates value from one currency to another and returns the converted
// value together with the rate used. When both currencies match, the provider is
// not consulted at all and the rate is exactly 1.
//
// A provider failure, or a non-positive quoted rate, yields an error wrapping
// domain.ErrExchangeRateUnavailable so callers can abort their transaction.
func (s *Service) Convert(ctx context.Context, value decimal.Decimal, from, to string) (decimal.Decimal, decimal.Decimal, error) {
	if from == to {
		return value, decimal.NewFromInt(1), nil
	}

	rate, err := s.Rates.GetRate(ctx, from, to)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to get rate %s->%s: %w", from, to, err)
	}

	// A zero or negative rate is a provider bug, not a usable quote
	if !rate.Rate.IsPositive() {
		return decimal.Zero, decimal.Zero, fmt.Errorf("provider %s quoted non-positive rate %s for %s->%s: %w",
			rate.Source, rate.Rate, from, to, domain.ErrExchangeRateUnavailable)
	}

	converted := value.Mul(rate.Rate)
	s.Logger.Debug("converted value",
		"from", from, "to", to, "rate", rate.Rate.String(), "source", rate.Source)

	return converted, rate.Rate, nil
}

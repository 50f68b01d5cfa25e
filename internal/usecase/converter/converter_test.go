package converter

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/buddybudget/networth-backend/internal/domain"
)

// MockRateProvider is a mock implementation of RateProvider for testing
type MockRateProvider struct {
	mock.Mock
}

func (m *MockRateProvider) GetRate(ctx context.Context, from, to string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestConvert_SameCurrencySkipsProvider(t *testing.T) {
	ctx := context.Background()
	mockRates := new(MockRateProvider)
	service := NewService(mockRates, testLogger())

	value := decimal.NewFromInt(1000)
	converted, rate, err := service.Convert(ctx, value, "USD", "USD")

	assert.NoError(t, err)
	assert.True(t, converted.Equal(value))
	assert.True(t, rate.Equal(decimal.NewFromInt(1)))

	// The provider must not have been consulted
	mockRates.AssertNotCalled(t, "GetRate", mock.Anything, mock.Anything, mock.Anything)
}

func TestConvert_UsesProviderRate(t *testing.T) {
	ctx := context.Background()
	mockRates := new(MockRateProvider)
	service := NewService(mockRates, testLogger())

	mockRates.On("GetRate", ctx, "EUR", "USD").Return(&domain.ExchangeRate{
		From:      "EUR",
		To:        "USD",
		Rate:      decimal.NewFromFloat(1.1),
		FetchedAt: time.Now(),
		Source:    "test",
	}, nil)

	converted, rate, err := service.Convert(ctx, decimal.NewFromInt(1000), "EUR", "USD")

	assert.NoError(t, err)
	assert.True(t, converted.Equal(decimal.NewFromInt(1100)), "got %s", converted)
	assert.True(t, rate.Equal(decimal.NewFromFloat(1.1)))
	mockRates.AssertExpectations(t)
}

func TestConvert_RoundTripRecoversValue(t *testing.T) {
	ctx := context.Background()
	mockRates := new(MockRateProvider)
	service := NewService(mockRates, testLogger())

	rate := decimal.NewFromFloat(1.0567)
	mockRates.On("GetRate", ctx, "GBP", "USD").Return(&domain.ExchangeRate{
		From: "GBP", To: "USD", Rate: rate, Source: "test",
	}, nil)

	value := decimal.NewFromFloat(1234.56)
	converted, usedRate, err := service.Convert(ctx, value, "GBP", "USD")
	assert.NoError(t, err)

	recovered := converted.Div(usedRate)
	diff := recovered.Sub(value).Abs()
	assert.True(t, diff.LessThan(decimal.NewFromFloat(0.0001)), "round-trip diff %s", diff)
}

func TestConvert_ProviderErrorPropagates(t *testing.T) {
	ctx := context.Background()
	mockRates := new(MockRateProvider)
	service := NewService(mockRates, testLogger())

	mockRates.On("GetRate", ctx, "EUR", "USD").
		Return(nil, domain.ErrExchangeRateUnavailable)

	_, _, err := service.Convert(ctx, decimal.NewFromInt(100), "EUR", "USD")

	assert.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrExchangeRateUnavailable))
}

func TestConvert_NonPositiveRateRejected(t *testing.T) {
	ctx := context.Background()
	mockRates := new(MockRateProvider)
	service := NewService(mockRates, testLogger())

	// A provider signalling failure through a negative rate must be treated as an
	// error, never as a usable quote
	mockRates.On("GetRate", ctx, "EUR", "USD").Return(&domain.ExchangeRate{
		From: "EUR", To: "USD", Rate: decimal.NewFromInt(-1), Source: "legacy",
	}, nil)

	_, _, err := service.Convert(ctx, decimal.NewFromInt(100), "EUR", "USD")

	assert.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrExchangeRateUnavailable))
}

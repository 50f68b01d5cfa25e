package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAccount_Validate(t *testing.T) {
	tests := []struct {
		name    string
		account Account
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid checking account",
			account: Account{
				ID:       uuid.New(),
				UserID:   uuid.New(),
				Name:     "Main Checking",
				Type:     AccountTypeChecking,
				Value:    decimal.NewFromInt(1500),
				Currency: "EUR",
			},
			wantErr: false,
		},
		{
			name: "valid account with zero value",
			account: Account{
				ID:       uuid.New(),
				UserID:   uuid.New(),
				Name:     "Empty Wallet",
				Type:     AccountTypeCash,
				Value:    decimal.Zero,
				Currency: "USD",
			},
			wantErr: false,
		},
		{
			name: "empty name should fail",
			account: Account{
				ID:       uuid.New(),
				UserID:   uuid.New(),
				Name:     "",
				Type:     AccountTypeSavings,
				Value:    decimal.NewFromInt(100),
				Currency: "USD",
			},
			wantErr: true,
			errMsg:  "account name cannot be empty",
		},
		{
			name: "unknown type should fail",
			account: Account{
				ID:       uuid.New(),
				UserID:   uuid.New(),
				Name:     "Weird",
				Type:     AccountType("CRYPTO"),
				Value:    decimal.NewFromInt(100),
				Currency: "USD",
			},
			wantErr: true,
			errMsg:  "account type must be",
		},
		{
			name: "lower-case currency should fail",
			account: Account{
				ID:       uuid.New(),
				UserID:   uuid.New(),
				Name:     "Main",
				Type:     AccountTypeChecking,
				Value:    decimal.NewFromInt(100),
				Currency: "usd",
			},
			wantErr: true,
			errMsg:  "currency",
		},
		{
			name: "short currency should fail",
			account: Account{
				ID:       uuid.New(),
				UserID:   uuid.New(),
				Name:     "Main",
				Type:     AccountTypeChecking,
				Value:    decimal.NewFromInt(100),
				Currency: "EU",
			},
			wantErr: true,
			errMsg:  "currency",
		},
		{
			name: "negative value should fail",
			account: Account{
				ID:       uuid.New(),
				UserID:   uuid.New(),
				Name:     "Overdrawn",
				Type:     AccountTypeCard,
				Value:    decimal.NewFromInt(-50),
				Currency: "USD",
			},
			wantErr: true,
			errMsg:  "account value cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.account.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidCurrency(t *testing.T) {
	assert.True(t, ValidCurrency("USD"))
	assert.True(t, ValidCurrency("EUR"))
	assert.False(t, ValidCurrency("usd"))
	assert.False(t, ValidCurrency("US"))
	assert.False(t, ValidCurrency("DOLLAR"))
	assert.False(t, ValidCurrency("U$D"))
	assert.False(t, ValidCurrency(""))
}

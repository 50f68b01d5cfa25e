package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountType represents the kind of liquidity account being tracked
type AccountType string

const (
	AccountTypeChecking AccountType = "CHECKING"
	AccountTypeSavings  AccountType = "SAVINGS"
	AccountTypeCash     AccountType = "CASH"
	AccountTypeCard     AccountType = "CARD"
	AccountTypeOther    AccountType = "OTHER"
)

// Account represents a user-owned monetary holding tracked for net-worth computation.
// Value is stored in the account's native currency; conversion to the user's primary
// currency happens only when snapshots are written.
type Account struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Type      AccountType
	Value     decimal.Decimal // native currency
	Currency  string          // ISO 4217, upper case
	Icon      string
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate ensures the account adheres to domain rules
// Returns an error if validation fails
func (a *Account) Validate() error {
	if a.Name == "" {
		return errors.New("account name cannot be empty")
	}

	switch a.Type {
	case AccountTypeChecking, AccountTypeSavings, AccountTypeCash, AccountTypeCard, AccountTypeOther:
	default:
		return errors.New("account type must be CHECKING, SAVINGS, CASH, CARD, or OTHER")
	}

	if !ValidCurrency(a.Currency) {
		return errors.New("account currency must be a 3-letter upper-case ISO code")
	}

	if a.Value.IsNegative() {
		return errors.New("account value cannot be negative")
	}

	return nil
}

// ValidCurrency reports whether code looks like an ISO 4217 currency code.
func ValidCurrency(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

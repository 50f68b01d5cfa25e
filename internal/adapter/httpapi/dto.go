package httpapi

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/buddybudget/networth-backend/internal/domain"
)

// CreateAccountRequest is the payload for POST /v1/accounts.
// Monetary values travel as strings to avoid float truncation in JSON.
type CreateAccountRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Type     string `json:"type" validate:"required,oneof=CHECKING SAVINGS CASH CARD OTHER"`
	Value    string `json:"value" validate:"required"`
	Currency string `json:"currency" validate:"required,len=3,uppercase"`
	Icon     string `json:"icon" validate:"max=50"`
	Color    string `json:"color" validate:"max=20"`
}

// UpdateAccountRequest is the payload for PATCH /v1/accounts/:id.
// Absent fields are left unchanged.
type UpdateAccountRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=100"`
	Type  *string `json:"type" validate:"omitempty,oneof=CHECKING SAVINGS CASH CARD OTHER"`
	Value *string `json:"value"`
	Icon  *string `json:"icon" validate:"omitempty,max=50"`
	Color *string `json:"color" validate:"omitempty,max=20"`
}

// OnboardingAccountRequest is one account of the onboarding batch
type OnboardingAccountRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Type     string `json:"type" validate:"required,oneof=CHECKING SAVINGS CASH CARD OTHER"`
	Value    string `json:"value" validate:"required"`
	Currency string `json:"currency" validate:"required,len=3,uppercase"`
	Icon     string `json:"icon" validate:"max=50"`
	Color    string `json:"color" validate:"max=20"`
}

// CompleteOnboardingRequest is the payload for POST /v1/onboarding
type CompleteOnboardingRequest struct {
	PrimaryCurrency string                     `json:"primaryCurrency" validate:"required,len=3,uppercase"`
	Accounts        []OnboardingAccountRequest `json:"accounts" validate:"required,min=1,dive"`
}

// AccountResponse mirrors a domain account on the wire
type AccountResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Value     decimal.Decimal `json:"value"`
	Currency  string          `json:"currency"`
	Icon      string          `json:"icon,omitempty"`
	Color     string          `json:"color,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// EntryResponse mirrors a snapshot entry on the wire
type EntryResponse struct {
	AccountID      string          `json:"accountId"`
	Value          decimal.Decimal `json:"value"`
	ConvertedValue decimal.Decimal `json:"convertedValue"`
}

// SnapshotResponse mirrors a wealth snapshot on the wire
type SnapshotResponse struct {
	ID      string          `json:"id"`
	Seq     int64           `json:"seq"`
	TakenAt time.Time       `json:"takenAt"`
	Entries []EntryResponse `json:"entries"`
	Total   decimal.Decimal `json:"total"`
}

func toAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		ID:        a.ID.String(),
		Name:      a.Name,
		Type:      string(a.Type),
		Value:     a.Value,
		Currency:  a.Currency,
		Icon:      a.Icon,
		Color:     a.Color,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func toSnapshotResponse(s *domain.WealthSnapshot) SnapshotResponse {
	entries := make([]EntryResponse, 0, len(s.Entries))
	for _, e := range s.Entries {
		entries = append(entries, EntryResponse{
			AccountID:      e.AccountID.String(),
			Value:          e.Value,
			ConvertedValue: e.ConvertedValue,
		})
	}
	return SnapshotResponse{
		ID:      s.ID.String(),
		Seq:     s.Seq,
		TakenAt: s.TakenAt,
		Entries: entries,
		Total:   s.Total,
	}
}

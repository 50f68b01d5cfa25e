package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserSettings holds the per-user ledger preferences written at onboarding.
// PrimaryCurrency is the reporting currency all snapshot totals are expressed in.
type UserSettings struct {
	UserID          uuid.UUID
	PrimaryCurrency string
	OnboardedAt     time.Time
}

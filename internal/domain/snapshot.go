package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LiquidityEntry is one account's position inside a snapshot. Value is in the
// account's native currency, ConvertedValue in the user's primary currency at the
// exchange rate observed when the snapshot was taken.
// Entries are embedded in the snapshot row, not persisted separately.
type LiquidityEntry struct {
	AccountID      uuid.UUID       `json:"accountId"`
	Value          decimal.Decimal `json:"value"`
	ConvertedValue decimal.Decimal `json:"convertedValue"`
}

// WealthSnapshot is an append-only point-in-time record of all liquidity account
// balances and their sum in the user's primary currency. The snapshot chain is a log:
// every account mutation appends a new snapshot instead of updating the latest one,
// so the history doubles as an audit trail of net worth over time.
//
// Seq is monotonic per user and defines the total order of the chain; "latest" means
// highest Seq. The (UserID, Seq) pair is unique in storage, which turns concurrent
// appends into an explicit ErrConflict instead of a silent lost update.
//
// Invariant: Total equals the sum of ConvertedValue over Entries.
type WealthSnapshot struct {
	ID      uuid.UUID
	UserID  uuid.UUID
	Seq     int64
	TakenAt time.Time
	Entries []LiquidityEntry
	Total   decimal.Decimal
}

// FindEntry returns the index of the entry for accountID, or -1 if absent.
func (s *WealthSnapshot) FindEntry(accountID uuid.UUID) int {
	for i, e := range s.Entries {
		if e.AccountID == accountID {
			return i
		}
	}
	return -1
}

// CloneEntries returns an independent copy of the entry list, so a successor
// snapshot can be built without mutating this one.
func (s *WealthSnapshot) CloneEntries() []LiquidityEntry {
	entries := make([]LiquidityEntry, len(s.Entries))
	copy(entries, s.Entries)
	return entries
}

// SumEntries computes the total converted value over a list of entries.
func SumEntries(entries []LiquidityEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.ConvertedValue)
	}
	return total
}

// CheckTotal verifies the snapshot invariant: Total == sum of converted values.
func (s *WealthSnapshot) CheckTotal() bool {
	return s.Total.Equal(SumEntries(s.Entries))
}

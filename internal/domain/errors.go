package domain

import "errors"

// Sentinel errors shared across the ledger.
// Callers classify failures with errors.Is; the HTTP layer maps them to status codes.
var (
	// ErrNotFound indicates a referenced account, snapshot or settings row is absent.
	ErrNotFound = errors.New("not found")

	// ErrInconsistentState indicates the snapshot history contradicts the account
	// table (e.g. a live account missing from the latest snapshot). It signals prior
	// data corruption and is never patched silently; retrying will not help.
	ErrInconsistentState = errors.New("inconsistent ledger state")

	// ErrExchangeRateUnavailable indicates a conversion rate could not be obtained.
	// The enclosing transaction is aborted; the operation may succeed on retry.
	ErrExchangeRateUnavailable = errors.New("exchange rate unavailable")

	// ErrConflict indicates a concurrent mutation won the race for the next
	// snapshot sequence number.
	ErrConflict = errors.New("concurrent snapshot update")

	// ErrAlreadyOnboarded indicates onboarding was completed before for this user.
	ErrAlreadyOnboarded = errors.New("user already onboarded")
)

package domain

import (
	"context"

	"github.com/google/uuid"
)

// AccountRepository defines the interface for account persistence operations.
// All lookups are scoped to the owning user; a row owned by another user is
// reported as ErrNotFound.
type AccountRepository interface {
	// GetByID retrieves an account owned by userID
	GetByID(ctx context.Context, userID, id uuid.UUID) (*Account, error)

	// ListByUser retrieves all accounts owned by userID, oldest first
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Account, error)

	// Create creates a new account
	Create(ctx context.Context, account *Account) error

	// Update persists changes to an existing account
	Update(ctx context.Context, account *Account) error

	// Delete removes an account owned by userID
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// SnapshotRepository defines the interface for wealth snapshot persistence.
type SnapshotRepository interface {
	// Latest retrieves the snapshot with the highest sequence number for userID.
	// Returns ErrNotFound when the user has no snapshots yet.
	Latest(ctx context.Context, userID uuid.UUID) (*WealthSnapshot, error)

	// History retrieves all snapshots for userID in ascending sequence order
	History(ctx context.Context, userID uuid.UUID) ([]*WealthSnapshot, error)

	// Insert appends a snapshot to the user's chain.
	// Returns ErrConflict when (userID, seq) is already taken.
	Insert(ctx context.Context, snapshot *WealthSnapshot) error

	// Update rewrites an existing snapshot in place. Only account deletion uses
	// this; every other mutation appends via Insert.
	Update(ctx context.Context, snapshot *WealthSnapshot) error

	// ContainingAccount retrieves every snapshot of userID whose entry list
	// references accountID, in ascending sequence order
	ContainingAccount(ctx context.Context, userID, accountID uuid.UUID) ([]*WealthSnapshot, error)
}

// SettingsRepository defines the interface for user settings persistence.
type SettingsRepository interface {
	// Get retrieves the settings for userID, or ErrNotFound before onboarding
	Get(ctx context.Context, userID uuid.UUID) (*UserSettings, error)

	// Create persists the settings written at onboarding completion
	Create(ctx context.Context, settings *UserSettings) error
}

// Repositories bundles the repository set bound to one database session, so a
// multi-step mutation touches the account table and the snapshot chain through
// the same transaction.
type Repositories struct {
	Accounts  AccountRepository
	Snapshots SnapshotRepository
	Settings  SettingsRepository
}

// Store provides the transaction boundary for ledger mutations.
type Store interface {
	// InTx runs fn inside a single database transaction. The Repositories passed
	// to fn are bound to that transaction; any error from fn rolls everything
	// back, so a failed mutation leaves no partial state.
	InTx(ctx context.Context, fn func(r Repositories) error) error

	// Repos returns repositories bound to the plain connection, for reads that
	// need no transaction.
	Repos() Repositories
}

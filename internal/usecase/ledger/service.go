package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/buddybudget/networth-backend/internal/domain"
	"github.com/buddybudget/networth-backend/internal/usecase/converter"
)

// CreateAccountInput represents the input for creating a liquidity account
type CreateAccountInput struct {
	UserID   uuid.UUID
	Name     string
	Type     domain.AccountType
	Value    decimal.Decimal
	Currency string
	Icon     string
	Color    string
}

// UpdateAccountInput represents the input for updating a liquidity account.
// Nil fields are left unchanged. Currency is immutable after creation.
type UpdateAccountInput struct {
	UserID    uuid.UUID
	AccountID uuid.UUID
	Name      *string
	Type      *domain.AccountType
	Icon      *string
	Color     *string
	Value     *decimal.Decimal
}

// OnboardingAccount is one account of the initial batch created at onboarding
type OnboardingAccount struct {
	Name     string
	Type     domain.AccountType
	Value    decimal.Decimal
	Currency string
	Icon     string
	Color    string
}

// CompleteOnboardingInput represents the input for completing onboarding
type CompleteOnboardingInput struct {
	UserID          uuid.UUID
	PrimaryCurrency string
	Accounts        []OnboardingAccount
}

// Service maintains the wealth snapshot chain across account lifecycle events.
//
// Every mutation runs inside a single store transaction covering the account
// write, the snapshot read and the snapshot write, so a crash or a failed
// exchange-rate lookup mid-sequence leaves no partial state: no orphan account
// without a snapshot entry, no snapshot with a stale total.
type Service struct {
	Store     domain.Store
	Converter *converter.Service
	Logger    *slog.Logger
}

// NewService creates a new ledger Service instance
func NewService(store domain.Store, conv *converter.Service, logger *slog.Logger) *Service {
	return &Service{
		Store:     store,
		Converter: conv,
		Logger:    logger,
	}
}

// CreateAccount creates an account and appends a snapshot reflecting it.
//
// The new snapshot is a copy of the latest one with the account's entry appended
// and the total increased by the converted value; the previous snapshot is never
// touched. When the user has no snapshots yet the first one is created with only
// this entry.
func (s *Service) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	account := &domain.Account{
		ID:       uuid.New(),
		UserID:   input.UserID,
		Name:     input.Name,
		Type:     input.Type,
		Value:    input.Value,
		Currency: input.Currency,
		Icon:     input.Icon,
		Color:    input.Color,
	}
	if err := account.Validate(); err != nil {
		return nil, err
	}

	err := s.Store.InTx(ctx, func(r domain.Repositories) error {
		settings, err := r.Settings.Get(ctx, input.UserID)
		if err != nil {
			return fmt.Errorf("failed to load user settings: %w", err)
		}

		converted, _, err := s.Converter.Convert(ctx, input.Value, input.Currency, settings.PrimaryCurrency)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		account.CreatedAt = now
		account.UpdatedAt = now
		if err := r.Accounts.Create(ctx, account); err != nil {
			return err
		}

		entry := domain.LiquidityEntry{
			AccountID:      account.ID,
			Value:          input.Value,
			ConvertedValue: converted,
		}

		next, err := nextSnapshot(ctx, r, input.UserID, now)
		if err != nil {
			return err
		}
		next.Entries = append(next.Entries, entry)
		next.Total = next.Total.Add(converted)

		return r.Snapshots.Insert(ctx, next)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Info("account created",
		"userId", input.UserID, "accountId", account.ID, "currency", input.Currency)
	return account, nil
}

// UpdateAccount applies changes to an account. Metadata-only changes (name, type,
// icon, color) never touch the snapshot chain. A value change appends a new
// snapshot whose entry for this account is replaced and whose total is adjusted
// by the converted difference; an unchanged value is a no-op for the chain.
//
// The exchange rate is refetched on every value change even when the currency was
// converted before: rates are time-varying and each snapshot is a historical
// record of the rate in effect when it was taken.
func (s *Service) UpdateAccount(ctx context.Context, input UpdateAccountInput) (*domain.Account, error) {
	var account *domain.Account

	err := s.Store.InTx(ctx, func(r domain.Repositories) error {
		var err error
		account, err = r.Accounts.GetByID(ctx, input.UserID, input.AccountID)
		if err != nil {
			return err
		}

		if input.Name != nil {
			account.Name = *input.Name
		}
		if input.Type != nil {
			account.Type = *input.Type
		}
		if input.Icon != nil {
			account.Icon = *input.Icon
		}
		if input.Color != nil {
			account.Color = *input.Color
		}

		valueChanged := input.Value != nil && !input.Value.Equal(account.Value)
		if !valueChanged {
			if err := account.Validate(); err != nil {
				return err
			}
			account.UpdatedAt = time.Now().UTC()
			return r.Accounts.Update(ctx, account)
		}

		account.Value = *input.Value
		if err := account.Validate(); err != nil {
			return err
		}

		settings, err := r.Settings.Get(ctx, input.UserID)
		if err != nil {
			return fmt.Errorf("failed to load user settings: %w", err)
		}

		newConverted, _, err := s.Converter.Convert(ctx, account.Value, account.Currency, settings.PrimaryCurrency)
		if err != nil {
			return err
		}

		latest, err := r.Snapshots.Latest(ctx, input.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("no snapshot exists for account %s: %w", account.ID, domain.ErrInconsistentState)
			}
			return err
		}

		idx := latest.FindEntry(account.ID)
		if idx < 0 {
			// Every live account must appear in the latest snapshot; a missing
			// entry means the chain is corrupt
			return fmt.Errorf("account %s missing from latest snapshot %d: %w",
				account.ID, latest.Seq, domain.ErrInconsistentState)
		}

		difference := newConverted.Sub(latest.Entries[idx].ConvertedValue)

		now := time.Now().UTC()
		entries := latest.CloneEntries()
		entries[idx] = domain.LiquidityEntry{
			AccountID:      account.ID,
			Value:          account.Value,
			ConvertedValue: newConverted,
		}

		next := &domain.WealthSnapshot{
			ID:      uuid.New(),
			UserID:  input.UserID,
			Seq:     latest.Seq + 1,
			TakenAt: now,
			Entries: entries,
			Total:   latest.Total.Add(difference),
		}

		account.UpdatedAt = now
		if err := r.Accounts.Update(ctx, account); err != nil {
			return err
		}
		return r.Snapshots.Insert(ctx, next)
	})
	if err != nil {
		return nil, err
	}

	return account, nil
}

// DeleteAccount removes an account and retroactively drops it from every
// historical snapshot, reducing each snapshot's total by the entry's converted
// value at that point in time and leaving the other entries untouched. This is
// the one operation that rewrites snapshot rows in place, so the history keeps
// no references to dead accounts.
func (s *Service) DeleteAccount(ctx context.Context, userID, accountID uuid.UUID) error {
	err := s.Store.InTx(ctx, func(r domain.Repositories) error {
		if _, err := r.Accounts.GetByID(ctx, userID, accountID); err != nil {
			return err
		}

		snapshots, err := r.Snapshots.ContainingAccount(ctx, userID, accountID)
		if err != nil {
			return err
		}
		if len(snapshots) == 0 {
			return fmt.Errorf("account %s appears in no snapshot: %w", accountID, domain.ErrInconsistentState)
		}

		for _, snapshot := range snapshots {
			idx := snapshot.FindEntry(accountID)
			if idx < 0 {
				return fmt.Errorf("snapshot %d claimed to contain account %s but does not: %w",
					snapshot.Seq, accountID, domain.ErrInconsistentState)
			}

			removed := snapshot.Entries[idx]
			snapshot.Entries = append(snapshot.Entries[:idx], snapshot.Entries[idx+1:]...)
			snapshot.Total = snapshot.Total.Sub(removed.ConvertedValue)

			if err := r.Snapshots.Update(ctx, snapshot); err != nil {
				return err
			}
		}

		return r.Accounts.Delete(ctx, userID, accountID)
	})
	if err != nil {
		return err
	}

	s.Logger.Info("account deleted", "userId", userID, "accountId", accountID)
	return nil
}

// CompleteOnboarding creates the initial account batch, persists the user's
// primary currency and seeds the snapshot chain with exactly one snapshot
// containing all initial entries. Any exchange-rate failure aborts the whole
// transaction: no user settings, accounts or snapshot are committed.
func (s *Service) CompleteOnboarding(ctx context.Context, input CompleteOnboardingInput) (*domain.WealthSnapshot, error) {
	if !domain.ValidCurrency(input.PrimaryCurrency) {
		return nil, errors.New("primary currency must be a 3-letter upper-case ISO code")
	}

	var seed *domain.WealthSnapshot

	err := s.Store.InTx(ctx, func(r domain.Repositories) error {
		if _, err := r.Settings.Get(ctx, input.UserID); err == nil {
			return domain.ErrAlreadyOnboarded
		} else if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		now := time.Now().UTC()
		entries := make([]domain.LiquidityEntry, 0, len(input.Accounts))
		total := decimal.Zero

		for _, a := range input.Accounts {
			account := &domain.Account{
				ID:        uuid.New(),
				UserID:    input.UserID,
				Name:      a.Name,
				Type:      a.Type,
				Value:     a.Value,
				Currency:  a.Currency,
				Icon:      a.Icon,
				Color:     a.Color,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := account.Validate(); err != nil {
				return err
			}

			converted, _, err := s.Converter.Convert(ctx, a.Value, a.Currency, input.PrimaryCurrency)
			if err != nil {
				return err
			}

			if err := r.Accounts.Create(ctx, account); err != nil {
				return err
			}

			entries = append(entries, domain.LiquidityEntry{
				AccountID:      account.ID,
				Value:          a.Value,
				ConvertedValue: converted,
			})
			total = total.Add(converted)
		}

		seed = &domain.WealthSnapshot{
			ID:      uuid.New(),
			UserID:  input.UserID,
			Seq:     1,
			TakenAt: now,
			Entries: entries,
			Total:   total,
		}
		if err := r.Snapshots.Insert(ctx, seed); err != nil {
			return err
		}

		return r.Settings.Create(ctx, &domain.UserSettings{
			UserID:          input.UserID,
			PrimaryCurrency: input.PrimaryCurrency,
			OnboardedAt:     now,
		})
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Info("onboarding completed",
		"userId", input.UserID, "accounts", len(input.Accounts), "primaryCurrency", input.PrimaryCurrency)
	return seed, nil
}

// GetAccount retrieves a single account owned by the user
func (s *Service) GetAccount(ctx context.Context, userID, accountID uuid.UUID) (*domain.Account, error) {
	return s.Store.Repos().Accounts.GetByID(ctx, userID, accountID)
}

// ListAccounts retrieves all accounts owned by the user
func (s *Service) ListAccounts(ctx context.Context, userID uuid.UUID) ([]*domain.Account, error) {
	return s.Store.Repos().Accounts.ListByUser(ctx, userID)
}

// LatestSnapshot retrieves the user's current net worth snapshot
func (s *Service) LatestSnapshot(ctx context.Context, userID uuid.UUID) (*domain.WealthSnapshot, error) {
	return s.Store.Repos().Snapshots.Latest(ctx, userID)
}

// SnapshotHistory retrieves the full snapshot chain in ascending order, for charting
func (s *Service) SnapshotHistory(ctx context.Context, userID uuid.UUID) ([]*domain.WealthSnapshot, error) {
	return s.Store.Repos().Snapshots.History(ctx, userID)
}

// nextSnapshot prepares the successor of the user's latest snapshot: a copy of
// its entries with the sequence number advanced. When the chain is empty it
// returns the first snapshot of the chain.
func nextSnapshot(ctx context.Context, r domain.Repositories, userID uuid.UUID, takenAt time.Time) (*domain.WealthSnapshot, error) {
	latest, err := r.Snapshots.Latest(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.WealthSnapshot{
				ID:      uuid.New(),
				UserID:  userID,
				Seq:     1,
				TakenAt: takenAt,
				Entries: []domain.LiquidityEntry{},
				Total:   decimal.Zero,
			}, nil
		}
		return nil, err
	}

	return &domain.WealthSnapshot{
		ID:      uuid.New(),
		UserID:  userID,
		Seq:     latest.Seq + 1,
		TakenAt: takenAt,
		Entries: latest.CloneEntries(),
		Total:   latest.Total,
	}, nil
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/buddybudget/networth-backend/internal/domain"
)

// settingsRepository implements domain.SettingsRepository
type settingsRepository struct {
	q querier
}

// Get retrieves the settings for userID
func (r *settingsRepository) Get(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error) {
	query := `
		SELECT user_id, primary_currency, onboarded_at
		FROM user_settings
		WHERE user_id = $1
	`

	var settings domain.UserSettings
	err := r.q.QueryRowContext(ctx, query, userID).Scan(
		&settings.UserID,
		&settings.PrimaryCurrency,
		&settings.OnboardedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("settings for user %s: %w", userID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user settings: %w", err)
	}
	return &settings, nil
}

// Create persists the settings written at onboarding completion
func (r *settingsRepository) Create(ctx context.Context, settings *domain.UserSettings) error {
	query := `
		INSERT INTO user_settings (user_id, primary_currency, onboarded_at)
		VALUES ($1, $2, $3)
	`

	_, err := r.q.ExecContext(ctx, query,
		settings.UserID,
		settings.PrimaryCurrency,
		settings.OnboardedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user settings: %w", err)
	}
	return nil
}

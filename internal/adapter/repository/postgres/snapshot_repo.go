package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/buddybudget/networth-backend/internal/domain"
)

// snapshotRepository implements domain.SnapshotRepository
type snapshotRepository struct {
	q querier
}

const snapshotColumns = `id, user_id, seq, taken_at, entries, total`

// Latest retrieves the snapshot with the highest sequence number for userID
func (r *snapshotRepository) Latest(ctx context.Context, userID uuid.UUID) (*domain.WealthSnapshot, error) {
	query := `
		SELECT ` + snapshotColumns + `
		FROM wealth_snapshots
		WHERE user_id = $1
		ORDER BY seq DESC
		LIMIT 1
	`

	snapshot, err := scanSnapshot(r.q.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("no snapshot for user %s: %w", userID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get latest snapshot: %w", err)
	}
	return snapshot, nil
}

// History retrieves all snapshots for userID in ascending sequence order
func (r *snapshotRepository) History(ctx context.Context, userID uuid.UUID) ([]*domain.WealthSnapshot, error) {
	query := `
		SELECT ` + snapshotColumns + `
		FROM wealth_snapshots
		WHERE user_id = $1
		ORDER BY seq ASC
	`
	return r.querySnapshots(ctx, query, userID)
}

// Insert appends a snapshot to the user's chain.
// A (user_id, seq) unique violation is reported as domain.ErrConflict: another
// mutation won the race for this sequence number.
func (r *snapshotRepository) Insert(ctx context.Context, snapshot *domain.WealthSnapshot) error {
	entries, err := json.Marshal(snapshot.Entries)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot entries: %w", err)
	}

	query := `
		INSERT INTO wealth_snapshots (id, user_id, seq, taken_at, entries, total)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = r.q.ExecContext(ctx, query,
		snapshot.ID,
		snapshot.UserID,
		snapshot.Seq,
		snapshot.TakenAt,
		entries,
		snapshot.Total.String(),
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("snapshot seq %d for user %s already taken: %w",
				snapshot.Seq, snapshot.UserID, domain.ErrConflict)
		}
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}
	return nil
}

// Update rewrites an existing snapshot row in place (account deletion only)
func (r *snapshotRepository) Update(ctx context.Context, snapshot *domain.WealthSnapshot) error {
	entries, err := json.Marshal(snapshot.Entries)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot entries: %w", err)
	}

	query := `
		UPDATE wealth_snapshots
		SET entries = $2, total = $3
		WHERE id = $1
	`

	result, err := r.q.ExecContext(ctx, query, snapshot.ID, entries, snapshot.Total.String())
	if err != nil {
		return fmt.Errorf("failed to update snapshot: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("snapshot %s: %w", snapshot.ID, domain.ErrNotFound)
	}
	return nil
}

// ContainingAccount retrieves every snapshot whose entry list references
// accountID, using a JSONB containment match against the GIN index.
func (r *snapshotRepository) ContainingAccount(ctx context.Context, userID, accountID uuid.UUID) ([]*domain.WealthSnapshot, error) {
	probe, err := json.Marshal([]map[string]string{{"accountId": accountID.String()}})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal containment probe: %w", err)
	}

	query := `
		SELECT ` + snapshotColumns + `
		FROM wealth_snapshots
		WHERE user_id = $1 AND entries @> $2::jsonb
		ORDER BY seq ASC
	`
	return r.querySnapshots(ctx, query, userID, probe)
}

func (r *snapshotRepository) querySnapshots(ctx context.Context, query string, args ...any) ([]*domain.WealthSnapshot, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	snapshots := make([]*domain.WealthSnapshot, 0)
	for rows.Next() {
		snapshot, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snapshots = append(snapshots, snapshot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshots: %w", err)
	}
	return snapshots, nil
}

func scanSnapshot(row rowScanner) (*domain.WealthSnapshot, error) {
	var snapshot domain.WealthSnapshot
	var entriesRaw []byte
	var totalStr string

	err := row.Scan(
		&snapshot.ID,
		&snapshot.UserID,
		&snapshot.Seq,
		&snapshot.TakenAt,
		&entriesRaw,
		&totalStr,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(entriesRaw, &snapshot.Entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot entries: %w", err)
	}

	total, err := decimal.NewFromString(totalStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse snapshot total: %w", err)
	}
	snapshot.Total = total

	return &snapshot, nil
}

package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/buddybudget/networth-backend/internal/domain"
)

// querier is the subset of database/sql shared by *sql.DB and *sql.Tx, so the
// same repository code runs inside and outside a transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store implements domain.Store on top of a postgres connection.
type Store struct {
	db *DB
}

// NewStore creates a new Store
func NewStore(db *DB) *Store {
	return &Store{db: db}
}

// Repos returns repositories bound to the plain connection
func (s *Store) Repos() domain.Repositories {
	return newRepositories(s.db.DB)
}

// InTx runs fn inside a single database transaction. Any error from fn rolls
// the whole transaction back.
func (s *Store) InTx(ctx context.Context, fn func(r domain.Repositories) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(newRepositories(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func newRepositories(q querier) domain.Repositories {
	return domain.Repositories{
		Accounts:  &accountRepository{q: q},
		Snapshots: &snapshotRepository{q: q},
		Settings:  &settingsRepository{q: q},
	}
}

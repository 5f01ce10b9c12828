package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/andy/boutiquebill/internal/db"
)

// stamp formats the write time the way sqlite's datetime() can compare it
func stamp() string {
	return time.Now().UTC().Format(time.DateTime)
}

// StateRepo is a SQLite implementation of StateRepository
type StateRepo struct {
	db *db.DB
}

// NewStateRepo creates a new StateRepo
func NewStateRepo(database *db.DB) *StateRepo {
	return &StateRepo{db: database}
}

// Get retrieves a value by key
func (r *StateRepo) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM app_state WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get state %q: %w", key, err)
	}
	return value, true, nil
}

// Put inserts or replaces the value for key
func (r *StateRepo) Put(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO app_state (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	if _, err := r.db.ExecContext(ctx, query, key, value, stamp()); err != nil {
		return fmt.Errorf("failed to put state %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (r *StateRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM app_state WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete state %q: %w", key, err)
	}
	return nil
}

// Clear removes all stored state, including the logged-in user
func (r *StateRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM app_state`); err != nil {
		return fmt.Errorf("failed to clear state: %w", err)
	}
	return nil
}

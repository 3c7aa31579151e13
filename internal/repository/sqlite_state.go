package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mecrobet/marga/internal/db"
)

const activeSessionKey = "active_session"

// SQLiteStateRepo implements StateRepo on the app_state key/value table.
type SQLiteStateRepo struct {
	db db.DBTX
}

func NewSQLiteStateRepo(conn db.DBTX) *SQLiteStateRepo {
	return &SQLiteStateRepo{db: conn}
}

func (r *SQLiteStateRepo) ActiveSessionID(ctx context.Context) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM app_state WHERE key = ?`, activeSessionKey).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("active session: %w", ErrNotFound)
		}
		return "", fmt.Errorf("reading active session: %w", err)
	}
	return id, nil
}

func (r *SQLiteStateRepo) SetActiveSessionID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO app_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, activeSessionKey, id)
	if err != nil {
		return fmt.Errorf("setting active session: %w", err)
	}
	return nil
}

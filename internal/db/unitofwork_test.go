package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/mecrobet/marga/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openUoW(t *testing.T) (*sql.DB, *db.SQLiteUnitOfWork) {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database, db.NewSQLiteUnitOfWork(database)
}

func setState(ctx context.Context, tx db.DBTX, key, value string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO app_state (key, value) VALUES (?, ?)`, key, value)
	return err
}

func stateExists(t *testing.T, database *sql.DB, key string) bool {
	t.Helper()
	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM app_state WHERE key = ?`, key).Scan(&n))
	return n > 0
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	database, uow := openUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return setState(ctx, tx, "active_session", "s1")
	})

	require.NoError(t, err)
	assert.True(t, stateExists(t, database, "active_session"))
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	database, uow := openUoW(t)
	boom := errors.New("deliberate failure")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		require.NoError(t, setState(ctx, tx, "k", "v"))
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.False(t, stateExists(t, database, "k"))
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	database, uow := openUoW(t)

	assert.PanicsWithValue(t, "boom", func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = setState(ctx, tx, "k", "v")
			panic("boom")
		})
	})

	assert.False(t, stateExists(t, database, "k"))
}

func TestWithinTx_ConnectionReusableAfterFailure(t *testing.T) {
	database, uow := openUoW(t)

	_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return errors.New("first fails")
	})
	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return setState(ctx, tx, "k", "v")
	})

	require.NoError(t, err)
	assert.True(t, stateExists(t, database, "k"))
}

package localstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/youiz/dri-portal/internal/dbx"
	"github.com/youiz/dri-portal/internal/localstore/migrations"
)

// SQLiteTier is the durable tier (tier B), a key/value table in the
// client's local SQLite file.
type SQLiteTier struct {
	db dbx.DBTX
}

func NewSQLiteTier(db dbx.DBTX) *SQLiteTier {
	return &SQLiteTier{db: db}
}

// InitDatabase opens (creating if needed) the local SQLite file and brings
// its schema up to date. The driver must be registered by the caller
// (blank import of modernc.org/sqlite).
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("goose dialect error: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}
	return db, nil
}

func (t *SQLiteTier) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := t.db.QueryRowContext(ctx,
		`SELECT value FROM local_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get local_state[%s]: %w", key, err)
	}
	return value, nil
}

func (t *SQLiteTier) Set(ctx context.Context, key string, value []byte) error {
	_, err := t.db.ExecContext(ctx, `
		INSERT INTO local_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set local_state[%s]: %w", key, err)
	}
	return nil
}

func (t *SQLiteTier) Delete(ctx context.Context, key string) error {
	_, err := t.db.ExecContext(ctx, `DELETE FROM local_state WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete local_state[%s]: %w", key, err)
	}
	return nil
}

func (t *SQLiteTier) Clear(ctx context.Context) error {
	_, err := t.db.ExecContext(ctx, `DELETE FROM local_state`)
	if err != nil {
		return fmt.Errorf("failed to clear local_state: %w", err)
	}
	return nil
}

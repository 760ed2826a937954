package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/youiz/dri-portal/internal/migrations"
	"github.com/youiz/dri-portal/internal/repositories/codes"
	"github.com/youiz/dri-portal/internal/repositories/sessions"
	"github.com/youiz/dri-portal/internal/repositories/users"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresManager backs every repository with a direct database connection
// (self-hosted mode), running migrations on startup.
type PostgresManager struct {
	db       *sql.DB
	users    *users.PostgresRepository
	codes    *codes.PostgresRepository
	sessions *sessions.PostgresRepository
}

func NewPostgresManager(ctx context.Context, dsn string) (*PostgresManager, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("goose dialect error: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return &PostgresManager{
		db:       db,
		users:    users.NewPostgresRepository(db),
		codes:    codes.NewPostgresRepository(db),
		sessions: sessions.NewPostgresRepository(db),
	}, nil
}

func (m *PostgresManager) Users() users.Repository       { return m.users }
func (m *PostgresManager) Codes() codes.Repository       { return m.codes }
func (m *PostgresManager) Sessions() sessions.Repository { return m.sessions }
func (m *PostgresManager) Close() error                  { return m.db.Close() }

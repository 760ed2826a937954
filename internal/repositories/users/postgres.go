package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/youiz/dri-portal/internal/common"
	"github.com/youiz/dri-portal/internal/dbx"
	"github.com/youiz/dri-portal/internal/models"
)

// PostgresRepository talks straight to the portal database, bypassing the
// REST gateway. Used by self-hosted deployments.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByNick(ctx context.Context, nick string) (*models.User, error) {
	query :=
		`SELECT nick, senha, cargo, verificado, status, data_criacao, ultimo_acesso, ultimo_device_id
		 FROM usuarios
		 WHERE nick = $1
		 `

	user := &models.User{}
	var ultimoDeviceID sql.NullString
	err := r.db.QueryRowContext(ctx, query, nick).Scan(
		&user.Nick, &user.SenhaHash, &user.Cargo, &user.Verificado,
		&user.Status, &user.DataCriacao, &user.UltimoAcesso, &ultimoDeviceID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	user.UltimoDeviceID = ultimoDeviceID.String
	return user, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) error {
	query :=
		`INSERT INTO usuarios (nick, senha, cargo, verificado, status, data_criacao)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 `

	_, err := r.db.ExecContext(ctx, query,
		user.Nick, user.SenhaHash, user.Cargo, user.Verificado, user.Status, user.DataCriacao)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SetVerified(ctx context.Context, nick string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE usuarios SET verificado = true WHERE nick = $1`, nick)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}

func (r *PostgresRepository) UpdatePassword(ctx context.Context, nick string, senhaHash string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE usuarios SET senha = $2 WHERE nick = $1`, nick, senhaHash)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}

func (r *PostgresRepository) UpdateLastAccess(ctx context.Context, nick string, at time.Time, deviceID string) error {
	var err error
	if deviceID == "" {
		_, err = r.db.ExecContext(ctx,
			`UPDATE usuarios SET ultimo_acesso = $2 WHERE nick = $1`, nick, at)
	} else {
		_, err = r.db.ExecContext(ctx,
			`UPDATE usuarios SET ultimo_acesso = $2, ultimo_device_id = $3 WHERE nick = $1`,
			nick, at, deviceID)
	}
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}

package sessions

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/youiz/dri-portal/internal/common"
	"github.com/youiz/dri-portal/internal/dbx"
	"github.com/youiz/dri-portal/internal/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, session *models.SessionRecord) error {
	deviceInfo, err := json.Marshal(session.DeviceInfo)
	if err != nil {
		return fmt.Errorf("error encoding device info: %w", err)
	}

	query :=
		`INSERT INTO sessoes (id, usuario_nick, token, device_id, device_info, data_criacao, data_expiracao, ativa, manter_conectado)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 `

	_, err = r.db.ExecContext(ctx, query,
		session.ID, session.UsuarioNick, session.Token, session.DeviceID, deviceInfo,
		session.DataCriacao, session.DataExpiracao, session.Ativa, session.ManterConectado)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}

func (r *PostgresRepository) scanSession(row *sql.Row) (*models.SessionRecord, error) {
	session := &models.SessionRecord{}
	var deviceInfo []byte
	err := row.Scan(
		&session.ID, &session.UsuarioNick, &session.Token, &session.DeviceID, &deviceInfo,
		&session.DataCriacao, &session.DataExpiracao, &session.Ativa, &session.ManterConectado)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	if len(deviceInfo) > 0 {
		if err := json.Unmarshal(deviceInfo, &session.DeviceInfo); err != nil {
			return nil, fmt.Errorf("error decoding device info: %w", err)
		}
	}
	return session, nil
}

const sessionColumns = `id, usuario_nick, token, device_id, device_info, data_criacao, data_expiracao, ativa, manter_conectado`

func (r *PostgresRepository) GetActiveByToken(ctx context.Context, token string) (*models.SessionRecord, error) {
	query := `SELECT ` + sessionColumns + `
		 FROM sessoes
		 WHERE token = $1 AND ativa = true
		 `
	return r.scanSession(r.db.QueryRowContext(ctx, query, token))
}

func (r *PostgresRepository) DeactivateByToken(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE sessoes SET ativa = false WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeactivateByDevice(ctx context.Context, deviceID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE sessoes SET ativa = false WHERE device_id = $1 AND ativa = true`, deviceID)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}

func (r *PostgresRepository) LatestActiveForDevice(ctx context.Context, nick, deviceID string, now time.Time) (*models.SessionRecord, error) {
	query := `SELECT ` + sessionColumns + `
		 FROM sessoes
		 WHERE usuario_nick = $1 AND device_id = $2 AND ativa = true AND data_expiracao > $3
		 ORDER BY data_criacao DESC
		 LIMIT 1
		 `
	return r.scanSession(r.db.QueryRowContext(ctx, query, nick, deviceID, now))
}

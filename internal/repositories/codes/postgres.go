package codes

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

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, code *models.VerificationCode) error {
	query :=
		`INSERT INTO codigos_verificacao (id, usuario_nick, codigo, tipo, expira_em, usado)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 `

	_, err := r.db.ExecContext(ctx, query,
		code.ID, code.UsuarioNick, code.Codigo, code.Tipo, code.ExpiraEm, code.Usado)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}

func (r *PostgresRepository) FindActive(ctx context.Context, nick, code string, purpose models.CodePurpose, now time.Time) (*models.VerificationCode, error) {
	query :=
		`SELECT id, usuario_nick, codigo, tipo, expira_em, usado
		 FROM codigos_verificacao
		 WHERE usuario_nick = $1 AND codigo = $2 AND usado = false AND expira_em > $3
		   AND ($4 = '' OR tipo = $4)
		 LIMIT 1
		 `

	row := &models.VerificationCode{}
	err := r.db.QueryRowContext(ctx, query, nick, code, now, string(purpose)).Scan(
		&row.ID, &row.UsuarioNick, &row.Codigo, &row.Tipo, &row.ExpiraEm, &row.Usado)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	return row, nil
}

func (r *PostgresRepository) MarkUsed(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE codigos_verificacao SET usado = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}

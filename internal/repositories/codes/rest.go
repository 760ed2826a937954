package codes

import (
	"context"
	"time"

	"github.com/youiz/dri-portal/internal/common"
	"github.com/youiz/dri-portal/internal/models"
	"github.com/youiz/dri-portal/internal/tablestore"
)

type codeRow struct {
	ID          string    `json:"id"`
	UsuarioNick string    `json:"usuario_nick"`
	Codigo      string    `json:"codigo"`
	Tipo        string    `json:"tipo"`
	ExpiraEm    time.Time `json:"expira_em"`
	Usado       bool      `json:"usado"`
}

func (r *codeRow) toModel() *models.VerificationCode {
	return &models.VerificationCode{
		ID:          r.ID,
		UsuarioNick: r.UsuarioNick,
		Codigo:      r.Codigo,
		Tipo:        models.CodePurpose(r.Tipo),
		ExpiraEm:    r.ExpiraEm,
		Usado:       r.Usado,
	}
}

type RestRepository struct {
	store *tablestore.Client
}

func NewRestRepository(store *tablestore.Client) *RestRepository {
	return &RestRepository{store: store}
}

func (r *RestRepository) Create(ctx context.Context, code *models.VerificationCode) error {
	row := codeRow{
		ID:          code.ID,
		UsuarioNick: code.UsuarioNick,
		Codigo:      code.Codigo,
		Tipo:        string(code.Tipo),
		ExpiraEm:    code.ExpiraEm,
		Usado:       code.Usado,
	}
	return r.store.Insert(ctx, common.TableCodes, row)
}

func (r *RestRepository) FindActive(ctx context.Context, nick, code string, purpose models.CodePurpose, now time.Time) (*models.VerificationCode, error) {
	filters := []tablestore.Filter{
		tablestore.Eq("usuario_nick", nick),
		tablestore.Eq("codigo", code),
		tablestore.Eq("usado", false),
		tablestore.Gt("expira_em", now),
	}
	if purpose != "" {
		filters = append(filters, tablestore.Eq("tipo", string(purpose)))
	}

	var row codeRow
	if err := r.store.SelectOne(ctx, common.TableCodes, &row, filters...); err != nil {
		return nil, err
	}
	return row.toModel(), nil
}

func (r *RestRepository) MarkUsed(ctx context.Context, id string) error {
	return r.store.Update(ctx, common.TableCodes,
		map[string]any{"usado": true},
		tablestore.Eq("id", id))
}

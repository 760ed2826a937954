package sessions

import (
	"context"
	"time"

	"github.com/youiz/dri-portal/internal/common"
	"github.com/youiz/dri-portal/internal/models"
	"github.com/youiz/dri-portal/internal/tablestore"
)

type sessionRow struct {
	ID              string            `json:"id"`
	UsuarioNick     string            `json:"usuario_nick"`
	Token           string            `json:"token"`
	DeviceID        string            `json:"device_id"`
	DeviceInfo      models.DeviceInfo `json:"device_info"`
	DataCriacao     time.Time         `json:"data_criacao"`
	DataExpiracao   time.Time         `json:"data_expiracao"`
	Ativa           bool              `json:"ativa"`
	ManterConectado bool              `json:"manter_conectado"`
}

func (r *sessionRow) toModel() *models.SessionRecord {
	return &models.SessionRecord{
		ID:              r.ID,
		UsuarioNick:     r.UsuarioNick,
		Token:           r.Token,
		DeviceID:        r.DeviceID,
		DeviceInfo:      r.DeviceInfo,
		DataCriacao:     r.DataCriacao,
		DataExpiracao:   r.DataExpiracao,
		Ativa:           r.Ativa,
		ManterConectado: r.ManterConectado,
	}
}

func fromModel(s *models.SessionRecord) sessionRow {
	return sessionRow{
		ID:              s.ID,
		UsuarioNick:     s.UsuarioNick,
		Token:           s.Token,
		DeviceID:        s.DeviceID,
		DeviceInfo:      s.DeviceInfo,
		DataCriacao:     s.DataCriacao,
		DataExpiracao:   s.DataExpiracao,
		Ativa:           s.Ativa,
		ManterConectado: s.ManterConectado,
	}
}

type RestRepository struct {
	store *tablestore.Client
}

func NewRestRepository(store *tablestore.Client) *RestRepository {
	return &RestRepository{store: store}
}

func (r *RestRepository) Create(ctx context.Context, session *models.SessionRecord) error {
	return r.store.Insert(ctx, common.TableSessions, fromModel(session))
}

func (r *RestRepository) GetActiveByToken(ctx context.Context, token string) (*models.SessionRecord, error) {
	var row sessionRow
	err := r.store.SelectOne(ctx, common.TableSessions, &row,
		tablestore.Eq("token", token),
		tablestore.Eq("ativa", true))
	if err != nil {
		return nil, err
	}
	return row.toModel(), nil
}

func (r *RestRepository) DeactivateByToken(ctx context.Context, token string) error {
	return r.store.Update(ctx, common.TableSessions,
		map[string]any{"ativa": false},
		tablestore.Eq("token", token))
}

func (r *RestRepository) DeactivateByDevice(ctx context.Context, deviceID string) error {
	return r.store.Update(ctx, common.TableSessions,
		map[string]any{"ativa": false},
		tablestore.Eq("device_id", deviceID),
		tablestore.Eq("ativa", true))
}

func (r *RestRepository) LatestActiveForDevice(ctx context.Context, nick, deviceID string, now time.Time) (*models.SessionRecord, error) {
	var rows []sessionRow
	err := r.store.Select(ctx, common.TableSessions, tablestore.Query{
		Filters: []tablestore.Filter{
			tablestore.Eq("usuario_nick", nick),
			tablestore.Eq("device_id", deviceID),
			tablestore.Eq("ativa", true),
			tablestore.Gt("data_expiracao", now),
		},
		OrderBy:    "data_criacao",
		Descending: true,
		Limit:      1,
	}, &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, common.ErrNotFound
	}
	return rows[0].toModel(), nil
}

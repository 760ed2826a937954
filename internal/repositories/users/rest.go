package users

import (
	"context"
	"time"

	"github.com/youiz/dri-portal/internal/common"
	"github.com/youiz/dri-portal/internal/models"
	"github.com/youiz/dri-portal/internal/tablestore"
)

// userRow mirrors the usuarios columns on the gateway.
type userRow struct {
	Nick           string     `json:"nick"`
	Senha          string     `json:"senha"`
	Cargo          string     `json:"cargo"`
	Verificado     bool       `json:"verificado"`
	Status         string     `json:"status"`
	DataCriacao    time.Time  `json:"data_criacao"`
	UltimoAcesso   *time.Time `json:"ultimo_acesso,omitempty"`
	UltimoDeviceID *string    `json:"ultimo_device_id,omitempty"`
}

func (r *userRow) toModel() *models.User {
	user := &models.User{
		Nick:         r.Nick,
		SenhaHash:    r.Senha,
		Cargo:        models.Role(r.Cargo),
		Verificado:   r.Verificado,
		Status:       models.UserStatus(r.Status),
		DataCriacao:  r.DataCriacao,
		UltimoAcesso: r.UltimoAcesso,
	}
	if r.UltimoDeviceID != nil {
		user.UltimoDeviceID = *r.UltimoDeviceID
	}
	return user
}

type RestRepository struct {
	store *tablestore.Client
}

func NewRestRepository(store *tablestore.Client) *RestRepository {
	return &RestRepository{store: store}
}

func (r *RestRepository) GetByNick(ctx context.Context, nick string) (*models.User, error) {
	var row userRow
	if err := r.store.SelectOne(ctx, common.TableUsers, &row, tablestore.Eq("nick", nick)); err != nil {
		return nil, err
	}
	return row.toModel(), nil
}

func (r *RestRepository) Create(ctx context.Context, user *models.User) error {
	row := userRow{
		Nick:        user.Nick,
		Senha:       user.SenhaHash,
		Cargo:       string(user.Cargo),
		Verificado:  user.Verificado,
		Status:      string(user.Status),
		DataCriacao: user.DataCriacao,
	}
	return r.store.Insert(ctx, common.TableUsers, row)
}

func (r *RestRepository) SetVerified(ctx context.Context, nick string) error {
	return r.store.Update(ctx, common.TableUsers,
		map[string]any{"verificado": true},
		tablestore.Eq("nick", nick))
}

func (r *RestRepository) UpdatePassword(ctx context.Context, nick string, senhaHash string) error {
	return r.store.Update(ctx, common.TableUsers,
		map[string]any{"senha": senhaHash},
		tablestore.Eq("nick", nick))
}

func (r *RestRepository) UpdateLastAccess(ctx context.Context, nick string, at time.Time, deviceID string) error {
	patch := map[string]any{"ultimo_acesso": at.Format(time.RFC3339)}
	if deviceID != "" {
		patch["ultimo_device_id"] = deviceID
	}
	return r.store.Update(ctx, common.TableUsers, patch, tablestore.Eq("nick", nick))
}

// Package users persists rows of the usuarios table.
package users

import (
	"context"
	"time"

	"github.com/youiz/dri-portal/internal/models"
)

// Repository is implemented by the REST gateway adapter and the direct
// Postgres adapter. Lookups by nick are case-sensitive. Missing rows are
// reported as common.ErrNotFound.
type Repository interface {
	GetByNick(ctx context.Context, nick string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	SetVerified(ctx context.Context, nick string) error
	UpdatePassword(ctx context.Context, nick string, senhaHash string) error

	// UpdateLastAccess stamps ultimo_acesso and, when deviceID is non-empty,
	// ultimo_device_id.
	UpdateLastAccess(ctx context.Context, nick string, at time.Time, deviceID string) error
}

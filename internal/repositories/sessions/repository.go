// Package sessions persists rows of the sessoes table.
package sessions

import (
	"context"
	"time"

	"github.com/youiz/dri-portal/internal/models"
)

// Repository stores session records. Sessions are deactivated via the
// ativa flag, never deleted. Missing rows are reported as
// common.ErrNotFound.
type Repository interface {
	Create(ctx context.Context, session *models.SessionRecord) error

	// GetActiveByToken returns the session with ativa=true for the token.
	GetActiveByToken(ctx context.Context, token string) (*models.SessionRecord, error)

	// DeactivateByToken flips ativa to false on the session matching token.
	DeactivateByToken(ctx context.Context, token string) error

	// DeactivateByDevice flips ativa to false on every active session bound
	// to the device fingerprint, enforcing the single-active-session-per-
	// device rule before a new login.
	DeactivateByDevice(ctx context.Context, deviceID string) error

	// LatestActiveForDevice returns the newest unexpired active session for
	// (nick, deviceID), used for silent re-authentication at login.
	LatestActiveForDevice(ctx context.Context, nick, deviceID string, now time.Time) (*models.SessionRecord, error)
}

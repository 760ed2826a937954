// Package codes persists rows of the codigos_verificacao table.
package codes

import (
	"context"
	"time"

	"github.com/youiz/dri-portal/internal/models"
)

// Repository stores verification codes. Codes are soft-consumed via
// MarkUsed; rows are never deleted. Missing rows are reported as
// common.ErrNotFound.
type Repository interface {
	Create(ctx context.Context, code *models.VerificationCode) error

	// FindActive returns the unconsumed, unexpired code row matching
	// (nick, code). When purpose is non-empty the lookup additionally
	// filters on tipo.
	FindActive(ctx context.Context, nick, code string, purpose models.CodePurpose, now time.Time) (*models.VerificationCode, error)

	MarkUsed(ctx context.Context, id string) error
}

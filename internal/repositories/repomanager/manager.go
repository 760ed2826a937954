// Package repomanager wires the per-entity repositories to one backend:
// either the hosted REST gateway or a direct Postgres connection.
package repomanager

import (
	"github.com/youiz/dri-portal/internal/repositories/codes"
	"github.com/youiz/dri-portal/internal/repositories/sessions"
	"github.com/youiz/dri-portal/internal/repositories/users"
)

// Manager hands out repositories that share a single backend.
type Manager interface {
	Users() users.Repository
	Codes() codes.Repository
	Sessions() sessions.Repository
	Close() error
}

package repomanager

import (
	"github.com/youiz/dri-portal/internal/repositories/codes"
	"github.com/youiz/dri-portal/internal/repositories/sessions"
	"github.com/youiz/dri-portal/internal/repositories/users"
	"github.com/youiz/dri-portal/internal/tablestore"
)

// RestManager backs every repository with the hosted table-store gateway.
type RestManager struct {
	users    *users.RestRepository
	codes    *codes.RestRepository
	sessions *sessions.RestRepository
}

func NewRestManager(store *tablestore.Client) *RestManager {
	return &RestManager{
		users:    users.NewRestRepository(store),
		codes:    codes.NewRestRepository(store),
		sessions: sessions.NewRestRepository(store),
	}
}

func (m *RestManager) Users() users.Repository       { return m.users }
func (m *RestManager) Codes() codes.Repository       { return m.codes }
func (m *RestManager) Sessions() sessions.Repository { return m.sessions }
func (m *RestManager) Close() error                  { return nil }

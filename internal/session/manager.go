// Package session owns the session-on-a-device state machine: creation,
// device binding, dual-tier persistence, revalidation and invalidation.
//
// A session moves through Unauthenticated → Active and ends Superseded
// (another login on the device), Expired (checked lazily on validation) or
// LoggedOut. Only Active is live; every terminal state absorbs until a new
// login restarts the machine.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/youiz/dri-portal/internal/codegen"
	"github.com/youiz/dri-portal/internal/common"
	"github.com/youiz/dri-portal/internal/device"
	"github.com/youiz/dri-portal/internal/localstore"
	"github.com/youiz/dri-portal/internal/logging"
	"github.com/youiz/dri-portal/internal/models"
	"github.com/youiz/dri-portal/internal/repositories/sessions"
	"github.com/youiz/dri-portal/internal/repositories/users"
	"github.com/youiz/dri-portal/internal/timex"
)

// Manager coordinates the session record on the table store with the
// client-held snapshot in the dual-tier local store.
type Manager struct {
	sessions sessions.Repository
	users    users.Repository
	store    *localstore.DualStore
	device   *device.Provider
	stayTTL  time.Duration
	shortTTL time.Duration
	log      logging.Logger

	now func() time.Time // test seam
}

func NewManager(
	sessionRepo sessions.Repository,
	userRepo users.Repository,
	store *localstore.DualStore,
	deviceProvider *device.Provider,
	stayTTL, shortTTL time.Duration,
	log logging.Logger,
) *Manager {
	return &Manager{
		sessions: sessionRepo,
		users:    userRepo,
		store:    store,
		device:   deviceProvider,
		stayTTL:  stayTTL,
		shortTTL: shortTTL,
		log:      log,
		now:      timex.Now,
	}
}

// Create mints a token bound to this device, supersedes any other active
// session on the same fingerprint, inserts the new record and writes the
// local snapshot: tier A always, tier B only when staySignedIn.
func (m *Manager) Create(ctx context.Context, nick string, cargo models.Role, staySignedIn bool) (*models.Snapshot, error) {
	deviceID, err := m.device.DeviceID(ctx)
	if err != nil {
		return nil, err
	}

	now := m.now()
	ttl := m.shortTTL
	if staySignedIn {
		ttl = m.stayTTL
	}

	// One active session per device: supersede before inserting. A failure
	// between the two writes leaves the device with zero active sessions,
	// which fails safe.
	if err := m.sessions.DeactivateByDevice(ctx, deviceID); err != nil {
		return nil, err
	}

	record := &models.SessionRecord{
		ID:              uuid.NewString(),
		UsuarioNick:     nick,
		Token:           codegen.BearerToken(deviceID),
		DeviceID:        deviceID,
		DeviceInfo:      m.device.Info(),
		DataCriacao:     now,
		DataExpiracao:   now.Add(ttl),
		Ativa:           true,
		ManterConectado: staySignedIn,
	}
	if err := m.sessions.Create(ctx, record); err != nil {
		return nil, err
	}

	if err := m.users.UpdateLastAccess(ctx, nick, now, deviceID); err != nil {
		m.log.Warn(ctx, "last-access update failed", "nick", nick, "error", err)
	}

	snapshot := &models.Snapshot{
		Nick:            nick,
		Token:           record.Token,
		Cargo:           cargo,
		Expiracao:       record.DataExpiracao,
		DeviceID:        deviceID,
		ManterConectado: staySignedIn,
	}
	if err := m.store.SaveSnapshot(ctx, snapshot, staySignedIn); err != nil {
		return nil, err
	}

	m.log.Info(ctx, "session created", "nick", nick, "device", deviceID, "stay", staySignedIn)
	return snapshot, nil
}

// Validate checks the stored snapshot against the backing session record.
// It fails closed: a missing, expired or inactive session clears local
// state and returns nil. A remembered session seen from a different device
// fingerprint is returned with RevalidationRequired set instead of being
// rejected; a transient session in the same situation is logged out.
func (m *Manager) Validate(ctx context.Context) (*models.Snapshot, error) {
	snapshot, err := m.store.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, nil
	}

	now := m.now()
	if snapshot.Expired(now) {
		_ = m.Logout(ctx)
		return nil, nil
	}

	record, err := m.sessions.GetActiveByToken(ctx, snapshot.Token)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			_ = m.Logout(ctx)
			return nil, nil
		}
		return nil, err
	}
	if record.DataExpiracao.Before(now) {
		_ = m.Logout(ctx)
		return nil, nil
	}

	if snapshot.DeviceID != "" {
		currentDevice, err := m.device.DeviceID(ctx)
		if err != nil {
			return nil, err
		}
		if currentDevice != snapshot.DeviceID {
			if !snapshot.ManterConectado {
				m.log.Warn(ctx, "device mismatch on transient session, logging out",
					"nick", snapshot.Nick, "bound", snapshot.DeviceID, "current", currentDevice)
				_ = m.Logout(ctx)
				return nil, nil
			}
			// remembered devices may roam but must re-prove
			snapshot.RevalidationRequired = true
		}
	}

	return snapshot, nil
}

// ValidateDeviceForLogin looks for an existing unexpired active session
// already bound to this device and adopts it, letting login short-circuit
// for a user who never logged out here. Returns nil when there is nothing
// to adopt; lookup failures are swallowed so login can proceed normally.
func (m *Manager) ValidateDeviceForLogin(ctx context.Context, nick string) (*models.Snapshot, error) {
	deviceID, err := m.device.DeviceID(ctx)
	if err != nil {
		return nil, err
	}

	record, err := m.sessions.LatestActiveForDevice(ctx, nick, deviceID, m.now())
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			m.log.Warn(ctx, "device session lookup failed", "nick", nick, "error", err)
		}
		return nil, nil
	}

	cargo := models.RoleFiscal
	if user, err := m.users.GetByNick(ctx, nick); err == nil {
		cargo = user.Cargo
	}

	snapshot := &models.Snapshot{
		Nick:            record.UsuarioNick,
		Token:           record.Token,
		Cargo:           cargo,
		Expiracao:       record.DataExpiracao,
		DeviceID:        record.DeviceID,
		ManterConectado: record.ManterConectado,
	}
	if err := m.store.SaveSnapshot(ctx, snapshot, record.ManterConectado); err != nil {
		return nil, err
	}

	m.log.Info(ctx, "adopted existing device session", "nick", nick, "device", deviceID)
	return snapshot, nil
}

// Logout deactivates the backing record best-effort and unconditionally
// clears both local tiers, so the client always ends unauthenticated even
// when the table store is unreachable. Safe to call repeatedly.
func (m *Manager) Logout(ctx context.Context) error {
	snapshot, err := m.store.LoadSnapshot(ctx)
	if err == nil && snapshot != nil && snapshot.Token != "" {
		if err := m.sessions.DeactivateByToken(ctx, snapshot.Token); err != nil {
			m.log.Error(ctx, "remote session deactivation failed", "error", err)
		}
	}
	return m.store.ClearSession(ctx)
}

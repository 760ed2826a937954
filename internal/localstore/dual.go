package localstore

import (
	"context"
	"encoding/json"

	"github.com/youiz/dri-portal/internal/common"
	"github.com/youiz/dri-portal/internal/logging"
	"github.com/youiz/dri-portal/internal/models"
)

// DualStore owns the two tiers and the promotion rule between them: when
// tier A misses and tier B holds the key, the value is copied up into
// tier A before being returned. Only the session manager mutates it.
type DualStore struct {
	session Tier // tier A
	durable Tier // tier B
	log     logging.Logger
}

func NewDualStore(session, durable Tier, log logging.Logger) *DualStore {
	return &DualStore{session: session, durable: durable, log: log}
}

// Durable exposes tier B for state that must survive logout, such as the
// device fingerprint.
func (s *DualStore) Durable() Tier {
	return s.durable
}

// Load reads key from tier A, falling back to tier B with lazy promotion.
func (s *DualStore) Load(ctx context.Context, key string) ([]byte, error) {
	value, err := s.session.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if value != nil {
		return value, nil
	}

	value, err = s.durable.Get(ctx, key)
	if err != nil || value == nil {
		return nil, err
	}
	if err := s.session.Set(ctx, key, value); err != nil {
		s.log.Warn(ctx, "tier promotion failed", "key", key, "error", err)
	}
	return value, nil
}

// Put writes key to tier A, and to tier B when durable is set; otherwise
// any stale tier B copy is removed so a non-remembered session cannot
// outlive the process.
func (s *DualStore) Put(ctx context.Context, key string, value []byte, durable bool) error {
	if err := s.session.Set(ctx, key, value); err != nil {
		return err
	}
	if durable {
		return s.durable.Set(ctx, key, value)
	}
	return s.durable.Delete(ctx, key)
}

// SaveSnapshot serializes the snapshot under the session key and keeps the
// parallel plain-nickname key in step, in both tiers as applicable.
func (s *DualStore) SaveSnapshot(ctx context.Context, snapshot *models.Snapshot, durable bool) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	if err := s.Put(ctx, common.SessionKey, data, durable); err != nil {
		return err
	}
	return s.Put(ctx, common.UserKey, []byte(snapshot.Nick), durable)
}

// LoadSnapshot reads the stored snapshot, promoting from tier B when
// needed. A corrupt snapshot is treated as absent.
func (s *DualStore) LoadSnapshot(ctx context.Context) (*models.Snapshot, error) {
	data, err := s.Load(ctx, common.SessionKey)
	if err != nil || data == nil {
		return nil, err
	}

	snapshot := &models.Snapshot{}
	if err := json.Unmarshal(data, snapshot); err != nil {
		s.log.Warn(ctx, "discarding unparseable session snapshot", "error", err)
		return nil, nil
	}
	return snapshot, nil
}

// ClearSession removes the snapshot and nickname keys from both tiers.
// The device fingerprint survives: it identifies the installation, not the
// session.
func (s *DualStore) ClearSession(ctx context.Context) error {
	var firstErr error
	for _, tier := range []Tier{s.session, s.durable} {
		for _, key := range []string{common.SessionKey, common.UserKey} {
			if err := tier.Delete(ctx, key); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

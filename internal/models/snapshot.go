package models

import "time"

// Snapshot is the denormalized client-held copy of a session, serialized
// under the dri_session key in both local storage tiers. JSON field names
// match the browser build.
type Snapshot struct {
	Nick            string    `json:"nick"`
	Token           string    `json:"token"`
	Cargo           Role      `json:"cargo"`
	Expiracao       time.Time `json:"expiracao"`
	DeviceID        string    `json:"deviceId,omitempty"`
	ManterConectado bool      `json:"manterConectado"`

	// RevalidationRequired is set by the session manager when a remembered
	// session is read back from a different device fingerprint. Never
	// persisted.
	RevalidationRequired bool `json:"-"`
}

// Expired reports whether the snapshot's expiry has passed at the given
// instant. The boundary itself counts as still valid.
func (s *Snapshot) Expired(now time.Time) bool {
	return s.Expiracao.Before(now)
}

package models

import "time"

// DeviceInfo is the metadata captured alongside a session's device
// fingerprint. Stored as JSON in the sessoes.device_info column.
type DeviceInfo struct {
	UserAgent string `json:"userAgent"`
	Platform  string `json:"platform"`
	Language  string `json:"language"`
	Screen    string `json:"screen"`
	Timezone  string `json:"timezone"`
}

// SessionRecord is a row of the sessoes table. At most one row with
// Ativa=true exists per (UsuarioNick, DeviceID) pair; superseded rows are
// deactivated, never deleted.
type SessionRecord struct {
	ID              string
	UsuarioNick     string
	Token           string
	DeviceID        string
	DeviceInfo      DeviceInfo
	DataCriacao     time.Time
	DataExpiracao   time.Time
	Ativa           bool
	ManterConectado bool
}

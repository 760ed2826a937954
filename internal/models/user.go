// Package models holds the row types stored on the table-store gateway and
// the client-held session snapshot. Column names are kept identical to the
// browser build's schema so both clients can share one database.
package models

import (
	"strings"
	"time"
)

// Role is the staff role assigned at account creation.
type Role string

const (
	RoleDev    Role = "DEV"
	RoleFiscal Role = "Fiscalizador"
)

// UserStatus gates authentication: only StatusActive may log in.
type UserStatus string

const (
	StatusActive  UserStatus = "ATIVO"
	StatusBlocked UserStatus = "BLOQUEADO"
	StatusOnLeave UserStatus = "LICENCA"
	StatusReserve UserStatus = "RESERVA"
)

// RoleForNick assigns the role given at account creation. The project
// owner's nick gets DEV regardless of casing; everyone else starts as a
// Fiscalizador.
func RoleForNick(nick string) Role {
	if strings.EqualFold(nick, "youiz") {
		return RoleDev
	}
	return RoleFiscal
}

// User is a row of the usuarios table. Nick is the unique key and is
// compared case-sensitively everywhere except the reserved-name check at
// account creation.
type User struct {
	Nick           string
	SenhaHash      string
	Cargo          Role
	Verificado     bool
	Status         UserStatus
	DataCriacao    time.Time
	UltimoAcesso   *time.Time
	UltimoDeviceID string
}

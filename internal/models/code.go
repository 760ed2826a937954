package models

import "time"

// CodePurpose tags a verification code with the flow that issued it.
type CodePurpose string

const (
	PurposeCreation CodePurpose = "CRIACAO"
	PurposeReset    CodePurpose = "REDEFINIR"
)

// VerificationCode is a row of the codigos_verificacao table. A code is
// usable at most once (Usado) and only before ExpiraEm; rows are
// soft-consumed, never deleted.
type VerificationCode struct {
	ID          string
	UsuarioNick string
	Codigo      string
	Tipo        CodePurpose
	ExpiraEm    time.Time
	Usado       bool
}

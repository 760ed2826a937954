// Package common defines shared constants and sentinel errors used across
// the DRI portal client. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")

	// Account lifecycle errors.
	ErrNickTaken     = errors.New("nick already exists")
	ErrNotVerified   = errors.New("account not verified")
	ErrCodeInvalid   = errors.New("code invalid or expired")
	ErrCodeNotInMotto = errors.New("code not found in motto")

	// Session lifecycle errors.
	ErrSessionExpired  = errors.New("session expired")
	ErrDeviceMismatch  = errors.New("device mismatch")
	ErrInvalidToken    = errors.New("invalid token")
	ErrInvalidKey      = errors.New("invalid service key")
	ErrKeyExpired      = errors.New("service key expired")
)

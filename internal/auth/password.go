package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

// Accounts created before the bcrypt migration store the bare SHA-256 hex
// digest of the password. Those verify through the legacy path and are
// upgraded in place on the next successful login.
var legacyHexDigest = regexp.MustCompile(`^[0-9a-f]{64}$`)

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches the stored hash, and
// whether the stored hash uses the legacy digest format and should be
// rehashed.
func VerifyPassword(password, stored string) (ok bool, legacy bool) {
	if legacyHexDigest.MatchString(stored) {
		sum := sha256.Sum256([]byte(password))
		digest := hex.EncodeToString(sum[:])
		return subtle.ConstantTimeCompare([]byte(digest), []byte(stored)) == 1, true
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil, false
}

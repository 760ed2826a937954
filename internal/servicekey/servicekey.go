// Package servicekey mints and inspects the HS256 role-claim keys (JWTs)
// that self-hosted table-store gateways use to authorize callers. The
// hosted service issues these keys itself; self-hosted deployments generate
// them with cmd/servicekey.
package servicekey

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/youiz/dri-portal/internal/common"
)

// Claims carried by a gateway service key. Role is the gateway's database
// role to assume, typically "anon" or "service_role".
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// Mint signs a new service key for the given role and validity.
func Mint(secret []byte, role string, validity time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "dri-portal",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
		Role: role,
	})
	return token.SignedString(secret)
}

// Verify parses and validates a service key against the signing secret.
func Verify(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrKeyExpired
		}
		return nil, common.ErrInvalidKey
	}
	if !token.Valid {
		return nil, common.ErrInvalidKey
	}
	return claims, nil
}

// Inspect decodes a key without verifying its signature, for operator
// tooling and for the client's startup expiry warning. The returned claims
// must not be trusted for authorization decisions.
func Inspect(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, common.ErrInvalidKey
	}
	return claims, nil
}

// CheckExpiry reports common.ErrKeyExpired when the key's exp claim has
// passed, without verifying the signature. Keys without an exp claim pass.
func CheckExpiry(tokenString string, now time.Time) error {
	claims, err := Inspect(tokenString)
	if err != nil {
		return err
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(now) {
		return common.ErrKeyExpired
	}
	return nil
}

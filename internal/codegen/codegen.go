// Package codegen produces the human-typeable verification codes staff
// publish in their Habbo motto and the opaque bearer tokens backing
// sessions. Both draw from crypto/rand; the browser build used
// Math.random here, which was flagged as a defect and is not carried over.
package codegen

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"math/big"
	"strconv"
	"time"
)

const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

func randInt(n int64) int64 {
	v, err := rand.Int(rand.Reader, big.NewInt(n))
	if err != nil {
		// crypto/rand failing means the platform entropy source is broken;
		// nothing sensible to do but stop.
		panic(fmt.Sprintf("codegen: entropy source unavailable: %v", err))
	}
	return v.Int64()
}

func randBase36() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(fmt.Sprintf("codegen: entropy source unavailable: %v", err))
	}
	return strconv.FormatUint(binary.BigEndian.Uint64(b[:]), 36)
}

// VerificationCode returns a code of the form "L-NNN": one uppercase
// letter, a dash and a number in 100–999. Codes are not unique across
// calls; they are scoped per nick and expire within minutes, so collisions
// are accepted.
func VerificationCode() string {
	letter := letters[randInt(int64(len(letters)))]
	number := 100 + randInt(900)
	return fmt.Sprintf("%c-%d", letter, number)
}

// BearerToken returns an opaque session token: "sess_" plus two random
// base36 fragments, a base36 timestamp, and the first 8 characters of the
// device fingerprint when one is given.
func BearerToken(deviceID string) string {
	token := "sess_" + randBase36() + randBase36() +
		strconv.FormatInt(time.Now().UnixMilli(), 36)
	if len(deviceID) >= 8 {
		token += deviceID[:8]
	} else {
		token += deviceID
	}
	return token
}

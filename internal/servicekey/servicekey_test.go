package servicekey

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/youiz/dri-portal/internal/common"
)

var secret = []byte("test-secret")

func TestMintAndVerify(t *testing.T) {
	key, err := Mint(secret, "service_role", time.Hour)
	require.NoError(t, err)

	claims, err := Verify(key, secret)
	require.NoError(t, err)
	require.Equal(t, "service_role", claims.Role)
	require.Equal(t, "dri-portal", claims.Issuer)
}

func TestVerify_WrongSecret(t *testing.T) {
	key, err := Mint(secret, "anon", time.Hour)
	require.NoError(t, err)

	_, err = Verify(key, []byte("other-secret"))
	require.ErrorIs(t, err, common.ErrInvalidKey)
}

func TestVerify_Expired(t *testing.T) {
	key, err := Mint(secret, "anon", -time.Minute)
	require.NoError(t, err)

	_, err = Verify(key, secret)
	require.ErrorIs(t, err, common.ErrKeyExpired)
}

func TestInspect_NoSignatureCheck(t *testing.T) {
	key, err := Mint(secret, "anon", time.Hour)
	require.NoError(t, err)

	claims, err := Inspect(key)
	require.NoError(t, err)
	require.Equal(t, "anon", claims.Role)

	_, err = Inspect("not-a-jwt")
	require.ErrorIs(t, err, common.ErrInvalidKey)
}

func TestCheckExpiry(t *testing.T) {
	fresh, err := Mint(secret, "anon", time.Hour)
	require.NoError(t, err)
	stale, err := Mint(secret, "anon", -time.Minute)
	require.NoError(t, err)

	now := time.Now()
	require.NoError(t, CheckExpiry(fresh, now))
	require.ErrorIs(t, CheckExpiry(stale, now), common.ErrKeyExpired)
}

package device

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/youiz/dri-portal/internal/common"
	"github.com/youiz/dri-portal/internal/localstore"
	"github.com/youiz/dri-portal/internal/logging"
)

var fingerprintFormat = regexp.MustCompile(`^dev_[0-9a-z]+_[0-9a-z]+$`)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHashSignal_DeterministicAndFormatted(t *testing.T) {
	at := time.UnixMilli(1770000000000)

	a := HashSignal("80x24|BRT|pt_BR|linux/amd64|123", at)
	b := HashSignal("80x24|BRT|pt_BR|linux/amd64|123", at)
	require.Equal(t, a, b)
	require.Regexp(t, fingerprintFormat, a)

	c := HashSignal("120x40|BRT|pt_BR|linux/amd64|123", at)
	require.NotEqual(t, a, c)
}

func TestDeviceID_SynthesizesAndPersists(t *testing.T) {
	ctx := context.Background()
	durable := localstore.NewMemoryTier()
	p := NewProvider(durable, testLogger())

	first, err := p.DeviceID(ctx)
	require.NoError(t, err)
	require.Regexp(t, fingerprintFormat, first)

	// second call must return the stored fingerprint, not a new one
	second, err := p.DeviceID(ctx)
	require.NoError(t, err)
	require.Equal(t, first, second)

	stored, err := durable.Get(ctx, common.DeviceIDKey)
	require.NoError(t, err)
	require.Equal(t, first, string(stored))
}

func TestDeviceID_ReturnsExistingWithoutRewriting(t *testing.T) {
	ctx := context.Background()
	durable := localstore.NewMemoryTier()
	require.NoError(t, durable.Set(ctx, common.DeviceIDKey, []byte("dev_old_one")))

	p := NewProvider(durable, testLogger())
	id, err := p.DeviceID(ctx)
	require.NoError(t, err)
	require.Equal(t, "dev_old_one", id)
}

func TestInfo_HasAllSignals(t *testing.T) {
	p := NewProvider(localstore.NewMemoryTier(), testLogger())
	info := p.Info()

	require.NotEmpty(t, info.UserAgent)
	require.NotEmpty(t, info.Platform)
	require.NotEmpty(t, info.Language)
	require.NotEmpty(t, info.Screen)
}

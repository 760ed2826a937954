// Package device derives and persists the pseudo-random fingerprint that
// sessions are bound to. The fingerprint is best-effort only: it is not
// cryptographically verified and collisions are tolerated.
package device

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/term"

	"github.com/youiz/dri-portal/internal/common"
	"github.com/youiz/dri-portal/internal/localstore"
	"github.com/youiz/dri-portal/internal/logging"
	"github.com/youiz/dri-portal/internal/models"
	"github.com/youiz/dri-portal/internal/timex"
)

// Provider hands out the stable device fingerprint for this installation,
// synthesizing and persisting one on first use.
type Provider struct {
	durable localstore.Tier
	log     logging.Logger
	now     func() time.Time
}

func NewProvider(durable localstore.Tier, log logging.Logger) *Provider {
	return &Provider{durable: durable, log: log, now: timex.Now}
}

// DeviceID returns the persisted fingerprint, creating one from the host's
// environment signals on first call. Stable for the lifetime of the local
// SQLite file; not globally unique.
func (p *Provider) DeviceID(ctx context.Context) (string, error) {
	stored, err := p.durable.Get(ctx, common.DeviceIDKey)
	if err != nil {
		return "", err
	}
	if stored != nil {
		return string(stored), nil
	}

	now := p.now()
	signal := fmt.Sprintf("%s|%s|%s|%s|%d",
		screenGeometry(), timezoneName(now), language(), platform(), now.UnixMilli())
	id := HashSignal(signal, now)

	if err := p.durable.Set(ctx, common.DeviceIDKey, []byte(id)); err != nil {
		return "", err
	}
	p.log.Info(ctx, "device fingerprint created", "device", id)
	return id, nil
}

// Info captures the metadata stored alongside a session's fingerprint.
func (p *Provider) Info() models.DeviceInfo {
	return models.DeviceInfo{
		UserAgent: "dri-portal-cli (" + runtime.Version() + ")",
		Platform:  platform(),
		Language:  language(),
		Screen:    screenGeometry(),
		Timezone:  timezoneName(p.now()),
	}
}

// HashSignal reduces a signal string with a 31-multiplier rolling hash over
// int32 overflow semantics and formats the fingerprint as
// dev_<abs(hash) base36>_<millis base36>.
func HashSignal(signal string, at time.Time) string {
	var hash int32
	for _, b := range []byte(signal) {
		hash = (hash << 5) - hash + int32(b)
	}
	if hash < 0 {
		hash = -hash
	}
	return "dev_" + strconv.FormatInt(int64(hash), 36) +
		"_" + strconv.FormatInt(at.UnixMilli(), 36)
}

func screenGeometry() string {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return "0x0"
	}
	return fmt.Sprintf("%dx%d", width, height)
}

func timezoneName(now time.Time) string {
	zone, _ := now.Zone()
	return zone
}

func language() string {
	if lang := os.Getenv("LANG"); lang != "" {
		return lang
	}
	return "en_US"
}

func platform() string {
	return runtime.GOOS + "/" + runtime.GOARCH
}

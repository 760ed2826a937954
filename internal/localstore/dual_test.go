package localstore

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/youiz/dri-portal/internal/common"
	"github.com/youiz/dri-portal/internal/logging"
	"github.com/youiz/dri-portal/internal/models"

	_ "modernc.org/sqlite"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func setupSQLiteTier(t *testing.T) *SQLiteTier {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE local_state (key TEXT PRIMARY KEY, value BLOB NOT NULL)`)
	require.NoError(t, err)
	return NewSQLiteTier(db)
}

func setupDual(t *testing.T) (*DualStore, Tier, Tier) {
	t.Helper()
	a := NewMemoryTier()
	b := setupSQLiteTier(t)
	return NewDualStore(a, b, testLogger()), a, b
}

func snapshot(nick string, stay bool) *models.Snapshot {
	return &models.Snapshot{
		Nick:            nick,
		Token:           "sess_tok",
		Cargo:           models.RoleFiscal,
		Expiracao:       time.Now().Add(time.Hour),
		DeviceID:        "dev_abc",
		ManterConectado: stay,
	}
}

func TestPut_DurableWritesBothTiers(t *testing.T) {
	ctx := context.Background()
	store, a, b := setupDual(t)

	require.NoError(t, store.Put(ctx, "k", []byte("v"), true))

	va, _ := a.Get(ctx, "k")
	vb, _ := b.Get(ctx, "k")
	require.Equal(t, []byte("v"), va)
	require.Equal(t, []byte("v"), vb)
}

func TestPut_NonDurableRemovesTierBCopy(t *testing.T) {
	ctx := context.Background()
	store, _, b := setupDual(t)

	require.NoError(t, b.Set(ctx, "k", []byte("stale")))
	require.NoError(t, store.Put(ctx, "k", []byte("v"), false))

	vb, _ := b.Get(ctx, "k")
	require.Nil(t, vb)
}

func TestLoad_PromotesFromTierB(t *testing.T) {
	ctx := context.Background()
	store, a, b := setupDual(t)

	require.NoError(t, b.Set(ctx, "k", []byte("v")))

	got, err := store.Load(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("v"), got)

	// the read must have copied the value up into tier A
	va, _ := a.Get(ctx, "k")
	require.Equal(t, []byte("v"), va)
}

func TestLoad_MissingEverywhere(t *testing.T) {
	store, _, _ := setupDual(t)
	got, err := store.Load(context.Background(), "nope")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, _, _ := setupDual(t)

	want := snapshot("youiz", true)
	require.NoError(t, store.SaveSnapshot(ctx, want, true))

	got, err := store.LoadSnapshot(ctx)
	require.NoError(t, err)
	require.Equal(t, want.Nick, got.Nick)
	require.Equal(t, want.Token, got.Token)
	require.Equal(t, want.Cargo, got.Cargo)
	require.True(t, want.Expiracao.Equal(got.Expiracao))

	nick, err := store.Load(ctx, common.UserKey)
	require.NoError(t, err)
	require.Equal(t, []byte("youiz"), nick)
}

func TestLoadSnapshot_CorruptIsAbsent(t *testing.T) {
	ctx := context.Background()
	store, a, _ := setupDual(t)

	require.NoError(t, a.Set(ctx, common.SessionKey, []byte("{not json")))

	got, err := store.LoadSnapshot(ctx)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestClearSession_KeepsDeviceID(t *testing.T) {
	ctx := context.Background()
	store, a, b := setupDual(t)

	require.NoError(t, store.SaveSnapshot(ctx, snapshot("youiz", true), true))
	require.NoError(t, b.Set(ctx, common.DeviceIDKey, []byte("dev_abc")))

	require.NoError(t, store.ClearSession(ctx))
	// twice in a row must not fail
	require.NoError(t, store.ClearSession(ctx))

	for _, tier := range []Tier{a, b} {
		for _, key := range []string{common.SessionKey, common.UserKey} {
			v, err := tier.Get(ctx, key)
			require.NoError(t, err)
			require.Nil(t, v)
		}
	}

	device, err := b.Get(ctx, common.DeviceIDKey)
	require.NoError(t, err)
	require.Equal(t, []byte("dev_abc"), device)
}

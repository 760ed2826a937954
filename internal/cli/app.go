// Package cli is the interactive terminal front end of the portal client.
// It wires the storage tiers, repositories and services together and runs
// a small command loop on stdin.
package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/youiz/dri-portal/internal/auth"
	"github.com/youiz/dri-portal/internal/config"
	"github.com/youiz/dri-portal/internal/device"
	"github.com/youiz/dri-portal/internal/habbo"
	"github.com/youiz/dri-portal/internal/localstore"
	"github.com/youiz/dri-portal/internal/logging"
	"github.com/youiz/dri-portal/internal/models"
	"github.com/youiz/dri-portal/internal/repositories/repomanager"
	"github.com/youiz/dri-portal/internal/servicekey"
	"github.com/youiz/dri-portal/internal/session"
	"github.com/youiz/dri-portal/internal/tablestore"
	"github.com/youiz/dri-portal/internal/timex"

	_ "modernc.org/sqlite"
)

type App struct {
	config   *config.Config
	auth     *auth.Facade
	sessions *session.Manager
	repos    repomanager.Manager
	log      logging.Logger

	current *models.Snapshot
	reader  *bufio.Reader
	out     io.Writer
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := localstore.InitDatabase(ctx, c.LocalDBPath)
	if err != nil {
		log.Error(ctx, "error initializing local database", "error", err)
		return nil, err
	}

	store := localstore.NewDualStore(
		localstore.NewMemoryTier(),
		localstore.NewSQLiteTier(db),
		log,
	)

	var repos repomanager.Manager
	if c.DatabaseDSN != "" {
		repos, err = repomanager.NewPostgresManager(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, err
		}
	} else {
		if err := servicekey.CheckExpiry(c.GatewayKey, timex.Now()); err != nil {
			log.Warn(ctx, "gateway key check failed", "error", err)
		}
		repos = repomanager.NewRestManager(tablestoreClient(c, log))
	}

	deviceProvider := device.NewProvider(store.Durable(), log)
	sessions := session.NewManager(repos.Sessions(), repos.Users(), store,
		deviceProvider, c.StaySessionTTL, c.ShortSessionTTL, log)
	facade := auth.NewFacade(repos.Users(), repos.Codes(),
		habbo.NewClient(c.HabboAPIBaseURL, log), sessions, store,
		c.CodeTTL, c.StaySessionTTL, c.ShortSessionTTL, log)

	return &App{
		config:   c,
		auth:     facade,
		sessions: sessions,
		repos:    repos,
		log:      log,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.repos.Close(); err != nil {
			a.log.Warn(ctx, "error closing repositories", "error", err)
		}
	}()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.current != nil
}

func tablestoreClient(c *config.Config, log logging.Logger) *tablestore.Client {
	return tablestore.New(c.GatewayURL, c.GatewayKey, log)
}

package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/brvagas/jobhub/internal/catalog"
	"github.com/brvagas/jobhub/internal/config"
	"github.com/brvagas/jobhub/internal/docstore"
	"github.com/brvagas/jobhub/internal/favorites"
	"github.com/brvagas/jobhub/internal/identity"
	"github.com/brvagas/jobhub/internal/jobsource"
	"github.com/brvagas/jobhub/internal/localstore"
	"github.com/brvagas/jobhub/internal/profile"
	"github.com/brvagas/jobhub/pkg/log"
)

// app holds the wired-up stores a command works against.
type app struct {
	cfg    config.Config
	logger *log.Logger
	local  *localstore.Store
	pg     *docstore.PostgresStore // nil without a database URL
	docs   docstore.Store          // nil without a database URL
	ids    *identity.Client
	jobs   *catalog.Store
	favs   *favorites.Synchronizer
	prof   *profile.Store
}

func loadConfig() (config.Config, error) {
	cfg := config.FromEnv()
	if configPath != "" {
		fileCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, err
		}
		// Env values win over file values.
		cfg = cfg.MergeWithDefaults(*fileCfg)
	}
	cfg = cfg.MergeWithDefaults(config.Config{})
	if cfg.DataDir == "" {
		cfg.DataDir = config.DefaultDataDir()
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newApp wires the stores. Commands that need the remote document store must
// check app.docs themselves; everything else degrades to the local device
// state.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger := log.New(log.ParseLevel(cfg.LogLevel))

	local, err := localstore.Open(filepath.Join(cfg.DataDir, "local.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open local storage: %w", err)
	}

	a := &app{cfg: cfg, logger: logger, local: local}

	if cfg.DatabaseURL != "" {
		pg, err := docstore.ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			local.Close()
			return nil, err
		}
		a.pg = pg
		a.docs = pg
	}

	a.ids = identity.NewClient(ctx, identity.Options{
		BaseURL: cfg.IdentityURL,
		APIKey:  cfg.IdentityAPIKey,
		Cache:   local,
		Docs:    a.docs,
		Logger:  logger,
	})

	fetcher := jobsource.New(&jobsource.Options{
		BaseURL:      cfg.APIBaseURL,
		StrictSchema: cfg.StrictSchemaEnabled(),
	}, logger)
	a.jobs = catalog.NewStore(fetcher, logger, cfg.PageSize)

	var remote favorites.Repository
	if a.docs != nil {
		remote = favorites.NewRemoteRepository(a.docs)
	}
	a.favs = favorites.NewSynchronizer(favorites.NewLocalRepository(local), remote, logger)

	uid := ""
	if u, ok := a.ids.CurrentUser(); ok && a.docs != nil {
		uid = u.UID
	}
	if err := a.favs.SetUser(ctx, uid); err != nil {
		logger.Warn("failed to load favorites: %v", err)
	}

	if a.docs != nil {
		a.prof = profile.NewStore(a.docs, logger)
	}

	return a, nil
}

// requireUser returns the signed-in user or a friendly error.
func (a *app) requireUser() (identity.User, error) {
	u, ok := a.ids.CurrentUser()
	if !ok {
		return identity.User{}, fmt.Errorf("not signed in, run 'jobhub login' first")
	}
	return u, nil
}

// requireDocs fails commands that cannot work without the remote store.
func (a *app) requireDocs() error {
	if a.docs == nil {
		return fmt.Errorf("no database configured, set DATABASE_URL or 'database_url' in the config file")
	}
	return nil
}

// loadProfile fetches the signed-in user's profile document into memory.
func (a *app) loadProfile(ctx context.Context) (identity.User, error) {
	u, err := a.requireUser()
	if err != nil {
		return identity.User{}, err
	}
	if err := a.requireDocs(); err != nil {
		return identity.User{}, err
	}
	if err := a.prof.Load(ctx, u.UID, profile.Seed{
		DisplayName: u.DisplayName,
		PhotoURL:    u.PhotoURL,
	}); err != nil {
		return identity.User{}, fmt.Errorf("failed to load profile: %w", err)
	}
	return u, nil
}

// close flushes pending favorite writes and releases connections.
func (a *app) close(ctx context.Context) {
	a.favs.Flush(ctx)
	a.favs.Close()
	if a.pg != nil {
		a.pg.Close()
	}
	if err := a.local.Close(); err != nil {
		a.logger.Warn("failed to close local storage: %v", err)
	}
}

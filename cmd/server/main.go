// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

// Command server runs the Motodex catalog and community service.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jparkin/motodex/internal/admin"
	"github.com/jparkin/motodex/internal/analytics"
	"github.com/jparkin/motodex/internal/api"
	"github.com/jparkin/motodex/internal/auth"
	"github.com/jparkin/motodex/internal/config"
	"github.com/jparkin/motodex/internal/interaction"
	"github.com/jparkin/motodex/internal/logging"
	"github.com/jparkin/motodex/internal/query"
	"github.com/jparkin/motodex/internal/seed"
	"github.com/jparkin/motodex/internal/store"
	"github.com/jparkin/motodex/internal/supervisor"
	"github.com/jparkin/motodex/internal/updater"
)

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("server exited with error")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logging.Info().Str("addr", cfg.Addr()).Msg("starting motodex")

	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logging.Error().Err(cerr).Msg("store close failed")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Database.SeedOnStart {
		if n, serr := seed.LoadIfEmpty(ctx, st); serr != nil {
			return serr
		} else if n > 0 {
			logging.Info().Int("records", n).Msg("seeded empty catalog")
		}
	}

	jwtMgr, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		return err
	}
	hasher := auth.NewPasswordHasher(cfg.Security.Argon2Time, cfg.Security.Argon2MemoryKiB)
	authSvc := auth.NewService(st, jwtMgr, hasher)

	queryEngine := query.NewEngine(st, &cfg.API)
	queryEngine.Invalidate(ctx)

	interactions := interaction.NewService(st)
	adminSvc := admin.NewService(st)

	feed := updater.NewFeedClient(cfg.Updater.FeedRatePerSecond)
	scheduler := updater.NewScheduler(st, feed, queryEngine, &cfg.Updater)

	recorder := analytics.NewRecorder(st, cfg.Analytics.QueueSize, cfg.Analytics.Enabled)

	server := api.NewServer(cfg, st, authSvc, queryEngine, interactions, adminSvc, scheduler, recorder)
	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	tree := supervisor.NewTree(supervisor.DefaultTreeConfig())
	tree.AddDataService(supervisor.NewSessionJanitor(st, time.Hour))
	tree.AddBackgroundService(scheduler)
	tree.AddBackgroundService(recorder)
	tree.AddAPIService(supervisor.NewHTTPService(httpServer, 10*time.Second))

	err = tree.Serve(ctx)
	if errors.Is(err, context.Canceled) {
		logging.Info().Msg("shutdown complete")
		return nil
	}
	return err
}

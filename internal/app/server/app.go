// Package server wires configuration, storage and the HTTP API together and
// runs the HTTP server until its context is cancelled.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"

	"shelfkeeper/internal/app/server/api"
	"shelfkeeper/internal/config"
	"shelfkeeper/internal/domain/user"
	"shelfkeeper/internal/infrastructure/migration"
	"shelfkeeper/internal/infrastructure/storage"
)

type App struct {
	config  *config.Config
	log     *slog.Logger
	storage *storage.Storage
	server  *http.Server
}

// NewApp opens the storage, seeds it when configured to and builds the router.
func NewApp(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	store, err := storage.New(ctx, cfg, migration.DefaultEngine, log)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	if cfg.Storage.Seed {
		if err := store.Seed(ctx, user.NewBcryptHasher(cfg.Auth.BcryptCost), log); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("seed storage: %w", err)
		}
	}

	mux, err := api.New(store, cfg, log)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return &App{
		config:  cfg,
		log:     log.With("component", "app"),
		storage: store,
		server: &http.Server{
			Addr:         cfg.Server.RunAddress,
			Handler:      mux,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}, nil
}

// Run serves until ctx is done, then drains in-flight requests for at most
// the configured shutdown timeout and closes the storage.
func (app *App) Run(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		app.log.Info("starting server", "address", app.server.Addr, "env", app.config.Env)
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		app.log.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.Server.ShutdownTimeout)
		defer cancel()
		return app.server.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	if cerr := app.storage.Close(); cerr != nil {
		err = errors.Join(err, fmt.Errorf("close storage: %w", cerr))
	}
	app.log.Info("server stopped")
	return err
}

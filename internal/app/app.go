package app

import (
	"context"
	stdhttp "net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/clipparty/clipparty-server/internal/config"
	"github.com/clipparty/clipparty-server/internal/core"
	"github.com/clipparty/clipparty-server/internal/metrics"
	transporthttp "github.com/clipparty/clipparty-server/internal/transport/http"
)

// App wires together core and transport layers.
type App struct {
	server          *stdhttp.Server
	shutdownTimeout time.Duration
	hub             *core.Hub
	log             *zerolog.Logger
}

// New constructs the application with provided configuration.
func New(cfg config.Config, logger *zerolog.Logger) *App {
	stats := metrics.New()

	hub := core.NewHub(core.Limits{
		MaxConnectionsPerAddress:    cfg.MaxConnectionsPerAddress,
		MaxClipboardEntries:         cfg.MaxClipboardEntries,
		GhostSessionLifetime:        cfg.GhostSessionLifetime,
		GhostSessionCleanupInterval: cfg.GhostSessionCleanupInterval,
	}, logger, stats)

	server := transporthttp.NewServer(hub, stats, cfg, logger)

	return &App{
		server:          server,
		shutdownTimeout: cfg.ShutdownTimeout,
		hub:             hub,
		log:             logger,
	}
}

// Run starts the HTTP server and the ghost-session sweeper, blocking until
// context cancellation or a fatal server error.
func (a *App) Run(ctx context.Context) error {
	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go a.hub.RunSweeper(sweepCtx)

	serverErr := make(chan error, 1)
	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down http server")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-serverErr
	}
}

package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"FinSight/pkg/cache"
	"FinSight/pkg/config"
	xhttp "FinSight/pkg/http"
	applogger "FinSight/pkg/logger"
)

// App encapsulates the application lifecycle.
type App struct {
	cfg     *config.Config
	log     *applogger.Logger
	handler xhttp.Handler
	cache   cache.Service

	httpServer *xhttp.Server
}

// New creates the application from its wired dependencies.
func New(cfg *config.Config, log *applogger.Logger, handler xhttp.Handler, cacheSvc cache.Service) *App {
	return &App{
		cfg:     cfg,
		log:     log,
		handler: handler,
		cache:   cacheSvc,
	}
}

// Run starts the HTTP server and blocks until interrupted.
func (a *App) Run() error {
	metricsPath := ""
	if a.cfg.Metrics.Enabled {
		metricsPath = a.cfg.Metrics.Path
	}

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithMetricsPath(metricsPath),
	)

	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}
	a.log.Info("server started",
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("environment", a.cfg.Environment))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown gracefully stops the server and closes resources.
func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(ctx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.log.Warn("cache close error", applogger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
	return nil
}

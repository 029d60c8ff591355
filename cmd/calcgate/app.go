package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/calcgate/config"
	"github.com/ncobase/calcgate/handler"
	"github.com/ncobase/calcgate/logging/logger"
	"github.com/ncobase/calcgate/workspace"
)

// ErrInvalidConfig is returned when configuration is invalid.
var ErrInvalidConfig = errors.New("invalid configuration")

// App represents the main application.
type App struct {
	config  *config.Config
	logger  *logger.Logger
	handler *handler.Handler
	server  *http.Server
}

// NewApp creates a new application instance.
func NewApp(cfg *config.Config, logger *logger.Logger, h *handler.Handler) *App {
	if cfg.RunMode != "" {
		gin.SetMode(cfg.RunMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	return &App{
		config:  cfg,
		logger:  logger,
		handler: h,
	}
}

// ProvideWorkspace opens the calculation directory tree.
func ProvideWorkspace(cfg *config.Workspace) (*workspace.Workspace, error) {
	if cfg == nil {
		return nil, ErrInvalidConfig
	}
	return workspace.New(cfg.Root, cfg.Uploads)
}

// Router builds the gin engine serving all routes.
func (a *App) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(handler.Trace())
	router.Use(handler.Logger(a.logger))

	a.handler.RegisterRoutes(router)
	return router
}

// Run starts the server and blocks until SIGINT or SIGTERM.
func (a *App) Run() error {
	ctx := context.Background()

	config.Watch(func(cfg *config.Config) {
		if cfg.Logger != nil {
			a.logger.ApplyLevel(cfg.Logger.Level)
			a.logger.Infof(ctx, "config reloaded, log level %d", cfg.Logger.Level)
		}
	})

	addr := a.config.Server.Addr()
	a.server = &http.Server{
		Addr:              addr,
		Handler:           a.Router(),
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof(ctx, "starting server on %s", addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		a.logger.Errorf(ctx, "server failed: %v", err)
		return err
	case <-quit:
	}

	a.logger.Infof(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Errorf(ctx, "server forced to shutdown: %v", err)
		return err
	}

	a.logger.Infof(ctx, "server exited")
	return nil
}

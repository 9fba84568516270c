package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/ferdiebergado/accountkit/internal/auth"
	"github.com/ferdiebergado/accountkit/internal/config"
	"github.com/ferdiebergado/accountkit/internal/middleware"
	"github.com/ferdiebergado/accountkit/internal/pkg/security"
	"github.com/ferdiebergado/accountkit/internal/platform/metrics"
	"github.com/ferdiebergado/accountkit/internal/user"
)

type App struct {
	server          *http.Server
	config          *config.Config
	provider        *Provider
	middlewares     []func(http.Handler) http.Handler
	stop            context.CancelFunc
	shutdownTimeout time.Duration
	mounted         bool
}

func New(cfg *config.Config, provider *Provider, middlewares []func(http.Handler) http.Handler) *App {
	serverCtx, stop := context.WithCancel(context.Background())
	serverCfg := cfg.Server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", serverCfg.Port),
		Handler: provider.Router,
		BaseContext: func(_ net.Listener) context.Context {
			return serverCtx
		},
		ReadTimeout:  serverCfg.ReadTimeout.Duration,
		WriteTimeout: serverCfg.WriteTimeout.Duration,
		IdleTimeout:  serverCfg.IdleTimeout.Duration,
	}

	return &App{
		config:          cfg,
		provider:        provider,
		server:          server,
		middlewares:     middlewares,
		stop:            stop,
		shutdownTimeout: serverCfg.ShutdownTimeout.Duration,
	}
}

// Handler registers the middlewares and routes once and returns the root handler.
func (a *App) Handler() http.Handler {
	if !a.mounted {
		a.registerMiddlewares()
		a.setupRoutes()
		a.mounted = true
	}
	return a.provider.Router
}

func (a *App) registerMiddlewares() {
	for _, mw := range a.middlewares {
		a.provider.Router.Use(mw)
	}
}

func (a *App) setupRoutes() {
	p := a.provider

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	if p.Metrics != nil {
		recorder = p.Metrics
	}

	var randomizer security.Randomizer = security.HexRandomizer
	if p.Randomizer != nil {
		randomizer = p.Randomizer
	}

	userModule := user.NewModule(p.DB)
	mountUserRoutes(p.Router, userModule.Handler(), p.Signer)

	authModule := auth.NewModule(&auth.Dependencies{
		Store:       userModule.Repository(),
		TxManager:   p.TxMgr,
		Hasher:      p.Hasher,
		Validator:   p.Validator,
		Randomizer:  randomizer,
		Notifier:    p.Notifier,
		Signer:      p.Signer,
		Recorder:    recorder,
		TokenLength: a.config.Token.Length,
		AccessTTL:   a.config.JWT.TTL.Duration,
	})
	limiter := middleware.NewRateLimiter(a.config.RateLimit.Rate, a.config.RateLimit.Burst)
	mountAuthRoutes(p.Router, authModule.Handler(), p.Validator, limiter, a.config.Server.MaxBodyBytes)

	if p.Registry != nil {
		p.Router.Get("/metrics", metrics.Handler(p.Registry).ServeHTTP)
	}
}

func (a *App) Start(ctx context.Context) error {
	a.Handler()

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server listening...", "address", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("listen and serve: %w", err)
			return
		}
		slog.Info("Server has stopped.")
		serverErr <- nil
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received.")
		return nil
	case err := <-serverErr:
		return err
	}
}

// Shutdown cancels in-flight requests, drains the server and waits for pending
// notifications.
func (a *App) Shutdown() error {
	slog.Info("Shutting down server...")
	a.stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()

	var errs []error
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown server: %w", err))
	}

	if err := a.provider.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close provider: %w", err))
	}

	return errors.Join(errs...)
}

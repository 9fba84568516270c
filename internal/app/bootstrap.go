package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/ferdiebergado/goexpress"
	"github.com/ferdiebergado/gopherkit/env"

	"github.com/ferdiebergado/accountkit/internal/config"
	"github.com/ferdiebergado/accountkit/internal/middleware"
	"github.com/ferdiebergado/accountkit/internal/notification"
	"github.com/ferdiebergado/accountkit/internal/pkg/logging"
	"github.com/ferdiebergado/accountkit/internal/platform/db"
	"github.com/ferdiebergado/accountkit/internal/platform/email"
	"github.com/ferdiebergado/accountkit/internal/platform/metrics"
	"github.com/ferdiebergado/accountkit/internal/platform/queue"
)

const envProduction = "production"

// Setup loads envFile outside production, then the config at cfgFile, and
// configures the default logger from it.
func Setup(cfgFile, envFile string) (*config.Config, error) {
	if os.Getenv("ENV") != envProduction && envFile != "" {
		if err := env.Load(envFile); err != nil {
			return nil, fmt.Errorf("load env: %w", err)
		}
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logging.SetupLogger(cfg.App.Env, cfg.App.LogLevel, os.Stdout)
	return cfg, nil
}

// Middlewares returns the chain applied to every request.
func Middlewares(cfg *config.Config, recorder *metrics.PrometheusRecorder) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.InjectWriter,
		goexpress.RecoverFromPanic,
		middleware.LogRequest,
		recorder.Instrument,
		middleware.CORS(cfg.Server.AllowedOrigin),
		middleware.ContextGuard,
		middleware.CheckContentType,
	}
}

// Serve runs the HTTP API until ctx is cancelled.
func Serve(ctx context.Context, cfg *config.Config) error {
	slog.Info("Initializing...")

	dbConn, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	provider, err := NewProvider(cfg, dbConn)
	if err != nil {
		return err
	}

	api := New(cfg, provider, Middlewares(cfg, provider.Metrics))
	if err := api.Start(ctx); err != nil {
		_ = provider.Close()
		return fmt.Errorf("start server: %w", err)
	}

	return api.Shutdown()
}

// Migrate applies every pending migration, or rolls back steps migrations when down is set.
func Migrate(ctx context.Context, cfg *config.Config, down bool, steps int) error {
	dbConn, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	if down {
		return db.MigrateDown(dbConn, steps)
	}
	return db.MigrateUp(dbConn)
}

// Work consumes queued notifications and mails them until ctx is cancelled.
func Work(ctx context.Context, cfg *config.Config) error {
	mailer, err := email.NewSMTPMailer(cfg.SMTP, cfg.Email)
	if err != nil {
		return fmt.Errorf("new smtp mailer: %w", err)
	}

	broker, err := queue.Dial(cfg.Queue)
	if err != nil {
		return fmt.Errorf("dial message broker: %w", err)
	}
	defer broker.Close()

	worker := notification.NewWorker(broker, notification.NewMailNotifier(mailer, cfg.App.URL), nil)
	return worker.Run(ctx)
}

package app

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ferdiebergado/accountkit/internal/auth"
	"github.com/ferdiebergado/accountkit/internal/config"
	"github.com/ferdiebergado/accountkit/internal/notification"
	"github.com/ferdiebergado/accountkit/internal/pkg/security"
	"github.com/ferdiebergado/accountkit/internal/platform/db"
	"github.com/ferdiebergado/accountkit/internal/platform/email"
	"github.com/ferdiebergado/accountkit/internal/platform/hash"
	"github.com/ferdiebergado/accountkit/internal/platform/jwt"
	"github.com/ferdiebergado/accountkit/internal/platform/metrics"
	"github.com/ferdiebergado/accountkit/internal/platform/queue"
	"github.com/ferdiebergado/accountkit/internal/platform/router"
	"github.com/ferdiebergado/accountkit/internal/platform/validation"
)

var ErrUnknownNotificationDriver = errors.New("app: unknown notification driver")

// Provider holds the collaborators shared by the HTTP application.
type Provider struct {
	DB         *sql.DB
	TxMgr      db.TxManager
	Signer     jwt.Signer
	Hasher     hash.Hasher
	Validator  validation.Validator
	Randomizer security.Randomizer
	Notifier   auth.Notifier
	Router     router.Router
	Metrics    *metrics.PrometheusRecorder
	Registry   *prometheus.Registry

	closers []func() error
}

// NewProvider builds the production collaborators from cfg.
func NewProvider(cfg *config.Config, dbConn *sql.DB) (*Provider, error) {
	securityKey := cfg.App.Key
	registry := metrics.NewRegistry()

	p := &Provider{
		DB:         dbConn,
		TxMgr:      db.NewSQLTxManager(dbConn),
		Signer:     jwt.NewGolangJWTSigner(cfg.JWT, securityKey, security.RandomizeFunc(security.GenerateRandomBytesURLEncoded)),
		Hasher:     hash.NewArgon2Hasher(cfg.Argon2, securityKey),
		Validator:  validation.NewGoPlaygroundValidator(),
		Randomizer: security.HexRandomizer,
		Router:     router.NewGoexpressRouter(),
		Metrics:    metrics.NewPrometheusRecorder(registry),
		Registry:   registry,
	}

	if err := p.setupNotifier(cfg); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Provider) setupNotifier(cfg *config.Config) error {
	switch cfg.Notification.Driver {
	case config.NotificationDriverMail:
		mailer, err := email.NewSMTPMailer(cfg.SMTP, cfg.Email)
		if err != nil {
			return fmt.Errorf("new smtp mailer: %w", err)
		}

		mailNotifier := notification.NewMailNotifier(mailer, cfg.App.URL)
		p.Notifier = mailNotifier
		p.closers = append(p.closers, func() error {
			mailNotifier.Wait()
			return nil
		})
	case config.NotificationDriverQueue:
		broker, err := queue.Dial(cfg.Queue)
		if err != nil {
			return fmt.Errorf("dial message broker: %w", err)
		}

		p.Notifier = notification.NewQueueNotifier(broker)
		p.closers = append(p.closers, broker.Close)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownNotificationDriver, cfg.Notification.Driver)
	}

	return nil
}

// Close waits for pending notifications and releases the broker connection.
func (p *Provider) Close() error {
	var errs []error
	for _, closeFn := range p.closers {
		errs = append(errs, closeFn())
	}
	return errors.Join(errs...)
}

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	timex "github.com/ferdiebergado/accountkit/internal/pkg/time"
)

const (
	envAppEnv   = "ENV"
	envKey      = "KEY"
	envURL      = "URL"
	envPort     = "PORT"
	envLogLevel = "LOG_LEVEL"
	envSMTPHost = "SMTP_HOST"
	envSMTPPort = "SMTP_PORT"
	envSMTPUser = "SMTP_USER"
	envSMTPPass = "SMTP_PASS"
	envAMQPURL  = "AMQP_URL"

	NotificationDriverMail  = "mail"
	NotificationDriverQueue = "queue"
)

var ErrMissingKey = errors.New("config: KEY is not set")

type App struct {
	Env      string `json:"env,omitempty"`
	URL      string `json:"url,omitempty"`
	LogLevel string `json:"log_level,omitempty"`
	Key      string `json:"-"`
}

type Server struct {
	Port            int            `json:"port,omitempty"`
	ReadTimeout     timex.Duration `json:"read_timeout,omitempty"`
	WriteTimeout    timex.Duration `json:"write_timeout,omitempty"`
	IdleTimeout     timex.Duration `json:"idle_timeout,omitempty"`
	ShutdownTimeout timex.Duration `json:"shutdown_timeout,omitempty"`
	MaxBodyBytes    int64          `json:"max_body_bytes,omitempty"`
	AllowedOrigin   string         `json:"allowed_origin,omitempty"`
}

type DB struct {
	Driver          string         `json:"driver,omitempty"`
	MaxOpenConns    int            `json:"max_open_conns,omitempty"`
	MaxIdleConns    int            `json:"max_idle_conns,omitempty"`
	ConnMaxIdleTime timex.Duration `json:"conn_max_idle_time,omitempty"`
	ConnMaxLifetime timex.Duration `json:"conn_max_lifetime,omitempty"`
	PingTimeout     timex.Duration `json:"ping_timeout,omitempty"`
}

type JWT struct {
	JTILength uint32         `json:"jti_length,omitempty"`
	Issuer    string         `json:"issuer,omitempty"`
	Audience  string         `json:"audience,omitempty"`
	TTL       timex.Duration `json:"ttl,omitempty"`
}

type Email struct {
	Templates string `json:"templates,omitempty"`
	Layout    string `json:"layout,omitempty"`
	Sender    string `json:"sender,omitempty"`
}

type SMTP struct {
	Host     string `json:"-"`
	Port     int    `json:"-"`
	User     string `json:"-"`
	Password string `json:"-"`
}

func (s *SMTP) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("host", s.Host),
		slog.Int("port", s.Port),
		slog.String("user", s.User),
		slog.String("password", "*"),
	)
}

type Argon2 struct {
	Memory     uint32 `json:"memory,omitempty"`
	Iterations uint32 `json:"iterations,omitempty"`
	Threads    uint8  `json:"threads,omitempty"`
	SaltLength uint32 `json:"salt_length,omitempty"`
	KeyLength  uint32 `json:"key_length,omitempty"`
}

type Token struct {
	Length uint32 `json:"length,omitempty"`
}

type Notification struct {
	Driver string `json:"driver,omitempty"`
}

type Queue struct {
	URL         string `json:"-"`
	Name        string `json:"name,omitempty"`
	ConsumerTag string `json:"consumer_tag,omitempty"`
	Prefetch    int    `json:"prefetch,omitempty"`
}

type RateLimit struct {
	Rate  float64 `json:"rate,omitempty"`
	Burst int     `json:"burst,omitempty"`
}

type Config struct {
	App          *App          `json:"app,omitempty"`
	Server       *Server       `json:"server,omitempty"`
	DB           *DB           `json:"db,omitempty"`
	JWT          *JWT          `json:"jwt,omitempty"`
	Email        *Email        `json:"email,omitempty"`
	SMTP         *SMTP         `json:"-"`
	Argon2       *Argon2       `json:"argon2,omitempty"`
	Token        *Token        `json:"token,omitempty"`
	Notification *Notification `json:"notification,omitempty"`
	Queue        *Queue        `json:"queue,omitempty"`
	RateLimit    *RateLimit    `json:"rate_limit,omitempty"`
}

func (c *Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("env", c.App.Env),
		slog.String("url", c.App.URL),
		slog.Any("server", c.Server),
		slog.Any("db", c.DB),
		slog.Any("jwt", c.JWT),
		slog.Any("email", c.Email),
		slog.Any("smtp", c.SMTP),
		slog.Any("argon2", c.Argon2),
		slog.Any("notification", c.Notification),
		slog.String("queue", c.Queue.Name),
		slog.Any("rate_limit", c.RateLimit),
	)
}

// Load reads the JSON config file at cfgFile and applies environment overrides.
// Secrets are only ever read from the environment.
func Load(cfgFile string) (*Config, error) {
	slog.Info("Loading config...")
	cfg, err := parseFile(cfgFile)
	if err != nil {
		return nil, err
	}

	if err := overrideWithEnv(cfg); err != nil {
		return nil, err
	}

	slog.Info("Config loaded.", "config_file", cfgFile, slog.Any("config", cfg))
	return cfg, nil
}

func parseFile(cfgFile string) (*Config, error) {
	cfgFile = filepath.Clean(cfgFile)
	data, err := os.ReadFile(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", cfgFile, err)
	}

	cfg := &Config{
		App:          &App{},
		Server:       &Server{},
		DB:           &DB{},
		JWT:          &JWT{},
		Email:        &Email{},
		SMTP:         &SMTP{},
		Argon2:       &Argon2{},
		Token:        &Token{},
		Notification: &Notification{Driver: NotificationDriverMail},
		Queue:        &Queue{},
		RateLimit:    &RateLimit{},
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decode json config %s: %w", cfgFile, err)
	}

	return cfg, nil
}

func overrideWithEnv(cfg *Config) error {
	key, ok := os.LookupEnv(envKey)
	if !ok || key == "" {
		return ErrMissingKey
	}
	cfg.App.Key = key

	if appEnv, ok := os.LookupEnv(envAppEnv); ok {
		cfg.App.Env = appEnv
	}

	if url, ok := os.LookupEnv(envURL); ok {
		cfg.App.URL = url
	}

	if lvl, ok := os.LookupEnv(envLogLevel); ok {
		cfg.App.LogLevel = lvl
	}

	if portStr, ok := os.LookupEnv(envPort); ok {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("convert %s %q to int: %w", envPort, portStr, err)
		}
		cfg.Server.Port = port
	}

	cfg.SMTP.Host = os.Getenv(envSMTPHost)
	cfg.SMTP.User = os.Getenv(envSMTPUser)
	cfg.SMTP.Password = os.Getenv(envSMTPPass)
	if portStr, ok := os.LookupEnv(envSMTPPort); ok {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("convert %s %q to int: %w", envSMTPPort, portStr, err)
		}
		cfg.SMTP.Port = port
	}

	cfg.Queue.URL = os.Getenv(envAMQPURL)

	return nil
}

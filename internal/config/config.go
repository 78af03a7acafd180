package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

const (
	SessionBackendCookie = "cookie"
	SessionBackendRedis  = "redis"
)

type Config struct {
	Server    ServerConfig
	Backend   BackendConfig
	Session   SessionConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Telemetry TelemetryConfig
}

type ServerConfig struct {
	Port            int           `env:"SERVER_PORT" envDefault:"3000"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	MaxUploadSize   int64         `env:"SERVER_MAX_UPLOAD_SIZE" envDefault:"10485760"`
}

// BackendConfig points at the storefront REST API.
type BackendConfig struct {
	BaseURL string        `env:"BACKEND_BASE_URL" envDefault:"http://localhost:8080"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"15s"`
}

type SessionConfig struct {
	Backend string        `env:"SESSION_BACKEND" envDefault:"cookie"`
	Name    string        `env:"SESSION_NAME" envDefault:"club_eskimo_session"`
	Secret  string        `env:"SESSION_SECRET" envDefault:"change-me-session-secret-32bytes"`
	MaxAge  time.Duration `env:"SESSION_MAX_AGE" envDefault:"24h"`
	Secure  bool          `env:"SESSION_SECURE" envDefault:"false"`
}

type RedisConfig struct {
	Addr      string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password  string `env:"REDIS_PASSWORD" envDefault:""`
	DB        int    `env:"REDIS_DB" envDefault:"0"`
	KeyPrefix string `env:"REDIS_KEY_PREFIX" envDefault:"session:"`
}

// RateLimitConfig throttles credential submits (login, signup) per client IP.
type RateLimitConfig struct {
	PerMinute int `env:"RATE_LIMIT_AUTH_PER_MINUTE" envDefault:"20"`
	Burst     int `env:"RATE_LIMIT_AUTH_BURST" envDefault:"5"`
}

type TelemetryConfig struct {
	Enabled     bool   `env:"TELEMETRY_ENABLED" envDefault:"false"`
	ServiceName string `env:"TELEMETRY_SERVICE_NAME" envDefault:"club-eskimo-web"`
}

// Load reads an optional .env file and then parses the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse builds the config from the process environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid BACKEND_BASE_URL %q", c.Backend.BaseURL)
	}
	switch c.Session.Backend {
	case SessionBackendCookie, SessionBackendRedis:
	default:
		return fmt.Errorf("unknown SESSION_BACKEND %q", c.Session.Backend)
	}
	if len(c.Session.Secret) < 32 {
		return errors.New("SESSION_SECRET must be at least 32 bytes")
	}
	return nil
}

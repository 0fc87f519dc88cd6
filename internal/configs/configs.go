/*
Package configs is responsible for loading and validating the application's configuration settings.

Values come from environment variables (with defaults declared on the struct tags) and,
when CONFIG_PATH points to a YAML file, from that file with the environment taking precedence.
*/
package configs

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Session backend names accepted in SESSION_BACKEND.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// AppConfig contains all configuration parameters of the client and the stub backend.
type AppConfig struct {
	// General Settings
	Environment string `yaml:"environment" env:"ENVIRONMENT" env-default:"development"`

	// API Client Settings
	APIBaseURL  string        `yaml:"api_base_url" env:"API_BASE_URL" env-default:"http://10.0.2.2:3000/api/"`
	HTTPTimeout time.Duration `yaml:"http_timeout" env:"HTTP_TIMEOUT" env-default:"30s"`

	// Session Storage Settings
	Session SessionConfig `yaml:"session"`

	// Headless Runner Settings
	LoginEmail    string        `yaml:"login_email" env:"LOGIN_EMAIL"`
	LoginPassword string        `yaml:"login_password" env:"LOGIN_PASSWORD"`
	SyncInterval  time.Duration `yaml:"sync_interval" env:"SYNC_INTERVAL" env-default:"0s"`
	MetricsAddr   string        `yaml:"metrics_addr" env:"METRICS_ADDR"`

	// Stub Backend Settings
	Stub StubConfig `yaml:"stub"`
}

// SessionConfig selects and configures the session store backend.
type SessionConfig struct {
	Backend   string `yaml:"backend" env:"SESSION_BACKEND" env-default:"file"`
	Namespace string `yaml:"namespace" env:"SESSION_NAMESPACE" env-default:"events_project_prefs"`
	Slot      string `yaml:"slot" env:"SESSION_SLOT" env-default:"login_response"`

	// FilePath is used by the "file" backend.
	FilePath string `yaml:"file_path" env:"SESSION_FILE" env-default:"events_project_prefs.json"`

	// Redis settings are used by the "redis" backend.
	RedisAddr     string `yaml:"redis_addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisPassword string `yaml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db" env:"REDIS_DB" env-default:"0"`

	// DatabaseDSN is used by the "postgres" backend.
	DatabaseDSN string `yaml:"database_url" env:"DATABASE_URL"`
}

// StubConfig configures the in-memory stub backend.
type StubConfig struct {
	Port           int      `yaml:"port" env:"STUB_PORT" env-default:"3000"`
	JWTSecret      string   `yaml:"jwt_secret" env:"JWT_SECRET"`
	AllowedOrigins []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS" env-separator:","`
}

// IsDevelopment reports whether the development environment is configured.
func (c *AppConfig) IsDevelopment() bool {
	return c.Environment == "development"
}

// LoadConfig reads the configuration from CONFIG_PATH (if set) and the environment,
// applies defaults and validates the result.
func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded values and fills in secrets that have a development default.
func (c *AppConfig) Validate() error {
	// --- API Client Settings ---
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid API_BASE_URL %q: must be an absolute URL", c.APIBaseURL)
	}
	if !strings.HasSuffix(c.APIBaseURL, "/") {
		c.APIBaseURL += "/"
	}

	if c.HTTPTimeout < 0 {
		return fmt.Errorf("HTTP_TIMEOUT must not be negative, got %s", c.HTTPTimeout)
	}
	if c.SyncInterval < 0 {
		return fmt.Errorf("SYNC_INTERVAL must not be negative, got %s", c.SyncInterval)
	}

	// --- Session Storage Settings ---
	switch c.Session.Backend {
	case BackendMemory:
	case BackendFile:
		if c.Session.FilePath == "" {
			return fmt.Errorf("SESSION_FILE is required for the %s session backend", BackendFile)
		}
	case BackendRedis:
		if c.Session.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required for the %s session backend", BackendRedis)
		}
	case BackendPostgres:
		if c.Session.DatabaseDSN == "" {
			return fmt.Errorf("DATABASE_URL is required for the %s session backend", BackendPostgres)
		}
	default:
		return fmt.Errorf("unknown SESSION_BACKEND %q", c.Session.Backend)
	}
	if c.Session.Slot == "" {
		return fmt.Errorf("SESSION_SLOT must not be empty")
	}

	// --- Stub Backend Settings ---
	if c.Stub.Port < 1024 || c.Stub.Port > 65535 {
		return fmt.Errorf("port number %d is outside the recommended range (%d-%d) to avoid privileged ports", c.Stub.Port, 1024, 65535)
	}

	if c.Stub.JWTSecret == "" {
		if !c.IsDevelopment() {
			return fmt.Errorf("JWT_SECRET environment variable is required in %s environment for security", c.Environment)
		}
		c.Stub.JWTSecret = "your_default_insecure_secret_key_change_me"
	}

	return nil
}

package internal

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StorageDriverSQLite   = "sqlite"
	StorageDriverPostgres = "postgres"
)

type Config struct {
	Env           string              `mapstructure:"env"`
	Server        ServerConfig        `mapstructure:"http_server"`
	Storage       StorageConfig       `mapstructure:"storage"`
	Security      SecurityConfig      `mapstructure:"security"`
	Observability ObservabilityConfig `mapstructure:"observability"`
	Session       SessionConfig       `mapstructure:"session"`
}

type ServerConfig struct {
	Port              int           `mapstructure:"port"`
	BaseURL           string        `mapstructure:"base_url"`
	AllowedOrigins    string        `mapstructure:"allowed_origins"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	ValidateRequests  bool          `mapstructure:"validate_requests"`
}

// StorageConfig selects the backing store. The store is reset to the seed
// data set every time the server starts, whichever driver is used.
type StorageConfig struct {
	Driver          string        `mapstructure:"driver"`
	Source          string        `mapstructure:"source"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	MigrationsTable string        `mapstructure:"migrations_table"`
}

type SecurityConfig struct {
	JWTSecret           string        `mapstructure:"jwt_secret"`
	JWTIssuer           string        `mapstructure:"jwt_issuer"`
	AccessTokenDuration time.Duration `mapstructure:"access_token_duration"`
}

type ObservabilityConfig struct {
	Tracing TracingConfig `mapstructure:"tracing"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type TracingConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	ServiceName  string  `mapstructure:"service_name"`
	SamplingRate float64 `mapstructure:"sampling_rate"`
	Endpoint     string  `mapstructure:"endpoint"`
	URLPath      string  `mapstructure:"url_path"`
	Insecure     bool    `mapstructure:"insecure"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SessionConfig drives the CLI commands that persist the signed-in identity.
type SessionConfig struct {
	File      string `mapstructure:"file"`
	ServerURL string `mapstructure:"server_url"`
}

func DefaultConfig() *Config {
	return &Config{
		Env: "development",
		Server: ServerConfig{
			Port:              8080,
			BaseURL:           "http://localhost:8080",
			AllowedOrigins:    "*",
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			IdleTimeout:       60 * time.Second,
			WriteTimeout:      15 * time.Second,
			ValidateRequests:  true,
		},
		Storage: StorageConfig{
			Driver:          StorageDriverSQLite,
			Source:          "file::memory:?cache=shared",
			MaxOpenConns:    1,
			MaxIdleConns:    1,
			ConnMaxLifetime: 0,
			MigrationsTable: "schema_migrations",
		},
		Security: SecurityConfig{
			JWTSecret:           "change-me-inventory-tracker-secret",
			JWTIssuer:           "inventory-tracker",
			AccessTokenDuration: 8 * time.Hour,
		},
		Observability: ObservabilityConfig{
			Tracing: TracingConfig{
				Enabled:      false,
				ServiceName:  "inventory-tracker",
				SamplingRate: 1,
				Endpoint:     "localhost:4318",
				URLPath:      "/v1/traces",
				Insecure:     true,
			},
			Logging: LoggingConfig{
				Level:  "info",
				Format: "text",
			},
		},
		Session: SessionConfig{
			File:      ".inventory-session.db",
			ServerURL: "http://localhost:8080",
		},
	}
}

// LoadConfigFromEnv builds a config from DefaultConfig overridden by
// INVENTORY_* variables. Used for container deployments without a config file.
func LoadConfigFromEnv() *Config {
	cfg := DefaultConfig()

	cfg.Env = getEnv("APP_ENV", cfg.Env)
	cfg.Server.Port = getEnvAsInt("INVENTORY_HTTP_PORT", cfg.Server.Port)
	cfg.Server.BaseURL = getEnv("INVENTORY_BASE_URL", cfg.Server.BaseURL)
	cfg.Server.AllowedOrigins = getEnv("INVENTORY_ALLOWED_ORIGINS", cfg.Server.AllowedOrigins)

	cfg.Storage.Driver = getEnv("INVENTORY_STORAGE_DRIVER", cfg.Storage.Driver)
	cfg.Storage.Source = getEnv("INVENTORY_STORAGE_SOURCE", cfg.Storage.Source)
	cfg.Storage.MaxOpenConns = getEnvAsInt("INVENTORY_STORAGE_MAX_OPEN_CONNS", cfg.Storage.MaxOpenConns)
	cfg.Storage.MaxIdleConns = getEnvAsInt("INVENTORY_STORAGE_MAX_IDLE_CONNS", cfg.Storage.MaxIdleConns)

	cfg.Security.JWTSecret = getEnv("INVENTORY_JWT_SECRET", cfg.Security.JWTSecret)
	cfg.Security.AccessTokenDuration = getEnvAsDuration("INVENTORY_ACCESS_TOKEN_DURATION", cfg.Security.AccessTokenDuration)

	cfg.Observability.Tracing.Enabled = getEnvAsBool("INVENTORY_TRACING_ENABLED", cfg.Observability.Tracing.Enabled)
	cfg.Observability.Tracing.Endpoint = getEnv("INVENTORY_TRACING_ENDPOINT", cfg.Observability.Tracing.Endpoint)
	cfg.Observability.Logging.Level = getEnv("INVENTORY_LOG_LEVEL", cfg.Observability.Logging.Level)
	cfg.Observability.Logging.Format = getEnv("INVENTORY_LOG_FORMAT", cfg.Observability.Logging.Format)

	return cfg
}

// ----------------- HELPERS -----------------

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultVal
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server config: %v", err))
	}

	if err := c.Storage.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("storage config: %v", err))
	}

	if err := c.Security.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("security config: %v", err))
	}

	if err := c.Observability.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("observability config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *ServerConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.AllowedOrigins != "" {
		origins := strings.Split(c.AllowedOrigins, ",")
		for _, origin := range origins {
			origin = strings.TrimSpace(origin)
			if origin == "*" {
				continue
			}
			if _, err := url.Parse(origin); err != nil {
				return fmt.Errorf("invalid allowed origin %s: %w", origin, err)
			}
		}
	}
	if c.ReadTimeout < c.ReadHeaderTimeout {
		return errors.New("read_timeout must be >= read_header_timeout")
	}
	return nil
}

func (c *StorageConfig) Validate() error {
	switch c.Driver {
	case StorageDriverSQLite, StorageDriverPostgres:
	default:
		return fmt.Errorf("unsupported driver %q", c.Driver)
	}
	if c.Source == "" {
		return errors.New("source is required")
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		return errors.New("max_idle_conns cannot be greater than max_open_conns")
	}
	return nil
}

func (c *StorageConfig) GetDSN() string {
	return c.Source
}

func (c *SecurityConfig) Validate() error {
	if len(c.JWTSecret) < 16 {
		return errors.New("jwt_secret must be at least 16 characters")
	}
	if c.AccessTokenDuration <= 0 {
		return errors.New("access_token_duration must be positive")
	}
	return nil
}

func (c *ObservabilityConfig) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("invalid log format %q", c.Logging.Format)
	}
	if c.Tracing.Enabled {
		if c.Tracing.ServiceName == "" {
			return errors.New("tracing.service_name is required when tracing is enabled")
		}
		if c.Tracing.Endpoint == "" {
			return errors.New("tracing.endpoint is required when tracing is enabled")
		}
	}
	if c.Tracing.SamplingRate < 0 || c.Tracing.SamplingRate > 1 {
		return errors.New("tracing.sampling_rate must be between 0 and 1")
	}
	return nil
}

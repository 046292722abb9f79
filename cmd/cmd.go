package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/frahmantamala/inventory-tracker/internal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "inventory-tracker",
	Short: "Inventory Tracker",
	Long:  `Department scoped inventory tracking with role based permissions.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*internal.Config, error) {
	// Container deployments configure everything through the environment.
	if os.Getenv("APP_ENV") == "production" || os.Getenv("DOCKER_ENV") == "true" {
		cfg := internal.LoadConfigFromEnv()
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("error validating config from environment: %w", err)
		}
		return cfg, nil
	}

	v := viper.New()
	setDefaults(v, internal.DefaultConfig())
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.SetEnvPrefix("ENV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// config.yml is optional; the defaults run a self-contained server.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg internal.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("error validating config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *internal.Config) {
	v.SetDefault("env", d.Env)

	v.SetDefault("http_server.port", d.Server.Port)
	v.SetDefault("http_server.base_url", d.Server.BaseURL)
	v.SetDefault("http_server.allowed_origins", d.Server.AllowedOrigins)
	v.SetDefault("http_server.read_header_timeout", d.Server.ReadHeaderTimeout)
	v.SetDefault("http_server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("http_server.idle_timeout", d.Server.IdleTimeout)
	v.SetDefault("http_server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("http_server.validate_requests", d.Server.ValidateRequests)

	v.SetDefault("storage.driver", d.Storage.Driver)
	v.SetDefault("storage.source", d.Storage.Source)
	v.SetDefault("storage.max_open_conns", d.Storage.MaxOpenConns)
	v.SetDefault("storage.max_idle_conns", d.Storage.MaxIdleConns)
	v.SetDefault("storage.conn_max_lifetime", d.Storage.ConnMaxLifetime)
	v.SetDefault("storage.migrations_table", d.Storage.MigrationsTable)

	v.SetDefault("security.jwt_secret", d.Security.JWTSecret)
	v.SetDefault("security.jwt_issuer", d.Security.JWTIssuer)
	v.SetDefault("security.access_token_duration", d.Security.AccessTokenDuration)

	v.SetDefault("observability.tracing.enabled", d.Observability.Tracing.Enabled)
	v.SetDefault("observability.tracing.service_name", d.Observability.Tracing.ServiceName)
	v.SetDefault("observability.tracing.sampling_rate", d.Observability.Tracing.SamplingRate)
	v.SetDefault("observability.tracing.endpoint", d.Observability.Tracing.Endpoint)
	v.SetDefault("observability.tracing.url_path", d.Observability.Tracing.URLPath)
	v.SetDefault("observability.tracing.insecure", d.Observability.Tracing.Insecure)
	v.SetDefault("observability.logging.level", d.Observability.Logging.Level)
	v.SetDefault("observability.logging.format", d.Observability.Logging.Format)

	v.SetDefault("session.file", d.Session.File)
	v.SetDefault("session.server_url", d.Session.ServerURL)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config-dir", "c", ".", "directory holding config.yml")

	rootCmd.AddCommand(httpServerCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}

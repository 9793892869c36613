// Package config provides configuration loading and management for the sync
// server.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/curtail-dev/curtail-sync-server/internal/telemetry"
)

const (
	// EnvPrefix is the prefix for environment variables read by the server.
	EnvPrefix = "CURTAIL_SYNC"

	// envDatabasePassword holds the database password when no password file
	// is configured.
	envDatabasePassword = "CURTAIL_DATABASE_PASSWORD"

	// envCronSecret holds the cron trigger secret when no secret file or
	// inline value is configured.
	envCronSecret = "CURTAIL_CRON_SECRET"

	// envEdgeToken holds the edge API bearer token when no token file or
	// inline value is configured.
	envEdgeToken = "CURTAIL_EDGE_TOKEN"
)

// Option defines the interface for configuration options
type Option func(*loaderConfig) error

// loaderConfig defines the configuration for loading a configuration
type loaderConfig struct {
	path string
}

// WithConfigPath loads configuration from a YAML file
func WithConfigPath(path string) Option {
	return func(cfg *loaderConfig) error {
		if path == "" {
			return fmt.Errorf("path is required")
		}

		// Resolve symlinks to prevent symlink attacks.
		// Note that this calls filepath.Clean internally.
		realPath, err := filepath.EvalSymlinks(path)
		if err != nil {
			return fmt.Errorf("failed to evaluate symlinks: %w", err)
		}

		// Validate the path to prevent path traversal attacks
		if !filepath.IsAbs(realPath) {
			if !filepath.IsLocal(realPath) {
				return fmt.Errorf("path is not local or contains invalid traversal: %s", path)
			}
		}

		cfg.path = realPath
		return nil
	}
}

// Config represents the root configuration structure
type Config struct {
	Server    ServerConfig      `yaml:"server"`
	Database  *DatabaseConfig   `yaml:"database,omitempty"`
	Edge      *EdgeConfig       `yaml:"edge,omitempty"`
	Sync      *SyncConfig       `yaml:"sync,omitempty"`
	Scheduler *SchedulerConfig  `yaml:"scheduler,omitempty"`
	Telemetry *telemetry.Config `yaml:"telemetry,omitempty"`
}

// ServerConfig defines HTTP server settings
type ServerConfig struct {
	// Address is the listen address in host:port form
	Address string `yaml:"address,omitempty"`

	// CronSecret is the inline shared secret for the sync trigger endpoint.
	// Prefer CronSecretFile in production deployments.
	CronSecret string `yaml:"cronSecret,omitempty"`

	// CronSecretFile is the path to a file containing the cron secret
	CronSecretFile string `yaml:"cronSecretFile,omitempty"`
}

// GetCronSecret returns the cron trigger secret using the following priority:
// 1. Read from CronSecretFile if specified
// 2. Inline CronSecret value
// 3. CURTAIL_CRON_SECRET environment variable
//
// An absent secret is not a load error: the trigger endpoint reports the
// misconfiguration at request time instead.
func (s *ServerConfig) GetCronSecret() (string, error) {
	if s.CronSecretFile != "" {
		cleanPath := filepath.Clean(s.CronSecretFile)

		data, err := os.ReadFile(cleanPath)
		if err != nil {
			return "", fmt.Errorf("failed to read cron secret from file %s: %w", s.CronSecretFile, err)
		}

		return strings.TrimSpace(string(data)), nil
	}

	if s.CronSecret != "" {
		return s.CronSecret, nil
	}

	return os.Getenv(envCronSecret), nil
}

// DatabaseConfig defines database connection settings
type DatabaseConfig struct {
	// Host is the database server hostname or IP address
	Host string `yaml:"host"`

	// Port is the database server port
	Port int `yaml:"port"`

	// User is the database username
	User string `yaml:"user"`

	// PasswordFile is the path to a file containing the database password.
	// This is the recommended approach for production deployments.
	// The file should contain only the password with optional trailing whitespace.
	PasswordFile string `yaml:"passwordFile,omitempty"`

	// Database is the database name
	Database string `yaml:"database"`

	// SSLMode is the SSL mode for the connection (disable, require, verify-ca, verify-full)
	SSLMode string `yaml:"sslMode,omitempty"`

	// MaxOpenConns is the maximum number of open connections to the database
	MaxOpenConns int32 `yaml:"maxOpenConns,omitempty"`

	// MaxIdleConns is the maximum number of idle connections in the pool
	MaxIdleConns int32 `yaml:"maxIdleConns,omitempty"`

	// ConnMaxLifetime is the maximum lifetime of a connection (e.g., "1h", "30m")
	ConnMaxLifetime string `yaml:"connMaxLifetime,omitempty"`
}

// GetPassword returns the database password using the following priority:
// 1. Read from PasswordFile if specified
// 2. Read from CURTAIL_DATABASE_PASSWORD environment variable
//
// The password from file will have leading/trailing whitespace trimmed.
func (d *DatabaseConfig) GetPassword() (string, error) {
	if d.PasswordFile != "" {
		// Use filepath.Clean to prevent path traversal attacks
		cleanPath := filepath.Clean(d.PasswordFile)

		data, err := os.ReadFile(cleanPath)
		if err != nil {
			return "", fmt.Errorf("failed to read password from file %s: %w", d.PasswordFile, err)
		}

		return strings.TrimSpace(string(data)), nil
	}

	if envPassword := os.Getenv(envDatabasePassword); envPassword != "" {
		return envPassword, nil
	}

	return "", fmt.Errorf(
		"no database password configured: set passwordFile or %s environment variable",
		envDatabasePassword,
	)
}

// GetConnectionString builds a PostgreSQL connection string with proper password handling.
// The password is URL-escaped to handle special characters safely.
func (d *DatabaseConfig) GetConnectionString() (string, error) {
	password, err := d.GetPassword()
	if err != nil {
		return "", err
	}

	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "require"
	}

	escapedPassword := url.QueryEscape(password)

	connString := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User,
		escapedPassword,
		d.Host,
		d.Port,
		d.Database,
		sslMode,
	)

	return connString, nil
}

// EdgeConfig defines the edge cache backend settings
type EdgeConfig struct {
	// Endpoint is the base URL of the edge KV API. Empty means the edge
	// store is not configured and syncs are unavailable.
	Endpoint string `yaml:"endpoint,omitempty"`

	// Namespace is the KV namespace redirect entries are written to
	Namespace string `yaml:"namespace,omitempty"`

	// Token is the inline bearer token for the edge API.
	// Prefer TokenFile in production deployments.
	Token string `yaml:"token,omitempty"`

	// TokenFile is the path to a file containing the bearer token
	TokenFile string `yaml:"tokenFile,omitempty"`

	// MaxBatchSize caps the number of entries per bulk write
	MaxBatchSize int `yaml:"maxBatchSize,omitempty"`

	// Timeout is the per-request timeout (e.g., "10s")
	Timeout string `yaml:"timeout,omitempty"`
}

// GetToken returns the edge API bearer token using the following priority:
// 1. Read from TokenFile if specified
// 2. Inline Token value
// 3. CURTAIL_EDGE_TOKEN environment variable
func (e *EdgeConfig) GetToken() (string, error) {
	if e.TokenFile != "" {
		cleanPath := filepath.Clean(e.TokenFile)

		data, err := os.ReadFile(cleanPath)
		if err != nil {
			return "", fmt.Errorf("failed to read edge token from file %s: %w", e.TokenFile, err)
		}

		return strings.TrimSpace(string(data)), nil
	}

	if e.Token != "" {
		return e.Token, nil
	}

	return os.Getenv(envEdgeToken), nil
}

// SyncConfig defines sync attempt settings
type SyncConfig struct {
	// Timeout bounds one full sync attempt (e.g., "60s")
	Timeout string `yaml:"timeout,omitempty"`
}

// SchedulerConfig defines the optional background sync scheduler
type SchedulerConfig struct {
	// Interval between scheduled syncs (e.g., "5m"). Empty disables the
	// scheduler; external cron remains the primary trigger.
	Interval string `yaml:"interval,omitempty"`
}

// LoadConfig loads and parses configuration from a YAML file
func LoadConfig(opts ...Option) (*Config, error) {
	loaderCfg := &loaderConfig{}
	for _, opt := range opts {
		if err := opt(loaderCfg); err != nil {
			return nil, err
		}
	}

	// As of now, this is required because there's no other options to load
	// configuration. Once we add more options, we can remove this check.
	if loaderCfg.path == "" {
		return nil, fmt.Errorf("path is required")
	}

	data, err := os.ReadFile(loaderCfg.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// GetAddress returns the listen address, using ":8080" if not specified
func (c *Config) GetAddress() string {
	if c.Server.Address == "" {
		return ":8080"
	}
	return c.Server.Address
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if c.Database == nil {
		return fmt.Errorf("database configuration is required")
	}
	if err := validateDatabaseConfig(c.Database); err != nil {
		return err
	}

	if c.Edge != nil {
		if err := validateEdgeConfig(c.Edge); err != nil {
			return err
		}
	}

	if c.Sync != nil && c.Sync.Timeout != "" {
		if _, err := time.ParseDuration(c.Sync.Timeout); err != nil {
			return fmt.Errorf("sync.timeout must be a valid duration (e.g., '60s'): %w", err)
		}
	}

	if c.Scheduler != nil && c.Scheduler.Interval != "" {
		if _, err := time.ParseDuration(c.Scheduler.Interval); err != nil {
			return fmt.Errorf("scheduler.interval must be a valid duration (e.g., '5m'): %w", err)
		}
	}

	return nil
}

// validateDatabaseConfig validates the database connection settings
func validateDatabaseConfig(db *DatabaseConfig) error {
	if db.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if db.Port <= 0 || db.Port > 65535 {
		return fmt.Errorf("database.port must be between 1 and 65535, got %d", db.Port)
	}
	if db.User == "" {
		return fmt.Errorf("database.user is required")
	}
	if db.Database == "" {
		return fmt.Errorf("database.database is required")
	}
	if db.ConnMaxLifetime != "" {
		if _, err := time.ParseDuration(db.ConnMaxLifetime); err != nil {
			return fmt.Errorf("database.connMaxLifetime must be a valid duration (e.g., '1h'): %w", err)
		}
	}
	return nil
}

// validateEdgeConfig validates the edge backend settings. An empty endpoint
// is allowed; it means syncs are unavailable until one is configured.
func validateEdgeConfig(edge *EdgeConfig) error {
	if edge.Endpoint != "" && edge.Namespace == "" {
		return fmt.Errorf("edge.namespace is required when edge.endpoint is set")
	}
	if edge.MaxBatchSize < 0 {
		return fmt.Errorf("edge.maxBatchSize must not be negative, got %d", edge.MaxBatchSize)
	}
	if edge.Timeout != "" {
		if _, err := time.ParseDuration(edge.Timeout); err != nil {
			return fmt.Errorf("edge.timeout must be a valid duration (e.g., '10s'): %w", err)
		}
	}
	return nil
}

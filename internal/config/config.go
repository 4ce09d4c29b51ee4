package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/pedagogy-studio/internal/domain"
	"github.com/spf13/viper"
)

// Manager implements the ConfigManager interface using Viper
type Manager struct {
	v      *viper.Viper
	config *domain.Config
}

// NewManager creates a new configuration manager
func NewManager() (*Manager, error) {
	m := &Manager{v: viper.New()}
	if err := m.loadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return m, nil
}

// NewManagerFromFile loads configuration from an explicit file path.
func NewManagerFromFile(path string) (*Manager, error) {
	m := &Manager{v: viper.New()}
	m.v.SetConfigFile(path)
	if err := m.loadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return m, nil
}

// loadConfig loads configuration from various sources
func (m *Manager) loadConfig() error {
	v := m.v

	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/pedagogy-studio/")
	}

	// PEDAGOGY_BACKEND_BASE_URL overrides backend.base_url
	v.SetEnvPrefix("PEDAGOGY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	m.setDefaults()

	// Read configuration file (optional - will use defaults and env vars if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &domain.Config{}
	if err := v.Unmarshal(config); err != nil {
		return fmt.Errorf("error unmarshaling config: %w", err)
	}

	m.config = config
	return nil
}

// setDefaults sets default configuration values
func (m *Manager) setDefaults() {
	v := m.v

	v.SetDefault("environment", "development")

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("server.cors_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.mode", "release")

	// Backend defaults. Generation can take a while; the client enforces
	// no timeout of its own unless one is configured.
	v.SetDefault("backend.base_url", "http://localhost:8000")
	v.SetDefault("backend.timeout", "0s")
	v.SetDefault("backend.rate_limit", 5)
	v.SetDefault("backend.user_agent", "pedagogy-studio/1.0")
	v.SetDefault("backend.circuit_breaker.max_requests", 3)
	v.SetDefault("backend.circuit_breaker.interval", "60s")
	v.SetDefault("backend.circuit_breaker.timeout", "30s")
	v.SetDefault("backend.circuit_breaker.failure_threshold", 5)

	// Cache defaults
	v.SetDefault("cache.driver", "memory")
	v.SetDefault("cache.redis_url", "redis://localhost:6379/0")
	v.SetDefault("cache.ttl", "10m")
	v.SetDefault("cache.max_items", 64)
	v.SetDefault("cache.pool_size", 10)
	v.SetDefault("cache.pool_timeout", "4s")
	v.SetDefault("cache.max_retries", 3)

	// Library defaults
	v.SetDefault("library.driver", "sqlite")
	v.SetDefault("library.sqlite_path", "./data/lessons.db")
	v.SetDefault("library.postgres.host", "localhost")
	v.SetDefault("library.postgres.port", 5432)
	v.SetDefault("library.postgres.database", "pedagogy_studio")
	v.SetDefault("library.postgres.username", "postgres")
	v.SetDefault("library.postgres.password", "")
	v.SetDefault("library.postgres.ssl_mode", "disable")
	v.SetDefault("library.postgres.max_open_conns", 25)
	v.SetDefault("library.postgres.max_idle_conns", 5)
	v.SetDefault("library.postgres.conn_max_lifetime", "5m")
	v.SetDefault("library.postgres.auto_migrate", true)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")

	// MCP defaults
	v.SetDefault("mcp.server_name", "pedagogy-studio")
	v.SetDefault("mcp.server_version", "1.0.0")
}

// GetConfig returns the complete configuration
func (m *Manager) GetConfig() *domain.Config {
	return m.config
}

// GetServerConfig returns server configuration
func (m *Manager) GetServerConfig() *domain.ServerConfig {
	return &m.config.Server
}

// GetBackendConfig returns backend client configuration
func (m *Manager) GetBackendConfig() *domain.BackendConfig {
	return &m.config.Backend
}

// GetCacheConfig returns catalog cache configuration
func (m *Manager) GetCacheConfig() *domain.CacheConfig {
	return &m.config.Cache
}

// GetLibraryConfig returns lesson library configuration
func (m *Manager) GetLibraryConfig() *domain.LibraryConfig {
	return &m.config.Library
}

// GetLoggingConfig returns logging configuration
func (m *Manager) GetLoggingConfig() *domain.LoggingConfig {
	return &m.config.Logging
}

// Reload reloads the configuration
func (m *Manager) Reload() error {
	return m.loadConfig()
}

// Validate validates the configuration
func (m *Manager) Validate() error {
	config := m.config

	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	if config.Backend.BaseURL == "" {
		return fmt.Errorf("backend base URL is required")
	}
	if u, err := url.Parse(config.Backend.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid backend base URL: %q", config.Backend.BaseURL)
	}
	if config.Backend.RateLimit < 0 {
		return fmt.Errorf("backend rate limit must not be negative: %d", config.Backend.RateLimit)
	}

	switch config.Cache.Driver {
	case "memory", "none":
	case "redis":
		if config.Cache.RedisURL == "" {
			return fmt.Errorf("Redis URL is required for the redis cache driver")
		}
	default:
		return fmt.Errorf("invalid cache driver: %s", config.Cache.Driver)
	}

	switch config.Library.Driver {
	case "none":
	case "sqlite":
		if config.Library.SQLitePath == "" {
			return fmt.Errorf("library sqlite_path is required for the sqlite driver")
		}
	case "postgres":
		pg := config.Library.Postgres
		if pg.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if pg.Database == "" {
			return fmt.Errorf("database name is required")
		}
		if pg.Username == "" {
			return fmt.Errorf("database username is required")
		}
	default:
		return fmt.Errorf("invalid library driver: %s", config.Library.Driver)
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "fatal": true, "panic": true,
	}
	if !validLogLevels[strings.ToLower(config.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s", config.Logging.Level)
	}

	return nil
}

// GetDatabaseConnectionString returns a postgres:// URL for the lesson library
func (m *Manager) GetDatabaseConnectionString() string {
	return PostgresURL(m.config.Library.Postgres)
}

// PostgresURL formats db as a postgres:// connection URL.
func PostgresURL(db domain.DatabaseConfig) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(db.Username, db.Password),
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   "/" + db.Database,
	}
	if db.SSLMode != "" {
		u.RawQuery = "sslmode=" + url.QueryEscape(db.SSLMode)
	}
	return u.String()
}

// GetRedisConnectionString returns the Redis connection string
func (m *Manager) GetRedisConnectionString() string {
	return m.config.Cache.RedisURL
}

// IsProduction returns true if running in production mode
func (m *Manager) IsProduction() bool {
	return strings.ToLower(m.config.Environment) == "production"
}

// IsDevelopment returns true if running in development mode
func (m *Manager) IsDevelopment() bool {
	env := strings.ToLower(m.config.Environment)
	return env == "development" || env == "dev" || env == ""
}

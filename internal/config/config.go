package config

import (
	"fmt"
	"strings"
	"time"

	"task-manager/internal/database"
)

// Environment classifies the running process.
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	Production  Environment = "production"
)

// ParseEnvironment maps a setting to an Environment. Anything unrecognised
// is treated as development.
func ParseEnvironment(s string) Environment {
	switch Environment(strings.ToLower(strings.TrimSpace(s))) {
	case Production:
		return Production
	case Test:
		return Test
	default:
		return Development
	}
}

// IsProduction reports whether the server backend is in use and destructive
// operations are disabled.
func (e Environment) IsProduction() bool {
	return e == Production
}

// Config holds all configuration options for taskd
type Config struct {
	Environment Environment
	Database    DatabaseConfig
	Server      ServerConfig
	Validation  ValidationConfig
	Debug       bool
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	URL          string
	MaxConns     int32
	InitTimeout  time.Duration
	QueryTimeout time.Duration
}

// ServerConfig holds HTTP listener configuration
type ServerConfig struct {
	Host            string
	Port            int
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	CORSOrigin      string
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	TitleMaxLength       int
	DescriptionMaxLength int
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	return &Config{
		Environment: Development,
		Database: DatabaseConfig{
			MaxConns:     10,
			InitTimeout:  30 * time.Second,
			QueryTimeout: 10 * time.Second,
		},
		Server: ServerConfig{
			Port:            3001,
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CORSOrigin:      "*",
		},
		Validation: ValidationConfig{
			TitleMaxLength:       200,
			DescriptionMaxLength: 1000,
		},
	}
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// DatabaseSettings selects the backend for the configured environment.
func (c *Config) DatabaseSettings() database.Settings {
	return database.Settings{
		Production: c.Environment.IsProduction(),
		URL:        c.Database.URL,
		MaxConns:   c.Database.MaxConns,
	}
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	if c.Environment.IsProduction() && c.Database.URL == "" {
		return &ConfigError{Field: "database.url", Message: "DATABASE_URL is required in production"}
	}
	if c.Database.MaxConns < 1 {
		return &ConfigError{Field: "database.max_conns", Message: "max connections must be at least 1"}
	}
	if c.Database.InitTimeout <= 0 {
		return &ConfigError{Field: "database.init_timeout", Message: "init timeout must be positive"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return &ConfigError{Field: "server.port", Message: "port must be between 1 and 65535"}
	}
	if c.Server.RequestTimeout <= 0 {
		return &ConfigError{Field: "server.request_timeout", Message: "request timeout must be positive"}
	}
	if c.Server.ShutdownTimeout <= 0 {
		return &ConfigError{Field: "server.shutdown_timeout", Message: "shutdown timeout must be positive"}
	}

	if c.Validation.TitleMaxLength < 1 {
		return &ConfigError{Field: "validation.title_max_length", Message: "title maximum length must be at least 1"}
	}
	if c.Validation.DescriptionMaxLength < 1 {
		return &ConfigError{Field: "validation.description_max_length", Message: "description maximum length must be at least 1"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every taskd environment variable.
const EnvPrefix = "TASKD"

const (
	keyEnvironment          = "environment"
	keyDebug                = "debug"
	keyDatabaseURL          = "database.url"
	keyDatabaseMaxConns     = "database.max_conns"
	keyDatabaseInitTimeout  = "database.init_timeout"
	keyDatabaseQueryTimeout = "database.query_timeout"
	keyServerHost           = "server.host"
	keyServerPort           = "server.port"
	keyServerRequestTimeout = "server.request_timeout"
	keyServerShutdown       = "server.shutdown_timeout"
	keyServerCORSOrigin     = "server.cors_origin"
	keyTitleMaxLength       = "validation.title_max_length"
	keyDescriptionMaxLength = "validation.description_max_length"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	v          *viper.Viper
	configFile string
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{v: viper.New()}
}

// WithConfigFile reads settings from path instead of searching for
// taskd.yaml in the working directory.
func (l *Loader) WithConfigFile(path string) *Loader {
	l.configFile = path
	return l
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with taskd.yaml, when present
// 3. Override with environment variables
// Command line flags are applied by LoadWithOverrides.
func (l *Loader) Load() (*Config, error) {
	if err := l.read(); err != nil {
		return nil, err
	}

	config := l.decode()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	if err := l.read(); err != nil {
		return nil, err
	}

	config := l.decode()
	if overrides != nil {
		overrides.apply(config)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (l *Loader) read() error {
	defaults := NewConfig()
	v := l.v

	v.SetDefault(keyEnvironment, string(defaults.Environment))
	v.SetDefault(keyDebug, defaults.Debug)
	v.SetDefault(keyDatabaseURL, defaults.Database.URL)
	v.SetDefault(keyDatabaseMaxConns, defaults.Database.MaxConns)
	v.SetDefault(keyDatabaseInitTimeout, defaults.Database.InitTimeout)
	v.SetDefault(keyDatabaseQueryTimeout, defaults.Database.QueryTimeout)
	v.SetDefault(keyServerHost, defaults.Server.Host)
	v.SetDefault(keyServerPort, defaults.Server.Port)
	v.SetDefault(keyServerRequestTimeout, defaults.Server.RequestTimeout)
	v.SetDefault(keyServerShutdown, defaults.Server.ShutdownTimeout)
	v.SetDefault(keyServerCORSOrigin, defaults.Server.CORSOrigin)
	v.SetDefault(keyTitleMaxLength, defaults.Validation.TitleMaxLength)
	v.SetDefault(keyDescriptionMaxLength, defaults.Validation.DescriptionMaxLength)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Conventional unprefixed names used by container platforms.
	_ = v.BindEnv(keyEnvironment, EnvPrefix+"_ENV", "APP_ENV")
	_ = v.BindEnv(keyDatabaseURL, EnvPrefix+"_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv(keyServerPort, EnvPrefix+"_PORT", "PORT")
	_ = v.BindEnv(keyDebug, EnvPrefix+"_DEBUG")

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
	} else {
		v.SetConfigName("taskd")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return &ConfigError{Field: "config_file", Message: err.Error()}
	}
	return nil
}

func (l *Loader) decode() *Config {
	v := l.v
	return &Config{
		Environment: ParseEnvironment(v.GetString(keyEnvironment)),
		Debug:       v.GetBool(keyDebug),
		Database: DatabaseConfig{
			URL:          v.GetString(keyDatabaseURL),
			MaxConns:     v.GetInt32(keyDatabaseMaxConns),
			InitTimeout:  v.GetDuration(keyDatabaseInitTimeout),
			QueryTimeout: v.GetDuration(keyDatabaseQueryTimeout),
		},
		Server: ServerConfig{
			Host:            v.GetString(keyServerHost),
			Port:            v.GetInt(keyServerPort),
			RequestTimeout:  v.GetDuration(keyServerRequestTimeout),
			ShutdownTimeout: v.GetDuration(keyServerShutdown),
			CORSOrigin:      v.GetString(keyServerCORSOrigin),
		},
		Validation: ValidationConfig{
			TitleMaxLength:       v.GetInt(keyTitleMaxLength),
			DescriptionMaxLength: v.GetInt(keyDescriptionMaxLength),
		},
	}
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	Environment *string
	DatabaseURL *string
	Host        *string
	Port        *int
	Debug       *bool
}

func (o *ConfigOverrides) apply(config *Config) {
	if o.Environment != nil {
		config.Environment = ParseEnvironment(*o.Environment)
	}
	if o.DatabaseURL != nil {
		config.Database.URL = *o.DatabaseURL
	}
	if o.Host != nil {
		config.Server.Host = *o.Host
	}
	if o.Port != nil {
		config.Server.Port = *o.Port
	}
	if o.Debug != nil {
		config.Debug = *o.Debug
	}
}

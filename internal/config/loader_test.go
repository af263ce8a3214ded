package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoaderDefaults(t *testing.T) {
	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, NewConfig(), cfg)
}

func TestLoaderEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("PORT", "8080")
	t.Setenv("TASKD_SERVER_REQUEST_TIMEOUT", "5s")
	t.Setenv("TASKD_VALIDATION_TITLE_MAX_LENGTH", "50")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, Test, cfg.Environment)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 50, cfg.Validation.TitleMaxLength)
}

func TestLoaderPrefixedWinsOverConventional(t *testing.T) {
	t.Setenv("TASKD_ENV", "test")
	t.Setenv("APP_ENV", "staging")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, Test, cfg.Environment)
}

func TestLoaderProductionRequiresURL(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	_, err := NewLoader().Load()
	require.Error(t, err)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "database.url", cfgErr.Field)

	t.Setenv("DATABASE_URL", "postgres://db/taskd")
	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.True(t, cfg.Environment.IsProduction())
	assert.Equal(t, "postgres://db/taskd", cfg.Database.URL)
}

func TestLoaderConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskd.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
environment: test
server:
  port: 9090
  cors_origin: https://example.com
database:
  max_conns: 3
`), 0o644))

	cfg, err := NewLoader().WithConfigFile(path).Load()
	require.NoError(t, err)
	assert.Equal(t, Test, cfg.Environment)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "https://example.com", cfg.Server.CORSOrigin)
	assert.Equal(t, int32(3), cfg.Database.MaxConns)
}

func TestLoadWithOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")

	env := "production"
	url := "postgres://override/taskd"
	port := 9999
	debug := true

	cfg, err := NewLoader().LoadWithOverrides(&ConfigOverrides{
		Environment: &env,
		DatabaseURL: &url,
		Port:        &port,
		Debug:       &debug,
	})
	require.NoError(t, err)
	assert.Equal(t, Production, cfg.Environment)
	assert.Equal(t, url, cfg.Database.URL)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.True(t, cfg.Debug)
}

func TestLoadWithOverridesValidates(t *testing.T) {
	env := "production"
	_, err := NewLoader().LoadWithOverrides(&ConfigOverrides{Environment: &env})
	require.Error(t, err)
}

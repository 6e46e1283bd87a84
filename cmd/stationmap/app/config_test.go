package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/stationmap/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stationmap.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigFile(t *testing.T) {
	t.Setenv(EnvAPIRoot, "")
	t.Setenv(EnvCredentials, "")
	path := writeConfig(t, `
api_root: https://example.test/api
credentials: token_type=Bearer&access_token=abc
credentials_file: /tmp/auth
registry: orgs.yaml
format: yaml
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.ConfigFile)
	assert.Equal(t, "https://example.test/api", cfg.APIRoot)
	assert.Equal(t, "token_type=Bearer&access_token=abc", cfg.Credentials)
	assert.Equal(t, "/tmp/auth", cfg.CredentialsFile)
	assert.Equal(t, "orgs.yaml", cfg.RegistryFile)
	assert.Equal(t, "yaml", cfg.Format)
}

func TestLoadConfigEnvironmentWins(t *testing.T) {
	path := writeConfig(t, "api_root: https://file.test\n")
	t.Setenv(EnvAPIRoot, "https://env.test")
	t.Setenv(EnvCredentials, "envtoken")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://env.test", cfg.APIRoot)
	assert.Equal(t, "envtoken", cfg.Credentials)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	var ce *errors.ConfigError
	assert.True(t, errors.As(err, &ce))
}

func TestLoadConfigLoggingEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("LOG_OUTPUT", "")

	cfg, err := LoadConfig(writeConfig(t, "{}\n"))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.EnvLogLevel)
	assert.Equal(t, "auto", cfg.LogFormat)
	assert.Equal(t, "stderr", cfg.LogOutput)
}

func TestUpdateFromFlags(t *testing.T) {
	cfg := &Config{Format: "json", LogLevel: "warn", RegistryFile: "a.yaml", Verbose: true}

	cfg.UpdateFromFlags(false, true, true, "", "", "")
	assert.False(t, cfg.Verbose)
	assert.True(t, cfg.Quiet)
	assert.True(t, cfg.NoColor)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "a.yaml", cfg.RegistryFile)

	cfg.UpdateFromFlags(false, false, false, "wide", "error", "b.yaml")
	assert.Equal(t, "wide", cfg.Format)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, "b.yaml", cfg.RegistryFile)
}

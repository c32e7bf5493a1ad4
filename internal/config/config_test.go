package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Server:   ServerConfig{Host: "0.0.0.0", Port: 8080},
		Storage:  StorageConfig{Driver: "memory"},
		Identity: IdentityConfig{Provider: "dev"},
		LLM:      LLMConfig{Model: "claude-sonnet-4-20250514", MaxTokens: 2000},
		Session:  SessionConfig{TTL: time.Hour, MaxSessions: 10},
	}
}

func TestLoad_EnvDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, ProviderDev, cfg.Identity.Provider)
	assert.Equal(t, "claude-sonnet-4-20250514", cfg.LLM.Model)
	assert.Equal(t, 2000, cfg.LLM.MaxTokens)
	assert.Equal(t, time.Hour, cfg.Session.TTL)
	assert.False(t, cfg.LLM.Enabled())
}

func TestLoad_YAMLWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
storage:
  driver: sqlite
  sqlite_path: /tmp/x.db
llm:
  max_tokens: 1500
`), 0o600))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("LLM_MAX_TOKENS", "1000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, 1000, cfg.LLM.MaxTokens)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{
			name:    "postgres without dsn",
			mutate:  func(c *Config) { c.Storage.Driver = "postgres" },
			wantErr: "storage.dsn",
		},
		{
			name:    "unknown driver",
			mutate:  func(c *Config) { c.Storage.Driver = "mongo" },
			wantErr: "storage.driver",
		},
		{
			name:    "local provider short secret",
			mutate:  func(c *Config) { c.Identity.Provider = "local"; c.Identity.LocalSecret = "short" },
			wantErr: "identity.local_secret",
		},
		{
			name:    "identitytoolkit without key",
			mutate:  func(c *Config) { c.Identity.Provider = "identitytoolkit"; c.Identity.BaseURL = "https://x" },
			wantErr: "identity.api_key",
		},
		{
			name:    "zero max tokens",
			mutate:  func(c *Config) { c.LLM.MaxTokens = 0 },
			wantErr: "llm.max_tokens",
		},
		{
			name:    "driver normalized",
			mutate:  func(c *Config) { c.Storage.Driver = " Memory " },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

package config

import (
	"fmt"
	"strings"
)

// Validate hace los chequeos cruzados entre secciones.
// Load lo llama automáticamente.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range (got %d)", c.Server.Port)
	}

	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	switch c.Storage.Driver {
	case DriverMemory:
	case DriverPostgres:
		if strings.TrimSpace(c.Storage.DSN) == "" {
			return fmt.Errorf("storage.dsn is required for driver %q", DriverPostgres)
		}
	case DriverSQLite:
		if strings.TrimSpace(c.Storage.SQLitePath) == "" {
			return fmt.Errorf("storage.sqlite_path is required for driver %q", DriverSQLite)
		}
	default:
		return fmt.Errorf("storage.driver must be one of memory|postgres|sqlite (got %q)", c.Storage.Driver)
	}

	c.Identity.Provider = strings.ToLower(strings.TrimSpace(c.Identity.Provider))
	switch c.Identity.Provider {
	case ProviderDev:
	case ProviderLocal:
		if len(c.Identity.LocalSecret) < 32 {
			return fmt.Errorf("identity.local_secret must be at least 32 characters (got %d)", len(c.Identity.LocalSecret))
		}
		if c.Identity.LocalTokenTTL <= 0 {
			return fmt.Errorf("identity.local_token_ttl must be > 0")
		}
	case ProviderIdentityToolkit:
		if strings.TrimSpace(c.Identity.APIKey) == "" {
			return fmt.Errorf("identity.api_key is required for provider %q", ProviderIdentityToolkit)
		}
		if strings.TrimSpace(c.Identity.BaseURL) == "" {
			return fmt.Errorf("identity.base_url is required for provider %q", ProviderIdentityToolkit)
		}
	default:
		return fmt.Errorf("identity.provider must be one of dev|local|identitytoolkit (got %q)", c.Identity.Provider)
	}

	if c.LLM.MaxTokens <= 0 {
		return fmt.Errorf("llm.max_tokens must be > 0 (got %d)", c.LLM.MaxTokens)
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		return fmt.Errorf("llm.model is required")
	}

	if c.Session.MaxSessions <= 0 {
		return fmt.Errorf("session.max_sessions must be > 0 (got %d)", c.Session.MaxSessions)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session.ttl must be > 0")
	}

	return nil
}

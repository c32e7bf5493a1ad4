package config

import (
	"fmt"
	"strings"
	"time"
)

// Config es la configuración raíz del servicio.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Storage  StorageConfig  `yaml:"storage"`
	Identity IdentityConfig `yaml:"identity"`
	LLM      LLMConfig      `yaml:"llm"`
	Session  SessionConfig  `yaml:"session"`
	CORS     CORSConfig     `yaml:"cors"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"PORT"                    env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"5s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"90s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// StorageConfig elige el adapter de repositorios.
// memory no persiste nada (dev/tests).
type StorageConfig struct {
	Driver          string        `yaml:"driver"             env:"STORAGE_DRIVER"             env-default:"memory"`
	DSN             string        `yaml:"dsn"                env:"DB_DSN"`
	SQLitePath      string        `yaml:"sqlite_path"        env:"SQLITE_PATH"                env-default:"./data/symptoms.db"`
	MaxOpenConns    int           `yaml:"max_open_conns"     env:"DB_MAX_OPEN_CONNS"          env-default:"10"`
	MaxIdleConns    int           `yaml:"max_idle_conns"     env:"DB_MAX_IDLE_CONNS"          env-default:"5"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time" env:"DB_CONN_MAX_IDLE_TIME"      env-default:"5m"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"  env:"DB_CONN_MAX_LIFETIME"       env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DB_AUTO_MIGRATE"            env-default:"true"`
}

const (
	ProviderDev             = "dev"
	ProviderLocal           = "local"
	ProviderIdentityToolkit = "identitytoolkit"
)

// IdentityConfig configura el proveedor de identidad.
// dev: sin verifier, se acepta X-Debug-User-ID.
type IdentityConfig struct {
	Provider      string        `yaml:"provider"        env:"IDENTITY_PROVIDER"        env-default:"dev"`
	APIKey        string        `yaml:"api_key"         env:"IDENTITY_API_KEY"`
	BaseURL       string        `yaml:"base_url"        env:"IDENTITY_BASE_URL"        env-default:"https://identitytoolkit.googleapis.com/v1"`
	Timeout       time.Duration `yaml:"timeout"         env:"IDENTITY_TIMEOUT"         env-default:"5s"`
	LocalSecret   string        `yaml:"local_secret"    env:"IDENTITY_LOCAL_SECRET"`
	LocalTokenTTL time.Duration `yaml:"local_token_ttl" env:"IDENTITY_LOCAL_TOKEN_TTL" env-default:"1h"`
}

type LLMConfig struct {
	APIKey    string        `yaml:"api_key"    env:"ANTHROPIC_API_KEY"`
	Model     string        `yaml:"model"      env:"LLM_MODEL"      env-default:"claude-sonnet-4-20250514"`
	MaxTokens int           `yaml:"max_tokens" env:"LLM_MAX_TOKENS" env-default:"2000"`
	Timeout   time.Duration `yaml:"timeout"    env:"LLM_TIMEOUT"    env-default:"60s"`
}

// Enabled indica si hay API key; sin ella el análisis IA responde con error.
func (c LLMConfig) Enabled() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

type SessionConfig struct {
	TTL         time.Duration `yaml:"ttl"          env:"SESSION_TTL"          env-default:"1h"`
	MaxSessions int           `yaml:"max_sessions" env:"SESSION_MAX_SESSIONS" env-default:"10000"`
}

type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type,X-Debug-User-ID"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
	App    string `yaml:"app"    env:"APP_NAME"   env-default:"symptom-tracker"`
}

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar points at an optional YAML file layered under the
// environment.
const ConfigPathEnvVar = "REELSTATE_CONFIG"

type Config struct {
	Mongo    MongoConfig    `koanf:"mongodb"`
	Server   ServerConfig   `koanf:"server"`
	Auth     AuthConfig     `koanf:"auth"`
	Logging  LoggingConfig  `koanf:"log"`
	Security SecurityConfig `koanf:"security"`
}

type MongoConfig struct {
	URI      string `koanf:"uri" validate:"required"`
	Database string `koanf:"db" validate:"required"`
}

type ServerConfig struct {
	Addr            string        `koanf:"addr" validate:"required"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

type AuthConfig struct {
	Secret          string        `koanf:"secret" validate:"required,min=16"`
	TokenTTL        time.Duration `koanf:"token_ttl" validate:"gt=0"`
	SessionCacheTTL time.Duration `koanf:"session_cache_ttl" validate:"gte=0"`
}

type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	File   string `koanf:"file"`
}

type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitRequests int           `koanf:"rate_limit_requests" validate:"gte=0"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window" validate:"gt=0"`
}

func defaultConfig() Config {
	return Config{
		Mongo: MongoConfig{Database: "reelstate"},
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Auth: AuthConfig{
			TokenTTL:        time.Hour,
			SessionCacheTTL: 30 * time.Second,
		},
		Logging: LoggingConfig{Level: "info", Format: "json"},
		Security: SecurityConfig{
			RateLimitRequests: 300,
			RateLimitWindow:   time.Minute,
		},
	}
}

// envMappings keeps the flat variable names the deployment already uses.
var envMappings = map[string]string{
	"mongodb_uri":         "mongodb.uri",
	"mongodb_db":          "mongodb.db",
	"http_addr":           "server.addr",
	"shutdown_timeout":    "server.shutdown_timeout",
	"jwt_secret":          "auth.secret",
	"token_ttl":           "auth.token_ttl",
	"session_cache_ttl":   "auth.session_cache_ttl",
	"log_level":           "log.level",
	"log_format":          "log.format",
	"log_file":            "log.file",
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_requests",
	"rate_limit_window":   "security.rate_limit_window",
}

func envTransform(key string) string {
	if path, ok := envMappings[strings.ToLower(key)]; ok {
		return path
	}
	return ""
}

// Load reads .env, then layers defaults, the optional YAML file and the
// environment, and validates the result.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if raw, ok := k.Get("security.cors_origins").(string); ok {
		if err := k.Set("security.cors_origins", splitList(raw)); err != nil {
			return nil, fmt.Errorf("failed to set cors origins: %w", err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

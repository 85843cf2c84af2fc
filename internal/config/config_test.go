package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Environment overrides defaults", func(t *testing.T) {
		t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
		t.Setenv("JWT_SECRET", "a-very-long-test-secret")
		t.Setenv("HTTP_ADDR", ":9090")
		t.Setenv("TOKEN_TTL", "2h")
		t.Setenv("CORS_ORIGINS", "http://localhost:5173, https://reel.example ")

		cfg, err := Load()
		require.NoError(t, err)

		require.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
		require.Equal(t, "reelstate", cfg.Mongo.Database)
		require.Equal(t, ":9090", cfg.Server.Addr)
		require.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
		require.Equal(t, 30*time.Second, cfg.Auth.SessionCacheTTL)
		require.Equal(t, []string{"http://localhost:5173", "https://reel.example"}, cfg.Security.CORSOrigins)
	})

	t.Run("Missing Mongo URI fails validation", func(t *testing.T) {
		t.Setenv("MONGODB_URI", "")
		t.Setenv("JWT_SECRET", "a-very-long-test-secret")

		_, err := Load()
		require.Error(t, err)
		require.Contains(t, err.Error(), "configuration validation failed")
	})

	t.Run("Short secrets are rejected", func(t *testing.T) {
		t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
		t.Setenv("JWT_SECRET", "short")

		_, err := Load()
		require.Error(t, err)
	})

	t.Run("YAML file sits between defaults and environment", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "reelstate.yaml")
		content := []byte("mongodb:\n  db: fromfile\nlog:\n  level: debug\n")
		require.NoError(t, os.WriteFile(path, content, 0o600))

		t.Setenv(ConfigPathEnvVar, path)
		t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
		t.Setenv("JWT_SECRET", "a-very-long-test-secret")
		t.Setenv("LOG_LEVEL", "warn")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, "fromfile", cfg.Mongo.Database)
		require.Equal(t, "warn", cfg.Logging.Level)
	})
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable Load looks at so that the host environment does not leak into tests.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "MONGODB_URI", "MONGODB_DATABASE", "MONGODB_MOVIES_COLLECTION",
		"DATABASE_URL", "SQLITE_PATH", "RUN_MIGRATIONS", "JWT_SECRET", "JWT_TTL",
		"REDIS_ADDR", "REDIS_PASSWORD", "CACHE_TTL", "CACHE_NAMESPACE",
		"AUTH_RATE_LIMIT_PER_MINUTE", "RATE_LIMIT_NAMESPACE", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sample_mflix", cfg.MongoDatabase)
	assert.Equal(t, "movies", cfg.MoviesCollection)
	assert.Equal(t, "./users.db", cfg.SQLitePath)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 20, cfg.AuthRateLimitPerMinute)
	assert.True(t, cfg.RunMigrations)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
port: "9000"
mongoURI: mongodb://file:27017
jwtSecret: from-file
cacheTTL: 30s
authRateLimitPerMinute: 5
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("JWT_TTL", "2h")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "mongodb://file:27017", cfg.MongoURI)
	assert.Equal(t, "from-env", cfg.JWTSecret, "environment must override the file")
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, 5, cfg.AuthRateLimitPerMinute)
}

func TestLoad_InvalidEnv(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad jwt ttl", "JWT_TTL", "forever"},
		{"bad cache ttl", "CACHE_TTL", "soon"},
		{"bad rate limit", "AUTH_RATE_LIMIT_PER_MINUTE", "many"},
		{"bad migrations flag", "RUN_MIGRATIONS", "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load("")
			assert.ErrorContains(t, err, tt.key)
		})
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: [unclosed"), 0o600))

	_, err := Load(path)
	assert.ErrorContains(t, err, "parse config")
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	valid := Default()
	valid.MongoURI = "mongodb://localhost:27017"
	valid.JWTSecret = "secret"

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing mongo uri", func(c *Config) { c.MongoURI = "" }, "MONGODB_URI"},
		{"missing jwt secret", func(c *Config) { c.JWTSecret = "" }, "JWT_SECRET"},
		{"non-positive ttl", func(c *Config) { c.JWTTTL = 0 }, "JWT_TTL"},
		{"negative rate limit", func(c *Config) { c.AuthRateLimitPerMinute = -1 }, "AUTH_RATE_LIMIT_PER_MINUTE"},
		{"non-numeric port", func(c *Config) { c.Port = "http" }, "PORT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

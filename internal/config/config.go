// Package config loads the process-wide server configuration.
// Values come from an optional YAML file and are overridden by environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultPort               = "8080"
	defaultMongoDatabase      = "sample_mflix"
	defaultSQLitePath         = "./users.db"
	defaultJWTTTL             = 24 * time.Hour
	defaultCacheTTL           = 5 * time.Minute
	defaultAuthRateLimit      = 20
	defaultLogLevel           = "info"
	defaultLogFormat          = "json"
	defaultMoviesCollection   = "movies"
	defaultCacheNamespace     = "movies"
	defaultRateLimitNamespace = "ratelimit"
)

// Config holds every setting the server needs. It is built once in main and
// passed explicitly to the components that need it.
type Config struct {
	Port string `yaml:"port"`

	MongoURI         string `yaml:"mongoURI"`
	MongoDatabase    string `yaml:"mongoDatabase"`
	MoviesCollection string `yaml:"moviesCollection"`

	// DatabaseURL is the Postgres DSN for the user table. SQLitePath is used when it is empty.
	DatabaseURL   string `yaml:"databaseURL"`
	SQLitePath    string `yaml:"sqlitePath"`
	RunMigrations bool   `yaml:"runMigrations"`

	JWTSecret string        `yaml:"jwtSecret"`
	JWTTTL    time.Duration `yaml:"jwtTTL"`

	RedisAddr      string        `yaml:"redisAddr"`
	RedisPassword  string        `yaml:"redisPassword"`
	CacheTTL       time.Duration `yaml:"cacheTTL"`
	CacheNamespace string        `yaml:"cacheNamespace"`

	AuthRateLimitPerMinute int    `yaml:"authRateLimitPerMinute"`
	RateLimitNamespace     string `yaml:"rateLimitNamespace"`

	LogLevel  string `yaml:"logLevel"`
	LogFormat string `yaml:"logFormat"`
}

// Default returns a Config populated with default values.
func Default() Config {
	return Config{
		Port:                   defaultPort,
		MongoDatabase:          defaultMongoDatabase,
		MoviesCollection:       defaultMoviesCollection,
		SQLitePath:             defaultSQLitePath,
		RunMigrations:          true,
		JWTTTL:                 defaultJWTTTL,
		CacheTTL:               defaultCacheTTL,
		CacheNamespace:         defaultCacheNamespace,
		AuthRateLimitPerMinute: defaultAuthRateLimit,
		RateLimitNamespace:     defaultRateLimitNamespace,
		LogLevel:               defaultLogLevel,
		LogFormat:              defaultLogFormat,
	}
}

// Load reads the YAML file at path (if any) and applies environment overrides.
// A missing file is not an error; the defaults and the environment are used instead.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config: %w", err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return cfg, fmt.Errorf("read config: %w", err)
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Port, "PORT")
	setString(&cfg.MongoURI, "MONGODB_URI")
	setString(&cfg.MongoDatabase, "MONGODB_DATABASE")
	setString(&cfg.MoviesCollection, "MONGODB_MOVIES_COLLECTION")
	setString(&cfg.DatabaseURL, "DATABASE_URL")
	setString(&cfg.SQLitePath, "SQLITE_PATH")
	setString(&cfg.JWTSecret, "JWT_SECRET")
	setString(&cfg.RedisAddr, "REDIS_ADDR")
	setString(&cfg.RedisPassword, "REDIS_PASSWORD")
	setString(&cfg.CacheNamespace, "CACHE_NAMESPACE")
	setString(&cfg.RateLimitNamespace, "RATE_LIMIT_NAMESPACE")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.LogFormat, "LOG_FORMAT")

	if v, ok := lookup("RUN_MIGRATIONS"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("RUN_MIGRATIONS: %w", err)
		}
		cfg.RunMigrations = b
	}
	if v, ok := lookup("JWT_TTL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("JWT_TTL: %w", err)
		}
		cfg.JWTTTL = d
	}
	if v, ok := lookup("CACHE_TTL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("CACHE_TTL: %w", err)
		}
		cfg.CacheTTL = d
	}
	if v, ok := lookup("AUTH_RATE_LIMIT_PER_MINUTE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("AUTH_RATE_LIMIT_PER_MINUTE: %w", err)
		}
		cfg.AuthRateLimitPerMinute = n
	}
	return nil
}

// Validate reports the first missing or invalid setting.
func (c Config) Validate() error {
	if c.MongoURI == "" {
		return errors.New("MONGODB_URI is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.JWTTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	if c.AuthRateLimitPerMinute < 0 {
		return errors.New("AUTH_RATE_LIMIT_PER_MINUTE must not be negative")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be numeric: %w", err)
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func setString(dst *string, key string) {
	if v, ok := lookup(key); ok {
		*dst = v
	}
}

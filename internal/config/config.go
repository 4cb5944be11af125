// Package config loads planner settings from defaults, an optional TOML
// file, a .env file and the process environment, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

type Config struct {
	Port      string `toml:"port"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
	Timezone  string `toml:"timezone"`

	Store    StoreConfig    `toml:"store"`
	Postgres PostgresConfig `toml:"postgres"`
	Redis    RedisConfig    `toml:"redis"`
	Auth     AuthConfig     `toml:"auth"`

	RateLimit         int           `toml:"rate_limit"`
	RateWindow        time.Duration `toml:"rate_window"`
	ReconcileInterval time.Duration `toml:"reconcile_interval"`
}

type StoreConfig struct {
	// Driver is one of memory, sqlite, postgres or redis.
	Driver     string        `toml:"driver"`
	SQLitePath string        `toml:"sqlite_path"`
	BlobTable  string        `toml:"blob_table"`
	CacheTTL   time.Duration `toml:"cache_ttl"`
}

type PostgresConfig struct {
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Name     string `toml:"name"`
}

func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		p.User, p.Password, p.Host, p.Port, p.Name)
}

type RedisConfig struct {
	Host      string `toml:"host"`
	Port      string `toml:"port"`
	Password  string `toml:"password"`
	DB        int    `toml:"db"`
	KeyPrefix string `toml:"key_prefix"`
}

// Enabled reports whether a Redis server is configured.
func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

type AuthConfig struct {
	JWTSecret         string        `toml:"jwt_secret"`
	JWTIssuer         string        `toml:"jwt_issuer"`
	TokenTTL          time.Duration `toml:"token_ttl"`
	OwnerPasswordHash string        `toml:"owner_password_hash"`
}

func Default() *Config {
	return &Config{
		Port:      "8080",
		LogLevel:  "info",
		LogFormat: "text",
		Store: StoreConfig{
			Driver:     DriverSQLite,
			SQLitePath: "planner.db",
			BlobTable:  "planner_blobs",
			CacheTTL:   30 * time.Minute,
		},
		Postgres: PostgresConfig{
			Host: "localhost",
			Port: "5432",
			User: "kanso_user",
			Name: "kanso_db",
		},
		Redis: RedisConfig{
			Port:      "6379",
			KeyPrefix: "planner:",
		},
		Auth: AuthConfig{
			JWTIssuer: "kanso-planner",
			TokenTTL:  7 * 24 * time.Hour,
		},
		RateLimit:         100,
		RateWindow:        time.Minute,
		ReconcileInterval: 5 * time.Minute,
	}
}

// Load builds the configuration. tomlPath may be empty; PLANNER_CONFIG is
// consulted in that case. envFile is loaded if it exists.
func Load(tomlPath, envFile string) (*Config, error) {
	cfg := Default()

	if tomlPath == "" {
		tomlPath = os.Getenv("PLANNER_CONFIG")
	}
	if tomlPath != "" {
		if _, err := toml.DecodeFile(tomlPath, cfg); err != nil {
			return nil, fmt.Errorf("config: decode %s: %w", tomlPath, err)
		}
	}

	fileEnv := map[string]string{}
	if envFile != "" {
		vars, err := godotenv.Read(envFile)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", envFile, err)
		}
		if vars != nil {
			fileEnv = vars
		}
	}

	// Process environment wins over the .env file.
	lookup := func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fileEnv[key]
	}

	if err := applyEnv(cfg, lookup); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, lookup func(string) string) error {
	str := func(key string, dst *string) {
		if v := lookup(key); v != "" {
			*dst = v
		}
	}
	var errs []error
	num := func(key string, dst *int) {
		v := lookup(key)
		if v == "" {
			return
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("config: %s: %w", key, err))
			return
		}
		*dst = n
	}
	dur := func(key string, dst *time.Duration) {
		v := lookup(key)
		if v == "" {
			return
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("config: %s: %w", key, err))
			return
		}
		*dst = d
	}

	str("PORT", &cfg.Port)
	str("LOG_LEVEL", &cfg.LogLevel)
	str("LOG_FORMAT", &cfg.LogFormat)
	str("TIMEZONE", &cfg.Timezone)

	str("STORE_DRIVER", &cfg.Store.Driver)
	str("SQLITE_PATH", &cfg.Store.SQLitePath)
	str("BLOB_TABLE", &cfg.Store.BlobTable)
	dur("CACHE_TTL", &cfg.Store.CacheTTL)

	str("DB_HOST", &cfg.Postgres.Host)
	str("DB_PORT", &cfg.Postgres.Port)
	str("DB_USER", &cfg.Postgres.User)
	str("DB_PASSWORD", &cfg.Postgres.Password)
	str("DB_NAME", &cfg.Postgres.Name)

	str("REDIS_HOST", &cfg.Redis.Host)
	str("REDIS_PORT", &cfg.Redis.Port)
	str("REDIS_PASSWORD", &cfg.Redis.Password)
	num("REDIS_DB", &cfg.Redis.DB)
	str("REDIS_KEY_PREFIX", &cfg.Redis.KeyPrefix)

	str("JWT_SECRET", &cfg.Auth.JWTSecret)
	str("JWT_ISSUER", &cfg.Auth.JWTIssuer)
	dur("TOKEN_TTL", &cfg.Auth.TokenTTL)
	str("OWNER_PASSWORD_HASH", &cfg.Auth.OwnerPasswordHash)

	num("RATE_LIMIT", &cfg.RateLimit)
	dur("RATE_WINDOW", &cfg.RateWindow)
	dur("RECONCILE_INTERVAL", &cfg.ReconcileInterval)

	return errors.Join(errs...)
}

func (c *Config) Validate() error {
	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))

	switch c.Store.Driver {
	case DriverMemory:
	case DriverSQLite:
		if c.Store.SQLitePath == "" {
			return errors.New("config: sqlite driver requires SQLITE_PATH")
		}
	case DriverPostgres:
		if c.Postgres.Host == "" || c.Postgres.Name == "" {
			return errors.New("config: postgres driver requires DB_HOST and DB_NAME")
		}
		if c.Store.BlobTable == "" {
			return errors.New("config: postgres driver requires BLOB_TABLE")
		}
	case DriverRedis:
		if !c.Redis.Enabled() {
			return errors.New("config: redis driver requires REDIS_HOST")
		}
	default:
		return fmt.Errorf("config: unknown store driver %q", c.Store.Driver)
	}

	if c.Auth.OwnerPasswordHash != "" && c.Auth.JWTSecret == "" {
		return errors.New("config: OWNER_PASSWORD_HASH requires JWT_SECRET")
	}

	if _, err := c.Location(); err != nil {
		return fmt.Errorf("config: timezone: %w", err)
	}
	return nil
}

// Location resolves Timezone, defaulting to the local zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

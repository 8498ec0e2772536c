// Package config reads server settings from the environment, with an
// optional .env file filling in anything the environment leaves unset.
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvAddr           = "SHUTTLE_ADDR"
	EnvDBPath         = "SHUTTLE_DB_PATH"
	EnvEnv            = "SHUTTLE_ENV"
	EnvCSRFKey        = "SHUTTLE_CSRF_KEY"
	EnvTrustedOrigins = "SHUTTLE_TRUSTED_ORIGINS"
	EnvRateLimit      = "SHUTTLE_RATE_LIMIT"
	EnvRateBurst      = "SHUTTLE_RATE_BURST"
	EnvSlowQueryMs    = "SHUTTLE_SLOW_QUERY_MS"
	EnvSlowRequestMs  = "SHUTTLE_SLOW_REQUEST_MS"
	EnvLogLevel       = "SHUTTLE_LOG_LEVEL"
)

// Production is the SHUTTLE_ENV value that turns on strict checks.
const Production = "production"

var (
	ErrMissingCSRFKey = errors.New("SHUTTLE_CSRF_KEY is required in production")
	ErrInvalidCSRFKey = errors.New("SHUTTLE_CSRF_KEY must be 64 hex characters")
)

// Config holds everything the server needs at startup.
type Config struct {
	Addr               string
	DBPath             string
	Env                string
	CSRFKey            []byte
	TrustedOrigins     []string
	RateLimitPerMinute int
	RateLimitBurst     int
	SlowQuery          time.Duration
	SlowRequest        time.Duration
	LogLevel           slog.Level
}

// IsProduction reports whether the server runs with production settings.
func (c Config) IsProduction() bool {
	return c.Env == Production
}

// Load reads the process environment, falling back to values in envFile.
// A missing envFile is not an error.
// PRE: none
// POST: Returns a complete Config or the first invalid setting
func Load(envFile string) (Config, error) {
	fileVals := map[string]string{}
	if envFile != "" {
		vals, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			fileVals = vals
		case errors.Is(err, fs.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("read %s: %w", envFile, err)
		}
	}
	return FromEnv(func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return fileVals[key]
	})
}

// FromEnv builds a Config from getenv, applying defaults for unset keys.
func FromEnv(getenv func(string) string) (Config, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	cfg := Config{
		Addr:   get(EnvAddr, ":8080"),
		DBPath: get(EnvDBPath, "shuttle.db"),
		Env:    get(EnvEnv, "development"),
	}

	var err error
	if cfg.RateLimitPerMinute, err = positiveInt(EnvRateLimit, get(EnvRateLimit, "120")); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitBurst, err = positiveInt(EnvRateBurst, get(EnvRateBurst, "20")); err != nil {
		return Config{}, err
	}
	ms, err := positiveInt(EnvSlowQueryMs, get(EnvSlowQueryMs, "50"))
	if err != nil {
		return Config{}, err
	}
	cfg.SlowQuery = time.Duration(ms) * time.Millisecond
	if ms, err = positiveInt(EnvSlowRequestMs, get(EnvSlowRequestMs, "200")); err != nil {
		return Config{}, err
	}
	cfg.SlowRequest = time.Duration(ms) * time.Millisecond

	if err := cfg.LogLevel.UnmarshalText([]byte(get(EnvLogLevel, "info"))); err != nil {
		return Config{}, fmt.Errorf("%s: %w", EnvLogLevel, err)
	}

	origins := get(EnvTrustedOrigins, "localhost:8080,127.0.0.1:8080")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.TrustedOrigins = append(cfg.TrustedOrigins, o)
		}
	}

	if cfg.CSRFKey, err = csrfKey(get(EnvCSRFKey, ""), cfg.IsProduction()); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func csrfKey(v string, production bool) ([]byte, error) {
	if v == "" {
		if production {
			return nil, ErrMissingCSRFKey
		}
		slog.Warn("csrf_key_generated", "reason", EnvCSRFKey+" not set; tokens will not survive a restart")
		return securecookie.GenerateRandomKey(32), nil
	}
	key, err := hex.DecodeString(v)
	if err != nil || len(key) != 32 {
		return nil, ErrInvalidCSRFKey
	}
	return key, nil
}

func positiveInt(key, v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, v)
	}
	return n, nil
}

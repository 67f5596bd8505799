package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string

	// Persistence backend: "file" (default) or "redis".
	StoreBackend string
	DataDir      string
	RedisAddr    string
	RedisDB      int
	RedisPass    string

	// SessionRestore keeps the active session across restarts; disable to
	// force a fresh login on every start.
	SessionRestore bool
	// EmailCaseInsensitive folds email comparison at registration and
	// login. Historical behavior is exact matching, so this defaults off.
	EmailCaseInsensitive bool
	// PasswordScheme: "bcrypt" (default) or "legacy" (the old reversible
	// base64 transform, kept only for pre-existing user lists).
	PasswordScheme string

	NotifyTTL time.Duration
	LoginRPS  int

	// Seeder settings.
	FixturesPath string
	SeedWorkers  int
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	boolean := func(k string, def bool) bool {
		if v := os.Getenv(k); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				return b
			}
		}
		return def
	}
	c := Config{
		AppEnv:               env("APP_ENV", "prod"),
		HTTPAddr:             env("HTTP_ADDR", ":8080"),
		MetricsAddr:          env("METRICS_ADDR", ":9100"),
		StoreBackend:         env("STORE_BACKEND", "file"),
		DataDir:              env("DATA_DIR", "./data"),
		RedisAddr:            env("REDIS_ADDR", "localhost:6379"),
		RedisDB:              atoi("REDIS_DB", 0),
		RedisPass:            env("REDIS_PASSWORD", ""),
		SessionRestore:       boolean("SESSION_RESTORE", true),
		EmailCaseInsensitive: boolean("EMAIL_CASE_INSENSITIVE", false),
		PasswordScheme:       env("PASSWORD_SCHEME", "bcrypt"),
		NotifyTTL:            time.Duration(atoi("NOTIFY_TTL_SECONDS", 5)) * time.Second,
		LoginRPS:             atoi("LOGIN_RPS", 5),
		FixturesPath:         env("FIXTURES_PATH", "./fixtures/hotels.json"),
		SeedWorkers:          atoi("SEED_WORKERS", 8),
	}
	if c.StoreBackend != "file" && c.StoreBackend != "redis" {
		log.Warn().Str("backend", c.StoreBackend).Msg("unknown STORE_BACKEND, falling back to file")
		c.StoreBackend = "file"
	}
	if c.PasswordScheme == "legacy" {
		log.Warn().Msg("PASSWORD_SCHEME=legacy is a reversible encoding, not a secure hash")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

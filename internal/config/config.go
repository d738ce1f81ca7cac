package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// defaultTokenSecret is only acceptable for local development. Startup logs
// a warning when it is in use.
const defaultTokenSecret = "SIRA_SECRET_KEY_SUPER_SECRETA_PARA_DESARROLLO"

// Config holds the process configuration, read once at startup.
type Config struct {
	Port        string
	DatabaseURL string
	TokenSecret string
	TokenTTL    time.Duration
	Seed        bool

	// DefaultSecret reports that TokenSecret fell back to the built-in
	// development value.
	DefaultSecret bool
}

// Load reads .env (if present) and the environment. DATABASE_URL is
// mandatory: without it the process must refuse to start.
func Load() (Config, error) {
	// Ignore a missing .env; plain environment variables are enough.
	_ = godotenv.Load()

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		Port:        get("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		TokenSecret: get("TOKEN_SECRET", defaultTokenSecret),
		Seed:        get("SEED", "false") == "true",
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is not set")
	}
	cfg.DefaultSecret = cfg.TokenSecret == defaultTokenSecret

	ttlMinutes := 30
	if v := os.Getenv("TOKEN_TTL_MINUTES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, errors.New("TOKEN_TTL_MINUTES must be a positive integer")
		}
		ttlMinutes = n
	}
	cfg.TokenTTL = time.Duration(ttlMinutes) * time.Minute

	return cfg, nil
}

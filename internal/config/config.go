package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries the environment-derived defaults for both phases. Command
// line flags override these.
type Config struct {
	ProxyURL string
	Headless bool
	Timeout  time.Duration

	// Jitter bounds for the politeness delay applied before navigations.
	MinDelay time.Duration
	MaxDelay time.Duration
}

// Load reads .env (if present) and the LEADGRAB_* environment variables.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		ProxyURL: os.Getenv("LEADGRAB_PROXY"),
		Headless: envBool("LEADGRAB_HEADLESS", true),
		Timeout:  envDuration("LEADGRAB_TIMEOUT", 20*time.Second),
		MinDelay: envDuration("LEADGRAB_MIN_DELAY", 2*time.Second),
		MaxDelay: envDuration("LEADGRAB_MAX_DELAY", 5*time.Second),
	}
	if cfg.MaxDelay < cfg.MinDelay {
		cfg.MaxDelay = cfg.MinDelay
	}
	return cfg
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

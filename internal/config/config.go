package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Env      string
	Addr     string
	DBDSN    string
	LogLevel string

	// PopularDefault is the number of films returned by the popular listing
	// when the request does not specify a count.
	PopularDefault int

	RateLimitRPS   float64
	RateLimitBurst int

	ShutdownTimeout time.Duration
}

// Load reads the optional dotenv file named by APP_ENV_FILE (default .env)
// and then the process environment. Variables already set win over the file.
func Load() (Config, error) {
	path := os.Getenv("APP_ENV_FILE")
	if path == "" {
		path = ".env"
	}
	if err := loadDotEnvFile(path, os.Setenv, os.Getenv); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("APP_ENV_FILE: %w", err)
	}
	return LoadFromEnv(os.Getenv)
}

func LoadFromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Env:      getenv("APP_ENV"),
		Addr:     getenv("APP_ADDR"),
		DBDSN:    getenv("APP_DB_DSN"),
		LogLevel: getenv("APP_LOG_LEVEL"),
	}

	if cfg.Env == "" {
		cfg.Env = "dev"
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8080"
	}

	switch cfg.Env {
	case "dev", "prod", "test":
	default:
		return Config{}, errors.New("APP_ENV: must be one of dev, test, prod")
	}

	var err error
	if cfg.PopularDefault, err = intVar(getenv, "APP_POPULAR_DEFAULT", 10); err != nil {
		return Config{}, err
	}
	if cfg.PopularDefault <= 0 {
		return Config{}, errors.New("APP_POPULAR_DEFAULT: must be > 0")
	}

	if raw := strings.TrimSpace(getenv("APP_RATE_LIMIT_RPS")); raw != "" {
		rps, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Config{}, fmt.Errorf("APP_RATE_LIMIT_RPS: %w", err)
		}
		if rps < 0 {
			return Config{}, errors.New("APP_RATE_LIMIT_RPS: must be >= 0")
		}
		cfg.RateLimitRPS = rps
	}
	if cfg.RateLimitBurst, err = intVar(getenv, "APP_RATE_LIMIT_BURST", 20); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitBurst <= 0 {
		return Config{}, errors.New("APP_RATE_LIMIT_BURST: must be > 0")
	}

	timeoutRaw := getenv("APP_SHUTDOWN_TIMEOUT")
	if timeoutRaw == "" {
		cfg.ShutdownTimeout = 10 * time.Second
	} else {
		d, err := time.ParseDuration(timeoutRaw)
		if err != nil {
			return Config{}, fmt.Errorf("APP_SHUTDOWN_TIMEOUT: %w", err)
		}
		if d <= 0 {
			return Config{}, errors.New("APP_SHUTDOWN_TIMEOUT: must be > 0")
		}
		cfg.ShutdownTimeout = d
	}

	if cfg.IsProd() && cfg.DBDSN == "" {
		return Config{}, errors.New("APP_DB_DSN: required in prod")
	}

	return cfg, nil
}

func (c Config) IsProd() bool { return c.Env == "prod" }

func intVar(getenv func(string) string, name string, def int) (int, error) {
	raw := strings.TrimSpace(getenv(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return n, nil
}

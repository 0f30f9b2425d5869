package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"rpimon-api/models"
)

// Config holds the API server settings
type Config struct {
	ListenAddr     string        `yaml:"listen_addr"`
	LogLevel       string        `yaml:"log_level"`
	LogDevelopment bool          `yaml:"log_development"`
	ProcRoot       string        `yaml:"proc_root"`
	CollectTimeout time.Duration `yaml:"collect_timeout"`
	DefaultUnit    string        `yaml:"default_unit"`
	GinMode        string        `yaml:"gin_mode"`

	// EnvFileLoaded is set when a .env file was found.
	EnvFileLoaded bool `yaml:"-"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		ListenAddr:     ":8000",
		LogLevel:       "info",
		ProcRoot:       "/",
		CollectTimeout: 5 * time.Second,
		DefaultUnit:    models.DefaultUnit,
		GinMode:        "release",
	}
}

// Load reads settings from defaults, then the optional YAML file at path,
// then .env and the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	// A missing .env is fine, plain environment variables still apply
	if err := godotenv.Load(); err == nil {
		cfg.EnvFileLoaded = true
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg.ListenAddr = getEnv("RPIMON_LISTEN_ADDR", cfg.ListenAddr)
	cfg.LogLevel = getEnv("RPIMON_LOG_LEVEL", cfg.LogLevel)
	cfg.ProcRoot = getEnv("RPIMON_PROC_ROOT", cfg.ProcRoot)
	cfg.DefaultUnit = getEnv("RPIMON_DEFAULT_UNIT", cfg.DefaultUnit)
	cfg.GinMode = getEnv("RPIMON_GIN_MODE", cfg.GinMode)

	if dev, err := strconv.ParseBool(os.Getenv("RPIMON_LOG_DEV")); err == nil {
		cfg.LogDevelopment = dev
	}

	// Bad or non-positive timeouts keep the previous value
	if secs, err := strconv.Atoi(os.Getenv("RPIMON_COLLECT_TIMEOUT_SECONDS")); err == nil && secs >= 1 {
		cfg.CollectTimeout = time.Duration(secs) * time.Second
	}

	return cfg, nil
}

// Validate checks the settings after every source has been applied.
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return errors.New("listen address required")
	}
	if c.CollectTimeout <= 0 {
		return fmt.Errorf("collect timeout must be positive, got %v", c.CollectTimeout)
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("unknown gin mode %q", c.GinMode)
	}
	if !models.ValidUnit(c.DefaultUnit) {
		return fmt.Errorf("unknown default unit %q, want one of %v", c.DefaultUnit, models.Units)
	}
	return nil
}

// getEnv returns the variable or the fallback when unset
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

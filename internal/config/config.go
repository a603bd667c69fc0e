// Package config provides environment-driven configuration for searchviz.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"searchviz/internal/animate"
)

// Config holds all application configuration values.
type Config struct {
	Port       string
	ListenHost string
	LogLevel   string
	LogFile    string
	GraphFile  string

	StepDelay  time.Duration
	GroupDelay time.Duration
	GroupSize  int
	PathDelay  time.Duration
}

// Load reads configuration from environment variables with sensible
// defaults. A .env file in the working directory is read first if present;
// variables already set in the environment win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		Port:       envOrDefault("SEARCHVIZ_PORT", "8080"),
		ListenHost: envOrDefault("SEARCHVIZ_HOST", "localhost"),
		LogLevel:   envOrDefault("SEARCHVIZ_LOG_LEVEL", "info"),
		LogFile:    envOrDefault("SEARCHVIZ_LOG_FILE", ""),
		GraphFile:  envOrDefault("SEARCHVIZ_GRAPH", ""),
	}

	def := animate.DefaultPacing()
	var err error
	if cfg.StepDelay, err = envDuration("SEARCHVIZ_STEP_DELAY", def.Step); err != nil {
		return nil, err
	}
	if cfg.GroupDelay, err = envDuration("SEARCHVIZ_GROUP_DELAY", def.GroupPause); err != nil {
		return nil, err
	}
	if cfg.PathDelay, err = envDuration("SEARCHVIZ_PATH_DELAY", def.PathStep); err != nil {
		return nil, err
	}
	cfg.GroupSize, err = strconv.Atoi(envOrDefault("SEARCHVIZ_GROUP_SIZE", strconv.Itoa(def.GroupSize)))
	if err != nil {
		return nil, fmt.Errorf("SEARCHVIZ_GROUP_SIZE must be an integer")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// Validate checks values after flags have been applied.
func (c *Config) Validate() error {
	if c.StepDelay <= 0 || c.GroupDelay <= 0 || c.PathDelay <= 0 {
		return fmt.Errorf("animation delays must be positive")
	}
	if c.GroupSize < 1 {
		return fmt.Errorf("group size must be at least 1, got %d", c.GroupSize)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %q", c.Port)
	}
	return nil
}

// Addr returns the listen address in host:port format.
func (c *Config) Addr() string {
	return c.ListenHost + ":" + c.Port
}

// Pacing returns the animation pacing.
func (c *Config) Pacing() animate.Pacing {
	return animate.Pacing{
		Step:       c.StepDelay,
		GroupPause: c.GroupDelay,
		GroupSize:  c.GroupSize,
		PathStep:   c.PathDelay,
	}
}

func envOrDefault(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := envOrDefault(key, "")
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration like 500ms: %w", key, err)
	}
	return d, nil
}

// Package config holds runtime settings shared by the command-line tools.
//
// Settings come from, in increasing priority: built-in defaults, a .env file,
// environment variables and command-line flags. Flags are applied by each
// command after Load returns.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/ironsheep/contour-tools/internal/imaging"
)

// DefaultEnvFile is the .env file read by Load when it exists.
const DefaultEnvFile = ".env"

// Environment variable names.
const (
	EnvThreshold        = "CONTOUR_THRESHOLD"
	EnvBlur             = "CONTOUR_BLUR"
	EnvOutputDir        = "CONTOUR_OUTPUT_DIR"
	EnvBackend          = "CONTOUR_BACKEND"
	EnvDB               = "CONTOUR_DB"
	EnvLogLevel         = "CONTOUR_LOG_LEVEL"
	EnvLaplaceThreshold = "CONTOUR_LAPLACE_THRESHOLD"
)

// Config holds runtime configuration.
type Config struct {
	Threshold        int    // Canny low threshold; high is 2x
	BlurSize         int    // Box blur kernel size, 0 disables
	OutputDir        string // Where results are saved
	Backend          string // "native" or "opencv"
	DBPath           string // SQLite run history, empty disables
	LogLevel         string // "debug" enables verbose logging
	LaplaceThreshold int    // contour-edges cut-off
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Threshold:        70,
		BlurSize:         0,
		OutputDir:        "dist",
		Backend:          "native",
		LogLevel:         "info",
		LaplaceThreshold: 50,
	}
}

// Load reads envFile (when it exists) into the process environment without
// overriding variables that are already set, then builds a Config from the
// environment. An empty envFile skips the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	def := DefaultConfig()
	cfg := &Config{
		Threshold:        getEnvAsInt(EnvThreshold, def.Threshold),
		BlurSize:         getEnvAsInt(EnvBlur, def.BlurSize),
		OutputDir:        getEnv(EnvOutputDir, def.OutputDir),
		Backend:          getEnv(EnvBackend, def.Backend),
		DBPath:           getEnv(EnvDB, def.DBPath),
		LogLevel:         getEnv(EnvLogLevel, def.LogLevel),
		LaplaceThreshold: getEnvAsInt(EnvLaplaceThreshold, def.LaplaceThreshold),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate normalizes values to usable ranges. Out-of-range numbers are
// clamped; an unknown backend is an error.
func (c *Config) Validate() error {
	c.Threshold = max(0, min(c.Threshold, imaging.MaxCannyThreshold))
	if c.BlurSize < 0 {
		c.BlurSize = 0
	}
	if c.BlurSize > 0 && c.BlurSize%2 == 0 {
		c.BlurSize++
	}
	if c.LaplaceThreshold < 0 {
		c.LaplaceThreshold = 0
	}
	if c.LaplaceThreshold > 255 {
		c.LaplaceThreshold = 255
	}
	if c.OutputDir == "" {
		c.OutputDir = "dist"
	}

	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	switch c.Backend {
	case "":
		c.Backend = "native"
	case "native", "opencv":
	default:
		return fmt.Errorf("invalid backend %q (want native or opencv)", c.Backend)
	}

	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	return nil
}

// Debug reports whether debug logging is enabled.
func (c *Config) Debug() bool {
	return c.LogLevel == "debug"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

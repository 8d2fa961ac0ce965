// Package config contains everything related to configuration
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the application configuration.
type Config struct {
	BaseURL                  string        `envconfig:"PROMASTER_BASE_URL" default:"https://ww3.mhw.com.my:1606/ProMaster/" validate:"required,url"`
	SessionPath              string        `envconfig:"SESSION_PATH"`
	DatabasePath             string        `envconfig:"DATABASE_PATH"`
	ImageCacheDir            string        `envconfig:"IMAGE_CACHE_DIR"`
	LogPath                  string        `envconfig:"LOG_PATH"`
	ExportDir                string        `envconfig:"EXPORT_DIR"`
	UserName                 string        `envconfig:"PROMASTER_USER"`
	LogLevel                 string        `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn warning error"`
	IPLookupURL              string        `envconfig:"IP_LOOKUP_URL" default:"https://api.ipify.org?format=json" validate:"omitempty,url"`
	RequestTimeout           time.Duration `envconfig:"REQUEST_TIMEOUT" default:"15s" validate:"gt=0"`
	DashboardRefreshInterval time.Duration `envconfig:"DASHBOARD_REFRESH_INTERVAL" default:"60s" validate:"gte=0"`
	LanguageID               int           `envconfig:"LANGUAGE_ID" default:"1" validate:"gte=1,lte=4"`
	PlatformID               int           `envconfig:"PLATFORM_ID" default:"2" validate:"gte=1"`
	DesktopNotifications     bool          `envconfig:"DESKTOP_NOTIFICATIONS" default:"true"`
}

const appDirName = "promaster-tui"

// Load reads configuration from .env files and environment variables.
func Load() (*Config, error) {
	// Try loading .env from multiple locations
	for _, path := range getEnvPaths() {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	for _, dir := range []string{
		filepath.Dir(cfg.SessionPath),
		filepath.Dir(cfg.DatabasePath),
		cfg.ImageCacheDir,
	} {
		if err := ensureDir(dir); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	return cfg, nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if !strings.HasSuffix(c.BaseURL, "/") {
		c.BaseURL += "/"
	}
	if c.SessionPath == "" {
		c.SessionPath = defaultPath("session.json")
	}
	if c.DatabasePath == "" {
		c.DatabasePath = defaultPath("cache.db")
	}
	if c.ImageCacheDir == "" {
		c.ImageCacheDir = defaultPath("images")
	}
	if c.LogPath == "" {
		c.LogPath = defaultPath("pmt.log")
	}
	if c.ExportDir == "" {
		c.ExportDir = defaultPath("exports")
	}
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	// Current directory
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appDirName, ".env"))
	}

	// Parent directories (useful for development)
	if cwd, err := os.Getwd(); err == nil {
		parent := filepath.Dir(cwd)
		paths = append(paths, filepath.Join(parent, ".env"))
		grandparent := filepath.Dir(parent)
		paths = append(paths, filepath.Join(grandparent, ".env"))
	}

	return paths
}

// defaultPath returns name inside the application config directory.
func defaultPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, ".config", appDirName, name)
}

// ensureDir creates a directory and all parent directories if they don't exist.
func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o750)
}

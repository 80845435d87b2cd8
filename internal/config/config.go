// Package config loads budget settings from viper and validates them.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/budget-tracker/internal/common"
	"github.com/Veraticus/budget-tracker/internal/money"
	"github.com/Veraticus/budget-tracker/internal/storage"
	"github.com/spf13/viper"
)

// Configuration keys.
const (
	KeyStorageBackend = "storage.backend"
	KeyStoragePath    = "storage.path"
	KeyDisplayLocale  = "display.locale"
	KeyLogLevel       = "logging.level"
	KeyLogFormat      = "logging.format"
)

// Default values.
const (
	DefaultBackend    = storage.BackendSQLite
	DefaultSQLitePath = "$HOME/.local/share/budget/budget.db"
	DefaultJSONPath   = "$HOME/.local/share/budget/budget_data.json"
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "console"
)

// Config is the resolved application configuration.
type Config struct {
	Storage StorageConfig
	Display DisplayConfig
	Logging LoggingConfig
}

// StorageConfig selects where the ledger is kept.
type StorageConfig struct {
	Backend string
	Path    string
}

// DisplayConfig controls how amounts are rendered.
type DisplayConfig struct {
	Locale string
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level  string
	Format string
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyStorageBackend, DefaultBackend)
	v.SetDefault(KeyDisplayLocale, money.DefaultLocale)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLogFormat, DefaultLogFormat)
}

// Load reads the configuration from v (config file, BUDGET_ environment
// variables and bound flags), fills in defaults and validates it.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Storage: StorageConfig{
			Backend: strings.ToLower(strings.TrimSpace(v.GetString(KeyStorageBackend))),
			Path:    v.GetString(KeyStoragePath),
		},
		Display: DisplayConfig{
			Locale: v.GetString(KeyDisplayLocale),
		},
		Logging: LoggingConfig{
			Level:  v.GetString(KeyLogLevel),
			Format: v.GetString(KeyLogFormat),
		},
	}

	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = DefaultBackend
	}
	if cfg.Storage.Path == "" {
		if _, err := os.UserHomeDir(); err != nil {
			return nil, fmt.Errorf("%w: %s is not set and the home directory is unknown", common.ErrMissingConfig, KeyStoragePath)
		}
		cfg.Storage.Path = DefaultPath(cfg.Storage.Backend)
	}
	cfg.Storage.Path = ExpandPath(cfg.Storage.Path)

	if cfg.Display.Locale == "" {
		cfg.Display.Locale = money.DefaultLocale
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLogFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultPath returns the default data file for a backend.
func DefaultPath(backend string) string {
	if backend == storage.BackendJSON {
		return DefaultJSONPath
	}
	return DefaultSQLitePath
}

// Validate checks that every setting has a usable value.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case storage.BackendSQLite, storage.BackendJSON:
	default:
		return fmt.Errorf("%w: %s must be sqlite or json, got %q", common.ErrInvalidConfig, KeyStorageBackend, c.Storage.Backend)
	}

	if c.Storage.Path != ":memory:" && !filepath.IsAbs(c.Storage.Path) {
		abs, err := filepath.Abs(c.Storage.Path)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", common.ErrInvalidConfig, KeyStoragePath, err)
		}
		c.Storage.Path = abs
	}

	if _, err := money.NewFormatter(c.Display.Locale); err != nil {
		return fmt.Errorf("%w: %s: %w", common.ErrInvalidConfig, KeyDisplayLocale, err)
	}

	if _, err := common.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: %s: %w", common.ErrInvalidConfig, KeyLogLevel, err)
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: %s must be console or json, got %q", common.ErrInvalidConfig, KeyLogFormat, c.Logging.Format)
	}
	return nil
}

// EnvKeyReplacer maps nested keys such as storage.path to BUDGET_STORAGE_PATH.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

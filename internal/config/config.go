// Package config loads colorvault configuration with viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/opencode-ai/colorvault/internal/models"
)

// EnvPrefix is the prefix for environment overrides, e.g. COLORVAULT_CATALOG_SOURCE.
const EnvPrefix = "COLORVAULT"

// Config is the root configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	UI       UIConfig       `mapstructure:"ui"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Preview  PreviewConfig  `mapstructure:"preview"`

	// path is the file the config was read from, if any.
	path string
}

// DatabaseConfig locates the durable store.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// CatalogConfig locates the built-in palette catalog.
type CatalogConfig struct {
	// Source is "builtin", an http(s) URL, or a .json/.yaml file path.
	Source string `mapstructure:"source"`

	// Timeout bounds remote catalog fetches.
	Timeout time.Duration `mapstructure:"timeout"`
}

// UIConfig holds presentation preferences.
type UIConfig struct {
	// ThemeToggleEnabled lets the stored theme preference take effect.
	// When false DefaultTheme is always used and nothing is written.
	ThemeToggleEnabled bool `mapstructure:"theme_toggle_enabled"`

	DefaultTheme models.Theme `mapstructure:"default_theme"`

	// SwatchLimit caps swatches shown per palette card.
	SwatchLimit int `mapstructure:"swatch_limit"`
}

// LoggingConfig controls zerolog output.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// PreviewConfig sizes rendered charts.
type PreviewConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: filepath.Join(DefaultDataDir(), "colorvault.db"),
		},
		Catalog: CatalogConfig{
			Source:  "builtin",
			Timeout: 10 * time.Second,
		},
		UI: UIConfig{
			ThemeToggleEnabled: false,
			DefaultTheme:       models.ThemeLight,
			SwatchLimit:        8,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "auto",
		},
		Preview: PreviewConfig{
			Width:  800,
			Height: 400,
		},
	}
}

// DefaultConfigDir returns the directory searched for config.yaml.
func DefaultConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "colorvault")
	}
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, "colorvault")
	}
	return filepath.Join(".", ".colorvault")
}

// DefaultDataDir returns the directory holding the database.
func DefaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "colorvault")
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".local", "share", "colorvault")
	}
	return filepath.Join(".", ".colorvault")
}

// Load reads configuration from path, or from the default config directory
// when path is empty. A missing default file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(DefaultConfigDir())
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.path = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("database.path", cfg.Database.Path)
	v.SetDefault("catalog.source", cfg.Catalog.Source)
	v.SetDefault("catalog.timeout", cfg.Catalog.Timeout)
	v.SetDefault("ui.theme_toggle_enabled", cfg.UI.ThemeToggleEnabled)
	v.SetDefault("ui.default_theme", string(cfg.UI.DefaultTheme))
	v.SetDefault("ui.swatch_limit", cfg.UI.SwatchLimit)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("preview.width", cfg.Preview.Width)
	v.SetDefault("preview.height", cfg.Preview.Height)
}

// Path returns the file the configuration was loaded from, or "".
func (c *Config) Path() string {
	return c.path
}

// Validate checks the configuration for unusable values.
func (c *Config) Validate() error {
	validation := &models.ValidationErrors{}

	if strings.TrimSpace(c.Database.Path) == "" {
		validation.AddMessage("database.path", "is required")
	}
	if strings.TrimSpace(c.Catalog.Source) == "" {
		validation.AddMessage("catalog.source", "is required")
	}
	if c.Catalog.Timeout <= 0 {
		validation.AddMessage("catalog.timeout", "must be positive")
	}
	if theme, ok := models.ParseTheme(string(c.UI.DefaultTheme)); !ok {
		validation.AddMessage("ui.default_theme", fmt.Sprintf("unknown theme %q", c.UI.DefaultTheme))
	} else {
		c.UI.DefaultTheme = theme
	}
	if c.UI.SwatchLimit <= 0 {
		validation.AddMessage("ui.swatch_limit", "must be positive")
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.Logging.Level)); err != nil {
		validation.AddMessage("logging.level", fmt.Sprintf("unknown level %q", c.Logging.Level))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "auto", "console", "json":
	default:
		validation.AddMessage("logging.format", fmt.Sprintf("unknown format %q", c.Logging.Format))
	}
	if c.Preview.Width <= 0 || c.Preview.Height <= 0 {
		validation.AddMessage("preview", "width and height must be positive")
	}

	return validation.Err()
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/leereilly/Cinematerial/cinematerial"
)

const maxBatchConcurrency = cinematerial.MaxConcurrency

// envBindings maps configuration keys to the environment variables that override them
var envBindings = map[string]string{
	"cinematerial.api_key":    "CINEMATERIAL_API_KEY",
	"cinematerial.api_secret": "CINEMATERIAL_API_SECRET",
	"cinematerial.base_url":   "CINEMATERIAL_BASE_URL",
	"radarr.url":              "RADARR_URL",
	"radarr.api_key":          "RADARR_API_KEY",
}

// Load loads the configuration. A missing config file is only an error when
// configPath names it explicitly; otherwise defaults and the environment
// are used.
func Load(configPath string) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := viper.New()

	// Set default values
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("error binding %s: %w", env, err)
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".cinematerial"))
		}

		// Check /etc
		v.AddConfigPath("/etc/cinematerial/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
			// no config file in the search path; defaults and env only
		case configPath != "" && errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("config file not found: %w", err)
		default:
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadDotEnv loads environment files that exist. Variables already set in
// the environment win.
func loadDotEnv(files ...string) error {
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("error loading %s: %w", file, err)
		}
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// CineMaterial defaults
	v.SetDefault("cinematerial.base_url", cinematerial.DefaultBaseURL)
	v.SetDefault("cinematerial.timeout", "30s")
	v.SetDefault("cinematerial.image_width", cinematerial.DefaultImageWidth)
	v.SetDefault("cinematerial.user_agent", "cinematerial-go")

	// Radarr defaults
	v.SetDefault("radarr.enabled", false)
	v.SetDefault("radarr.url", "http://localhost:7878")

	// Batch defaults
	v.SetDefault("batch.concurrency", cinematerial.DefaultConcurrency)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.Cinematerial.APIKey == "" || cfg.Cinematerial.APIKey == "your-api-key-here" {
		return fmt.Errorf("cinematerial.api_key must be set to a valid API key")
	}
	if cfg.Cinematerial.APISecret == "" || cfg.Cinematerial.APISecret == "your-api-secret-here" {
		return fmt.Errorf("cinematerial.api_secret must be set to a valid API secret")
	}
	if cfg.Cinematerial.BaseURL == "" {
		return fmt.Errorf("cinematerial.base_url is required")
	}
	if cfg.Cinematerial.Timeout <= 0 {
		return fmt.Errorf("cinematerial.timeout must be positive, got %s", cfg.Cinematerial.Timeout)
	}

	width := cfg.Cinematerial.ImageWidth
	if width < cinematerial.MinImageWidth || width > cinematerial.MaxImageWidth {
		return fmt.Errorf("cinematerial.image_width must be between %d and %d, got %d",
			cinematerial.MinImageWidth, cinematerial.MaxImageWidth, width)
	}

	if cfg.Radarr.Enabled {
		if cfg.Radarr.URL == "" {
			return fmt.Errorf("radarr.url is required when radarr is enabled")
		}
		if cfg.Radarr.APIKey == "" || cfg.Radarr.APIKey == "your-api-key-here" {
			return fmt.Errorf("radarr.api_key must be set to a valid API key when radarr is enabled")
		}
	}

	for name, preset := range cfg.Filter.Presets {
		if strings.TrimSpace(preset.Expression) == "" {
			return fmt.Errorf("filter.presets.%s.expression is required", name)
		}
	}

	if c := cfg.Batch.Concurrency; c < 1 || c > maxBatchConcurrency {
		return fmt.Errorf("batch.concurrency must be between 1 and %d, got %d", maxBatchConcurrency, c)
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}

// Preset returns the named filter preset
func (c *Config) Preset(name string) (PresetFilter, error) {
	preset, ok := c.Filter.Presets[strings.ToLower(name)]
	if !ok {
		return PresetFilter{}, fmt.Errorf("unknown filter preset %q (available: %s)", name, strings.Join(c.PresetNames(), ", "))
	}
	return preset, nil
}

// PresetNames returns the configured preset names in sorted order
func (c *Config) PresetNames() []string {
	names := make([]string, 0, len(c.Filter.Presets))
	for name := range c.Filter.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

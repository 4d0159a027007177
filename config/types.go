package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Cinematerial CinematerialConfig `mapstructure:"cinematerial"`
	Radarr       RadarrConfig       `mapstructure:"radarr"`
	Filter       FilterConfig       `mapstructure:"filter"`
	Batch        BatchConfig        `mapstructure:"batch"`
	Logging      LoggingConfig      `mapstructure:"logging"`
}

// CinematerialConfig holds CineMaterial API credentials and request settings
type CinematerialConfig struct {
	APIKey     string        `mapstructure:"api_key"`
	APISecret  string        `mapstructure:"api_secret"`
	BaseURL    string        `mapstructure:"base_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	ImageWidth int           `mapstructure:"image_width"`
	UserAgent  string        `mapstructure:"user_agent"`
}

// RadarrConfig holds Radarr API connection details
type RadarrConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
	APIKey  string `mapstructure:"api_key"`
}

// FilterConfig contains poster filter settings
type FilterConfig struct {
	// DefaultExpression is applied when no --filter or --preset is given
	DefaultExpression string                  `mapstructure:"default_expression"`
	Presets           map[string]PresetFilter `mapstructure:"presets"`
}

// PresetFilter is a named poster filter expression
type PresetFilter struct {
	Expression  string `mapstructure:"expression"`
	Description string `mapstructure:"description"`
}

// BatchConfig contains settings for multi-movie lookups
type BatchConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

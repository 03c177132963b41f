package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"versesabout/internal/api"
	"versesabout/internal/logging"
	"versesabout/internal/theme"
)

// Config is the complete application configuration.
type Config struct {
	API     APIConfig     `mapstructure:"api" yaml:"api"`
	TUI     TUIConfig     `mapstructure:"tui" yaml:"tui"`
	Render  RenderConfig  `mapstructure:"render" yaml:"render"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// APIConfig selects the content origin.
type APIConfig struct {
	// BaseURL overrides Environment when set.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
	// Environment is "production" (default) or "development".
	Environment string `mapstructure:"environment" yaml:"environment"`
}

type TUIConfig struct {
	// Theme is a theme key such as "catppuccin-mocha" or "dracula".
	Theme string `mapstructure:"theme" yaml:"theme"`
	// Translation is the translation shown when a topic opens: "KJV" or "ESV".
	Translation string `mapstructure:"translation" yaml:"translation"`
	// ContentWidth caps the verse text width in columns.
	ContentWidth int `mapstructure:"content_width" yaml:"content_width"`
}

// RenderConfig controls the verse text renderer.
type RenderConfig struct {
	// Mode is "rich" (styled, measured) or "plain" (tags stripped, fixed height).
	Mode string `mapstructure:"mode" yaml:"mode"`
	// SettleIntervalMs is the delay between layout polls.
	SettleIntervalMs int `mapstructure:"settle_interval_ms" yaml:"settle_interval_ms"`
	// MaxPolls bounds how many times a surface is polled before measurement fails.
	MaxPolls int `mapstructure:"max_polls" yaml:"max_polls"`
	// PlainHeight is the fixed line height used in plain mode.
	PlainHeight int `mapstructure:"plain_height" yaml:"plain_height"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	// Dir holds debug.log. Empty means the user cache directory.
	Dir string `mapstructure:"dir" yaml:"dir"`
}

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"

	RenderModeRich  = "rich"
	RenderModePlain = "plain"
)

func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:     "",
			Environment: EnvProduction,
		},
		TUI: TUIConfig{
			Theme:        "catppuccin-mocha",
			Translation:  "KJV",
			ContentWidth: 80,
		},
		Render: RenderConfig{
			Mode:             RenderModeRich,
			SettleIntervalMs: 50,
			MaxPolls:         20,
			PlainHeight:      3,
		},
		Logging: LoggingConfig{
			Level: logging.LevelInfo,
			Dir:   "",
		},
	}
}

// SetDefaults registers every default with viper so env vars and config
// files can override individual keys.
func SetDefaults() {
	d := Default()

	viper.SetDefault("api.base_url", d.API.BaseURL)
	viper.SetDefault("api.environment", d.API.Environment)

	viper.SetDefault("tui.theme", d.TUI.Theme)
	viper.SetDefault("tui.translation", d.TUI.Translation)
	viper.SetDefault("tui.content_width", d.TUI.ContentWidth)

	viper.SetDefault("render.mode", d.Render.Mode)
	viper.SetDefault("render.settle_interval_ms", d.Render.SettleIntervalMs)
	viper.SetDefault("render.max_polls", d.Render.MaxPolls)
	viper.SetDefault("render.plain_height", d.Render.PlainHeight)

	viper.SetDefault("logging.level", d.Logging.Level)
	viper.SetDefault("logging.dir", d.Logging.Dir)
}

// Load unmarshals the current viper state and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, errs
	}
	return &cfg, nil
}

// BaseURL resolves the content origin.
func (c *Config) BaseURL() string {
	if c.API.BaseURL != "" {
		return c.API.BaseURL
	}
	if strings.EqualFold(c.API.Environment, EnvDevelopment) {
		return api.DevelopmentBaseURL
	}
	return api.ProductionBaseURL
}

// LogDir resolves the directory debug.log is written to.
func (c *Config) LogDir() string {
	if c.Logging.Dir != "" {
		return c.Logging.Dir
	}
	return CacheDir()
}

// ConfigDir returns $XDG_CONFIG_HOME/versesabout or ~/.config/versesabout.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "versesabout")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".versesabout"
	}
	return filepath.Join(home, ".config", "versesabout")
}

func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// CacheDir is where logs go by default.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "versesabout")
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(ConfigDir(), "cache")
	}
	return filepath.Join(dir, "versesabout")
}

// ValidationError describes one invalid field.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got %v)", e.Field, e.Message, e.Value)
}

type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return "invalid configuration: " + strings.Join(msgs, "; ")
}

// Validate reports every invalid field at once.
func (c *Config) Validate() ValidationErrors {
	var errs ValidationErrors

	switch strings.ToLower(c.API.Environment) {
	case EnvProduction, EnvDevelopment:
	default:
		errs = append(errs, ValidationError{"api.environment", c.API.Environment, "must be production or development"})
	}
	if c.API.BaseURL != "" && !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		errs = append(errs, ValidationError{"api.base_url", c.API.BaseURL, "must be an http(s) URL"})
	}

	if !theme.Exists(c.TUI.Theme) {
		errs = append(errs, ValidationError{"tui.theme", c.TUI.Theme, "unknown theme, valid: " + strings.Join(theme.Names(), ", ")})
	}
	if _, err := api.ParseTranslation(c.TUI.Translation); err != nil {
		errs = append(errs, ValidationError{"tui.translation", c.TUI.Translation, "must be KJV or ESV"})
	}
	if c.TUI.ContentWidth < 20 || c.TUI.ContentWidth > 400 {
		errs = append(errs, ValidationError{"tui.content_width", c.TUI.ContentWidth, "must be between 20 and 400"})
	}

	switch c.Render.Mode {
	case RenderModeRich, RenderModePlain:
	default:
		errs = append(errs, ValidationError{"render.mode", c.Render.Mode, "must be rich or plain"})
	}
	if c.Render.SettleIntervalMs < 1 {
		errs = append(errs, ValidationError{"render.settle_interval_ms", c.Render.SettleIntervalMs, "must be positive"})
	}
	if c.Render.MaxPolls < 1 {
		errs = append(errs, ValidationError{"render.max_polls", c.Render.MaxPolls, "must be positive"})
	}
	if c.Render.PlainHeight < 1 {
		errs = append(errs, ValidationError{"render.plain_height", c.Render.PlainHeight, "must be positive"})
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, ValidationError{"logging.level", c.Logging.Level, "must be one of " + strings.Join(logging.ValidLevels(), ", ")})
	}

	return errs
}

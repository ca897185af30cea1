package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// Refresh strategies applied after a successful mutation. One strategy is
// picked per deployment and applied uniformly across every workflow screen.
const (
	RefreshPatch   = "patch"
	RefreshRefetch = "refetch"
)

// Config root configuration
type Config struct {
	API APIConfig `mapstructure:"api"`
	UI  UIConfig  `mapstructure:"ui"`
	Log LogConfig `mapstructure:"log"`
}

// APIConfig remote TMS API settings
type APIConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// UIConfig list view and dashboard settings
type UIConfig struct {
	PageSize        int    `mapstructure:"page_size"`
	RefreshStrategy string `mapstructure:"refresh_strategy"`
	ToastSeconds    int    `mapstructure:"toast_seconds"`
}

// LogConfig application logging settings
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// DefaultConfig returns config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        "https://tms-api-23gs.onrender.com/",
			TimeoutSeconds: 30,
		},
		UI: UIConfig{
			PageSize:        5,
			RefreshStrategy: RefreshPatch,
			ToastSeconds:    4,
		},
		Log: LogConfig{
			Level: "info",
			File:  "",
		},
	}
}

// ConfigDir returns the tmscli config directory
func ConfigDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".tmscli")
}

// ConfigPath returns the config file path
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.json")
}

// Load loads config from file or returns defaults
func Load() (*Config, error) {
	cfg := DefaultConfig()

	configPath := ConfigPath()
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := Save(cfg); err != nil {
			return cfg, fmt.Errorf("failed to create default config: %w", err)
		}
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("json")
	v.SetEnvPrefix("TMSCLI")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return cfg, err
	}

	if err := v.Unmarshal(cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.MatchName = func(mapKey, fieldName string) bool {
			return normalizeKey(mapKey) == normalizeKey(fieldName)
		}
	}); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func normalizeKey(input string) string {
	input = strings.ReplaceAll(input, "_", "")
	input = strings.ReplaceAll(input, "-", "")
	return strings.ToLower(input)
}

// Save saves config to file
func Save(cfg *Config) error {
	configPath := ConfigPath()

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0600)
}

// Validate checks that the configuration values are within acceptable ranges.
func (c *Config) Validate() error {
	base := strings.TrimSpace(c.API.BaseURL)
	if base == "" {
		return fmt.Errorf("api.base_url is required")
	}
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url must be an absolute URL, got %q", c.API.BaseURL)
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	c.API.BaseURL = base

	if c.API.TimeoutSeconds < 0 {
		return fmt.Errorf("api.timeout_seconds must not be negative, got %d", c.API.TimeoutSeconds)
	}
	if c.API.TimeoutSeconds == 0 {
		c.API.TimeoutSeconds = 30
	}

	if c.UI.PageSize < 0 || c.UI.PageSize > 100 {
		return fmt.Errorf("ui.page_size must be between 1 and 100, got %d", c.UI.PageSize)
	}
	if c.UI.PageSize == 0 {
		c.UI.PageSize = 5
	}

	strategy := strings.ToLower(strings.TrimSpace(c.UI.RefreshStrategy))
	if strategy == "" {
		strategy = RefreshPatch
	}
	if strategy != RefreshPatch && strategy != RefreshRefetch {
		return fmt.Errorf("ui.refresh_strategy must be %q or %q, got %q", RefreshPatch, RefreshRefetch, c.UI.RefreshStrategy)
	}
	c.UI.RefreshStrategy = strategy

	if c.UI.ToastSeconds < 0 {
		return fmt.Errorf("ui.toast_seconds must not be negative, got %d", c.UI.ToastSeconds)
	}
	if c.UI.ToastSeconds == 0 {
		c.UI.ToastSeconds = 4
	}

	level := strings.ToLower(strings.TrimSpace(c.Log.Level))
	if level == "" {
		c.Log.Level = "info"
	} else {
		validLevels := map[string]bool{
			"debug": true,
			"info":  true,
			"warn":  true,
			"error": true,
		}
		if !validLevels[level] {
			return fmt.Errorf("log.level must be one of debug, info, warn, error; got %q", c.Log.Level)
		}
		c.Log.Level = level
	}

	return nil
}

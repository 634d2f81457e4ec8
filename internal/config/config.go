// Package config loads and validates pipeline configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures all pipeline configuration knobs loaded via Viper.
type Config struct {
	Typeform TypeformConfig `mapstructure:"typeform"`
	Profile  ProfileConfig  `mapstructure:"profile"`
	Site     SiteConfig     `mapstructure:"site"`
	DB       DBConfig       `mapstructure:"db"`
	Notify   NotifyConfig   `mapstructure:"notify"`
	Ops      OpsConfig      `mapstructure:"ops"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// TypeformConfig controls access to the form provider.
type TypeformConfig struct {
	APIKey         string `mapstructure:"api_key"`
	FormID         string `mapstructure:"form_id"`
	BaseURL        string `mapstructure:"base_url"`
	PageSize       int    `mapstructure:"page_size"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// ProfileConfig controls access to the profile enrichment provider.
type ProfileConfig struct {
	APIKey         string `mapstructure:"api_key"`
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// SiteConfig governs website fetching behavior.
type SiteConfig struct {
	UserAgent      string `mapstructure:"user_agent"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// DBConfig controls access to the relational database.
type DBConfig struct {
	DSN      string `mapstructure:"dsn"`
	MaxConns int32  `mapstructure:"max_conns"`
}

// NotifyConfig selects the commit-notification backend.
type NotifyConfig struct {
	Provider  string `mapstructure:"provider"`
	ProjectID string `mapstructure:"project_id"`
	TopicID   string `mapstructure:"topic_id"`
}

// OpsConfig controls the health/metrics HTTP endpoint.
type OpsConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DEALFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("typeform.base_url", "https://api.typeform.com")
	v.SetDefault("typeform.page_size", 100)
	v.SetDefault("typeform.timeout_seconds", 15)
	v.SetDefault("profile.base_url", "https://nubela.co/proxycurl/api/v2")
	v.SetDefault("profile.timeout_seconds", 15)
	v.SetDefault("site.user_agent",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	v.SetDefault("site.timeout_seconds", 10)
	v.SetDefault("db.max_conns", 4)
	v.SetDefault("notify.provider", "noop")
	v.SetDefault("ops.enabled", true)
	v.SetDefault("ops.port", 8080)
	v.SetDefault("logging.development", true)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Typeform.APIKey == "" {
		return fmt.Errorf("typeform.api_key is required")
	}
	if c.Typeform.FormID == "" {
		return fmt.Errorf("typeform.form_id is required")
	}
	if c.Typeform.PageSize <= 0 || c.Typeform.PageSize > 1000 {
		return fmt.Errorf("typeform.page_size must be in (0,1000]")
	}
	if c.Typeform.TimeoutSeconds <= 0 {
		return fmt.Errorf("typeform.timeout_seconds must be > 0")
	}
	if c.Profile.TimeoutSeconds <= 0 {
		return fmt.Errorf("profile.timeout_seconds must be > 0")
	}
	if c.Site.TimeoutSeconds <= 0 {
		return fmt.Errorf("site.timeout_seconds must be > 0")
	}
	if c.DB.DSN == "" {
		return fmt.Errorf("db.dsn is required")
	}
	switch c.Notify.Provider {
	case "noop":
	case "pubsub":
		if c.Notify.ProjectID == "" || c.Notify.TopicID == "" {
			return fmt.Errorf("notify.project_id and notify.topic_id must be set when notify.provider is pubsub")
		}
	default:
		return fmt.Errorf("unknown notify.provider %q", c.Notify.Provider)
	}
	if c.Ops.Enabled && c.Ops.Port <= 0 {
		return fmt.Errorf("ops.port must be > 0 when ops is enabled")
	}
	return nil
}

// TypeformTimeout returns the form provider call budget as a duration.
func (c Config) TypeformTimeout() time.Duration {
	return time.Duration(c.Typeform.TimeoutSeconds) * time.Second
}

// ProfileTimeout returns the profile API call budget as a duration.
func (c Config) ProfileTimeout() time.Duration {
	return time.Duration(c.Profile.TimeoutSeconds) * time.Second
}

// SiteTimeout returns the website fetch budget as a duration.
func (c Config) SiteTimeout() time.Duration {
	return time.Duration(c.Site.TimeoutSeconds) * time.Second
}

// Package config provides Viper-based configuration for folio.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Configuration errors.
var (
	ErrInvalidConfig = errors.New("invalid configuration")
)

const (
	// DefaultCatalogURL is the catalog instance the site was built against.
	DefaultCatalogURL = "https://data.beginos.org"
	// DefaultCatalogTimeout bounds each catalog request.
	DefaultCatalogTimeout = 30 * time.Second
)

// Config represents the complete folio configuration.
type Config struct {
	Content ContentConfig `mapstructure:"content"`
	Editor  EditorConfig  `mapstructure:"editor"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Export  ExportConfig  `mapstructure:"export"`
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ContentConfig locates the local MDX store.
type ContentConfig struct {
	Dir string `mapstructure:"dir" validate:"required"`
}

// EditorConfig controls the CMS working copy source.
type EditorConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir" validate:"required_if=Enabled true"`
}

// CatalogConfig controls the external product catalog source.
type CatalogConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	URL          string        `mapstructure:"url" validate:"required_if=Enabled true,omitempty,url"`
	Token        string        `mapstructure:"token"`
	SiteID       string        `mapstructure:"site_id"`
	Timeout      time.Duration `mapstructure:"timeout" validate:"gt=0"`
	RateLimit    float64       `mapstructure:"rate_limit" validate:"gte=0"`
	MaxRecords   int           `mapstructure:"max_records" validate:"gte=1"`
	AffiliateTag string        `mapstructure:"affiliate_tag" validate:"required"`
}

// ExportConfig controls snapshot output.
type ExportConfig struct {
	Dir     string `mapstructure:"dir" validate:"required"`
	Metrics bool   `mapstructure:"metrics"`
}

// ServerConfig controls the preview server.
type ServerConfig struct {
	Addr string `mapstructure:"addr" validate:"required"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

// Load reads configuration from an optional file and the environment.
// An empty cfgFile searches for folio.yaml in the working directory.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("folio")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("FOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindLegacyEnv(v)

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	cfg.Catalog.SiteID = strings.TrimSpace(cfg.Catalog.SiteID)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("content.dir", "content")

	v.SetDefault("editor.enabled", false)
	v.SetDefault("editor.dir", "outstatic/content")

	v.SetDefault("catalog.enabled", false)
	v.SetDefault("catalog.url", DefaultCatalogURL)
	v.SetDefault("catalog.token", "")
	v.SetDefault("catalog.site_id", "")
	v.SetDefault("catalog.timeout", DefaultCatalogTimeout)
	v.SetDefault("catalog.rate_limit", 0.0)
	v.SetDefault("catalog.max_records", 100)
	v.SetDefault("catalog.affiliate_tag", "smartymode-20")

	v.SetDefault("export.dir", "out/content")
	v.SetDefault("export.metrics", false)

	v.SetDefault("server.addr", ":8080")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// bindLegacyEnv keeps the variable names the site's deployments already set.
// The FOLIO_ name always takes precedence.
func bindLegacyEnv(v *viper.Viper) {
	_ = v.BindEnv("editor.enabled", "FOLIO_EDITOR_ENABLED", "OUTSTATIC_CMS_MODE")
	_ = v.BindEnv("catalog.enabled", "FOLIO_CATALOG_ENABLED", "NEXT_PUBLIC_ENABLE_DIRECTUS")
	_ = v.BindEnv("catalog.url", "FOLIO_CATALOG_URL", "DIRECTUS_API_URL")
	_ = v.BindEnv("catalog.token", "FOLIO_CATALOG_TOKEN", "DIRECTUS_API_TOKEN")
	_ = v.BindEnv("catalog.site_id", "FOLIO_CATALOG_SITE_ID", "NEXT_PUBLIC_SITE_ID", "DIRECTUS_SITE_ID", "SITE_ID")
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// LogLevel maps the configured level onto slog.
func (c *Config) LogLevel() slog.Level {
	switch c.Logging.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

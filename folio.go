package folio

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/smartymode/folio/internal/config"
	"github.com/smartymode/folio/internal/platform"
	"github.com/smartymode/folio/pkg/catalog"
	"github.com/smartymode/folio/pkg/core"
	"github.com/smartymode/folio/pkg/site"
)

// Version is stamped at build time with -ldflags "-X github.com/smartymode/folio.Version=...".
var Version = "dev"

// --- Types ---

// Document is a single piece of content as read from any source.
type Document = core.Document

// Service is the read API the page generator consumes.
type Service = site.Service

// App is the wired set of sources behind a Service.
type App = platform.App

// Config is the loaded runtime configuration.
type Config = config.Config

// Review, Guide and Page are the typed views of the three collections.
type (
	Review = site.Review
	Guide  = site.Guide
	Page   = site.Page
)

// --- Configuration ---

// Option configures which sources are wired.
type Option = platform.Option

// WithLogger sets the logger shared by every component.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithContentDir sets the root of the local content tree.
func WithContentDir(dir string) Option {
	return platform.WithContentDir(dir)
}

// WithEditor enables the editor working copy rooted at dir.
func WithEditor(dir string) Option {
	return platform.WithEditor(dir)
}

// WithCatalog enables the product catalog read through f.
func WithCatalog(f catalog.Fetcher, cfg catalog.SourceConfig) Option {
	return platform.WithCatalog(f, cfg)
}

// WithSource adds a custom store. Its Kind decides where it ranks.
func WithSource(src core.Source) Option {
	return platform.WithSource(src)
}

// WithMetrics registers unification counters on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return platform.WithMetrics(reg)
}

// --- Factory ---

// New wires the selected sources and returns the read API.
func New(opts ...Option) (*Service, error) {
	app, err := platform.New(opts...)
	if err != nil {
		return nil, err
	}
	return app.Site, nil
}

// Open is New but returns every wired component, for tools that need to
// watch or inspect them.
func Open(opts ...Option) (*App, error) {
	return platform.New(opts...)
}

// LoadConfig reads folio.yaml (or cfgFile when set) plus environment overrides.
func LoadConfig(cfgFile string) (*Config, error) {
	return config.Load(cfgFile)
}

// FromConfig wires the app described by a loaded configuration.
// reg may be nil.
func FromConfig(cfg *Config, logger *slog.Logger, reg prometheus.Registerer) (*App, error) {
	return platform.FromConfig(cfg, logger, reg)
}

// FindRoot walks up from startDir to the site root.
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}

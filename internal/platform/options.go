package platform

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/smartymode/folio/pkg/catalog"
	"github.com/smartymode/folio/pkg/core"
)

// options holds the internal configuration for a folio site.
type options struct {
	logger     *slog.Logger
	contentDir string
	editorDir  string
	fetcher    catalog.Fetcher
	catalogCfg catalog.SourceConfig
	sources    []core.Source
	registerer prometheus.Registerer
	metrics    bool
}

// Option defines a functional option for configuring folio.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		contentDir: "content",
	}
}

// WithLogger sets the logger shared by every component.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithContentDir sets the root of the local MDX store.
// Defaults to "content".
func WithContentDir(dir string) Option {
	return func(o *options) {
		o.contentDir = dir
	}
}

// WithEditor enables the CMS working copy source rooted at dir.
// An empty dir leaves the editor source disabled.
func WithEditor(dir string) Option {
	return func(o *options) {
		o.editorDir = dir
	}
}

// WithCatalog enables the external catalog source.
// A nil fetcher leaves it disabled.
func WithCatalog(f catalog.Fetcher, cfg catalog.SourceConfig) Option {
	return func(o *options) {
		o.fetcher = f
		o.catalogCfg = cfg
	}
}

// WithSource injects an additional source (e.g. a mock or another store).
// It is ranked by its Kind like the built-in ones.
func WithSource(src core.Source) Option {
	return func(o *options) {
		o.sources = append(o.sources, src)
	}
}

// WithMetrics enables unifier metrics, registered with reg when non-nil.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.metrics = true
		o.registerer = reg
	}
}

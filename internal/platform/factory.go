package platform

import (
	"errors"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/smartymode/folio/internal/config"
	"github.com/smartymode/folio/pkg/adapters/fs"
	"github.com/smartymode/folio/pkg/catalog"
	"github.com/smartymode/folio/pkg/core"
	"github.com/smartymode/folio/pkg/site"
	"github.com/smartymode/folio/pkg/unify"
)

// ErrMissingContentDir is returned when no local store is configured.
var ErrMissingContentDir = errors.New("content directory is required")

// App is the wired set of components behind the public read API.
type App struct {
	Site    *site.Service
	Unifier *unify.Unifier
	Metrics *unify.Metrics

	Local   *fs.Source
	Editor  *fs.Source      // nil when disabled
	Catalog *catalog.Source // nil when disabled

	logger *slog.Logger
}

// New wires the sources selected by opts.
//
//	app, err := platform.New(platform.WithContentDir("./content"), platform.WithEditor("./outstatic/content"))
//
// Disabled sources are not constructed at all.
func New(opts ...Option) (*App, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.contentDir == "" {
		return nil, ErrMissingContentDir
	}
	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	app := &App{logger: logger}
	app.Local = fs.NewLocalSource(o.contentDir, logger)
	sources := []core.Source{app.Local}

	if o.editorDir != "" {
		app.Editor = fs.NewEditorSource(o.editorDir, logger)
		sources = append(sources, app.Editor)
	}
	if o.fetcher != nil {
		cfg := o.catalogCfg
		if cfg.Logger == nil {
			cfg.Logger = logger
		}
		app.Catalog = catalog.NewSource(o.fetcher, cfg)
		sources = append(sources, app.Catalog)
	}
	sources = append(sources, o.sources...)

	uopts := []unify.Option{unify.WithLogger(logger)}
	if o.metrics {
		app.Metrics = unify.NewMetrics(o.registerer)
		uopts = append(uopts, unify.WithMetrics(app.Metrics))
	}
	app.Unifier = unify.New(sources, uopts...)
	app.Site = site.NewService(app.Unifier, app.Local, logger)

	return app, nil
}

// FromConfig translates a loaded configuration into options and wires the app.
func FromConfig(cfg *config.Config, logger *slog.Logger, reg prometheus.Registerer) (*App, error) {
	opts := []Option{
		WithLogger(logger),
		WithContentDir(cfg.Content.Dir),
		WithMetrics(reg),
	}
	if cfg.Editor.Enabled {
		opts = append(opts, WithEditor(cfg.Editor.Dir))
	}
	if cfg.Catalog.Enabled {
		client, err := catalog.NewClient(catalog.Config{
			BaseURL:           cfg.Catalog.URL,
			Token:             cfg.Catalog.Token,
			SiteID:            cfg.Catalog.SiteID,
			Timeout:           cfg.Catalog.Timeout,
			RequestsPerSecond: cfg.Catalog.RateLimit,
			Logger:            logger,
		})
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithCatalog(client, catalog.SourceConfig{
			AffiliateTag: cfg.Catalog.AffiliateTag,
			MaxRecords:   cfg.Catalog.MaxRecords,
		}))
	}
	return New(opts...)
}

// WatchRoots returns the directories whose changes affect the unified view.
func (a *App) WatchRoots() []string {
	roots := []string{a.Local.Root()}
	if a.Editor != nil {
		roots = append(roots, a.Editor.Root())
	}
	return roots
}

// Components lists every wired component that exposes introspection state.
func (a *App) Components() []any {
	out := []any{a.Unifier}
	for _, s := range a.Unifier.Sources() {
		out = append(out, s)
	}
	if a.Catalog != nil {
		if c, ok := a.Catalog.Fetcher().(*catalog.Client); ok {
			out = append(out, c)
		}
	}
	return out
}

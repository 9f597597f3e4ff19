// Package export writes a JSON snapshot of the unified content for the
// static site generator.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/smartymode/folio/pkg/adapters/fs"
	"github.com/smartymode/folio/pkg/core"
)

// File names inside the output directory.
const (
	ManifestFile   = "manifest.json"
	CategoriesFile = "categories.json"
	MetricsFile    = "metrics.prom"
)

// Collections are exported in this order.
var Collections = []core.Collection{core.Guides, core.Reviews, core.Pages}

// Reader is the read API an export is taken from. site.Service satisfies it.
type Reader interface {
	ListAllDocuments(ctx context.Context, collection core.Collection) ([]core.Document, error)
	Categories(ctx context.Context, collection core.Collection) ([]string, error)
}

// Manifest describes one export run.
type Manifest struct {
	BuildID     string                  `json:"buildId"`
	GeneratedAt time.Time               `json:"generatedAt"`
	Counts      map[core.Collection]int `json:"counts"`
	Sources     map[core.SourceKind]int `json:"sources"`
	Files       []string                `json:"files"`
}

// Exporter writes snapshots into a directory.
type Exporter struct {
	reader   Reader
	dir      string
	logger   *slog.Logger
	gatherer prometheus.Gatherer
	now      func() time.Time
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Exporter) {
		e.logger = logger
	}
}

// WithMetrics also writes the gathered metrics as a Prometheus textfile.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(e *Exporter) {
		e.gatherer = g
	}
}

// WithClock overrides the manifest timestamp source.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) {
		e.now = now
	}
}

// New creates an exporter writing into dir.
func New(r Reader, dir string, opts ...Option) *Exporter {
	e := &Exporter{reader: r, dir: dir, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// Export writes one file per collection, the category index and the
// manifest. Every file is replaced atomically, so a reader never sees a
// half-written snapshot of any single file. The manifest is written last.
func (e *Exporter) Export(ctx context.Context) (*Manifest, error) {
	m := &Manifest{
		BuildID:     uuid.NewString(),
		GeneratedAt: e.now().UTC(),
		Counts:      make(map[core.Collection]int),
		Sources:     make(map[core.SourceKind]int),
	}
	categories := make(map[core.Collection][]string)

	for _, c := range Collections {
		docs, err := e.reader.ListAllDocuments(ctx, c)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", c, err)
		}
		name := string(c) + ".json"
		if err := e.writeJSON(name, docs); err != nil {
			return nil, err
		}
		m.Files = append(m.Files, name)
		m.Counts[c] = len(docs)
		for _, d := range docs {
			m.Sources[d.Source]++
		}

		if c == core.Pages {
			continue
		}
		cats, err := e.reader.Categories(ctx, c)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s categories: %w", c, err)
		}
		categories[c] = cats
	}

	if err := e.writeJSON(CategoriesFile, categories); err != nil {
		return nil, err
	}
	m.Files = append(m.Files, CategoriesFile)

	if e.gatherer != nil {
		path := filepath.Join(e.dir, MetricsFile)
		if err := prometheus.WriteToTextfile(path, e.gatherer); err != nil {
			return nil, fmt.Errorf("failed to write metrics: %w", err)
		}
		m.Files = append(m.Files, MetricsFile)
	}

	if err := e.writeJSON(ManifestFile, m); err != nil {
		return nil, err
	}

	e.logger.Info("export complete",
		"dir", e.dir,
		"build_id", m.BuildID,
		"guides", m.Counts[core.Guides],
		"reviews", m.Counts[core.Reviews],
		"pages", m.Counts[core.Pages],
	)
	return m, nil
}

func (e *Exporter) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	data = append(data, '\n')
	if err := fs.WriteFileAtomic(filepath.Join(e.dir, name), data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

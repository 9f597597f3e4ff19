package catalog

import (
	"context"
	"errors"
	"log/slog"

	"github.com/smartymode/folio/pkg/core"
)

// Fetcher is the part of the catalog client a Source needs.
type Fetcher interface {
	ListAll(ctx context.Context, f Filters, maxRecords int) ([]Record, error)
	GetProductByExternalID(ctx context.Context, id string) (Record, error)
}

var _ Fetcher = (*Client)(nil)

// SourceConfig holds the configuration for a catalog-backed source.
type SourceConfig struct {
	AffiliateTag string
	// MaxRecords caps how many records List pulls. Zero means DefaultPageSize.
	MaxRecords int
	Logger     *slog.Logger
}

// Source exposes catalog records as review documents.
// It holds nothing but the reviews collection.
type Source struct {
	fetcher Fetcher
	config  SourceConfig
	logger  *slog.Logger
}

// NewSource wraps a fetcher as a core.Source.
func NewSource(fetcher Fetcher, cfg SourceConfig) *Source {
	if cfg.MaxRecords <= 0 {
		cfg.MaxRecords = DefaultPageSize
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{
		fetcher: fetcher,
		config:  cfg,
		logger:  logger.With("source", string(core.SourceCatalog)),
	}
}

// Kind implements core.Source.
func (s *Source) Kind() core.SourceKind {
	return core.SourceCatalog
}

// List returns every fetched catalog record as a review document.
// Records without an external id cannot be addressed and are dropped.
func (s *Source) List(ctx context.Context, collection core.Collection) ([]core.Document, error) {
	if collection != core.Reviews {
		return nil, nil
	}

	records, err := s.fetcher.ListAll(ctx, Filters{Status: StatusFetched}, s.config.MaxRecords)
	if err != nil {
		return nil, err
	}

	docs := make([]core.Document, 0, len(records))
	for _, rec := range records {
		if core.NormalizeExternalID(rec.ExternalID) == "" {
			s.logger.Warn("skipping catalog record without external id", "id", rec.ID)
			continue
		}
		docs = append(docs, ToDocument(rec, s.config.AffiliateTag))
	}
	return docs, nil
}

// Get resolves a review slug to the record whose external id lower-cases to it.
// Records that List would not return (wrong status, mismatched slug) are absent.
// Get is not capped by MaxRecords; unify.Unifier confirms catalog hits against
// the capped List before serving them.
func (s *Source) Get(ctx context.Context, collection core.Collection, slug string) (core.Document, error) {
	if collection != core.Reviews {
		return core.Document{}, core.ErrNotFound
	}
	id := core.NormalizeExternalID(slug)
	if id == "" {
		return core.Document{}, core.ErrNotFound
	}

	rec, err := s.fetcher.GetProductByExternalID(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return core.Document{}, core.ErrNotFound
		}
		return core.Document{}, err
	}
	if rec.Status != "" && rec.Status != StatusFetched {
		return core.Document{}, core.ErrNotFound
	}

	doc := ToDocument(rec, s.config.AffiliateTag)
	if doc.Slug != slug {
		return core.Document{}, core.ErrNotFound
	}
	return doc, nil
}

var _ core.Source = (*Source)(nil)

// Fetcher returns the client the source reads through.
func (s *Source) Fetcher() Fetcher {
	return s.fetcher
}

package typed

import (
	"context"
	"log/slog"

	"github.com/smartymode/folio/pkg/core"
)

// Reader is the read surface typed collections are built on.
// unify.Unifier satisfies it.
type Reader interface {
	All(ctx context.Context, collection core.Collection) ([]core.Document, error)
	BySlug(ctx context.Context, collection core.Collection, slug string) (core.Document, error)
}

// Collection reads one collection as models of T.
type Collection[T any] struct {
	reader     Reader
	collection core.Collection
	logger     *slog.Logger
}

// NewCollection creates a typed reader for collection.
func NewCollection[T any](r Reader, collection core.Collection, logger *slog.Logger) *Collection[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collection[T]{reader: r, collection: collection, logger: logger}
}

// List returns every document of the collection in unified order.
// A document that fails validation against T is logged and left out.
func (c *Collection[T]) List(ctx context.Context) ([]*Model[T], error) {
	docs, err := c.reader.All(ctx, c.collection)
	if err != nil {
		return nil, err
	}
	return DecodeAll[T](docs, c.logger), nil
}

// Get returns one document by slug.
func (c *Collection[T]) Get(ctx context.Context, slug string) (*Model[T], error) {
	doc, err := c.reader.BySlug(ctx, c.collection, slug)
	if err != nil {
		return nil, err
	}
	return Decode[T](doc)
}

// DecodeAll decodes docs in order, skipping the ones that fail validation.
func DecodeAll[T any](docs []core.Document, logger *slog.Logger) []*Model[T] {
	if logger == nil {
		logger = slog.Default()
	}
	out := make([]*Model[T], 0, len(docs))
	for _, d := range docs {
		m, err := Decode[T](d)
		if err != nil {
			logger.Warn("skipping invalid document",
				"slug", d.Slug,
				"source", string(d.Source),
				"error", err,
			)
			continue
		}
		out = append(out, m)
	}
	return out
}

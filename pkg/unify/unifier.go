// Package unify merges the documents of several content sources into one
// deduplicated, date-ordered view.
package unify

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"github.com/smartymode/folio/pkg/core"
)

// Unifier reads every configured source and merges the results.
// Sources are consulted sequentially, highest priority first, and nothing is
// cached between calls.
type Unifier struct {
	sources []core.Source
	logger  *slog.Logger
	metrics *Metrics
}

// Option configures a Unifier.
type Option func(*Unifier)

// WithLogger sets the logger used to report source faults.
func WithLogger(logger *slog.Logger) Option {
	return func(u *Unifier) {
		u.logger = logger
	}
}

// WithMetrics enables prometheus accounting.
func WithMetrics(m *Metrics) Option {
	return func(u *Unifier) {
		u.metrics = m
	}
}

// New creates a Unifier over the given sources.
// Whatever order they are passed in, editor sources win over local ones and
// local ones over the catalog. Nil sources are ignored.
func New(sources []core.Source, opts ...Option) *Unifier {
	u := &Unifier{logger: slog.Default()}
	for _, opt := range opts {
		opt(u)
	}
	if u.logger == nil {
		u.logger = slog.Default()
	}

	for _, s := range sources {
		if s != nil {
			u.sources = append(u.sources, s)
		}
	}
	sort.SliceStable(u.sources, func(i, j int) bool {
		return Priority(u.sources[i].Kind()) < Priority(u.sources[j].Kind())
	})
	return u
}

// Priority ranks a source kind; lower wins.
func Priority(k core.SourceKind) int {
	switch k {
	case core.SourceEditor:
		return 0
	case core.SourceLocal:
		return 1
	case core.SourceCatalog:
		return 2
	}
	return 3
}

// Sources returns the configured sources in priority order.
func (u *Unifier) Sources() []core.Source {
	return append([]core.Source(nil), u.sources...)
}

// All returns the unified view of a collection.
//
// Workflow:
//  1. Each source is listed in priority order. A failing source is logged and
//     contributes nothing.
//  2. A document is kept only if neither its slug nor its external id was
//     already claimed by an earlier document.
//  3. The result is sorted newest first; undated documents go last in the
//     order they were accepted.
//
// The only error returned is the context's.
func (u *Unifier) All(ctx context.Context, collection core.Collection) ([]core.Document, error) {
	docs, _, err := u.merge(ctx, collection, u.sources, true)
	if err != nil {
		return nil, err
	}
	core.SortByDateDesc(docs)
	u.metrics.unified(collection, len(docs))
	return docs, nil
}

// BySlug returns the document All would return under slug.
// Sources are probed in priority order and the first hit wins, unless its
// external id is already held by an earlier document, in which case the slug
// is absent exactly as it is from All.
func (u *Unifier) BySlug(ctx context.Context, collection core.Collection, slug string) (core.Document, error) {
	for i, src := range u.sources {
		if err := ctx.Err(); err != nil {
			return core.Document{}, err
		}

		doc, err := src.Get(ctx, collection, slug)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				continue
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return core.Document{}, ctxErr
			}
			u.logger.Warn("source lookup failed, treating as absent",
				"source", string(src.Kind()),
				"collection", string(collection),
				"slug", slug,
				"error", err,
			)
			u.metrics.failure(src.Kind(), "get")
			continue
		}

		if doc.ExternalID() == "" {
			return doc, nil
		}
		return u.confirm(ctx, collection, doc, i)
	}
	return core.Document{}, core.ErrNotFound
}

// confirm checks that a hit carrying an external id survives dedup against
// the sources up to and including the one it came from.
//
// When one of those sources cannot be listed the check is incomplete. The hit
// is then dropped only if a surviving document visibly claims its slug or
// external id; otherwise it is served and the gap is logged.
func (u *Unifier) confirm(ctx context.Context, collection core.Collection, doc core.Document, idx int) (core.Document, error) {
	kept, failed, err := u.merge(ctx, collection, u.sources[:idx+1], false)
	if err != nil {
		return core.Document{}, err
	}

	id := doc.ExternalID()
	claimed := false
	for _, k := range kept {
		if k.Slug == doc.Slug && k.Source == doc.Source {
			return doc, nil
		}
		if k.Slug == doc.Slug || k.ExternalID() == id {
			claimed = true
		}
	}

	if !claimed && failed > 0 {
		u.logger.Warn("could not confirm document against every source, serving it",
			"collection", string(collection),
			"slug", doc.Slug,
			"external_id", id,
			"unlisted_sources", failed,
		)
		return doc, nil
	}

	u.logger.Debug("document shadowed by a higher priority source",
		"collection", string(collection),
		"slug", doc.Slug,
		"external_id", id,
	)
	return core.Document{}, core.ErrNotFound
}

// merge applies slug and external id dedup over sources in order.
// It also reports how many sources could not be listed.
func (u *Unifier) merge(ctx context.Context, collection core.Collection, sources []core.Source, record bool) ([]core.Document, int, error) {
	out := make([]core.Document, 0)
	seenSlugs := make(map[string]struct{})
	seenIDs := make(map[string]struct{})
	failed := 0

	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}

		docs, err := src.List(ctx, collection)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, 0, ctxErr
			}
			u.logger.Warn("source unavailable, continuing without it",
				"source", string(src.Kind()),
				"collection", string(collection),
				"error", err,
			)
			if record {
				u.metrics.failure(src.Kind(), "list")
			}
			failed++
			continue
		}

		for _, doc := range docs {
			outcome := OutcomeAccepted
			id := doc.ExternalID()
			if _, dup := seenSlugs[doc.Slug]; dup {
				outcome = OutcomeDuplicateSlug
			} else if _, dup := seenIDs[id]; id != "" && dup {
				outcome = OutcomeDuplicateExternal
			}

			if record {
				u.metrics.document(collection, src.Kind(), outcome)
			}
			if outcome != OutcomeAccepted {
				u.logger.Debug("dropping duplicate document",
					"source", string(src.Kind()),
					"collection", string(collection),
					"slug", doc.Slug,
					"reason", outcome,
				)
				continue
			}

			seenSlugs[doc.Slug] = struct{}{}
			if id != "" {
				seenIDs[id] = struct{}{}
			}
			out = append(out, doc)
		}
	}
	return out, failed, nil
}

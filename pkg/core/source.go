package core

import "context"

// Source defines the read contract every content store implements.
// Adhering to this interface lets the unification layer stay agnostic of
// where documents come from (filesystem, CMS working copy, remote catalog).
type Source interface {
	// Kind identifies the store for priority, dedup bookkeeping and logs.
	Kind() SourceKind

	// List returns every document of a collection.
	// A collection the source does not hold yields an empty slice, not an error.
	List(ctx context.Context, collection Collection) ([]Document, error)

	// Get retrieves a single document by slug.
	// It returns ErrNotFound when the document is absent.
	Get(ctx context.Context, collection Collection, slug string) (Document, error)
}

// ParseCollection maps a user supplied name onto a known collection.
func ParseCollection(name string) (Collection, error) {
	switch c := Collection(name); c {
	case Guides, Reviews, Pages:
		return c, nil
	}
	return "", ErrUnknownCollection
}

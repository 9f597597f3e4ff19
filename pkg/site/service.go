// Package site is the read API the page generator consumes.
package site

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"github.com/smartymode/folio/pkg/core"
	"github.com/smartymode/folio/pkg/typed"
)

// AllCategories selects every document in the category filters.
const AllCategories = "all"

// Service answers every content query of the site.
// Guides and reviews come from the unified view; pages are read from the
// local store only.
type Service struct {
	unified typed.Reader
	pages   core.Source
	logger  *slog.Logger
}

// NewService creates the read API. pages may be nil when there is no local store.
func NewService(unified typed.Reader, pages core.Source, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{unified: unified, pages: pages, logger: logger}
}

// ListAllDocuments returns every document of a collection in site order.
func (s *Service) ListAllDocuments(ctx context.Context, collection core.Collection) ([]core.Document, error) {
	switch collection {
	case core.Guides, core.Reviews:
		return s.unified.All(ctx, collection)
	case core.Pages:
		return s.listPages(ctx)
	}
	return []core.Document{}, nil
}

// GetDocument returns one document, or core.ErrNotFound.
func (s *Service) GetDocument(ctx context.Context, collection core.Collection, slug string) (core.Document, error) {
	switch collection {
	case core.Guides, core.Reviews:
		return s.unified.BySlug(ctx, collection, slug)
	case core.Pages:
		return s.getPage(ctx, slug)
	}
	return core.Document{}, core.ErrNotFound
}

// ByCategory filters a collection by exact category. AllCategories disables the filter.
func (s *Service) ByCategory(ctx context.Context, collection core.Collection, category string) ([]core.Document, error) {
	docs, err := s.ListAllDocuments(ctx, collection)
	if err != nil {
		return nil, err
	}
	return filterCategory(docs, category), nil
}

// Categories returns the distinct, sorted, non-empty categories of a collection.
func (s *Service) Categories(ctx context.Context, collection core.Collection) ([]string, error) {
	docs, err := s.ListAllDocuments(ctx, collection)
	if err != nil {
		return nil, err
	}
	return distinctCategories(docs), nil
}

// Reviews returns every review, newest first.
func (s *Service) Reviews(ctx context.Context) ([]*Review, error) {
	return typed.NewCollection[ReviewFrontmatter](s.unified, core.Reviews, s.logger).List(ctx)
}

// Review returns a single review.
func (s *Service) Review(ctx context.Context, slug string) (*Review, error) {
	return typed.NewCollection[ReviewFrontmatter](s.unified, core.Reviews, s.logger).Get(ctx, slug)
}

// Guides returns every guide, newest first.
func (s *Service) Guides(ctx context.Context) ([]*Guide, error) {
	return typed.NewCollection[GuideFrontmatter](s.unified, core.Guides, s.logger).List(ctx)
}

// Guide returns a single guide.
func (s *Service) Guide(ctx context.Context, slug string) (*Guide, error) {
	return typed.NewCollection[GuideFrontmatter](s.unified, core.Guides, s.logger).Get(ctx, slug)
}

// GuidesByCategory returns the guides of one category, or all of them for AllCategories.
func (s *Service) GuidesByCategory(ctx context.Context, category string) ([]*Guide, error) {
	docs, err := s.ByCategory(ctx, core.Guides, category)
	if err != nil {
		return nil, err
	}
	return typed.DecodeAll[GuideFrontmatter](docs, s.logger), nil
}

// GuideCategories returns the distinct guide categories, sorted.
func (s *Service) GuideCategories(ctx context.Context) ([]string, error) {
	return s.Categories(ctx, core.Guides)
}

// Pages returns every static page in file name order.
func (s *Service) Pages(ctx context.Context) ([]*Page, error) {
	docs, err := s.listPages(ctx)
	if err != nil {
		return nil, err
	}
	return typed.DecodeAll[PageFrontmatter](docs, s.logger), nil
}

// Page returns a single static page.
func (s *Service) Page(ctx context.Context, slug string) (*Page, error) {
	doc, err := s.getPage(ctx, slug)
	if err != nil {
		return nil, err
	}
	return typed.Decode[PageFrontmatter](doc)
}

func (s *Service) listPages(ctx context.Context) ([]core.Document, error) {
	if s.pages == nil {
		return []core.Document{}, nil
	}
	docs, err := s.pages.List(ctx, core.Pages)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		s.logger.Warn("pages unavailable", "error", err)
		return []core.Document{}, nil
	}
	if docs == nil {
		docs = []core.Document{}
	}
	return docs, nil
}

func (s *Service) getPage(ctx context.Context, slug string) (core.Document, error) {
	if s.pages == nil {
		return core.Document{}, core.ErrNotFound
	}
	doc, err := s.pages.Get(ctx, core.Pages, slug)
	if err != nil && !errors.Is(err, core.ErrNotFound) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return core.Document{}, ctxErr
		}
		s.logger.Warn("page unreadable", "slug", slug, "error", err)
		return core.Document{}, core.ErrNotFound
	}
	return doc, err
}

func filterCategory(docs []core.Document, category string) []core.Document {
	if category == AllCategories {
		return docs
	}
	out := make([]core.Document, 0, len(docs))
	for _, d := range docs {
		if d.Category() == category {
			out = append(out, d)
		}
	}
	return out
}

func distinctCategories(docs []core.Document) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, d := range docs {
		c := d.Category()
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

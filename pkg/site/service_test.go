package site_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartymode/folio/pkg/adapters/fs"
	"github.com/smartymode/folio/pkg/core"
	"github.com/smartymode/folio/pkg/site"
	"github.com/smartymode/folio/pkg/unify"
)

func write(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func setup(t *testing.T) *site.Service {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	content := t.TempDir()
	editor := t.TempDir()

	write(t, content, "guides/tripods.mdx", "---\ntitle: Tripods\ndate: 2024-02-01\ncategory: Gear\ntags: [support]\n---\nBody")
	write(t, content, "guides/lenses.mdx", "---\ntitle: Lenses\ndate: 2024-03-01\ncategory: Optics\n---\nBody")
	write(t, content, "guides/bags.mdx", "---\ntitle: Bags\ndate: 2024-01-01\ncategory: Gear\n---\nBody")
	write(t, content, "guides/draft.mdx", "---\ntitle: Draft\n---\nno category")
	write(t, editor, "guides/lenses.md", "---\ntitle: Lenses (edited)\ndate: 2024-03-05\ncategory: Optics\n---\nNew body")

	write(t, content, "reviews/cam-x.mdx", "---\ntitle: Cam X\ndate: 2024-01-10\nasin: B001\nrating: 4.5\npros: [light]\n---\nVerdict")
	write(t, content, "reviews/broken.mdx", "---\ntitle: [oops\n---\n")

	write(t, content, "pages/about.mdx", "---\ntitle: About\nlayout: plain\n---\nWho we are")
	write(t, content, "pages/privacy.mdx", "---\ntitle: Privacy\n---\nPolicy")

	local := fs.NewLocalSource(content, logger)
	u := unify.New([]core.Source{local, fs.NewEditorSource(editor, logger)}, unify.WithLogger(logger))
	return site.NewService(u, local, logger)
}

func TestService_Guides(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	guides, err := svc.Guides(ctx)
	require.NoError(t, err)
	require.Len(t, guides, 4)
	assert.Equal(t, "Lenses (edited)", guides[0].Data.Title)
	assert.Equal(t, core.SourceEditor, guides[0].Source)
	assert.Equal(t, "Tripods", guides[1].Data.Title)
	assert.Equal(t, []string{"support"}, guides[1].Data.Tags)
	assert.Equal(t, "Bags", guides[2].Data.Title)
	assert.Equal(t, "Draft", guides[3].Data.Title, "undated guides sort last")

	g, err := svc.Guide(ctx, "lenses")
	require.NoError(t, err)
	assert.Equal(t, "New body", g.Content)

	_, err = svc.Guide(ctx, "nope")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestService_GuideCategories(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	cats, err := svc.GuideCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Gear", "Optics"}, cats)

	gear, err := svc.GuidesByCategory(ctx, "Gear")
	require.NoError(t, err)
	require.Len(t, gear, 2)
	assert.Equal(t, "tripods", gear[0].Slug)
	assert.Equal(t, "bags", gear[1].Slug)

	all, err := svc.GuidesByCategory(ctx, site.AllCategories)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	none, err := svc.GuidesByCategory(ctx, "Nope")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestService_Reviews(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	reviews, err := svc.Reviews(ctx)
	require.NoError(t, err)
	require.Len(t, reviews, 1, "malformed review is skipped")
	assert.Equal(t, "B001", reviews[0].Data.ASIN)
	assert.Equal(t, 4.5, reviews[0].Data.Rating)
	assert.Equal(t, []string{"light"}, reviews[0].Data.Pros)

	r, err := svc.Review(ctx, "cam-x")
	require.NoError(t, err)
	assert.Equal(t, "Verdict", r.Content)
}

func TestService_Pages(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	pages, err := svc.Pages(ctx)
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, "about", pages[0].Slug)
	assert.Equal(t, "plain", pages[0].Data.Layout)

	p, err := svc.Page(ctx, "privacy")
	require.NoError(t, err)
	assert.Equal(t, "Policy", p.Content)

	_, err = svc.Page(ctx, "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestService_GenericSurface(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	docs, err := svc.ListAllDocuments(ctx, core.Guides)
	require.NoError(t, err)
	assert.Len(t, docs, 4)

	doc, err := svc.GetDocument(ctx, core.Pages, "about")
	require.NoError(t, err)
	assert.Equal(t, "About", doc.Title())

	_, err = svc.GetDocument(ctx, core.Collection("tips"), "about")
	assert.ErrorIs(t, err, core.ErrNotFound)

	unknown, err := svc.ListAllDocuments(ctx, core.Collection("tips"))
	require.NoError(t, err)
	assert.Empty(t, unknown)

	cats, err := svc.Categories(ctx, core.Reviews)
	require.NoError(t, err)
	assert.Empty(t, cats)
}

func TestService_NoPagesSource(t *testing.T) {
	svc := site.NewService(unify.New(nil), nil, nil)

	pages, err := svc.Pages(context.Background())
	require.NoError(t, err)
	assert.Empty(t, pages)

	_, err = svc.Page(context.Background(), "about")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestService_LooselyTypedFrontmatter(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	content := t.TempDir()

	write(t, content, "guides/tripods.mdx", "---\ntitle: Tripods\ndate: 2024-02-01\nreadTime: 5\ntags: support\n---\nBody")
	write(t, content, "guides/bags.mdx", "---\ntitle: Bags\ndate: 2024-01-01\nreadTime: 4 min\n---\nBody")
	write(t, content, "reviews/cam-x.mdx", "---\ntitle: Cam X\ndate: 2024-01-10\nrating: \"4.5\"\npros: light\n---\nVerdict")

	local := fs.NewLocalSource(content, logger)
	svc := site.NewService(unify.New([]core.Source{local}, unify.WithLogger(logger)), local, logger)
	ctx := context.Background()

	raw, err := svc.ListAllDocuments(ctx, core.Guides)
	require.NoError(t, err)
	guides, err := svc.Guides(ctx)
	require.NoError(t, err)
	require.Len(t, guides, len(raw), "typed view keeps every unified guide")
	assert.Equal(t, "5", guides[0].Data.ReadTime)
	assert.Equal(t, []string{"support"}, guides[0].Data.Tags)
	assert.Equal(t, "4 min", guides[1].Data.ReadTime)

	g, err := svc.Guide(ctx, "tripods")
	require.NoError(t, err)
	assert.Equal(t, "5", g.Data.ReadTime)

	r, err := svc.Review(ctx, "cam-x")
	require.NoError(t, err)
	assert.Equal(t, 4.5, r.Data.Rating)
	assert.Equal(t, []string{"light"}, r.Data.Pros)
}

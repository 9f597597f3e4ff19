package platform_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartymode/folio/internal/config"
	"github.com/smartymode/folio/internal/platform"
	"github.com/smartymode/folio/pkg/core"
)

func write(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func catalogServer(t *testing.T, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		body := map[string]any{"data": []map[string]any{
			{"id": 1, "asin": "B001", "title": "Cam X", "status": "fetched", "date_created": "2024-06-01T00:00:00Z"},
			{"id": 2, "asin": "B002", "title": "Sony A7 IV", "status": "fetched", "date_created": "2024-02-01T00:00:00Z"},
		}}
		if r.URL.Query().Get("filter[asin][_eq]") == "B002" {
			body["data"] = body["data"].([]map[string]any)[1:]
		}
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(t *testing.T, catalogURL string) *config.Config {
	t.Helper()
	content := t.TempDir()
	editor := t.TempDir()
	write(t, content, "reviews/cam-x.mdx", "---\ntitle: Cam X\ndate: 2024-01-01\nasin: B001\n---\nHands on.")
	write(t, content, "reviews/old.mdx", "---\ntitle: Old\ndate: 2023-05-01\n---\n")
	write(t, editor, "reviews/old.md", "---\ntitle: Old (edited)\ndate: 2023-05-02\n---\n")

	return &config.Config{
		Content: config.ContentConfig{Dir: content},
		Editor:  config.EditorConfig{Enabled: true, Dir: editor},
		Catalog: config.CatalogConfig{
			Enabled:      catalogURL != "",
			URL:          catalogURL,
			Timeout:      config.DefaultCatalogTimeout,
			MaxRecords:   100,
			AffiliateTag: "tag-20",
		},
	}
}

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFromConfig_AllSources(t *testing.T) {
	srv := catalogServer(t, http.StatusOK)
	app, err := platform.FromConfig(testConfig(t, srv.URL), quiet(), prometheus.NewRegistry())
	require.NoError(t, err)
	require.NotNil(t, app.Editor)
	require.NotNil(t, app.Catalog)
	ctx := context.Background()

	docs, err := app.Site.ListAllDocuments(ctx, core.Reviews)
	require.NoError(t, err)

	var got []string
	for _, d := range docs {
		got = append(got, d.Slug+"@"+string(d.Source))
	}
	assert.Equal(t, []string{"b002@catalog", "cam-x@local", "old@editor"}, got)

	r, err := app.Site.Review(ctx, "b002")
	require.NoError(t, err)
	assert.Equal(t, "Mirrorless Cameras", r.Data.Category)
	assert.Equal(t, "https://www.amazon.com/dp/B002?tag=tag-20", r.Data.AmazonURL)

	assert.Len(t, app.WatchRoots(), 2)
	assert.Len(t, app.Components(), 5)
}

func TestFromConfig_CatalogDown(t *testing.T) {
	srv := catalogServer(t, http.StatusServiceUnavailable)
	app, err := platform.FromConfig(testConfig(t, srv.URL), quiet(), nil)
	require.NoError(t, err)

	docs, err := app.Site.ListAllDocuments(context.Background(), core.Reviews)
	require.NoError(t, err, "a catalog outage never fails the build")
	assert.Len(t, docs, 2)
}

func TestFromConfig_DisabledSourcesAreNotBuilt(t *testing.T) {
	cfg := testConfig(t, "")
	cfg.Editor.Enabled = false

	app, err := platform.FromConfig(cfg, quiet(), nil)
	require.NoError(t, err)
	assert.Nil(t, app.Editor)
	assert.Nil(t, app.Catalog)
	assert.Len(t, app.Unifier.Sources(), 1)
	assert.Equal(t, []string{cfg.Content.Dir}, app.WatchRoots())
}

func TestNew_RequiresContentDir(t *testing.T) {
	_, err := platform.New(platform.WithContentDir(""))
	assert.ErrorIs(t, err, platform.ErrMissingContentDir)
}

func TestNew_InjectedSource(t *testing.T) {
	content := t.TempDir()
	write(t, content, "guides/a.mdx", "---\ntitle: A\n---\n")

	extra := &stubSource{doc: core.Document{Slug: "a", Source: core.SourceEditor, Frontmatter: core.Frontmatter{"title": "A from stub"}}}
	app, err := platform.New(platform.WithContentDir(content), platform.WithSource(extra), platform.WithLogger(quiet()))
	require.NoError(t, err)

	doc, err := app.Site.GetDocument(context.Background(), core.Guides, "a")
	require.NoError(t, err)
	assert.Equal(t, "A from stub", doc.Title(), "injected editor-kind source outranks local files")
}

type stubSource struct {
	doc core.Document
}

func (s *stubSource) Kind() core.SourceKind { return s.doc.Source }

func (s *stubSource) List(context.Context, core.Collection) ([]core.Document, error) {
	return []core.Document{s.doc}, nil
}

func (s *stubSource) Get(_ context.Context, _ core.Collection, slug string) (core.Document, error) {
	if slug == s.doc.Slug {
		return s.doc, nil
	}
	return core.Document{}, core.ErrNotFound
}

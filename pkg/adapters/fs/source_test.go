package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartymode/folio/pkg/adapters/fs"
	"github.com/smartymode/folio/pkg/core"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestSource_List(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "reviews/cam-x.mdx", "---\ntitle: Cam X\ndate: 2024-01-01\nasin: B001\n---\nBody X")
	writeFile(t, root, "reviews/lens-y.mdx", "---\ntitle: Lens Y\n---\n")
	writeFile(t, root, "reviews/notes.txt", "ignored")
	writeFile(t, root, "reviews/draft.md", "---\ntitle: Not for local\n---\n")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "reviews", "nested.mdx"), 0o755))

	src := fs.NewLocalSource(root, nil)
	docs, err := src.List(context.Background(), core.Reviews)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, "cam-x", docs[0].Slug)
	assert.Equal(t, "Cam X", docs[0].Title())
	assert.Equal(t, "B001", docs[0].ExternalID())
	assert.Equal(t, "Body X", docs[0].Content)
	assert.Equal(t, core.SourceLocal, docs[0].Source)

	assert.Equal(t, "lens-y", docs[1].Slug)
	assert.Equal(t, "", docs[1].Content)
}

func TestSource_List_MissingCollection(t *testing.T) {
	src := fs.NewLocalSource(t.TempDir(), nil)
	docs, err := src.List(context.Background(), core.Guides)
	assert.NoError(t, err)
	assert.Empty(t, docs)

	src = fs.NewLocalSource(filepath.Join(t.TempDir(), "does-not-exist"), nil)
	docs, err = src.List(context.Background(), core.Guides)
	assert.NoError(t, err)
	assert.Empty(t, docs)
}

// One malformed file must not sink the whole collection.
func TestSource_List_SkipsMalformedFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "guides/good.mdx", "---\ntitle: Good\n---\nok")
	writeFile(t, root, "guides/unclosed.mdx", "---\ntitle: Broken\n")
	writeFile(t, root, "guides/bad-yaml.mdx", "---\ntitle: [oops\n---\n")
	writeFile(t, root, "guides/also-good.mdx", "plain body")

	docs, err := fs.NewLocalSource(root, nil).List(context.Background(), core.Guides)
	require.NoError(t, err)

	var got []string
	for _, d := range docs {
		got = append(got, d.Slug)
	}
	assert.ElementsMatch(t, []string{"good", "also-good"}, got)
}

func TestSource_EditorExtensionPreference(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "guides/setup.mdx", "---\ntitle: From MDX\n---\n")
	writeFile(t, root, "guides/setup.md", "---\ntitle: From MD\n---\n")
	writeFile(t, root, "guides/only-mdx.mdx", "---\ntitle: Only MDX\n---\n")

	src := fs.NewEditorSource(root, nil)
	ctx := context.Background()

	doc, err := src.Get(ctx, core.Guides, "setup")
	require.NoError(t, err)
	assert.Equal(t, "From MD", doc.Title())
	assert.Equal(t, core.SourceEditor, doc.Source)

	doc, err = src.Get(ctx, core.Guides, "only-mdx")
	require.NoError(t, err)
	assert.Equal(t, "Only MDX", doc.Title())

	docs, err := src.List(ctx, core.Guides)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	for _, d := range docs {
		if d.Slug == "setup" {
			assert.Equal(t, "From MD", d.Title(), "List and Get must agree on the preferred variant")
		}
	}
}

func TestSource_Get(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "reviews/cam-x.mdx", "---\ntitle: Cam X\n---\nbody")
	writeFile(t, root, "reviews/broken.mdx", "---\ntitle: x\n")
	src := fs.NewLocalSource(root, nil)
	ctx := context.Background()

	doc, err := src.Get(ctx, core.Reviews, "cam-x")
	require.NoError(t, err)
	assert.Equal(t, "body", doc.Content)

	_, err = src.Get(ctx, core.Reviews, "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = src.Get(ctx, core.Reviews, "../reviews/cam-x")
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = src.Get(ctx, core.Reviews, "broken")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, core.ErrNotFound)
}

func TestSource_State(t *testing.T) {
	src := fs.NewEditorSource("outstatic/content", nil)
	state, ok := src.State().(fs.SourceState)
	require.True(t, ok)
	assert.Equal(t, "editor", state.Kind)
	assert.Equal(t, "*.{md,mdx}", state.Pattern)
	assert.Equal(t, "fs-source", src.ComponentType())
}

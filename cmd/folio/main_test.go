package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartymode/folio/pkg/core"
	"github.com/smartymode/folio/pkg/export"
)

func write(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// setupSite lays out a site with local and editor content and returns the
// path of its config file.
func setupSite(t *testing.T) (cfgPath, outDir string) {
	t.Helper()
	site := t.TempDir()
	content := filepath.Join(site, "content")
	editor := filepath.Join(site, "outstatic", "content")
	outDir = filepath.Join(site, "out")

	write(t, content, "guides/tripods.mdx", "---\ntitle: Tripods\ndate: 2024-02-01\ncategory: Gear\n---\nThree legs.")
	write(t, content, "guides/lenses.mdx", "---\ntitle: Lenses\ndate: 2024-03-01\ncategory: Optics\n---\nOld body.")
	write(t, editor, "guides/lenses.md", "---\ntitle: Lenses (edited)\ndate: 2024-03-05\ncategory: Optics\n---\nNew body.")
	write(t, content, "pages/about.mdx", "---\ntitle: About\n---\nWho we are.")

	cfgPath = filepath.Join(site, "folio.yaml")
	write(t, site, "folio.yaml", "content:\n  dir: "+content+"\neditor:\n  enabled: true\n  dir: "+editor+"\nexport:\n  dir: "+outDir+"\nlogging:\n  level: error\n")
	return cfgPath, outDir
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	color.NoColor = true

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestList_Table(t *testing.T) {
	cfgPath, _ := setupSite(t)

	out, err := execute(t, "list", "guides", "--config", cfgPath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Contains(t, lines[0], "SLUG")
	assert.Contains(t, lines[1], "lenses")
	assert.Contains(t, lines[1], "editor")
	assert.Contains(t, lines[2], "tripods")
	assert.Contains(t, lines[2], "local")
}

func TestList_JSONWithCategory(t *testing.T) {
	cfgPath, _ := setupSite(t)

	out, err := execute(t, "list", "guides", "--json", "--category", "Gear", "--config", cfgPath)
	require.NoError(t, err)

	var docs []core.Document
	require.NoError(t, json.Unmarshal([]byte(out), &docs))
	require.Len(t, docs, 1)
	assert.Equal(t, "tripods", docs[0].Slug)
}

func TestList_UnknownCollection(t *testing.T) {
	cfgPath, _ := setupSite(t)
	_, err := execute(t, "list", "tips", "--config", cfgPath)
	assert.ErrorIs(t, err, core.ErrUnknownCollection)
}

func TestRead(t *testing.T) {
	cfgPath, _ := setupSite(t)

	out, err := execute(t, "read", "guides", "lenses", "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "New body.", out)

	out, err = execute(t, "read", "pages", "about", "--json", "--config", cfgPath)
	require.NoError(t, err)
	var doc core.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "About", doc.Title())

	_, err = execute(t, "read", "guides", "missing", "--config", cfgPath)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestCategories(t *testing.T) {
	cfgPath, _ := setupSite(t)

	out, err := execute(t, "categories", "guides", "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "Gear\nOptics\n", out)
}

func TestExport(t *testing.T) {
	cfgPath, outDir := setupSite(t)

	out, err := execute(t, "export", "--metrics", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "exported 2 guides, 0 reviews, 1 pages")

	for _, name := range []string{"guides.json", "reviews.json", "pages.json", export.CategoriesFile, export.ManifestFile, export.MetricsFile} {
		_, err := os.Stat(filepath.Join(outDir, name))
		assert.NoError(t, err, name)
	}

	metrics, err := os.ReadFile(filepath.Join(outDir, export.MetricsFile))
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "folio_unify_documents_total")
}

func TestExport_DirFlag(t *testing.T) {
	cfgPath, outDir := setupSite(t)
	other := t.TempDir()

	_, err := execute(t, "export", "--dir", other, "--config", cfgPath)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(other, export.ManifestFile))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(outDir, export.ManifestFile))
	assert.True(t, os.IsNotExist(err))
}

func TestInspect(t *testing.T) {
	cfgPath, _ := setupSite(t)

	out, err := execute(t, "inspect", "--config", cfgPath)
	require.NoError(t, err)

	var states []componentState
	require.NoError(t, json.Unmarshal([]byte(out), &states))
	var types []string
	for _, s := range states {
		types = append(types, s.Type)
	}
	assert.Equal(t, "unifier", types[0])
	assert.Len(t, types, 3, "unifier plus the editor and local sources")
}

func TestVersion(t *testing.T) {
	cfgPath, _ := setupSite(t)
	out, err := execute(t, "version", "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "folio version dev\n", out)
}

func TestResolvePaths(t *testing.T) {
	cfgPath, _ := setupSite(t)
	_, err := execute(t, "version", "--config", cfgPath)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(cfg.Content.Dir))
	assert.True(t, filepath.IsAbs(cfg.Export.Dir))
}

// Package fs implements content sources backed by directories of
// markdown/MDX files with YAML frontmatter.
package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/smartymode/folio/pkg/core"
)

// Extension sets of the two file-backed stores.
var (
	LocalExtensions  = []string{".mdx"}
	EditorExtensions = []string{".md", ".mdx"}
)

// Config holds the configuration for a filesystem source.
type Config struct {
	Root       string          // e.g. "content" or "outstatic/content"
	Kind       core.SourceKind // tag stamped on every document
	Extensions []string        // accepted extensions in preference order
	Logger     *slog.Logger
}

// Source reads collections from <Root>/<collection>/<slug><ext>.
type Source struct {
	config  Config
	pattern string
	logger  *slog.Logger
}

// NewSource creates a filesystem-backed source.
func NewSource(config Config) *Source {
	if len(config.Extensions) == 0 {
		config.Extensions = LocalExtensions
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{
		config:  config,
		pattern: extensionPattern(config.Extensions),
		logger:  logger.With("source", string(config.Kind), "root", config.Root),
	}
}

// NewLocalSource creates the MDX content store reader.
func NewLocalSource(root string, logger *slog.Logger) *Source {
	return NewSource(Config{Root: root, Kind: core.SourceLocal, Extensions: LocalExtensions, Logger: logger})
}

// NewEditorSource creates the CMS working copy reader, which accepts .md and .mdx.
func NewEditorSource(root string, logger *slog.Logger) *Source {
	return NewSource(Config{Root: root, Kind: core.SourceEditor, Extensions: EditorExtensions, Logger: logger})
}

// Kind implements core.Source.
func (s *Source) Kind() core.SourceKind {
	return s.config.Kind
}

// Root returns the directory this source reads from.
func (s *Source) Root() string {
	return s.config.Root
}

// List reads every document of a collection.
//
// Workflow:
//  1. A missing collection directory yields no documents.
//  2. Files are matched against the accepted extensions; when one slug exists
//     under several extensions the preferred one wins, as in Get.
//  3. Each file is parsed on its own; a malformed file is logged and skipped.
func (s *Source) List(ctx context.Context, collection core.Collection) ([]core.Document, error) {
	dir := filepath.Join(s.config.Root, string(collection))

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	// slug -> file name of the preferred variant
	chosen := make(map[string]string)
	var order []string
	for _, e := range entries {
		if e.IsDir() || !s.accepts(e.Name()) {
			continue
		}
		ext := filepath.Ext(e.Name())
		slug := strings.TrimSuffix(e.Name(), ext)
		prev, seen := chosen[slug]
		if !seen {
			order = append(order, slug)
			chosen[slug] = e.Name()
			continue
		}
		if s.rank(ext) < s.rank(filepath.Ext(prev)) {
			chosen[slug] = e.Name()
		}
	}

	docs := make([]core.Document, 0, len(order))
	for _, slug := range order {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := filepath.Join(dir, chosen[slug])
		doc, err := s.read(path, slug)
		if err != nil {
			s.logger.Warn("skipping unreadable document",
				"collection", string(collection),
				"file", chosen[slug],
				"error", err,
			)
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Get checks each accepted extension in preference order and returns the first match.
func (s *Source) Get(ctx context.Context, collection core.Collection, slug string) (core.Document, error) {
	if !validSlug(slug) {
		return core.Document{}, core.ErrNotFound
	}
	if err := ctx.Err(); err != nil {
		return core.Document{}, err
	}

	dir := filepath.Join(s.config.Root, string(collection))
	for _, ext := range s.config.Extensions {
		path := filepath.Join(dir, slug+ext)
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return core.Document{}, fmt.Errorf("failed to stat %s: %w", path, err)
		}
		doc, err := s.read(path, slug)
		if err != nil {
			return core.Document{}, fmt.Errorf("failed to parse document %s/%s: %w", collection, slug, err)
		}
		return doc, nil
	}
	return core.Document{}, core.ErrNotFound
}

func (s *Source) read(path, slug string) (core.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return core.Document{}, err
	}
	defer f.Close()

	fm, body, err := parseDocument(f)
	if err != nil {
		return core.Document{}, err
	}
	return core.Document{
		Slug:        slug,
		Frontmatter: fm,
		Content:     body,
		Source:      s.config.Kind,
	}, nil
}

func (s *Source) accepts(name string) bool {
	if strings.HasPrefix(name, TempFilePrefix) {
		return false
	}
	ok, err := doublestar.Match(s.pattern, name)
	return err == nil && ok
}

func (s *Source) rank(ext string) int {
	for i, e := range s.config.Extensions {
		if e == ext {
			return i
		}
	}
	return len(s.config.Extensions)
}

// extensionPattern turns [".md", ".mdx"] into "*.{md,mdx}".
func extensionPattern(exts []string) string {
	trimmed := make([]string, 0, len(exts))
	for _, e := range exts {
		trimmed = append(trimmed, strings.TrimPrefix(e, "."))
	}
	if len(trimmed) == 1 {
		return "*." + trimmed[0]
	}
	return "*.{" + strings.Join(trimmed, ",") + "}"
}

// validSlug rejects anything that could escape the collection directory.
func validSlug(slug string) bool {
	if slug == "" || slug == "." || slug == ".." {
		return false
	}
	return !strings.ContainsAny(slug, `/\`)
}

var _ core.Source = (*Source)(nil)

// Package core holds the domain types shared by every content source.
package core

import (
	"fmt"
	"strings"
	"time"
)

// Frontmatter represents the open key-value header of a document.
// Known keys (title, date, category, asin...) have accessors on Document;
// everything else passes through untouched.
type Frontmatter map[string]any

// SourceKind tags the store a document was read from.
type SourceKind string

const (
	SourceEditor  SourceKind = "editor"
	SourceLocal   SourceKind = "local"
	SourceCatalog SourceKind = "catalog"
)

// Collection names a group of documents of one content type.
type Collection string

const (
	Guides  Collection = "guides"
	Reviews Collection = "reviews"
	Pages   Collection = "pages"
)

// Well-known frontmatter keys.
const (
	KeyTitle       = "title"
	KeyDate        = "date"
	KeyDescription = "description"
	KeyCategory    = "category"
	KeyTags        = "tags"
	KeyExternalID  = "asin"
)

// Document is the central entity of the domain.
// It is constructed fresh on every read and never mutated once returned.
type Document struct {
	Slug        string      `json:"slug"`
	Frontmatter Frontmatter `json:"frontmatter"`
	Content     string      `json:"content"`
	Source      SourceKind  `json:"source"`
}

// String returns the frontmatter value under key rendered as a string.
// Missing and nil values yield "".
func (d Document) String(key string) string {
	v, ok := d.Frontmatter[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case time.Time:
		return t.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// Title returns the document title.
func (d Document) Title() string {
	return d.String(KeyTitle)
}

// Category returns the document category, if any.
func (d Document) Category() string {
	return d.String(KeyCategory)
}

// Date parses the date frontmatter field.
// ok is false when the field is missing or unparsable.
func (d Document) Date() (t time.Time, ok bool) {
	return ParseDate(d.Frontmatter[KeyDate])
}

// ExternalID returns the normalized catalog identifier, or "" when absent.
func (d Document) ExternalID() string {
	return NormalizeExternalID(d.String(KeyExternalID))
}

// NormalizeExternalID trims and upper-cases a catalog identifier so that
// "b001" and "B001 " compare equal.
func NormalizeExternalID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

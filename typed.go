package folio

import (
	"github.com/smartymode/folio/pkg/core"
	"github.com/smartymode/folio/pkg/typed"
)

// Model pairs a document with its frontmatter decoded into T.
type Model[T any] = typed.Model[T]

// Decode converts a raw document into its typed form.
func Decode[T any](doc core.Document) (*Model[T], error) {
	return typed.Decode[T](doc)
}

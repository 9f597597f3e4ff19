// Package typed provides type-safe views over unified documents.
package typed

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"

	"github.com/smartymode/folio/pkg/core"
)

// ErrInvalidDocument is returned when a document lacks a field T marks
// with `validate:"required"`.
var ErrInvalidDocument = errors.New("invalid document")

var validate = validator.New()

// Model wraps a core.Document with its frontmatter decoded into T.
// The raw bag is kept alongside so keys T does not declare are not lost.
type Model[T any] struct {
	Slug        string           `json:"slug"`
	Content     string           `json:"content"`
	Source      core.SourceKind  `json:"source"`
	Data        T                `json:"frontmatter"`
	Frontmatter core.Frontmatter `json:"-"`
}

// Decode converts a document into its typed model.
//
// Frontmatter is open, so decoding is lenient: scalars are converted to the
// field types of T (readTime: 5 fills a string field, rating: "4.5" a float
// one) and values that still do not fit leave their field zero. The only
// failure is a missing required field, reported as ErrInvalidDocument.
func Decode[T any](doc core.Document) (*Model[T], error) {
	var data T
	if len(doc.Frontmatter) > 0 {
		fitted := fitFrontmatter(doc.Frontmatter, reflect.TypeOf(data))
		dataBytes, err := json.Marshal(fitted)
		if err != nil {
			return nil, fmt.Errorf("frontmatter marshal failed: %w", err)
		}
		if err := json.Unmarshal(dataBytes, &data); err != nil {
			var typeErr *json.UnmarshalTypeError
			if !errors.As(err, &typeErr) {
				return nil, fmt.Errorf("unmarshal into %T failed: %w", data, err)
			}
		}
	}

	if isStruct(reflect.TypeOf(data)) {
		if err := validate.Struct(data); err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidDocument, doc.Slug, err)
		}
	}

	return &Model[T]{
		Slug:        doc.Slug,
		Content:     doc.Content,
		Source:      doc.Source,
		Data:        data,
		Frontmatter: doc.Frontmatter,
	}, nil
}

func isStruct(t reflect.Type) bool {
	return t != nil && t.Kind() == reflect.Struct
}

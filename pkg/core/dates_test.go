package core_test

import (
	"testing"
	"time"

	"github.com/smartymode/folio/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		in    any
		want  time.Time
		valid bool
	}{
		{"date only", "2024-03-01", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), true},
		{"catalog timestamp", "2024-01-15T10:30:00.000Z", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), true},
		{"rfc3339", "2024-01-15T10:30:00+02:00", time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC), true},
		{"long form", "March 5, 2024", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), true},
		{"time value", time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC), time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC), true},
		{"garbage", "soon", time.Time{}, false},
		{"empty", "  ", time.Time{}, false},
		{"nil", nil, time.Time{}, false},
		{"number", 20240101, time.Time{}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := core.ParseDate(tc.in)
			assert.Equal(t, tc.valid, ok)
			if tc.valid {
				assert.True(t, tc.want.Equal(got), "want %v, got %v", tc.want, got)
			}
		})
	}
}

func doc(slug, date string) core.Document {
	fm := core.Frontmatter{}
	if date != "" {
		fm[core.KeyDate] = date
	}
	return core.Document{Slug: slug, Frontmatter: fm}
}

func slugs(docs []core.Document) []string {
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Slug)
	}
	return out
}

func TestSortByDateDesc(t *testing.T) {
	docs := []core.Document{
		doc("feb", "2024-02-01"),
		doc("march", "2024-03-01"),
		doc("jan", "2024-01-01"),
	}
	core.SortByDateDesc(docs)
	assert.Equal(t, []string{"march", "feb", "jan"}, slugs(docs))
}

// Undated documents sink to the end and keep their incoming order.
func TestSortByDateDesc_UnparsableDates(t *testing.T) {
	docs := []core.Document{
		doc("broken-a", "not a date"),
		doc("old", "2023-01-01"),
		doc("missing", ""),
		doc("new", "2024-06-01"),
		doc("broken-b", "31/31/2024"),
	}
	core.SortByDateDesc(docs)
	require.Len(t, docs, 5)
	assert.Equal(t, []string{"new", "old", "broken-a", "missing", "broken-b"}, slugs(docs))
}

func TestSortByDateDesc_EqualDatesAreStable(t *testing.T) {
	docs := []core.Document{
		doc("first", "2024-01-01"),
		doc("second", "2024-01-01"),
		doc("third", "2024-01-01"),
	}
	core.SortByDateDesc(docs)
	assert.Equal(t, []string{"first", "second", "third"}, slugs(docs))
}

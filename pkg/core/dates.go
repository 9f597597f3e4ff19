package core

import (
	"sort"
	"strings"
	"time"
)

// dateLayouts lists the accepted frontmatter/catalog date formats, most common first.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
}

// ParseDate interprets a frontmatter date value.
// ok is false for nil, empty and unparsable values.
func ParseDate(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}

// SortByDateDesc stable-sorts documents newest first.
// Documents without a parsable date go after every dated document and keep
// their incoming relative order.
func SortByDateDesc(docs []Document) {
	sort.SliceStable(docs, func(i, j int) bool {
		di, okI := docs[i].Date()
		dj, okJ := docs[j].Date()
		switch {
		case okI && okJ:
			return di.After(dj)
		case okI:
			return true
		default:
			return false
		}
	})
}

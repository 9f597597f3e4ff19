package fs

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/smartymode/folio/pkg/core"
)

var (
	errUnclosedFrontmatter = errors.New("frontmatter started but no closing delimiter found")

	utf8BOM   = []byte("\xef\xbb\xbf")
	delimiter = []byte("---")
)

// parseDocument splits a markdown/MDX file into its YAML frontmatter and body.
// Files without a leading delimiter are treated as pure body.
func parseDocument(r io.Reader) (core.Frontmatter, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", err
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	fm := make(core.Frontmatter)

	header, ok := cutLine(data)
	if !ok || !isDelimiter(header) {
		return fm, string(data), nil
	}

	rest := data[len(header):]

	var yamlData, body []byte
	found := false
	for offset := 0; offset <= len(rest); {
		line, _ := cutLine(rest[offset:])
		if isDelimiter(line) {
			yamlData = rest[:offset]
			body = rest[offset+len(line):]
			found = true
			break
		}
		if len(line) == 0 {
			break
		}
		offset += len(line)
	}
	if !found {
		return nil, "", errUnclosedFrontmatter
	}

	if err := yaml.Unmarshal(yamlData, &fm); err != nil {
		return nil, "", fmt.Errorf("failed to parse frontmatter: %w", err)
	}
	if fm == nil {
		fm = make(core.Frontmatter)
	}
	for k, v := range fm {
		fm[k] = normalizeValue(v)
	}

	return fm, string(body), nil
}

// normalizeValue turns YAML timestamps back into the strings the author wrote,
// so that frontmatter values round-trip the same way whatever the source.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case time.Time:
		u := t.UTC()
		if u.Hour() == 0 && u.Minute() == 0 && u.Second() == 0 && u.Nanosecond() == 0 {
			return u.Format("2006-01-02")
		}
		return t.Format(time.RFC3339)
	case map[string]any:
		for k, e := range t {
			t[k] = normalizeValue(e)
		}
		return t
	case []any:
		for i, e := range t {
			t[i] = normalizeValue(e)
		}
		return t
	}
	return v
}

// cutLine returns the first line of data including its terminator.
// ok is false when data is empty.
func cutLine(data []byte) (line []byte, ok bool) {
	if len(data) == 0 {
		return nil, false
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return data[:i+1], true
	}
	return data, true
}

// isDelimiter reports whether line is a bare "---" fence.
func isDelimiter(line []byte) bool {
	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))
	return bytes.Equal(bytes.TrimRight(line, " \t"), delimiter)
}

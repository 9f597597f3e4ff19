package typed

import (
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/smartymode/folio/pkg/core"
)

// fitFrontmatter returns a copy of fm with every value converted to the
// kind of the T field it lands in: numbers become strings for string
// fields, numeric strings become numbers, a lone scalar becomes a one
// element list. Values that cannot be converted are left out of the copy
// and stay available in the raw bag. Keys T does not declare pass through.
func fitFrontmatter(fm core.Frontmatter, t reflect.Type) map[string]any {
	out := make(map[string]any, len(fm))
	for k, v := range fm {
		out[k] = v
	}

	if t == nil {
		return out
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return out
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Anonymous {
			continue
		}
		name := jsonName(f)
		if name == "" {
			continue
		}
		key, ok := lookupKey(out, name)
		if !ok || out[key] == nil {
			continue
		}
		if v, ok := fitValue(out[key], f.Type); ok {
			out[key] = v
		} else {
			delete(out, key)
		}
	}
	return out
}

func jsonName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "-" {
		return ""
	}
	if name, _, _ := strings.Cut(tag, ","); name != "" {
		return name
	}
	return f.Name
}

// lookupKey finds name in m the way encoding/json does: exact match first,
// then case-insensitive.
func lookupKey(m map[string]any, name string) (string, bool) {
	if _, ok := m[name]; ok {
		return name, true
	}
	for k := range m {
		if strings.EqualFold(k, name) {
			return k, true
		}
	}
	return "", false
}

func fitValue(v any, t reflect.Type) (any, bool) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.String:
		return asString(v)
	case reflect.Float32, reflect.Float64:
		return asFloat(v)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		f, ok := asFloat(v)
		if !ok || f != math.Trunc(f) {
			return nil, false
		}
		if t.Kind() >= reflect.Uint && f < 0 {
			return nil, false
		}
		return int64(f), true
	case reflect.Bool:
		switch b := v.(type) {
		case bool:
			return b, true
		case string:
			parsed, err := strconv.ParseBool(strings.TrimSpace(b))
			return parsed, err == nil
		}
		return nil, false
	case reflect.Slice:
		items, ok := v.([]any)
		if !ok {
			if _, isMap := v.(map[string]any); isMap {
				return nil, false
			}
			items = []any{v}
		}
		out := make([]any, 0, len(items))
		for _, item := range items {
			if fitted, ok := fitValue(item, t.Elem()); ok {
				out = append(out, fitted)
			}
		}
		return out, true
	}
	return v, true
}

func asString(v any) (any, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case bool:
		return strconv.FormatBool(s), true
	case time.Time:
		return s.Format(time.RFC3339), true
	}
	if f, ok := number(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64), true
	}
	return nil, false
}

func asFloat(v any) (float64, bool) {
	if f, ok := number(v); ok {
		return f, true
	}
	if s, ok := v.(string); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		return f, err == nil
	}
	return 0, false
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

package models

import (
	"fmt"
	"strconv"
	"time"
)

// Record is a row as it leaves the store: a flat map keyed by camelCase field
// names. Typed models are decoded from it with the XFromRecord constructors.
type Record map[string]any

// Has reports whether key is present and non-nil.
func (r Record) Has(key string) bool {
	v, ok := r[key]
	return ok && v != nil
}

// Int64 returns the integer stored under key, or 0.
func (r Record) Int64(key string) int64 {
	n, _ := toInt64(r[key])
	return n
}

// Int64Ptr returns nil for a missing or NULL column.
func (r Record) Int64Ptr(key string) *int64 {
	n, ok := toInt64(r[key])
	if !ok {
		return nil
	}
	return &n
}

// Int returns the integer stored under key, or 0.
func (r Record) Int(key string) int {
	return int(r.Int64(key))
}

// IntPtr returns nil for a missing or NULL column.
func (r Record) IntPtr(key string) *int {
	n, ok := toInt64(r[key])
	if !ok {
		return nil
	}
	i := int(n)
	return &i
}

// String returns the text stored under key, or "".
func (r Record) String(key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// StringPtr returns nil for a missing or NULL column.
func (r Record) StringPtr(key string) *string {
	if !r.Has(key) {
		return nil
	}
	s := r.String(key)
	return &s
}

// Time returns the timestamp stored under key, or the zero time.
func (r Record) Time(key string) time.Time {
	if t, ok := r[key].(time.Time); ok {
		return t
	}
	return time.Time{}
}

// Strings returns a text array column. NULL elements are skipped.
func (r Record) Strings(key string) []string {
	switch v := r[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return []string{}
	}
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case int16:
		return int64(n), true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	case string:
		parsed, err := strconv.ParseInt(n, 10, 64)
		return parsed, err == nil
	default:
		return 0, false
	}
}

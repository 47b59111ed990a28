// Package casing maps storage column names (snake_case) to record field names
// (camelCase) and back. Both directions are pure; for every well-formed column
// name ToSnake(ToCamel(name)) == name.
package casing

import (
	"strings"
	"unicode"
)

// ToCamel converts a snake_case column name into a camelCase field name.
// "created_at" becomes "createdAt", "id" stays "id".
func ToCamel(column string) string {
	if !strings.Contains(column, "_") {
		return column
	}

	var b strings.Builder
	b.Grow(len(column))
	upperNext := false
	for i, r := range column {
		if r == '_' && i > 0 {
			upperNext = true
			continue
		}
		if upperNext {
			b.WriteRune(unicode.ToUpper(r))
			upperNext = false
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ToSnake converts a camelCase field name into a snake_case column name.
func ToSnake(field string) string {
	var b strings.Builder
	b.Grow(len(field) + 4)
	for i, r := range field {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// CamelizeKeys returns a copy of row with every key passed through ToCamel.
func CamelizeKeys(row map[string]any) map[string]any {
	out := make(map[string]any, len(row))
	for k, v := range row {
		out[ToCamel(k)] = v
	}
	return out
}

// SnakeKeys returns a copy of fields with every key passed through ToSnake.
func SnakeKeys(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[ToSnake(k)] = v
	}
	return out
}

// FILE: lixenwraith/fini/split.go
package fini

import (
	"strings"
	"unicode"
)

const escapeChar = '\\'

// splitEscaped splits s at every separator rune not immediately preceded by a
// backslash. An escaped separator is kept literally and its backslash dropped;
// all other backslashes are kept.
func splitEscaped(s string, isSep func(rune) bool) []string {
	var fields []string
	var b strings.Builder
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == escapeChar && i+1 < len(runes) && isSep(runes[i+1]) {
			b.WriteRune(runes[i+1])
			i++
			continue
		}
		if isSep(r) {
			fields = append(fields, b.String())
			b.Reset()
			continue
		}
		b.WriteRune(r)
	}
	return append(fields, b.String())
}

func isLineBreak(r rune) bool {
	return r == '\n' || r == '\r'
}

// parseComma splits on commas and line breaks, trims each field and drops blanks.
func parseComma(s string) []string {
	result := []string{}
	if s == "" {
		return result
	}
	for _, field := range splitEscaped(s, func(r rune) bool { return r == ',' || isLineBreak(r) }) {
		if field = strings.TrimSpace(field); field != "" {
			result = append(result, field)
		}
	}
	return result
}

// parseLine splits on line breaks and trims whitespace and commas from both
// ends of each field, dropping blanks.
func parseLine(s string) []string {
	result := []string{}
	if s == "" {
		return result
	}
	trim := func(r rune) bool { return r == ',' || unicode.IsSpace(r) }
	for _, field := range splitEscaped(s, isLineBreak) {
		if field = strings.TrimFunc(field, trim); field != "" {
			result = append(result, field)
		}
	}
	return result
}

// escapeComma is the inverse of parseComma for a single field.
func escapeComma(s string) string {
	return strings.ReplaceAll(s, ",", `\,`)
}

// joinComma renders a list so that parseComma returns it unchanged.
func joinComma(items []string) string {
	escaped := make([]string, len(items))
	for i, item := range items {
		escaped[i] = escapeComma(item)
	}
	return strings.Join(escaped, ", ")
}

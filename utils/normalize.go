package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// StripAccents decomposes s and drops combining marks, so "DÍVIDAS" becomes "DIVIDAS".
func StripAccents(s string) string {
	// transform chains keep state, so one is built per call
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// NormalizeLine prepares a report line for label matching: accents removed,
// upper-cased, whitespace runs collapsed and trimmed.
func NormalizeLine(s string) string {
	s = StripAccents(strings.ToUpper(s))
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeLines applies NormalizeLine to every line, keeping indexes aligned.
func NormalizeLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = NormalizeLine(l)
	}
	return out
}

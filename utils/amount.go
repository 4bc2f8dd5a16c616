package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var amountNoise = regexp.MustCompile(`[^\d.,]`)

// ParseAmount converts a numeric token as printed in the reports into a float.
//
// The reports follow the Brazilian convention: "." groups thousands and ","
// marks decimals. The rules are deliberately asymmetric and are not a general
// number parser:
//   - anything other than digits, "," and "." is discarded ("R$ 12,5" -> "12,5")
//   - several commas and no dot ("5,837,49"): only the last comma is decimal
//   - comma and dot ("5.496,69"): dots are dropped, the comma becomes the point
//   - a lone comma is decimal; dots alone are left untouched
//
// The second return value is false when nothing numeric could be recovered.
func ParseAmount(raw string) (float64, bool) {
	s := amountNoise.ReplaceAllString(raw, "")
	if s == "" {
		return 0, false
	}

	if strings.Count(s, ",") > 1 && !strings.Contains(s, ".") {
		last := strings.LastIndex(s, ",")
		s = strings.ReplaceAll(s[:last], ",", "") + s[last:]
	}

	hasComma := strings.Contains(s, ",")
	switch {
	case hasComma && strings.Contains(s, "."):
		s = strings.ReplaceAll(strings.ReplaceAll(s, ".", ""), ",", ".")
	case hasComma:
		s = strings.ReplaceAll(s, ",", ".")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// AmountPtr is ParseAmount in the nullable form used by dto.Metrics.
func AmountPtr(raw string) *float64 {
	v, ok := ParseAmount(raw)
	if !ok {
		return nil
	}
	return &v
}

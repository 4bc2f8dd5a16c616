package utils

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Unparseable period codes sort after every valid one.
const (
	UnknownYear  = 9999
	UnknownMonth = 99
)

var periodTokenRegex = regexp.MustCompile(`(\p{L}+)\s+(\d{4})$`)

// monthAbbr maps accent-free lower-case month names to period abbreviations.
var monthAbbr = map[string]string{
	"janeiro":   "jan",
	"fevereiro": "fev",
	"marco":     "mar",
	"abril":     "abr",
	"maio":      "mai",
	"junho":     "jun",
	"julho":     "jul",
	"agosto":    "ago",
	"setembro":  "set",
	"outubro":   "out",
	"novembro":  "nov",
	"dezembro":  "dez",
}

var monthIndex = map[string]int{
	"jan": 1, "fev": 2, "mar": 3, "abr": 4,
	"mai": 5, "jun": 6, "jul": 7, "ago": 8,
	"set": 9, "out": 10, "nov": 11, "dez": 12,
}

var monthFullName = map[string]string{
	"jan": "Janeiro", "fev": "Fevereiro", "mar": "Março", "abr": "Abril",
	"mai": "Maio", "jun": "Junho", "jul": "Julho", "ago": "Agosto",
	"set": "Setembro", "out": "Outubro", "nov": "Novembro", "dez": "Dezembro",
}

// FileStem returns the base name of path without its final extension.
func FileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// DerivePeriod turns a report filename such as
// "SERASA Mapa da Inadimplencia Julho 2025.pdf" into the period code "jul/25".
// When the name does not end in "<month> <year>" the stem is returned as is.
func DerivePeriod(filename string) string {
	stem := FileStem(filename)
	m := periodTokenRegex.FindStringSubmatch(stem)
	if m == nil {
		return stem
	}

	month := StripAccents(strings.ToLower(strings.TrimSpace(m[1])))
	abbr, ok := monthAbbr[month]
	if !ok {
		r := []rune(month)
		if len(r) > 3 {
			r = r[:3]
		}
		abbr = string(r)
	}
	year := m[2]
	return fmt.Sprintf("%s/%s", abbr, year[len(year)-2:])
}

// PeriodSortKey returns the (year, month) ordering key of a period code.
func PeriodSortKey(period string) (int, int) {
	abbr, yy, ok := strings.Cut(period, "/")
	if !ok {
		return UnknownYear, UnknownMonth
	}

	month, ok := monthIndex[strings.ToLower(abbr)]
	if !ok {
		month = UnknownMonth
	}
	year, err := strconv.Atoi(strings.TrimSpace(yy))
	if err != nil {
		return UnknownYear, month
	}
	return 2000 + year, month
}

// PeriodLess orders period codes chronologically.
func PeriodLess(a, b string) bool {
	ya, ma := PeriodSortKey(a)
	yb, mb := PeriodSortKey(b)
	if ya != yb {
		return ya < yb
	}
	return ma < mb
}

// PeriodLabel expands a period code for display: "out/24" -> "Outubro 2024".
// Anything that is not a period code is returned unchanged.
func PeriodLabel(period string) string {
	abbr, yy, ok := strings.Cut(period, "/")
	if !ok {
		return period
	}
	name, ok := monthFullName[strings.ToLower(abbr)]
	if !ok {
		name = abbr
	}
	year, err := strconv.Atoi(strings.TrimSpace(yy))
	if err != nil {
		return name + " " + yy
	}
	return fmt.Sprintf("%s %d", name, 2000+year)
}

package utils

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerivePeriod(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"SERASA Mapa da Inadimplencia Julho 2025.pdf", "jul/25"},
		{"SERASA Mapa da Inadimplencia Outubro 2024.pdf", "out/24"},
		{"/data/mapas/SERASA Mapa da Inadimplencia Março 2025.pdf", "mar/25"},
		{"mapa DEZEMBRO 2024.PDF", "dez/24"},
		{"relatorio Janvier 2025.pdf", "jan/25"},
		{"relatorio Jul 2026.pdf", "jul/26"},
		{"relatorio sem data.pdf", "relatorio sem data"},
		{"relatorio-2025.pdf", "relatorio-2025"},
		{"relatorio 2025.pdf", "rel/25"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, DerivePeriod(tt.filename))
		})
	}
}

func TestPeriodSortKey(t *testing.T) {
	y, m := PeriodSortKey("out/24")
	assert.Equal(t, 2024, y)
	assert.Equal(t, 10, m)

	y, m = PeriodSortKey("relatorio sem data")
	assert.Equal(t, UnknownYear, y)
	assert.Equal(t, UnknownMonth, m)

	y, m = PeriodSortKey("xyz/25")
	assert.Equal(t, 2025, y)
	assert.Equal(t, UnknownMonth, m)

	y, m = PeriodSortKey("jan/ab")
	assert.Equal(t, UnknownYear, y)
	assert.Equal(t, 1, m)
}

func TestPeriodLessIsChronological(t *testing.T) {
	periods := []string{"jan/25", "sem data", "dez/24", "jan/24", "jul/25", "jun/25"}
	sort.SliceStable(periods, func(i, j int) bool { return PeriodLess(periods[i], periods[j]) })

	assert.Equal(t, []string{"jan/24", "dez/24", "jan/25", "jun/25", "jul/25", "sem data"}, periods)
}

func TestPeriodLabel(t *testing.T) {
	assert.Equal(t, "Outubro 2024", PeriodLabel("out/24"))
	assert.Equal(t, "Março 2025", PeriodLabel("mar/25"))
	assert.Equal(t, "relatorio", PeriodLabel("relatorio"))
	assert.Equal(t, "xyz 2025", PeriodLabel("xyz/25"))
}

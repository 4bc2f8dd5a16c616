package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"5.496,69", 5496.69},
		{"5,837,49", 5837.49},
		{"1234", 1234},
		{"12,3", 12.3},
		{"R$ 456,78", 456.78},
		{"73.2", 73.2},
		{"R$ 1.234.567,89 bi", 1234567.89},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseAmount(tt.raw)
			assert.True(t, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestParseAmountUnparseable(t *testing.T) {
	for _, raw := range []string{"", "R$", "bi", ".", ",", "1.234.567", "1,2.3,4"} {
		_, ok := ParseAmount(raw)
		assert.False(t, ok, "expected %q to be rejected", raw)
	}
}

func TestAmountPtr(t *testing.T) {
	assert.Nil(t, AmountPtr("mi"))

	v := AmountPtr("78,9")
	if assert.NotNil(t, v) {
		assert.InDelta(t, 78.9, *v, 1e-9)
	}
}

package service

import (
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
)

func TestJoinRow(t *testing.T) {
	tests := []struct {
		name    string
		content pdf.TextHorizontal
		want    string
	}{
		{
			name: "gap below threshold",
			content: pdf.TextHorizontal{
				{S: "73", X: 0, W: 10, FontSize: 10},
				{S: "mi", X: 11, W: 8, FontSize: 10},
			},
			want: "73mi",
		},
		{
			name: "gap above threshold",
			content: pdf.TextHorizontal{
				{S: "73", X: 0, W: 10, FontSize: 10},
				{S: "mi", X: 13, W: 8, FontSize: 10},
			},
			want: "73 mi",
		},
		{
			name: "previous run ends with space",
			content: pdf.TextHorizontal{
				{S: "73 ", X: 0, W: 12, FontSize: 10},
				{S: "mi", X: 20, W: 8, FontSize: 10},
			},
			want: "73 mi",
		},
		{
			name: "next run starts with space",
			content: pdf.TextHorizontal{
				{S: "73", X: 0, W: 10, FontSize: 10},
				{S: " mi", X: 20, W: 10, FontSize: 10},
			},
			want: "73 mi",
		},
		{
			name: "three runs",
			content: pdf.TextHorizontal{
				{S: "R$", X: 0, W: 10, FontSize: 10},
				{S: "402,3", X: 14, W: 20, FontSize: 10},
				{S: "bi", X: 34.5, W: 8, FontSize: 10},
			},
			want: "R$ 402,3bi",
		},
		{
			name:    "empty row",
			content: nil,
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, joinRow(tt.content))
		})
	}
}

func TestPageTextHasNoTrailingNewline(t *testing.T) {
	rows := pdf.Rows{
		{Content: pdf.TextHorizontal{{S: "Valor total das dívidas", FontSize: 10}}},
		{Content: pdf.TextHorizontal{{S: "R$ 402,3 bi", FontSize: 10}}},
	}
	assert.Equal(t, "Valor total das dívidas\nR$ 402,3 bi", pageText(rows))
	assert.Equal(t, "", pageText(nil))
}

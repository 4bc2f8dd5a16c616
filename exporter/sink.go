package exporter

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Aashish23092/default-report-dataset/dto"
)

// Supported dataset formats
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

var ErrUnknownFormat = errors.New("unknown dataset format")

// Sink persists an assembled dataset. Each Write replaces whatever the
// previous run produced.
type Sink interface {
	Write(ctx context.Context, ds dto.Dataset) error
}

// NewSink returns the sink for format writing to path.
func NewSink(format, path string) (Sink, error) {
	switch strings.ToLower(format) {
	case "", FormatCSV:
		return &CSVSink{Path: path}, nil
	case FormatXLSX:
		return &XLSXSink{Path: path}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// rowCells renders a record in Header order; null metrics become empty cells.
func rowCells(r dto.Record) []string {
	cells := make([]string, 0, len(dto.MetricOrder)+1)
	cells = append(cells, r.Period)
	for _, m := range dto.MetricOrder {
		cells = append(cells, formatValue(r.Metrics[m]))
	}
	return cells
}

func formatValue(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

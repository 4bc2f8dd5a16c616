package exporter

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Aashish23092/default-report-dataset/dto"
	"github.com/Aashish23092/default-report-dataset/utils"
	"github.com/rs/zerolog"
)

// CSVSink writes the dataset as UTF-8 CSV with the canonical header.
type CSVSink struct {
	Path string
}

// Write replaces the file at Path. Rows go to a temporary file in the same
// directory first, so readers never see a half-written dataset.
func (s *CSVSink) Write(ctx context.Context, ds dto.Dataset) error {
	logger := zerolog.Ctx(ctx)

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.Path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := writeCSV(tmp, ds); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("failed to move dataset into place: %w", err)
	}

	logger.Info().
		Str("path", s.Path).
		Int("records", len(ds.Records)).
		Msg("dataset written")
	return nil
}

func writeCSV(w io.Writer, ds dto.Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(dto.Header()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, r := range ds.Records {
		if err := cw.Write(rowCells(r)); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV loads a dataset written by CSVSink. Metric cells that are empty
// or not numeric load as null; columns are matched by header name.
func ReadCSV(path string) (dto.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return dto.Dataset{}, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return dto.Dataset{}, fmt.Errorf("failed to parse dataset: %w", err)
	}
	if len(rows) == 0 {
		return dto.Dataset{}, nil
	}

	cols := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		cols[strings.TrimPrefix(strings.TrimSpace(name), "\ufeff")] = i
	}
	periodIdx, ok := cols[dto.PeriodColumn]
	if !ok {
		return dto.Dataset{}, fmt.Errorf("dataset has no %s column", dto.PeriodColumn)
	}

	var ds dto.Dataset
	for _, row := range rows[1:] {
		rec := dto.Record{
			Period:  cell(row, periodIdx),
			Metrics: dto.NewMetrics(),
		}
		rec.PeriodLabel = utils.PeriodLabel(rec.Period)
		for _, m := range dto.MetricOrder {
			if idx, ok := cols[string(m)]; ok {
				rec.Metrics[m] = coerce(cell(row, idx))
			}
		}
		ds.Records = append(ds.Records, rec)
	}
	return ds, nil
}

func cell(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func coerce(s string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

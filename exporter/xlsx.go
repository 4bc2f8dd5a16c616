package exporter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Aashish23092/default-report-dataset/dto"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the dataset in XLSX output.
const SheetName = "dataset"

// XLSXSink writes the dataset as a single-sheet workbook with numeric cells.
type XLSXSink struct {
	Path string
}

func (s *XLSXSink) Write(ctx context.Context, ds dto.Dataset) error {
	logger := zerolog.Ctx(ctx)

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := dto.Header()
	headerRow := make([]interface{}, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &headerRow); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range ds.Records {
		row := make([]interface{}, 0, len(header))
		row = append(row, r.Period)
		for _, m := range dto.MetricOrder {
			if v := r.Metrics[m]; v != nil {
				row = append(row, *v)
			} else {
				row = append(row, nil)
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := f.SaveAs(s.Path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	logger.Info().
		Str("path", s.Path).
		Int("records", len(ds.Records)).
		Msg("dataset workbook written")
	return nil
}

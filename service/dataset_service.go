package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Aashish23092/default-report-dataset/dto"
	"github.com/Aashish23092/default-report-dataset/exporter"
	"github.com/Aashish23092/default-report-dataset/metrics"
	"github.com/Aashish23092/default-report-dataset/utils"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ErrMissingInput is returned when the report directory does not exist.
var ErrMissingInput = errors.New("input directory not found")

// MetricExtractor turns the text lines of one report into metric values.
type MetricExtractor interface {
	Extract(lines []string) dto.Metrics
}

type Options struct {
	// Pattern selects report files inside the input directory.
	Pattern string
	// Workers is the number of documents processed at once.
	Workers int
}

type DatasetService struct {
	pdfProcessor PDFProcessor
	extractor    MetricExtractor
	sink         exporter.Sink
	recorder     *metrics.Recorder
	opts         Options
}

func NewDatasetService(
	pdfProcessor PDFProcessor,
	extractor MetricExtractor,
	sink exporter.Sink,
	recorder *metrics.Recorder,
	opts Options,
) *DatasetService {
	if opts.Pattern == "" {
		opts.Pattern = "*.pdf"
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &DatasetService{
		pdfProcessor: pdfProcessor,
		extractor:    extractor,
		sink:         sink,
		recorder:     recorder,
		opts:         opts,
	}
}

// Build extracts one record per report in inputDir, assembles the dataset
// and hands it to the sink. Only a missing directory, a cancelled context or
// a sink failure abort the run; per-document problems surface as null metrics.
func (s *DatasetService) Build(ctx context.Context, inputDir string) (dto.Dataset, error) {
	runID := uuid.NewString()
	logger := zerolog.Ctx(ctx).With().Str("run_id", runID).Logger()
	ctx = logger.WithContext(ctx)

	paths, err := s.Collect(inputDir)
	if err != nil {
		return dto.Dataset{}, err
	}
	if len(paths) == 0 {
		logger.Warn().Str("dir", inputDir).Str("pattern", s.opts.Pattern).Msg("no report files found")
		return dto.Dataset{RunID: runID, GeneratedAt: time.Now()}, nil
	}

	records, err := s.ProcessFiles(ctx, paths)
	if err != nil {
		return dto.Dataset{}, err
	}

	ds := Assemble(records)
	ds.RunID = runID

	if s.sink != nil {
		if err := s.sink.Write(ctx, ds); err != nil {
			return ds, fmt.Errorf("failed to write dataset: %w", err)
		}
	}
	return ds, nil
}

// Collect lists the report files of inputDir in lexical order.
func (s *DatasetService) Collect(inputDir string) ([]string, error) {
	st, err := os.Stat(inputDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingInput, inputDir)
		}
		return nil, fmt.Errorf("failed to stat input directory: %w", err)
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrMissingInput, inputDir)
	}

	// Glob returns matches sorted
	paths, err := filepath.Glob(filepath.Join(inputDir, s.opts.Pattern))
	if err != nil {
		return nil, fmt.Errorf("invalid file pattern %q: %w", s.opts.Pattern, err)
	}
	files := paths[:0]
	for _, p := range paths {
		if fi, err := os.Stat(p); err == nil && fi.Mode().IsRegular() {
			files = append(files, p)
		}
	}
	return files, nil
}

// ProcessFiles reads and extracts every path. The returned records keep the
// order of paths regardless of how many workers run.
func (s *DatasetService) ProcessFiles(ctx context.Context, paths []string) ([]dto.Record, error) {
	records := make([]dto.Record, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			records[i] = s.processFile(gctx, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *DatasetService) processFile(ctx context.Context, path string) dto.Record {
	name := filepath.Base(path)
	data, err := os.ReadFile(path)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("file", name).Msg("failed to read report")
		rec := newRecord(name)
		s.recorder.ObserveDocument(metrics.OutcomeFailed, 0, rec.Metrics)
		return rec
	}
	return s.ProcessDocument(ctx, name, data)
}

// ProcessDocument builds the record of a single report. It always returns a
// record: when the text cannot be extracted every metric is null.
func (s *DatasetService) ProcessDocument(ctx context.Context, filename string, data []byte) dto.Record {
	start := time.Now()
	rec := newRecord(filename)
	logger := zerolog.Ctx(ctx).With().Str("file", filename).Str("period", rec.Period).Logger()

	if rec.Period == utils.FileStem(filename) {
		logger.Warn().Msg("filename has no month/year token, using stem as period")
	}
	logger.Info().Msg("processing report")

	info, err := s.pdfProcessor.Inspect(data)
	s.recorder.ObserveStructure(err == nil && info.Valid, info.Pages)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to inspect report structure")
	} else if !info.Valid {
		logger.Warn().Int("pages", info.Pages).Msg("report failed structural validation, extracting anyway")
	}

	pages, err := s.pdfProcessor.ExtractPages(data)
	if err != nil {
		logger.Error().Err(err).Msg("text extraction failed, emitting empty record")
		s.recorder.ObserveDocument(metrics.OutcomeFailed, time.Since(start), rec.Metrics)
		return rec
	}
	if info.Pages > 0 && info.Pages != len(pages) {
		logger.Warn().Int("pages", info.Pages).Int("extracted", len(pages)).Msg("page count mismatch")
	}

	rec.Metrics = s.extractor.Extract(SplitLines(pages))

	outcome := metrics.OutcomeExtracted
	if rec.Metrics.Found() == 0 {
		outcome = metrics.OutcomeEmpty
	}
	for _, m := range dto.MetricOrder {
		if rec.Metrics[m] == nil {
			logger.Debug().Str("metric", string(m)).Msg("metric not found")
		}
	}
	logger.Info().
		Int("pages", len(pages)).
		Int("found", rec.Metrics.Found()).
		Dur("elapsed", time.Since(start)).
		Msg("report processed")

	s.recorder.ObserveDocument(outcome, time.Since(start), rec.Metrics)
	return rec
}

// SplitLines joins the pages in order and splits the text into lines.
func SplitLines(pages []string) []string {
	text := strings.Join(pages, "\n")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}

func newRecord(filename string) dto.Record {
	period := utils.DerivePeriod(filename)
	return dto.Record{
		Period:      period,
		PeriodLabel: utils.PeriodLabel(period),
		Source:      filename,
		Metrics:     dto.NewMetrics(),
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Aashish23092/default-report-dataset/config"
	"github.com/Aashish23092/default-report-dataset/exporter"
	"github.com/Aashish23092/default-report-dataset/handler"
	"github.com/Aashish23092/default-report-dataset/metrics"
	"github.com/Aashish23092/default-report-dataset/service"
	"github.com/Aashish23092/default-report-dataset/utils"
	"github.com/Aashish23092/default-report-dataset/utils/reportmetrics"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newBuildCmd() *cobra.Command {
	var input, output, format string
	var workers int

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Extract every report in the input directory and write the dataset",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig(cfgPath)
			if err != nil {
				return err
			}
			if input != "" {
				cfg.InputDir = input
			}
			if output != "" {
				cfg.OutputPath = output
			}
			if format != "" {
				cfg.Format = format
			}
			if workers > 0 {
				cfg.Workers = workers
			}

			logger := newLogger(cfg)
			ctx := logger.WithContext(cmd.Context())

			svc, err := newDatasetService(cfg, metrics.NewRecorder(), true)
			if err != nil {
				return err
			}

			ds, err := svc.Build(ctx, cfg.InputDir)
			if err != nil {
				return err
			}
			if len(ds.Records) > 0 {
				logger.Info().
					Int("records", len(ds.Records)).
					Str("output", cfg.OutputPath).
					Msg("dataset written")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Directory holding the report PDFs")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Dataset output path")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format (csv or xlsx)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Documents processed at once")
	return cmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP extraction service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig(cfgPath)
			if err != nil {
				return err
			}

			logger := newLogger(cfg)
			recorder := metrics.NewRecorder()
			svc, err := newDatasetService(cfg, recorder, false)
			if err != nil {
				return err
			}

			router := handler.NewRouter(logger, handler.NewReportHandler(svc, cfg.MaxFileSize), recorder, cfg.MaxFileSize)
			srv := &http.Server{
				Addr:              ":" + cfg.ServerPort,
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logger.Info().Str("port", cfg.ServerPort).Msg("starting default report dataset service")
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("failed to start server: %w", err)
			case <-ctx.Done():
			}

			logger.Info().Msg("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}

func newPeriodCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "period <filename>...",
		Short: "Print the period code derived from each report filename",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			for _, name := range args {
				period := utils.DerivePeriod(name)
				fmt.Fprintf(out, "%s\t%s\t%s\n", name, period, utils.PeriodLabel(period))
			}
		},
	}
}

// newDatasetService wires the extraction pipeline. The sink is only built
// for batch runs; the HTTP service answers with JSON instead.
func newDatasetService(cfg *config.Config, recorder *metrics.Recorder, withSink bool) (*service.DatasetService, error) {
	locator, err := reportmetrics.NewLocator(cfg.MetricRules())
	if err != nil {
		return nil, err
	}

	var sink exporter.Sink
	if withSink {
		sink, err = exporter.NewSink(cfg.Format, cfg.OutputPath)
		if err != nil {
			return nil, err
		}
	}

	return service.NewDatasetService(
		service.NewPDFProcessor(),
		locator,
		sink,
		recorder,
		service.Options{Pattern: cfg.Pattern, Workers: cfg.Workers},
	), nil
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	format := cfg.LogFormat
	if logFormat != "" {
		format = logFormat
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if format == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(lvl).With().Timestamp().Logger()
}

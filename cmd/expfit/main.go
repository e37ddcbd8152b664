// Command expfit fits an exponential decay V(t) = V0·e^(−Γt) to a measurement
// table and writes a report.
//
// Usage:
//
//	expfit -input RLcircuit.txt -time-unit ns
//	expfit -config job.yaml -format json -output fit.json -compress zstd
//
// Settings are merged in the order defaults < -config file < EXPFIT_*
// environment variables < flags. Inputs ending in .expf are read as binary
// series snapshots instead of text tables.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/arloliu/expfit"
	"github.com/arloliu/expfit/compress"
	"github.com/arloliu/expfit/dataset"
	"github.com/arloliu/expfit/format"
	"github.com/arloliu/expfit/internal/config"
	"github.com/arloliu/expfit/internal/logging"
	"github.com/arloliu/expfit/regression"
	"github.com/arloliu/expfit/report"
)

func main() {
	os.Exit(run(os.Args[1:], os.Environ(), os.Stdout, os.Stderr))
}

// run executes the command and returns the process exit code.
func run(args, environ []string, stdout, stderr io.Writer) int {
	fallback := logging.New(stderr, slog.LevelInfo, logging.FormatText)

	job, err := resolveJob(args, environ, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fallback.Error("invalid configuration", "error", err)

		return 1
	}

	level, err := logging.ParseLevel(job.Log.Level)
	if err != nil {
		fallback.Error("invalid configuration", "error", err)

		return 1
	}
	logFormat, err := logging.ParseFormat(job.Log.Format)
	if err != nil {
		fallback.Error("invalid configuration", "error", err)

		return 1
	}
	logger := logging.New(stderr, level, logFormat)

	if err := execute(context.Background(), job, stdout, logger); err != nil {
		logger.Error("fit failed", "input", job.Input, "error", err)

		return 1
	}

	return 0
}

// resolveJob merges defaults, the optional job file, the environment and flags.
func resolveJob(args, environ []string, stderr io.Writer) (config.Job, error) {
	fs := flag.NewFlagSet("expfit", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "YAML job file")
	input := fs.String("input", "", "Measurement table or .expf snapshot")
	skipRows := fs.Int("skip-rows", -1, "Header rows to skip (default 2)")
	columns := fs.String("columns", "", "Column indexes for x,y,sigma (default 0,1,2)")
	delimiter := fs.String("delimiter", "", "Single-character column delimiter (default whitespace)")
	tableCompression := fs.String("table-compression", "", "Input compression: auto, none, zstd, s2, lz4, snappy")
	model := fs.String("model", "", "Model: exponential or linear")
	reportFormat := fs.String("format", "", "Report format: text, csv or json")
	output := fs.String("output", "", "Report file (default stdout)")
	compression := fs.String("compress", "", "Report and snapshot compression: none, zstd, s2, lz4, snappy")
	snapshot := fs.String("snapshot", "", "Also write the parsed series as a binary snapshot to this path")
	timeUnit := fs.String("time-unit", "", "Unit of the time column (default s)")
	voltageUnit := fs.String("voltage-unit", "", "Unit of the value column (default V)")
	precision := fs.Int("precision", 0, "Significant digits in reports (default 4)")
	logLevel := fs.String("log-level", "", "Log level: debug, info, warn, error")
	logFormat := fs.String("log-format", "", "Log format: text or json")

	if err := fs.Parse(args); err != nil {
		return config.Job{}, err
	}
	if fs.NArg() > 0 {
		return config.Job{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	job := config.Defaults()

	if *configPath != "" {
		fileJob, err := config.Load(*configPath, nil)
		if err != nil {
			return config.Job{}, err
		}
		job = config.Merge(job, fileJob)
	}

	envJob, err := config.EnvOverlay(environ)
	if err != nil {
		return config.Job{}, err
	}
	job = config.Merge(job, envJob)

	flagJob := config.Unset()
	flagJob.Input = *input
	flagJob.Model = *model
	flagJob.Snapshot = *snapshot
	flagJob.Table.SkipRows = *skipRows
	flagJob.Table.Delimiter = *delimiter
	flagJob.Table.Compression = *tableCompression
	flagJob.Report.Format = *reportFormat
	flagJob.Report.Output = *output
	flagJob.Report.Compression = *compression
	flagJob.Report.TimeUnit = *timeUnit
	flagJob.Report.VoltageUnit = *voltageUnit
	flagJob.Report.Precision = *precision
	flagJob.Log.Level = *logLevel
	flagJob.Log.Format = *logFormat
	if *columns != "" {
		cols, err := config.ParseColumns(*columns)
		if err != nil {
			return config.Job{}, err
		}
		flagJob.Table.Columns = cols
	}
	job = config.Merge(job, flagJob)

	if err := config.Validate(job); err != nil {
		return config.Job{}, err
	}

	return job, nil
}

// execute loads, fits and reports a validated job.
func execute(ctx context.Context, job config.Job, stdout io.Writer, logger *slog.Logger) error {
	series, err := loadSeries(job)
	if err != nil {
		return err
	}
	logger.InfoContext(ctx, "series loaded",
		"name", series.Name,
		"points", series.Len(),
		"series_id", fmt.Sprintf("%016x", series.ID()),
	)

	ct, _ := format.ParseCompression(job.Report.Compression)

	if job.Snapshot != "" {
		stats, err := writeSnapshot(job.Snapshot, series, ct)
		if err != nil {
			return err
		}
		logger.DebugContext(ctx, "snapshot written",
			"path", job.Snapshot,
			"compression", ct.String(),
			"compression_ratio", stats.CompressionRatio(),
		)
	}

	res, err := expfit.Fit(series, regression.ModelTypeFromString(job.Model))
	if err != nil {
		return err
	}

	attrs := []any{
		"model", res.Model.String(),
		"reduced_chi_squared", res.Diagnostics.ReducedChiSquared,
		"slope", res.Linear.Slope,
		"intercept", res.Linear.Intercept,
	}
	if res.Params != nil {
		attrs = append(attrs, "v0", res.Params.V0, "decay_rate", res.Params.DecayRate)
	}
	logger.InfoContext(ctx, "fit completed", attrs...)

	if chi2r := res.Diagnostics.ReducedChiSquared; chi2r > 2 {
		logger.WarnContext(ctx, "reduced chi-squared is large; the model or the uncertainties may be wrong",
			"reduced_chi_squared", chi2r)
	}

	rf, _ := format.ParseReportFormat(job.Report.Format)
	opts := []report.Option{
		report.WithTimeUnit(job.Report.TimeUnit),
		report.WithVoltageUnit(job.Report.VoltageUnit),
		report.WithPrecision(job.Report.Precision),
	}

	if job.Report.Output == "" {
		if ct != format.CompressionNone {
			logger.WarnContext(ctx, "report compression ignored for stdout", "compression", ct.String())
		}

		return report.Write(stdout, res, rf, opts...)
	}

	path := job.Report.Output
	if ext := ct.Extension(); ext != "" && !strings.HasSuffix(path, ext) {
		path += ext
	}
	stats, err := report.WriteFile(path, res, rf, ct, opts...)
	if err != nil {
		return err
	}
	logger.InfoContext(ctx, "report written", "path", path, "format", rf.String())
	logger.DebugContext(ctx, "report compression",
		"compression", ct.String(),
		"original_size", stats.OriginalSize,
		"compressed_size", stats.CompressedSize,
		"compression_ratio", stats.CompressionRatio(),
	)

	return nil
}

func loadSeries(job config.Job) (dataset.Series, error) {
	if strings.HasSuffix(job.Input, dataset.SnapshotExtension) {
		f, err := os.Open(job.Input)
		if err != nil {
			return dataset.Series{}, err
		}
		defer f.Close()

		return dataset.Decode(f)
	}

	opts := []dataset.LoadOption{
		dataset.WithSkipRows(job.Table.SkipRows),
		dataset.WithColumns(job.Table.Columns[0], job.Table.Columns[1], job.Table.Columns[2]),
	}
	if job.Table.Delimiter != "" {
		opts = append(opts, dataset.WithDelimiter(rune(job.Table.Delimiter[0])))
	}
	if c := job.Table.Compression; c != "" && !strings.EqualFold(c, "auto") {
		ct, err := format.ParseCompression(c)
		if err != nil {
			return dataset.Series{}, err
		}
		opts = append(opts, dataset.WithCompression(ct))
	}
	if job.Table.Name != "" {
		opts = append(opts, dataset.WithName(job.Table.Name))
	}

	return dataset.Load(job.Input, opts...)
}

func writeSnapshot(path string, s dataset.Series, ct format.CompressionType) (compress.Stats, error) {
	f, err := os.Create(path)
	if err != nil {
		return compress.Stats{}, err
	}

	stats, err := s.EncodeWithStats(f, ct)
	if err != nil {
		f.Close()
		return compress.Stats{}, fmt.Errorf("write snapshot: %w", err)
	}

	return stats, f.Close()
}

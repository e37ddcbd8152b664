// Package config loads expfit job files.
//
// A job describes one fit: where the measurement table lives, how to read it,
// which model to fit and where the report goes. Jobs are YAML documents; every
// field can also be set by flags or EXPFIT_* environment variables, merged with
// Merge in the order defaults < file < environment < flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/expfit/format"
	"github.com/arloliu/expfit/internal/logging"
	"github.com/arloliu/expfit/regression"
)

// ErrInvalidConfig is wrapped by every validation and decoding error.
var ErrInvalidConfig = errors.New("invalid config")

// Job is a single fit job.
type Job struct {
	Input    string `yaml:"input"`
	Model    string `yaml:"model"`
	Snapshot string `yaml:"snapshot"`
	Table    Table  `yaml:"table"`
	Report   Report `yaml:"report"`
	Log      Log    `yaml:"log"`
}

// Table controls how the measurement table is parsed.
//
// SkipRows of -1 means "not set" so that an explicit 0 can override the default.
type Table struct {
	SkipRows    int    `yaml:"skip_rows"`
	Columns     []int  `yaml:"columns,flow"`
	Delimiter   string `yaml:"delimiter"`
	Compression string `yaml:"compression"`
	Name        string `yaml:"name"`
}

// Report controls the rendered fit report.
type Report struct {
	Format      string `yaml:"format"`
	Output      string `yaml:"output"`
	Compression string `yaml:"compression"`
	TimeUnit    string `yaml:"time_unit"`
	VoltageUnit string `yaml:"voltage_unit"`
	Precision   int    `yaml:"precision"`
}

// Log controls the command's logger.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Defaults returns a job with every optional field set.
// Input has no default.
func Defaults() Job {
	return Job{
		Model: "exponential",
		Table: Table{
			SkipRows: 2,
			Columns:  []int{0, 1, 2},
		},
		Report: Report{
			Format:      "text",
			Compression: "none",
			TimeUnit:    "s",
			VoltageUnit: "V",
			Precision:   4,
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// Unset returns an overlay job that overrides nothing when merged.
func Unset() Job {
	return Job{Table: Table{SkipRows: -1}}
}

// Load decodes a YAML job from raw, or from the file at path when raw is empty.
//
// Unknown keys are rejected. The result is an overlay: fields absent from the
// document stay unset and are filled in by Merge.
func Load(path string, raw []byte) (Job, error) {
	var r io.Reader
	switch {
	case len(raw) > 0:
		r = bytes.NewReader(raw)
	case path != "":
		f, err := os.Open(path)
		if err != nil {
			return Job{}, err
		}
		defer f.Close()
		r = f
	default:
		return Job{}, errors.New("no config source provided")
	}

	job := Unset()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&job); err != nil {
		if errors.Is(err, io.EOF) {
			return job, nil
		}

		return Job{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return job, nil
}

// Merge overlays over onto base. Empty strings, nil slices, zero precision and
// a SkipRows of -1 leave the base value untouched.
func Merge(base, over Job) Job {
	out := base
	out.Table.Columns = cloneInts(base.Table.Columns)

	mergeString(&out.Input, over.Input)
	mergeString(&out.Model, over.Model)
	mergeString(&out.Snapshot, over.Snapshot)

	if over.Table.SkipRows >= 0 {
		out.Table.SkipRows = over.Table.SkipRows
	}
	if len(over.Table.Columns) > 0 {
		out.Table.Columns = cloneInts(over.Table.Columns)
	}
	mergeString(&out.Table.Delimiter, over.Table.Delimiter)
	mergeString(&out.Table.Compression, over.Table.Compression)
	mergeString(&out.Table.Name, over.Table.Name)

	mergeString(&out.Report.Format, over.Report.Format)
	mergeString(&out.Report.Output, over.Report.Output)
	mergeString(&out.Report.Compression, over.Report.Compression)
	mergeString(&out.Report.TimeUnit, over.Report.TimeUnit)
	mergeString(&out.Report.VoltageUnit, over.Report.VoltageUnit)
	if over.Report.Precision != 0 {
		out.Report.Precision = over.Report.Precision
	}

	mergeString(&out.Log.Level, over.Log.Level)
	mergeString(&out.Log.Format, over.Log.Format)

	return out
}

// EnvOverlay builds an overlay from EXPFIT_* environment variables.
//
// Supported keys: INPUT, MODEL, SNAPSHOT, SKIP_ROWS, COLUMNS, DELIMITER,
// COMPRESSION, FORMAT, OUTPUT, REPORT_COMPRESSION, LOG_LEVEL, LOG_FORMAT.
// Other EXPFIT_ keys are ignored.
func EnvOverlay(environ []string) (Job, error) {
	over := Unset()

	for _, kv := range environ {
		key, val, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, "EXPFIT_") {
			continue
		}
		val = strings.TrimSpace(val)

		switch strings.TrimPrefix(key, "EXPFIT_") {
		case "INPUT":
			over.Input = val
		case "MODEL":
			over.Model = val
		case "SNAPSHOT":
			over.Snapshot = val
		case "SKIP_ROWS":
			n, err := strconv.Atoi(val)
			if err != nil {
				return Job{}, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, key, err)
			}
			over.Table.SkipRows = n
		case "COLUMNS":
			cols, err := ParseColumns(val)
			if err != nil {
				return Job{}, fmt.Errorf("%s: %w", key, err)
			}
			over.Table.Columns = cols
		case "DELIMITER":
			over.Table.Delimiter = val
		case "COMPRESSION":
			over.Table.Compression = val
		case "FORMAT":
			over.Report.Format = val
		case "OUTPUT":
			over.Report.Output = val
		case "REPORT_COMPRESSION":
			over.Report.Compression = val
		case "LOG_LEVEL":
			over.Log.Level = val
		case "LOG_FORMAT":
			over.Log.Format = val
		}
	}

	return over, nil
}

// ParseColumns parses a comma-separated "x,y,sigma" column index list such as "0,1,2".
func ParseColumns(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: columns must be x,y,sigma indexes, got %q", ErrInvalidConfig, s)
	}

	cols := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("%w: column %q: %w", ErrInvalidConfig, p, err)
		}
		cols[i] = n
	}

	return cols, nil
}

// Validate checks a merged job and reports every problem at once.
func Validate(job Job) error {
	var errs []error
	add := func(msg string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(msg, args...)))
	}

	if strings.TrimSpace(job.Input) == "" {
		add("input is required")
	}
	if regression.ModelTypeFromString(job.Model) == regression.ModelType(-1) {
		add("unknown model %q", job.Model)
	}
	if job.Table.SkipRows < 0 {
		add("skip_rows must be non-negative, got %d", job.Table.SkipRows)
	}
	if len(job.Table.Columns) != 3 {
		add("columns must list exactly 3 indexes, got %d", len(job.Table.Columns))
	}
	for _, c := range job.Table.Columns {
		if c < 0 {
			add("column index must be non-negative, got %d", c)
		}
	}
	if len(job.Table.Delimiter) > 1 {
		add("delimiter must be a single character, got %q", job.Table.Delimiter)
	}
	if job.Table.Compression != "" && !strings.EqualFold(job.Table.Compression, "auto") {
		if _, err := format.ParseCompression(job.Table.Compression); err != nil {
			add("table compression: %v", err)
		}
	}
	if _, err := format.ParseReportFormat(job.Report.Format); err != nil {
		add("report format: %v", err)
	}
	if _, err := format.ParseCompression(job.Report.Compression); err != nil {
		add("report compression: %v", err)
	}
	if job.Report.Precision < 1 || job.Report.Precision > 17 {
		add("precision must be in [1, 17], got %d", job.Report.Precision)
	}
	if _, err := logging.ParseLevel(job.Log.Level); err != nil {
		add("log level: %v", err)
	}
	if _, err := logging.ParseFormat(job.Log.Format); err != nil {
		add("log format: %v", err)
	}

	return errors.Join(errs...)
}

func mergeString(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

func cloneInts(in []int) []int {
	if in == nil {
		return nil
	}

	return append([]int(nil), in...)
}

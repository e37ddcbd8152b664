package dataset

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/arloliu/expfit/compress"
	"github.com/arloliu/expfit/format"
	"github.com/arloliu/expfit/internal/options"
)

// maxLineSize bounds a single table row.
const maxLineSize = 1024 * 1024

// Parse reads a measurement table from r.
//
// The first WithSkipRows rows (default 2) are skipped unconditionally. After
// that, blank lines and lines whose first non-space character is '#' are
// ignored, and every remaining row must hold a number in each selected column.
// Extra columns are allowed.
//
// Parameters:
//   - r: Table source
//   - opts: WithSkipRows, WithColumns, WithDelimiter, WithName
//
// Returns:
//   - Series: Parsed columns, in file order
//   - error: ErrMalformedTable naming the offending line, an option error, or a read error
//
// Parse does not check fit preconditions; call Series.Validate for that.
func Parse(r io.Reader, opts ...LoadOption) (Series, error) {
	cfg := newLoadConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return Series{}, err
	}

	return parse(r, cfg)
}

// Load reads a measurement table from the file at path.
//
// Files ending in .zst, .s2, .lz4 or .sz are decompressed first, unless
// WithCompression names a codec explicitly. The series name defaults to the
// file name without its compression extension.
func Load(path string, opts ...LoadOption) (Series, error) {
	cfg := newLoadConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return Series{}, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Series{}, err
	}

	ct := cfg.compression
	if ct == 0 {
		ct = compress.FromExtension(path)
	}
	codec, err := compress.GetCodec(ct)
	if err != nil {
		return Series{}, err
	}

	table, err := codec.Decompress(raw)
	if err != nil {
		return Series{}, fmt.Errorf("%s: %w", path, err)
	}

	if cfg.name == "" {
		cfg.name = tableName(path, ct)
	}

	s, err := parse(bytes.NewReader(table), cfg)
	if err != nil {
		return Series{}, fmt.Errorf("%s: %w", path, err)
	}

	return s, nil
}

func parse(r io.Reader, cfg *loadConfig) (Series, error) {
	s := Series{Name: cfg.name}
	need := cfg.maxColumn() + 1

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo <= cfg.skipRows {
			continue
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := splitRow(line, cfg.delimiter)
		if len(fields) < need {
			return Series{}, fmt.Errorf("%w: line %d: expected at least %d columns, got %d",
				ErrMalformedTable, lineNo, need, len(fields))
		}

		var row [3]float64
		for i, col := range cfg.columns {
			v, err := strconv.ParseFloat(fields[col], 64)
			if err != nil {
				return Series{}, fmt.Errorf("%w: line %d column %d: %q is not a number",
					ErrMalformedTable, lineNo, col, fields[col])
			}
			row[i] = v
		}

		s.X = append(s.X, row[0])
		s.Y = append(s.Y, row[1])
		s.Sigma = append(s.Sigma, row[2])
	}

	if err := scanner.Err(); err != nil {
		return Series{}, fmt.Errorf("%w: line %d: %w", ErrMalformedTable, lineNo+1, err)
	}

	if len(s.X) == 0 {
		return Series{}, fmt.Errorf("%w: no data rows after skipping %d header rows", ErrMalformedTable, cfg.skipRows)
	}

	return s, nil
}

func splitRow(line string, delimiter rune) []string {
	if delimiter == 0 {
		return strings.FieldsFunc(line, unicode.IsSpace)
	}

	fields := strings.Split(line, string(delimiter))
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}

	return fields
}

func tableName(path string, ct format.CompressionType) string {
	name := filepath.Base(path)
	if ext := filepath.Ext(name); ext != "" && compress.FromExtension(name) == ct && ct != format.CompressionNone {
		name = strings.TrimSuffix(name, ext)
	}

	return name
}

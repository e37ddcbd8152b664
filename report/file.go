package report

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/arloliu/expfit"
	"github.com/arloliu/expfit/compress"
	"github.com/arloliu/expfit/format"
	"github.com/arloliu/expfit/internal/pool"
)

// Write renders res in the given format to w.
func Write(w io.Writer, res *expfit.Result, rf format.ReportFormat, opts ...Option) error {
	switch rf {
	case format.ReportText:
		return WriteText(w, res, opts...)
	case format.ReportCSV:
		if _, err := newConfig(opts); err != nil {
			return err
		}

		return WriteCSV(w, res)
	case format.ReportJSON:
		return WriteJSON(w, res, opts...)
	default:
		return fmt.Errorf("unsupported report format: %s", rf)
	}
}

// Render returns res rendered in the given format and compressed with ct.
func Render(res *expfit.Result, rf format.ReportFormat, ct format.CompressionType, opts ...Option) ([]byte, error) {
	out, _, err := RenderWithStats(res, rf, ct, opts...)

	return out, err
}

// RenderWithStats is Render that also reports the size of the report before and after compression.
func RenderWithStats(res *expfit.Result, rf format.ReportFormat, ct format.CompressionType, opts ...Option) ([]byte, compress.Stats, error) {
	if _, err := compress.CreateCodec(ct, "report"); err != nil {
		return nil, compress.Stats{}, err
	}

	buf := pool.GetReportBuffer()
	defer pool.PutReportBuffer(buf)

	if err := Write(buf, res, rf, opts...); err != nil {
		return nil, compress.Stats{}, err
	}

	out, stats, err := compress.CompressWithStats(ct, buf.Bytes())
	if err != nil {
		return nil, compress.Stats{}, fmt.Errorf("compress report: %w", err)
	}

	// The no-op codec returns the pooled buffer itself.
	if ct == format.CompressionNone {
		out = bytes.Clone(out)
	}

	return out, stats, nil
}

// WriteFile renders res and writes it to path, replacing any existing file.
//
// The path is used as given; callers choose whether to append ct.Extension().
func WriteFile(path string, res *expfit.Result, rf format.ReportFormat, ct format.CompressionType, opts ...Option) (compress.Stats, error) {
	data, stats, err := RenderWithStats(res, rf, ct, opts...)
	if err != nil {
		return compress.Stats{}, err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return compress.Stats{}, fmt.Errorf("write report: %w", err)
	}

	return stats, nil
}

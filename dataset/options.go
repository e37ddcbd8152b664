package dataset

import (
	"fmt"

	"github.com/arloliu/expfit/compress"
	"github.com/arloliu/expfit/format"
	"github.com/arloliu/expfit/internal/options"
)

// DefaultSkipRows is the number of header rows skipped before data starts.
const DefaultSkipRows = 2

// LoadOption configures Parse and Load.
type LoadOption = options.Option[*loadConfig]

type loadConfig struct {
	skipRows    int
	columns     [3]int // x, y, sigma
	delimiter   rune   // 0 splits on any run of whitespace
	compression format.CompressionType
	name        string
}

func newLoadConfig() *loadConfig {
	return &loadConfig{
		skipRows: DefaultSkipRows,
		columns:  [3]int{0, 1, 2},
	}
}

func (c *loadConfig) maxColumn() int {
	return max(c.columns[0], c.columns[1], c.columns[2])
}

// WithSkipRows sets how many leading rows are skipped as headers. Default is 2.
func WithSkipRows(n int) LoadOption {
	return options.New(func(c *loadConfig) error {
		if n < 0 {
			return fmt.Errorf("skip rows must be non-negative, got %d", n)
		}
		c.skipRows = n

		return nil
	})
}

// WithColumns selects the zero-based column indexes for x, y and sigma. Default is 0, 1, 2.
func WithColumns(x, y, sigma int) LoadOption {
	return options.New(func(c *loadConfig) error {
		if x < 0 || y < 0 || sigma < 0 {
			return fmt.Errorf("column indexes must be non-negative, got %d,%d,%d", x, y, sigma)
		}
		c.columns = [3]int{x, y, sigma}

		return nil
	})
}

// WithDelimiter splits rows on a single character such as ',' or ';' instead of whitespace.
// Fields are trimmed of surrounding whitespace.
func WithDelimiter(d rune) LoadOption {
	return options.NoError(func(c *loadConfig) {
		c.delimiter = d
	})
}

// WithCompression forces the decompression codec used by Load instead of
// inferring it from the file extension.
func WithCompression(ct format.CompressionType) LoadOption {
	return options.New(func(c *loadConfig) error {
		if _, err := compress.GetCodec(ct); err != nil {
			return err
		}
		c.compression = ct

		return nil
	})
}

// WithName sets the series name. Load defaults to the file name.
func WithName(name string) LoadOption {
	return options.NoError(func(c *loadConfig) {
		c.name = name
	})
}

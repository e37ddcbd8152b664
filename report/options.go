package report

import (
	"fmt"
	"strconv"

	"github.com/arloliu/expfit/internal/options"
)

// Option configures how values and units are rendered.
type Option = options.Option[*config]

type config struct {
	timeUnit    string
	voltageUnit string
	precision   int
}

func newConfig(opts []Option) (*config, error) {
	cfg := &config{
		timeUnit:    "s",
		voltageUnit: "V",
		precision:   4,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// num formats v with the configured number of significant digits.
func (c *config) num(v float64) string {
	return strconv.FormatFloat(v, 'g', c.precision, 64)
}

// WithTimeUnit sets the unit of the independent variable. Default is "s".
// Decay rates are rendered per this unit.
func WithTimeUnit(unit string) Option {
	return options.NoError(func(c *config) {
		c.timeUnit = unit
	})
}

// WithVoltageUnit sets the unit of the measured values. Default is "V".
func WithVoltageUnit(unit string) Option {
	return options.NoError(func(c *config) {
		c.voltageUnit = unit
	})
}

// WithPrecision sets the number of significant digits, between 1 and 17. Default is 4.
func WithPrecision(digits int) Option {
	return options.New(func(c *config) error {
		if digits < 1 || digits > 17 {
			return fmt.Errorf("precision must be in [1, 17], got %d", digits)
		}
		c.precision = digits

		return nil
	})
}

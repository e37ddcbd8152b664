package report

import (
	"fmt"

	"github.com/arloliu/expfit"
)

// Point is a point on a plotted fit line.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// FitLine returns the fitted straight line at the smallest and largest X.
func FitLine(res *expfit.Result) [2]Point {
	x0, y0, x1, y1 := res.Line()

	return [2]Point{{X: x0, Y: y0}, {X: x1, Y: y1}}
}

// Annotations returns the labelled fit values, one per line.
//
// For an exponential fit, with ln V = A + B·t:
//
//	A = ln V0 = 1.651 ± 0.01444
//	B = -Gamma = -0.01051 ± 0.0001424 /ns
//	χ²_r = 0.7537
//	V0 = 5.212 ± 0.07527 V
//	Gamma = 0.01051 ± 0.0001424 /ns
//
// A linear fit yields only the first three lines, without units.
func Annotations(res *expfit.Result, opts ...Option) ([]string, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	return annotations(res, cfg), nil
}

func annotations(res *expfit.Result, cfg *config) []string {
	fit := res.Linear
	chi2r := fmt.Sprintf("χ²_r = %s", cfg.num(res.Diagnostics.ReducedChiSquared))

	if res.Params == nil {
		return []string{
			fmt.Sprintf("A = intercept = %s ± %s", cfg.num(fit.Intercept), cfg.num(fit.InterceptErr)),
			fmt.Sprintf("B = slope = %s ± %s", cfg.num(fit.Slope), cfg.num(fit.SlopeErr)),
			chi2r,
		}
	}

	p := res.Params

	return []string{
		fmt.Sprintf("A = ln V0 = %s ± %s", cfg.num(fit.Intercept), cfg.num(fit.InterceptErr)),
		fmt.Sprintf("B = -Gamma = %s ± %s /%s", cfg.num(fit.Slope), cfg.num(fit.SlopeErr), cfg.timeUnit),
		chi2r,
		fmt.Sprintf("V0 = %s ± %s %s", cfg.num(p.V0), cfg.num(p.V0Err), cfg.voltageUnit),
		fmt.Sprintf("Gamma = %s ± %s /%s", cfg.num(p.DecayRate), cfg.num(p.DecayRateErr), cfg.timeUnit),
	}
}

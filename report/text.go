package report

import (
	"fmt"
	"io"
	"math"

	"github.com/arloliu/expfit"
	"github.com/arloliu/expfit/internal/pool"
)

// WriteText writes a human-readable summary of res to w.
func WriteText(w io.Writer, res *expfit.Result, opts ...Option) error {
	cfg, err := newConfig(opts)
	if err != nil {
		return err
	}

	buf := pool.GetReportBuffer()
	defer pool.PutReportBuffer(buf)

	renderText(buf, res, cfg)
	_, err = buf.WriteTo(w)

	return err
}

func renderText(w io.Writer, res *expfit.Result, cfg *config) {
	name := res.SeriesName
	if name == "" {
		name = "(unnamed)"
	}

	fmt.Fprintf(w, "=== Fit: %s ===\n\n", name)
	fmt.Fprintf(w, "  Series ID:           %016x\n", res.SeriesID)
	fmt.Fprintf(w, "  Model:               %s\n", res.Model)
	fmt.Fprintf(w, "  Points:              %d\n", res.Linear.N)
	fmt.Fprintln(w)

	if res.Params != nil {
		fmt.Fprintln(w, "=== Linear Fit: ln V = A + B·t ===")
	} else {
		fmt.Fprintln(w, "=== Linear Fit: y = A + B·x ===")
	}
	fmt.Fprintln(w)
	for _, line := range annotations(res, cfg) {
		fmt.Fprintf(w, "  %s\n", line)
	}
	fmt.Fprintln(w)

	d := res.Diagnostics
	fmt.Fprintln(w, "=== Goodness of Fit ===")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  χ²:                  %s\n", cfg.num(d.ChiSquared))
	fmt.Fprintf(w, "  Degrees of freedom:  %d\n", d.DegreesOfFreedom)
	fmt.Fprintf(w, "  Reduced χ²:          %s (%s)\n", cfg.num(d.ReducedChiSquared), classifyReducedChiSquared(d.ReducedChiSquared))
	fmt.Fprintf(w, "  Weighted R²:         %s\n", cfg.num(d.RSquared))
	fmt.Fprintf(w, "  RMSE:                %s\n", cfg.num(d.RMSE))
	fmt.Fprintln(w)

	if res.Params == nil {
		return
	}

	p := res.Params
	fmt.Fprintln(w, "=== Decay Parameters ===")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  V0:                  %s ± %s %s\n", cfg.num(p.V0), cfg.num(p.V0Err), cfg.voltageUnit)
	fmt.Fprintf(w, "  Gamma:               %s ± %s /%s\n", cfg.num(p.DecayRate), cfg.num(p.DecayRateErr), cfg.timeUnit)
	if tau := p.TimeConstant(); !math.IsInf(tau, 1) {
		fmt.Fprintf(w, "  Time constant:       %s ± %s %s\n", cfg.num(tau), cfg.num(p.TimeConstantErr()), cfg.timeUnit)
		fmt.Fprintf(w, "  Half-life:           %s %s\n", cfg.num(p.HalfLife()), cfg.timeUnit)
	} else {
		fmt.Fprintln(w, "  Time constant:       none (series does not decay)")
	}
	fmt.Fprintln(w)
}

// classifyReducedChiSquared describes how the scatter compares with the stated uncertainties.
func classifyReducedChiSquared(chi2r float64) string {
	switch {
	case chi2r < 0.5:
		return "uncertainties likely overestimated"
	case chi2r <= 2:
		return "consistent with uncertainties"
	default:
		return "poor fit or underestimated uncertainties"
	}
}

// Package expfit fits exponential decays V(t) = V0·e^(−Γt) to measurements with
// known uncertainties.
//
// The fit is linear: each point is transformed to (t, ln V) with uncertainty
// dV/V, a weighted straight line is fitted in closed form, and the intercept and
// slope are turned back into the amplitude V0 and decay rate Γ with first-order
// error propagation. No iteration or starting guess is involved.
//
// # Basic Usage
//
//	s, err := dataset.Load("RLcircuit.txt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := expfit.FitDecay(s)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Params)      // Params{V0: 5.2116 ± 0.0753, Γ: 0.01051 ± 0.000142}
//	fmt.Println(res.Diagnostics) // reduced chi-squared near 1 for a good fit
//
// # Package Structure
//
// This package wires the focused packages together for the common case:
//
//   - regression: weighted straight-line fit and goodness-of-fit statistics
//   - decay: log-linearization and the transform back to V0 and Γ
//   - dataset: measurement tables and binary snapshots
//   - report: text, CSV and JSON reports of a Result
//
// Use regression and decay directly for finer control.
package expfit

import (
	"fmt"

	"github.com/arloliu/expfit/dataset"
	"github.com/arloliu/expfit/decay"
	"github.com/arloliu/expfit/regression"
)

// Result is the outcome of fitting one measurement series.
//
// X, Y and Sigma are the values the straight line was fitted to. For an
// exponential fit they are the linearized (t, ln V, dV/V) values, not the raw
// measurements.
type Result struct {
	SeriesID    uint64                 `json:"series_id"`
	SeriesName  string                 `json:"series_name,omitempty"`
	Model       regression.ModelType   `json:"model"`
	Linear      regression.Fit         `json:"linear"`
	Diagnostics regression.Diagnostics `json:"diagnostics"`
	Params      *decay.Params          `json:"params,omitempty"`

	X     []float64 `json:"-"`
	Y     []float64 `json:"-"`
	Sigma []float64 `json:"-"`
}

// Fit fits s with the given model.
//
// Parameters:
//   - s: Measurement series; for ModelTypeExponential every Y must be positive
//   - model: ModelTypeExponential or ModelTypeLinear
//
// Returns:
//   - *Result: Fit, diagnostics and (for exponential fits) decay parameters
//   - error: Wraps regression.ErrInvalidInput, ErrDegenerateFit or
//     ErrInsufficientDegreesOfFreedom; no partial result is returned
func Fit(s dataset.Series, model regression.ModelType) (*Result, error) {
	switch model {
	case regression.ModelTypeExponential:
		return FitDecay(s)
	case regression.ModelTypeLinear:
		return FitLinear(s)
	default:
		return nil, fmt.Errorf("%w: unsupported model %s", regression.ErrInvalidInput, model)
	}
}

// FitDecay fits V(t) = V0·e^(−Γt) to s, reading X as t, Y as V and Sigma as dV.
//
// Example:
//
//	res, err := expfit.FitDecay(dataset.NewSeries("rl", t, v, dv))
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("Γ = %.4f ± %.4f\n", res.Params.DecayRate, res.Params.DecayRateErr)
func FitDecay(s dataset.Series) (*Result, error) {
	x, y, dy, err := decay.Linearize(s.X, s.Y, s.Sigma)
	if err != nil {
		return nil, fmt.Errorf("fit %q: %w", s.Name, err)
	}

	res, err := fitLine(s, x, y, dy, regression.ModelTypeExponential)
	if err != nil {
		return nil, err
	}

	params := decay.FromLinearFit(res.Linear)
	res.Params = &params

	return res, nil
}

// FitLinear fits the straight line Y = intercept + slope·X to s without any transform.
// The returned Result has nil Params.
func FitLinear(s dataset.Series) (*Result, error) {
	return fitLine(s, s.X, s.Y, s.Sigma, regression.ModelTypeLinear)
}

func fitLine(s dataset.Series, x, y, sigma []float64, model regression.ModelType) (*Result, error) {
	fit, err := regression.FitWeighted(x, y, sigma)
	if err != nil {
		return nil, fmt.Errorf("fit %q: %w", s.Name, err)
	}

	diag, err := regression.Diagnose(x, y, sigma, fit)
	if err != nil {
		return nil, fmt.Errorf("fit %q: %w", s.Name, err)
	}

	return &Result{
		SeriesID:    s.ID(),
		SeriesName:  s.Name,
		Model:       model,
		Linear:      fit,
		Diagnostics: diag,
		X:           x,
		Y:           y,
		Sigma:       sigma,
	}, nil
}

// Line returns the fitted straight line evaluated at the smallest and largest X.
// Two points are enough to draw it.
func (r *Result) Line() (x0, y0, x1, y1 float64) {
	x0, x1 = dataset.NewSeries("", r.X, nil, nil).Bounds()
	line := r.Linear.Estimator()

	return x0, line.Estimate(x0), x1, line.Estimate(x1)
}

// Fitted returns the fitted line evaluated at every X.
func (r *Result) Fitted() []float64 {
	line := r.Linear.Estimator()
	out := make([]float64, len(r.X))
	for i, x := range r.X {
		out[i] = line.Estimate(x)
	}

	return out
}

// Residuals returns the normalized residuals (Y − fitted)/Sigma.
func (r *Result) Residuals() ([]float64, error) {
	return regression.Residuals(r.X, r.Y, r.Sigma, r.Linear.Slope, r.Linear.Intercept)
}

// Estimator returns an estimator for the fitted model in its original units:
// the decay curve for exponential fits, the straight line otherwise.
func (r *Result) Estimator() regression.Estimator {
	if r.Params != nil {
		return r.Params.Estimator()
	}

	return r.Linear.Estimator()
}

// String returns a one-line summary of the result.
func (r *Result) String() string {
	if r.Params != nil {
		return fmt.Sprintf("Result{Series: %q, Model: %s, %s, χ²_r: %.4f}",
			r.SeriesName, r.Model, r.Params, r.Diagnostics.ReducedChiSquared)
	}

	return fmt.Sprintf("Result{Series: %q, Model: %s, %s, χ²_r: %.4f}",
		r.SeriesName, r.Model, r.Linear, r.Diagnostics.ReducedChiSquared)
}

package regression

import (
	"fmt"
	"math"
)

const (
	// NumParams is the number of parameters of the straight-line model (slope and intercept).
	NumParams = 2
	// MinPoints is the smallest series that can be fitted while leaving one residual
	// degree of freedom.
	MinPoints = NumParams + 1
)

// Fit is the result of a weighted straight-line fit y = Intercept + Slope*x.
//
// Fields:
//   - Slope: Best-fit slope
//   - Intercept: Best-fit y-intercept
//   - SlopeErr: Standard error of the slope
//   - InterceptErr: Standard error of the intercept
//   - N: Number of points the fit was computed from
type Fit struct {
	Slope        float64 `json:"slope"`
	Intercept    float64 `json:"intercept"`
	SlopeErr     float64 `json:"slope_err"`
	InterceptErr float64 `json:"intercept_err"`
	N            int     `json:"n"`
}

// Estimate evaluates the fitted line at x.
func (f Fit) Estimate(x float64) float64 {
	return f.Intercept + f.Slope*x
}

// String returns a string representation of the fit.
func (f Fit) String() string {
	return fmt.Sprintf("Fit{Slope: %.6g ± %.3g, Intercept: %.6g ± %.3g, N: %d}",
		f.Slope, f.SlopeErr, f.Intercept, f.InterceptErr, f.N)
}

// FitWeighted fits the model y = intercept + slope*x by weighted linear least squares.
//
// Each point is weighted by 1/sigma², which makes the result the maximum-likelihood
// estimate under independent Gaussian noise. The solution is closed-form:
//
//	w     = 1/σ²
//	x̂, ŷ  = Σwx/Σw, Σwy/Σw
//	S     = Σw(x-x̂)x
//	slope = Σw(x-x̂)y / S,  σ_slope = √(1/S)
//	yint  = ŷ - slope·x̂,   σ_yint  = σ_slope·√(Σwx²/Σw)
//
// Parameters:
//   - x: Independent variable
//   - y: Dependent variable
//   - sigma: Per-point uncertainty of y, all strictly positive
//
// Returns:
//   - Fit: Slope, intercept and their standard errors
//   - error: ErrInvalidInput for malformed series, ErrDegenerateFit when all x are equal
//
// Example:
//
//	fit, err := regression.FitWeighted(
//	    []float64{0, 1, 2, 3},
//	    []float64{1, 3, 5, 7},
//	    []float64{1, 1, 1, 1},
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(fit.Slope, fit.Intercept) // 2 1
func FitWeighted(x, y, sigma []float64) (Fit, error) {
	if err := validateSeries(x, y, sigma); err != nil {
		return Fit{}, err
	}

	if allEqual(x) {
		return Fit{}, fmt.Errorf("%w: all %d x values equal %g", ErrDegenerateFit, len(x), x[0])
	}

	n := len(x)

	var norm, sumWX, sumWY float64
	for i := range n {
		w := weight(sigma[i])
		norm += w
		sumWX += w * x[i]
		sumWY += w * y[i]
	}

	xhat := sumWX / norm
	yhat := sumWY / norm

	var s, sumDY, sumWX2 float64
	for i := range n {
		w := weight(sigma[i])
		dx := x[i] - xhat
		s += w * dx * x[i]
		sumDY += w * dx * y[i]
		sumWX2 += w * x[i] * x[i]
	}

	// S is a weighted variance and can only vanish (or go negative through
	// rounding) when x carries no usable spread.
	if !(s > 0) || math.IsInf(s, 0) {
		return Fit{}, fmt.Errorf("%w: weighted x spread is %g", ErrDegenerateFit, s)
	}

	slope := sumDY / s
	slopeErr := math.Sqrt(1.0 / s)

	return Fit{
		Slope:        slope,
		Intercept:    yhat - slope*xhat,
		SlopeErr:     slopeErr,
		InterceptErr: slopeErr * math.Sqrt(sumWX2/norm),
		N:            n,
	}, nil
}

// weight returns the inverse-variance weight 1/σ².
func weight(sigma float64) float64 {
	return 1.0 / (sigma * sigma)
}

// validateSeries checks the preconditions shared by the fit and its diagnostics.
func validateSeries(x, y, sigma []float64) error {
	if len(x) != len(y) || len(x) != len(sigma) {
		return fmt.Errorf("%w: mismatched lengths x=%d y=%d sigma=%d", ErrInvalidInput, len(x), len(y), len(sigma))
	}

	if len(x) < MinPoints {
		return fmt.Errorf("%w: need at least %d points, got %d", ErrInvalidInput, MinPoints, len(x))
	}

	for i := range x {
		if !isFinite(x[i]) || !isFinite(y[i]) {
			return fmt.Errorf("%w: non-finite value at index %d (x=%g, y=%g)", ErrInvalidInput, i, x[i], y[i])
		}
		if !(sigma[i] > 0) || math.IsInf(sigma[i], 0) {
			return fmt.Errorf("%w: uncertainty at index %d must be positive and finite, got %g", ErrInvalidInput, i, sigma[i])
		}
	}

	return nil
}

func allEqual(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}

	return true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

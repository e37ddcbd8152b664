package decay

import (
	"fmt"
	"math"

	"github.com/arloliu/expfit/regression"
)

// Linearize transforms decay measurements (t, v, dv) into the straight-line form
// (X, Y, dY) = (t, ln v, dv/v).
//
// The returned slices are newly allocated; t is copied rather than aliased so the
// caller may reuse its input.
//
// Parameters:
//   - t: Independent variable (time)
//   - v: Measured values, all strictly positive
//   - dv: Absolute uncertainties of v, all strictly positive
//
// Returns:
//   - x, y, dy: Log-linearized series ready for regression.FitWeighted
//   - err: An error wrapping regression.ErrInvalidInput on mismatched lengths or
//     non-positive values
func Linearize(t, v, dv []float64) (x, y, dy []float64, err error) {
	if len(t) != len(v) || len(t) != len(dv) {
		return nil, nil, nil, fmt.Errorf("%w: mismatched lengths t=%d v=%d dv=%d",
			regression.ErrInvalidInput, len(t), len(v), len(dv))
	}

	x = make([]float64, len(t))
	y = make([]float64, len(t))
	dy = make([]float64, len(t))

	for i := range t {
		if !(v[i] > 0) || math.IsInf(v[i], 0) {
			return nil, nil, nil, fmt.Errorf("%w: value at index %d must be positive to take its logarithm, got %g",
				regression.ErrInvalidInput, i, v[i])
		}
		if !(dv[i] > 0) || math.IsInf(dv[i], 0) {
			return nil, nil, nil, fmt.Errorf("%w: uncertainty at index %d must be positive, got %g",
				regression.ErrInvalidInput, i, dv[i])
		}

		x[i] = t[i]
		y[i] = math.Log(v[i])
		dy[i] = dv[i] / v[i]
	}

	return x, y, dy, nil
}

// FromLinearFit converts a straight-line fit of (t, ln V) into the decay parameters.
//
// The decay rate is the negated slope with the same standard error; the amplitude is
// e^intercept with its error scaled by the amplitude itself (d e^A / dA = e^A).
func FromLinearFit(fit regression.Fit) Params {
	v0 := math.Exp(fit.Intercept)

	return Params{
		V0:           v0,
		V0Err:        v0 * fit.InterceptErr,
		DecayRate:    -fit.Slope,
		DecayRateErr: fit.SlopeErr,
	}
}

// ToLinearFit is the inverse of FromLinearFit. N is left zero since the point
// count is not part of the physical parameters.
func ToLinearFit(p Params) regression.Fit {
	return regression.Fit{
		Slope:        -p.DecayRate,
		Intercept:    math.Log(p.V0),
		SlopeErr:     p.DecayRateErr,
		InterceptErr: p.V0Err / p.V0,
	}
}

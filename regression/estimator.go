package regression

import "math"

// Estimator evaluates a fitted model at arbitrary points.
type Estimator interface {
	// Estimate returns the model value at x.
	Estimate(x float64) float64
	// Type returns the model type.
	Type() ModelType
	// Coefficients returns the model coefficients.
	// The slice is reused by later calls.
	Coefficients() []float64
}

// LinearEstimator implements the straight line y = a + b*x.
type LinearEstimator struct {
	a, b   float64
	coeffs []float64 // Cached coefficient slice to avoid allocations
}

var _ Estimator = (*LinearEstimator)(nil)

// NewLinearEstimator creates a new linear estimator with intercept a and slope b.
func NewLinearEstimator(a, b float64) *LinearEstimator {
	return &LinearEstimator{
		a:      a,
		b:      b,
		coeffs: make([]float64, 2),
	}
}

// Estimate calculates y = a + b*x.
func (l *LinearEstimator) Estimate(x float64) float64 {
	return l.a + l.b*x
}

// Type returns the model type.
func (l *LinearEstimator) Type() ModelType {
	return ModelTypeLinear
}

// Coefficients returns the model coefficients [a, b].
func (l *LinearEstimator) Coefficients() []float64 {
	l.coeffs[0] = l.a
	l.coeffs[1] = l.b

	return l.coeffs
}

// ExponentialEstimator implements the decay V = V0 * e^(-Γ*t).
type ExponentialEstimator struct {
	v0, gamma float64
	coeffs    []float64 // Cached coefficient slice to avoid allocations
}

var _ Estimator = (*ExponentialEstimator)(nil)

// NewExponentialEstimator creates a new exponential estimator with amplitude v0 and decay rate gamma.
func NewExponentialEstimator(v0, gamma float64) *ExponentialEstimator {
	return &ExponentialEstimator{
		v0:     v0,
		gamma:  gamma,
		coeffs: make([]float64, 2),
	}
}

// Estimate calculates V = V0 * e^(-Γ*t).
func (e *ExponentialEstimator) Estimate(t float64) float64 {
	return e.v0 * math.Exp(-e.gamma*t)
}

// Type returns the model type.
func (e *ExponentialEstimator) Type() ModelType {
	return ModelTypeExponential
}

// Coefficients returns the model coefficients [V0, Γ].
func (e *ExponentialEstimator) Coefficients() []float64 {
	e.coeffs[0] = e.v0
	e.coeffs[1] = e.gamma

	return e.coeffs
}

// Estimator returns a LinearEstimator for the fitted line.
func (f Fit) Estimator() *LinearEstimator {
	return NewLinearEstimator(f.Intercept, f.Slope)
}

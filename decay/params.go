package decay

import (
	"fmt"
	"math"

	"github.com/arloliu/expfit/regression"
)

// Params holds the physical parameters of V(t) = V0 * e^(-DecayRate*t) with their
// standard errors.
type Params struct {
	V0           float64 `json:"v0"`
	V0Err        float64 `json:"v0_err"`
	DecayRate    float64 `json:"decay_rate"`
	DecayRateErr float64 `json:"decay_rate_err"`
}

// Estimate evaluates the decay at t.
func (p Params) Estimate(t float64) float64 {
	return p.V0 * math.Exp(-p.DecayRate*t)
}

// Estimator returns a regression.ExponentialEstimator for the decay.
func (p Params) Estimator() *regression.ExponentialEstimator {
	return regression.NewExponentialEstimator(p.V0, p.DecayRate)
}

// TimeConstant returns τ = 1/Γ, or +Inf when the series does not decay.
func (p Params) TimeConstant() float64 {
	if !(p.DecayRate > 0) {
		return math.Inf(1)
	}

	return 1 / p.DecayRate
}

// TimeConstantErr returns σ_τ = σ_Γ/Γ², or +Inf when the series does not decay.
func (p Params) TimeConstantErr() float64 {
	if !(p.DecayRate > 0) {
		return math.Inf(1)
	}

	return p.DecayRateErr / (p.DecayRate * p.DecayRate)
}

// HalfLife returns ln2/Γ, or +Inf when the series does not decay.
func (p Params) HalfLife() float64 {
	return math.Ln2 * p.TimeConstant()
}

// String returns a string representation of the parameters.
func (p Params) String() string {
	return fmt.Sprintf("Params{V0: %.6g ± %.3g, Γ: %.6g ± %.3g}",
		p.V0, p.V0Err, p.DecayRate, p.DecayRateErr)
}

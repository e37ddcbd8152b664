package regression

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noisyLine is y = 2 + 0.5x with a fixed, zero-mean-ish perturbation.
var (
	noisyX     = []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	noisyY     = []float64{2.1, 2.3, 3.05, 3.4, 4.1, 4.45, 5.1, 5.4, 6.05, 6.6}
	noisySigma = []float64{0.1, 0.1, 0.15, 0.1, 0.2, 0.1, 0.15, 0.1, 0.1, 0.2}
)

func uniform(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}

	return out
}

// ordinaryLeastSquares is the textbook unweighted straight-line fit.
func ordinaryLeastSquares(x, y []float64) (slope, intercept float64) {
	n := float64(len(x))
	var sumX, sumY, sumXY, sumX2 float64
	for i := range x {
		sumX += x[i]
		sumY += y[i]
		sumXY += x[i] * y[i]
		sumX2 += x[i] * x[i]
	}
	meanX := sumX / n
	meanY := sumY / n
	slope = (sumXY - n*meanX*meanY) / (sumX2 - n*meanX*meanX)

	return slope, meanY - slope*meanX
}

func TestFitWeighted_ConcreteScenario(t *testing.T) {
	fit, err := FitWeighted(
		[]float64{0, 1, 2, 3},
		[]float64{1, 3, 5, 7},
		[]float64{1, 1, 1, 1},
	)
	require.NoError(t, err)

	assert.InDelta(t, 2.0, fit.Slope, 1e-12)
	assert.InDelta(t, 1.0, fit.Intercept, 1e-12)
	assert.Equal(t, 4, fit.N)

	// S = Σ(x-x̂)x = 5, so σ_slope = √(1/5) and σ_yint = σ_slope·√(14/4).
	assert.InDelta(t, math.Sqrt(1.0/5.0), fit.SlopeErr, 1e-12)
	assert.InDelta(t, math.Sqrt(1.0/5.0)*math.Sqrt(14.0/4.0), fit.InterceptErr, 1e-12)
}

func TestFitWeighted_HandComputedWeights(t *testing.T) {
	// w = [1, 1, 1/4]: x̂ = 2/3, ŷ = 7/9, S = 1.
	fit, err := FitWeighted(
		[]float64{0, 1, 2},
		[]float64{0, 1, 3},
		[]float64{1, 1, 2},
	)
	require.NoError(t, err)

	assert.InDelta(t, 4.0/3.0, fit.Slope, 1e-12)
	assert.InDelta(t, -1.0/9.0, fit.Intercept, 1e-12)
	assert.InDelta(t, 1.0, fit.SlopeErr, 1e-12)
	assert.InDelta(t, math.Sqrt(8.0/9.0), fit.InterceptErr, 1e-12)
}

func TestFitWeighted_UniformSigmaMatchesOrdinaryLeastSquares(t *testing.T) {
	for _, c := range []float64{0.01, 1, 7.5} {
		fit, err := FitWeighted(noisyX, noisyY, uniform(len(noisyX), c))
		require.NoError(t, err)

		slope, intercept := ordinaryLeastSquares(noisyX, noisyY)
		assert.InDelta(t, slope, fit.Slope, 1e-10, "sigma=%g", c)
		assert.InDelta(t, intercept, fit.Intercept, 1e-10, "sigma=%g", c)
	}
}

func TestFitWeighted_NoiselessLineIsRecovered(t *testing.T) {
	tests := []struct {
		name      string
		slope     float64
		intercept float64
		x         []float64
	}{
		{"positive slope", 3.25, -1.5, []float64{-2, -1, 0, 1, 2, 3}},
		{"negative slope", -0.0137, 4.2, []float64{0, 50, 100, 150, 200, 250, 300}},
		{"large offset", 1e-3, 10, []float64{1e6, 1e6 + 1, 1e6 + 2, 1e6 + 3, 1e6 + 4}},
		{"uneven spacing", 12, 0, []float64{0.1, 0.15, 0.9, 2.7, 2.71}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			y := make([]float64, len(tt.x))
			for i, xi := range tt.x {
				y[i] = tt.intercept + tt.slope*xi
			}

			fit, err := FitWeighted(tt.x, y, uniform(len(tt.x), 0.5))
			require.NoError(t, err)

			assert.InDelta(t, tt.slope, fit.Slope, 1e-9*math.Max(1, math.Abs(tt.slope)))
			assert.InDelta(t, tt.intercept, fit.Intercept, 1e-6*math.Max(1, math.Abs(tt.intercept)))

			chi2r, err := ReducedChiSquared(tt.x, y, uniform(len(tt.x), 0.5), fit.Slope, fit.Intercept)
			require.NoError(t, err)
			assert.InDelta(t, 0.0, chi2r, 1e-9)
		})
	}
}

func TestFitWeighted_SigmaScaling(t *testing.T) {
	base, err := FitWeighted(noisyX, noisyY, noisySigma)
	require.NoError(t, err)
	baseChi2r, err := ReducedChiSquared(noisyX, noisyY, noisySigma, base.Slope, base.Intercept)
	require.NoError(t, err)

	for _, k := range []float64{0.5, 2, 10} {
		scaled := make([]float64, len(noisySigma))
		for i, s := range noisySigma {
			scaled[i] = k * s
		}

		fit, err := FitWeighted(noisyX, noisyY, scaled)
		require.NoError(t, err)

		assert.InDelta(t, base.Slope, fit.Slope, 1e-12, "k=%g", k)
		assert.InDelta(t, base.Intercept, fit.Intercept, 1e-12, "k=%g", k)
		assert.InEpsilon(t, k*base.SlopeErr, fit.SlopeErr, 1e-12, "k=%g", k)
		assert.InEpsilon(t, k*base.InterceptErr, fit.InterceptErr, 1e-12, "k=%g", k)

		chi2r, err := ReducedChiSquared(noisyX, noisyY, scaled, fit.Slope, fit.Intercept)
		require.NoError(t, err)
		assert.InEpsilon(t, baseChi2r/(k*k), chi2r, 1e-10, "k=%g", k)
	}
}

func TestFitWeighted_HeavierWeightPullsLine(t *testing.T) {
	x := []float64{0, 1, 2, 3}
	y := []float64{0, 1, 2, 5}

	loose, err := FitWeighted(x, y, []float64{1, 1, 1, 10})
	require.NoError(t, err)
	tight, err := FitWeighted(x, y, []float64{1, 1, 1, 0.1})
	require.NoError(t, err)

	// The outlier barely matters when loose and dominates when tight.
	assert.InDelta(t, 1.0, loose.Slope, 0.05)
	assert.Greater(t, tight.Slope, loose.Slope)
	assert.InDelta(t, 5.0, tight.Estimate(3), 0.05)
}

func TestFitWeighted_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		x     []float64
		y     []float64
		sigma []float64
	}{
		{"empty", nil, nil, nil},
		{"two points", []float64{0, 1}, []float64{0, 1}, []float64{1, 1}},
		{"mismatched y", []float64{0, 1, 2}, []float64{0, 1}, []float64{1, 1, 1}},
		{"mismatched sigma", []float64{0, 1, 2}, []float64{0, 1, 2}, []float64{1, 1, 1, 1}},
		{"zero sigma", []float64{0, 1, 2}, []float64{0, 1, 2}, []float64{1, 0, 1}},
		{"negative sigma", []float64{0, 1, 2}, []float64{0, 1, 2}, []float64{1, 1, -0.5}},
		{"NaN sigma", []float64{0, 1, 2}, []float64{0, 1, 2}, []float64{1, math.NaN(), 1}},
		{"infinite sigma", []float64{0, 1, 2}, []float64{0, 1, 2}, []float64{1, math.Inf(1), 1}},
		{"NaN y", []float64{0, 1, 2}, []float64{0, math.NaN(), 2}, []float64{1, 1, 1}},
		{"infinite x", []float64{0, math.Inf(-1), 2}, []float64{0, 1, 2}, []float64{1, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fit, err := FitWeighted(tt.x, tt.y, tt.sigma)
			require.Error(t, err)
			require.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, Fit{}, fit, "no partial result on failure")
		})
	}
}

func TestFitWeighted_DegenerateFit(t *testing.T) {
	tests := []struct {
		name  string
		x     []float64
		sigma []float64
	}{
		{"identical x", []float64{2, 2, 2, 2}, []float64{1, 1, 1, 1}},
		{"identical x with mixed sigma", []float64{0.3, 0.3, 0.3}, []float64{0.1, 1, 3}},
		{"all zero x", []float64{0, 0, 0}, []float64{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			y := make([]float64, len(tt.x))
			for i := range y {
				y[i] = float64(i)
			}

			_, err := FitWeighted(tt.x, y, tt.sigma)
			require.ErrorIs(t, err, ErrDegenerateFit)
			assert.False(t, errors.Is(err, ErrInvalidInput))
		})
	}
}

func TestFitWeighted_DoesNotModifyInput(t *testing.T) {
	x := append([]float64(nil), noisyX...)
	y := append([]float64(nil), noisyY...)
	sigma := append([]float64(nil), noisySigma...)

	_, err := FitWeighted(x, y, sigma)
	require.NoError(t, err)

	assert.Equal(t, noisyX, x)
	assert.Equal(t, noisyY, y)
	assert.Equal(t, noisySigma, sigma)
}

func TestFit_String(t *testing.T) {
	fit := Fit{Slope: 2, Intercept: 1, SlopeErr: 0.5, InterceptErr: 0.25, N: 4}
	assert.Equal(t, "Fit{Slope: 2 ± 0.5, Intercept: 1 ± 0.25, N: 4}", fit.String())
}

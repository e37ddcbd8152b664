package expfit

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/expfit/dataset"
	"github.com/arloliu/expfit/regression"
)

func loadRLCircuit(t *testing.T) dataset.Series {
	t.Helper()

	s, err := dataset.Load(filepath.Join("dataset", "testdata", "rlcircuit.txt"))
	require.NoError(t, err)

	return s
}

func TestFitDecay_RLCircuit(t *testing.T) {
	s := loadRLCircuit(t)

	res, err := FitDecay(s)
	require.NoError(t, err)

	assert.Equal(t, regression.ModelTypeExponential, res.Model)
	assert.Equal(t, s.ID(), res.SeriesID)
	assert.Equal(t, "rlcircuit.txt", res.SeriesName)

	assert.InDelta(t, -0.010509957892584408, res.Linear.Slope, 1e-12)
	assert.InDelta(t, 1.6508859719195286, res.Linear.Intercept, 1e-10)
	assert.InDelta(t, 0.00014244360562754973, res.Linear.SlopeErr, 1e-14)
	assert.InDelta(t, 0.014443330634629171, res.Linear.InterceptErr, 1e-12)
	assert.InDelta(t, 0.753747392610719, res.Diagnostics.ReducedChiSquared, 1e-9)
	assert.Equal(t, 18, res.Diagnostics.DegreesOfFreedom)

	require.NotNil(t, res.Params)
	assert.InDelta(t, 5.211595109295564, res.Params.V0, 1e-9)
	assert.InDelta(t, 0.07527279129737217, res.Params.V0Err, 1e-10)
	assert.InDelta(t, 0.010509957892584408, res.Params.DecayRate, 1e-12)
	assert.InDelta(t, 0.00014244360562754973, res.Params.DecayRateErr, 1e-14)
}

func TestFitDecay_NoiselessDecay(t *testing.T) {
	const v0, gamma = 3.5, 0.02

	n := 12
	tt := make([]float64, n)
	v := make([]float64, n)
	dv := make([]float64, n)
	for i := range n {
		tt[i] = float64(i) * 25
		v[i] = v0 * math.Exp(-gamma*tt[i])
		dv[i] = 0.05 * v[i]
	}

	res, err := FitDecay(dataset.NewSeries("clean", tt, v, dv))
	require.NoError(t, err)

	assert.InDelta(t, v0, res.Params.V0, 1e-9)
	assert.InDelta(t, gamma, res.Params.DecayRate, 1e-12)
	assert.InDelta(t, 0.0, res.Diagnostics.ReducedChiSquared, 1e-18)

	assert.InDelta(t, v0*math.Exp(-gamma*100), res.Estimator().Estimate(100), 1e-9)
}

func TestFitDecay_LinearizedValues(t *testing.T) {
	s := dataset.NewSeries("", []float64{0, 1, 2}, []float64{1, math.E, math.E * math.E}, []float64{0.1, 0.1, 0.1})

	res, err := FitDecay(s)
	require.NoError(t, err)

	assert.Equal(t, s.X, res.X)
	assert.InDeltaSlice(t, []float64{0, 1, 2}, res.Y, 1e-15)
	assert.InDeltaSlice(t, []float64{0.1, 0.1 / math.E, 0.1 / (math.E * math.E)}, res.Sigma, 1e-15)
}

func TestFitDecay_Errors(t *testing.T) {
	tests := []struct {
		name string
		s    dataset.Series
		err  error
	}{
		{"non-positive value", dataset.NewSeries("a", []float64{0, 1, 2}, []float64{1, 0, 1}, []float64{1, 1, 1}), regression.ErrInvalidInput},
		{"two points", dataset.NewSeries("b", []float64{0, 1}, []float64{2, 1}, []float64{1, 1}), regression.ErrInvalidInput},
		{"same time", dataset.NewSeries("c", []float64{5, 5, 5}, []float64{3, 2, 1}, []float64{1, 1, 1}), regression.ErrDegenerateFit},
		{"mismatched", dataset.NewSeries("d", []float64{0, 1, 2}, []float64{3, 2}, []float64{1, 1, 1}), regression.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := FitDecay(tt.s)
			require.ErrorIs(t, err, tt.err)
			assert.Nil(t, res)
			assert.Contains(t, err.Error(), `fit "`+tt.s.Name+`"`)
		})
	}
}

func TestFitLinear_ConcreteScenario(t *testing.T) {
	res, err := FitLinear(dataset.NewSeries("line",
		[]float64{0, 1, 2, 3},
		[]float64{1, 3, 5, 7},
		[]float64{1, 1, 1, 1},
	))
	require.NoError(t, err)

	assert.Nil(t, res.Params)
	assert.Equal(t, regression.ModelTypeLinear, res.Model)
	assert.InDelta(t, 2.0, res.Linear.Slope, 1e-12)
	assert.InDelta(t, 1.0, res.Linear.Intercept, 1e-12)
	assert.Equal(t, 0.0, res.Diagnostics.ReducedChiSquared)

	x0, y0, x1, y1 := res.Line()
	assert.Equal(t, 0.0, x0)
	assert.InDelta(t, 1.0, y0, 1e-12)
	assert.Equal(t, 3.0, x1)
	assert.InDelta(t, 7.0, y1, 1e-12)

	assert.InDeltaSlice(t, []float64{1, 3, 5, 7}, res.Fitted(), 1e-12)

	residuals, err := res.Residuals()
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 0, 0, 0}, residuals, 1e-12)

	assert.Equal(t, regression.ModelTypeLinear, res.Estimator().Type())
}

func TestFit_Dispatch(t *testing.T) {
	s := loadRLCircuit(t)

	exp, err := Fit(s, regression.ModelTypeExponential)
	require.NoError(t, err)
	assert.NotNil(t, exp.Params)

	lin, err := Fit(s, regression.ModelTypeLinear)
	require.NoError(t, err)
	assert.Nil(t, lin.Params)
	assert.NotEqual(t, exp.Linear, lin.Linear)

	_, err = Fit(s, regression.ModelType(-1))
	require.ErrorIs(t, err, regression.ErrInvalidInput)
}

func TestResult_Line_UnsortedX(t *testing.T) {
	res, err := FitLinear(dataset.NewSeries("",
		[]float64{3, 0, 2, 1},
		[]float64{7, 1, 5, 3},
		[]float64{1, 1, 1, 1},
	))
	require.NoError(t, err)

	x0, _, x1, _ := res.Line()
	assert.Equal(t, 0.0, x0)
	assert.Equal(t, 3.0, x1)
}

func TestResult_String(t *testing.T) {
	res, err := FitDecay(loadRLCircuit(t))
	require.NoError(t, err)
	assert.Contains(t, res.String(), `Result{Series: "rlcircuit.txt", Model: exponential, Params{V0: 5.2116`)

	lin, err := FitLinear(loadRLCircuit(t))
	require.NoError(t, err)
	assert.Contains(t, lin.String(), "Model: linear, Fit{Slope: ")
}

package regression

import (
	"fmt"
	"math"

	"github.com/arloliu/expfit/internal/pool"
)

// Diagnostics summarizes how well a straight-line fit describes its measurement series.
//
// Fields:
//   - ChiSquared: Σ((y - ŷ)/σ)²
//   - DegreesOfFreedom: n - NumParams
//   - ReducedChiSquared: ChiSquared / DegreesOfFreedom (≈1 when σ is well calibrated)
//   - RSquared: Weighted coefficient of determination (0-1, higher is better)
//   - RMSE: Unweighted root mean square residual, in units of y
type Diagnostics struct {
	ChiSquared        float64 `json:"chi_squared"`
	DegreesOfFreedom  int     `json:"degrees_of_freedom"`
	ReducedChiSquared float64 `json:"reduced_chi_squared"`
	RSquared          float64 `json:"r_squared"`
	RMSE              float64 `json:"rmse"`
}

// String returns a string representation of the diagnostics.
func (d Diagnostics) String() string {
	return fmt.Sprintf("Diagnostics{χ²: %.4g, DoF: %d, χ²_r: %.4f, R²: %.4f, RMSE: %.4g}",
		d.ChiSquared, d.DegreesOfFreedom, d.ReducedChiSquared, d.RSquared, d.RMSE)
}

// ReducedChiSquared returns the chi-squared statistic of the line y = intercept + slope*x
// divided by the n-2 degrees of freedom left after fitting two parameters.
//
// A value near 1 means the residuals are consistent with the stated uncertainties,
// a value much larger than 1 indicates a poor fit or underestimated uncertainties,
// and a value of exactly 0 means the line passes through every point.
//
// Returns ErrInsufficientDegreesOfFreedom for n ≤ 2 and ErrInvalidInput for
// mismatched lengths or non-positive uncertainties.
func ReducedChiSquared(x, y, sigma []float64, slope, intercept float64) (float64, error) {
	if err := checkDegreesOfFreedom(x, y, sigma); err != nil {
		return 0, err
	}

	chi2, err := ChiSquared(x, y, sigma, slope, intercept)
	if err != nil {
		return 0, err
	}

	return chi2 / float64(len(x)-NumParams), nil
}

// ChiSquared returns Σ(((y[i] - intercept - slope*x[i]) / sigma[i])²).
func ChiSquared(x, y, sigma []float64, slope, intercept float64) (float64, error) {
	residuals, err := Residuals(x, y, sigma, slope, intercept)
	if err != nil {
		return 0, err
	}

	chi2 := 0.0
	for _, r := range residuals {
		chi2 += r * r
	}

	return chi2, nil
}

// Residuals returns the normalized residuals (y[i] - ŷ[i]) / sigma[i] of the given line.
//
// Unlike the fit itself, residuals are defined for any non-empty series, so only
// equal lengths and positive uncertainties are required.
func Residuals(x, y, sigma []float64, slope, intercept float64) ([]float64, error) {
	if len(x) != len(y) || len(x) != len(sigma) {
		return nil, fmt.Errorf("%w: mismatched lengths x=%d y=%d sigma=%d", ErrInvalidInput, len(x), len(y), len(sigma))
	}

	residuals := make([]float64, len(x))
	for i := range x {
		if !(sigma[i] > 0) {
			return nil, fmt.Errorf("%w: uncertainty at index %d must be positive, got %g", ErrInvalidInput, i, sigma[i])
		}
		residuals[i] = (y[i] - intercept - slope*x[i]) / sigma[i]
	}

	return residuals, nil
}

// Diagnose computes the full set of goodness-of-fit statistics for fit on (x, y, sigma).
//
// Parameters:
//   - x, y, sigma: The measurement series the fit was computed from
//   - fit: Result of FitWeighted on the same series
//
// Returns:
//   - Diagnostics: Chi-squared statistics, weighted R² and RMSE
//   - error: ErrInsufficientDegreesOfFreedom or ErrInvalidInput
func Diagnose(x, y, sigma []float64, fit Fit) (Diagnostics, error) {
	if err := checkDegreesOfFreedom(x, y, sigma); err != nil {
		return Diagnostics{}, err
	}

	chi2, err := ChiSquared(x, y, sigma, fit.Slope, fit.Intercept)
	if err != nil {
		return Diagnostics{}, err
	}

	dof := len(x) - NumParams
	predicted, releasePredicted := pool.GetFloat64Slice(len(x))
	defer releasePredicted()
	weights, releaseWeights := pool.GetFloat64Slice(len(x))
	defer releaseWeights()

	for i := range x {
		predicted[i] = fit.Estimate(x[i])
		weights[i] = weight(sigma[i])
	}

	return Diagnostics{
		ChiSquared:        chi2,
		DegreesOfFreedom:  dof,
		ReducedChiSquared: chi2 / float64(dof),
		RSquared:          calculateWeightedRSquared(y, predicted, weights),
		RMSE:              calculateRMSE(y, predicted),
	}, nil
}

func checkDegreesOfFreedom(x, y, sigma []float64) error {
	if len(x) != len(y) || len(x) != len(sigma) {
		return fmt.Errorf("%w: mismatched lengths x=%d y=%d sigma=%d", ErrInvalidInput, len(x), len(y), len(sigma))
	}

	if len(x) <= NumParams {
		return fmt.Errorf("%w: %d points leave no degrees of freedom for %d parameters",
			ErrInsufficientDegreesOfFreedom, len(x), NumParams)
	}

	return nil
}

// calculateWeightedRSquared calculates the weighted coefficient of determination.
//
// Formula: R² = 1 - (SS_res / SS_tot)
//   - SS_res: Σw(observed - predicted)²
//   - SS_tot: Σw(observed - weighted mean)²
//
// Returns 0 when the observed values have no spread.
func calculateWeightedRSquared(observed, predicted, weights []float64) float64 {
	if len(observed) == 0 {
		return 0
	}

	mean := calculateWeightedMean(observed, weights)
	ssTot := 0.0
	ssRes := 0.0

	for i := range observed {
		ssTot += weights[i] * (observed[i] - mean) * (observed[i] - mean)
		ssRes += weights[i] * (observed[i] - predicted[i]) * (observed[i] - predicted[i])
	}

	if ssTot == 0 {
		return 0
	}

	return 1.0 - (ssRes / ssTot)
}

// calculateRMSE calculates the root mean square error.
//
// Formula: RMSE = √(Σ(observed - predicted)² / n)
func calculateRMSE(observed, predicted []float64) float64 {
	if len(observed) == 0 {
		return 0
	}

	sumSq := 0.0
	for i := range observed {
		diff := observed[i] - predicted[i]
		sumSq += diff * diff
	}

	return math.Sqrt(sumSq / float64(len(observed)))
}

// calculateWeightedMean calculates Σwv / Σw (0 for an empty or zero-weight slice).
func calculateWeightedMean(values, weights []float64) float64 {
	sum := 0.0
	norm := 0.0
	for i, v := range values {
		sum += weights[i] * v
		norm += weights[i]
	}

	if norm == 0 {
		return 0
	}

	return sum / norm
}

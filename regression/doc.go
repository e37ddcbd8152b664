// Package regression provides closed-form weighted linear least-squares fitting of
// uncertainty-annotated measurements, together with goodness-of-fit diagnostics.
//
// The package fits the straight line y = intercept + slope*x, weighting every point by
// the inverse square of its uncertainty. For independent Gaussian noise this is the
// maximum-likelihood estimate, and the standard errors of both parameters follow
// directly from the same sums, so no iteration is involved.
//
// # Key Features
//
//   - **Weighted Fit**: FitWeighted returns slope, intercept and their standard errors
//   - **Diagnostics**: ReducedChiSquared, ChiSquared, Residuals and Diagnose
//   - **Estimators**: Evaluate a fitted straight line or the exponential decay it linearizes
//   - **Typed Errors**: ErrInvalidInput, ErrDegenerateFit, ErrInsufficientDegreesOfFreedom
//
// # Usage Patterns
//
// ## Basic Fit
//
//	fit, err := regression.FitWeighted(x, y, sigma)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("slope = %.4f ± %.4f\n", fit.Slope, fit.SlopeErr)
//
// ## Fit Quality
//
//	chi2r, err := regression.ReducedChiSquared(x, y, sigma, fit.Slope, fit.Intercept)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// A reduced chi-squared near 1 means the scatter of the data matches the stated
// uncertainties. Values well above 1 point to a poor model or underestimated
// uncertainties; values near 0 point to overestimated uncertainties.
//
// ## Error Handling
//
// All errors wrap one of the package sentinels and can be tested with errors.Is:
//
//	if _, err := regression.FitWeighted(x, y, sigma); errors.Is(err, regression.ErrDegenerateFit) {
//	    // every x is the same; the slope is undefined
//	}
//
// # Performance Characteristics
//
//   - **Fit Time**: O(n), two passes over the data
//   - **Memory Usage**: No allocations in FitWeighted
//   - **Concurrency**: All functions are pure and safe for concurrent use
package regression

package regression

import "errors"

var (
	// ErrInvalidInput is returned when a measurement series cannot be fitted as given:
	// mismatched lengths, too few points, non-finite values or a non-positive uncertainty.
	ErrInvalidInput = errors.New("invalid input series")

	// ErrDegenerateFit is returned when the weighted spread of x is zero and the slope is undefined.
	ErrDegenerateFit = errors.New("degenerate fit")

	// ErrInsufficientDegreesOfFreedom is returned when there are not more points than fitted parameters.
	ErrInsufficientDegreesOfFreedom = errors.New("insufficient degrees of freedom")
)

package dataset

import (
	"fmt"
	"math"

	"github.com/arloliu/expfit/internal/hash"
	"github.com/arloliu/expfit/regression"
)

// Series is a measurement series: values Y with uncertainties Sigma taken at X.
type Series struct {
	Name  string
	X     []float64
	Y     []float64
	Sigma []float64
}

// NewSeries creates a named series from the given columns. The slices are not copied.
func NewSeries(name string, x, y, sigma []float64) Series {
	return Series{Name: name, X: x, Y: y, Sigma: sigma}
}

// Len returns the number of points, or -1 if the columns differ in length.
func (s Series) Len() int {
	if len(s.X) != len(s.Y) || len(s.X) != len(s.Sigma) {
		return -1
	}

	return len(s.X)
}

// Validate checks that the series can be passed to regression.FitWeighted.
//
// Returns an error wrapping regression.ErrInvalidInput when the columns differ
// in length, hold fewer than regression.MinPoints points, contain non-finite
// values, or any uncertainty is not strictly positive.
func (s Series) Validate() error {
	n := s.Len()
	if n < 0 {
		return fmt.Errorf("%w: series %q has mismatched columns x=%d y=%d sigma=%d",
			regression.ErrInvalidInput, s.Name, len(s.X), len(s.Y), len(s.Sigma))
	}
	if n < regression.MinPoints {
		return fmt.Errorf("%w: series %q has %d points, need at least %d",
			regression.ErrInvalidInput, s.Name, n, regression.MinPoints)
	}

	for i := range n {
		if math.IsNaN(s.X[i]) || math.IsInf(s.X[i], 0) || math.IsNaN(s.Y[i]) || math.IsInf(s.Y[i], 0) {
			return fmt.Errorf("%w: series %q has a non-finite value at point %d",
				regression.ErrInvalidInput, s.Name, i)
		}
		if !(s.Sigma[i] > 0) || math.IsInf(s.Sigma[i], 0) {
			return fmt.Errorf("%w: series %q uncertainty at point %d must be positive and finite, got %g",
				regression.ErrInvalidInput, s.Name, i, s.Sigma[i])
		}
	}

	return nil
}

// ID returns a 64-bit xxHash fingerprint of the three columns.
//
// Two series with identical values share an ID regardless of their names, so the
// ID identifies the data itself in logs and reports.
func (s Series) ID() uint64 {
	return hash.Columns(s.X, s.Y, s.Sigma)
}

// Bounds returns the smallest and largest X. Both are 0 for an empty series.
func (s Series) Bounds() (lo, hi float64) {
	if len(s.X) == 0 {
		return 0, 0
	}

	lo, hi = s.X[0], s.X[0]
	for _, v := range s.X[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	return lo, hi
}

// Clone returns a deep copy of the series.
func (s Series) Clone() Series {
	return Series{
		Name:  s.Name,
		X:     cloneFloats(s.X),
		Y:     cloneFloats(s.Y),
		Sigma: cloneFloats(s.Sigma),
	}
}

// String returns a short description of the series.
func (s Series) String() string {
	lo, hi := s.Bounds()

	return fmt.Sprintf("Series{Name: %q, N: %d, X: [%g, %g], ID: %016x}", s.Name, s.Len(), lo, hi, s.ID())
}

func cloneFloats(in []float64) []float64 {
	if in == nil {
		return nil
	}

	return append([]float64(nil), in...)
}

package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/expfit/regression"
)

func lineSeries() Series {
	return NewSeries("line",
		[]float64{0, 1, 2, 3},
		[]float64{1, 3, 5, 7},
		[]float64{1, 1, 1, 1},
	)
}

func TestSeries_Len(t *testing.T) {
	assert.Equal(t, 4, lineSeries().Len())
	assert.Equal(t, 0, Series{}.Len())
	assert.Equal(t, -1, NewSeries("", []float64{1}, nil, nil).Len())
}

func TestSeries_Validate(t *testing.T) {
	require.NoError(t, lineSeries().Validate())

	tests := []struct {
		name   string
		mutate func(*Series)
	}{
		{"mismatched", func(s *Series) { s.Y = s.Y[:3] }},
		{"too short", func(s *Series) { s.X, s.Y, s.Sigma = s.X[:2], s.Y[:2], s.Sigma[:2] }},
		{"zero sigma", func(s *Series) { s.Sigma[1] = 0 }},
		{"negative sigma", func(s *Series) { s.Sigma[2] = -1 }},
		{"infinite sigma", func(s *Series) { s.Sigma[0] = math.Inf(1) }},
		{"NaN x", func(s *Series) { s.X[3] = math.NaN() }},
		{"infinite y", func(s *Series) { s.Y[0] = math.Inf(-1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := lineSeries()
			tt.mutate(&s)
			require.ErrorIs(t, s.Validate(), regression.ErrInvalidInput)
		})
	}
}

func TestSeries_ID(t *testing.T) {
	a := lineSeries()
	b := lineSeries()
	b.Name = "renamed"

	assert.Equal(t, a.ID(), b.ID(), "the name does not contribute to the ID")

	b.Y[2] = 5.0000001
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestSeries_Bounds(t *testing.T) {
	lo, hi := NewSeries("", []float64{3, -1, 7, 2}, nil, nil).Bounds()
	assert.Equal(t, -1.0, lo)
	assert.Equal(t, 7.0, hi)

	lo, hi = Series{}.Bounds()
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 0.0, hi)
}

func TestSeries_Clone(t *testing.T) {
	s := lineSeries()
	c := s.Clone()
	require.Equal(t, s, c)

	c.X[0] = 42
	assert.Equal(t, 0.0, s.X[0])
}

func TestSeries_String(t *testing.T) {
	assert.Contains(t, lineSeries().String(), `Series{Name: "line", N: 4, X: [0, 3], ID: `)
}

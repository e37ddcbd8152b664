package hash

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestID(t *testing.T) {
	tests := []struct {
		name string
		data string
		id   uint64
	}{
		{"empty string", "", 0xef46db3751d8e999},
		{"short string", "test", 0x4fdcca5ddb678139},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.id, ID(tt.data))
		})
	}
}

func TestColumns(t *testing.T) {
	x := []float64{0, 1, 2, 3}
	y := []float64{1, 3, 5, 7}

	assert.Equal(t, Columns(x, y), Columns(x, y), "deterministic")
	assert.NotEqual(t, Columns(x, y), Columns(y, x), "column order matters")
	assert.NotEqual(t, Columns([]float64{1, 2}, []float64{3}), Columns([]float64{1}, []float64{2, 3}))
	assert.NotEqual(t, Columns([]float64{0}), Columns([]float64{math.Copysign(0, -1)}))
	assert.NotEqual(t, Columns(), Columns([]float64{}))
}

func BenchmarkColumns(b *testing.B) {
	col := make([]float64, 1000)
	for i := range col {
		col[i] = math.Exp(-float64(i) / 100)
	}

	for b.Loop() {
		Columns(col, col, col)
	}
}

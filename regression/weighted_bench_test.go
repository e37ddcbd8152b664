package regression

import (
	"fmt"
	"math"
	"testing"
)

// BenchmarkFitWeighted benchmarks the closed-form weighted fit.
func BenchmarkFitWeighted(b *testing.B) {
	sizes := []int{10, 100, 1000, 5000}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("Points_%d", size), func(b *testing.B) {
			x, y, sigma := generateBenchmarkData(size)
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if _, err := FitWeighted(x, y, sigma); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkDiagnose benchmarks the goodness-of-fit statistics.
func BenchmarkDiagnose(b *testing.B) {
	sizes := []int{10, 100, 1000, 5000}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("Points_%d", size), func(b *testing.B) {
			x, y, sigma := generateBenchmarkData(size)
			fit, err := FitWeighted(x, y, sigma)
			if err != nil {
				b.Fatal(err)
			}
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if _, err := Diagnose(x, y, sigma, fit); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// generateBenchmarkData creates a log-linearized decay with deterministic ripple.
func generateBenchmarkData(size int) (x, y, sigma []float64) {
	x = make([]float64, size)
	y = make([]float64, size)
	sigma = make([]float64, size)

	for i := range size {
		t := float64(i)
		x[i] = t
		y[i] = 1.6 - 0.012*t + 0.02*math.Sin(t)
		sigma[i] = 0.02 + 0.001*t
	}

	return x, y, sigma
}

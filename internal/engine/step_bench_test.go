package engine

import (
	"fmt"
	"testing"

	"github.com/tphakala/go-synapse/internal/lti"
)

// BenchmarkAdvance measures one step per call for each algorithm at a
// typical population width.
func BenchmarkAdvance(b *testing.B) {
	const size = 100

	tri, err := TriangleKernel(0.01, 0.001)
	if err != nil {
		b.Fatal(err)
	}

	kernels := []struct {
		name string
		k    Kernel
	}{
		{"NoX", LTIKernel(lti.Coefficients{Num: []float64{0.5}, Den: []float64{}})},
		{"OneX", LTIKernel(lti.Coefficients{Num: []float64{0.18}, Den: []float64{-0.82}})},
		{"General2", LTIKernel(lti.Coefficients{Num: []float64{0.016, 0.013}, Den: []float64{-1.64, 0.67}})},
		{"Triangle11", tri},
	}

	for _, kc := range kernels {
		b.Run(fmt.Sprintf("%s/float64", kc.name), func(b *testing.B) {
			benchmarkAdvance[float64](b, kc.k, size)
		})
		b.Run(fmt.Sprintf("%s/float32", kc.name), func(b *testing.B) {
			benchmarkAdvance[float32](b, kc.k, size)
		})
	}
}

func benchmarkAdvance[F float32 | float64](b *testing.B, k Kernel, size int) {
	b.Helper()

	s, err := New[F](k, size, nil)
	if err != nil {
		b.Fatal(err)
	}

	in := make([]F, size)
	out := make([]F, size)
	for i := range in {
		in[i] = F(i%7) * 0.1
	}

	b.ReportAllocs()
	for b.Loop() {
		s.Advance(0, in, out)
	}
}

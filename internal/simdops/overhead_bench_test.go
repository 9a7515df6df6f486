package simdops

import (
	"testing"

	"github.com/tphakala/simd/f64"
)

// Synapse state rings are short (order 1-4), so the interesting question is
// whether the indirect call costs anything at these sizes.

// BenchmarkDirectF64DotProduct measures direct SIMD call overhead.
func BenchmarkDirectF64DotProduct(b *testing.B) {
	a := []float64{0.5, 0.25, 0.125}
	c := []float64{1, 2, 3}

	b.ReportAllocs()
	for b.Loop() {
		_ = f64.DotProductUnsafe(a, c)
	}
}

// BenchmarkIndirectF64DotProduct measures indirect call through Ops struct.
func BenchmarkIndirectF64DotProduct(b *testing.B) {
	ops := For[float64]()
	a := []float64{0.5, 0.25, 0.125}
	c := []float64{1, 2, 3}

	b.ReportAllocs()
	for b.Loop() {
		_ = ops.DotProductUnsafe(a, c)
	}
}

// BenchmarkIndirectF32Scale measures the NoX/OneX output path for a 64-wide frame.
func BenchmarkIndirectF32Scale(b *testing.B) {
	ops := For[float32]()
	a := make([]float32, 64)
	dst := make([]float32, 64)
	for i := range a {
		a[i] = float32(i) * 0.01
	}

	b.ReportAllocs()
	for b.Loop() {
		ops.Scale(dst, a, 0.5)
	}
}

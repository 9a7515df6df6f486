package lti

import (
	"github.com/tphakala/go-synapse/internal/simdops"
)

// PolyMul returns the product of two polynomials.
//
// The product is the full convolution of the coefficient sequences. It is
// computed as a valid convolution of a zero-padded copy of a against the
// reversed b, so the SIMD kernel does the work.
func PolyMul(a, b []float64) []float64 {
	if len(a) == 0 || len(b) == 0 {
		return []float64{}
	}

	m := len(b)
	padded := make([]float64, len(a)+2*(m-1))
	copy(padded[m-1:], a)

	kernel := make([]float64, m)
	for i := range m {
		kernel[i] = b[m-1-i]
	}

	out := make([]float64, len(a)+m-1)
	simdops.Float64Ops().ConvolveValid(out, padded, kernel)
	return out
}

// PolyVal evaluates the polynomial p at the complex point z (Horner's rule).
// An empty polynomial evaluates to zero.
func PolyVal(p []float64, z complex128) complex128 {
	var acc complex128
	for _, c := range p {
		acc = acc*z + complex(c, 0)
	}
	return acc
}

// PolyFromRoots returns the monic polynomial whose roots are roots.
// Imaginary parts of the coefficients are discarded; for the characteristic
// polynomial of a real matrix they cancel in conjugate pairs.
// The leading coefficient is exactly 1.
func PolyFromRoots(roots []complex128) []float64 {
	c := make([]complex128, 1, len(roots)+1)
	c[0] = 1
	for _, r := range roots {
		c = append(c, 0)
		for i := len(c) - 1; i > 0; i-- {
			c[i] -= r * c[i-1]
		}
	}

	p := make([]float64, len(c))
	for i, v := range c {
		p[i] = real(v)
	}
	return p
}

// TrimLeading returns p without its leading zero coefficients.
func TrimLeading(p []float64) []float64 {
	i := 0
	for i < len(p) && p[i] == 0 {
		i++
	}
	return p[i:]
}

// TrimTrailing returns p without its trailing zero coefficients.
func TrimTrailing(p []float64) []float64 {
	n := len(p)
	for n > 0 && p[n-1] == 0 {
		n--
	}
	return p[:n]
}

// polyAddScaled returns a + s*b for equal-length polynomials.
func polyAddScaled(a, b []float64, s float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] + s*b[i]
	}
	return out
}

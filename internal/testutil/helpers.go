// Package testutil provides reusable test helpers for synapse filter tests.
package testutil

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Default tolerances for various test scenarios.
const (
	Float32Tolerance  = 1e-5
	ResponseTolerance = 1e-9
)

// Impulse returns a unit impulse of length n.
func Impulse(n int) []float64 {
	s := make([]float64, n)
	if n > 0 {
		s[0] = 1
	}
	return s
}

// Ones returns a unit step of length n.
func Ones(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = 1
	}
	return s
}

// Widen converts a float32 or float64 slice to float64.
func Widen[F float32 | float64](s []F) []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = float64(v)
	}
	return out
}

// AssertSymmetric verifies that a slice is symmetric (s[i] == s[n-1-i]).
func AssertSymmetric(t *testing.T, s []float64, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	n := len(s)
	for i := 0; i < n/2; i++ {
		j := n - 1 - i
		if math.Abs(s[i]-s[j]) > tolerance {
			return assert.Fail(t, fmt.Sprintf("slice not symmetric: s[%d]=%f != s[%d]=%f", i, s[i], j, s[j]), msgAndArgs...)
		}
	}
	return true
}

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, fmt.Sprintf("found NaN: s[%d]", i), msgAndArgs...)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, fmt.Sprintf("found Inf: s[%d]", i), msgAndArgs...)
		}
	}
	return true
}

// AssertAllInRange verifies that all elements are within [min, max].
func AssertAllInRange(t *testing.T, s []float64, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if v < minVal || v > maxVal {
			return assert.Fail(t, fmt.Sprintf("s[%d]=%f is outside range [%f, %f]", i, v, minVal, maxVal), msgAndArgs...)
		}
	}
	return true
}

// AssertDCGain verifies that a discrete transfer function num / (1 + Σden)
// has the expected gain at z = 1.
func AssertDCGain(t *testing.T, num, den []float64, expectedGain, tolerance float64) bool {
	t.Helper()
	sn, sd := 0.0, 1.0
	for _, c := range num {
		sn += c
	}
	for _, c := range den {
		sd += c
	}
	return assert.InDelta(t, expectedGain, sn/sd, tolerance,
		"DC gain = %f, want %f", sn/sd, expectedGain)
}

// AssertMonotonic verifies that a slice is monotonically increasing.
func AssertMonotonic(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i := 1; i < len(s); i++ {
		if s[i] < s[i-1] {
			return assert.Fail(t, fmt.Sprintf("not monotonic: s[%d]=%f < s[%d]=%f", i, s[i], i-1, s[i-1]), msgAndArgs...)
		}
	}
	return true
}

// AssertPeakAt verifies that s reaches its maximum at index idx.
func AssertPeakAt(t *testing.T, s []float64, idx int, msgAndArgs ...any) bool {
	t.Helper()
	if idx < 0 || idx >= len(s) {
		return assert.Fail(t, fmt.Sprintf("peak index %d out of range for length %d", idx, len(s)), msgAndArgs...)
	}
	peak := s[idx]
	for i, v := range s {
		if v > peak {
			return assert.Fail(t, fmt.Sprintf("peak is elsewhere: s[%d]=%f > s[%d]=%f", i, v, idx, peak), msgAndArgs...)
		}
	}
	return true
}

// AssertRelativeError verifies that the relative error between actual and expected is within tolerance.
func AssertRelativeError(t *testing.T, expected, actual, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if expected == 0 {
		return assert.InDelta(t, expected, actual, tolerance, msgAndArgs...)
	}
	relError := math.Abs(actual-expected) / math.Abs(expected)
	if relError > tolerance {
		return assert.Fail(t, fmt.Sprintf("relative error %e exceeds tolerance %e (expected=%f, actual=%f)",
			relError, tolerance, expected, actual), msgAndArgs...)
	}
	return true
}

// AssertComplexInDelta compares real and imaginary parts separately.
func AssertComplexInDelta(t *testing.T, expected, actual complex128, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	okRe := assert.InDelta(t, real(expected), real(actual), tolerance, msgAndArgs...)
	okIm := assert.InDelta(t, imag(expected), imag(actual), tolerance, msgAndArgs...)
	return okRe && okIm
}

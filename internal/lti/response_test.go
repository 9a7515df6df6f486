package lti

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-synapse/internal/testutil"
)

func TestEvaluate_AnalogLowpass(t *testing.T) {
	tau := 0.01
	corner := 1 / (2 * math.Pi * tau)

	h := Evaluate([]float64{1}, []float64{tau, 1}, true, []float64{0, corner})
	require.Len(t, h, 2)

	assert.InDelta(t, 1.0, real(h[0]), 1e-15)
	assert.InDelta(t, 0.0, imag(h[0]), 1e-15)

	// 1 / (1 + j) at the corner frequency.
	assert.InDelta(t, 0.5, real(h[1]), 1e-12)
	assert.InDelta(t, -0.5, imag(h[1]), 1e-12)
	assert.InDelta(t, 1/math.Sqrt2, cmplx.Abs(h[1]), 1e-12)
}

func TestEvaluate_Discrete(t *testing.T) {
	// Two-tap average (z + 1) / (2z): unit gain at DC, zero at Nyquist.
	h := Evaluate([]float64{1, 1}, []float64{2, 0}, false, []float64{0, 0.5})

	assert.InDelta(t, 1.0, cmplx.Abs(h[0]), 1e-12)
	assert.InDelta(t, 0.0, cmplx.Abs(h[1]), 1e-12)
}

func TestEvaluate_SeriesLaw(t *testing.T) {
	an, ad := []float64{1}, []float64{0.005, 1}
	bn, bd := []float64{2, 1}, []float64{0.0001, 0.02, 1}
	freqs := []float64{0, 1, 10, 31.8, 100, 1000}

	ha := Evaluate(an, ad, true, freqs)
	hb := Evaluate(bn, bd, true, freqs)
	hab := Evaluate(PolyMul(an, bn), PolyMul(ad, bd), true, freqs)

	for i := range freqs {
		testutil.AssertComplexInDelta(t, ha[i]*hb[i], hab[i], testutil.ResponseTolerance, "f=%v", freqs[i])
	}
}

func TestFreqZ_MatchesDirect(t *testing.T) {
	num := []float64{0.2, 0.1, -0.05}
	den := []float64{1, -0.5, 0.25}

	w, h := FreqZ(num, den, 64)
	require.Len(t, w, 64)
	require.Len(t, h, 64)

	direct := freqzDirect(num, den, w)
	for k := range h {
		testutil.AssertComplexInDelta(t, direct[k], h[k], 1e-12, "k=%d", k)
	}
	assert.InDelta(t, 0.0, w[0], 0)
	assert.InDelta(t, math.Pi*63/64, w[63], 1e-15)
}

func TestFreqZ_DiscretizedLowpassDCGain(t *testing.T) {
	c, err := Discretize([]float64{1}, []float64{0.005, 1}, true, 0.001, MethodZOH)
	require.NoError(t, err)

	_, h := FreqZ(c.Num, append([]float64{1}, c.Den...), 16)
	testutil.AssertRelativeError(t, 1.0, cmplx.Abs(h[0]), 1e-12)

	// Lowpass magnitude decreases with frequency.
	for k := 1; k < len(h); k++ {
		assert.Less(t, cmplx.Abs(h[k]), cmplx.Abs(h[k-1]))
	}
}

func TestFreqZ_LongFilterFallsBackToDirect(t *testing.T) {
	num := make([]float64, 40)
	num[0] = 1
	w, h := FreqZ(num, []float64{1}, 8)
	require.Len(t, h, 8)
	for k := range h {
		assert.InDelta(t, 1.0, cmplx.Abs(h[k]), 1e-12, "w=%v", w[k])
	}
}

func TestFreqZ_Empty(t *testing.T) {
	w, h := FreqZ([]float64{1}, []float64{1}, 0)
	assert.Empty(t, w)
	assert.Empty(t, h)
}

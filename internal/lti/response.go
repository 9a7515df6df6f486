package lti

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Evaluate returns the frequency response num/den at each frequency in Hz.
// Analog systems are evaluated at s = 2πjf, discrete ones at z = exp(2πjf)
// with f in cycles per sample.
func Evaluate(num, den []float64, analog bool, frequencies []float64) []complex128 {
	h := make([]complex128, len(frequencies))
	for i, f := range frequencies {
		w := complex(0, 2*math.Pi*f)
		if !analog {
			w = cmplx.Exp(w)
		}
		h[i] = PolyVal(num, w) / PolyVal(den, w)
	}
	return h
}

// FreqZ evaluates a discrete filter on n evenly spaced frequencies of the
// upper half of the unit circle, w[k] = πk/n radians per sample.
//
// Here num and den are read in ascending powers of z^-1 (den includes its
// leading 1), so H = Σ num[k] e^{-jwk} / Σ den[k] e^{-jwk}. Both polynomials
// are transformed with one real FFT of length 2n.
func FreqZ(num, den []float64, n int) (w []float64, h []complex128) {
	if n <= 0 {
		return []float64{}, []complex128{}
	}

	w = make([]float64, n)
	for k := range n {
		w[k] = math.Pi * float64(k) / float64(n)
	}

	size := 2 * n
	if len(num) > size || len(den) > size {
		return w, freqzDirect(num, den, w)
	}

	fft := fourier.NewFFT(size)
	numFFT := fft.Coefficients(nil, zeroPad(num, size))
	denFFT := fft.Coefficients(nil, zeroPad(den, size))

	h = make([]complex128, n)
	for k := range n {
		h[k] = numFFT[k] / denFFT[k]
	}
	return w, h
}

// freqzDirect evaluates the z^-1 polynomials directly, for filters longer
// than the FFT grid.
func freqzDirect(num, den []float64, w []float64) []complex128 {
	h := make([]complex128, len(w))
	for i, wi := range w {
		zinv := cmplx.Exp(complex(0, -wi))
		h[i] = polyValAscending(num, zinv) / polyValAscending(den, zinv)
	}
	return h
}

func polyValAscending(p []float64, x complex128) complex128 {
	var acc complex128
	for i := len(p) - 1; i >= 0; i-- {
		acc = acc*x + complex(p[i], 0)
	}
	return acc
}

func zeroPad(p []float64, size int) []float64 {
	out := make([]float64, size)
	copy(out, p)
	return out
}

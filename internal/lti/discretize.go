package lti

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// pureGainThreshold bounds the non-leading analog denominator coefficients
// below which a transfer function is rescaled instead of discretized.
const pureGainThreshold = 1e-16

// Coefficients are the discrete recurrence coefficients of a filter.
//
// Num holds the feedforward taps with trailing zeros trimmed. Den holds the
// feedback taps with the leading 1 removed and trailing zeros trimmed, then
// zero-padded so len(Den) >= len(Num)-1.
type Coefficients struct {
	Num []float64
	Den []float64
}

// Order returns the number of state slots the recurrence needs.
func (c Coefficients) Order() int {
	return len(c.Den)
}

// Discretize converts num/den to recurrence coefficients at timestep dt.
//
// Discrete transfer functions are taken as given and must already have a
// leading denominator coefficient of exactly 1. Analog transfer functions
// whose denominator is zero except for the constant term are pure gains and
// are rescaled directly; all others go through ContToDiscrete.
//
// When the discrete numerator starts with an exact zero that tap is dropped,
// removing one sample of pure delay from the output.
func Discretize(num, den []float64, analog bool, dt float64, method Method) (Coefficients, error) {
	if err := checkTimestep(dt); err != nil {
		return Coefficients{}, err
	}
	if len(den) == 0 {
		return Coefficients{}, fmt.Errorf("%w: empty denominator", ErrInvalidDenominator)
	}
	if len(num) == 0 {
		return Coefficients{}, fmt.Errorf("%w: empty numerator", ErrImproperTransferFunction)
	}

	n := append([]float64(nil), num...)
	d := append([]float64(nil), den...)

	if analog {
		if isPureGain(d) {
			last := d[len(d)-1]
			if last == 0 {
				return Coefficients{}, fmt.Errorf("%w: denominator is all zero", ErrInvalidDenominator)
			}
			floats.Scale(1/last, n)
			d = []float64{1}
		} else {
			var err error
			n, d, err = ContToDiscrete(n, d, dt, method)
			if err != nil {
				return Coefficients{}, err
			}
		}
	}

	if d[0] != 1 {
		return Coefficients{}, fmt.Errorf("%w: first element of the denominator must be 1, got %v",
			ErrInvalidDenominator, d[0])
	}

	d = d[1:]
	if n[0] == 0 {
		n = n[1:]
	}
	n = TrimTrailing(n)
	d = TrimTrailing(d)

	if len(d) < len(n)-1 {
		padded := make([]float64, len(n)-1)
		copy(padded, d)
		d = padded
	}

	return Coefficients{Num: n, Den: d}, nil
}

func isPureGain(den []float64) bool {
	for _, v := range den[:len(den)-1] {
		if math.Abs(v) >= pureGainThreshold {
			return false
		}
	}
	return true
}

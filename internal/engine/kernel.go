package engine

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/tphakala/go-synapse/internal/lti"
	"github.com/tphakala/go-synapse/internal/simdops"
)

// Kernel is what a synapse model hands to the engine for a given timestep:
// either discrete LTI coefficients or a triangular ramp.
type Kernel struct {
	// Coefficients are the recurrence coefficients. For a triangle kernel Num
	// holds the normalized ramp and Den is empty.
	Coefficients lti.Coefficients

	// Triangle selects the triangular FIR algorithm.
	Triangle bool
}

// LTIKernel wraps discrete coefficients.
func LTIKernel(c lti.Coefficients) Kernel {
	return Kernel{Coefficients: c}
}

// TriangleKernel builds the ramp for a triangle of the given length in
// seconds: n = round(length/dt) + 1 taps of [n, n-1, ..., 1] / Σ.
func TriangleKernel(length, dt float64) (Kernel, error) {
	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return Kernel{}, fmt.Errorf("%w: dt must be positive and finite, got %v", lti.ErrInvalidTimestep, dt)
	}
	if length < 0 || math.IsNaN(length) || math.IsInf(length, 0) {
		return Kernel{}, fmt.Errorf("%w: triangle length must be non-negative, got %v", ErrInvalidStepState, length)
	}

	taps := int(math.RoundToEven(length/dt)) + 1
	ramp := make([]float64, taps)
	for i := range ramp {
		ramp[i] = float64(taps - i)
	}
	floats.Scale(1/simdops.Float64Ops().Sum(ramp), ramp)

	return Kernel{
		Coefficients: lti.Coefficients{Num: ramp, Den: []float64{}},
		Triangle:     true,
	}, nil
}

// Taps returns the number of feedforward taps.
func (k Kernel) Taps() int {
	return len(k.Coefficients.Num)
}

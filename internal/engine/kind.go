// Package engine implements the per-sample filtering step for synapse models.
//
// A Step is a tagged union over four algorithms. The LTI algorithms are chosen
// purely from the shape of the discrete coefficients:
//
//	len(den) == 0 && len(num) == 1  ->  NoX      (stateless gain)
//	len(den) == 1 && len(num) == 1  ->  OneX     (one-tap IIR)
//	len(num) <= len(den) + 1        ->  General  (Direct-Form-II ring)
//
// The Triangle algorithm is a finite ramp FIR and is selected by kernel type.
//
// Type parameter F must be float32 or float64 and controls the precision of
// coefficients, state and samples.
package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSuitableStep indicates coefficient shapes that match no algorithm.
	// Discretized coefficients always match one, so this is an internal
	// invariant failure.
	ErrNoSuitableStep = errors.New("no suitable step function found")

	// ErrInvalidStepState indicates coefficients or state that do not meet
	// the requirements of the algorithm being constructed.
	ErrInvalidStepState = errors.New("matrices do not meet the requirements for this step")

	// ErrShapeMismatch indicates a signal size or initial value whose shape
	// does not fit the step.
	ErrShapeMismatch = errors.New("shape mismatch")
)

// Kind tags the algorithm a Step runs.
type Kind int

const (
	// KindNoX scales the input: y = b*u.
	KindNoX Kind = iota

	// KindOneX is a one-tap recursion: x = -a*x + u, y = b*x.
	KindOneX

	// KindGeneral is the Direct-Form-II recurrence over a ring of len(den) states.
	KindGeneral

	// KindTriangle is the triangular FIR.
	KindTriangle
)

// String returns the algorithm name.
func (k Kind) String() string {
	switch k {
	case KindNoX:
		return "NoX"
	case KindOneX:
		return "OneX"
	case KindGeneral:
		return "General"
	case KindTriangle:
		return "Triangle"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Select picks the cheapest LTI algorithm for the given coefficient lengths.
func Select(numLen, denLen int) (Kind, error) {
	switch {
	case checkNoX(numLen, denLen, denLen):
		return KindNoX, nil
	case checkOneX(numLen, denLen, denLen):
		return KindOneX, nil
	case checkGeneral(numLen, denLen, denLen):
		return KindGeneral, nil
	default:
		return 0, fmt.Errorf("%w: len(num)=%d, len(den)=%d", ErrNoSuitableStep, numLen, denLen)
	}
}

// checkGeneral holds for every LTI algorithm: each numerator tap past the
// first needs a state slot, and there is one slot per denominator tap.
func checkGeneral(numLen, denLen, order int) bool {
	return numLen <= denLen+1 && order == denLen
}

func checkNoX(numLen, denLen, order int) bool {
	return checkGeneral(numLen, denLen, order) && order == 0 && numLen == 1
}

func checkOneX(numLen, denLen, order int) bool {
	return checkGeneral(numLen, denLen, order) && order == 1 && numLen == 1
}

// check re-validates the shape requirements of kind.
func check(kind Kind, numLen, denLen, order int) bool {
	switch kind {
	case KindNoX:
		return checkNoX(numLen, denLen, order)
	case KindOneX:
		return checkOneX(numLen, denLen, order)
	case KindGeneral:
		return checkGeneral(numLen, denLen, order)
	default:
		return false
	}
}

package lti

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Method selects the continuous-to-discrete transform.
type Method int

const (
	// MethodZOH is the zero-order hold equivalent: the input is held
	// constant between samples. This is the default.
	MethodZOH Method = iota

	// MethodBilinear is the Tustin transform (generalized bilinear, alpha 0.5).
	MethodBilinear

	// MethodEuler is the forward-difference transform (alpha 0).
	MethodEuler

	// MethodBackwardDiff is the backward-difference transform (alpha 1).
	MethodBackwardDiff
)

// Generalized bilinear weights for each method.
const (
	gbtAlphaEuler    = 0.0
	gbtAlphaBilinear = 0.5
	gbtAlphaBackward = 1.0
)

// String returns the method name.
func (m Method) String() string {
	switch m {
	case MethodZOH:
		return "zoh"
	case MethodBilinear:
		return "bilinear"
	case MethodEuler:
		return "euler"
	case MethodBackwardDiff:
		return "backward_diff"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod maps a method name to a Method.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(s) {
	case "", "zoh":
		return MethodZOH, nil
	case "bilinear", "tustin":
		return MethodBilinear, nil
	case "euler", "forward_diff":
		return MethodEuler, nil
	case "backward_diff":
		return MethodBackwardDiff, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
}

// ContToDiscrete converts the analog transfer function num/den to a
// discrete transfer function with sample period dt. The returned
// denominator is monic.
func ContToDiscrete(num, den []float64, dt float64, method Method) (dnum, dden []float64, err error) {
	if err := checkTimestep(dt); err != nil {
		return nil, nil, err
	}

	sys, err := TFToSS(num, den)
	if err != nil {
		return nil, nil, err
	}

	var dsys *StateSpace
	switch method {
	case MethodZOH:
		dsys = zeroOrderHold(sys, dt)
	case MethodBilinear:
		dsys, err = generalizedBilinear(sys, dt, gbtAlphaBilinear)
	case MethodEuler:
		dsys, err = generalizedBilinear(sys, dt, gbtAlphaEuler)
	case MethodBackwardDiff:
		dsys, err = generalizedBilinear(sys, dt, gbtAlphaBackward)
	default:
		return nil, nil, fmt.Errorf("%w: %v", ErrUnknownMethod, method)
	}
	if err != nil {
		return nil, nil, err
	}

	return SSToTF(dsys)
}

// zeroOrderHold discretizes sys by exponentiating the augmented matrix
//
//	[ A  B ]
//	[ 0  0 ] * dt
//
// whose top block row holds Ad and Bd. C and D carry over unchanged.
func zeroOrderHold(sys *StateSpace, dt float64) *StateSpace {
	n := sys.Order()
	if n == 0 {
		return &StateSpace{D: sys.D}
	}

	em := mat.NewDense(n+1, n+1, nil)
	for i := range n {
		for j := range n {
			em.Set(i, j, sys.A.At(i, j)*dt)
		}
		em.Set(i, n, sys.B.At(i, 0)*dt)
	}

	var ms mat.Dense
	ms.Exp(em)

	ad := mat.NewDense(n, n, nil)
	bd := mat.NewDense(n, 1, nil)
	for i := range n {
		for j := range n {
			ad.Set(i, j, ms.At(i, j))
		}
		bd.Set(i, 0, ms.At(i, n))
	}

	return &StateSpace{A: ad, B: bd, C: mat.DenseCopyOf(sys.C), D: sys.D}
}

// generalizedBilinear applies the generalized bilinear transform with weight
// alpha.
func generalizedBilinear(sys *StateSpace, dt, alpha float64) (*StateSpace, error) {
	n := sys.Order()
	if n == 0 {
		return &StateSpace{D: sys.D}, nil
	}

	eye := identity(n)

	// ima = I - alpha*dt*A
	var ima mat.Dense
	ima.Scale(-alpha*dt, sys.A)
	ima.Add(&ima, eye)

	// rhs = I + (1-alpha)*dt*A
	var rhs mat.Dense
	rhs.Scale((1-alpha)*dt, sys.A)
	rhs.Add(&rhs, eye)

	var ad mat.Dense
	if err := solve(&ad, &ima, &rhs); err != nil {
		return nil, err
	}

	var bScaled mat.Dense
	bScaled.Scale(dt, sys.B)
	var bd mat.Dense
	if err := solve(&bd, &ima, &bScaled); err != nil {
		return nil, err
	}

	var cdT mat.Dense
	if err := solve(&cdT, ima.T(), sys.C.T()); err != nil {
		return nil, err
	}

	var cb mat.Dense
	cb.Mul(sys.C, &bd)

	return &StateSpace{
		A: &ad,
		B: &bd,
		C: mat.DenseCopyOf(cdT.T()),
		D: sys.D + alpha*cb.At(0, 0),
	}, nil
}

// solve stores the solution of a*x = b in dst. Ill-conditioning is tolerated;
// only an exactly singular system is an error.
func solve(dst *mat.Dense, a, b mat.Matrix) error {
	err := dst.Solve(a, b)
	if err == nil {
		return nil
	}
	var cond mat.Condition
	if errors.As(err, &cond) && !math.IsInf(float64(cond), 1) {
		return nil
	}
	return fmt.Errorf("%w: singular transform matrix: %v", ErrInvalidDenominator, err)
}

func identity(n int) *mat.Dense {
	eye := mat.NewDense(n, n, nil)
	for i := range n {
		eye.Set(i, i, 1)
	}
	return eye
}

func checkTimestep(dt float64) error {
	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return fmt.Errorf("%w: dt must be positive and finite, got %v", ErrInvalidTimestep, dt)
	}
	return nil
}

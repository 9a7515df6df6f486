package lti

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// StateSpace is a single-input single-output state-space realisation
//
//	x' = A x + B u
//	y  = C x + D u
//
// A is Order×Order, B is Order×1 and C is 1×Order. A zero-order system
// (a pure gain) has nil matrices and only D set.
type StateSpace struct {
	A *mat.Dense
	B *mat.Dense
	C *mat.Dense
	D float64
}

// Order returns the number of states.
func (s *StateSpace) Order() int {
	if s.A == nil {
		return 0
	}
	r, _ := s.A.Dims()
	return r
}

// normalize strips leading zeros and scales num and den so den[0] == 1.
func normalize(num, den []float64) (n, d []float64, err error) {
	d = TrimLeading(den)
	if len(d) == 0 {
		return nil, nil, fmt.Errorf("%w: denominator is all zero", ErrInvalidDenominator)
	}

	n = TrimLeading(num)
	if len(n) == 0 {
		n = []float64{0}
	}

	lead := d[0]
	n = append([]float64(nil), n...)
	d = append([]float64(nil), d...)
	floats.Scale(1/lead, n)
	floats.Scale(1/lead, d)
	d[0] = 1
	return n, d, nil
}

// TFToSS converts a transfer function to the controllable canonical
// state-space form.
func TFToSS(num, den []float64) (*StateSpace, error) {
	if len(num) == 0 {
		return nil, fmt.Errorf("%w: empty numerator", ErrImproperTransferFunction)
	}

	n, d, err := normalize(num, den)
	if err != nil {
		return nil, err
	}

	k := len(d)
	if len(n) > k {
		return nil, fmt.Errorf("%w: numerator order %d exceeds denominator order %d",
			ErrImproperTransferFunction, len(n)-1, k-1)
	}

	// Right-align the numerator against the denominator.
	padded := make([]float64, k)
	copy(padded[k-len(n):], n)
	feedthrough := padded[0]

	if k == 1 {
		return &StateSpace{D: feedthrough}, nil
	}

	order := k - 1
	a := mat.NewDense(order, order, nil)
	for j := range order {
		a.Set(0, j, -d[j+1])
	}
	for i := 1; i < order; i++ {
		a.Set(i, i-1, 1)
	}

	b := mat.NewDense(order, 1, nil)
	b.Set(0, 0, 1)

	c := mat.NewDense(1, order, nil)
	for j := range order {
		c.Set(0, j, padded[j+1]-feedthrough*d[j+1])
	}

	return &StateSpace{A: a, B: b, C: c, D: feedthrough}, nil
}

// SSToTF converts a state-space realisation back to a transfer function.
// The denominator is the characteristic polynomial of A and is monic.
func SSToTF(s *StateSpace) (num, den []float64, err error) {
	if s.Order() == 0 {
		return []float64{s.D}, []float64{1}, nil
	}

	den, err = charPoly(s.A)
	if err != nil {
		return nil, nil, err
	}

	var bc mat.Dense
	bc.Mul(s.B, s.C)
	var closed mat.Dense
	closed.Sub(s.A, &bc)

	zeros, err := charPoly(&closed)
	if err != nil {
		return nil, nil, err
	}

	num = polyAddScaled(zeros, den, s.D-1)
	return num, den, nil
}

// charPoly returns the characteristic polynomial of the square matrix a,
// built from its eigenvalues.
func charPoly(a mat.Matrix) ([]float64, error) {
	var eig mat.Eigen
	if ok := eig.Factorize(a, mat.EigenNone); !ok {
		return nil, fmt.Errorf("%w: eigendecomposition did not converge", ErrInvalidDenominator)
	}
	return PolyFromRoots(eig.Values(nil)), nil
}

package engine

import (
	"fmt"

	"github.com/tphakala/go-synapse/internal/ring"
	"github.com/tphakala/go-synapse/internal/simdops"
)

// newTriangle builds the triangular FIR step from its normalized ramp.
//
// The output is an accumulator: each input adds n0·u and, for the next n
// steps, removes ndiff·u, where n0 = ramp[0] and ndiff = ramp[n-1] = 1/Σ.
func newTriangle[F simdops.Float](ramp []float64, size int, y0 []float64) (*Step[F], error) {
	if len(ramp) == 0 {
		return nil, fmt.Errorf("%w: triangle kernel has no taps", ErrInvalidStepState)
	}

	acc := make([]F, size)
	if y0 != nil {
		copy(acc, simdops.Cast[F](y0))
	}

	return &Step[F]{
		kind:  KindTriangle,
		size:  size,
		ops:   simdops.For[F](),
		num:   simdops.Cast[F](ramp),
		n0:    F(ramp[0]),
		ndiff: F(ramp[len(ramp)-1]),
		acc:   acc,
		acc0:  append([]F(nil), acc...),
		fifo:  ring.NewFrames[F](len(ramp), size),
	}, nil
}

// advanceTriangle updates the accumulator before touching out, so in and out
// may alias.
func (s *Step[F]) advanceTriangle(in, out []F) {
	for ch, u := range in[:s.size] {
		s.acc[ch] += s.n0 * u
	}
	for i := range s.fifo.Len() {
		frame := s.fifo.At(i)
		for ch, v := range frame {
			s.acc[ch] -= v
		}
	}
	s.ops.Scale(s.fifo.PushFront(), in[:s.size], s.ndiff)
	copy(out, s.acc)
}

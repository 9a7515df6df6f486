package engine

import (
	"fmt"

	"github.com/tphakala/go-synapse/internal/ring"
	"github.com/tphakala/go-synapse/internal/simdops"
)

// Step advances one synapse by one sample per call.
//
// A Step owns its state and assumes every call observes the state left by
// the previous one, so it must not be shared between goroutines or called
// out of timestep order.
type Step[F simdops.Float] struct {
	kind Kind
	size int
	ops  *simdops.Ops[F]

	num []F
	den []F
	b   F // num[0]
	a   F // -den[0], OneX only

	// LTI state: order slots per channel, stored channel-major. Logical slot k
	// of channel ch lives at x[ch*order + (cursor+k)%order]; slot 0 is the
	// most recent. OneX uses the same storage with order 1.
	order  int
	x      []F
	x0     []F
	cursor int

	// Triangle state.
	n0    F
	ndiff F
	acc   []F
	acc0  []F
	fifo  *ring.Frames[F]
}

// New builds the step for kernel k over signals of the given size.
//
// y0, when non-nil, is the desired output at time zero, either a single value
// broadcast to every channel or one value per channel. LTI state is seeded so
// the steady-state output equals y0.
func New[F simdops.Float](k Kernel, size int, y0 []float64) (*Step[F], error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: signal size must be at least 1, got %d", ErrShapeMismatch, size)
	}

	initial, err := broadcast(y0, size)
	if err != nil {
		return nil, err
	}

	if k.Triangle {
		return newTriangle[F](k.Coefficients.Num, size, initial)
	}

	num, den := k.Coefficients.Num, k.Coefficients.Den
	kind, err := Select(len(num), len(den))
	if err != nil {
		return nil, err
	}

	x, err := allocate[F](den, size, initial)
	if err != nil {
		return nil, err
	}

	return newLTI(kind, num, den, x, size)
}

// newLTI binds coefficients and state to the algorithm kind after checking
// that they meet its requirements.
func newLTI[F simdops.Float](kind Kind, num, den []float64, x []F, size int) (*Step[F], error) {
	if len(x)%size != 0 || !check(kind, len(num), len(den), len(x)/size) {
		return nil, fmt.Errorf("%w: %v with len(num)=%d, len(den)=%d, state=%d",
			ErrInvalidStepState, kind, len(num), len(den), len(x))
	}

	s := &Step[F]{
		kind:  kind,
		size:  size,
		ops:   simdops.For[F](),
		num:   simdops.Cast[F](num),
		den:   simdops.Cast[F](den),
		order: len(den),
		x:     x,
		x0:    append([]F(nil), x...),
	}
	if len(s.num) > 0 {
		s.b = s.num[0]
	}
	if kind == KindOneX {
		s.a = -s.den[0]
	}
	return s, nil
}

// allocate creates the LTI state, seeded from y0 when given.
func allocate[F simdops.Float](den []float64, size int, y0 []float64) ([]F, error) {
	order := len(den)
	x := make([]F, size*order)
	if y0 == nil || order == 0 {
		return x, nil
	}

	gain := 1.0
	for _, d := range den {
		gain += d
	}
	if gain == 0 {
		return nil, fmt.Errorf("%w: cannot seed an initial output for a filter with a pole at z=1",
			ErrInvalidStepState)
	}

	for ch := range size {
		v := F(y0[ch] / gain)
		slots := x[ch*order : (ch+1)*order]
		for k := range slots {
			slots[k] = v
		}
	}
	return x, nil
}

// broadcast expands y0 to one value per channel.
func broadcast(y0 []float64, size int) ([]float64, error) {
	switch len(y0) {
	case 0:
		if y0 == nil {
			return nil, nil
		}
	case 1:
		out := make([]float64, size)
		for i := range out {
			out[i] = y0[0]
		}
		return out, nil
	case size:
		return append([]float64(nil), y0...), nil
	}
	return nil, fmt.Errorf("%w: initial value has %d elements, signal has %d", ErrShapeMismatch, len(y0), size)
}

// Advance consumes one input frame and writes one output frame.
// t is the absolute time of the sample; the LTI and triangle algorithms are
// time-invariant and ignore it. in and out must have length Size() and may
// alias each other.
func (s *Step[F]) Advance(t float64, in, out []F) {
	switch s.kind {
	case KindNoX:
		s.ops.Scale(out, in, s.b)
	case KindOneX:
		s.advanceOneX(in, out)
	case KindGeneral:
		s.advanceGeneral(in, out)
	case KindTriangle:
		s.advanceTriangle(in, out)
	}
}

func (s *Step[F]) advanceOneX(in, out []F) {
	for ch, u := range in[:s.size] {
		s.x[ch] = s.x[ch]*s.a + u
	}
	s.ops.Scale(out, s.x, s.b)
}

// advanceGeneral runs the Direct-Form-II recurrence
//
//	xn = u - Σ den[k]·X[k]
//	y  = num[0]·xn + Σ num[1+k]·X[k]
//
// and then prepends xn to the ring by moving the cursor back one slot.
func (s *Step[F]) advanceGeneral(in, out []F) {
	next := s.cursor - 1
	if next < 0 {
		next = s.order - 1
	}

	for ch := range s.size {
		xs := s.x[ch*s.order : (ch+1)*s.order]
		xn := in[ch] - s.ringDot(xs, s.den)

		var y F
		if len(s.num) > 0 {
			y = s.b*xn + s.ringDot(xs, s.num[1:])
		}
		out[ch] = y

		if s.order > 0 {
			xs[next] = xn
		}
	}

	if s.order > 0 {
		s.cursor = next
	}
}

// ringDot returns Σ c[k]·xs[(cursor+k) % order] for k < len(c), computed as
// at most two contiguous dot products.
func (s *Step[F]) ringDot(xs, c []F) F {
	n := len(c)
	if n == 0 {
		return 0
	}

	head := s.order - s.cursor
	if n <= head {
		return s.ops.DotProductUnsafe(c, xs[s.cursor:s.cursor+n])
	}
	return s.ops.DotProductUnsafe(c[:head], xs[s.cursor:]) +
		s.ops.DotProductUnsafe(c[head:], xs[:n-head])
}

// Reset restores the state the step was constructed with.
func (s *Step[F]) Reset() {
	copy(s.x, s.x0)
	s.cursor = 0
	if s.kind == KindTriangle {
		copy(s.acc, s.acc0)
		s.fifo.Clear()
	}
}

// Kind returns the algorithm the step runs.
func (s *Step[F]) Kind() Kind {
	return s.kind
}

// Size returns the number of channels per frame.
func (s *Step[F]) Size() int {
	return s.size
}

// Order returns the number of state frames: len(den) for LTI steps and the
// FIFO capacity for the triangle.
func (s *Step[F]) Order() int {
	if s.kind == KindTriangle {
		return s.fifo.Capacity()
	}
	return s.order
}

// Num returns a copy of the feedforward coefficients.
func (s *Step[F]) Num() []F {
	return append([]F(nil), s.num...)
}

// Den returns a copy of the feedback coefficients, leading 1 removed.
func (s *Step[F]) Den() []F {
	return append([]F(nil), s.den...)
}

package synapse

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// signalView addresses a matrix as a sequence of frames along its time axis.
// With channel >= 0 it narrows to that one channel.
type signalView struct {
	m       *mat.Dense
	axis    int
	channel int
}

func newSignalView(m *mat.Dense, axis int) (signalView, error) {
	if axis != 0 && axis != 1 {
		return signalView{}, fmt.Errorf("%w: %d (must be 0 or 1)", ErrInvalidAxis, axis)
	}
	return signalView{m: m, axis: axis, channel: -1}, nil
}

// len returns the number of samples.
func (v signalView) len() int {
	r, c := v.m.Dims()
	if v.axis == 0 {
		return r
	}
	return c
}

// size returns the number of channels per frame.
func (v signalView) size() int {
	if v.channel >= 0 {
		return 1
	}
	r, c := v.m.Dims()
	if v.axis == 0 {
		return c
	}
	return r
}

// one returns the view of a single channel. Views of distinct channels
// touch disjoint elements and may be used concurrently.
func (v signalView) one(ch int) signalView {
	v.channel = ch
	return v
}

func (v signalView) load(i int, dst []float64) {
	switch {
	case v.channel >= 0 && v.axis == 0:
		dst[0] = v.m.At(i, v.channel)
	case v.channel >= 0:
		dst[0] = v.m.At(v.channel, i)
	case v.axis == 0:
		copy(dst, v.m.RawRowView(i))
	default:
		mat.Col(dst, i, v.m)
	}
}

func (v signalView) store(i int, src []float64) {
	switch {
	case v.channel >= 0 && v.axis == 0:
		v.m.Set(i, v.channel, src[0])
	case v.channel >= 0:
		v.m.Set(v.channel, i, src[0])
	case v.axis == 0:
		copy(v.m.RawRowView(i), src)
	default:
		v.m.SetCol(i, src)
	}
}

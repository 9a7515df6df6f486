// Package ring implements a fixed-capacity ring of signal frames.
//
// A frame is a vector holding one sample of every channel. Frames are pushed
// at the front; once the ring is full each push overwrites the oldest frame.
// Storage is allocated once, so steady-state operation never allocates.
package ring

import (
	"github.com/tphakala/go-synapse/internal/simdops"
)

// Frames is a bounded newest-first FIFO of equal-width frames.
// It is not safe for concurrent use.
type Frames[F simdops.Float] struct {
	data     []F
	width    int
	capacity int
	size     int
	head     int // slot index of the newest frame
}

// NewFrames creates a ring holding up to capacity frames of the given width.
func NewFrames[F simdops.Float](capacity, width int) *Frames[F] {
	if capacity < 1 {
		capacity = 1
	}
	if width < 1 {
		width = 1
	}

	return &Frames[F]{
		data:     make([]F, capacity*width),
		width:    width,
		capacity: capacity,
	}
}

// PushFront makes room for a new newest frame and returns it for the caller
// to fill. When the ring is full the oldest frame is recycled.
// The returned slice is only valid until the next PushFront.
func (r *Frames[F]) PushFront() []F {
	r.head--
	if r.head < 0 {
		r.head = r.capacity - 1
	}
	if r.size < r.capacity {
		r.size++
	}
	return r.slot(r.head)
}

// At returns the i-th newest frame; At(0) is the most recent.
// i must be in [0, Len()).
func (r *Frames[F]) At(i int) []F {
	idx := r.head + i
	if idx >= r.capacity {
		idx -= r.capacity
	}
	return r.slot(idx)
}

// Len returns the number of frames currently held.
func (r *Frames[F]) Len() int {
	return r.size
}

// Capacity returns the maximum number of frames.
func (r *Frames[F]) Capacity() int {
	return r.capacity
}

// Width returns the frame width.
func (r *Frames[F]) Width() int {
	return r.width
}

// Clear removes all frames.
func (r *Frames[F]) Clear() {
	clear(r.data)
	r.size = 0
	r.head = 0
}

func (r *Frames[F]) slot(idx int) []F {
	return r.data[idx*r.width : (idx+1)*r.width : (idx+1)*r.width]
}

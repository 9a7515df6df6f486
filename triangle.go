package synapse

import (
	"fmt"
	"math"

	"github.com/tphakala/go-synapse/internal/engine"
)

// Triangle is a finite impulse response synapse whose impulse response is a
// linear ramp falling from its peak to zero over t seconds, normalized to
// unit area.
//
// Triangle is not a transfer-function model and cannot be combined with
// other filters.
type Triangle struct {
	t   float64
	cfg Config
}

// NewTriangle creates a triangle synapse of length t seconds.
func NewTriangle(t float64, cfg *Config) (*Triangle, error) {
	if t < 0 || math.IsNaN(t) || math.IsInf(t, 0) {
		return nil, fmt.Errorf("%w: triangle length must be non-negative and finite, got %v", ErrInvalidConfig, t)
	}

	c, err := resolveConfig(cfg)
	if err != nil {
		return nil, err
	}
	return &Triangle{t: t, cfg: c}, nil
}

// T returns the ramp length in seconds.
func (tr *Triangle) T() float64 {
	return tr.t
}

// Taps returns the number of FIR taps at timestep dt.
func (tr *Triangle) Taps(dt float64) (int, error) {
	k, err := engine.TriangleKernel(tr.t, dt)
	if err != nil {
		return 0, err
	}
	return k.Taps(), nil
}

// Ramp returns the normalized FIR taps at timestep dt, newest sample first.
func (tr *Triangle) Ramp(dt float64) ([]float64, error) {
	k, err := engine.TriangleKernel(tr.t, dt)
	if err != nil {
		return nil, err
	}
	return k.Coefficients.Num, nil
}

// Config returns the synapse's default shapes and timestep.
func (tr *Triangle) Config() Config {
	return tr.cfg
}

// String returns a description such as "Triangle(0.01)".
func (tr *Triangle) String() string {
	return fmt.Sprintf("Triangle(%v)", tr.t)
}

func (tr *Triangle) kernel(dt float64) (engine.Kernel, error) {
	return engine.TriangleKernel(tr.t, dt)
}

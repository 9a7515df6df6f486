package synapse

import (
	"fmt"

	"github.com/tphakala/go-synapse/internal/engine"
	"github.com/tphakala/go-synapse/internal/simdops"
)

// Float is the type constraint for step precision.
type Float = simdops.Float

// Step advances a synapse by one sample per call. See [NewStep].
type Step[F Float] = engine.Step[F]

// NewStep discretizes s for timestep dt and binds it to a step over signals
// of the given size. Zero size or dt fall back to the synapse's Config.
//
// y0, when non-nil, is the initial output: one value broadcast to every
// channel, or one per channel.
//
// The returned step must be advanced once per timestep, in order, by a
// single goroutine.
func NewStep[F Float](s Synapse, size int, dt float64, y0 []float64) (*Step[F], error) {
	if s == nil {
		return nil, fmt.Errorf("%w: synapse is nil", ErrInvalidSynapse)
	}

	cfg := s.Config()
	if cfg.SizeOut != 0 && cfg.SizeOut != cfg.SizeIn {
		return nil, fmt.Errorf("%w: synapses preserve shape, got size in %d and size out %d",
			ErrShapeMismatch, cfg.SizeIn, cfg.SizeOut)
	}
	if size == 0 {
		size = cfg.SizeIn
	}
	if dt == 0 {
		dt = cfg.DT
	}

	k, err := s.kernel(dt)
	if err != nil {
		return nil, err
	}
	return engine.New[F](k, size, y0)
}

package synapse

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/simd/cpu"

	"github.com/tphakala/go-synapse/internal/engine"
	"github.com/tphakala/go-synapse/internal/lti"
)

// Synapse is a filter model that can be bound to a step for a given timestep.
// The set of implementations is closed: [LinearFilter], [Lowpass], [Alpha]
// and [Triangle].
type Synapse interface {
	// Config returns the model's default shapes and timestep.
	Config() Config

	// String returns a human-readable description of the model.
	String() string

	// kernel discretizes the model for dt.
	kernel(dt float64) (engine.Kernel, error)
}

// Config holds the defaults a synapse applies when a caller does not give
// explicit shapes or a timestep.
type Config struct {
	// SizeIn is the default number of input channels.
	SizeIn int

	// SizeOut is the default number of output channels.
	// Zero means the same as SizeIn.
	SizeOut int

	// DT is the default timestep in seconds.
	DT float64

	// Seed seeds stochastic processes sharing this configuration.
	// Synapses are deterministic and do not use it.
	Seed *int64
}

// Common errors returned by synapse constructors and steps.
var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid synapse configuration")

	// ErrIncompatibleFilter indicates a combination of filters that cannot
	// be composed.
	ErrIncompatibleFilter = errors.New("incompatible filters")

	// ErrInvalidAxis indicates a time axis other than 0 or 1.
	ErrInvalidAxis = errors.New("invalid time axis")

	// ErrInvalidSynapse indicates a value that cannot be used as a synapse.
	ErrInvalidSynapse = errors.New("invalid synapse")

	// ErrInvalidDenominator indicates a discrete denominator whose leading
	// coefficient is not 1.
	ErrInvalidDenominator = lti.ErrInvalidDenominator

	// ErrInvalidTimestep indicates a non-positive or non-finite timestep.
	ErrInvalidTimestep = lti.ErrInvalidTimestep

	// ErrImproperTransferFunction indicates an analog numerator of higher
	// order than the denominator.
	ErrImproperTransferFunction = lti.ErrImproperTransferFunction

	// ErrUnknownMethod indicates an unsupported discretization method name.
	ErrUnknownMethod = lti.ErrUnknownMethod

	// ErrNoSuitableStep indicates coefficients that match no step algorithm.
	ErrNoSuitableStep = engine.ErrNoSuitableStep

	// ErrInvalidStepState indicates coefficients or state that do not meet
	// the requirements of a step algorithm.
	ErrInvalidStepState = engine.ErrInvalidStepState

	// ErrShapeMismatch indicates signal or initial value shapes that do not
	// fit together.
	ErrShapeMismatch = engine.ErrShapeMismatch
)

// DefaultConfig returns the configuration used when a constructor is given nil.
func DefaultConfig() Config {
	return Config{
		SizeIn: defaultSize,
		DT:     defaultDT,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.SizeIn < 1 {
		return fmt.Errorf("%w: size in must be at least 1", ErrInvalidConfig)
	}

	if c.SizeOut < 0 {
		return fmt.Errorf("%w: size out must not be negative", ErrInvalidConfig)
	}

	if c.DT <= 0 || math.IsNaN(c.DT) || math.IsInf(c.DT, 0) {
		return fmt.Errorf("%w: dt must be positive and finite, got %v", ErrInvalidConfig, c.DT)
	}

	return nil
}

// resolveConfig validates cfg, substituting defaults for nil, and fills in
// SizeOut.
func resolveConfig(cfg *Config) (Config, error) {
	if cfg == nil {
		c := DefaultConfig()
		c.SizeOut = c.SizeIn
		return c, nil
	}

	c := *cfg
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	if c.SizeOut == 0 {
		c.SizeOut = c.SizeIn
	}
	return c, nil
}

// Method selects how analog models are discretized.
type Method = lti.Method

// Discretization methods.
const (
	MethodZOH          = lti.MethodZOH
	MethodBilinear     = lti.MethodBilinear
	MethodEuler        = lti.MethodEuler
	MethodBackwardDiff = lti.MethodBackwardDiff
)

// ParseMethod parses a discretization method name such as "zoh" or "bilinear".
func ParseMethod(s string) (Method, error) {
	return lti.ParseMethod(s)
}

// SIMDInfo describes the SIMD instruction set the filter kernels use.
func SIMDInfo() string {
	return cpu.Info()
}

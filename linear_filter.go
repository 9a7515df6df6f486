package synapse

import (
	"fmt"

	"github.com/tphakala/go-synapse/internal/engine"
	"github.com/tphakala/go-synapse/internal/lti"
)

// LinearFilter is a general linear time-invariant synapse given by its
// transfer function num/den. Coefficients are ordered from the highest power
// to the lowest.
//
// A LinearFilter is immutable; constructors copy their inputs and accessors
// return copies.
type LinearFilter struct {
	num    []float64
	den    []float64
	analog bool
	method Method
	cfg    Config
}

// linear is implemented by every synapse backed by a transfer function.
type linear interface {
	transfer() *LinearFilter
}

// NewLinearFilter creates a filter from transfer-function coefficients.
// analog selects between a continuous (s-domain) and a discrete (z-domain)
// transfer function. A nil cfg uses DefaultConfig.
func NewLinearFilter(num, den []float64, analog bool, cfg *Config) (*LinearFilter, error) {
	if len(den) == 0 {
		return nil, fmt.Errorf("%w: denominator must not be empty", ErrInvalidConfig)
	}

	c, err := resolveConfig(cfg)
	if err != nil {
		return nil, err
	}

	return &LinearFilter{
		num:    append([]float64{}, num...),
		den:    append([]float64{}, den...),
		analog: analog,
		method: MethodZOH,
		cfg:    c,
	}, nil
}

// WithMethod returns a copy of the filter that discretizes with method m.
func (f *LinearFilter) WithMethod(m Method) *LinearFilter {
	g := *f
	g.method = m
	return &g
}

// Combine returns the series composition of f followed by other, whose
// transfer function is the product of both. Both filters must be linear
// filters of the same kind (analog or discrete). The result keeps f's
// configuration and discretization method.
func (f *LinearFilter) Combine(other Synapse) (*LinearFilter, error) {
	var g *LinearFilter
	if o, ok := other.(linear); ok {
		g = o.transfer()
	}
	if g == nil {
		return nil, fmt.Errorf("%w: can only combine with other linear filters, got %T", ErrIncompatibleFilter, other)
	}

	if g.analog != f.analog {
		return nil, fmt.Errorf("%w: cannot combine analog and digital filters", ErrIncompatibleFilter)
	}

	return &LinearFilter{
		num:    lti.PolyMul(f.num, g.num),
		den:    lti.PolyMul(f.den, g.den),
		analog: f.analog,
		method: f.method,
		cfg:    f.cfg,
	}, nil
}

// Evaluate returns the complex frequency response at the given frequencies,
// in Hz for analog filters and in cycles per sample for discrete ones.
func (f *LinearFilter) Evaluate(frequencies []float64) []complex128 {
	return lti.Evaluate(f.num, f.den, f.analog, frequencies)
}

// Discretize returns the recurrence coefficients for timestep dt: the
// numerator and the denominator with its leading 1 removed.
func (f *LinearFilter) Discretize(dt float64) (num, den []float64, err error) {
	c, err := lti.Discretize(f.num, f.den, f.analog, dt, f.method)
	if err != nil {
		return nil, nil, err
	}
	return c.Num, c.Den, nil
}

// Num returns a copy of the numerator coefficients.
func (f *LinearFilter) Num() []float64 {
	return append([]float64{}, f.num...)
}

// Den returns a copy of the denominator coefficients.
func (f *LinearFilter) Den() []float64 {
	return append([]float64{}, f.den...)
}

// Analog reports whether the transfer function is in the s-domain.
func (f *LinearFilter) Analog() bool {
	return f.analog
}

// Method returns the discretization method.
func (f *LinearFilter) Method() Method {
	return f.method
}

// Config returns the filter's default shapes and timestep.
func (f *LinearFilter) Config() Config {
	return f.cfg
}

// String returns a description such as "LinearFilter([1], [0.005 1], analog=true)".
func (f *LinearFilter) String() string {
	return fmt.Sprintf("LinearFilter(%v, %v, analog=%t)", f.num, f.den, f.analog)
}

func (f *LinearFilter) transfer() *LinearFilter {
	return f
}

func (f *LinearFilter) kernel(dt float64) (engine.Kernel, error) {
	c, err := lti.Discretize(f.num, f.den, f.analog, dt, f.method)
	if err != nil {
		return engine.Kernel{}, err
	}
	return engine.LTIKernel(c), nil
}

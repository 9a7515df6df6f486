package synapse

import (
	"fmt"
	"math"
)

// Lowpass is a first-order lowpass synapse, 1 / (tau*s + 1).
type Lowpass struct {
	*LinearFilter
	tau float64
}

// NewLowpass creates a lowpass synapse with time constant tau in seconds.
// A tau of zero passes the input through unchanged.
func NewLowpass(tau float64, cfg *Config) (*Lowpass, error) {
	if err := checkTau(tau); err != nil {
		return nil, err
	}

	f, err := NewLinearFilter([]float64{1}, []float64{tau, 1}, true, cfg)
	if err != nil {
		return nil, err
	}
	return &Lowpass{LinearFilter: f, tau: tau}, nil
}

// Tau returns the time constant in seconds.
func (l *Lowpass) Tau() float64 {
	return l.tau
}

// WithMethod returns a copy of the lowpass that discretizes with method m.
func (l *Lowpass) WithMethod(m Method) *Lowpass {
	return &Lowpass{LinearFilter: l.LinearFilter.WithMethod(m), tau: l.tau}
}

// String returns a description such as "Lowpass(0.005)".
func (l *Lowpass) String() string {
	return fmt.Sprintf("Lowpass(%v)", l.tau)
}

func (l *Lowpass) transfer() *LinearFilter {
	if l == nil {
		return nil
	}
	return l.LinearFilter
}

// Alpha is a second-order synapse with a repeated pole,
// 1 / (tau*s + 1)^2. Its impulse response is (t / tau^2) * exp(-t / tau).
type Alpha struct {
	*LinearFilter
	tau float64
}

// NewAlpha creates an alpha synapse with time constant tau in seconds.
func NewAlpha(tau float64, cfg *Config) (*Alpha, error) {
	if err := checkTau(tau); err != nil {
		return nil, err
	}

	f, err := NewLinearFilter([]float64{1}, []float64{tau * tau, 2 * tau, 1}, true, cfg)
	if err != nil {
		return nil, err
	}
	return &Alpha{LinearFilter: f, tau: tau}, nil
}

// Tau returns the time constant in seconds.
func (a *Alpha) Tau() float64 {
	return a.tau
}

// WithMethod returns a copy of the alpha synapse that discretizes with
// method m.
func (a *Alpha) WithMethod(m Method) *Alpha {
	return &Alpha{LinearFilter: a.LinearFilter.WithMethod(m), tau: a.tau}
}

// String returns a description such as "Alpha(0.005)".
func (a *Alpha) String() string {
	return fmt.Sprintf("Alpha(%v)", a.tau)
}

func (a *Alpha) transfer() *LinearFilter {
	if a == nil {
		return nil
	}
	return a.LinearFilter
}

func checkTau(tau float64) error {
	if tau < 0 || math.IsNaN(tau) || math.IsInf(tau, 0) {
		return fmt.Errorf("%w: tau must be non-negative and finite, got %v", ErrInvalidConfig, tau)
	}
	return nil
}

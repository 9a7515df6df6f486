package synapse

import (
	"fmt"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/tphakala/go-synapse/internal/engine"
)

// Precision selects the sample type used while filtering.
type Precision int

const (
	// Float64 filters in double precision. This is the default.
	Float64 Precision = iota

	// Float32 filters in single precision, converting at the boundary.
	Float32
)

// FiltOptions controls batch filtering.
type FiltOptions struct {
	// DT is the timestep in seconds. Zero uses the synapse's Config.
	DT float64

	// Axis is the time axis: 0 when each row is one sample, 1 when each
	// column is one sample.
	Axis int

	// Y0 is the initial output, one value or one per channel. Nil uses the
	// first sample of the signal.
	Y0 []float64

	// ZeroPhase runs the filter forward and then backward over the signal,
	// cancelling the phase delay and squaring the magnitude response.
	ZeroPhase bool

	// Precision selects float64 or float32 arithmetic.
	Precision Precision

	// Parallel filters each channel on its own goroutine.
	// Has no effect on single-channel signals.
	Parallel bool
}

// Filt filters x with s and returns the result in a new matrix.
// x is not modified.
func Filt(s Synapse, x mat.Matrix, opts *FiltOptions) (*mat.Dense, error) {
	if x == nil {
		return nil, fmt.Errorf("%w: signal is nil", ErrShapeMismatch)
	}
	if r, c := x.Dims(); r == 0 || c == 0 {
		return nil, fmt.Errorf("%w: signal is empty", ErrShapeMismatch)
	}

	y := mat.DenseCopyOf(x)
	if err := FiltInPlace(s, y, opts); err != nil {
		return nil, err
	}
	return y, nil
}

// FiltFilt is Filt with ZeroPhase set.
func FiltFilt(s Synapse, x mat.Matrix, opts *FiltOptions) (*mat.Dense, error) {
	o := FiltOptions{}
	if opts != nil {
		o = *opts
	}
	o.ZeroPhase = true
	return Filt(s, x, &o)
}

// FiltSignal filters a single-channel signal and returns a new slice.
func FiltSignal(s Synapse, x []float64, opts *FiltOptions) ([]float64, error) {
	if len(x) == 0 {
		return []float64{}, nil
	}

	o := FiltOptions{}
	if opts != nil {
		o = *opts
	}
	o.Axis = 0

	y, err := Filt(s, mat.NewDense(len(x), 1, append([]float64{}, x...)), &o)
	if err != nil {
		return nil, err
	}
	return mat.Col(nil, 0, y), nil
}

// FiltInPlace filters x with s, overwriting x with the result.
func FiltInPlace(s Synapse, x *mat.Dense, opts *FiltOptions) error {
	if s == nil {
		return fmt.Errorf("%w: synapse is nil", ErrInvalidSynapse)
	}
	if x == nil || x.IsEmpty() {
		return fmt.Errorf("%w: signal is empty", ErrShapeMismatch)
	}

	o := FiltOptions{}
	if opts != nil {
		o = *opts
	}
	if o.DT == 0 {
		o.DT = s.Config().DT
	}

	sig, err := newSignalView(x, o.Axis)
	if err != nil {
		return err
	}

	k, err := s.kernel(o.DT)
	if err != nil {
		return err
	}

	y0 := o.Y0
	if y0 == nil {
		y0 = make([]float64, sig.size())
		sig.load(0, y0)
	}

	if o.Parallel && sig.size() > 1 {
		return filtParallel(k, sig, y0, &o)
	}
	return filtFrames(k, sig, y0, &o)
}

// filtFrames runs one step over every frame of sig at the requested precision.
func filtFrames(k engine.Kernel, sig signalView, y0 []float64, o *FiltOptions) error {
	switch o.Precision {
	case Float64:
		return runFrames[float64](k, sig, y0, o.DT, o.ZeroPhase)
	case Float32:
		return runFrames[float32](k, sig, y0, o.DT, o.ZeroPhase)
	default:
		return fmt.Errorf("%w: unknown precision %d", ErrInvalidConfig, o.Precision)
	}
}

// filtParallel splits sig into single-channel views and filters them
// concurrently, each with its own step.
func filtParallel(k engine.Kernel, sig signalView, y0 []float64, o *FiltOptions) error {
	size := sig.size()
	if len(y0) != 1 && len(y0) != size {
		return fmt.Errorf("%w: initial value has %d elements, signal has %d", ErrShapeMismatch, len(y0), size)
	}

	var wg sync.WaitGroup
	errChan := make(chan error, size)

	for ch := range size {
		wg.Add(1)
		go func(channel int) {
			defer wg.Done()

			chY0 := y0[:1]
			if len(y0) == size {
				chY0 = y0[channel : channel+1]
			}
			if err := filtFrames(k, sig.one(channel), chY0, o); err != nil {
				errChan <- fmt.Errorf("channel %d: %w", channel, err)
			}
		}(ch)
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		if err != nil {
			return err
		}
	}
	return nil
}

// runFrames filters sig in place, forward and then optionally backward with
// the same step so the backward pass continues from the forward state.
func runFrames[F Float](k engine.Kernel, sig signalView, y0 []float64, dt float64, zeroPhase bool) error {
	step, err := engine.New[F](k, sig.size(), y0)
	if err != nil {
		return err
	}

	buf := make([]float64, sig.size())
	frame := make([]F, sig.size())
	advance := func(i int) {
		sig.load(i, buf)
		for j, v := range buf {
			frame[j] = F(v)
		}
		step.Advance(float64(i)*dt, frame, frame)
		for j, v := range frame {
			buf[j] = float64(v)
		}
		sig.store(i, buf)
	}

	n := sig.len()
	for i := range n {
		advance(i)
	}
	if zeroPhase {
		for i := n - 1; i >= 0; i-- {
			advance(i)
		}
	}
	return nil
}

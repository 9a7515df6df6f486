// Package synapse provides linear time-invariant synapse filters in pure Go.
//
// A synapse model is a transfer function num(s)/den(s) (analog) or
// num(z)/den(z) (discrete). Before simulation the model is discretized for a
// timestep and bound to one of a few step algorithms, chosen from the shape
// of the discrete coefficients. The step then advances one sample per call.
//
// # Features
//
//   - Arbitrary transfer functions via [NewLinearFilter]
//   - Named models: [NewLowpass], [NewAlpha] and the finite [NewTriangle]
//   - Zero-order hold discretization plus bilinear, Euler and backward
//     difference transforms
//   - Series composition with [LinearFilter.Combine] and frequency response
//     with [LinearFilter.Evaluate]
//   - float32 and float64 steps from a single generic engine
//   - Optional SIMD acceleration (AVX2/SSE/NEON) via github.com/tphakala/simd
//   - Batch and zero-phase filtering of gonum matrices
//
// # Quick Start
//
// Filtering a whole signal:
//
//	lp, err := synapse.NewLowpass(0.005, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	y, err := synapse.FiltSignal(lp, x, &synapse.FiltOptions{DT: 0.001})
//
// Driving a step from a simulator loop:
//
//	step, err := synapse.NewStep[float64](lp, 3, 0.001, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for i := range ticks {
//	    step.Advance(float64(i)*0.001, in, out)
//	}
//
// # Step Algorithms
//
// The engine picks the cheapest algorithm that fits the discrete
// coefficients:
//
//   - NoX: no state, the output is a scaled copy of the input
//   - OneX: a one-tap recursion for a single real pole
//   - General: a Direct-Form-II recurrence over a ring of len(den) states
//   - Triangle: a finite ramp FIR for [Triangle] synapses
//
// A step owns its state and must not be shared between goroutines. Distinct
// steps are independent, so channels or synapses can be filtered in
// parallel (see [FiltOptions.Parallel]).
package synapse

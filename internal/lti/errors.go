// Package lti implements transfer-function arithmetic for linear
// time-invariant systems: polynomial products, frequency response, state-space
// realisation and continuous-to-discrete conversion.
//
// Polynomials use the numpy convention: coefficients are ordered from the
// highest power to the lowest, so [tau, 1] is tau*s + 1.
package lti

import "errors"

var (
	// ErrInvalidDenominator indicates a denominator that is empty, all zero,
	// or not normalized to a leading 1 after discretization.
	ErrInvalidDenominator = errors.New("invalid denominator")

	// ErrInvalidTimestep indicates a non-positive or non-finite timestep.
	ErrInvalidTimestep = errors.New("invalid timestep")

	// ErrImproperTransferFunction indicates a numerator of higher order than
	// the denominator, or an empty numerator.
	ErrImproperTransferFunction = errors.New("improper transfer function")

	// ErrUnknownMethod indicates an unsupported discretization method.
	ErrUnknownMethod = errors.New("unknown discretization method")
)

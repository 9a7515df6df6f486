package synapse

import "fmt"

// Coerce converts the shorthand forms accepted wherever a synapse is
// expected. A number is a lowpass time constant, a Synapse is returned as is
// and nil means no synapse.
func Coerce(v any) (Synapse, error) {
	var tau float64
	switch s := v.(type) {
	case nil:
		return nil, nil
	case Synapse:
		return s, nil
	case float64:
		tau = s
	case float32:
		tau = float64(s)
	case int:
		tau = float64(s)
	default:
		return nil, fmt.Errorf("%w: cannot use %T as a synapse", ErrInvalidSynapse, v)
	}

	lp, err := NewLowpass(tau, nil)
	if err != nil {
		return nil, err
	}
	return lp, nil
}

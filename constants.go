package synapse

// Config defaults
const (
	defaultSize = 1     // Default channel count
	defaultDT   = 0.001 // Default timestep in seconds (1 ms)
)

package main

// Default command-line flag values
const (
	defaultSynapse        = "lowpass"
	defaultTau            = 0.005 // 5 ms
	defaultTriangleLength = 0.005 // 5 ms
	defaultDT             = 0.001 // 1 ms
	defaultMethod         = "zoh"
	defaultSamples        = 20
	defaultMode           = "coeffs"
)

// Frequency response display
const (
	defaultFreqPoints = 8
	decibelScale      = 20.0
	minMagnitude      = 1e-300 // Floor before taking the log
)

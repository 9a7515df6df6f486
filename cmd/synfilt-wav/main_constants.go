package main

// CLI defaults
const (
	defaultSynapse        = "lowpass"
	defaultTau            = 0.0005 // 0.5 ms, corner near 318 Hz
	defaultTriangleLength = 0.001  // 1 ms
	minRequiredArgs       = 2
)

const (
	// Buffer size for processing (number of frames per chunk)
	bufferSize = 65536

	// Sample format constants
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	// Conversion constants
	maxInt16         = 32767.0
	maxInt24         = 8388607.0
	maxInt32         = 2147483647.0
	progressInterval = 10 // Print progress every N%
	percentScale     = 100

	// WAV audio format tag for integer PCM
	wavFormatPCM = 1
)

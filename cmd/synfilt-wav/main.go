// Command synfilt-wav filters WAV audio through a synapse model.
//
// Usage:
//
//	synfilt-wav -tau 0.0005 input.wav output.wav
//	synfilt-wav -synapse alpha -tau 0.0002 input.wav output.wav
//	synfilt-wav -synapse triangle -t 0.001 -fast input.wav output.wav   # float32 precision
//	synfilt-wav -zero-phase input.wav output.wav                        # forward-backward, no phase delay
//
// The sample period of the input file is used as the synapse timestep.
// Parallel processing is enabled by default for stereo/multichannel files.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime/pprof"
	"time"

	synapse "github.com/tphakala/go-synapse"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Parse command line flags
	kind := flag.String("synapse", defaultSynapse, "Synapse model: lowpass, alpha, triangle")
	tau := flag.Float64("tau", defaultTau, "Time constant in seconds (lowpass, alpha)")
	length := flag.Float64("t", defaultTriangleLength, "Ramp length in seconds (triangle)")
	zeroPhase := flag.Bool("zero-phase", false, "Filter forward then backward (loads the whole file)")
	fast := flag.Bool("fast", false, "Use float32 precision")
	parallel := flag.Bool("parallel", true, "Enable parallel channel processing (faster for stereo/multichannel)")
	verbose := flag.Bool("v", false, "Verbose output")
	cpuprofile := flag.String("cpuprofile", "", "Write CPU profile to file (for PGO)")
	flag.Parse()

	// Validate arguments before setting up profiling
	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.wav output.wav\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -tau 0.0005 in.wav out.wav             # Gentle lowpass\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -synapse alpha -tau 0.0002 in.wav out.wav # Second-order smoothing\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -zero-phase in.wav out.wav              # No phase delay\n", os.Args[0])
		return fmt.Errorf("insufficient arguments")
	}

	syn, err := newSynapse(*kind, *tau, *length)
	if err != nil {
		return err
	}

	// Start CPU profiling if requested (for PGO)
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	inputPath := args[0]
	outputPath := args[1]
	opts := filterOptions{
		zeroPhase: *zeroPhase,
		fast:      *fast,
		parallel:  *parallel,
		verbose:   *verbose,
	}

	if *verbose {
		log.Printf("Input: %s", inputPath)
		log.Printf("Output: %s", outputPath)
		log.Printf("Synapse: %s", syn)
		log.Printf("SIMD: %s", synapse.SIMDInfo())
		if *fast {
			log.Printf("Precision: float32 (fast mode)")
		} else {
			log.Printf("Precision: float64 (high precision)")
		}
		if *zeroPhase {
			log.Printf("Zero-phase: enabled (whole file in memory)")
		}
		if *parallel {
			log.Printf("Parallel: enabled (concurrent channel processing)")
		} else {
			log.Printf("Parallel: disabled (sequential processing)")
		}
	}

	// Process the file
	start := time.Now()
	stats, err := filterWAV(inputPath, outputPath, syn, opts)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	// Print summary
	fmt.Printf("Filtered %s -> %s\n", filepath.Base(inputPath), filepath.Base(outputPath))
	fmt.Printf("  %s at %d Hz (%d channels, %d-bit)\n", syn, stats.rate, stats.channels, stats.bitDepth)
	fmt.Printf("  %d samples\n", stats.samples)
	fmt.Printf("  Duration: %.2fs, Speed: %.1fx realtime\n",
		elapsed.Seconds(),
		float64(stats.samples)/float64(stats.rate)/elapsed.Seconds())

	return nil
}

// Command synfilt inspects synapse models: their discrete coefficients,
// impulse and step responses, and frequency responses.
//
// Usage:
//
//	synfilt -synapse lowpass -tau 0.005
//	synfilt -synapse alpha -tau 0.002 -mode impulse -n 30
//	synfilt -synapse linear -num 1 -den 0.01,1 -method bilinear -mode freqz
//	synfilt -synapse triangle -t 0.004 -mode step
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"math/cmplx"
	"os"
	"strconv"
	"strings"

	synapse "github.com/tphakala/go-synapse"
	"github.com/tphakala/go-synapse/internal/lti"
)

// modelOptions describes the synapse to build.
type modelOptions struct {
	kind   string
	tau    float64
	length float64
	num    string
	den    string
	analog bool
	method string
	dt     float64
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("synfilt", flag.ContinueOnError)
	var opts modelOptions
	fs.StringVar(&opts.kind, "synapse", defaultSynapse, "Synapse model: lowpass, alpha, triangle, linear")
	fs.Float64Var(&opts.tau, "tau", defaultTau, "Time constant in seconds (lowpass, alpha)")
	fs.Float64Var(&opts.length, "t", defaultTriangleLength, "Ramp length in seconds (triangle)")
	fs.StringVar(&opts.num, "num", "1", "Comma-separated numerator coefficients, highest power first (linear)")
	fs.StringVar(&opts.den, "den", "", "Comma-separated denominator coefficients, highest power first (linear)")
	fs.BoolVar(&opts.analog, "analog", true, "Treat num/den as a continuous transfer function (linear)")
	fs.StringVar(&opts.method, "method", defaultMethod, "Discretization method: zoh, bilinear, euler, backward_diff")
	fs.Float64Var(&opts.dt, "dt", defaultDT, "Timestep in seconds")
	mode := fs.String("mode", defaultMode, "Output: coeffs, impulse, step, freqz")
	n := fs.Int("n", defaultSamples, "Number of samples (impulse, step) or frequencies (freqz)")
	verbose := fs.Bool("v", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}

	syn, err := buildSynapse(opts)
	if err != nil {
		return err
	}

	if *verbose {
		log.Printf("Synapse: %s", syn)
		log.Printf("Timestep: %g s", opts.dt)
		log.Printf("SIMD: %s", synapse.SIMDInfo())
	}

	switch *mode {
	case "coeffs":
		return printCoefficients(w, syn, opts.dt)
	case "impulse":
		return printResponse(w, syn, opts.dt, impulse(*n))
	case "step":
		return printResponse(w, syn, opts.dt, ones(*n))
	case "freqz":
		if *n <= 0 {
			*n = defaultFreqPoints
		}
		return printFreqZ(w, syn, opts.dt, *n)
	default:
		return fmt.Errorf("unknown mode %q (want coeffs, impulse, step or freqz)", *mode)
	}
}

// buildSynapse creates the synapse described by opts.
func buildSynapse(opts modelOptions) (synapse.Synapse, error) {
	method, err := synapse.ParseMethod(opts.method)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(opts.kind) {
	case "lowpass":
		lp, err := synapse.NewLowpass(opts.tau, nil)
		if err != nil {
			return nil, err
		}
		return lp.WithMethod(method), nil
	case "alpha":
		al, err := synapse.NewAlpha(opts.tau, nil)
		if err != nil {
			return nil, err
		}
		return al.WithMethod(method), nil
	case "triangle":
		return synapse.NewTriangle(opts.length, nil)
	case "linear":
		num, err := parseCoefficients(opts.num)
		if err != nil {
			return nil, fmt.Errorf("invalid -num: %w", err)
		}
		den, err := parseCoefficients(opts.den)
		if err != nil {
			return nil, fmt.Errorf("invalid -den: %w", err)
		}
		lf, err := synapse.NewLinearFilter(num, den, opts.analog, nil)
		if err != nil {
			return nil, err
		}
		return lf.WithMethod(method), nil
	default:
		return nil, fmt.Errorf("unknown synapse %q (want lowpass, alpha, triangle or linear)", opts.kind)
	}
}

func impulse(n int) []float64 {
	x := make([]float64, max(n, 0))
	if n > 0 {
		x[0] = 1
	}
	return x
}

func ones(n int) []float64 {
	x := make([]float64, max(n, 0))
	for i := range x {
		x[i] = 1
	}
	return x
}

// parseCoefficients parses a comma-separated list of floats.
func parseCoefficients(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("no coefficients")
	}

	fields := strings.Split(s, ",")
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// discreteCoefficients returns the recurrence coefficients of syn at dt.
// den excludes the leading 1.
func discreteCoefficients(syn synapse.Synapse, dt float64) (num, den []float64, err error) {
	switch s := syn.(type) {
	case *synapse.Triangle:
		ramp, err := s.Ramp(dt)
		return ramp, []float64{}, err
	case interface {
		Discretize(dt float64) ([]float64, []float64, error)
	}:
		return s.Discretize(dt)
	default:
		return nil, nil, fmt.Errorf("%w: %T", synapse.ErrInvalidSynapse, syn)
	}
}

func printCoefficients(w io.Writer, syn synapse.Synapse, dt float64) error {
	num, den, err := discreteCoefficients(syn, dt)
	if err != nil {
		return err
	}

	step, err := synapse.NewStep[float64](syn, 1, dt, nil)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s at dt=%g\n", syn, dt)
	fmt.Fprintf(w, "  Step:  %s (order %d)\n", step.Kind(), step.Order())
	fmt.Fprintf(w, "  Num:   %v\n", num)
	fmt.Fprintf(w, "  Den:   %v\n", den)

	sum := 1.0
	for _, v := range den {
		sum += v
	}
	if sum != 0 {
		var gain float64
		for _, v := range num {
			gain += v
		}
		fmt.Fprintf(w, "  DC gain: %.6g\n", gain/sum)
	}
	return nil
}

func printResponse(w io.Writer, syn synapse.Synapse, dt float64, x []float64) error {
	y, err := synapse.FiltSignal(syn, x, &synapse.FiltOptions{DT: dt, Y0: []float64{0}})
	if err != nil {
		return err
	}

	for i, v := range y {
		fmt.Fprintf(w, "%10.6f  %.9g\n", float64(i)*dt, v)
	}
	return nil
}

func printFreqZ(w io.Writer, syn synapse.Synapse, dt float64, n int) error {
	num, den, err := discreteCoefficients(syn, dt)
	if err != nil {
		return err
	}

	omega, h := lti.FreqZ(num, append([]float64{1}, den...), n)
	fmt.Fprintf(w, "%12s  %10s  %10s\n", "freq (Hz)", "mag (dB)", "phase")
	for i := range omega {
		mag := decibelScale * math.Log10(math.Max(cmplx.Abs(h[i]), minMagnitude))
		fmt.Fprintf(w, "%12.3f  %10.3f  %10.4f\n", omega[i]/(2*math.Pi*dt), mag, cmplx.Phase(h[i]))
	}
	return nil
}

package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"gonum.org/v1/gonum/mat"

	synapse "github.com/tphakala/go-synapse"
)

// Float constraint for generic filtering.
type Float interface {
	float32 | float64
}

type filterOptions struct {
	zeroPhase bool
	fast      bool
	parallel  bool
	verbose   bool
}

type filterStats struct {
	rate     int
	channels int
	bitDepth int
	samples  int64
}

// newSynapse builds the synapse named by kind.
func newSynapse(kind string, tau, length float64) (synapse.Synapse, error) {
	switch strings.ToLower(kind) {
	case "lowpass":
		return synapse.NewLowpass(tau, nil)
	case "alpha":
		return synapse.NewAlpha(tau, nil)
	case "triangle":
		return synapse.NewTriangle(length, nil)
	default:
		return nil, fmt.Errorf("unknown synapse %q (want lowpass, alpha or triangle)", kind)
	}
}

// wavInputInfo holds validated input file information.
type wavInputInfo struct {
	file         *os.File
	decoder      *wav.Decoder
	rate         int
	channels     int
	bitDepth     int
	totalSamples int64
	format       *audio.Format
}

// openWAVInput opens and validates a WAV file, returning format information.
func openWAVInput(path string, verbose bool) (*wavInputInfo, error) {
	// Open input file
	inputFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	// Create WAV decoder
	decoder := wav.NewDecoder(inputFile)
	if !decoder.IsValidFile() {
		_ = inputFile.Close()
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	// Read format info
	format := decoder.Format()
	rate := format.SampleRate
	channels := format.NumChannels
	bitDepth := int(decoder.BitDepth)

	if rate <= 0 || channels <= 0 {
		_ = inputFile.Close()
		return nil, fmt.Errorf("invalid WAV format: %d Hz, %d channels", rate, channels)
	}

	if verbose {
		log.Printf("Input format: %d Hz, %d channels, %d-bit", rate, channels, bitDepth)
	}

	// Get total duration for progress reporting
	duration, err := decoder.Duration()
	if err != nil {
		duration = 0
	}
	totalSamples := int64(duration.Seconds() * float64(rate))

	return &wavInputInfo{
		file:         inputFile,
		decoder:      decoder,
		rate:         rate,
		channels:     channels,
		bitDepth:     bitDepth,
		totalSamples: totalSamples,
		format:       format,
	}, nil
}

// Close closes the input file.
func (w *wavInputInfo) Close() error {
	return w.file.Close()
}

// wavOutputWriter wraps the output file and its encoder.
type wavOutputWriter struct {
	file    *os.File
	encoder *wav.Encoder
}

// createWAVOutput creates the output file and a PCM encoder for it.
func createWAVOutput(path string, sampleRate, bitDepth, channels int) (*wavOutputWriter, error) {
	outputFile, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	return &wavOutputWriter{
		file:    outputFile,
		encoder: wav.NewEncoder(outputFile, sampleRate, bitDepth, channels, wavFormatPCM),
	}, nil
}

// Write encodes interleaved samples.
func (w *wavOutputWriter) Write(buf *audio.IntBuffer) error {
	return w.encoder.Write(buf)
}

// Close finalizes the WAV header and closes the file.
func (w *wavOutputWriter) Close() error {
	if err := w.encoder.Close(); err != nil {
		_ = w.file.Close()
		return err
	}
	return w.file.Close()
}

// filterWAV filters inputPath into outputPath at the input's sample rate.
func filterWAV(inputPath, outputPath string, syn synapse.Synapse, opts filterOptions) (stats *filterStats, err error) {
	input, err := openWAVInput(inputPath, opts.verbose)
	if err != nil {
		return nil, err
	}
	defer func() { _ = input.Close() }()

	output, err := createWAVOutput(outputPath, input.rate, input.bitDepth, input.channels)
	if err != nil {
		return nil, err
	}
	// Close output, capturing close errors on success path (important for WAV header updates)
	defer func() {
		if closeErr := output.Close(); err == nil {
			err = closeErr
		}
	}()

	stats = &filterStats{
		rate:     input.rate,
		channels: input.channels,
		bitDepth: input.bitDepth,
	}
	dt := 1.0 / float64(input.rate)

	switch {
	case opts.zeroPhase:
		err = filterWhole(input, output, syn, dt, opts, stats)
	case opts.fast:
		err = filterStream[float32](input, output, syn, dt, opts, stats)
	default:
		err = filterStream[float64](input, output, syn, dt, opts, stats)
	}
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// filterStream filters the file chunk by chunk, carrying step state across
// chunks.
func filterStream[F Float](
	input *wavInputInfo,
	output *wavOutputWriter,
	syn synapse.Synapse,
	dt float64,
	opts filterOptions,
	stats *filterStats,
) error {
	steps, err := createSteps[F](syn, input.channels, dt, opts.parallel)
	if err != nil {
		return err
	}

	intBuffer := &audio.IntBuffer{
		Data:           make([]int, bufferSize*input.channels),
		Format:         input.format,
		SourceBitDepth: input.bitDepth,
	}
	samples := make([]F, bufferSize*input.channels)
	maxVal := getMaxValue(input.bitDepth)
	progress := newProgressTracker(input.totalSamples, opts.verbose)

	for {
		intBuffer.Data = intBuffer.Data[:cap(intBuffer.Data)]
		n, err := input.decoder.PCMBuffer(intBuffer)
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read audio data: %w", err)
		}
		frames := n / input.channels
		if frames == 0 {
			break
		}

		data := intBuffer.Data[:frames*input.channels]
		chunk := samples[:len(data)]
		toFloat(data, chunk, 1/maxVal)

		if len(steps) > 1 {
			filterParallel(steps, chunk, input.channels, stats.samples, dt)
		} else {
			filterSequential(steps[0], chunk, input.channels, stats.samples, dt)
		}

		toInt(chunk, data, maxVal)
		intBuffer.Data = data
		if err := output.Write(intBuffer); err != nil {
			return fmt.Errorf("failed to write audio data: %w", err)
		}

		stats.samples += int64(frames)
		progress.reportIfNeeded(stats.samples)
	}

	return nil
}

// filterWhole loads the whole file and filters it forward and backward.
func filterWhole(
	input *wavInputInfo,
	output *wavOutputWriter,
	syn synapse.Synapse,
	dt float64,
	opts filterOptions,
	stats *filterStats,
) error {
	buf, err := input.decoder.FullPCMBuffer()
	if err != nil {
		return fmt.Errorf("failed to read audio data: %w", err)
	}

	frames := len(buf.Data) / input.channels
	if frames == 0 {
		return nil
	}
	data := buf.Data[:frames*input.channels]

	// Interleaved samples are a row-major frames x channels matrix.
	maxVal := getMaxValue(input.bitDepth)
	x := make([]float64, len(data))
	toFloat(data, x, 1/maxVal)

	precision := synapse.Float64
	if opts.fast {
		precision = synapse.Float32
	}

	y, err := synapse.FiltFilt(syn, mat.NewDense(frames, input.channels, x), &synapse.FiltOptions{
		DT:        dt,
		Y0:        []float64{0},
		Precision: precision,
		Parallel:  opts.parallel,
	})
	if err != nil {
		return fmt.Errorf("filtering failed: %w", err)
	}

	toInt(y.RawMatrix().Data, data, maxVal)
	if err := output.Write(&audio.IntBuffer{Data: data, Format: input.format, SourceBitDepth: input.bitDepth}); err != nil {
		return fmt.Errorf("failed to write audio data: %w", err)
	}

	stats.samples = int64(frames)
	return nil
}

// createSteps creates one step per channel when parallel, otherwise a
// single multi-channel step.
func createSteps[F Float](syn synapse.Synapse, channels int, dt float64, parallel bool) ([]*synapse.Step[F], error) {
	if !parallel || channels == 1 {
		step, err := synapse.NewStep[F](syn, channels, dt, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create filter: %w", err)
		}
		return []*synapse.Step[F]{step}, nil
	}

	steps := make([]*synapse.Step[F], channels)
	for ch := range channels {
		step, err := synapse.NewStep[F](syn, 1, dt, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create filter for channel %d: %w", ch, err)
		}
		steps[ch] = step
	}
	return steps, nil
}

// filterSequential advances a multi-channel step over interleaved frames
// in place. start is the index of the first frame in the file.
func filterSequential[F Float](step *synapse.Step[F], samples []F, channels int, start int64, dt float64) {
	frames := len(samples) / channels
	for i := range frames {
		frame := samples[i*channels : (i+1)*channels]
		step.Advance(float64(start+int64(i))*dt, frame, frame)
	}
}

// filterParallel advances one single-channel step per channel concurrently.
func filterParallel[F Float](steps []*synapse.Step[F], samples []F, channels int, start int64, dt float64) {
	frames := len(samples) / channels

	var wg sync.WaitGroup
	for ch := range channels {
		wg.Add(1)
		go func(channel int) {
			defer wg.Done()

			step := steps[channel]
			frame := make([]F, 1)
			for i := range frames {
				idx := i*channels + channel
				frame[0] = samples[idx]
				step.Advance(float64(start+int64(i))*dt, frame, frame)
				samples[idx] = frame[0]
			}
		}(ch)
	}
	wg.Wait()
}

// toFloat converts int samples to floats scaled by invMaxVal.
func toFloat[F Float](src []int, dst []F, invMaxVal float64) {
	for i, v := range src {
		dst[i] = F(float64(v) * invMaxVal)
	}
}

// toInt converts floats to int samples, clamping to [-1.0, 1.0].
func toInt[F Float](src []F, dst []int, maxVal float64) {
	for i, v := range src {
		sample := float64(v)
		if sample > 1.0 {
			sample = 1.0
		} else if sample < -1.0 {
			sample = -1.0
		}
		dst[i] = int(sample * maxVal)
	}
}

// getMaxValue returns the maximum sample value for the given bit depth.
func getMaxValue(bitDepth int) float64 {
	switch bitDepth {
	case bitsPerSample16:
		return maxInt16
	case bitsPerSample24:
		return maxInt24
	case bitsPerSample32:
		return maxInt32
	default:
		return maxInt16
	}
}

// progressTracker handles progress reporting.
type progressTracker struct {
	totalSamples int64
	lastProgress int
	verbose      bool
}

// newProgressTracker creates a new progress tracker.
func newProgressTracker(totalSamples int64, verbose bool) *progressTracker {
	return &progressTracker{
		totalSamples: totalSamples,
		verbose:      verbose,
	}
}

// reportIfNeeded reports progress if threshold crossed.
func (p *progressTracker) reportIfNeeded(currentSamples int64) {
	if !p.verbose || p.totalSamples == 0 {
		return
	}

	progress := int(float64(currentSamples) / float64(p.totalSamples) * percentScale)
	if progress >= p.lastProgress+progressInterval {
		log.Printf("Progress: %d%%", progress)
		p.lastProgress = progress
	}
}

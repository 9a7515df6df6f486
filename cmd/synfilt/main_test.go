package main

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	synapse "github.com/tphakala/go-synapse"
)

func runOutput(t *testing.T, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, run(args, &buf))
	return buf.String()
}

func TestParseCoefficients(t *testing.T) {
	testCases := []struct {
		in      string
		want    []float64
		wantErr bool
	}{
		{"1", []float64{1}, false},
		{"0.01, 1", []float64{0.01, 1}, false},
		{" 1,-0.5,0.25 ", []float64{1, -0.5, 0.25}, false},
		{"", nil, true},
		{"1,x", nil, true},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := parseCoefficients(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestBuildSynapse(t *testing.T) {
	testCases := []struct {
		name string
		opts modelOptions
		want string
	}{
		{"lowpass", modelOptions{kind: "lowpass", tau: 0.005, method: "zoh"}, "Lowpass(0.005)"},
		{"lowpass_bilinear", modelOptions{kind: "lowpass", tau: 0.005, method: "bilinear"}, "Lowpass(0.005)"},
		{"alpha", modelOptions{kind: "ALPHA", tau: 0.002, method: "zoh"}, "Alpha(0.002)"},
		{"triangle", modelOptions{kind: "triangle", length: 0.01, method: "zoh"}, "Triangle(0.01)"},
		{"linear", modelOptions{kind: "linear", num: "1", den: "0.01,1", analog: true, method: "bilinear"}, "LinearFilter([1], [0.01 1], analog=true)"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := buildSynapse(tc.opts)
			require.NoError(t, err)
			assert.Equal(t, tc.want, s.String())
		})
	}
}

func TestBuildSynapse_Errors(t *testing.T) {
	_, err := buildSynapse(modelOptions{kind: "lowpass", tau: 0.005, method: "impulse"})
	assert.ErrorIs(t, err, synapse.ErrUnknownMethod)

	_, err = buildSynapse(modelOptions{kind: "bandpass", method: "zoh"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown synapse")

	_, err = buildSynapse(modelOptions{kind: "linear", num: "1", den: "", method: "zoh"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid -den")

	_, err = buildSynapse(modelOptions{kind: "lowpass", tau: -1, method: "zoh"})
	assert.ErrorIs(t, err, synapse.ErrInvalidConfig)
}

func TestRun_Coefficients(t *testing.T) {
	out := runOutput(t, "-synapse", "lowpass", "-tau", "0.005")
	assert.Contains(t, out, "Lowpass(0.005) at dt=0.001")
	assert.Contains(t, out, "OneX")
	assert.Contains(t, out, "DC gain: 1")

	out = runOutput(t, "-synapse", "triangle", "-t", "0.003")
	assert.Contains(t, out, "Triangle")
	assert.Contains(t, out, "Num:   [0.4 ")
}

func TestRun_Impulse(t *testing.T) {
	out := runOutput(t, "-synapse", "triangle", "-t", "0.003", "-mode", "impulse", "-n", "6")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)

	want := []float64{0.4, 0.3, 0.2, 0.1, 0, 0}
	for i, line := range lines {
		fields := strings.Fields(line)
		require.Len(t, fields, 2)
		got, err := strconv.ParseFloat(fields[1], 64)
		require.NoError(t, err)
		assert.InDelta(t, want[i], got, 1e-12, "line %d", i)
	}
}

func TestRun_Step(t *testing.T) {
	out := runOutput(t, "-synapse", "alpha", "-tau", "0.002", "-mode", "step", "-n", "10")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 10)
}

func TestRun_FreqZ(t *testing.T) {
	out := runOutput(t, "-synapse", "lowpass", "-tau", "0.005", "-mode", "freqz", "-n", "4")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "mag (dB)")

	// Unit DC gain is 0 dB with zero phase.
	fields := strings.Fields(lines[1])
	require.Len(t, fields, 3)
	assert.Equal(t, "0.000", fields[0])
	assert.Contains(t, []string{"0.000", "-0.000"}, fields[1])
}

func TestRun_Errors(t *testing.T) {
	var buf bytes.Buffer
	err := run([]string{"-mode", "bode"}, &buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")

	err = run([]string{"-synapse", "lowpass", "-dt", "0"}, &buf)
	assert.ErrorIs(t, err, synapse.ErrInvalidTimestep)

	err = run([]string{"-no-such-flag"}, &buf)
	assert.Error(t, err)
}

package synapse

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-synapse/internal/engine"
	"github.com/tphakala/go-synapse/internal/testutil"
)

// =============================================================================
// Config
// =============================================================================

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"default", DefaultConfig(), false},
		{"multichannel", Config{SizeIn: 4, SizeOut: 4, DT: 0.0005}, false},
		{"zero_size_in", Config{SizeIn: 0, DT: 0.001}, true},
		{"negative_size_out", Config{SizeIn: 1, SizeOut: -1, DT: 0.001}, true},
		{"zero_dt", Config{SizeIn: 1}, true},
		{"nan_dt", Config{SizeIn: 1, DT: math.NaN()}, true},
		{"inf_dt", Config{SizeIn: 1, DT: math.Inf(1)}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestResolveConfig(t *testing.T) {
	c, err := resolveConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, c.SizeIn)
	assert.Equal(t, 1, c.SizeOut)
	assert.InDelta(t, 0.001, c.DT, 0)

	seed := int64(7)
	c, err = resolveConfig(&Config{SizeIn: 3, DT: 0.002, Seed: &seed})
	require.NoError(t, err)
	assert.Equal(t, 3, c.SizeOut)
	assert.Equal(t, &seed, c.Seed)

	_, err = resolveConfig(&Config{})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

// =============================================================================
// Constructors and descriptions
// =============================================================================

func TestString(t *testing.T) {
	lf, err := NewLinearFilter([]float64{1}, []float64{0.005, 1}, true, nil)
	require.NoError(t, err)
	lp, err := NewLowpass(0.005, nil)
	require.NoError(t, err)
	al, err := NewAlpha(0.005, nil)
	require.NoError(t, err)
	tr, err := NewTriangle(0.01, nil)
	require.NoError(t, err)

	assert.Equal(t, "LinearFilter([1], [0.005 1], analog=true)", lf.String())
	assert.Equal(t, "Lowpass(0.005)", lp.String())
	assert.Equal(t, "Alpha(0.005)", al.String())
	assert.Equal(t, "Triangle(0.01)", tr.String())
}

func TestConstructors_Errors(t *testing.T) {
	_, err := NewLinearFilter([]float64{1}, nil, true, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewLinearFilter([]float64{1}, []float64{1}, true, &Config{SizeIn: 1})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewLowpass(-0.1, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewAlpha(math.NaN(), nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewTriangle(-1, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNamedFilters_Coefficients(t *testing.T) {
	lp, err := NewLowpass(0.02, nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, lp.Num())
	assert.Equal(t, []float64{0.02, 1}, lp.Den())
	assert.True(t, lp.Analog())
	assert.InDelta(t, 0.02, lp.Tau(), 0)

	al, err := NewAlpha(0.02, nil)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.0004, 0.04, 1}, al.Den(), 1e-18)
	assert.InDelta(t, 0.02, al.Tau(), 0)
}

func TestLinearFilter_IsImmutable(t *testing.T) {
	num := []float64{1}
	den := []float64{0.005, 1}
	f, err := NewLinearFilter(num, den, true, nil)
	require.NoError(t, err)

	num[0] = 5
	den[0] = 9
	assert.Equal(t, []float64{1}, f.Num())

	got := f.Den()
	got[1] = 42
	assert.Equal(t, []float64{0.005, 1}, f.Den())
}

// =============================================================================
// Coerce
// =============================================================================

func TestCoerce(t *testing.T) {
	s, err := Coerce(0.005)
	require.NoError(t, err)
	lp, ok := s.(*Lowpass)
	require.True(t, ok)
	assert.InDelta(t, 0.005, lp.Tau(), 0)

	s, err = Coerce(float32(0.25))
	require.NoError(t, err)
	assert.Equal(t, "Lowpass(0.25)", s.String())

	s, err = Coerce(0)
	require.NoError(t, err)
	assert.Equal(t, "Lowpass(0)", s.String())

	tr, err := NewTriangle(0.01, nil)
	require.NoError(t, err)
	s, err = Coerce(tr)
	require.NoError(t, err)
	assert.Same(t, tr, s)

	s, err = Coerce(nil)
	require.NoError(t, err)
	assert.Nil(t, s)

	_, err = Coerce("lowpass")
	assert.ErrorIs(t, err, ErrInvalidSynapse)

	_, err = Coerce(-1.0)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

// =============================================================================
// NewStep
// =============================================================================

func TestNewStep_SelectsKind(t *testing.T) {
	lp, err := NewLowpass(0.005, nil)
	require.NoError(t, err)
	passthrough, err := NewLowpass(0, nil)
	require.NoError(t, err)
	al, err := NewAlpha(0.005, nil)
	require.NoError(t, err)
	tr, err := NewTriangle(0.005, nil)
	require.NoError(t, err)
	gain, err := NewLinearFilter([]float64{2}, []float64{1}, false, nil)
	require.NoError(t, err)

	testCases := []struct {
		s    Synapse
		want engine.Kind
	}{
		{lp, engine.KindOneX},
		{passthrough, engine.KindNoX},
		{al, engine.KindGeneral},
		{lp.WithMethod(MethodBilinear), engine.KindGeneral},
		{tr, engine.KindTriangle},
		{gain, engine.KindNoX},
	}

	for _, tc := range testCases {
		t.Run(tc.s.String(), func(t *testing.T) {
			step, err := NewStep[float64](tc.s, 1, 0.001, nil)
			require.NoError(t, err)
			assert.Equal(t, tc.want, step.Kind())
		})
	}
}

func TestNewStep_Defaults(t *testing.T) {
	lp, err := NewLowpass(0.005, &Config{SizeIn: 3, DT: 0.002})
	require.NoError(t, err)

	step, err := NewStep[float32](lp, 0, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, step.Size())

	// The default dt 0.002 gives a = exp(-0.4).
	a := math.Exp(-0.4)
	assert.InDeltaSlice(t, []float32{float32(-a)}, step.Den(), 1e-7)
}

func TestNewStep_Errors(t *testing.T) {
	_, err := NewStep[float64](nil, 1, 0.001, nil)
	assert.ErrorIs(t, err, ErrInvalidSynapse)

	lp, err := NewLowpass(0.005, &Config{SizeIn: 2, SizeOut: 3, DT: 0.001})
	require.NoError(t, err)
	_, err = NewStep[float64](lp, 2, 0.001, nil)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	lp, err = NewLowpass(0.005, nil)
	require.NoError(t, err)
	_, err = NewStep[float64](lp, 1, -0.001, nil)
	assert.ErrorIs(t, err, ErrInvalidTimestep)

	_, err = NewStep[float64](lp, 2, 0.001, []float64{1, 2, 3})
	assert.ErrorIs(t, err, ErrShapeMismatch)

	improper, err := NewLinearFilter([]float64{1, 0, 0}, []float64{1, 1}, true, nil)
	require.NoError(t, err)
	_, err = NewStep[float64](improper, 1, 0.001, nil)
	assert.ErrorIs(t, err, ErrImproperTransferFunction)

	unnormalized, err := NewLinearFilter([]float64{1}, []float64{2, 1}, false, nil)
	require.NoError(t, err)
	_, err = NewStep[float64](unnormalized, 1, 0.001, nil)
	assert.ErrorIs(t, err, ErrInvalidDenominator)
}

func TestNewStep_LowpassStepResponse(t *testing.T) {
	lp, err := NewLowpass(0.005, nil)
	require.NoError(t, err)

	step, err := NewStep[float64](lp, 1, 0.001, nil)
	require.NoError(t, err)

	in := []float64{1}
	out := make([]float64, 1)
	y := make([]float64, 200)
	for i := range y {
		step.Advance(float64(i)*0.001, in, out)
		y[i] = out[0]
	}

	testutil.AssertMonotonic(t, y[:100])
	testutil.AssertAllInRange(t, y, 0, 1+1e-12)
	assert.InDelta(t, 1.0, y[len(y)-1], 1e-12)

	// ZOH matches the analog step response 1 - exp(-t/tau) at the sample
	// instants, with one sample of delay removed.
	for i := range 20 {
		want := 1 - math.Exp(-float64(i+1)*0.001/0.005)
		assert.InDelta(t, want, y[i], 1e-12, "i=%d", i)
	}
}

func TestSIMDInfo(t *testing.T) {
	info := SIMDInfo()
	assert.NotEmpty(t, info)
	t.Logf("SIMD: %s", info)
}

package absorption

import (
	"bytes"
	"io"
	"slices"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-airabsorb/acoustics/air"
	"github.com/cwbudde/algo-airabsorb/dsp/filter/bank"
	"github.com/cwbudde/algo-airabsorb/dsp/filter/design/pass"
	"github.com/cwbudde/algo-airabsorb/internal/testutil"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestBandpass(t *testing.T, opts ...Option) *Bandpass {
	t.Helper()
	bp, err := NewBandpass(append([]Option{WithLogger(quietLogger())}, opts...)...)
	require.NoError(t, err)
	return bp
}

func TestNewBandpass_Defaults(t *testing.T) {
	bp := newTestBandpass(t)
	cfg := bp.Config()

	assert.Equal(t, "Bandpass", bp.Name())
	assert.Equal(t, 20000.0, cfg.MaxFrequency)
	assert.Equal(t, 1.0, cfg.MinFrequency)
	assert.Equal(t, 50, cfg.Divisions)
	assert.Equal(t, 44100.0, cfg.SampleRate)
	assert.Equal(t, pass.DefaultBandOrder, cfg.Order)
	assert.Len(t, bp.Bands(), 50)
}

func TestNewBandpass_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{name: "zeroDivisions", opt: WithDivisions(0)},
		{name: "negativeMin", opt: WithMinFrequency(-1)},
		{name: "zeroMax", opt: WithMaxFrequency(0)},
		{name: "zeroSampleRate", opt: WithSampleRate(0)},
		{name: "zeroOrder", opt: WithOrder(0)},
		{name: "zeroConcurrency", opt: WithConcurrency(0)},
		{name: "nilModel", opt: WithModel(nil)},
		{name: "nilLogger", opt: WithLogger(nil)},
		{name: "maxBelowMin", opt: WithConfig(Config{MaxFrequency: 10, MinFrequency: 20, Divisions: 2, SampleRate: 44100, Order: 3, Air: air.DefaultConditions()})},
		{name: "badAtmosphere", opt: WithConfig(Config{MaxFrequency: 20000, MinFrequency: 1, Divisions: 2, SampleRate: 44100, Order: 3})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bp, err := NewBandpass(tt.opt)
			assert.Error(t, err)
			assert.Nil(t, bp)
		})
	}
}

func TestApply_OutputLengthMatchesInput(t *testing.T) {
	bp := newTestBandpass(t, WithDivisions(8))

	for _, n := range []int{1, 2, 17, 1000} {
		out, err := bp.Apply(testutil.DeterministicNoise(int64(n), 1, n))
		require.NoError(t, err)
		assert.Len(t, out, n)
		testutil.RequireFinite(t, out)
	}
}

func TestApply_EmptySignal(t *testing.T) {
	out, err := newTestBandpass(t).Apply(nil)
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestApply_ZeroSignalStaysZero(t *testing.T) {
	out, err := newTestBandpass(t).Apply(make([]float64, 2048))
	require.NoError(t, err)
	for i, v := range out {
		require.Equal(t, 0.0, v, "index %d", i)
	}
}

func TestApply_DoesNotModifyInput(t *testing.T) {
	in := testutil.DeterministicNoise(7, 1, 512)
	orig := append([]float64(nil), in...)

	_, err := newTestBandpass(t, WithDivisions(5)).Apply(in)
	require.NoError(t, err)
	assert.Equal(t, orig, in)
}

func TestApply_SingleBandImpulseMatchesDirectComputation(t *testing.T) {
	bp := newTestBandpass(t, WithDivisions(1))
	impulse := testutil.Impulse(1000, 0)

	got, err := bp.Apply(impulse)
	require.NoError(t, err)

	band, err := bank.LinearBand(1, 20000, 1, 1)
	require.NoError(t, err)
	require.Equal(t, 1.0, band.Low)

	want, err := BandpassFilter(impulse, band.Low, band.High, 44100, pass.DefaultBandOrder)
	require.NoError(t, err)

	coeffs := air.Default().Absorption(band.Mean)
	for k := range want {
		want[k] *= AttenuationFactor(k, 44100, coeffs.C, coeffs.Alpha)
	}

	testutil.RequireSliceRelNearlyEqual(t, got, want, 1e-12)
}

func TestApply_SumOfBandResponses(t *testing.T) {
	bp := newTestBandpass(t, WithDivisions(6))
	in := testutil.DeterministicNoise(3, 1, 700)

	got, err := bp.Apply(in)
	require.NoError(t, err)

	want := make([]float64, len(in))
	for j := 1; j <= 6; j++ {
		part, err := bp.BandResponse(in, j)
		require.NoError(t, err)
		for k, v := range part {
			want[k] += v
		}
	}

	assert.Equal(t, want, got)
}

func TestApply_MergeIsDeterministic(t *testing.T) {
	in := testutil.DeterministicNoise(11, 1, 4096)

	sequential := newTestBandpass(t, WithConcurrency(1))
	parallel := newTestBandpass(t)

	a, err := sequential.Apply(in)
	require.NoError(t, err)
	b, err := sequential.Apply(in)
	require.NoError(t, err)
	c, err := parallel.Apply(in)
	require.NoError(t, err)

	testutil.RequireSliceRelNearlyEqual(t, b, a, 1e-9)
	assert.Equal(t, a, b)
	assert.Equal(t, a, c, "merge order must not depend on scheduling")
}

func TestApply_ConcurrentCalls(t *testing.T) {
	bp := newTestBandpass(t, WithDivisions(10))
	in := testutil.DeterministicNoise(5, 1, 1024)

	want, err := bp.Apply(in)
	require.NoError(t, err)

	results := make(chan []float64, 4)
	for range 4 {
		go func() {
			out, err := bp.Apply(in)
			assert.NoError(t, err)
			results <- out
		}()
	}
	for range 4 {
		assert.Equal(t, want, <-results)
	}
}

func TestApply_NoAbsorptionEqualsFilterBankSum(t *testing.T) {
	flat := air.Func(func(float64) air.Coefficients { return air.Coefficients{Alpha: 0, C: 343} })
	bp := newTestBandpass(t, WithDivisions(4), WithModel(flat))
	in := testutil.DeterministicNoise(9, 1, 512)

	got, err := bp.Apply(in)
	require.NoError(t, err)

	b, err := bank.NewLinear(1, 20000, 4, 44100)
	require.NoError(t, err)

	want := make([]float64, len(in))
	for _, part := range b.ProcessBlock(in) {
		for k, v := range part {
			want[k] += v
		}
	}

	testutil.RequireSliceNearlyEqual(t, got, want, 1e-12)
}

func TestApply_UsesAbsorptionAtBandMean(t *testing.T) {
	var means []float64
	model := air.Func(func(f float64) air.Coefficients {
		return air.Coefficients{Alpha: 0.1, C: 343}
	})
	recorder := air.Func(func(f float64) air.Coefficients {
		means = append(means, f)
		return model(f)
	})

	bp := newTestBandpass(t, WithDivisions(3), WithConcurrency(1), WithModel(recorder))
	_, err := bp.Apply(testutil.Impulse(64, 0))
	require.NoError(t, err)

	// Bands may be scheduled in any order even with one worker.
	slices.Sort(means)
	require.Len(t, means, 3)
	for i, b := range bp.Bands() {
		assert.Equal(t, b.Mean, means[i])
	}
}

func TestApply_LaterSamplesAttenuatedMore(t *testing.T) {
	strong := air.Func(func(float64) air.Coefficients { return air.Coefficients{Alpha: 1, C: 343} })
	flat := air.Func(func(float64) air.Coefficients { return air.Coefficients{Alpha: 0, C: 343} })
	in := testutil.DeterministicNoise(13, 1, 2048)

	withAbs, err := newTestBandpass(t, WithDivisions(1), WithModel(strong)).Apply(in)
	require.NoError(t, err)
	without, err := newTestBandpass(t, WithDivisions(1), WithModel(flat)).Apply(in)
	require.NoError(t, err)

	assert.Equal(t, without[0], withAbs[0])
	for k := 1; k < len(in); k++ {
		if without[k] != 0 {
			ratio := withAbs[k] / without[k]
			require.InDelta(t, AttenuationFactor(k, 44100, 343, 1), ratio, 1e-9, "k=%d", k)
		}
	}
}

func TestApply_DesignFailureFailsWholeCall(t *testing.T) {
	// At 8 kHz the upper bands of the default 20 kHz range exceed Nyquist.
	bp := newTestBandpass(t, WithSampleRate(8000), WithDivisions(10))

	out, err := bp.Apply(testutil.Impulse(128, 0))
	require.ErrorIs(t, err, pass.ErrInvalidCutoff)
	assert.Nil(t, out)
	assert.Contains(t, err.Error(), "band 3")
	assert.Contains(t, err.Error(), "band 10")
	assert.NotContains(t, err.Error(), "band 1 ")
}

func TestApply_ZeroMinFrequencyFailsFirstBand(t *testing.T) {
	bp := newTestBandpass(t, WithMinFrequency(0), WithDivisions(4))

	_, err := bp.Apply(testutil.Impulse(128, 0))
	require.ErrorIs(t, err, pass.ErrInvalidCutoff)
	assert.Contains(t, err.Error(), "band 1")
}

func TestApply_MinAboveBandWidthFailsFirstBand(t *testing.T) {
	// 7900/97 Hz is narrower than the 100 Hz lower edge, so band 1 is
	// [100, 81.44] and cannot be designed.
	bp := newTestBandpass(t, WithMinFrequency(100), WithMaxFrequency(8000), WithDivisions(97))

	first := bp.Bands()[0]
	assert.Equal(t, 100.0, first.Low)
	assert.InDelta(t, 7900.0/97, first.High, 1e-9)

	out, err := bp.Apply(testutil.Impulse(64, 0))
	require.ErrorIs(t, err, pass.ErrInvalidCutoff)
	assert.Nil(t, out)
	assert.Contains(t, err.Error(), "band 1 (")
	assert.NotContains(t, err.Error(), "band 2 (")
}

func TestBandpass_Model(t *testing.T) {
	flat := air.Func(func(float64) air.Coefficients { return air.Coefficients{Alpha: 0.25, C: 340} })
	bp := newTestBandpass(t, WithModel(flat))
	assert.Equal(t, 0.25, bp.Model().Absorption(1000).Alpha)

	cfg := DefaultConfig()
	cfg.Air.TemperatureC = 10
	iso, ok := newTestBandpass(t, WithConfig(cfg)).Model().(*air.ISO9613)
	require.True(t, ok)
	assert.Equal(t, cfg.Air, iso.Conditions())
}

func TestBandResponse_InvalidIndex(t *testing.T) {
	bp := newTestBandpass(t, WithDivisions(4))

	_, err := bp.BandResponse(testutil.Impulse(16, 0), 5)
	assert.ErrorIs(t, err, bank.ErrInvalidIndex)
}

func TestApply_LogsEveryBandAtDebug(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	l.SetLevel(logrus.DebugLevel)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	bp, err := NewBandpass(WithDivisions(3), WithLogger(l))
	require.NoError(t, err)
	_, err = bp.Apply(testutil.Impulse(32, 0))
	require.NoError(t, err)

	assert.Equal(t, 3, strings.Count(buf.String(), "Processing band"))
	assert.Contains(t, buf.String(), "mean_hz=")
	assert.Contains(t, buf.String(), "alpha_db_per_m=")
}

func TestWithConfig_LaterOptionsOverride(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Divisions = 12
	cfg.SampleRate = 48000

	bp := newTestBandpass(t, WithConfig(cfg), WithDivisions(6))
	assert.Equal(t, 6, bp.Config().Divisions)
	assert.Equal(t, 48000.0, bp.Config().SampleRate)
}

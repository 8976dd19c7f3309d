package air

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestISO9613_ReferenceValues(t *testing.T) {
	// ISO 9613-1 Table 1, 20 °C, 50 %RH, 101.325 kPa (dB/km).
	tests := []struct {
		freq   float64
		dbPerM float64
		tol    float64
	}{
		{freq: 1000, dbPerM: 4.66e-3, tol: 0.05e-3},
		{freq: 4000, dbPerM: 29.7e-3, tol: 0.3e-3},
		{freq: 10000, dbPerM: 159e-3, tol: 2e-3},
	}

	m := Default()
	for _, tt := range tests {
		c := m.Absorption(tt.freq)
		assert.InDelta(t, tt.dbPerM, c.AlphaISO, tt.tol, "AlphaISO at %v Hz", tt.freq)
		assert.InDelta(t, tt.dbPerM, c.Alpha, tt.tol, "Alpha at %v Hz", tt.freq)
	}
}

func TestISO9613_AlphaIncreasesWithFrequency(t *testing.T) {
	m := Default()
	prev := 0.0
	for f := 50.0; f <= 20000; f *= 1.25 {
		c := m.Absorption(f)
		require.Greater(t, c.Alpha, prev, "f=%v", f)
		prev = c.Alpha
	}
}

func TestISO9613_SpeedOfSound(t *testing.T) {
	m := Default()
	c := m.Absorption(1000)

	assert.InDelta(t, 343.2, c.CISO, 1e-9)
	assert.InDelta(t, 343.9, c.C, 0.5)
	assert.Equal(t, c.C, m.Absorption(15000).C, "speed of sound is frequency independent")

	warm, err := NewISO9613(Conditions{TemperatureC: 30, RelativeHumidity: 50, PressureKPa: ReferencePressureKPa})
	require.NoError(t, err)
	assert.Greater(t, warm.Absorption(1000).C, c.C)
	assert.InDelta(t, 343.2*math.Sqrt((30+273.15)/T0), warm.Absorption(1000).CISO, 1e-9)
}

func TestISO9613_DryAirAbsorbsLessAtMidFrequencies(t *testing.T) {
	// Oxygen relaxation peaks in dry air near 1 kHz; at 10 kHz moderate
	// humidity absorbs less than very dry air.
	dry, err := NewISO9613(Conditions{TemperatureC: 20, RelativeHumidity: 10, PressureKPa: ReferencePressureKPa})
	require.NoError(t, err)

	assert.Greater(t, dry.Absorption(10000).Alpha, Default().Absorption(10000).Alpha)
}

func TestConditions_Validate(t *testing.T) {
	tests := []struct {
		name string
		cond Conditions
		want error
	}{
		{name: "default", cond: DefaultConditions()},
		{name: "belowAbsoluteZero", cond: Conditions{TemperatureC: -300, RelativeHumidity: 50, PressureKPa: 100}, want: ErrInvalidTemperature},
		{name: "negativeHumidity", cond: Conditions{TemperatureC: 20, RelativeHumidity: -1, PressureKPa: 100}, want: ErrInvalidHumidity},
		{name: "humidityAbove100", cond: Conditions{TemperatureC: 20, RelativeHumidity: 101, PressureKPa: 100}, want: ErrInvalidHumidity},
		{name: "zeroPressure", cond: Conditions{TemperatureC: 20, RelativeHumidity: 50}, want: ErrInvalidPressure},
		{name: "nanTemperature", cond: Conditions{TemperatureC: math.NaN(), RelativeHumidity: 50, PressureKPa: 100}, want: ErrInvalidTemperature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cond.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)

			_, err = NewISO9613(tt.cond)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestISO9613_ConcurrentUse(t *testing.T) {
	m := Default()
	want := m.Absorption(8000)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, m.Absorption(8000))
		}()
	}
	wg.Wait()
}

func TestFunc_AdaptsToModel(t *testing.T) {
	var m Model = Func(func(f float64) Coefficients {
		return Coefficients{Alpha: f / 1000, C: 340}
	})

	assert.Equal(t, Coefficients{Alpha: 2, C: 340}, m.Absorption(2000))
}

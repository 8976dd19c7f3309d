package pass

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-airabsorb/dsp/filter/biquad"
)

const (
	// DefaultDesignOrder is the prototype order used when a bandpass is
	// designed without an explicit order.
	DefaultDesignOrder = 4

	// DefaultBandOrder is the prototype order used when filtering the
	// individual bands of the air-absorption attenuator.
	DefaultBandOrder = 3
)

// Errors returned by the bandpass designer.
var (
	ErrInvalidOrder      = errors.New("pass: filter order must be positive")
	ErrInvalidSampleRate = errors.New("pass: sample rate must be positive")
	ErrInvalidCutoff     = errors.New("pass: cutoffs must satisfy 0 < low < high < nyquist")
	ErrUnstable          = errors.New("pass: designed filter is unstable")
)

// ButterworthBP designs a digital Butterworth bandpass between lowHz and
// highHz. order is the order of the lowpass prototype, so the result has
// 2*order poles arranged in order second-order sections.
//
// The overall gain is spread evenly over the sections; the passband peak at
// the geometric centre of the pre-warped edges is unity and both edges sit
// at -3 dB.
func ButterworthBP(lowHz, highHz float64, order int, sampleRate float64) ([]biquad.Coefficients, error) {
	if order < 1 {
		return nil, ErrInvalidOrder
	}
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, ErrInvalidSampleRate
	}

	nyquist := sampleRate / 2
	low := lowHz / nyquist
	high := highHz / nyquist
	if !(low > 0 && low < high && high < 1) {
		return nil, fmt.Errorf("%w: low=%g high=%g (normalised %g, %g)",
			ErrInvalidCutoff, lowHz, highHz, low, high)
	}

	wl := prewarp(lowHz, sampleRate)
	wh := prewarp(highHz, sampleRate)
	bw := wh - wl
	w0 := math.Sqrt(wl * wh)

	analog := lowpassToBandpass(butterworthPrototype(order), w0, bw)
	digital, correction := bilinear(analog, order, sampleRate)
	gain := math.Pow(bw, float64(order)) * correction

	sections, ok := groupSections(digital, order)
	if !ok || gain == 0 || math.IsNaN(gain) || math.IsInf(gain, 0) {
		return nil, fmt.Errorf("%w: low=%g high=%g order=%d", ErrUnstable, lowHz, highHz, order)
	}

	g := math.Pow(math.Abs(gain), 1/float64(order))
	for i := range sections {
		b0 := g
		if i == 0 && gain < 0 {
			b0 = -g
		}
		sections[i].B0 = b0
		sections[i].B1 = 0
		sections[i].B2 = -b0

		if !sections[i].Stable() {
			return nil, fmt.Errorf("%w: section %d of low=%g high=%g", ErrUnstable, i, lowHz, highHz)
		}
	}

	return sections, nil
}

// CenterFrequency returns the digital frequency (Hz) at which the bandpass
// designed by ButterworthBP has unity gain.
func CenterFrequency(lowHz, highHz, sampleRate float64) float64 {
	w0 := math.Sqrt(prewarp(lowHz, sampleRate) * prewarp(highHz, sampleRate))
	return sampleRate / math.Pi * math.Atan(w0/(2*sampleRate))
}

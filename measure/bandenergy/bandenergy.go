package bandenergy

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-airabsorb/dsp/core"
	"github.com/cwbudde/algo-airabsorb/dsp/filter/bank"
)

// Errors returned by the analyzer.
var (
	ErrEmptySignal       = errors.New("bandenergy: empty signal")
	ErrInvalidSampleRate = errors.New("bandenergy: sample rate must be positive")
	ErrLengthMismatch    = errors.New("bandenergy: input and output lengths differ")
)

// Analyzer computes band energies at a fixed sample rate.
type Analyzer struct {
	sampleRate float64
}

// NewAnalyzer creates an analyzer for signals sampled at sampleRate.
// An invalid rate is reported by the first measurement.
func NewAnalyzer(sampleRate float64) *Analyzer {
	return &Analyzer{sampleRate: sampleRate}
}

// SampleRate returns the configured sample rate.
func (a *Analyzer) SampleRate() float64 { return a.sampleRate }

// PowerSpectrum returns the one-sided energy spectrum of signal, bins 0 to
// fftSize/2, where fftSize is the next power of two >= len(signal).
// The bins sum to the energy of signal.
func (a *Analyzer) PowerSpectrum(signal []float64) ([]float64, error) {
	if err := a.check(signal); err != nil {
		return nil, err
	}

	fftSize := nextPowerOf2(len(signal))

	in := make([]complex128, fftSize)
	for i, v := range signal {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("bandenergy: fft plan: %w", err)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("bandenergy: fft: %w", err)
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for i := range bins {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}

	power := make([]float64, bins)
	vecmath.Power(power, re, im)

	// Fold the negative frequencies onto their positive twins.
	scale := 1 / float64(fftSize)
	for i := range power {
		if i == 0 || i == bins-1 {
			power[i] *= scale
		} else {
			power[i] *= 2 * scale
		}
	}

	return power, nil
}

// BinFrequency returns the centre frequency in Hz of bin i of a spectrum of
// the given bin count.
func (a *Analyzer) BinFrequency(i, bins int) float64 {
	if bins < 2 {
		return 0
	}
	return float64(i) * a.sampleRate / float64(2*(bins-1))
}

// Energies returns the energy of signal inside every band. A bin belongs to
// a band when Low <= f < High; the last band also takes a bin at exactly
// High. Bins outside all bands are ignored.
func (a *Analyzer) Energies(signal []float64, bands []bank.Band) ([]float64, error) {
	spectrum, err := a.PowerSpectrum(signal)
	if err != nil {
		return nil, err
	}
	return a.sumBands(spectrum, bands), nil
}

// LossDB returns 10*log10(E_output/E_input) per band. Negative values mean
// the band lost energy. A band empty in both signals reports 0 dB.
func (a *Analyzer) LossDB(input, output []float64, bands []bank.Band) ([]float64, error) {
	if len(input) != len(output) {
		return nil, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(input), len(output))
	}

	before, err := a.Energies(input, bands)
	if err != nil {
		return nil, err
	}
	after, err := a.Energies(output, bands)
	if err != nil {
		return nil, err
	}

	loss := make([]float64, len(bands))
	for i := range loss {
		switch {
		case before[i] == 0 && after[i] == 0:
			loss[i] = 0
		case before[i] == 0:
			loss[i] = math.Inf(1)
		default:
			loss[i] = core.LinearPowerToDB(after[i] / before[i])
		}
	}
	return loss, nil
}

func (a *Analyzer) sumBands(spectrum []float64, bands []bank.Band) []float64 {
	energies := make([]float64, len(bands))
	for j, b := range bands {
		last := j == len(bands)-1
		for i, p := range spectrum {
			f := a.BinFrequency(i, len(spectrum))
			if f >= b.Low && (f < b.High || (last && f == b.High)) {
				energies[j] += p
			}
		}
	}
	return energies
}

func (a *Analyzer) check(signal []float64) error {
	if !(a.sampleRate > 0) || math.IsInf(a.sampleRate, 0) {
		return fmt.Errorf("%w: %g", ErrInvalidSampleRate, a.sampleRate)
	}
	if len(signal) == 0 {
		return ErrEmptySignal
	}
	return nil
}

func nextPowerOf2(n int) int {
	p := 2
	for p < n {
		p <<= 1
	}
	return p
}

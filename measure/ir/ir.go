package ir

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-airabsorb/dsp/core"
)

// Errors returned by the analyzer.
var (
	ErrEmptyIR           = errors.New("ir: impulse response is empty")
	ErrInvalidSampleRate = errors.New("ir: sample rate must be positive")
	ErrSilentIR          = errors.New("ir: impulse response has no energy")
	ErrNoDecay           = errors.New("ir: insufficient decay for reverberation time")
)

// schroederFloorDB is reported once the remaining energy is exactly zero.
const schroederFloorDB = -200.0

// Decay holds the decay metrics of one impulse response. Reverberation
// times are in seconds and 0 when the curve never reaches the fit range.
type Decay struct {
	PeakIndex  int     // sample index of the absolute maximum
	Energy     float64 // sum of squared samples
	EDT        float64
	T20        float64
	T30        float64
	CentreTime float64 // seconds after the peak
}

// RT returns T30, or T20 when the response does not decay by 35 dB.
func (d Decay) RT() (float64, error) {
	if d.T30 > 0 {
		return d.T30, nil
	}
	if d.T20 > 0 {
		return d.T20, nil
	}
	return 0, ErrNoDecay
}

// Change compares two decays of the same response.
type Change struct {
	Before   Decay
	After    Decay
	EnergyDB float64 // 10*log10(After.Energy / Before.Energy)
}

// Analyzer computes decay metrics at a fixed sample rate.
type Analyzer struct {
	SampleRate float64
}

// NewAnalyzer creates an analyzer for responses sampled at sampleRate.
func NewAnalyzer(sampleRate float64) *Analyzer {
	return &Analyzer{SampleRate: sampleRate}
}

// Decay computes the metrics of ir. Everything except PeakIndex and Energy
// is measured from the peak onwards.
func (a *Analyzer) Decay(ir []float64) (Decay, error) {
	if err := a.check(ir); err != nil {
		return Decay{}, err
	}

	peak := peakIndex(ir)
	tail := ir[peak:]

	curve := schroeder(tail)
	if curve == nil {
		return Decay{}, ErrSilentIR
	}

	return Decay{
		PeakIndex:  peak,
		Energy:     energy(ir),
		EDT:        a.fitRT(curve, 0, -10),
		T20:        a.fitRT(curve, -5, -25),
		T30:        a.fitRT(curve, -5, -35),
		CentreTime: a.centreTime(tail),
	}, nil
}

// Compare measures before and after and reports the energy change in dB.
func (a *Analyzer) Compare(before, after []float64) (Change, error) {
	b, err := a.Decay(before)
	if err != nil {
		return Change{}, err
	}
	af, err := a.Decay(after)
	if err != nil {
		return Change{}, err
	}

	return Change{
		Before:   b,
		After:    af,
		EnergyDB: core.LinearPowerToDB(af.Energy / b.Energy),
	}, nil
}

// Schroeder returns the backward-integrated energy of ir in dB relative to
// its total energy:
//
//	S[n] = 10*log10(sum(h[k]^2, k >= n) / sum(h[k]^2))
func (a *Analyzer) Schroeder(ir []float64) ([]float64, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyIR
	}

	curve := schroeder(ir)
	if curve == nil {
		return nil, ErrSilentIR
	}
	return curve, nil
}

// CentreTime returns the energy centroid of ir in seconds.
func (a *Analyzer) CentreTime(ir []float64) (float64, error) {
	if err := a.check(ir); err != nil {
		return 0, err
	}
	if energy(ir) == 0 {
		return 0, ErrSilentIR
	}
	return a.centreTime(ir), nil
}

func (a *Analyzer) check(ir []float64) error {
	if len(ir) == 0 {
		return ErrEmptyIR
	}
	if !(a.SampleRate > 0) {
		return ErrInvalidSampleRate
	}
	return nil
}

// schroeder returns nil for a silent response.
func schroeder(ir []float64) []float64 {
	curve := make([]float64, len(ir))

	var remaining float64
	for i := len(ir) - 1; i >= 0; i-- {
		remaining += ir[i] * ir[i]
		curve[i] = remaining
	}

	total := curve[0]
	if total <= 0 {
		return nil
	}

	for i, e := range curve {
		if e <= 0 {
			curve[i] = schroederFloorDB
			continue
		}
		curve[i] = 10 * math.Log10(e/total)
	}
	return curve
}

// fitRT fits a line to curve between the first sample at or below upperDB
// and the first following sample at or below lowerDB, and extrapolates the
// slope to 60 dB.
func (a *Analyzer) fitRT(curve []float64, upperDB, lowerDB float64) float64 {
	start, end := -1, -1
	for i, v := range curve {
		if start < 0 && v <= upperDB {
			start = i
		}
		if start >= 0 && v <= lowerDB {
			end = i
			break
		}
	}
	if start < 0 || end <= start {
		return 0
	}

	slope := leastSquaresSlope(curve[start : end+1])
	if !(slope < 0) {
		return 0
	}

	return -60 / (slope * a.SampleRate)
}

// leastSquaresSlope returns the slope per sample of y over x = 0, 1, ...
func leastSquaresSlope(y []float64) float64 {
	n := float64(len(y))
	if n < 2 {
		return 0
	}

	var sx, sy, sxx, sxy float64
	for i, v := range y {
		x := float64(i)
		sx += x
		sy += v
		sxx += x * x
		sxy += x * v
	}

	den := n*sxx - sx*sx
	if den == 0 {
		return 0
	}
	return (n*sxy - sx*sy) / den
}

func (a *Analyzer) centreTime(ir []float64) float64 {
	var weighted, total float64
	for i, v := range ir {
		e := v * v
		weighted += float64(i) * e
		total += e
	}
	if total == 0 {
		return 0
	}
	return weighted / total / a.SampleRate
}

func peakIndex(ir []float64) int {
	idx, peak := 0, 0.0
	for i, v := range ir {
		if av := math.Abs(v); av > peak {
			idx, peak = i, av
		}
	}
	return idx
}

func energy(ir []float64) float64 {
	var e float64
	for _, v := range ir {
		e += v * v
	}
	return e
}

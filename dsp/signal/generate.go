// Package signal synthesises deterministic impulse responses and test
// signals.
package signal

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-airabsorb/dsp/core"
)

// Errors returned by the generator.
var (
	ErrInvalidLength     = errors.New("signal: length must be positive")
	ErrInvalidAmplitude  = errors.New("signal: amplitude must be >= 0")
	ErrInvalidSampleRate = errors.New("signal: sample rate must be positive")
	ErrInvalidRT60       = errors.New("signal: reverberation time must be positive")
	ErrInvalidPosition   = errors.New("signal: impulse position out of range")
)

// Generator creates signals at a fixed sample rate. Noise is seeded, so two
// generators with the same seed produce the same samples.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the random seed used for noise.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a generator from processor options and
// generator-specific options.
func NewGenerator(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// SampleRate returns the generator sample rate in Hz.
func (g *Generator) SampleRate() float64 { return g.cfg.SampleRate }

// Seed returns the noise seed.
func (g *Generator) Seed() int64 { return g.seed }

// Impulse returns samples zeros with a unit sample at position.
func (g *Generator) Impulse(samples, position int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, samples)
	}
	if position < 0 || position >= samples {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidPosition, position, samples)
	}

	out := make([]float64, samples)
	out[position] = 1
	return out, nil
}

// WhiteNoise returns uniform noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, samples)
	}
	if !(amplitude >= 0) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidAmplitude, amplitude)
	}

	rng := rand.New(rand.NewSource(g.seed))
	out := make([]float64, samples)
	for i := range out {
		out[i] = amplitude * (2*rng.Float64() - 1)
	}
	return out, nil
}

// DecayingNoise returns a synthetic room response: white noise shaped by an
// exponential envelope that falls by 60 dB after rt60 seconds. The first
// sample is set to amplitude as the direct sound.
func (g *Generator) DecayingNoise(rt60, amplitude float64, samples int) ([]float64, error) {
	if !(g.cfg.SampleRate > 0) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidSampleRate, g.cfg.SampleRate)
	}
	if !(rt60 > 0) || math.IsInf(rt60, 0) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidRT60, rt60)
	}

	out, err := g.WhiteNoise(amplitude, samples)
	if err != nil {
		return nil, err
	}

	// ln(1000) per rt60 in amplitude is 60 dB in energy.
	rate := math.Log(1000) / (rt60 * g.cfg.SampleRate)
	for i := range out {
		out[i] *= math.Exp(-rate * float64(i))
	}
	out[0] = amplitude
	return out, nil
}

// Normalize returns a copy of data scaled so its largest absolute value is
// targetPeak. Silent input stays silent.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: 0", ErrInvalidLength)
	}
	if !(targetPeak >= 0) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidAmplitude, targetPeak)
	}

	peak := 0.0
	for _, v := range data {
		peak = math.Max(peak, math.Abs(v))
	}

	out := make([]float64, len(data))
	if peak == 0 {
		return out, nil
	}

	scale := targetPeak / peak
	for i, v := range data {
		out[i] = scale * v
	}
	return out, nil
}

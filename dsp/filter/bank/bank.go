package bank

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-airabsorb/dsp/filter/biquad"
	"github.com/cwbudde/algo-airabsorb/dsp/filter/design/pass"
)

// Errors returned by the partitioner.
var (
	ErrInvalidDivisions = errors.New("bank: divisions must be at least 1")
	ErrInvalidIndex     = errors.New("bank: band index out of range")
	ErrInvalidRange     = errors.New("bank: frequency range must satisfy 0 <= min < max")
)

// Band is one contiguous frequency interval of a linear partition.
type Band struct {
	Index int     // 1-based position in the partition
	Low   float64 // lower edge in Hz
	High  float64 // upper edge in Hz
	Mean  float64 // arithmetic mean of Low and High in Hz
}

// Width returns High - Low.
func (b Band) Width() float64 { return b.High - b.Low }

// LinearBand returns band index (1-based) of a partition of [minHz, maxHz]
// into divisions bands of equal width. Band 1 starts at minHz.
func LinearBand(minHz, maxHz float64, divisions, index int) (Band, error) {
	if divisions < 1 {
		return Band{}, ErrInvalidDivisions
	}
	if !(minHz >= 0 && maxHz > minHz) {
		return Band{}, fmt.Errorf("%w: min=%g max=%g", ErrInvalidRange, minHz, maxHz)
	}
	if index < 1 || index > divisions {
		return Band{}, fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidIndex, index, divisions)
	}

	width := (maxHz - minHz) / float64(divisions)
	high := width * float64(index)

	low := minHz
	if index > 1 {
		low = width * float64(index-1)
	}

	return Band{
		Index: index,
		Low:   low,
		High:  high,
		Mean:  (high + low) / 2,
	}, nil
}

// Linear returns all bands of the partition, ordered from low to high.
func Linear(minHz, maxHz float64, divisions int) ([]Band, error) {
	if divisions < 1 {
		return nil, ErrInvalidDivisions
	}

	bands := make([]Band, divisions)
	for j := 1; j <= divisions; j++ {
		b, err := LinearBand(minHz, maxHz, divisions, j)
		if err != nil {
			return nil, err
		}
		bands[j-1] = b
	}
	return bands, nil
}

// Filter pairs a band with its bandpass cascade.
type Filter struct {
	Band
	BP *biquad.Chain
}

// NewFilter designs the Butterworth bandpass of prototype order for band.
// Design errors from pass.ButterworthBP are returned unwrapped.
func NewFilter(band Band, sampleRate float64, order int) (Filter, error) {
	sections, err := pass.ButterworthBP(band.Low, band.High, order, sampleRate)
	if err != nil {
		return Filter{}, err
	}
	return Filter{Band: band, BP: biquad.NewChain(sections)}, nil
}

// MagnitudeDB returns the bandpass magnitude response in dB at freqHz.
func (f *Filter) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return f.BP.MagnitudeDB(freqHz, sampleRate)
}

// Bank is a linear partition with one Butterworth bandpass per band.
type Bank struct {
	filters    []Filter
	sampleRate float64
	order      int
}

type bankConfig struct {
	order int
}

func defaultBankConfig() bankConfig {
	return bankConfig{order: pass.DefaultBandOrder}
}

// Option configures a Bank.
type Option func(*bankConfig)

// WithOrder sets the Butterworth prototype order of every bandpass.
// Non-positive values are ignored; the default is pass.DefaultBandOrder.
func WithOrder(n int) Option {
	return func(cfg *bankConfig) {
		if n > 0 {
			cfg.order = n
		}
	}
}

// NewLinear builds a bank over the linear partition of [minHz, maxHz].
// It fails if any band's filter cannot be designed at sampleRate.
func NewLinear(minHz, maxHz float64, divisions int, sampleRate float64, opts ...Option) (*Bank, error) {
	cfg := defaultBankConfig()
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}

	bands, err := Linear(minHz, maxHz, divisions)
	if err != nil {
		return nil, err
	}

	filters := make([]Filter, len(bands))
	for i, b := range bands {
		f, err := NewFilter(b, sampleRate, cfg.order)
		if err != nil {
			return nil, fmt.Errorf("bank: band %d: %w", b.Index, err)
		}
		filters[i] = f
	}

	return &Bank{
		filters:    filters,
		sampleRate: sampleRate,
		order:      cfg.order,
	}, nil
}

// Filters returns all band filters, ordered low to high frequency.
func (b *Bank) Filters() []Filter { return b.filters }

// Bands returns the band edges, ordered low to high frequency.
func (b *Bank) Bands() []Band {
	out := make([]Band, len(b.filters))
	for i := range b.filters {
		out[i] = b.filters[i].Band
	}
	return out
}

// NumBands returns the number of bands.
func (b *Bank) NumBands() int { return len(b.filters) }

// SampleRate returns the sample rate the bank was built for.
func (b *Bank) SampleRate() float64 { return b.sampleRate }

// Order returns the Butterworth prototype order of each bandpass.
func (b *Bank) Order() int { return b.order }

// ProcessBlock filters input through every band and returns the per-band
// outputs: result[band][sample]. input is not modified.
func (b *Bank) ProcessBlock(input []float64) [][]float64 {
	result := make([][]float64, len(b.filters))
	for i := range b.filters {
		buf := make([]float64, len(input))
		b.filters[i].BP.ProcessBlockTo(buf, input)
		result[i] = buf
	}
	return result
}

// Reset clears all filter states.
func (b *Bank) Reset() {
	for i := range b.filters {
		b.filters[i].BP.Reset()
	}
}

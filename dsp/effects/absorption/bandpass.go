package absorption

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cwbudde/algo-vecmath"
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-airabsorb/acoustics/air"
	"github.com/cwbudde/algo-airabsorb/dsp/filter/bank"
)

// Name is the strategy name reported by Bandpass.
const Name = "Bandpass"

var _ FilterStrategy = (*Bandpass)(nil)

// Bandpass applies air absorption band by band. It holds no per-call state;
// Apply may be called concurrently.
type Bandpass struct {
	cfg    Config
	bands  []bank.Band
	model  air.Model
	logger logrus.FieldLogger
}

// NewBandpass creates the strategy with DefaultConfig and optional
// overrides.
func NewBandpass(opts ...Option) (*Bandpass, error) {
	bc := bandpassConfig{Config: DefaultConfig()}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&bc); err != nil {
			return nil, err
		}
	}

	if err := bc.Validate(); err != nil {
		return nil, err
	}

	model := bc.model
	if model == nil {
		m, err := air.NewISO9613(bc.Air)
		if err != nil {
			return nil, fmt.Errorf("absorption: %w", err)
		}
		model = m
	}

	logger := bc.logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	bands, err := bank.Linear(bc.MinFrequency, bc.MaxFrequency, bc.Divisions)
	if err != nil {
		return nil, fmt.Errorf("absorption: %w", err)
	}

	return &Bandpass{
		cfg:    bc.Config,
		bands:  bands,
		model:  model,
		logger: logger,
	}, nil
}

// Name implements FilterStrategy.
func (b *Bandpass) Name() string { return Name }

// Config returns the parameters the strategy was built with.
func (b *Bandpass) Config() Config { return b.cfg }

// Model returns the air-absorption model Apply evaluates at each band mean.
func (b *Bandpass) Model() air.Model { return b.model }

// Bands returns a copy of the band partition used by Apply.
func (b *Bandpass) Bands() []bank.Band {
	return append([]bank.Band(nil), b.bands...)
}

// Apply implements FilterStrategy. It returns a new slice of len(signal)
// holding the sum of all filtered and attenuated bands. If any band fails,
// the errors of all failed bands are returned and no output is produced.
func (b *Bandpass) Apply(signal []float64) ([]float64, error) {
	combined := make([]float64, len(signal))
	if len(signal) == 0 {
		return combined, nil
	}

	b.logger.WithFields(logrus.Fields{
		"strategy":        Name,
		"samples":         len(signal),
		"divisions":       b.cfg.Divisions,
		"frequency_range": b.cfg.MaxFrequency - b.cfg.MinFrequency,
	}).Debug("Applying air absorption")

	parts, err := b.processBands(signal)
	if err != nil {
		return nil, err
	}

	for _, part := range parts {
		vecmath.AddBlockInPlace(combined, part)
	}

	return combined, nil
}

// processBands runs BandResponse for every band, at most Concurrency at a
// time, and waits for all of them before returning.
func (b *Bandpass) processBands(signal []float64) ([][]float64, error) {
	n := b.cfg.Divisions
	workers := b.cfg.Concurrency
	if workers <= 0 || workers > n {
		workers = n
	}

	parts := make([][]float64, n)
	errs := make([]error, n)
	sem := make(chan struct{}, workers)

	var wg sync.WaitGroup
	for j := 1; j <= n; j++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			parts[j-1], errs[j-1] = b.BandResponse(signal, j)
		}()
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return parts, nil
}

// BandResponse returns the contribution of band index (1-based) to Apply:
// signal filtered to the band and attenuated with the absorption at the
// band's mean frequency.
func (b *Bandpass) BandResponse(signal []float64, index int) ([]float64, error) {
	band, err := bank.LinearBand(b.cfg.MinFrequency, b.cfg.MaxFrequency, b.cfg.Divisions, index)
	if err != nil {
		return nil, fmt.Errorf("absorption: band %d: %w", index, err)
	}

	coeffs := b.model.Absorption(band.Mean)

	b.logger.WithFields(logrus.Fields{
		"band":           band.Index,
		"min_hz":         band.Low,
		"max_hz":         band.High,
		"mean_hz":        band.Mean,
		"alpha_db_per_m": coeffs.Alpha,
		"c_m_per_s":      coeffs.C,
	}).Debug("Processing band")

	filtered, err := filterBand(signal, band, b.cfg.SampleRate, b.cfg.Order)
	if err != nil {
		return nil, fmt.Errorf("absorption: band %d (%g-%g Hz): %w", band.Index, band.Low, band.High, err)
	}

	if len(filtered) > 0 {
		vecmath.MulBlockInPlace(filtered, AttenuationCurve(len(filtered), b.cfg.SampleRate, coeffs.C, coeffs.Alpha))
	}

	return filtered, nil
}

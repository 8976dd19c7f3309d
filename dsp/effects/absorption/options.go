package absorption

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-airabsorb/acoustics/air"
	"github.com/cwbudde/algo-airabsorb/dsp/core"
	"github.com/cwbudde/algo-airabsorb/dsp/filter/design/pass"
)

const (
	defaultMaxFrequency = 20000.0
	defaultMinFrequency = 1.0
	defaultDivisions    = 50
)

// Config holds the Bandpass parameters. The zero value is not usable; start
// from DefaultConfig.
type Config struct {
	MaxFrequency float64        `yaml:"max_frequency"`
	MinFrequency float64        `yaml:"min_frequency"`
	Divisions    int            `yaml:"divisions"`
	SampleRate   float64        `yaml:"sample_rate"`
	Order        int            `yaml:"order"`
	Concurrency  int            `yaml:"concurrency"` // 0 runs every band at once
	Air          air.Conditions `yaml:"air"`
}

// DefaultConfig returns 50 bands between 1 Hz and 20 kHz at 44.1 kHz,
// third-order band filters and the default atmosphere.
func DefaultConfig() Config {
	return Config{
		MaxFrequency: defaultMaxFrequency,
		MinFrequency: defaultMinFrequency,
		Divisions:    defaultDivisions,
		SampleRate:   core.DefaultSampleRate,
		Order:        pass.DefaultBandOrder,
		Air:          air.DefaultConditions(),
	}
}

// Validate checks the parameters that do not depend on filter design.
// Band edges beyond Nyquist are reported by Apply when the band is designed.
func (c Config) Validate() error {
	if !finitePositive(c.SampleRate) {
		return fmt.Errorf("absorption: sample rate must be > 0 and finite: %f", c.SampleRate)
	}
	if !(c.MinFrequency >= 0) || math.IsInf(c.MinFrequency, 0) {
		return fmt.Errorf("absorption: min frequency must be >= 0 and finite: %f", c.MinFrequency)
	}
	if !(c.MaxFrequency > c.MinFrequency) || math.IsInf(c.MaxFrequency, 0) {
		return fmt.Errorf("absorption: max frequency must exceed min frequency: %f <= %f",
			c.MaxFrequency, c.MinFrequency)
	}
	if c.Divisions < 1 {
		return fmt.Errorf("absorption: divisions must be >= 1: %d", c.Divisions)
	}
	if c.Order < 1 {
		return fmt.Errorf("absorption: filter order must be >= 1: %d", c.Order)
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("absorption: concurrency must be >= 0: %d", c.Concurrency)
	}
	return nil
}

type bandpassConfig struct {
	Config

	model  air.Model
	logger logrus.FieldLogger
}

// Option configures a Bandpass.
type Option func(*bandpassConfig) error

// WithConfig replaces all numeric parameters at once, e.g. with values
// loaded from a file. Later options still override individual fields.
func WithConfig(cfg Config) Option {
	return func(bc *bandpassConfig) error {
		bc.Config = cfg
		return nil
	}
}

// WithMaxFrequency sets the upper end of the frequency range in Hz.
func WithMaxFrequency(hz float64) Option {
	return func(bc *bandpassConfig) error {
		if !finitePositive(hz) {
			return fmt.Errorf("absorption: max frequency must be > 0 and finite: %f", hz)
		}
		bc.MaxFrequency = hz
		return nil
	}
}

// WithMinFrequency sets the lower edge of band 1 in Hz.
func WithMinFrequency(hz float64) Option {
	return func(bc *bandpassConfig) error {
		if !(hz >= 0) || math.IsInf(hz, 0) {
			return fmt.Errorf("absorption: min frequency must be >= 0 and finite: %f", hz)
		}
		bc.MinFrequency = hz
		return nil
	}
}

// WithDivisions sets the number of bands.
func WithDivisions(n int) Option {
	return func(bc *bandpassConfig) error {
		if n < 1 {
			return fmt.Errorf("absorption: divisions must be >= 1: %d", n)
		}
		bc.Divisions = n
		return nil
	}
}

// WithSampleRate sets the sample rate of the signals passed to Apply.
func WithSampleRate(fs float64) Option {
	return func(bc *bandpassConfig) error {
		if !finitePositive(fs) {
			return fmt.Errorf("absorption: sample rate must be > 0 and finite: %f", fs)
		}
		bc.SampleRate = fs
		return nil
	}
}

// WithOrder sets the Butterworth prototype order of the band filters.
func WithOrder(order int) Option {
	return func(bc *bandpassConfig) error {
		if order < 1 {
			return fmt.Errorf("absorption: filter order must be >= 1: %d", order)
		}
		bc.Order = order
		return nil
	}
}

// WithConcurrency bounds how many bands are processed at the same time.
// 1 processes the bands one after another.
func WithConcurrency(n int) Option {
	return func(bc *bandpassConfig) error {
		if n < 1 {
			return fmt.Errorf("absorption: concurrency must be >= 1: %d", n)
		}
		bc.Concurrency = n
		return nil
	}
}

// WithModel sets the air-absorption model. It takes precedence over the
// conditions in Config.Air.
func WithModel(m air.Model) Option {
	return func(bc *bandpassConfig) error {
		if m == nil {
			return fmt.Errorf("absorption: air model must not be nil")
		}
		bc.model = m
		return nil
	}
}

// WithLogger sets the logger for per-band diagnostics. Band details are
// logged at debug level.
func WithLogger(l logrus.FieldLogger) Option {
	return func(bc *bandpassConfig) error {
		if l == nil {
			return fmt.Errorf("absorption: logger must not be nil")
		}
		bc.logger = l
		return nil
	}
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

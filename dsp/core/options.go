package core

// DefaultSampleRate is the sample rate assumed when none is configured.
const DefaultSampleRate = 44100

// ProcessorConfig defines common DSP processing settings.
type ProcessorConfig struct {
	SampleRate float64
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns the defaults used across the module.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{SampleRate: DefaultSampleRate}
}

// WithSampleRate sets the processing sample rate. Non-positive values are
// ignored.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

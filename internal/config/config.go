// Package config loads Bandpass parameters from YAML files and command-line
// flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-airabsorb/dsp/effects/absorption"
)

// Load reads a YAML file. Keys missing from the file keep their
// absorption.DefaultConfig values.
func Load(path string) (absorption.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return absorption.Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return absorption.Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (absorption.Config, error) {
	cfg := absorption.DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return absorption.Config{}, fmt.Errorf("parse yaml: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return absorption.Config{}, err
	}
	return cfg, nil
}

// Validate checks the band parameters and the atmosphere.
func Validate(cfg absorption.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	return cfg.Air.Validate()
}

// Flags holds command-line overrides for a Config.
type Flags struct {
	fs     *pflag.FlagSet
	values absorption.Config
}

// RegisterFlags adds one flag per Config field to fs. Flag defaults show
// absorption.DefaultConfig.
func RegisterFlags(fs *pflag.FlagSet) *Flags {
	d := absorption.DefaultConfig()
	f := &Flags{fs: fs}

	fs.Float64Var(&f.values.MaxFrequency, "max-frequency", d.MaxFrequency, "upper end of the frequency range in Hz")
	fs.Float64Var(&f.values.MinFrequency, "min-frequency", d.MinFrequency, "lower edge of the first band in Hz")
	fs.IntVar(&f.values.Divisions, "divisions", d.Divisions, "number of linear bands")
	fs.Float64Var(&f.values.SampleRate, "sample-rate", d.SampleRate, "sample rate in Hz")
	fs.IntVar(&f.values.Order, "order", d.Order, "Butterworth prototype order per band")
	fs.IntVar(&f.values.Concurrency, "concurrency", d.Concurrency, "bands processed at once (0 = all)")
	fs.Float64Var(&f.values.Air.TemperatureC, "temperature", d.Air.TemperatureC, "air temperature in °C")
	fs.Float64Var(&f.values.Air.RelativeHumidity, "humidity", d.Air.RelativeHumidity, "relative humidity in %")
	fs.Float64Var(&f.values.Air.PressureKPa, "pressure", d.Air.PressureKPa, "ambient pressure in kPa")

	return f
}

// Apply copies every flag that was set on the command line into cfg.
func (f *Flags) Apply(cfg *absorption.Config) {
	set := func(name string, apply func()) {
		if f.fs.Changed(name) {
			apply()
		}
	}

	set("max-frequency", func() { cfg.MaxFrequency = f.values.MaxFrequency })
	set("min-frequency", func() { cfg.MinFrequency = f.values.MinFrequency })
	set("divisions", func() { cfg.Divisions = f.values.Divisions })
	set("sample-rate", func() { cfg.SampleRate = f.values.SampleRate })
	set("order", func() { cfg.Order = f.values.Order })
	set("concurrency", func() { cfg.Concurrency = f.values.Concurrency })
	set("temperature", func() { cfg.Air.TemperatureC = f.values.Air.TemperatureC })
	set("humidity", func() { cfg.Air.RelativeHumidity = f.values.Air.RelativeHumidity })
	set("pressure", func() { cfg.Air.PressureKPa = f.values.Air.PressureKPa })
}

// Resolve loads path (or the defaults when path is empty), applies the flag
// overrides and validates the result.
func (f *Flags) Resolve(path string) (absorption.Config, error) {
	cfg := absorption.DefaultConfig()
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return absorption.Config{}, err
		}
		cfg = loaded
	}

	f.Apply(&cfg)
	if err := Validate(cfg); err != nil {
		return absorption.Config{}, err
	}
	return cfg, nil
}

package air

import (
	"errors"
	"fmt"
)

// Physical constants.
const (
	// T0 is the ISO 9613-1 reference air temperature (20 °C) in kelvin.
	T0 = 293.15
	// T01 is the triple-point isotherm temperature in kelvin.
	T01 = 273.16
	// ReferencePressureKPa is the reference ambient pressure.
	ReferencePressureKPa = 101.325

	celsiusOffset = 273.15
	gasConstant   = 8.314462618 // J/(mol K)
	molarMassDry  = 0.0289644   // kg/mol
	molarMassH2O  = 0.01801528  // kg/mol
	isoSpeedAtT0  = 343.2       // m/s
)

// Errors returned for invalid conditions.
var (
	ErrInvalidTemperature = errors.New("air: temperature must be above absolute zero")
	ErrInvalidHumidity    = errors.New("air: relative humidity must be within [0, 100] %")
	ErrInvalidPressure    = errors.New("air: pressure must be positive")
)

// Coefficients are the air-absorption quantities at one frequency.
type Coefficients struct {
	Alpha    float64 // absorption in dB/m
	AlphaISO float64 // absorption in dB/m, ISO 9613-1 saturation-pressure approximation
	C        float64 // speed of sound in m/s for humid air
	CISO     float64 // speed of sound in m/s, ISO 9613-1 temperature scaling
}

// Model returns the absorption coefficients for a frequency in Hz.
// Implementations must be pure and safe for concurrent use.
type Model interface {
	Absorption(frequencyHz float64) Coefficients
}

// Func adapts a plain function to a Model.
type Func func(frequencyHz float64) Coefficients

// Absorption calls f.
func (f Func) Absorption(frequencyHz float64) Coefficients { return f(frequencyHz) }

// Conditions describe the atmosphere the sound travels through.
type Conditions struct {
	TemperatureC     float64 `yaml:"temperature_c"`
	RelativeHumidity float64 `yaml:"relative_humidity"` // percent
	PressureKPa      float64 `yaml:"pressure_kpa"`
}

// DefaultConditions returns 20 °C, 50 %RH at standard pressure.
func DefaultConditions() Conditions {
	return Conditions{
		TemperatureC:     20,
		RelativeHumidity: 50,
		PressureKPa:      ReferencePressureKPa,
	}
}

// Validate reports whether the conditions are physically meaningful.
func (c Conditions) Validate() error {
	if !(c.TemperatureC > -celsiusOffset) {
		return fmt.Errorf("%w: %g °C", ErrInvalidTemperature, c.TemperatureC)
	}
	if !(c.RelativeHumidity >= 0 && c.RelativeHumidity <= 100) {
		return fmt.Errorf("%w: %g", ErrInvalidHumidity, c.RelativeHumidity)
	}
	if !(c.PressureKPa > 0) {
		return fmt.Errorf("%w: %g kPa", ErrInvalidPressure, c.PressureKPa)
	}
	return nil
}

// Kelvin returns the temperature in kelvin.
func (c Conditions) Kelvin() float64 { return c.TemperatureC + celsiusOffset }

package air

import "math"

// ISO9613 evaluates ISO 9613-1 absorption for fixed conditions. Everything
// that does not depend on frequency is computed once in NewISO9613.
type ISO9613 struct {
	cond Conditions

	exact relaxation
	iso   relaxation

	c    float64
	cISO float64
}

// relaxation holds the frequency-independent terms of the absorption
// formula for one molar water-vapour concentration.
type relaxation struct {
	frO, frN  float64
	classical float64
	oxygen    float64
	nitrogen  float64
}

// NewISO9613 returns a model for the given conditions.
func NewISO9613(cond Conditions) (*ISO9613, error) {
	if err := cond.Validate(); err != nil {
		return nil, err
	}

	T := cond.Kelvin()
	hISO := molarConcentration(cond, isoSaturationRatio(T))
	hExact := molarConcentration(cond, cipmSaturationPressure(T)/(1000*ReferencePressureKPa))

	return &ISO9613{
		cond:  cond,
		exact: newRelaxation(cond, hExact),
		iso:   newRelaxation(cond, hISO),
		c:     humidSpeedOfSound(T, hExact/100),
		cISO:  isoSpeedAtT0 * math.Sqrt(T/T0),
	}, nil
}

// Default returns the model for DefaultConditions.
func Default() *ISO9613 {
	m, err := NewISO9613(DefaultConditions())
	if err != nil {
		panic(err) // default conditions are valid
	}
	return m
}

// Conditions returns the atmosphere the model was built for.
func (m *ISO9613) Conditions() Conditions { return m.cond }

// Absorption implements Model.
func (m *ISO9613) Absorption(frequencyHz float64) Coefficients {
	return Coefficients{
		Alpha:    m.exact.alpha(frequencyHz),
		AlphaISO: m.iso.alpha(frequencyHz),
		C:        m.c,
		CISO:     m.cISO,
	}
}

func newRelaxation(cond Conditions, h float64) relaxation {
	T := cond.Kelvin()
	paRel := cond.PressureKPa / ReferencePressureKPa
	tRel := T / T0

	return relaxation{
		frO:       paRel * (24 + 4.04e4*h*(0.02+h)/(0.391+h)),
		frN:       paRel * math.Pow(tRel, -0.5) * (9 + 280*h*math.Exp(-4.170*(math.Pow(tRel, -1.0/3)-1))),
		classical: 1.84e-11 / paRel * math.Sqrt(tRel),
		oxygen:    math.Pow(tRel, -2.5) * 0.01275 * math.Exp(-2239.1/T),
		nitrogen:  math.Pow(tRel, -2.5) * 0.1068 * math.Exp(-3352.0/T),
	}
}

// alpha returns the absorption coefficient in dB/m.
func (r relaxation) alpha(f float64) float64 {
	f2 := f * f
	return 8.686 * f2 * (r.classical +
		r.oxygen/(r.frO+f2/r.frO) +
		r.nitrogen/(r.frN+f2/r.frN))
}

// molarConcentration returns h in percent from the relative humidity and
// the saturation vapour pressure relative to the reference pressure.
func molarConcentration(cond Conditions, psatRel float64) float64 {
	return cond.RelativeHumidity * psatRel / (cond.PressureKPa / ReferencePressureKPa)
}

// isoSaturationRatio is the ISO 9613-1 approximation of psat/pr.
func isoSaturationRatio(T float64) float64 {
	return math.Pow(10, -6.8346*math.Pow(T01/T, 1.261)+4.6151)
}

// cipmSaturationPressure is the CIPM-2007 saturation vapour pressure in Pa.
func cipmSaturationPressure(T float64) float64 {
	return math.Exp(1.2378847e-5*T*T - 1.9121316e-2*T + 33.93711047 - 6.3431645e3/T)
}

// humidSpeedOfSound treats humid air as an ideal mixture of a diatomic gas
// and water vapour with mole fraction x.
func humidSpeedOfSound(T, x float64) float64 {
	gamma := (7 + x) / (5 + x)
	molar := molarMassDry*(1-x) + molarMassH2O*x
	return math.Sqrt(gamma * gasConstant * T / molar)
}

// Package air computes atmospheric sound absorption and the speed of sound
// for given meteorological conditions.
//
// A [Model] maps a frequency to [Coefficients]: two absorption coefficients
// in dB per metre and two speeds of sound in m/s. [ISO9613] implements the
// pure-tone absorption of ISO 9613-1:
//
//	alpha = 8.686 f² [ 1.84e-11 (pr/pa) (T/T0)^½
//	        + (T/T0)^-5/2 ( 0.01275 e^(-2239.1/T) / (frO + f²/frO)
//	                      + 0.1068  e^(-3352.0/T) / (frN + f²/frN) ) ]
//
// where frO and frN are the oxygen and nitrogen relaxation frequencies that
// depend on the molar concentration of water vapour h.
//
// Usage:
//
//	m := air.Default() // 20 °C, 50 %RH, 101.325 kPa
//	c := m.Absorption(4000)
//	fmt.Printf("%.4f dB/m at %.1f m/s\n", c.Alpha, c.C)
package air

// Package ir measures how an impulse response decays.
//
// Metrics are derived from the Schroeder backward integral of the squared
// response, following ISO 3382:
//
//   - EDT: early decay time, fitted from 0 to -10 dB
//   - T20: fitted from -5 to -25 dB
//   - T30: fitted from -5 to -35 dB
//   - CentreTime: energy centroid in seconds
//
// All reverberation times are extrapolated to a 60 dB decay. Compare reports
// how the metrics change between two versions of the same response, e.g.
// before and after air absorption was applied.
package ir

// Package bandenergy measures signal energy per frequency band.
//
// The spectrum is taken with a single zero-padded FFT over the whole signal
// and scaled so that the energies of bands covering 0 Hz to Nyquist add up to
// the time-domain energy sum(x[n]^2). Comparing the band energies before and
// after processing shows how much each band was attenuated.
package bandenergy

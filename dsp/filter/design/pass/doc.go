// Package pass designs Butterworth bandpass filters as cascaded biquad
// sections.
//
// [ButterworthBP] follows the analog-prototype route: the N poles of an
// analog Butterworth lowpass are moved onto the pre-warped band edges by the
// lowpass-to-bandpass transform, mapped to the z-plane with the bilinear
// transform and finally grouped into N second-order sections. Every section
// shares the numerator 1 - z^-2 (one zero at DC, one at Nyquist).
//
// Band edges are given in Hz and normalised to Nyquist internally; they must
// satisfy 0 < low < high < 1 after normalisation. Invalid parameters are
// reported as errors, never clamped.
package pass

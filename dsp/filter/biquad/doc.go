// Package biquad provides the second-order IIR runtime used to filter each
// frequency band.
//
// A [Section] implements Direct Form II Transposed processing for a single
// second-order section defined by [Coefficients]. Sections are cascaded via
// [Chain] for the higher-order Butterworth bandpass designs produced by
// dsp/filter/design/pass.
//
// Processing is causal and starts from zero state, so a block filtered by a
// fresh chain has exactly the length of its input and no look-ahead.
package biquad

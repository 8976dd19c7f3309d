// Package absorption applies frequency-dependent atmospheric air absorption
// to an impulse response.
//
// The [Bandpass] strategy splits the spectrum into linear bands, filters the
// signal with a causal Butterworth bandpass per band, attenuates every
// sample of a band by the distance sound has travelled by then and sums the
// bands back together:
//
//	distance_k = k / fs * c                 (metres)
//	gain_k     = 10^(-(distance_k * alpha) / 10)
//
// alpha (dB/m) and c (m/s) come from an [air.Model] evaluated once per band at
// the band's mean frequency. Later samples have travelled further and are
// attenuated more, high bands more than low ones.
//
// Bands are processed concurrently, each into a private buffer. The buffers
// are summed in band order after every band has finished, so the result does
// not depend on goroutine scheduling.
//
// Usage:
//
//	bp, err := absorption.NewBandpass(absorption.WithDivisions(50))
//	if err != nil {
//	    return err
//	}
//	out, err := bp.Apply(ir)
package absorption

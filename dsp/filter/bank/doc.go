// Package bank partitions a frequency range into contiguous linear bands and
// builds Butterworth bandpass filters for them.
//
// [LinearBand] computes the edges of a single band, [Linear] the whole
// partition and [NewLinear] a [Bank] that pairs each band with its filter.
//
// Bands are derived from a uniform width
//
//	width  = (maxHz - minHz) / divisions
//	high_j = width * j
//	low_j  = width * (j-1)       for j > 1
//	low_1  = minHz
//
// so the first band starts at minHz rather than at 0 Hz (the bandpass
// designer needs a strictly positive lower edge), and the last band ends at
// maxHz - minHz. Band 1 is therefore narrower than the others whenever
// minHz > 0, and empty or inverted once minHz >= width; its filter then fails
// to design.
//
// A [Filter] owns a stateful [biquad.Chain]. [Bank.ProcessBlock] and
// [Bank.Reset] mutate that state, so a Bank must not be shared between
// goroutines. Code that filters bands concurrently builds a fresh Filter per
// band with [NewFilter] instead.
//
// Basic usage:
//
//	b, err := bank.NewLinear(1, 20000, 50, 44100)
//	if err != nil {
//	    return err
//	}
//	outputs := b.ProcessBlock(ir)
//	for i, band := range b.Bands() {
//	    fmt.Printf("%.0f Hz: %d samples\n", band.Mean, len(outputs[i]))
//	}
package bank

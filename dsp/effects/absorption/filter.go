package absorption

import (
	"github.com/cwbudde/algo-airabsorb/dsp/filter/bank"
)

// BandpassFilter returns data filtered by a Butterworth bandpass between
// lowHz and highHz. Filtering is causal and starts from zero state; the
// result has the length of data and data is left untouched.
//
// Design failures (cutoffs outside (0, Nyquist), low >= high, order < 1) are
// returned unchanged from pass.ButterworthBP.
func BandpassFilter(data []float64, lowHz, highHz, sampleRate float64, order int) ([]float64, error) {
	band := bank.Band{Low: lowHz, High: highHz, Mean: (lowHz + highHz) / 2}
	return filterBand(data, band, sampleRate, order)
}

// filterBand runs data through a freshly designed filter for band, so
// concurrent calls never share filter state.
func filterBand(data []float64, band bank.Band, sampleRate float64, order int) ([]float64, error) {
	f, err := bank.NewFilter(band, sampleRate, order)
	if err != nil {
		return nil, err
	}
	return f.BP.Filter(data), nil
}

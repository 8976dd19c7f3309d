package absorption

import "github.com/cwbudde/algo-airabsorb/dsp/core"

// DistanceTravelled returns how far sound at speed c (m/s) has travelled
// when sample is reached at sampleRate (Hz). Sample 0 is at distance 0.
func DistanceTravelled(sample int, sampleRate, c float64) float64 {
	secondsPassed := float64(sample) / sampleRate
	return secondsPassed * c
}

// AttenuationFactor returns the linear factor applied to sample for an
// absorption of alpha dB/m. The factor is exactly 1 at sample 0 and does not
// increase with sample for positive alpha, c and sampleRate.
func AttenuationFactor(sample int, sampleRate, c, alpha float64) float64 {
	attenuationDB := DistanceTravelled(sample, sampleRate, c) * alpha
	return core.DBPowerToLinear(-attenuationDB)
}

// AttenuationCurve returns AttenuationFactor for samples 0..n-1.
func AttenuationCurve(n int, sampleRate, c, alpha float64) []float64 {
	if n <= 0 {
		return nil
	}

	curve := make([]float64, n)
	for k := range curve {
		curve[k] = AttenuationFactor(k, sampleRate, c, alpha)
	}
	return curve
}

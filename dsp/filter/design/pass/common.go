package pass

import (
	"math"
	"math/cmplx"
	"sort"

	"github.com/cwbudde/algo-airabsorb/dsp/filter/biquad"
)

// realPoleTolerance decides when a z-plane pole is treated as real.
const realPoleTolerance = 1e-10

// prewarp maps a digital frequency to the analog frequency (rad/s) that the
// bilinear transform at sampleRate sends back onto it.
func prewarp(freq, sampleRate float64) float64 {
	return 2 * sampleRate * math.Tan(math.Pi*freq/sampleRate)
}

// butterworthPrototype returns the poles of the order-N analog Butterworth
// lowpass with unit cutoff. All poles lie on the left half of the unit circle.
func butterworthPrototype(order int) []complex128 {
	poles := make([]complex128, order)
	for k := range order {
		m := float64(2*k - order + 1)
		poles[k] = -cmplx.Exp(complex(0, math.Pi*m/float64(2*order)))
	}
	return poles
}

// lowpassToBandpass moves each prototype pole onto the two bandpass poles
// centred at w0 with bandwidth bw (both rad/s).
func lowpassToBandpass(proto []complex128, w0, bw float64) []complex128 {
	out := make([]complex128, 0, 2*len(proto))
	w0sq := complex(w0*w0, 0)
	for _, p := range proto {
		pl := p * complex(bw/2, 0)
		d := cmplx.Sqrt(pl*pl - w0sq)
		out = append(out, pl+d, pl-d)
	}
	return out
}

// bilinear maps analog poles to the z-plane and returns the gain correction
// prod(fs2 - z) / prod(fs2 - p) for numZeros analog zeros at s = 0.
func bilinear(poles []complex128, numZeros int, sampleRate float64) ([]complex128, float64) {
	fs2 := complex(2*sampleRate, 0)
	out := make([]complex128, len(poles))
	num := complex(1, 0)
	den := complex(1, 0)
	for i, p := range poles {
		out[i] = (fs2 + p) / (fs2 - p)
		den *= fs2 - p
	}
	for range numZeros {
		num *= fs2
	}
	return out, real(num / den)
}

// groupSections pairs z-plane poles into denominators: each upper-half-plane
// complex pole with its conjugate, remaining real poles two by two. Sections
// are ordered by increasing pole radius so the sharpest resonance runs last.
// ok is false when the poles cannot be grouped into exactly want sections.
func groupSections(poles []complex128, want int) ([]biquad.Coefficients, bool) {
	var (
		sections []biquad.Coefficients
		radii    []float64
		reals    []float64
		lower    int
	)

	for _, p := range poles {
		switch {
		case math.Abs(imag(p)) <= realPoleTolerance:
			reals = append(reals, real(p))
		case imag(p) > 0:
			sections = append(sections, biquad.Coefficients{A1: -2 * real(p), A2: real(p)*real(p) + imag(p)*imag(p)})
			radii = append(radii, cmplx.Abs(p))
		default:
			lower++
		}
	}

	if lower != len(sections) || len(reals)%2 != 0 {
		return nil, false
	}

	sort.Float64s(reals)
	for i := 0; i < len(reals); i += 2 {
		p1, p2 := reals[i], reals[i+1]
		sections = append(sections, biquad.Coefficients{A1: -(p1 + p2), A2: p1 * p2})
		radii = append(radii, math.Max(math.Abs(p1), math.Abs(p2)))
	}

	if len(sections) != want {
		return nil, false
	}

	idx := make([]int, len(sections))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return radii[idx[a]] < radii[idx[b]] })

	ordered := make([]biquad.Coefficients, len(sections))
	for i, j := range idx {
		ordered[i] = sections[j]
	}
	return ordered, true
}

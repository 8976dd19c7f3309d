package biquad

// Coefficients of one second-order section with a0 = 1:
//
//	H(z) = (B0 + B1 z^-1 + B2 z^-2) / (1 + A1 z^-1 + A2 z^-2)
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// Section is one second-order stage in transposed direct form II. The two
// delay registers are its only state.
type Section struct {
	Coefficients

	z [2]float64
}

// NewSection returns a section with zero state.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

func (s *Section) step(x float64) float64 {
	y := s.B0*x + s.z[0]
	s.z[0] = s.B1*x - s.A1*y + s.z[1]
	s.z[1] = s.B2*x - s.A2*y
	return y
}

// ProcessSample filters one sample.
func (s *Section) ProcessSample(x float64) float64 {
	return s.step(x)
}

// ProcessBlock filters buf in place.
func (s *Section) ProcessBlock(buf []float64) {
	for i, x := range buf {
		buf[i] = s.step(x)
	}
}

// Reset zeroes the delay registers.
func (s *Section) Reset() {
	s.z = [2]float64{}
}

// State returns the delay registers.
func (s *Section) State() [2]float64 { return s.z }

// SetState overwrites the delay registers.
func (s *Section) SetState(z [2]float64) { s.z = z }

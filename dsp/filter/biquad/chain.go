package biquad

// Chain runs sections in series. Bandpass designs fold their overall gain
// into the section numerators, so there is no separate input gain.
//
// A Chain holds filter state and must not be shared between goroutines;
// build one per band and per call.
type Chain struct {
	sections []Section
}

// NewChain builds a cascade with one zero-state section per coefficient set.
func NewChain(coeffs []Coefficients) *Chain {
	sections := make([]Section, len(coeffs))
	for i, c := range coeffs {
		sections[i] = Section{Coefficients: c}
	}
	return &Chain{sections: sections}
}

// ProcessSample passes x through every section in order.
func (c *Chain) ProcessSample(x float64) float64 {
	for i := range c.sections {
		x = c.sections[i].step(x)
	}
	return x
}

// ProcessBlock filters buf in place, one whole section at a time.
func (c *Chain) ProcessBlock(buf []float64) {
	for i := range c.sections {
		c.sections[i].ProcessBlock(buf)
	}
}

// ProcessBlockTo writes the filtered src into dst[:len(src)]; src is left
// untouched.
func (c *Chain) ProcessBlockTo(dst, src []float64) {
	dst = dst[:len(src)]
	copy(dst, src)
	c.ProcessBlock(dst)
}

// Filter returns a filtered copy of src.
func (c *Chain) Filter(src []float64) []float64 {
	out := make([]float64, len(src))
	c.ProcessBlockTo(out, src)
	return out
}

// Reset zeroes the state of every section.
func (c *Chain) Reset() {
	for i := range c.sections {
		c.sections[i].Reset()
	}
}

// Order is twice the number of sections.
func (c *Chain) Order() int { return 2 * len(c.sections) }

// NumSections returns the number of sections.
func (c *Chain) NumSections() int { return len(c.sections) }

// Section returns section i for inspection.
func (c *Chain) Section(i int) *Section { return &c.sections[i] }

// State returns a copy of every section's delay registers.
func (c *Chain) State() [][2]float64 {
	z := make([][2]float64, len(c.sections))
	for i := range c.sections {
		z[i] = c.sections[i].z
	}
	return z
}

// SetState restores registers saved by State.
func (c *Chain) SetState(z [][2]float64) {
	for i := range c.sections {
		c.sections[i].z = z[i]
	}
}

package biquad

// Cascade is an ordered list of second-order sections applied in series.
// It holds coefficients only; state is created fresh for every Apply.
type Cascade struct {
	coeffs []Coefficients
}

// NewCascade creates a cascade from one or more coefficient sets.
func NewCascade(coeffs ...Coefficients) *Cascade {
	c := &Cascade{coeffs: make([]Coefficients, len(coeffs))}
	copy(c.coeffs, coeffs)

	return c
}

// Apply filters in through every section and returns a new buffer.
// Each section processes the complete output of the previous one, starting
// from zero state. in is not modified.
func (c *Cascade) Apply(in []float64) []float64 {
	out := make([]float64, len(in))
	copy(out, in)

	if len(out) == 0 {
		return out
	}

	for i := range c.coeffs {
		s := Section{Coefficients: c.coeffs[i]}
		s.ProcessBlock(out)
	}

	return out
}

// Sections returns a copy of the cascade coefficients.
func (c *Cascade) Sections() []Coefficients {
	out := make([]Coefficients, len(c.coeffs))
	copy(out, c.coeffs)

	return out
}

// NumSections returns the number of sections.
func (c *Cascade) NumSections() int {
	return len(c.coeffs)
}

// Order returns the total filter order (2 per section).
func (c *Cascade) Order() int {
	return 2 * len(c.coeffs)
}

package buffer

// Buffer is a reusable float64 slice.
type Buffer struct {
	samples []float64
}

// Samples returns the underlying slice.
func (b *Buffer) Samples() []float64 {
	return b.samples
}

// Len returns the current number of samples.
func (b *Buffer) Len() int {
	return len(b.samples)
}

// Resize sets the length to n, reusing existing capacity when possible.
func (b *Buffer) Resize(n int) {
	if n < 0 {
		n = 0
	}

	if n <= cap(b.samples) {
		b.samples = b.samples[:n]
		return
	}

	b.samples = make([]float64, n)
}

// Zero sets all samples to 0.
func (b *Buffer) Zero() {
	clear(b.samples)
}

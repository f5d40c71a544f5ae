package interp

// Linear2 interpolates between x0 and x1 at t in [0, 1].
func Linear2(t, x0, x1 float64) float64 {
	return x0 + t*(x1-x0)
}

// Hermite4 computes cubic 4-point interpolation.
// It interpolates from x0 to x1 using neighbor points xm1 and x2.
func Hermite4(t, xm1, x0, x1, x2 float64) float64 {
	c0 := x0
	c1 := 0.5 * (x1 - xm1)
	c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)

	return ((c3*t+c2)*t+c1)*t + c0
}

// Resample returns n samples read from x at positions i*step. Taps beyond
// either end repeat the edge sample. An empty x yields n zeros.
func Resample(x []float64, step float64, n int) []float64 {
	out := make([]float64, n)
	if len(x) == 0 {
		return out
	}

	at := func(i int) float64 {
		if i < 0 {
			return x[0]
		}

		if i >= len(x) {
			return x[len(x)-1]
		}

		return x[i]
	}

	for i := range out {
		pos := float64(i) * step
		idx := int(pos)
		t := pos - float64(idx)

		out[i] = Hermite4(t, at(idx-1), at(idx), at(idx+1), at(idx+2))
	}

	return out
}

package kernel

import "github.com/cwbudde/algo-vecmath/cpu"

// The portable kernels register at SIMDNone. Architecture kernels register
// from their own init files at a higher SIMDLevel and Priority, and Lookup
// picks them when cpu.DetectFeatures reports support.
func init() {
	Global.Register(OpEntry{
		Name:         "generic",
		SIMDLevel:    cpu.SIMDNone,
		Priority:     0,
		ProcessBlock: processBlockGeneric,
	})
	Global.Register(OpEntry{
		Name:         "unrolled2",
		SIMDLevel:    cpu.SIMDNone,
		Priority:     5,
		ProcessBlock: processBlockUnrolled2,
	})
}

func processBlockGeneric(c Coefficients, s State, buf []float64) State {
	x1, x2, y1, y2 := s.X1, s.X2, s.Y1, s.Y2
	for i, x := range buf {
		y := c.B0*x + c.B1*x1 + c.B2*x2 - c.A1*y1 - c.A2*y2
		x2, x1 = x1, x
		y2, y1 = y1, y
		buf[i] = y
	}

	return State{X1: x1, X2: x2, Y1: y1, Y2: y2}
}

// processBlockUnrolled2 evaluates two samples per iteration to cut loop
// overhead. Results are bit-identical to processBlockGeneric.
func processBlockUnrolled2(c Coefficients, s State, buf []float64) State {
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2
	x1, x2, y1, y2 := s.X1, s.X2, s.Y1, s.Y2

	i := 0
	n := len(buf)
	for ; i+1 < n; i += 2 {
		xa := buf[i]
		ya := b0*xa + b1*x1 + b2*x2 - a1*y1 - a2*y2

		xb := buf[i+1]
		yb := b0*xb + b1*xa + b2*x1 - a1*ya - a2*y1

		buf[i] = ya
		buf[i+1] = yb

		x2, x1 = xa, xb
		y2, y1 = ya, yb
	}

	if i < n {
		x := buf[i]
		y := b0*x + b1*x1 + b2*x2 - a1*y1 - a2*y2
		buf[i] = y
		x2, x1 = x1, x
		y2, y1 = y1, y
	}

	return State{X1: x1, X2: x2, Y1: y1, Y2: y2}
}

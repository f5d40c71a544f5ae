package biquad_test

import (
	"fmt"

	"github.com/cwbudde/algo-voicefx/dsp/filter/biquad"
)

func ExampleSection_ProcessSample() {
	s := biquad.NewSection(biquad.Coefficients{
		B0: 0.25, B1: 0.5, B2: 0.25,
		A1: -0.2, A2: 0.04,
	})

	for i := range 6 {
		var x float64
		if i == 0 {
			x = 1
		}

		fmt.Printf("y[%d] = %.6f\n", i, s.ProcessSample(x))
	}
	// Output:
	// y[0] = 0.250000
	// y[1] = 0.550000
	// y[2] = 0.350000
	// y[3] = 0.048000
	// y[4] = -0.004400
	// y[5] = -0.002800
}

func ExampleCascade_Apply() {
	c := biquad.NewCascade(
		biquad.Coefficients{B0: 0.5, B1: 0.5},
		biquad.Coefficients{B0: 0.5, B1: 0.5},
	)

	out := c.Apply([]float64{1, 0, 0, 0})
	fmt.Println(out)
	// Output:
	// [0.25 0.5 0.25 0]
}

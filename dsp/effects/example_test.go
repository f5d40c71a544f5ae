package effects_test

import (
	"fmt"

	"github.com/cwbudde/algo-voicefx/dsp/effects"
)

func ExampleQuantizer() {
	q, err := effects.NewQuantizer(2)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("%.4f\n", q.Process([]float64{-0.8, -0.2, 0.25, 0.9}))
	// Output: [-1.0000 -0.3333 0.3333 1.0000]
}

func ExampleSampleHold() {
	s, err := effects.NewSampleHold(2)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(s.Process([]float64{1, 2, 3, 4, 5}))
	// Output: [1 1 3 3 5]
}

func ExampleNewSaturator_invalid() {
	_, err := effects.NewSaturator(0)
	fmt.Println(err)
	// Output: effects: invalid stage parameter: saturator drive must be > 0 and finite: 0.000000
}

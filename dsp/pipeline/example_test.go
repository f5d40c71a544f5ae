package pipeline_test

import (
	"context"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-voicefx/dsp/audio"
	"github.com/cwbudde/algo-voicefx/dsp/pipeline"
)

func ExampleNormalize() {
	out := pipeline.Normalize([]float64{0.1, -0.5, 0.25}, 1)
	fmt.Println(out)
	// Output: [0.2 -1 0.5]
}

func ExampleParseOverrides() {
	o, err := pipeline.ParseOverrides([]byte(`{"name": "deep", "pitch_steps": -7}`))
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(o.Name, o.GetNum("pitch_steps", -5), o.GetNum("hpf", 200))
	// Output: deep -7 200
}

func ExamplePipeline_Run() {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	p, err := pipeline.New(pipeline.WithLogger(logger))
	if err != nil {
		fmt.Println(err)
		return
	}

	samples := make([]float64, 2205)
	for i := range samples {
		samples[i] = 0.3 * math.Sin(2*math.Pi*440*float64(i)/22050)
	}

	buf, _ := audio.New(samples, 22050)

	res, err := p.Run(context.Background(), pipeline.Request{Buffer: buf, Preset: "none"})
	if err != nil {
		fmt.Println(err)
		return
	}

	peak := 0.0
	for _, x := range res.Buffer.Samples {
		peak = math.Max(peak, math.Abs(x))
	}

	fmt.Printf("%s %d %.2f\n", res.State, res.Buffer.Len(), peak)

	_, err = p.Run(context.Background(), pipeline.Request{Buffer: buf, Preset: "chipmunk"})
	fmt.Println(err)
	// Output:
	// done 2205 0.95
	// pipeline: unknown preset: "chipmunk"
}

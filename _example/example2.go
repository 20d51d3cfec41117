package example

import (
	"github.com/dudk/dspgraph"
	"github.com/dudk/dspgraph/gain"
	"github.com/dudk/dspgraph/graph"
	"github.com/dudk/dspgraph/signal"
	"github.com/dudk/dspgraph/wav"
)

// Example:
//		Read .wav file
//		Process it with volume and panning
//		Write the result to another .wav file
func two() {
	settings := dspgraph.CDQuality()

	g := graph.New(graph.WithSettings(settings))

	sampler, err := wav.NewSampler("_testdata/sample1.wav")
	check(err)

	volume := g.AddNode(gain.New(0.5, -0.25))
	check(g.AddInput(g.AddNode(sampler), volume))
	check(g.SetMaster(volume))

	sink, err := wav.NewSink("out.wav", signal.BitDepth16)
	check(err)

	// render ten seconds of audio
	buffers := 10 * settings.SampleRate / settings.Frames
	check(sink.Render(g, settings, buffers))
}

package example

import (
	"time"

	"github.com/dudk/dspgraph"
	"github.com/dudk/dspgraph/graph"
	"github.com/dudk/dspgraph/mixer"
	"github.com/dudk/dspgraph/oscillator"
	"github.com/dudk/dspgraph/pitch"
	"github.com/dudk/dspgraph/portaudio"
)

// Example:
//		Build a three oscillator synth
//		Play it with portaudio
func one() {
	settings := dspgraph.CDQuality()

	g := graph.New(graph.WithSettings(settings))

	// master mixer
	master := g.AddNode(mixer.New())
	check(g.SetMaster(master))

	// three detuned oscillators
	chord := []pitch.Pitch{
		{Letter: pitch.A, Octave: 4},
		{Letter: pitch.D, Octave: 5},
		{Letter: pitch.F, Octave: 5},
	}
	for _, p := range chord {
		osc := g.AddNode(oscillator.New(oscillator.Sine, p.Hz(), 0.2))
		check(g.AddInput(osc, master))
	}

	// play for three seconds
	player := portaudio.NewPlayer(settings)
	check(player.Play(g, 3*time.Second))
}

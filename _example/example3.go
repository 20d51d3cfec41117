package example

import (
	"context"
	"time"

	"github.com/dudk/dspgraph"
	"github.com/dudk/dspgraph/graph"
	"github.com/dudk/dspgraph/mixer"
	"github.com/dudk/dspgraph/oscillator"
	"github.com/dudk/dspgraph/portaudio"
)

// Example:
//		Play a drone with portaudio
//		Push new oscillators into the running graph
func three() {
	settings := dspgraph.CDQuality()

	g := graph.New(graph.WithSettings(settings))
	master := g.AddNode(mixer.New())
	check(g.SetMaster(master))
	check(g.AddInput(g.AddNode(oscillator.New(oscillator.Saw, 55, 0.3)), master))

	// the control goroutine thickens the drone while audio is playing
	done := make(chan struct{})
	go func() {
		defer close(done)
		p := g.NewPusher()
		for _, hz := range []float64{110, 165, 220} {
			time.Sleep(500 * time.Millisecond)
			frequency := hz
			p.Put(func(g *graph.Graph) error {
				return g.AddInput(g.AddNode(oscillator.New(oscillator.Saw, frequency, 0.2)), master)
			})
			check(p.Push(context.Background()))
		}
	}()

	player := portaudio.NewPlayer(settings)
	check(player.Play(g, 3*time.Second))
	<-done
}

func check(err error) {
	if err != nil {
		panic(err)
	}
}

// Package gain provides a unit applying volume and panning to the
// signal passing through it.
package gain

import (
	"github.com/dudk/dspgraph"
	"github.com/dudk/dspgraph/signal"
)

// Gain scales the summed input by volume and pans it between the first
// channel and the rest:
//	-1.0 = Left.
//	 0.0 = Center.
//	 1.0 = Right.
//
// Gain is not safe for concurrent use: change its parameters through
// the graph mutation protocol.
type Gain struct {
	dspgraph.UID
	volume float64
	pan    float64
	gains  []float64
}

// New returns a new gain unit.
func New(volume, pan float64) *Gain {
	return &Gain{
		UID:    dspgraph.NewUID(),
		volume: volume,
		pan:    pan,
	}
}

// SetVolume sets the volume multiplier.
func (g *Gain) SetVolume(volume float64) {
	g.volume = volume
}

// SetPan sets the panning position.
func (g *Gain) SetPan(pan float64) {
	g.pan = pan
}

// Process writes the scaled input to out.
func (g *Gain) Process(out signal.Float64, in signal.Float64, settings dspgraph.Settings) error {
	if in == nil {
		out.Clear()
		return nil
	}
	left, right := g.volume, g.volume
	if g.pan >= 0 {
		left = g.volume * (1 - g.pan)
	} else {
		right = g.volume * (1 + g.pan)
	}
	if cap(g.gains) < settings.Channels {
		g.gains = make([]float64, settings.Channels)
	}
	g.gains = g.gains[:settings.Channels]
	for i := range g.gains {
		if i == 0 {
			g.gains[i] = left
		} else {
			g.gains[i] = right
		}
	}
	in.ScaleTo(out, g.gains)
	return nil
}

// Package mock provides units to test graph topologies.
package mock

import (
	"github.com/dudk/dspgraph"
	"github.com/dudk/dspgraph/signal"
)

// Generator is a unit producing a constant value on all channels.
type Generator struct {
	dspgraph.UID
	Value float64
}

// Process fills out with the constant value.
func (g *Generator) Process(out signal.Float64, in signal.Float64, settings dspgraph.Settings) error {
	for i := range out {
		for j := range out[i] {
			out[i][j] = g.Value
		}
	}
	return nil
}

// Pass is a pass-through unit: its output is the sum of its inputs.
type Pass struct {
	dspgraph.UID
}

// Process copies the summed input to out.
func (p *Pass) Process(out signal.Float64, in signal.Float64, settings dspgraph.Settings) error {
	if in == nil {
		out.Clear()
		return nil
	}
	in.CopyTo(out)
	return nil
}

// Counter is a pass-through unit which counts how many times it was
// processed and records everything it has seen.
type Counter struct {
	dspgraph.UID
	Processed int
	Samples   int
	Received  signal.Float64
}

// Process counts the call, records the input and passes it through.
func (c *Counter) Process(out signal.Float64, in signal.Float64, settings dspgraph.Settings) error {
	c.Processed++
	c.Samples += settings.Frames
	if in == nil {
		out.Clear()
		return nil
	}
	c.Received = c.Received.Append(in)
	in.CopyTo(out)
	return nil
}

// Player is a generator unit playing a prerecorded buffer frame by
// frame, yielding silence once the buffer is drained.
type Player struct {
	dspgraph.UID
	Buffer   signal.Float64
	position int
}

// Process writes the next slice of the buffer.
func (p *Player) Process(out signal.Float64, in signal.Float64, settings dspgraph.Settings) error {
	out.Clear()
	chunk := p.Buffer.Slice(p.position, settings.Frames)
	p.position += chunk.Size()
	chunk.CopyTo(out)
	return nil
}

// Subtractor combines its inputs by subtracting all later inputs from
// the first one, so its output depends on the connection order.
type Subtractor struct {
	dspgraph.UID
}

// Process handles the no-input case.
func (s *Subtractor) Process(out signal.Float64, in signal.Float64, settings dspgraph.Settings) error {
	if in == nil {
		out.Clear()
		return nil
	}
	in.CopyTo(out)
	return nil
}

// Combine subtracts every input after the first from the first.
func (s *Subtractor) Combine(out signal.Float64, ins []signal.Float64, settings dspgraph.Settings) error {
	out.Clear()
	if len(ins) == 0 {
		return nil
	}
	ins[0].CopyTo(out)
	for _, in := range ins[1:] {
		for i := range out {
			if i >= len(in) {
				break
			}
			for j := range out[i] {
				if j >= len(in[i]) {
					break
				}
				out[i][j] -= in[i][j]
			}
		}
	}
	return nil
}

// Failer is a unit failing every Process call with the provided error.
type Failer struct {
	dspgraph.UID
	Err error
}

// Process returns the configured error.
func (f *Failer) Process(out signal.Float64, in signal.Float64, settings dspgraph.Settings) error {
	return f.Err
}

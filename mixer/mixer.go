// Package mixer provides a unit that mixes all its inputs into a
// single signal.
package mixer

import (
	"github.com/dudk/dspgraph"
	"github.com/dudk/dspgraph/signal"
)

// Mixer sums its inputs and normalizes the result by the number of
// connected inputs, so that mixing many sources does not clip by
// construction.
type Mixer struct {
	dspgraph.UID
	gain []float64
}

// New returns a new mixer.
func New() *Mixer {
	return &Mixer{
		UID:  dspgraph.NewUID(),
		gain: make([]float64, 1),
	}
}

// Process handles the no-input case.
func (m *Mixer) Process(out signal.Float64, in signal.Float64, settings dspgraph.Settings) error {
	if in == nil {
		out.Clear()
		return nil
	}
	in.CopyTo(out)
	return nil
}

// Combine sums all inputs and scales the result by 1/n.
func (m *Mixer) Combine(out signal.Float64, ins []signal.Float64, settings dspgraph.Settings) error {
	out.Clear()
	if len(ins) == 0 {
		return nil
	}
	for _, in := range ins {
		out.Sum(in)
	}
	m.gain[0] = 1 / float64(len(ins))
	out.ScaleTo(out, m.gain)
	return nil
}

// Package vst2 wraps vst2 plugins as graph units.
package vst2

import (
	vst2 "github.com/dudk/vst2"

	"github.com/dudk/dspgraph"
	"github.com/dudk/dspgraph/signal"
)

// Processor processes the summed input with a vst2 plugin.
type Processor struct {
	dspgraph.UID
	plugin *vst2.Plugin
}

// NewProcessor creates new vst2 processor.
func NewProcessor(plugin *vst2.Plugin) *Processor {
	return &Processor{
		UID:    dspgraph.NewUID(),
		plugin: plugin,
	}
}

// Process copies the input to out and runs the plugin over it in place.
func (p *Processor) Process(out signal.Float64, in signal.Float64, settings dspgraph.Settings) error {
	if in == nil {
		out.Clear()
		return nil
	}
	in.CopyTo(out)
	p.plugin.Process([][]float64(out))
	return nil
}

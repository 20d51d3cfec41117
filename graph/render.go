package graph

import (
	"github.com/dudk/dspgraph"
	"github.com/dudk/dspgraph/signal"
)

// Render pulls one buffer of audio from the master node into dst.
// It applies pending pushed mutations first, then executes the cached
// processing order: every node's inputs are summed in connection order
// and handed to the node's unit. On error dst must be considered
// garbage: it is written only after the whole traversal succeeded.
func (g *Graph) Render(dst signal.Float64, settings dspgraph.Settings) error {
	g.applyPending()
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.hasMaster {
		return ErrNoMaster
	}
	return g.render(g.master, dst, settings)
}

// RenderFrom pulls one buffer of audio from an explicit target node,
// master designation is ignored.
func (g *Graph) RenderFrom(target Handle, dst signal.Float64, settings dspgraph.Settings) error {
	g.applyPending()
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, err := g.node(target); err != nil {
		return err
	}
	return g.render(target, dst, settings)
}

func (g *Graph) render(target Handle, dst signal.Float64, settings dspgraph.Settings) error {
	if err := g.ensureOrder(target); err != nil {
		return err
	}
	if settings != g.settings {
		// settings changed between render calls, this is the only
		// allocation point of the steady state
		g.scratch = signal.EmptyFloat64(settings.Channels, settings.Frames)
		g.settings = settings
	}
	for _, h := range g.order {
		n := &g.slots[h.index]
		if n.buffer.NumChannels() != settings.Channels || n.buffer.Size() != settings.Frames {
			n.buffer = signal.EmptyFloat64(settings.Channels, settings.Frames)
		}
		var err error
		switch {
		case len(n.ins) == 0:
			err = n.unit.Process(n.buffer, nil, settings)
		default:
			if combiner, ok := n.unit.(dspgraph.Combiner); ok {
				n.insBufs = n.insBufs[:0]
				for _, in := range n.ins {
					n.insBufs = append(n.insBufs, g.slots[in.index].buffer)
				}
				err = combiner.Combine(n.buffer, n.insBufs, settings)
			} else {
				g.scratch.Clear()
				for _, in := range n.ins {
					g.scratch.Sum(g.slots[in.index].buffer)
				}
				err = n.unit.Process(n.buffer, g.scratch, settings)
			}
		}
		if err != nil {
			unitErr := &UnitError{Node: h, Unit: unitID(n.unit), Err: err}
			g.logger.Debug("render: ", unitErr)
			return unitErr
		}
	}
	g.slots[target.index].buffer.CopyTo(dst)
	return nil
}

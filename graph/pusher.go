package graph

import "context"

// Mutation is a deferred change of the graph.
type Mutation func(*Graph) error

// Pusher accumulates mutations on the control side and delivers them to
// the rendering side. The render call drains delivered batches before
// traversal starts, so the graph never changes mid-buffer and the
// render goroutine never blocks waiting for the control side.
//
// A Pusher is owned by a single control goroutine.
type Pusher struct {
	destination chan []Mutation
	pending     []Mutation
}

// NewPusher creates a pusher bound to this graph.
func (g *Graph) NewPusher() *Pusher {
	return &Pusher{destination: g.mutations}
}

// Put accumulates mutations for the next push.
func (p *Pusher) Put(mutations ...Mutation) {
	p.pending = append(p.pending, mutations...)
}

// Push delivers accumulated mutations to the graph. It blocks until the
// batch is handed over or the context is done; on cancellation the
// batch is kept for a later push.
func (p *Pusher) Push(ctx context.Context) error {
	if len(p.pending) == 0 {
		return nil
	}
	select {
	case p.destination <- p.pending:
		p.pending = nil
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// applyPending drains delivered mutation batches. Mutation errors are
// logged: there is nobody on the render thread to return them to.
func (g *Graph) applyPending() {
	for {
		select {
		case batch := <-g.mutations:
			for _, m := range batch {
				if err := m(g); err != nil {
					g.logger.Error("apply mutation: ", err)
				}
			}
		default:
			return
		}
	}
}

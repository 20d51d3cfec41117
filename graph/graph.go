// Package graph implements a directed acyclic graph of audio units with
// a pull-based render engine. Nodes wrap units, connections declare
// which node output feeds which node input, and rendering pulls one
// buffer of audio through the graph from a designated master node.
package graph

import (
	"fmt"
	"sync"

	"github.com/dudk/dspgraph"
	"github.com/dudk/dspgraph/log"
	"github.com/dudk/dspgraph/signal"
)

// Handle is a stable node identifier. It survives removal of unrelated
// nodes and is invalidated by removal of its own node: a slot reused by
// a later node never matches a stale handle. The zero Handle is invalid.
type Handle struct {
	index      uint32
	generation uint32
}

func (h Handle) String() string {
	return fmt.Sprintf("node(%d.%d)", h.index, h.generation)
}

// slot is an arena cell holding one node.
type slot struct {
	unit       dspgraph.Unit
	buffer     signal.Float64
	ins        []Handle // ordered, defines summing order
	outs       []Handle
	insBufs    []signal.Float64
	generation uint32
	live       bool
}

// Graph owns a set of nodes and directed connections between them.
// All methods are safe for concurrent use: mutations take a short lock,
// render holds it for the duration of one buffer. For strict real-time
// mutation handoff see Pusher.
type Graph struct {
	mu    sync.Mutex
	slots []slot
	free  []uint32

	master    Handle
	hasMaster bool

	// cached processing order, stale after every topology mutation
	order       []Handle
	orderTarget Handle
	orderValid  bool
	marks       []byte

	scratch  signal.Float64
	settings dspgraph.Settings

	mutations chan []Mutation
	logger    log.Logger
}

// Option provides a way to set functional parameters to graph.
type Option func(g *Graph)

// WithLogger sets the logger.
func WithLogger(l log.Logger) Option {
	return func(g *Graph) {
		g.logger = l
	}
}

// WithCapacity pre-allocates node slots to avoid growth allocations
// while the graph is being rendered.
func WithCapacity(nodes int) Option {
	return func(g *Graph) {
		g.slots = make([]slot, 0, nodes)
		g.order = make([]Handle, 0, nodes)
		g.marks = make([]byte, 0, nodes)
	}
}

// WithSettings pre-sizes node buffers on AddNode, so that the first
// render call does not allocate.
func WithSettings(s dspgraph.Settings) Option {
	return func(g *Graph) {
		g.settings = s
		g.scratch = signal.EmptyFloat64(s.Channels, s.Frames)
	}
}

// New creates an empty graph and applies provided options.
func New(options ...Option) *Graph {
	g := &Graph{
		mutations: make(chan []Mutation, 1),
		logger:    log.GetLogger(),
	}
	for _, option := range options {
		option(g)
	}
	return g
}

// AddNode inserts a node wrapping the unit and returns its handle. The
// node has no inputs and is not connected to anything.
func (g *Graph) AddNode(unit dspgraph.Unit) Handle {
	g.mu.Lock()
	defer g.mu.Unlock()

	var idx uint32
	if n := len(g.free); n > 0 {
		idx = g.free[n-1]
		g.free = g.free[:n-1]
	} else {
		g.slots = append(g.slots, slot{generation: 1})
		idx = uint32(len(g.slots) - 1)
	}
	s := &g.slots[idx]
	s.unit = unit
	s.live = true
	if g.settings.Frames > 0 && g.settings.Channels > 0 {
		s.buffer = signal.EmptyFloat64(g.settings.Channels, g.settings.Frames)
	}
	g.invalidateOrder()
	h := Handle{index: idx, generation: s.generation}
	g.logger.Debug("add ", h, " unit ", unitID(unit))
	return h
}

// RemoveNode removes the node and every connection touching it. The
// master is cleared if it pointed at this node. The handle is invalid
// afterwards.
func (g *Graph) RemoveNode(h Handle) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	s, err := g.node(h)
	if err != nil {
		return err
	}
	for _, in := range s.ins {
		outs := &g.slots[in.index].outs
		*outs = removeHandle(*outs, h)
	}
	for _, out := range s.outs {
		ins := &g.slots[out.index].ins
		*ins = removeHandle(*ins, h)
	}
	if g.hasMaster && g.master == h {
		g.hasMaster = false
		g.master = Handle{}
	}
	s.unit = nil
	s.buffer = nil
	s.ins = nil
	s.outs = nil
	s.insBufs = nil
	s.live = false
	s.generation++
	g.free = append(g.free, h.index)
	g.invalidateOrder()
	g.logger.Debug("remove ", h)
	return nil
}

// AddInput connects two nodes so that the consumer pulls the input's
// output as one of its sources. Inputs are summed in the order they
// were added. Re-adding an existing connection is a no-op. ErrWouldCycle
// is returned and the graph is left unchanged if the connection would
// make it cyclic.
func (g *Graph) AddInput(in, consumer Handle) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, err := g.node(in); err != nil {
		return err
	}
	c, err := g.node(consumer)
	if err != nil {
		return err
	}
	if in == consumer {
		return ErrWouldCycle
	}
	if containsHandle(c.ins, in) {
		return nil
	}
	if g.reachable(consumer, in) {
		return ErrWouldCycle
	}
	c.ins = append(c.ins, in)
	if cap(c.insBufs) < len(c.ins) {
		c.insBufs = make([]signal.Float64, 0, len(c.ins))
	}
	g.slots[in.index].outs = append(g.slots[in.index].outs, consumer)
	g.invalidateOrder()
	g.logger.Debug("connect ", in, " to ", consumer)
	return nil
}

// RemoveInput removes the connection between the nodes if there is one.
func (g *Graph) RemoveInput(in, consumer Handle) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, err := g.node(in); err != nil {
		return err
	}
	c, err := g.node(consumer)
	if err != nil {
		return err
	}
	if !containsHandle(c.ins, in) {
		return nil
	}
	c.ins = removeHandle(c.ins, in)
	g.slots[in.index].outs = removeHandle(g.slots[in.index].outs, consumer)
	g.invalidateOrder()
	g.logger.Debug("disconnect ", in, " from ", consumer)
	return nil
}

// SetMaster designates the node as the graph output. Render will pull
// audio from it.
func (g *Graph) SetMaster(h Handle) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, err := g.node(h); err != nil {
		return err
	}
	g.master = h
	g.hasMaster = true
	g.logger.Debug("master ", h)
	return nil
}

// ClearMaster removes the master designation.
func (g *Graph) ClearMaster() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.master = Handle{}
	g.hasMaster = false
}

// Master returns the master handle if there is one.
func (g *Graph) Master() (Handle, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.master, g.hasMaster
}

// Has returns true if the handle refers to a live node.
func (g *Graph) Has(h Handle) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, err := g.node(h)
	return err == nil
}

// Inputs returns the handles of the node inputs in summing order.
func (g *Graph) Inputs(h Handle) ([]Handle, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	s, err := g.node(h)
	if err != nil {
		return nil, err
	}
	return append([]Handle(nil), s.ins...), nil
}

// Outputs returns the handles of the nodes consuming this node output.
func (g *Graph) Outputs(h Handle) ([]Handle, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	s, err := g.node(h)
	if err != nil {
		return nil, err
	}
	return append([]Handle(nil), s.outs...), nil
}

// Clear removes all nodes. Slots are kept allocated, handles issued
// before the call stay invalid even when their slots get reused.
func (g *Graph) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()

	for i := range g.slots {
		s := &g.slots[i]
		if !s.live {
			continue
		}
		s.unit = nil
		s.buffer = nil
		s.ins = nil
		s.outs = nil
		s.insBufs = nil
		s.live = false
		s.generation++
		g.free = append(g.free, uint32(i))
	}
	g.master = Handle{}
	g.hasMaster = false
	g.invalidateOrder()
}

// ClearDisconnected removes all nodes that have no inputs and are not
// inputs to any other node.
func (g *Graph) ClearDisconnected() {
	g.mu.Lock()
	defer g.mu.Unlock()

	for i := range g.slots {
		s := &g.slots[i]
		if !s.live || len(s.ins) > 0 || len(s.outs) > 0 {
			continue
		}
		h := Handle{index: uint32(i), generation: s.generation}
		if g.hasMaster && g.master == h {
			g.hasMaster = false
			g.master = Handle{}
		}
		s.unit = nil
		s.buffer = nil
		s.live = false
		s.generation++
		g.free = append(g.free, h.index)
	}
	g.invalidateOrder()
}

// node resolves a handle to its slot.
func (g *Graph) node(h Handle) (*slot, error) {
	if int(h.index) >= len(g.slots) {
		return nil, ErrUnknownNode
	}
	s := &g.slots[h.index]
	if !s.live || s.generation != h.generation {
		return nil, ErrUnknownNode
	}
	return s, nil
}

// reachable reports whether to can be reached from from following
// outgoing connections.
func (g *Graph) reachable(from, to Handle) bool {
	visited := make([]bool, len(g.slots))
	stack := []uint32{from.index}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if idx == to.index {
			return true
		}
		if visited[idx] {
			continue
		}
		visited[idx] = true
		for _, out := range g.slots[idx].outs {
			stack = append(stack, out.index)
		}
	}
	return false
}

func containsHandle(handles []Handle, h Handle) bool {
	for i := range handles {
		if handles[i] == h {
			return true
		}
	}
	return false
}

func removeHandle(handles []Handle, h Handle) []Handle {
	for i := range handles {
		if handles[i] == h {
			return append(handles[:i], handles[i+1:]...)
		}
	}
	return handles
}

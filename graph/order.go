package graph

// traversal marks
const (
	unvisited = byte(iota)
	visiting
	visited
)

func (g *Graph) invalidateOrder() {
	g.orderValid = false
}

// ensureOrder resolves the cached processing order for the target. The
// cache is reused when no topology mutation happened since it was
// computed for the same target, otherwise the order is rebuilt with a
// depth-first traversal that places every input before its consumers.
func (g *Graph) ensureOrder(target Handle) error {
	if g.orderValid && g.orderTarget == target {
		return nil
	}
	if cap(g.marks) < len(g.slots) {
		g.marks = make([]byte, len(g.slots))
	} else {
		g.marks = g.marks[:len(g.slots)]
		for i := range g.marks {
			g.marks[i] = unvisited
		}
	}
	g.order = g.order[:0]
	if err := g.visit(target); err != nil {
		return err
	}
	g.orderTarget = target
	g.orderValid = true
	return nil
}

// visit appends the subgraph feeding h to the order, inputs first.
// A node found in progress means the acyclic invariant is broken and
// the traversal refuses to proceed instead of looping.
func (g *Graph) visit(h Handle) error {
	switch g.marks[h.index] {
	case visited:
		return nil
	case visiting:
		return ErrInternalConsistency
	}
	g.marks[h.index] = visiting
	for _, in := range g.slots[h.index].ins {
		if err := g.visit(in); err != nil {
			return err
		}
	}
	g.marks[h.index] = visited
	g.order = append(g.order, h)
	return nil
}

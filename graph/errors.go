package graph

import (
	"errors"
	"fmt"

	"github.com/dudk/dspgraph"
)

// Sentinel errors for graph operations.
var (
	// ErrUnknownNode is returned when a handle does not refer to a live node.
	ErrUnknownNode = errors.New("graph: unknown node")

	// ErrWouldCycle is returned when adding a connection would make the
	// graph cyclic. The graph is left unchanged.
	ErrWouldCycle = errors.New("graph: connection would cycle")

	// ErrNoMaster is returned when render is requested without a master node.
	ErrNoMaster = errors.New("graph: no master node")

	// ErrInternalConsistency is returned when traversal revisits a node
	// that is still in progress. It indicates the acyclic invariant was
	// broken outside the mutation API and should be reported loudly.
	ErrInternalConsistency = errors.New("graph: traversal revisited a node in progress")
)

// UnitError wraps a failure reported by a unit during rendering and
// carries the node which raised it. Unit holds the unit identifier when
// the unit embeds one, otherwise it is empty.
type UnitError struct {
	Node Handle
	Unit string
	Err  error
}

func (e *UnitError) Error() string {
	if e.Unit != "" {
		return fmt.Sprintf("graph: unit %s at %v: %v", e.Unit, e.Node, e.Err)
	}
	return fmt.Sprintf("graph: unit at %v: %v", e.Node, e.Err)
}

// Unwrap returns the wrapped unit failure.
func (e *UnitError) Unwrap() error {
	return e.Err
}

// unitID resolves the identifier of units carrying one.
func unitID(u dspgraph.Unit) string {
	if identified, ok := u.(interface{ ID() string }); ok {
		return identified.ID()
	}
	return ""
}

package dag

import (
	"errors"
	"strings"
)

// ErrCycle is matched by every error that reports a cycle.
var ErrCycle = errors.New("cycle detected")

// CycleError reports a cycle and the path that closes it. The first and the
// last element of Path are the same node.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return ErrCycle.Error() + ": " + strings.Join(e.Path, " -> ")
}

// Is lets errors.Is match ErrCycle.
func (e *CycleError) Is(target error) bool { return target == ErrCycle }

// Graph is a collection of nodes and their directed edges. It is not safe
// for concurrent mutation; build it once, then query it.
type Graph struct {
	// nodes stores all nodes in the graph, keyed by their unique ID.
	nodes map[string]*node
	// order records insertion order for deterministic traversal.
	order []*node
}

// node represents a single vertex in the graph. It is un-exported to
// enforce interaction with the graph via the public API (using string IDs).
type node struct {
	id string
	// deps holds the nodes this node depends on (predecessors).
	deps []*node
	// dependents holds the nodes that depend on this node (successors).
	dependents []*node
}

func (n *node) hasDependent(id string) bool {
	for _, d := range n.dependents {
		if d.id == id {
			return true
		}
	}
	return false
}

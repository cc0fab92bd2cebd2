package dag

import (
	"fmt"
)

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*node),
	}
}

// AddNode adds a new node with the given ID to the graph. If a node with
// the same ID already exists, the function does nothing.
func (g *Graph) AddNode(id string) {
	if _, ok := g.nodes[id]; ok {
		return
	}
	n := &node{id: id}
	g.nodes[id] = n
	g.order = append(g.order, n)
}

// Has reports whether a node with the given ID exists.
func (g *Graph) Has(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Len is the number of nodes.
func (g *Graph) Len() int { return len(g.order) }

// AddEdge creates a directed edge from the `fromID` node to the `toID` node,
// meaning `toID` depends on `fromID`. Adding an existing edge is a no-op. A
// self-referential edge is reported as a cycle.
func (g *Graph) AddEdge(fromID, toID string) error {
	if fromID == toID {
		return &CycleError{Path: []string{fromID, fromID}}
	}

	fromNode, ok := g.nodes[fromID]
	if !ok {
		return fmt.Errorf("source node not found: %s", fromID)
	}
	toNode, ok := g.nodes[toID]
	if !ok {
		return fmt.Errorf("destination node not found: %s", toID)
	}

	if fromNode.hasDependent(toID) {
		return nil
	}
	toNode.deps = append(toNode.deps, fromNode)
	fromNode.dependents = append(fromNode.dependents, toNode)
	return nil
}

// Dependencies returns the IDs of the nodes the given node depends on, in
// the order the edges were added.
func (g *Graph) Dependencies(id string) ([]string, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return ids(n.deps), nil
}

// Dependents returns the IDs of the nodes that depend on the given node, in
// the order the edges were added.
func (g *Graph) Dependents(id string) ([]string, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return ids(n.dependents), nil
}

func ids(nodes []*node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.id
	}
	return out
}

// DetectCycles checks the graph for cycles. It returns a *CycleError naming
// the path of the first cycle found, or nil.
func (g *Graph) DetectCycles() error {
	// Classic depth-first search with three sets of nodes:
	// permanent: fully visited and not part of a cycle.
	// stack: on the recursion stack of the current traversal.
	// unvisited: everything else.
	permanent := make(map[string]bool)
	onStack := make(map[string]bool)
	var stack []string

	var visit func(n *node) error
	visit = func(n *node) error {
		if permanent[n.id] {
			return nil
		}
		if onStack[n.id] {
			return &CycleError{Path: cyclePath(stack, n.id)}
		}

		onStack[n.id] = true
		stack = append(stack, n.id)
		for _, dependent := range n.dependents {
			if err := visit(dependent); err != nil {
				return err
			}
		}
		stack = stack[:len(stack)-1]
		delete(onStack, n.id)
		permanent[n.id] = true
		return nil
	}

	for _, n := range g.order {
		if err := visit(n); err != nil {
			return err
		}
	}
	return nil
}

// cyclePath cuts the recursion stack down to the part that closes on id.
func cyclePath(stack []string, id string) []string {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == id {
			path := append([]string(nil), stack[i:]...)
			return append(path, id)
		}
	}
	return []string{id, id}
}

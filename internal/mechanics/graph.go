package mechanics

import "fmt"

// Graph is an append-only arena of nodes and directed edges.
//
// Handles are slice positions and never change. Outgoing edges are kept in
// insertion order, which fixes the discovery order seen by ShortestPath.
//
// Graph is not safe for concurrent mutation. Concurrent reads of a graph that
// is no longer being built are safe.
type Graph struct {
	nodes []Node
	edges []Edge
	out   [][]EdgeID
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{}
}

// AddNode appends n and returns its handle. n.ID is overwritten.
func (g *Graph) AddNode(n Node) NodeID {
	id := NodeID(len(g.nodes))
	n.ID = id
	g.nodes = append(g.nodes, n)
	g.out = append(g.out, nil)
	return id
}

// AddEdge appends a directed edge from → to carrying e's payload.
// e.ID, e.From and e.To are overwritten.
func (g *Graph) AddEdge(from, to NodeID, e Edge) (EdgeID, error) {
	if !g.HasNode(from) {
		return 0, fmt.Errorf("%w: edge source %d", ErrNodeNotFound, from)
	}
	if !g.HasNode(to) {
		return 0, fmt.Errorf("%w: edge target %d", ErrNodeNotFound, to)
	}
	id := EdgeID(len(g.edges))
	e.ID = id
	e.From = from
	e.To = to
	g.edges = append(g.edges, e)
	g.out[from] = append(g.out[from], id)
	return id, nil
}

// HasNode reports whether id is a valid handle.
func (g *Graph) HasNode(id NodeID) bool {
	return id >= 0 && int(id) < len(g.nodes)
}

// Node returns the node for id.
func (g *Graph) Node(id NodeID) (Node, bool) {
	if !g.HasNode(id) {
		return Node{}, false
	}
	return g.nodes[id], true
}

// Edge returns the edge for id.
func (g *Graph) Edge(id EdgeID) (Edge, bool) {
	if id < 0 || int(id) >= len(g.edges) {
		return Edge{}, false
	}
	return g.edges[id], true
}

// Out returns the outgoing edge handles of id in insertion order.
// The returned slice must not be modified.
func (g *Graph) Out(id NodeID) []EdgeID {
	if !g.HasNode(id) {
		return nil
	}
	return g.out[id]
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Nodes calls fn for every node in handle order.
func (g *Graph) Nodes(fn func(Node)) {
	for _, n := range g.nodes {
		fn(n)
	}
}

// Edges calls fn for every edge in handle order.
func (g *Graph) Edges(fn func(Edge)) {
	for _, e := range g.edges {
		fn(e)
	}
}

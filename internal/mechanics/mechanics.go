package mechanics

import (
	"github.com/roach88/rotorgraph/internal/model"
)

// Mechanics is the assembled graph of one machine.
//
// Nodes mirrors every node added through Add in insertion order, so
// Nodes[0] is genesis and Nodes[1] is infinity once assembly has started.
type Mechanics struct {
	Machine    string
	Structure  *Graph
	Nodes      []NodeID
	CompleteID NodeID
}

// New returns an empty Mechanics for a machine.
func New(machineID string) *Mechanics {
	return &Mechanics{
		Machine:    machineID,
		Structure:  NewGraph(),
		CompleteID: CompleteID,
	}
}

// Add appends a node to the structure and records it in Nodes.
func (m *Mechanics) Add(n Node) NodeID {
	id := m.Structure.AddNode(n)
	m.Nodes = append(m.Nodes, id)
	return id
}

// Connect adds a directed edge between two nodes.
func (m *Mechanics) Connect(from, to NodeID, e Edge) (EdgeID, error) {
	return m.Structure.AddEdge(from, to, e)
}

// EntryNode finds the plugboard entry port for letter.
func (m *Mechanics) EntryNode(letter string) (NodeID, bool) {
	for _, id := range m.Nodes {
		n, _ := m.Structure.Node(id)
		if n.Part == NodePlugboardPort && n.Level == LevelEntry && n.Letter() == letter {
			return id, true
		}
	}
	return 0, false
}

// Route returns the cheapest path from the entry port of letter to the
// terminal node. ok is false if the letter has no entry port.
func (m *Mechanics) Route(letter string) (path Path, ok bool, err error) {
	start, ok := m.EntryNode(letter)
	if !ok {
		return Path{}, false, nil
	}
	path, err = ShortestPath(m.Structure, start, m.CompleteID, DefaultCost)
	return path, true, err
}

// Census counts nodes and edges by part.
type Census struct {
	Machine string         `json:"machine"`
	Nodes   int            `json:"nodes"`
	Edges   int            `json:"edges"`
	ByNode  map[string]int `json:"by_node"`
	ByEdge  map[string]int `json:"by_edge"`
}

// Census summarises the structure.
func (m *Mechanics) Census() Census {
	c := Census{
		Machine: m.Machine,
		Nodes:   m.Structure.NodeCount(),
		Edges:   m.Structure.EdgeCount(),
		ByNode:  make(map[string]int),
		ByEdge:  make(map[string]int),
	}
	m.Structure.Nodes(func(n Node) { c.ByNode[n.Part.String()]++ })
	m.Structure.Edges(func(e Edge) { c.ByEdge[e.Part.String()]++ })
	return c
}

// CombinationOf returns a detached copy of c for use in node and edge payloads.
func CombinationOf(c model.Combination) *model.Combination {
	cp := c
	return &cp
}

package mechanics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraph_AddNodeAssignsSequentialHandles(t *testing.T) {
	g := NewGraph()

	a := g.AddNode(Node{Part: NodeGenesis})
	b := g.AddNode(Node{Part: NodeInfinity})

	assert.Equal(t, NodeID(0), a)
	assert.Equal(t, NodeID(1), b)
	assert.Equal(t, 2, g.NodeCount())

	n, ok := g.Node(b)
	require.True(t, ok)
	assert.Equal(t, NodeInfinity, n.Part)
	assert.Equal(t, b, n.ID)
}

func TestGraph_AddEdgeRejectsUnknownNodes(t *testing.T) {
	g := NewGraph()
	a := g.AddNode(Node{})

	_, err := g.AddEdge(a, 7, Edge{})
	assert.True(t, errors.Is(err, ErrNodeNotFound))

	_, err = g.AddEdge(-1, a, Edge{})
	assert.True(t, errors.Is(err, ErrNodeNotFound))
	assert.Equal(t, 0, g.EdgeCount())
}

func TestGraph_OutPreservesInsertionOrder(t *testing.T) {
	g := NewGraph()
	a := g.AddNode(Node{})
	b := g.AddNode(Node{})
	c := g.AddNode(Node{})

	e1, err := g.AddEdge(a, c, Edge{Part: EdgeLink})
	require.NoError(t, err)
	e2, err := g.AddEdge(a, b, Edge{Part: EdgeReflector})
	require.NoError(t, err)

	assert.Equal(t, []EdgeID{e1, e2}, g.Out(a))
	assert.Empty(t, g.Out(b))
	assert.Nil(t, g.Out(42))

	e, ok := g.Edge(e2)
	require.True(t, ok)
	assert.Equal(t, a, e.From)
	assert.Equal(t, b, e.To)
	assert.Equal(t, EdgeReflector, e.Part)

	_, ok = g.Edge(99)
	assert.False(t, ok)
}

func TestParts_String(t *testing.T) {
	assert.Equal(t, "genesis", NodeGenesis.String())
	assert.Equal(t, "plugboard", NodePlugboardPort.String())
	assert.Equal(t, "unknown", NodePart(99).String())
	assert.Equal(t, "crosswire", EdgeCrosswire.String())
	assert.Equal(t, "lightboard", EdgeLightboard.String())
	assert.Equal(t, "unknown", EdgePart(99).String())
	assert.Equal(t, "left", SideLeft.String())
	assert.Equal(t, "right", SideRight.String())
}

func TestDefaultCost_OnlyCrosswiresCost(t *testing.T) {
	assert.Equal(t, 2.5, DefaultCost(Edge{Part: EdgeCrosswire, Length: 2.5}))
	assert.Equal(t, 0.0, DefaultCost(Edge{Part: EdgeLink, Length: 9}))
	assert.Equal(t, 0.0, DefaultCost(Edge{Part: EdgeLightboard, Length: 9}))
}

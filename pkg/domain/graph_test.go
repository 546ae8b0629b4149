package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoNodeGraph(t *testing.T) *Graph {
	t.Helper()
	g := NewGraph(2)
	_, err := g.Add(NewNode("A", nil, []Port{NewPort("o", nil), NewPort("o2", nil)}, nil))
	require.NoError(t, err)
	_, err = g.Add(NewNode("B", []Port{NewPort("i", nil)}, nil, nil))
	require.NoError(t, err)
	return g
}

func TestGraph_AddIndexesNodes(t *testing.T) {
	g := twoNodeGraph(t)

	assert.Equal(t, 2, g.Len())
	a, ok := g.Lookup("A")
	require.True(t, ok)
	assert.Equal(t, "A", a.Name())

	_, err := g.Add(NewNode("A", nil, nil, nil))
	assert.ErrorIs(t, err, ErrDuplicateNodeName)
	assert.Equal(t, 2, g.Len(), "duplicate must not reach the arena")

	_, err = g.Add(nil)
	assert.ErrorIs(t, err, ErrArgument)
}

func TestGraph_ConnectWiresBothSides(t *testing.T) {
	g := twoNodeGraph(t)

	require.NoError(t, g.Connect(0, 1, 1, 0))

	a, _ := g.Lookup("A")
	out, _ := a.Port(Output, 1)
	ref, ok := out.Peer()
	require.True(t, ok)
	assert.Equal(t, PeerRef{Node: 1, Port: 0}, ref)

	b, _ := g.Lookup("B")
	in, _ := b.Port(Input, 0)
	ref, ok = in.Peer()
	require.True(t, ok)
	assert.Equal(t, PeerRef{Node: 0, Port: 1}, ref)

	peer, ok := g.PeerOf("B", Input, "i")
	require.True(t, ok)
	assert.Equal(t, "A:o2", peer.String())
	assert.Equal(t, 1, g.NumConnections())
}

func TestGraph_ConnectRejectsWiredPorts(t *testing.T) {
	g := twoNodeGraph(t)
	require.NoError(t, g.Connect(0, 0, 1, 0))

	err := g.Connect(0, 1, 1, 0)
	assert.ErrorIs(t, err, ErrPortInUse)

	a, _ := g.Lookup("A")
	untouched, _ := a.Port(Output, 1)
	assert.False(t, untouched.Connected(), "a failed connect must not wire either side")
}

func TestGraph_ConnectOutOfRange(t *testing.T) {
	g := twoNodeGraph(t)
	assert.ErrorIs(t, g.Connect(0, 0, 5, 0), ErrUnknownNode)
	assert.ErrorIs(t, g.Connect(0, 9, 1, 0), ErrUnknownPort)
}

func TestGraph_FreezeBlocksMutation(t *testing.T) {
	g := twoNodeGraph(t)
	g.Freeze()

	_, err := g.Add(NewNode("C", nil, nil, nil))
	assert.ErrorIs(t, err, ErrGraphFrozen)
	assert.ErrorIs(t, g.Connect(0, 0, 1, 0), ErrGraphFrozen)
}

func TestGraph_ReleaseDropsArenaAndIndex(t *testing.T) {
	g := twoNodeGraph(t)
	require.NoError(t, g.Connect(0, 0, 1, 0))

	assert.Equal(t, 2, g.Release())
	assert.Equal(t, 0, g.Len())
	assert.Equal(t, 0, g.NumConnections())
	_, ok := g.Lookup("A")
	assert.False(t, ok)
	assert.Empty(t, g.Connections())
}

func TestGraph_Connections(t *testing.T) {
	g := twoNodeGraph(t)
	require.NoError(t, g.Connect(0, 0, 1, 0))

	conns := g.Connections()
	require.Len(t, conns, 1)
	assert.Equal(t, Endpoint{Node: "A", Port: "o", Index: 0}, conns[0].From)
	assert.Equal(t, Endpoint{Node: "B", Port: "i", Index: 0}, conns[0].To)
}

func TestNilGraphReads(t *testing.T) {
	var g *Graph
	assert.Equal(t, 0, g.Len())
	assert.Nil(t, g.Nodes())
	_, ok := g.Lookup("A")
	assert.False(t, ok)
}

func TestNewNode_ClearsPeers(t *testing.T) {
	g := twoNodeGraph(t)
	require.NoError(t, g.Connect(0, 0, 1, 0))
	a, _ := g.Lookup("A")

	clone := NewNode("A2", nil, a.Outputs(), nil)
	p, _ := clone.Port(Output, 0)
	assert.False(t, p.Connected())
	assert.Equal(t, "o", p.Name())
}

func TestErrorTaxonomy(t *testing.T) {
	assert.True(t, errors.Is(ErrNameTooLong, ErrCapacity))
	assert.True(t, errors.Is(ErrTooManyPorts, ErrCapacity))
	assert.True(t, errors.Is(ErrMissingNodes, ErrShape))
	assert.True(t, errors.Is(ErrNilGraph, ErrArgument))

	err := &BuildError{Kind: KindUnknownNode, Connection: 3, Ref: "Z:i", Err: ErrUnknownNode}
	assert.ErrorIs(t, err, ErrUnknownNode)
	assert.Equal(t, KindUnknownNode, KindOf(err))
	assert.Equal(t, `build graph: connection 3: "Z:i": unknown node`, err.Error())

	nodeErr := &BuildError{Kind: KindNameTooLong, Node: "x", Connection: NoConnection, Err: ErrNameTooLong}
	assert.Equal(t, "CapacityError", nodeErr.Kind.Category())
	assert.Equal(t, `build graph: node "x": capacity exceeded: name too long`, nodeErr.Error())
	assert.Equal(t, ErrorKind(""), KindOf(errors.New("plain")))
}

func TestLimitsWithDefaults(t *testing.T) {
	l := Limits{MaxPorts: 2}.WithDefaults()
	assert.Equal(t, 2, l.MaxPorts)
	assert.Equal(t, DefaultMaxNodeNameLen, l.MaxNodeNameLen)
	assert.Equal(t, DefaultMaxPortNameLen, l.MaxPortNameLen)
	assert.Equal(t, DefaultMaxNodes, l.MaxNodes)
}

package domain

import "fmt"

// Graph owns every node of one build (insertion ordered) and the name index over them.
//
// The index is derived from the arena: every indexed name resolves to a node in
// the arena and every node in the arena is indexed. Add and Release are the only
// ways to change either, and they change both together.
//
// A Graph is mutable only while it is being built. After Freeze it is read-only
// and safe to share between goroutines.
type Graph struct {
	nodes       []*Node
	index       map[string]int
	connections int
	frozen      bool
}

// NewGraph creates an empty graph with room for capacity nodes.
func NewGraph(capacity int) *Graph {
	if capacity < 0 {
		capacity = 0
	}
	return &Graph{
		nodes: make([]*Node, 0, capacity),
		index: make(map[string]int, capacity),
	}
}

// Add appends n to the arena and indexes it by name.
func (g *Graph) Add(n *Node) (int, error) {
	if g.frozen {
		return 0, ErrGraphFrozen
	}
	if n == nil {
		return 0, fmt.Errorf("%w: nil node", ErrArgument)
	}
	if _, exists := g.index[n.name]; exists {
		return 0, ErrDuplicateNodeName
	}
	idx := len(g.nodes)
	g.nodes = append(g.nodes, n)
	g.index[n.name] = idx
	return idx, nil
}

// Connect wires output port srcPort of node src to input port dstPort of node dst,
// in both directions. Either both ports are wired or, on error, neither is.
func (g *Graph) Connect(src, srcPort, dst, dstPort int) error {
	if g.frozen {
		return ErrGraphFrozen
	}
	if src < 0 || src >= len(g.nodes) || dst < 0 || dst >= len(g.nodes) {
		return fmt.Errorf("%w: node index out of range", ErrUnknownNode)
	}
	from, to := g.nodes[src], g.nodes[dst]
	if srcPort < 0 || srcPort >= len(from.out) || dstPort < 0 || dstPort >= len(to.in) {
		return fmt.Errorf("%w: port index out of range", ErrUnknownPort)
	}

	out, in := &from.out[srcPort], &to.in[dstPort]
	if out.wired {
		return fmt.Errorf("%w: output %s:%s", ErrPortInUse, from.name, out.name)
	}
	if in.wired {
		return fmt.Errorf("%w: input %s:%s", ErrPortInUse, to.name, in.name)
	}

	out.peer, out.wired = PeerRef{Node: dst, Port: dstPort}, true
	in.peer, in.wired = PeerRef{Node: src, Port: srcPort}, true
	g.connections++
	return nil
}

// Freeze ends the build. Later mutations fail with ErrGraphFrozen.
func (g *Graph) Freeze() { g.frozen = true }

// Frozen reports whether the build completed.
func (g *Graph) Frozen() bool { return g.frozen }

// Release drops every node and index entry and returns how many nodes were held.
// It is used to roll back a failed build.
func (g *Graph) Release() int {
	released := len(g.nodes)
	for i := range g.nodes {
		g.nodes[i] = nil
	}
	g.nodes = g.nodes[:0]
	g.index = make(map[string]int)
	g.connections = 0
	return released
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	if g == nil {
		return 0
	}
	return len(g.nodes)
}

// NumConnections returns the number of wired connections.
func (g *Graph) NumConnections() int {
	if g == nil {
		return 0
	}
	return g.connections
}

// Nodes returns the nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	if g == nil {
		return nil
	}
	return append([]*Node(nil), g.nodes...)
}

// Node returns the node at arena index i.
func (g *Graph) Node(i int) (*Node, bool) {
	if g == nil || i < 0 || i >= len(g.nodes) {
		return nil, false
	}
	return g.nodes[i], true
}

// Lookup finds a node by name.
func (g *Graph) Lookup(name string) (*Node, bool) {
	i, ok := g.IndexOf(name)
	if !ok {
		return nil, false
	}
	return g.nodes[i], true
}

// IndexOf returns the arena index of the named node.
func (g *Graph) IndexOf(name string) (int, bool) {
	if g == nil {
		return 0, false
	}
	i, ok := g.index[name]
	return i, ok
}

// Endpoint names one side of a resolved connection.
type Endpoint struct {
	Node  string `json:"node"`
	Port  string `json:"port"`
	Index int    `json:"index"`
}

// String renders the endpoint as a "node:port" reference.
func (e Endpoint) String() string {
	return e.Node + RefSeparator + e.Port
}

// Resolve follows the peer of a port of direction dir.
// The peer lives on the opposite side of the other node.
func (g *Graph) Resolve(dir Direction, p Port) (Endpoint, bool) {
	ref, ok := p.Peer()
	if !ok {
		return Endpoint{}, false
	}
	peer, ok := g.Node(ref.Node)
	if !ok {
		return Endpoint{}, false
	}
	peerPort, ok := peer.Port(dir.Opposite(), ref.Port)
	if !ok {
		return Endpoint{}, false
	}
	return Endpoint{Node: peer.name, Port: peerPort.name, Index: ref.Port}, true
}

// PeerOf resolves the peer of a port addressed by node name, direction and port name.
func (g *Graph) PeerOf(node string, dir Direction, port string) (Endpoint, bool) {
	n, ok := g.Lookup(node)
	if !ok {
		return Endpoint{}, false
	}
	i := n.PortIndex(dir, port)
	if i < 0 {
		return Endpoint{}, false
	}
	return g.Resolve(dir, n.ports(dir)[i])
}

// Connection is a resolved edge from an output port to an input port.
type Connection struct {
	From Endpoint `json:"from"`
	To   Endpoint `json:"to"`
}

// Connections lists every wired edge, ordered by source node then output port.
func (g *Graph) Connections() []Connection {
	if g == nil {
		return nil
	}
	conns := make([]Connection, 0, g.connections)
	for _, n := range g.nodes {
		for i, p := range n.out {
			to, ok := g.Resolve(Output, p)
			if !ok {
				continue
			}
			conns = append(conns, Connection{
				From: Endpoint{Node: n.name, Port: p.name, Index: i},
				To:   to,
			})
		}
	}
	return conns
}

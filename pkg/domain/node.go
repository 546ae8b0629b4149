package domain

import "fmt"

// Direction tells whether a port consumes (Input) or produces (Output) data.
type Direction int

const (
	Input Direction = iota
	Output
)

// String returns the document key for the direction ("in" or "out").
func (d Direction) String() string {
	switch d {
	case Input:
		return "in"
	case Output:
		return "out"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Opposite returns the direction a peer port has.
func (d Direction) Opposite() Direction {
	if d == Input {
		return Output
	}
	return Input
}

// PeerRef points at a port of another node by arena index and port index.
// Indices are resolved through the owning Graph.
type PeerRef struct {
	Node int `json:"node"`
	Port int `json:"port"`
}

// Port is one named input or output slot of a node.
type Port struct {
	name    string
	payload any
	peer    PeerRef
	wired   bool
}

// NewPort creates an unconnected port.
func NewPort(name string, payload any) Port {
	return Port{name: name, payload: payload}
}

// Name returns the port name.
func (p Port) Name() string { return p.name }

// Payload returns the optional opaque payload attached to the port.
func (p Port) Payload() any { return p.payload }

// Peer returns the connected port, if any. Node and port index are always set together.
func (p Port) Peer() (PeerRef, bool) {
	if !p.wired {
		return PeerRef{}, false
	}
	return p.peer, true
}

// Connected reports whether the resolver wired this port.
func (p Port) Connected() bool { return p.wired }

// Node is a named entity owning ordered input and output ports.
// Port names and counts are fixed at construction; only the graph wires peers.
type Node struct {
	name string
	in   []Port
	out  []Port
	data any
}

// NewNode creates a node with the given ports. Peers are always cleared.
func NewNode(name string, inputs, outputs []Port, data any) *Node {
	n := &Node{
		name: name,
		in:   make([]Port, len(inputs)),
		out:  make([]Port, len(outputs)),
		data: data,
	}
	for i, p := range inputs {
		n.in[i] = NewPort(p.name, p.payload)
	}
	for i, p := range outputs {
		n.out[i] = NewPort(p.name, p.payload)
	}
	return n
}

// Name returns the node name.
func (n *Node) Name() string { return n.name }

// Data returns the value attached by a node-data constructor, if any.
func (n *Node) Data() any { return n.data }

// Inputs returns a copy of the input ports in declared order.
func (n *Node) Inputs() []Port { return append([]Port(nil), n.in...) }

// Outputs returns a copy of the output ports in declared order.
func (n *Node) Outputs() []Port { return append([]Port(nil), n.out...) }

// Ports returns a copy of the ports of one direction.
func (n *Node) Ports(dir Direction) []Port {
	if dir == Input {
		return n.Inputs()
	}
	return n.Outputs()
}

// NumPorts returns the port count of one direction.
func (n *Node) NumPorts(dir Direction) int {
	return len(n.ports(dir))
}

// Port returns the i-th port of one direction.
func (n *Node) Port(dir Direction, i int) (Port, bool) {
	ports := n.ports(dir)
	if i < 0 || i >= len(ports) {
		return Port{}, false
	}
	return ports[i], true
}

// PortIndex scans the ports of one direction for name and returns its index, or -1.
// Port counts are small and bounded, so a linear scan is enough.
func (n *Node) PortIndex(dir Direction, name string) int {
	for i, p := range n.ports(dir) {
		if p.name == name {
			return i
		}
	}
	return -1
}

func (n *Node) ports(dir Direction) []Port {
	if dir == Input {
		return n.in
	}
	return n.out
}

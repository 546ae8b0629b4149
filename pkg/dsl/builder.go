package dsl

import (
	"fmt"

	"github.com/aretw0/portgraph/pkg/adapters/memory"
	"github.com/aretw0/portgraph/pkg/value"
)

// Builder assembles a graph document in declaration order.
type Builder struct {
	order       []string
	nodes       map[string]*NodeBuilder
	connections [][2]string
	err         error
}

// New creates a new document builder.
func New() *Builder {
	return &Builder{
		nodes: make(map[string]*NodeBuilder),
	}
}

// Add creates a new node in the document.
// If the node already exists, it returns the existing builder.
func (b *Builder) Add(name string) *NodeBuilder {
	if nb, ok := b.nodes[name]; ok {
		return nb
	}
	nb := &NodeBuilder{name: name, builder: b}
	b.nodes[name] = nb
	b.order = append(b.order, name)
	return nb
}

// Connect appends a connection entry from an output reference to an input
// reference, both written "node:port".
func (b *Builder) Connect(from, to string) *Builder {
	b.connections = append(b.connections, [2]string{from, to})
	return b
}

// Document renders the declared nodes and connections as a graph document.
func (b *Builder) Document() (*value.Value, error) {
	if b.err != nil {
		return nil, b.err
	}

	nodes := make([]value.Member, 0, len(b.order))
	for _, name := range b.order {
		nodes = append(nodes, value.Field(name, b.nodes[name].spec()))
	}

	members := []value.Member{value.Field("nodes", value.NewObject(nodes...))}
	if len(b.connections) > 0 {
		conns := make([]*value.Value, 0, len(b.connections))
		for _, c := range b.connections {
			conns = append(conns, value.Strings(c[0], c[1]))
		}
		members = append(members, value.Field("connections", value.NewArray(conns...)))
	}
	return value.NewObject(members...), nil
}

// Build compiles the document into a memory store under name.
func (b *Builder) Build(name string) (*memory.Store, error) {
	doc, err := b.Document()
	if err != nil {
		return nil, err
	}

	store, err := memory.NewFromValues(map[string]*value.Value{name: doc})
	if err != nil {
		return nil, fmt.Errorf("failed to build memory store: %w", err)
	}
	return store, nil
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

package dsl

import (
	"fmt"

	"github.com/aretw0/portgraph/pkg/domain"
	"github.com/aretw0/portgraph/pkg/value"
)

// NodeBuilder provides a fluent API for configuring a node.
type NodeBuilder struct {
	name    string
	in      []*value.Value
	out     []*value.Value
	extra   []value.Member
	builder *Builder
}

// In declares input ports.
func (n *NodeBuilder) In(names ...string) *NodeBuilder {
	for _, name := range names {
		n.in = append(n.in, value.NewString(name))
	}
	return n
}

// Out declares output ports.
func (n *NodeBuilder) Out(names ...string) *NodeBuilder {
	for _, name := range names {
		n.out = append(n.out, value.NewString(name))
	}
	return n
}

// InValue declares an input port carrying a payload.
func (n *NodeBuilder) InValue(name string, payload any) *NodeBuilder {
	if entry, ok := n.portEntry(name, payload); ok {
		n.in = append(n.in, entry)
	}
	return n
}

// OutValue declares an output port carrying a payload.
func (n *NodeBuilder) OutValue(name string, payload any) *NodeBuilder {
	if entry, ok := n.portEntry(name, payload); ok {
		n.out = append(n.out, entry)
	}
	return n
}

// Set adds a member to the node spec, for registry constructors to read.
// The "in" and "out" keys are reserved.
func (n *NodeBuilder) Set(key string, v any) *NodeBuilder {
	if key == domain.Input.String() || key == domain.Output.String() {
		n.builder.fail(fmt.Errorf("node %s: key %q is reserved for ports", n.name, key))
		return n
	}
	val, err := value.FromAny(v)
	if err != nil {
		n.builder.fail(fmt.Errorf("node %s: %s: %w", n.name, key, err))
		return n
	}
	n.extra = append(n.extra, value.Field(key, val))
	return n
}

// To connects an output port of this node to "node:port".
// The port is declared if it was not already.
func (n *NodeBuilder) To(port, target string) *NodeBuilder {
	if !hasPort(n.out, port) {
		n.Out(port)
	}
	n.builder.Connect(n.name+domain.RefSeparator+port, target)
	return n
}

// Add starts the next node, for chaining.
func (n *NodeBuilder) Add(name string) *NodeBuilder {
	return n.builder.Add(name)
}

func (n *NodeBuilder) portEntry(name string, payload any) (*value.Value, bool) {
	val, err := value.FromAny(payload)
	if err != nil {
		n.builder.fail(fmt.Errorf("node %s: port %s: %w", n.name, name, err))
		return nil, false
	}
	return value.NewObject(
		value.Field("name", value.NewString(name)),
		value.Field("value", val),
	), true
}

func (n *NodeBuilder) spec() *value.Value {
	var members []value.Member
	if len(n.in) > 0 {
		members = append(members, value.Field(domain.Input.String(), value.NewArray(n.in...)))
	}
	if len(n.out) > 0 {
		members = append(members, value.Field(domain.Output.String(), value.NewArray(n.out...)))
	}
	members = append(members, n.extra...)
	return value.NewObject(members...)
}

func hasPort(ports []*value.Value, name string) bool {
	for _, p := range ports {
		if s, ok := p.Str(); ok && s == name {
			return true
		}
		if v, ok := p.Get("name"); ok {
			if s, _ := v.Str(); s == name {
				return true
			}
		}
	}
	return false
}

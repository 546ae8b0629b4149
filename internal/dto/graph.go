package dto

import (
	"github.com/aretw0/portgraph/pkg/domain"
)

// GraphView is the wire representation of a built graph shared by the HTTP,
// MCP and CLI surfaces.
type GraphView struct {
	Nodes       []NodeView          `json:"nodes"`
	Connections []domain.Connection `json:"connections"`
}

// NodeView is one node of a GraphView, in arena order.
type NodeView struct {
	Name    string     `json:"name"`
	Inputs  []PortView `json:"inputs"`
	Outputs []PortView `json:"outputs"`
	Data    any        `json:"data,omitempty"`
}

// PortView is one port of a NodeView. Peer is the "node:port" reference of the
// other end, empty while unconnected.
type PortView struct {
	Name    string `json:"name"`
	Peer    string `json:"peer,omitempty"`
	Payload any    `json:"payload,omitempty"`
}

// FromGraph flattens g into its wire form.
func FromGraph(g *domain.Graph) GraphView {
	view := GraphView{
		Nodes:       make([]NodeView, 0, g.Len()),
		Connections: g.Connections(),
	}
	for _, n := range g.Nodes() {
		view.Nodes = append(view.Nodes, NodeView{
			Name:    n.Name(),
			Inputs:  portViews(g, domain.Input, n.Inputs()),
			Outputs: portViews(g, domain.Output, n.Outputs()),
			Data:    n.Data(),
		})
	}
	return view
}

func portViews(g *domain.Graph, dir domain.Direction, ports []domain.Port) []PortView {
	views := make([]PortView, 0, len(ports))
	for _, p := range ports {
		v := PortView{Name: p.Name(), Payload: p.Payload()}
		if ep, ok := g.Resolve(dir, p); ok {
			v.Peer = ep.String()
		}
		views = append(views, v)
	}
	return views
}

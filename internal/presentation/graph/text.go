package graph

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/portgraph/pkg/domain"
)

// Unconnected stands in for the missing side of a port that was never wired.
const Unconnected = "<unconnected>"

// Print writes the textual dump of g to w, nodes in stored order:
//
//	Node Graph:
//	 - nodes:
//	      - "A":
//	        - out:
//	           "o" : ( A:o --> B:i )
//	      - "B":
//	        - in:
//	           "i" : ( A:o --> B:i )
func Print(w io.Writer, g *domain.Graph) error {
	if g == nil {
		return domain.ErrNilGraph
	}

	var sb strings.Builder
	sb.WriteString("Node Graph:\n")
	sb.WriteString(" - nodes:\n")

	for _, node := range g.Nodes() {
		fmt.Fprintf(&sb, "      - %q:\n", node.Name())

		if outs := node.Outputs(); len(outs) > 0 {
			sb.WriteString("        - out:\n")
			for _, p := range outs {
				self := node.Name() + domain.RefSeparator + p.Name()
				fmt.Fprintf(&sb, "           %q : ( %s --> %s )\n", p.Name(), self, peerRef(g, domain.Output, p))
			}
		}

		if ins := node.Inputs(); len(ins) > 0 {
			sb.WriteString("        - in:\n")
			for _, p := range ins {
				self := node.Name() + domain.RefSeparator + p.Name()
				fmt.Fprintf(&sb, "           %q : ( %s --> %s )\n", p.Name(), peerRef(g, domain.Input, p), self)
			}
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// Sprint returns the textual dump of g.
func Sprint(g *domain.Graph) (string, error) {
	var sb strings.Builder
	if err := Print(&sb, g); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func peerRef(g *domain.Graph, dir domain.Direction, p domain.Port) string {
	ep, ok := g.Resolve(dir, p)
	if !ok {
		return Unconnected
	}
	return ep.String()
}

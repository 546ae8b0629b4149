package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/portgraph/pkg/domain"
)

// Describe renders a Markdown summary of g: totals, then one section per node
// listing its ports and where each one is wired.
func Describe(g *domain.Graph) string {
	var sb strings.Builder
	sb.WriteString("# Node Graph\n\n")
	fmt.Fprintf(&sb, "**%d** nodes, **%d** connections.\n", g.Len(), g.NumConnections())

	for _, node := range g.Nodes() {
		fmt.Fprintf(&sb, "\n## %s\n\n", node.Name())
		if node.NumPorts(domain.Input) == 0 && node.NumPorts(domain.Output) == 0 {
			sb.WriteString("_No ports._\n")
			continue
		}

		sb.WriteString("| Direction | Port | Peer |\n")
		sb.WriteString("|---|---|---|\n")
		for _, dir := range []domain.Direction{domain.Input, domain.Output} {
			for _, p := range node.Ports(dir) {
				peer := "_unconnected_"
				if ep, ok := g.Resolve(dir, p); ok {
					peer = "`" + ep.String() + "`"
				}
				fmt.Fprintf(&sb, "| %s | `%s` | %s |\n", dir, p.Name(), peer)
			}
		}
	}
	return sb.String()
}

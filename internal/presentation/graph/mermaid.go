package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/portgraph/pkg/domain"
)

// GraphOverlay contains extra state to visualize on the graph.
type GraphOverlay struct {
	// Flagged nodes are drawn with a warning style (e.g. validator findings).
	Flagged []string
	// Focus is drawn with a highlight style.
	Focus string
}

// GenerateMermaid produces a Mermaid flowchart from a built graph.
// It applies semantic styling:
// - Source (no inputs): ((Circle))
// - Sink (no outputs): [[Subroutine]]
// - Isolated (no ports): [/Parallelogram/]
// - Default: [Rectangle]
// Each wired connection becomes one edge labelled with its port names.
// It also applies overlay styles if provided.
func GenerateMermaid(g *domain.Graph, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, node := range g.Nodes() {
		safeID := sanitizeMermaidID(node.Name())
		ins, outs := node.NumPorts(domain.Input), node.NumPorts(domain.Output)

		opener, closer := "[", "]"
		switch {
		case ins == 0 && outs == 0:
			opener, closer = "[/", "/]"
		case ins == 0:
			opener, closer = "((", "))"
		case outs == 0:
			opener, closer = "[[", "]]"
		}

		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, escapeLabel(node.Name()), closer))
	}

	for _, c := range g.Connections() {
		label := escapeLabel(c.From.Port + " → " + c.To.Port)
		sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n",
			sanitizeMermaidID(c.From.Node), label, sanitizeMermaidID(c.To.Node)))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme
		sb.WriteString("    classDef flagged fill:#fff3e0,stroke:#e65100,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef focus fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, name := range overlay.Flagged {
			if _, ok := g.Lookup(name); !ok {
				continue
			}
			safeID := sanitizeMermaidID(name)
			if !seen[safeID] {
				seen[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s flagged;\n", safeID))
			}
		}

		if _, ok := g.Lookup(overlay.Focus); ok && overlay.Focus != "" {
			sb.WriteString(fmt.Sprintf("    class %s focus;\n", sanitizeMermaidID(overlay.Focus)))
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, ":", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}

// escapeLabel keeps double quotes from closing a Mermaid label.
func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

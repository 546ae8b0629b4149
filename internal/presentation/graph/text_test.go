package graph_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/portgraph/internal/presentation/graph"
	"github.com/aretw0/portgraph/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrint_SimpleGraph(t *testing.T) {
	g := build(t, `{"nodes":{"A":{"out":["o"]},"B":{"in":["i"]}},"connections":[["A:o","B:i"]]}`)

	var buf bytes.Buffer
	require.NoError(t, graph.Print(&buf, g))

	want := strings.Join([]string{
		"Node Graph:",
		" - nodes:",
		`      - "A":`,
		"        - out:",
		`           "o" : ( A:o --> B:i )`,
		`      - "B":`,
		"        - in:",
		`           "i" : ( A:o --> B:i )`,
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestPrint_SectionsPerNode(t *testing.T) {
	g := build(t, `{"nodes":{"A":{"out":["o"]},"B":{"in":["i"]}},"connections":[["A:o","B:i"]]}`)
	out, err := graph.Sprint(g)
	require.NoError(t, err)

	// The outbound line sits under A's output section, the inbound one under B's input section.
	aSection := out[strings.Index(out, `- "A":`):strings.Index(out, `- "B":`)]
	bSection := out[strings.Index(out, `- "B":`):]
	assert.Contains(t, aSection, "- out:")
	assert.Contains(t, aSection, "o --> B:i")
	assert.NotContains(t, aSection, "- in:")
	assert.Contains(t, bSection, "- in:")
	assert.Contains(t, bSection, "A:o --> B:i")
}

func TestPrint_Unconnected(t *testing.T) {
	g := build(t, `{"nodes":{"M":{"in":["a"],"out":["b"]}}}`)
	out, err := graph.Sprint(g)
	require.NoError(t, err)

	assert.Contains(t, out, `"b" : ( M:b --> <unconnected> )`)
	assert.Contains(t, out, `"a" : ( <unconnected> --> M:a )`)
}

func TestPrint_NilGraph(t *testing.T) {
	var buf bytes.Buffer
	err := graph.Print(&buf, nil)
	assert.ErrorIs(t, err, domain.ErrNilGraph)
	assert.ErrorIs(t, err, domain.ErrArgument)
	assert.Empty(t, buf.String())
}

func TestDescribe(t *testing.T) {
	g := build(t, `{"nodes":{"A":{"out":["o","spare"]},"B":{"in":["i"]},"C":{}},"connections":[["A:o","B:i"]]}`)
	md := graph.Describe(g)

	assert.Contains(t, md, "**3** nodes, **1** connections.")
	assert.Contains(t, md, "## A")
	assert.Contains(t, md, "| out | `o` | `B:i` |")
	assert.Contains(t, md, "| out | `spare` | _unconnected_ |")
	assert.Contains(t, md, "| in | `i` | `A:o` |")
	assert.Contains(t, md, "## C\n\n_No ports._")
}

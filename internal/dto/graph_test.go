package dto

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/portgraph/pkg/builder"
	"github.com/aretw0/portgraph/pkg/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromGraph(t *testing.T) {
	doc, err := value.ParseJSON([]byte(`{
		"nodes": {"A": {"out": ["o", {"name": "gain", "value": 2}]}, "B": {"in": ["i"]}},
		"connections": [["A:o", "B:i"]]
	}`))
	require.NoError(t, err)
	g, err := builder.New().Build(context.Background(), doc)
	require.NoError(t, err)

	view := FromGraph(g)
	require.Len(t, view.Nodes, 2)
	assert.Equal(t, "A", view.Nodes[0].Name)
	assert.Equal(t, "B:i", view.Nodes[0].Outputs[0].Peer)
	assert.Empty(t, view.Nodes[0].Outputs[1].Peer)
	assert.Equal(t, "A:o", view.Nodes[1].Inputs[0].Peer)
	require.Len(t, view.Connections, 1)
	assert.Equal(t, "A:o", view.Connections[0].From.String())

	raw, err := json.Marshal(view)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `{"name":"gain","payload":2}`)
	assert.Contains(t, string(raw), `"outputs":[]`, "B has no outputs and still reports an empty list")
}

package portgraph_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/portgraph"
	"github.com/aretw0/portgraph/pkg/adapters/memory"
	"github.com/aretw0/portgraph/pkg/domain"
	"github.com/aretw0/portgraph/pkg/ports"
	"github.com/aretw0/portgraph/pkg/registry"
	"github.com/aretw0/portgraph/pkg/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chain = `{"nodes":{"A":{"out":["o"]},"B":{"in":["i"]}},"connections":[["A:o","B:i"]]}`

func TestFacade_LoamRepository(t *testing.T) {
	repoPath := t.TempDir()
	content := []byte(`---
id: shader
nodes:
  tex:
    out: [rgb]
  out:
    in: [color]
connections:
  - ["tex:rgb", "out:color"]
---
A texture feeding the output.`)
	require.NoError(t, os.WriteFile(filepath.Join(repoPath, "shader.md"), content, 0644))

	engine, err := portgraph.New(repoPath)
	require.NoError(t, err, "Failed to initialize engine with path %s", repoPath)
	assert.Equal(t, filepath.Base(repoPath), engine.Name)

	ctx := context.Background()
	names, err := engine.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"shader"}, names)

	g, err := engine.Load(ctx, "shader")
	require.NoError(t, err)
	peer, ok := g.PeerOf("tex", domain.Output, "rgb")
	require.True(t, ok)
	assert.Equal(t, "out:color", peer.String())
}

func TestFacade_RequiresPathOrLoader(t *testing.T) {
	_, err := portgraph.New("")
	assert.Error(t, err)
}

func TestFacade_MemoryLoader(t *testing.T) {
	loader := memory.NewLoader(map[string]string{"chain": chain})
	engine, err := portgraph.New("", portgraph.WithLoader(loader))
	require.NoError(t, err)
	assert.Empty(t, engine.Name)
	assert.Same(t, loader, engine.Loader())

	ctx := context.Background()
	g, err := engine.Load(ctx, "chain")
	require.NoError(t, err)
	assert.Equal(t, 1, g.NumConnections())

	_, err = engine.Load(ctx, "ghost")
	assert.ErrorIs(t, err, ports.ErrDocumentNotFound)

	var buf bytes.Buffer
	require.NoError(t, engine.Print(&buf, g))
	assert.Contains(t, buf.String(), `"o" : ( A:o --> B:i )`)
	assert.Contains(t, engine.Mermaid(g), `A -- "o → i" --> B`)
	assert.Contains(t, engine.Describe(g), "**2** nodes, **1** connections.")

	report, err := engine.Validate(g, true)
	require.NoError(t, err)
	assert.False(t, report.HasErrors())
}

func TestFacade_BuildBytes(t *testing.T) {
	engine, err := portgraph.New("", portgraph.WithLoader(memory.NewStore()))
	require.NoError(t, err)
	ctx := context.Background()

	g, err := engine.BuildBytes(ctx, []byte("nodes:\n  A: {out: [o]}\n"), "")
	require.NoError(t, err)
	assert.Equal(t, 1, g.Len())

	_, err = engine.BuildBytes(ctx, []byte(`{"nodes": [}`), value.FormatJSON)
	assert.Error(t, err)

	_, err = engine.BuildBytes(ctx, []byte(`{"connections": []}`), "")
	assert.ErrorIs(t, err, domain.ErrMissingNodes)
}

func TestFacade_BuildFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chain.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
nodes:
  A: {out: [o]}
  B: {in: [i]}
connections:
  - ["A:o", "B:i"]
`), 0644))

	engine, err := portgraph.New("", portgraph.WithLoader(memory.NewStore()))
	require.NoError(t, err)

	g, err := engine.BuildFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, g.NumConnections())

	_, err = engine.BuildFile(context.Background(), filepath.Join(dir, "missing.json"))
	assert.ErrorContains(t, err, "read document")
}

func TestFacade_Options(t *testing.T) {
	reg := registry.NewRegistry()
	reg.Register(registry.Wildcard, func(_ context.Context, name string, _ *value.Value) (any, error) {
		return "data:" + name, nil
	})

	var built, rolledBack int
	engine, err := portgraph.New("",
		portgraph.WithLoader(memory.NewStore()),
		portgraph.WithLimits(domain.Limits{MaxNodes: 1}),
		portgraph.WithRegistry(reg),
		portgraph.WithLifecycleHooks(domain.LifecycleHooks{
			OnBuilt: func(context.Context, *domain.BuildEvent) { built++ },
		}),
		portgraph.WithLifecycleHooks(domain.LifecycleHooks{
			OnRollback: func(context.Context, *domain.RollbackEvent) { rolledBack++ },
		}),
	)
	require.NoError(t, err)
	assert.Equal(t, 1, engine.Limits().MaxNodes)
	assert.Equal(t, domain.DefaultLimits().MaxPorts, engine.Limits().MaxPorts)

	ctx := context.Background()
	g, err := engine.BuildBytes(ctx, []byte(`{"nodes":{"A":{}}}`), "")
	require.NoError(t, err)
	n, _ := g.Lookup("A")
	assert.Equal(t, "data:A", n.Data())

	_, err = engine.BuildBytes(ctx, []byte(`{"nodes":{"A":{},"B":{}}}`), "")
	assert.ErrorIs(t, err, domain.ErrAllocation)

	assert.Equal(t, 1, built)
	assert.Equal(t, 1, rolledBack)
}

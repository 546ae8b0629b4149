package loam

import (
	"context"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/aretw0/portgraph/internal/testutils"
	"github.com/aretw0/portgraph/pkg/builder"
	"github.com/aretw0/portgraph/pkg/domain"
	"github.com/aretw0/portgraph/pkg/ports"
	"github.com/aretw0/portgraph/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Contract(t *testing.T) {
	// Keys are written sorted: metadata maps carry no member order.
	setupData := map[string]string{
		"simple": `{"connections":[["A:o","B:i"]],"nodes":{"A":{"out":["o"]},"B":{"in":["i"]}}}`,
		"solo":   `{"nodes":{"solo":{}}}`,
	}

	tmpDir, _ := testutils.SetupTestRepo(t)
	testutils.WriteFiles(t, tmpDir, map[string]string{
		"simple.json": setupData["simple"],
		"solo.json":   setupData["solo"],
	})

	repo, err := loam.Init(tmpDir)
	require.NoError(t, err)
	loader := New(loam.NewTypedRepository[GraphMetadata](repo))

	tests.DocumentLoaderContractTest(t, loader, setupData)
}

func TestLoader_MarkdownFrontmatter(t *testing.T) {
	_, repo := testutils.SetupTestRepo(t)
	ctx := context.Background()

	doc := core.Document{
		ID: "shader.md",
		Content: `---
id: shader
title: Shader graph
nodes:
  tex:
    out: [rgb, alpha]
  out:
    in: [color]
connections:
  - ["tex:rgb", "out:color"]
---
Samples a texture into the output color.`,
	}
	require.NoError(t, repo.Save(ctx, doc))

	loader := New(loam.NewTypedRepository[GraphMetadata](repo))

	names, err := loader.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"shader"}, names)

	v, err := loader.Load(ctx, "shader")
	require.NoError(t, err)

	g, err := builder.New().Build(ctx, v)
	require.NoError(t, err)
	peer, ok := g.PeerOf("out", domain.Input, "color")
	require.True(t, ok)
	assert.Equal(t, "tex:rgb", peer.String())

	tex, _ := g.Lookup("tex")
	assert.Equal(t, []string{"rgb", "alpha"}, []string{tex.Outputs()[0].Name(), tex.Outputs()[1].Name()},
		"port order comes from arrays and survives metadata decoding")
}

func TestLoader_MissingNodesReachesBuilder(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)
	testutils.WriteFiles(t, tmpDir, map[string]string{
		"notes.md": "---\ntitle: Not a graph\n---\nJust prose.",
	})

	loader := New(loam.NewTypedRepository[GraphMetadata](repo))
	v, err := loader.Load(context.Background(), "notes")
	require.NoError(t, err)

	_, err = builder.New().Build(context.Background(), v)
	assert.ErrorIs(t, err, domain.ErrMissingNodes)
}

func TestLoader_ListNormalizesIDs(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)
	testutils.WriteFiles(t, tmpDir, map[string]string{
		"a.md":        "---\nid: a\n---\nA",
		"b.json":      `{"id": "b.json", "nodes": {}}`,
		"implicit.md": "---\ntitle: implicit\n---\nID is implied from filename",
	})

	loader := New(loam.NewTypedRepository[GraphMetadata](repo))
	ids, err := loader.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "implicit"}, ids)
}

func TestLoader_ListCollision(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)
	testutils.WriteFiles(t, tmpDir, map[string]string{
		"first.md":  "---\nid: dup\n---\nOne",
		"second.md": "---\nid: dup\n---\nTwo",
	})

	loader := New(loam.NewTypedRepository[GraphMetadata](repo))
	_, err := loader.List(context.Background())
	assert.ErrorContains(t, err, "collision detected")

	_, err = loader.Load(context.Background(), "ghost")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ports.ErrDocumentNotFound, "a broken listing cannot prove absence")
}

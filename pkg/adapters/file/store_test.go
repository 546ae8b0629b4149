package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/portgraph/pkg/adapters/file"
	"github.com/aretw0/portgraph/pkg/ports"
	contract "github.com/aretw0/portgraph/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Contract(t *testing.T) {
	ports.RunDocumentStoreContract(t, file.New(t.TempDir()))
}

func TestFileStore_LoaderContract(t *testing.T) {
	dir := t.TempDir()
	data := map[string]string{
		"shader": `{"nodes":{"tex":{"out":["rgb"]},"out":{"in":["color"]}},"connections":[["tex:rgb","out:color"]]}`,
		"yaml":   `{"nodes":{"A":{"out":["o"]}}}`,
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shader.json"), []byte(data["shader"]), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "yaml.yml"), []byte("nodes:\n  A:\n    out: [o]\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.json"), 0755))

	contract.DocumentLoaderContractTest(t, file.New(dir), data)
}

func TestFileStore_SaveSwitchesFormat(t *testing.T) {
	dir := t.TempDir()
	s := file.New(dir)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "g", []byte(`{"nodes":{}}`)))
	assert.FileExists(t, filepath.Join(dir, "g.json"))

	require.NoError(t, s.Save(ctx, "g", []byte("nodes:\n  A: {}\n")))
	assert.FileExists(t, filepath.Join(dir, "g.yaml"))
	assert.NoFileExists(t, filepath.Join(dir, "g.json"))

	names, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"g"}, names)
}

func TestFileStore_RejectsPathNames(t *testing.T) {
	s := file.New(t.TempDir())
	ctx := context.Background()

	for _, name := range []string{"", "..", "../escape", `a\b`} {
		_, err := s.Load(ctx, name)
		assert.Error(t, err, name)
		assert.NotErrorIs(t, err, ports.ErrDocumentNotFound, name)
		assert.Error(t, s.Save(ctx, name, []byte(`{}`)), name)
	}
}

func TestFileStore_MissingDir(t *testing.T) {
	s := file.New(filepath.Join(t.TempDir(), "absent"))
	names, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}

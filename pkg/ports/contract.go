package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunDocumentStoreContract runs a suite of tests to verify that a DocumentStore
// implementation adheres to the defined interface contract.
func RunDocumentStoreContract(t *testing.T, store DocumentStore) {
	ctx := context.Background()
	name := "contract-doc-" + time.Now().Format("20060102150405")
	doc := []byte(`{"nodes":{"A":{"out":["o"]},"B":{"in":["i"]}},"connections":[["A:o","B:i"]]}`)

	t.Run("Save and Load", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, name, doc), "Save should not return error")

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err, "Load should not return error")
		out, err := loaded.MarshalJSON()
		require.NoError(t, err)
		assert.JSONEq(t, string(doc), string(out))
		assert.Equal(t, []string{"A", "B"}, mustGet(t, loaded, "nodes").Keys(), "member order must survive storage")
	})

	t.Run("Save Replaces", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, name, []byte(`{"nodes":{}}`)))
		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, 0, mustGet(t, loaded, "nodes").Len())
	})

	t.Run("Save Rejects Invalid Document", func(t *testing.T) {
		err := store.Save(ctx, name+"-invalid", []byte(`{"nodes":`))
		assert.Error(t, err)
		_, err = store.Load(ctx, name+"-invalid")
		assert.ErrorIs(t, err, ErrDocumentNotFound)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, ErrDocumentNotFound)
	})

	t.Run("List", func(t *testing.T) {
		id1 := name + "-1"
		id2 := name + "-2"
		require.NoError(t, store.Save(ctx, id1, doc))
		require.NoError(t, store.Save(ctx, id2, doc))

		// Ensure cleanup
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, id1)
		assert.Contains(t, names, id2)
		assert.IsNonDecreasing(t, names)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, name, doc))
		require.NoError(t, store.Delete(ctx, name), "Delete should not return error")

		_, err := store.Load(ctx, name)
		assert.ErrorIs(t, err, ErrDocumentNotFound, "Load after Delete should return ErrDocumentNotFound")

		assert.NoError(t, store.Delete(ctx, name), "deleting twice is not an error")
	})
}

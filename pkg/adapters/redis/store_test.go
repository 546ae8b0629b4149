package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/portgraph/pkg/adapters/redis"
	"github.com/aretw0/portgraph/pkg/ports"
	contract "github.com/aretw0/portgraph/pkg/ports/tests"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newClient(t)
	ports.RunDocumentStoreContract(t, redis.NewFromClient(client))
}

func TestRedisStore_LoaderContract(t *testing.T) {
	_, client := newClient(t)
	store := redis.NewFromClient(client)
	data := map[string]string{
		"simple": `{"nodes":{"A":{"out":["o"]},"B":{"in":["i"]}},"connections":[["A:o","B:i"]]}`,
		"empty":  `{"nodes":{}}`,
	}
	for name, raw := range data {
		require.NoError(t, store.Save(context.Background(), name, []byte(raw)))
	}

	contract.DocumentLoaderContractTest(t, store, data)
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := newClient(t)

	start := time.Now()
	clock := start
	store := redis.NewFromClient(client,
		redis.WithTTL(1*time.Second),
		redis.WithClock(func() time.Time { return clock }),
	)
	ctx := context.Background()

	// 1. Save
	require.NoError(t, store.Save(ctx, "doc-ttl", []byte(`{"nodes":{}}`)))

	// 2. Verify List (immediately)
	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, names, "doc-ttl")

	// 3. Fast Forward time in miniredis (key expiration) and in the index clock.
	mr.FastForward(2 * time.Second)
	clock = start.Add(2 * time.Second)

	// 4. Verify Load (should fail)
	_, err = store.Load(ctx, "doc-ttl")
	assert.ErrorIs(t, err, ports.ErrDocumentNotFound)

	// 5. Verify List (lazily cleaned up)
	names, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "my-graph", []byte("nodes:\n  A: {}\n")))

	assert.True(t, mr.Exists("custom:app:doc:my-graph"), "Expected key with custom prefix to exist")
	assert.True(t, mr.Exists("custom:app:index"), "Expected index with custom prefix to exist")

	raw, err := store.Raw(ctx, "my-graph")
	require.NoError(t, err)
	assert.Equal(t, "nodes:\n  A: {}\n", string(raw), "documents are stored verbatim")

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"my-graph"}, list)
}

func TestRedisStore_DocumentNamedIndex(t *testing.T) {
	_, client := newClient(t)
	store := redis.NewFromClient(client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "index", []byte(`{"nodes":{}}`)))
	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"index"}, names)
}

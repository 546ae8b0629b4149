package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/portgraph/pkg/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Construct(t *testing.T) {
	r := NewRegistry()
	r.Register("mix", func(ctx context.Context, name string, spec *value.Value) (any, error) {
		return "mixer:" + name, nil
	})
	r.Register(Wildcard, func(ctx context.Context, name string, spec *value.Value) (any, error) {
		return spec.Len(), nil
	})

	ctx := context.Background()

	data, ok, err := r.Construct(ctx, "mix", value.NewObject())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "mixer:mix", data)

	spec := value.NewObject(value.Field("in", value.Strings("a")))
	data, ok, err = r.Construct(ctx, "other", spec)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, data)

	assert.Equal(t, []string{"*", "mix"}, r.Names())
}

func TestRegistry_NoConstructor(t *testing.T) {
	r := NewRegistry()
	data, ok, err := r.Construct(context.Background(), "x", nil)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, data)
}

func TestRegistry_RegisterNil(t *testing.T) {
	r := NewRegistry()
	r.Register("gone", nil)
	assert.Empty(t, r.Names())

	data, ok, err := r.Construct(context.Background(), "gone", nil)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, data)

	r.Register("mix", func(ctx context.Context, name string, spec *value.Value) (any, error) {
		return "mixer", nil
	})
	r.Register(Wildcard, func(ctx context.Context, name string, spec *value.Value) (any, error) {
		return "any", nil
	})
	r.Register("mix", nil)
	assert.Equal(t, []string{Wildcard}, r.Names())

	data, ok, err = r.Construct(context.Background(), "mix", nil)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "any", data)
}

func TestRegistry_ConstructorError(t *testing.T) {
	boom := errors.New("boom")
	r := NewRegistry()
	r.Register("bad", func(ctx context.Context, name string, spec *value.Value) (any, error) {
		return nil, boom
	})

	_, ok, err := r.Construct(context.Background(), "bad", nil)
	assert.True(t, ok)
	assert.ErrorIs(t, err, boom)
}

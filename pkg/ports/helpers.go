package ports

import (
	"testing"

	"github.com/aretw0/portgraph/pkg/value"
	"github.com/stretchr/testify/require"
)

func mustGet(t *testing.T, v *value.Value, key string) *value.Value {
	t.Helper()
	member, ok := v.Get(key)
	require.True(t, ok, "missing %q", key)
	return member
}

package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/aretw0/portgraph/internal/logging"
	"github.com/aretw0/portgraph/pkg/builder"
	"github.com/aretw0/portgraph/pkg/observability"
	"github.com/aretw0/portgraph/pkg/value"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doc(t *testing.T, s string) *value.Value {
	t.Helper()
	v, err := value.ParseJSON([]byte(s))
	require.NoError(t, err)
	return v
}

func TestMetricsHooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)
	b := builder.New(builder.WithHooks(m.Hooks()))
	ctx := context.Background()

	_, err := b.Build(ctx, doc(t, `{"nodes":{"A":{"out":["o"]},"B":{"in":["i"]}},"connections":[["A:o","B:i"]]}`))
	require.NoError(t, err)

	_, err = b.Build(ctx, doc(t, `{"nodes":{"A":{"out":["o"]},"B":{"in":["i"]}},"connections":[["A:o","Z:i"]]}`))
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Builds.WithLabelValues(observability.OutcomeSuccess, "")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Builds.WithLabelValues(observability.OutcomeFailure, "UnknownNode")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.NodesCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ConnectionsWired))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.NodesReleased))

	count, err := testutil.GatherAndCount(reg, "portgraph_build_duration_seconds", "portgraph_graph_nodes")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestNewMetrics_NilRegisterer(t *testing.T) {
	m := observability.NewMetrics(nil)
	m.Hooks().OnNodeCreated(context.Background(), nil)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NodesCreated))
}

func TestLoggingHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, slog.LevelDebug, logging.FormatText)
	m := observability.NewMetrics(nil)
	b := builder.New(builder.WithHooks(m.Hooks().Merge(observability.LoggingHooks(logger))))

	_, err := b.Build(context.Background(), doc(t, `{"nodes":{"A":{"out":["o"]}},"connections":[["A:o","A:x"]]}`))
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, "msg=node_created node=A")
	assert.Contains(t, out, "msg=rollback kind=UnknownPort released=1 remaining=0")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NodesReleased))
}

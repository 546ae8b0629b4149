package observability

import (
	"context"

	"github.com/aretw0/portgraph/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "portgraph"

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics holds the build collectors.
type Metrics struct {
	Builds           *prometheus.CounterVec
	BuildDuration    *prometheus.HistogramVec
	NodesCreated     prometheus.Counter
	ConnectionsWired prometheus.Counter
	NodesReleased    prometheus.Counter
	GraphNodes       prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Builds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "builds_total",
				Help:      "Total number of graph builds by outcome and error kind",
			},
			[]string{"outcome", "kind"},
		),
		BuildDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "build_duration_seconds",
				Help:      "Duration of graph builds",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"outcome"},
		),
		NodesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "nodes_created_total",
			Help:      "Total number of nodes materialized",
		}),
		ConnectionsWired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connections_wired_total",
			Help:      "Total number of port connections wired",
		}),
		NodesReleased: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "nodes_released_total",
			Help:      "Total number of nodes released by rolled back builds",
		}),
		GraphNodes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "graph_nodes",
			Help:      "Node count of successfully built graphs",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 7),
		}),
	}

	if reg != nil {
		reg.MustRegister(m.Builds, m.BuildDuration, m.NodesCreated, m.ConnectionsWired, m.NodesReleased, m.GraphNodes)
	}
	return m
}

// Hooks returns builder hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNodeCreated: func(context.Context, *domain.NodeEvent) {
			m.NodesCreated.Inc()
		},
		OnConnected: func(context.Context, *domain.ConnectionEvent) {
			m.ConnectionsWired.Inc()
		},
		OnBuilt: func(_ context.Context, e *domain.BuildEvent) {
			m.Builds.WithLabelValues(OutcomeSuccess, "").Inc()
			m.BuildDuration.WithLabelValues(OutcomeSuccess).Observe(e.Duration.Seconds())
			m.GraphNodes.Observe(float64(e.Nodes))
		},
		OnRollback: func(_ context.Context, e *domain.RollbackEvent) {
			m.Builds.WithLabelValues(OutcomeFailure, string(e.Kind)).Inc()
			m.BuildDuration.WithLabelValues(OutcomeFailure).Observe(e.Duration.Seconds())
			m.NodesReleased.Add(float64(e.Released))
		},
	}
}

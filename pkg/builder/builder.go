package builder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/portgraph/internal/logging"
	"github.com/aretw0/portgraph/pkg/domain"
	"github.com/aretw0/portgraph/pkg/registry"
	"github.com/aretw0/portgraph/pkg/value"
)

// Builder constructs graphs from documents.
type Builder struct {
	limits   domain.Limits
	logger   *slog.Logger
	registry *registry.Registry
	hooks    Hooks
}

// New creates a Builder with default limits and a discarding logger.
func New(opts ...Option) *Builder {
	b := &Builder{
		limits: domain.DefaultLimits(),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Limits returns the capacity bounds in effect.
func (b *Builder) Limits() domain.Limits {
	return b.limits
}

// Build constructs a frozen graph from doc.
// On failure it returns a nil graph and a *domain.BuildError.
func (b *Builder) Build(ctx context.Context, doc *value.Value) (*domain.Graph, error) {
	start := time.Now()
	b.logger.Debug("Build: Starting graph construction.")

	if doc == nil {
		return nil, b.rollback(ctx, nil, start, &domain.BuildError{
			Kind:       domain.KindArgument,
			Connection: domain.NoConnection,
			Err:        fmt.Errorf("%w: nil document", domain.ErrArgument),
		})
	}
	if !doc.Is(value.Object) {
		return nil, b.rollback(ctx, nil, start, &domain.BuildError{
			Kind:       domain.KindShape,
			Connection: domain.NoConnection,
			Err:        fmt.Errorf("%w: document must be an object, got %s", domain.ErrShape, doc.Kind()),
		})
	}

	nodes, ok := doc.Get("nodes")
	if !ok || !nodes.Is(value.Object) {
		return nil, b.rollback(ctx, nil, start, &domain.BuildError{
			Kind:       domain.KindMissingNodes,
			Connection: domain.NoConnection,
			Err:        domain.ErrMissingNodes,
		})
	}

	graph := domain.NewGraph(min(nodes.Len(), b.limits.MaxNodes))

	// First pass: materialize every node and index it by name.
	if err := b.materialize(ctx, graph, nodes); err != nil {
		return nil, b.rollback(ctx, graph, start, err)
	}
	b.logger.Debug("Build: Node materialization complete.", "node_count", graph.Len())

	// Second pass: resolve connection references into port links.
	if err := b.connect(ctx, graph, doc); err != nil {
		return nil, b.rollback(ctx, graph, start, err)
	}
	b.logger.Debug("Build: Connection resolution complete.", "connection_count", graph.NumConnections())

	graph.Freeze()
	elapsed := time.Since(start)
	if b.hooks.OnBuilt != nil {
		b.hooks.OnBuilt(ctx, &domain.BuildEvent{
			EventBase:   domain.EventBase{Timestamp: time.Now(), Type: domain.EventBuilt},
			Nodes:       graph.Len(),
			Connections: graph.NumConnections(),
			Duration:    elapsed,
		})
	}

	b.logger.Info("Build: Graph construction successful.",
		"nodes", graph.Len(),
		"connections", graph.NumConnections(),
		"duration", elapsed,
	)
	return graph, nil
}

// rollback releases everything graph holds and reports the failure.
// graph may be nil when nothing was allocated yet.
func (b *Builder) rollback(ctx context.Context, graph *domain.Graph, start time.Time, err error) error {
	released := 0
	if graph != nil {
		released = graph.Release()
	}
	kind := domain.KindOf(err)

	if b.hooks.OnRollback != nil {
		b.hooks.OnRollback(ctx, &domain.RollbackEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventRollback},
			Kind:      kind,
			Released:  released,
			Remaining: graph.Len(),
			Duration:  time.Since(start),
			Err:       err,
		})
	}

	b.logger.Warn("Build: Graph construction failed, rolled back.",
		"kind", kind,
		"released", released,
		"error", err,
	)
	return err
}

package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/portgraph/pkg/domain"
)

// LoggingHooks logs every lifecycle event to logger: node and connection
// events at Debug, outcomes at Info or Warn.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNodeCreated: func(ctx context.Context, e *domain.NodeEvent) {
			logger.DebugContext(ctx, "node_created",
				"node", e.Node,
				"inputs", e.Inputs,
				"outputs", e.Outputs,
			)
		},
		OnConnected: func(ctx context.Context, e *domain.ConnectionEvent) {
			logger.DebugContext(ctx, "connected",
				"index", e.Index,
				"from", e.Connection.From.String(),
				"to", e.Connection.To.String(),
			)
		},
		OnBuilt: func(ctx context.Context, e *domain.BuildEvent) {
			logger.InfoContext(ctx, "built",
				"nodes", e.Nodes,
				"connections", e.Connections,
				"duration", e.Duration,
			)
		},
		OnRollback: func(ctx context.Context, e *domain.RollbackEvent) {
			logger.WarnContext(ctx, "rollback",
				"kind", e.Kind,
				"released", e.Released,
				"remaining", e.Remaining,
				"error", e.Err,
			)
		},
	}
}

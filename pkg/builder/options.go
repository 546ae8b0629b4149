package builder

import (
	"log/slog"

	"github.com/aretw0/portgraph/pkg/domain"
	"github.com/aretw0/portgraph/pkg/registry"
)

// Hooks are the lifecycle callbacks fired while building.
type Hooks = domain.LifecycleHooks

// Option configures a Builder.
type Option func(*Builder)

// WithLimits sets the capacity bounds. Unset fields keep their defaults.
func WithLimits(l domain.Limits) Option {
	return func(b *Builder) {
		b.limits = l.WithDefaults()
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithRegistry attaches node-data constructors run during node materialization.
func WithRegistry(r *registry.Registry) Option {
	return func(b *Builder) {
		b.registry = r
	}
}

// WithHooks registers lifecycle callbacks. Repeated calls accumulate.
func WithHooks(h Hooks) Option {
	return func(b *Builder) {
		b.hooks = b.hooks.Merge(h)
	}
}

package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/portgraph"
	"github.com/aretw0/portgraph/internal/config"
	fileAdapter "github.com/aretw0/portgraph/pkg/adapters/file"
	redisAdapter "github.com/aretw0/portgraph/pkg/adapters/redis"
	"github.com/aretw0/portgraph/pkg/observability"
	"github.com/aretw0/portgraph/pkg/ports"
)

// OpenStore returns the writable document store selected by cfg.Loader.Kind,
// with its close func. The loam repository is read-only and has no store.
func OpenStore(cfg *config.Config) (ports.DocumentStore, func() error, error) {
	switch cfg.Loader.Kind {
	case config.LoaderFile:
		return fileAdapter.New(cfg.Loader.Dir), func() error { return nil }, nil
	case config.LoaderRedis:
		opts := []redisAdapter.Option{redisAdapter.WithPrefix(cfg.Redis.Prefix)}
		if cfg.Redis.TTL > 0 {
			opts = append(opts, redisAdapter.WithTTL(cfg.Redis.TTL))
		}
		store := redisAdapter.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...)
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("loader %q is read-only; use %s or %s", cfg.Loader.Kind, config.LoaderFile, config.LoaderRedis)
	}
}

// CreateEngine initializes an Engine with standard CLI conventions: the
// configured loader and limits, and debug hooks when the logger is verbose.
// The returned close func releases the loader.
func CreateEngine(cfg *config.Config, logger *slog.Logger, extra ...portgraph.Option) (*portgraph.Engine, func() error, error) {
	engineOpts := []portgraph.Option{
		portgraph.WithLogger(logger),
		portgraph.WithLimits(cfg.Limits),
	}
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		engineOpts = append(engineOpts, portgraph.WithLifecycleHooks(observability.LoggingHooks(logger)))
	}

	closeFn := func() error { return nil }
	if cfg.Loader.Kind != config.LoaderLoam {
		store, c, err := OpenStore(cfg)
		if err != nil {
			return nil, nil, err
		}
		closeFn = c
		engineOpts = append(engineOpts, portgraph.WithLoader(store))
	}
	engineOpts = append(engineOpts, extra...)

	engine, err := portgraph.New(cfg.Loader.Dir, engineOpts...)
	if err != nil {
		_ = closeFn()
		return nil, nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, closeFn, nil
}

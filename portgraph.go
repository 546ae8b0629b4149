package portgraph

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/portgraph/internal/logging"
	"github.com/aretw0/portgraph/internal/presentation/graph"
	"github.com/aretw0/portgraph/internal/validator"
	loamAdapter "github.com/aretw0/portgraph/pkg/adapters/loam"
	"github.com/aretw0/portgraph/pkg/builder"
	"github.com/aretw0/portgraph/pkg/domain"
	"github.com/aretw0/portgraph/pkg/ports"
	"github.com/aretw0/portgraph/pkg/registry"
	"github.com/aretw0/portgraph/pkg/value"
)

// Engine is the high-level entry point for the library.
// It pairs a document loader with a graph builder.
type Engine struct {
	builder  *builder.Builder
	loader   ports.DocumentLoader
	limits   domain.Limits
	registry *registry.Registry
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	Name     string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks. Repeated calls merge.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithLoader injects a custom DocumentLoader, bypassing the default Loam initialization.
func WithLoader(l ports.DocumentLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLimits overrides the build bounds. Zero fields keep their defaults.
func WithLimits(l domain.Limits) Option {
	return func(e *Engine) {
		e.limits = l
	}
}

// WithRegistry sets the node-data constructors used while building.
func WithRegistry(r *registry.Registry) Option {
	return func(e *Engine) {
		e.registry = r
	}
}

// New initializes a new Engine.
// By default, it reads documents from a Loam repository at the given path.
// If WithLoader option is provided, repoPath can be empty and Loam is skipped.
func New(repoPath string, opts ...Option) (*Engine, error) {
	eng := &Engine{limits: domain.DefaultLimits()}

	for _, opt := range opts {
		opt(eng)
	}

	if eng.loader == nil {
		if repoPath == "" {
			return nil, fmt.Errorf("repoPath is required when no custom loader is provided")
		}
		loader, err := loamAdapter.Open(repoPath)
		if err != nil {
			return nil, err
		}
		eng.loader = loader
	}
	if repoPath != "" {
		absPath, err := filepath.Abs(repoPath)
		if err != nil {
			return nil, fmt.Errorf("invalid path: %w", err)
		}
		eng.Name = filepath.Base(absPath)
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("repo", eng.Name)
	}

	eng.builder = builder.New(
		builder.WithLimits(eng.limits),
		builder.WithLogger(eng.logger),
		builder.WithRegistry(eng.registry),
		builder.WithHooks(eng.hooks),
	)
	return eng, nil
}

// Build builds a parsed document.
func (e *Engine) Build(ctx context.Context, doc *value.Value) (*domain.Graph, error) {
	return e.builder.Build(ctx, doc)
}

// BuildBytes parses data and builds it. An empty format is detected from the content.
func (e *Engine) BuildBytes(ctx context.Context, data []byte, format value.Format) (*domain.Graph, error) {
	if format == "" {
		format = value.DetectFormat(data)
	}
	doc, err := value.Parse(data, format)
	if err != nil {
		return nil, err
	}
	return e.Build(ctx, doc)
}

// BuildFile reads and builds a document file. The format follows the extension.
func (e *Engine) BuildFile(ctx context.Context, path string) (*domain.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return e.BuildBytes(ctx, data, value.FormatFromPath(path))
}

// Load builds the named document of the loader.
func (e *Engine) Load(ctx context.Context, name string) (*domain.Graph, error) {
	doc, err := e.loader.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("Loaded document", "document", name)
	return e.Build(ctx, doc)
}

// List returns the document names of the loader.
func (e *Engine) List(ctx context.Context) ([]string, error) {
	return e.loader.List(ctx)
}

// Print writes the text dump of g to w.
func (e *Engine) Print(w io.Writer, g *domain.Graph) error {
	return graph.Print(w, g)
}

// Mermaid renders g as a Mermaid flowchart.
func (e *Engine) Mermaid(g *domain.Graph) string {
	return graph.GenerateMermaid(g, nil)
}

// Describe renders g as a Markdown summary.
func (e *Engine) Describe(g *domain.Graph) string {
	return graph.Describe(g)
}

// Validate lints g. With strict, unconnected inputs are errors.
func (e *Engine) Validate(g *domain.Graph, strict bool) (*validator.Report, error) {
	return validator.ValidateGraph(g, validator.Options{Strict: strict})
}

// Loader returns the underlying DocumentLoader used by the engine.
func (e *Engine) Loader() ports.DocumentLoader {
	return e.loader
}

// Limits returns the bounds the engine builds with.
func (e *Engine) Limits() domain.Limits {
	return e.builder.Limits()
}

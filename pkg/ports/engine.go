package ports

import (
	"context"

	"github.com/aretw0/portgraph/pkg/domain"
	"github.com/aretw0/portgraph/pkg/value"
)

// GraphEngine is the surface the transport adapters (HTTP, MCP) drive.
type GraphEngine interface {
	// Build builds a parsed document.
	Build(ctx context.Context, doc *value.Value) (*domain.Graph, error)

	// Load builds the named document from the configured loader.
	Load(ctx context.Context, name string) (*domain.Graph, error)

	// List returns the document names of the configured loader.
	List(ctx context.Context) ([]string, error)
}

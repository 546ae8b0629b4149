package ports

import (
	"context"
	"errors"

	"github.com/aretw0/portgraph/pkg/value"
)

// ErrDocumentNotFound is returned by loaders for unknown document names.
var ErrDocumentNotFound = errors.New("document not found")

// DocumentLoader defines how graph documents are retrieved by name.
// This allows the storage layer (files, Loam, Redis, memory) to be decoupled
// from building.
type DocumentLoader interface {
	// Load retrieves and parses the named document.
	// It returns ErrDocumentNotFound (possibly wrapped) if it does not exist.
	Load(ctx context.Context, name string) (*value.Value, error)

	// List returns the names of all available documents, sorted.
	// This is used by introspection tools (e.g. 'portgraph store list', GET /graphs).
	List(ctx context.Context) ([]string, error)
}

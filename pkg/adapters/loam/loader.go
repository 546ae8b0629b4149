package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/portgraph/pkg/ports"
	"github.com/aretw0/portgraph/pkg/value"
)

// Loader adapts the Loam library to the ports.DocumentLoader interface.
type Loader struct {
	Repo *loam.TypedRepository[GraphMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[GraphMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Open initializes a read-only Loam repository at dir and wraps it.
func Open(dir string) (*Loader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve loam directory: %w", err)
	}
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to init loam repo: %w", err)
	}
	return New(loam.NewTypedRepository[GraphMetadata](repo)), nil
}

// Load retrieves a graph document by name.
// Loam resolves the name to a file (e.g. "shader" to shader.md or shader.json).
func (l *Loader) Load(ctx context.Context, name string) (*value.Value, error) {
	doc, err := l.Repo.Get(ctx, name)
	if err != nil {
		if known, listErr := l.has(ctx, name); listErr == nil && !known {
			return nil, fmt.Errorf("%w: %s", ports.ErrDocumentNotFound, name)
		}
		return nil, fmt.Errorf("loam get failed for %s: %w", name, err)
	}

	return toDocument(doc.Data)
}

// toDocument rebuilds the graph document from typed metadata. Absent sections
// stay absent so the builder reports them.
func toDocument(meta GraphMetadata) (*value.Value, error) {
	raw := make(map[string]any)
	if meta.Nodes != nil {
		raw["nodes"] = meta.Nodes
	}
	if meta.Connections != nil {
		raw["connections"] = meta.Connections
	}

	doc, err := value.FromAny(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to convert loam document: %w", err)
	}
	return doc, nil
}

// List lists all graph documents in the repository.
func (l *Loader) List(ctx context.Context) ([]string, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	ids := make([]string, 0, len(docs))

	for _, doc := range docs {
		// Use the ID from metadata if available, otherwise filename ID
		rawID := doc.Data.ID
		if rawID == "" {
			rawID = doc.ID
		}
		id := trimExtension(rawID)

		// Collision Detection
		if existingPath, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existingPath, doc.ID)
		}
		seen[id] = doc.ID
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (l *Loader) has(ctx context.Context, name string) (bool, error) {
	ids, err := l.List(ctx)
	if err != nil {
		return false, err
	}
	want := trimExtension(name)
	for _, id := range ids {
		if id == want {
			return true, nil
		}
	}
	return false, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}

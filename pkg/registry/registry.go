package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/portgraph/pkg/value"
)

// Wildcard registers a constructor used for nodes without a dedicated one.
const Wildcard = "*"

// Constructor builds the data attached to a node while the graph is built.
// It receives the node name and the node's spec object from the document.
type Constructor func(ctx context.Context, name string, spec *value.Value) (any, error)

// Registry manages the available node-data constructors.
type Registry struct {
	mu           sync.RWMutex
	constructors map[string]Constructor
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		constructors: make(map[string]Constructor),
	}
}

// Register adds a constructor for a node name (or Wildcard).
// If a constructor with the same name exists, it is overwritten.
// A nil fn removes the registration.
func (r *Registry) Register(name string, fn Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if fn == nil {
		delete(r.constructors, name)
		return
	}
	r.constructors[name] = fn
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.constructors))
	for name := range r.constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Construct runs the constructor for name, falling back to the wildcard one.
// It returns (nil, false, nil) when no constructor applies.
func (r *Registry) Construct(ctx context.Context, name string, spec *value.Value) (any, bool, error) {
	r.mu.RLock()
	fn, ok := r.constructors[name]
	if !ok {
		fn, ok = r.constructors[Wildcard]
	}
	r.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}

	data, err := fn(ctx, name, spec)
	if err != nil {
		return nil, true, fmt.Errorf("constructor for %s: %w", name, err)
	}
	return data, true, nil
}

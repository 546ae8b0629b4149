package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/portgraph/pkg/ports"
	"github.com/aretw0/portgraph/pkg/value"
)

// Store implements ports.DocumentStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string][]byte
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string][]byte),
	}
}

// Save validates and keeps a private copy of data.
func (s *Store) Save(ctx context.Context, name string, data []byte) error {
	if name == "" {
		return fmt.Errorf("document name cannot be empty")
	}
	if _, err := value.Parse(data, value.DetectFormat(data)); err != nil {
		return fmt.Errorf("invalid document %s: %w", name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = append([]byte(nil), data...)
	return nil
}

// Load parses the stored document.
func (s *Store) Load(ctx context.Context, name string) (*value.Value, error) {
	s.mu.RLock()
	raw, ok := s.data[name]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ports.ErrDocumentNotFound, name)
	}
	return value.Parse(raw, value.DetectFormat(raw))
}

// Delete removes the document.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns the stored document names.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names) // Deterministic order
	return names, nil
}

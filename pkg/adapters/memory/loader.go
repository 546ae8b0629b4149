package memory

import (
	"fmt"

	"github.com/aretw0/portgraph/pkg/value"
)

// NewLoader creates a Store preloaded with raw documents (JSON or YAML text).
// Unlike Save, it does not validate: a broken document fails on Load.
func NewLoader(data map[string]string) *Store {
	s := NewStore()
	for name, raw := range data {
		s.data[name] = []byte(raw)
	}
	return s
}

// NewFromValues creates a Store from parsed documents.
// This handles serialization automatically, improving DX for tests.
func NewFromValues(docs map[string]*value.Value) (*Store, error) {
	s := NewStore()
	for name, doc := range docs {
		if name == "" {
			return nil, fmt.Errorf("document missing name")
		}
		raw, err := doc.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("failed to marshal document %s: %w", name, err)
		}
		s.data[name] = raw
	}
	return s, nil
}

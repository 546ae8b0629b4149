package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/portgraph/pkg/ports"
	"github.com/aretw0/portgraph/pkg/value"
)

// DocumentLoaderContractTest is a reusable test suite that verifies if an adapter
// complies with ports.DocumentLoader. setupData maps each document name the
// loader holds to its JSON text.
func DocumentLoaderContractTest(t *testing.T, loader ports.DocumentLoader, setupData map[string]string) {
	t.Helper()
	ctx := context.Background()

	// 1. Test Load (Success)
	t.Run("Load_Success", func(t *testing.T) {
		for name, raw := range setupData {
			expected, err := value.ParseJSON([]byte(raw))
			if err != nil {
				t.Fatalf("invalid setup document %s: %v", name, err)
			}
			loaded, err := loader.Load(ctx, name)
			if err != nil {
				t.Fatalf("unexpected error loading %s: %v", name, err)
			}

			want, _ := expected.MarshalJSON()
			got, err := loaded.MarshalJSON()
			if err != nil {
				t.Fatalf("cannot re-encode %s: %v", name, err)
			}
			if string(got) != string(want) {
				t.Errorf("content mismatch for %s. got %s, want %s", name, got, want)
			}
		}
	})

	// 2. Test Load (NotFound)
	t.Run("Load_NotFound", func(t *testing.T) {
		_, err := loader.Load(ctx, "non-existent-document")
		if !errors.Is(err, ports.ErrDocumentNotFound) {
			t.Errorf("expected ErrDocumentNotFound for non-existent document, got %v", err)
		}
	})

	// 3. Test List
	t.Run("List", func(t *testing.T) {
		names, err := loader.List(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing documents: %v", err)
		}

		if len(names) != len(setupData) {
			t.Errorf("expected %d documents, got %d (%v)", len(setupData), len(names), names)
		}

		// Verify all expected names are present
		lookup := make(map[string]bool)
		for _, name := range names {
			lookup[name] = true
		}

		for name := range setupData {
			if !lookup[name] {
				t.Errorf("document %s missing from list", name)
			}
		}
	})
}

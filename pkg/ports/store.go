package ports

import "context"

// DocumentStore is a DocumentLoader that can also write documents.
type DocumentStore interface {
	DocumentLoader

	// Save stores the raw document (JSON or YAML text) under name,
	// replacing any previous version. Implementations reject unparsable data.
	Save(ctx context.Context, name string, data []byte) error

	// Delete removes the named document.
	// Deleting a missing document is not an error.
	Delete(ctx context.Context, name string) error
}

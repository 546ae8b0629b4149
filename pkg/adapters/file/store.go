package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/portgraph/pkg/ports"
	"github.com/aretw0/portgraph/pkg/value"
)

// Extensions are the document file extensions, in lookup order.
var Extensions = []string{".json", ".yaml", ".yml"}

// Store implements ports.DocumentStore using the local filesystem.
// Document "name" lives in <BasePath>/name.json, .yaml or .yml.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to the current directory.
func New(basePath string) *Store {
	if basePath == "" {
		basePath = "."
	}
	return &Store{BasePath: basePath}
}

// Load reads and parses the first existing file for name.
func (s *Store) Load(ctx context.Context, name string) (*value.Value, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}

	for _, ext := range Extensions {
		path := filepath.Join(s.BasePath, name+ext)
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read document file: %w", err)
		}

		doc, err := value.Parse(data, value.FormatFromPath(path))
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return doc, nil
	}
	return nil, fmt.Errorf("%w: %s", ports.ErrDocumentNotFound, name)
}

// Save validates data and writes it atomically. JSON text lands in name.json,
// anything else in name.yaml; other variants of name are removed.
func (s *Store) Save(ctx context.Context, name string, data []byte) error {
	if err := checkName(name); err != nil {
		return err
	}
	format := value.DetectFormat(data)
	if _, err := value.Parse(data, format); err != nil {
		return fmt.Errorf("invalid document %s: %w", name, err)
	}

	// Ensure directory exists
	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure document directory: %w", err)
	}

	ext := ".json"
	if format == value.FormatYAML {
		ext = ".yaml"
	}
	if err := writeAtomic(s.BasePath, name+ext, data); err != nil {
		return err
	}

	for _, other := range Extensions {
		if other == ext {
			continue
		}
		if err := os.Remove(filepath.Join(s.BasePath, name+other)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove stale document file: %w", err)
		}
	}
	return nil
}

// Delete removes every file variant of name.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	for _, ext := range Extensions {
		err := os.Remove(filepath.Join(s.BasePath, name+ext))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to delete document file: %w", err)
		}
	}
	return nil
}

// List returns the names of all documents in BasePath.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	seen := make(map[string]bool)
	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), "tmp-") {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !isDocumentExt(ext) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// writeAtomic writes to a temporary file first, syncs via fsync, and then
// renames it to the destination.
func writeAtomic(dir, filename string, data []byte) error {
	// Same directory keeps the rename on one filesystem.
	tmpFile, err := os.CreateTemp(dir, "tmp-"+filename+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Cleanup temp file in case of failure
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Cannot rename an open file on Windows
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	destPath := filepath.Join(dir, filename)
	// On Windows, os.Rename fails if dest exists.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing document file for overwrite: %w", err)
		}
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to document: %w", err)
	}
	return nil
}

func checkName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid document name %q", name)
	}
	return nil
}

func isDocumentExt(ext string) bool {
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

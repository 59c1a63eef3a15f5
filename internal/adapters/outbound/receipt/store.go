package receipt

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gowebpki/jcs"

	"github.com/dodgate/dodgate/internal/domain"
)

// Store is a file-based implementation of domain.ReceiptStore. Receipts
// are persisted as RFC 8785 canonical JSON so byte-identical input always
// produces byte-identical files.
type Store struct {
	dir string
}

// New creates a receipt store rooted at dir.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Save writes the receipt to <dir>/<YYYY-MM-DD-HHMMSS>.json and returns
// the path.
func (s *Store) Save(r *domain.Receipt) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating receipts dir: %w", err)
	}

	data, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("encoding receipt: %w", err)
	}
	canonical, err := jcs.Transform(data)
	if err != nil {
		return "", fmt.Errorf("canonicalizing receipt: %w", err)
	}

	path := filepath.Join(s.dir, r.Timestamp.Format("2006-01-02-150405")+".json")
	if err := os.WriteFile(path, canonical, 0o644); err != nil {
		return "", fmt.Errorf("writing receipt: %w", err)
	}
	return path, nil
}

// Load reads a receipt back from disk.
func (s *Store) Load(path string) (*domain.Receipt, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading receipt: %w", err)
	}

	var r domain.Receipt
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decoding receipt %s: %w", filepath.Base(path), err)
	}
	return &r, nil
}

// List returns the paths of all stored receipts, oldest first.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var paths []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			paths = append(paths, filepath.Join(s.dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

package profile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dodgate/dodgate/internal/domain"
)

const fileName = ".dodgate.yaml"

// YAMLLoader implements domain.ProfileLoader by reading .dodgate.yaml from
// the workspace root.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .dodgate.yaml from workspaceRoot. Returns the built-in
// default profile when the file does not exist.
func (l *YAMLLoader) Load(workspaceRoot string) (*domain.DodProfile, error) {
	path := filepath.Join(workspaceRoot, fileName)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return domain.DefaultProfile(), nil
	}
	return l.LoadFile(path)
}

// LoadFile parses and validates a profile file. Parse errors and
// validation errors surface identically, wrapped with the file name.
func (l *YAMLLoader) LoadFile(path string) (*domain.DodProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}

	var p domain.DodProfile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("invalid profile %s: %w", filepath.Base(path), err)
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile %s: %w", filepath.Base(path), err)
	}

	return &p, nil
}

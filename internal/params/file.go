package params

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// FileStore holds parameters loaded once from a flat file. Values are frozen
// at load time; re-reading requires constructing a new store.
type FileStore struct {
	values map[string]string
}

// LoadFile reads a parameter file based on its extension.
// Supports: .yaml/.yml, .json, .toml. Non-string scalar values (numbers,
// booleans) are rejected: the store is string-to-string by contract.
func LoadFile(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("empty params path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	values := map[string]string{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &values); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(b, &values); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, &values); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported params extension: %s", ext)
	}
	return &FileStore{values: values}, nil
}

// NewStaticStore wraps an in-memory map, mainly for tests and CLI overrides.
func NewStaticStore(values map[string]string) *FileStore {
	m := make(map[string]string, len(values))
	for k, v := range values {
		m[k] = v
	}
	return &FileStore{values: m}
}

func (s *FileStore) Get(_ context.Context, key string) (string, error) {
	v, ok := s.values[key]
	if !ok {
		return "", ErrKeyNotFound(key)
	}
	return v, nil
}

package geo

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Veraticus/sweep/internal/common"
)

// Lookup maps cleaned province names to standardized labels.
// It is read-only once loaded.
type Lookup struct {
	entries map[string]string
}

// NewLookup builds a lookup from a key to label map.
func NewLookup(entries map[string]string) *Lookup {
	copied := make(map[string]string, len(entries))
	for k, v := range entries {
		copied[k] = v
	}
	return &Lookup{entries: copied}
}

// LoadLookup reads a JSON or YAML key to label file.
func LoadLookup(path string) (*Lookup, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided mapping path
	if err != nil {
		return nil, fmt.Errorf("failed to read province mapping: %w", err)
	}

	entries := map[string]string{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &entries)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &entries)
	default:
		return nil, fmt.Errorf("%w: province mapping %s", common.ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse province mapping %s: %w", path, err)
	}

	return &Lookup{entries: entries}, nil
}

// Canonical returns the standardized label for name, or name itself when
// the mapping has no entry.
func (l *Lookup) Canonical(name string) string {
	if l == nil {
		return name
	}
	if label, ok := l.entries[name]; ok {
		return label
	}
	return name
}

// Len returns the number of entries.
func (l *Lookup) Len() int {
	if l == nil {
		return 0
	}
	return len(l.entries)
}

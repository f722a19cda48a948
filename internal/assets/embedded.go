package assets

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"
)

//go:embed masters/*.yaml
var masters embed.FS

// EmbeddedLoader loads masters from the embedded filesystem.
// Implements MasterLoader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadMaster loads an embedded master by name.
func (e *EmbeddedLoader) LoadMaster(name string) (*Master, error) {
	if err := ValidateMasterName(name); err != nil {
		return nil, err
	}

	content, err := masters.ReadFile("masters/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrMasterNotFound, name)
	}

	return ParseMaster(name, content)
}

// ListMasters returns the embedded master names.
func (e *EmbeddedLoader) ListMasters() ([]string, error) {
	entries, err := masters.ReadDir("masters")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	var names []string
	for _, entry := range entries {
		if ext := path.Ext(entry.Name()); ext == ".yaml" {
			names = append(names, strings.TrimSuffix(entry.Name(), ext))
		}
	}
	sort.Strings(names)
	return names, nil
}

// Compile-time interface check.
var _ MasterLoader = (*EmbeddedLoader)(nil)

package assets

import (
	"errors"
	"sort"
)

// AssetResolver combines custom and embedded loaders with fallback logic.
// When a custom loader is configured, it tries custom first, then falls back
// to embedded if the master is not found in the custom location.
type AssetResolver struct {
	custom   MasterLoader // nil if no custom path configured
	embedded MasterLoader
}

// NewAssetResolver creates an AssetResolver.
// If customBasePath is empty, only embedded masters are used.
// Returns error if customBasePath is set but invalid.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	resolver := &AssetResolver{
		embedded: NewEmbeddedLoader(),
	}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}

	return resolver, nil
}

// LoadMaster loads a master, trying the custom loader first if available.
// Only a not-found error falls back; invalid masters and I/O errors do not.
func (r *AssetResolver) LoadMaster(name string) (*Master, error) {
	if r.custom == nil {
		return r.embedded.LoadMaster(name)
	}

	m, err := r.custom.LoadMaster(name)
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, ErrMasterNotFound) {
		return nil, err
	}

	return r.embedded.LoadMaster(name)
}

// ListMasters returns the union of custom and embedded master names.
func (r *AssetResolver) ListMasters() ([]string, error) {
	names, err := r.embedded.ListMasters()
	if err != nil {
		return nil, err
	}
	if r.custom == nil {
		return names, nil
	}

	custom, err := r.custom.ListMasters()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		seen[n] = true
	}
	for _, n := range custom {
		if !seen[n] {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names, nil
}

// HasCustomLoader returns true if a custom master loader is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

// Compile-time interface check.
var _ MasterLoader = (*AssetResolver)(nil)

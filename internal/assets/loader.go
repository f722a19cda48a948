package assets

import (
	"fmt"
	"strings"
)

// MasterLoader defines the contract for loading slide masters.
type MasterLoader interface {
	// LoadMaster loads a master by name (without .yaml extension).
	// Returns ErrMasterNotFound if the master doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadMaster(name string) (*Master, error)

	// ListMasters returns the names of the masters the loader can find,
	// sorted.
	ListMasters() ([]string, error)
}

// ValidateMasterName checks that a master name can be used as a file name
// under a masters directory. Path separators, dots and whitespace are
// rejected, which rules out traversal and extension tricks.
func ValidateMasterName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\. \t\n") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

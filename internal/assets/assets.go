package assets

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadMaster loads an embedded master by name.
// Returns ErrMasterNotFound if the master does not exist.
// Returns ErrInvalidAssetName if the name contains path separators or traversal.
func LoadMaster(name string) (*Master, error) {
	return defaultLoader.LoadMaster(name)
}

// ListMasters returns the names of the embedded masters.
func ListMasters() ([]string, error) {
	return defaultLoader.ListMasters()
}

package md2pptx

import (
	"errors"
	"fmt"

	"github.com/cblegare/md2pptx/internal/assets"
)

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown = errors.New("markdown content cannot be empty")

	// ErrMasterNotFound wraps the asset layer's not-found error, so either
	// sentinel matches with errors.Is.
	ErrMasterNotFound = fmt.Errorf("cannot use slide master: %w", assets.ErrMasterNotFound)

	ErrInvalidMaster    = errors.New("invalid slide master")
	ErrInvalidAssetPath = errors.New("invalid asset path")
	ErrInvalidOption    = errors.New("invalid style override")
	ErrInvalidWorkers   = errors.New("invalid worker count")
)

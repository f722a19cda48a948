package main

import (
	"errors"
	"os"

	"github.com/cblegare/md2pptx"
	"github.com/cblegare/md2pptx/internal/config"
	"github.com/cblegare/md2pptx/internal/options"
)

// Exit codes for the md2pptx CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidField) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, options.ErrUnknownOption) ||
		errors.Is(err, md2pptx.ErrEmptyMarkdown) ||
		errors.Is(err, md2pptx.ErrMasterNotFound) ||
		errors.Is(err, md2pptx.ErrInvalidMaster) ||
		errors.Is(err, md2pptx.ErrInvalidAssetPath) ||
		errors.Is(err, md2pptx.ErrInvalidOption) ||
		errors.Is(err, md2pptx.ErrInvalidWorkers) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidOverride) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}

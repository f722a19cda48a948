package options

import "errors"

// Sentinel errors for option resolution.
var (
	ErrUnknownOption = errors.New("unknown option")
	ErrInvalidValue  = errors.New("invalid option value")
	ErrNotDynamic    = errors.New("option cannot be changed by a dynamic directive")
)

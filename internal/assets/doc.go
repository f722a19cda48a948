// Package assets provides the slide masters that fix slide size and the
// title placeholders of title and section slides.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	MasterLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in masters)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// EmbeddedLoader provides the built-in masters (default, standard43)
// embedded at compile time.
//
// FilesystemLoader allows users to provide custom masters from a directory,
// with path traversal protection and symlink resolution.
//
// AssetResolver is the loader used by the converter. It tries the custom
// FilesystemLoader first, falling back to EmbeddedLoader if the master is
// not found. This enables overriding one master while keeping the others.
//
// # Directory Structure
//
//	{basePath}/
//	└── masters/
//	    └── {name}.yaml          # slide size and placeholders, in inches
//
// # Security
//
// Master names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets

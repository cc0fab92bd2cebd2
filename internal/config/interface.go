package config

import (
	"context"
)

// Loader is the interface for a format-specific method file loader.
type Loader interface {
	// Extensions lists the file extensions (with the leading dot) this
	// loader understands.
	Extensions() []string

	// LoadFile reads a single file and translates every method it declares
	// into the format-agnostic model. The returned methods are validated.
	LoadFile(ctx context.Context, path string) ([]*Method, error)
}

package registry

import (
	"context"
	"fmt"
	"os"

	"github.com/kajjjak/ATM/internal/config"
)

// Lookup resolves a method code first and a file path second. A path that
// was not loaded yet is loaded and registered; it must declare exactly one
// method.
func (r *Registry) Lookup(ctx context.Context, codeOrPath string) (*config.Method, error) {
	if m, ok := r.byName[codeOrPath]; ok {
		return m, nil
	}

	info, err := os.Stat(codeOrPath)
	if err != nil || info.IsDir() {
		return nil, fmt.Errorf("%w: %q is neither a registered method nor a method file", ErrMethodNotFound, codeOrPath)
	}

	methods, err := r.loadFile(ctx, codeOrPath)
	if err != nil {
		return nil, err
	}
	switch len(methods) {
	case 0:
		return nil, fmt.Errorf("%w: %s declares no method", ErrMethodNotFound, codeOrPath)
	case 1:
		return methods[0], nil
	default:
		return nil, fmt.Errorf("%s declares %d methods; look one up by name instead", codeOrPath, len(methods))
	}
}

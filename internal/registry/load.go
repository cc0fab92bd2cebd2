package registry

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/kajjjak/ATM/internal/config"
	"github.com/kajjjak/ATM/internal/ctxlog"
	"github.com/kajjjak/ATM/internal/fsutil"
)

// Load walks each path, which may be a file or a directory, and registers
// the methods of every file a loader understands. A path that does not
// exist is skipped.
func (r *Registry) Load(ctx context.Context, paths ...string) error {
	logger := ctxlog.FromContext(ctx)
	extensions := r.Extensions()
	slices.Sort(extensions)

	for _, root := range paths {
		logger.Debug("Registry loading methods from path...", "path", root)

		files, err := fsutil.FindFilesByExtension(root, extensions...)
		if err != nil {
			logger.Error("Failed to walk methods path", "path", root, "error", err)
			return err
		}
		if len(files) == 0 {
			logger.Warn("No method files found in path", "path", root, "extensions", extensions)
			continue
		}
		logger.Debug("Found method files to load", "files", files)

		for _, file := range files {
			if _, err := r.loadFile(ctx, file); err != nil {
				return err
			}
		}
	}

	logger.Info("Registry loaded successfully.", "methods_loaded", len(r.methods))
	return nil
}

// loadFile reads one file with the loader registered for its extension. A
// file that was already loaded is not read again.
func (r *Registry) loadFile(ctx context.Context, path string) ([]*config.Method, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", path, err)
	}
	if methods, ok := r.byPath[abs]; ok {
		return methods, nil
	}

	loader, ok := r.loaders[strings.ToLower(filepath.Ext(abs))]
	if !ok {
		return nil, fmt.Errorf("no loader for %s; supported extensions are %s", path, strings.Join(r.Extensions(), ", "))
	}
	methods, err := loader.LoadFile(ctx, abs)
	if err != nil {
		return nil, err
	}
	if err := r.register(abs, methods); err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("Successfully loaded methods from file", "file", abs, "count", len(methods))
	return methods, nil
}

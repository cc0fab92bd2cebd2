// Package fsutil provides file system utility functions.
package fsutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// FindFilesByExtension recursively searches the given root path for all files
// ending with one of the specified extensions and returns their full paths
// in lexical order. A root that is itself a matching file is returned as is;
// a root that does not exist yields no files.
func FindFilesByExtension(rootPath string, extensions ...string) ([]string, error) {
	if len(extensions) == 0 {
		panic("at least one extension is required")
	}

	match := func(name string) bool {
		return slices.ContainsFunc(extensions, func(ext string) bool {
			return strings.EqualFold(filepath.Ext(name), ext)
		})
	}

	info, err := os.Stat(rootPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error accessing path %s: %w", rootPath, err)
	}
	if !info.IsDir() {
		if match(rootPath) {
			return []string{rootPath}, nil
		}
		return nil, nil
	}

	var files []string
	err = filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && match(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

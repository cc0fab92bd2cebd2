package yamlmethod

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/kajjjak/ATM/internal/config"
	"github.com/kajjjak/ATM/internal/ctxlog"
	"gopkg.in/yaml.v3"
)

// Loader implements config.Loader for YAML method files.
type Loader struct{}

// NewLoader creates a new YAML method loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Extensions implements config.Loader.
func (l *Loader) Extensions() []string { return []string{".yaml", ".yml"} }

// LoadFile reads every method document in a YAML file.
func (l *Loader) LoadFile(ctx context.Context, path string) ([]*config.Method, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read YAML file %s: %w", path, err)
	}
	methods, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", path, err)
	}
	for _, m := range methods {
		m.Source = path
	}

	ctxlog.FromContext(ctx).Debug("Loaded YAML method file.", "file", path, "methods", len(methods))
	return methods, nil
}

// Parse decodes all method documents in data.
func Parse(data []byte) ([]*config.Method, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var methods []*config.Method
	for i := 0; ; i++ {
		var doc document
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		methods = append(methods, doc.method())
	}
	return methods, nil
}

package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/kajjjak/ATM/internal/config"
	"github.com/kajjjak/ATM/internal/ctxlog"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL method loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Extensions implements config.Loader.
func (l *Loader) Extensions() []string { return []string{".hcl"} }

// LoadFile parses one HCL file and translates every method block in it.
func (l *Loader) LoadFile(ctx context.Context, path string) ([]*config.Method, error) {
	logger := ctxlog.FromContext(ctx)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	methods := make([]*config.Method, 0, len(root.Methods))
	for _, mb := range root.Methods {
		m, diags := translateMethod(mb)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode method %q in %s: %w", mb.Name, path, diags)
		}
		m.Source = path
		methods = append(methods, m)
	}

	logger.Debug("Loaded HCL method file.", "file", path, "methods", len(methods))
	return methods, nil
}

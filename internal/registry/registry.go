package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kajjjak/ATM/internal/config"
)

// ErrMethodNotFound is returned by Lookup for a code that is not registered
// and is not the path of a method file.
var ErrMethodNotFound = errors.New("method not found")

// Registry holds the registered loaders and the methods they loaded.
type Registry struct {
	loaders map[string]config.Loader
	methods []*config.Method
	byName  map[string]*config.Method
	// byPath lists the methods declared by each loaded file.
	byPath map[string][]*config.Method
}

// New creates a registry that reads files with the given loaders.
func New(loaders ...config.Loader) *Registry {
	r := &Registry{
		loaders: make(map[string]config.Loader),
		byName:  make(map[string]*config.Method),
		byPath:  make(map[string][]*config.Method),
	}
	for _, l := range loaders {
		r.RegisterLoader(l)
	}
	return r
}

// RegisterLoader registers a loader for each of its extensions.
func (r *Registry) RegisterLoader(l config.Loader) {
	for _, ext := range l.Extensions() {
		ext = strings.ToLower(ext)
		if _, exists := r.loaders[ext]; exists {
			panic(fmt.Sprintf("loader for extension '%s' already registered", ext))
		}
		slog.Debug("Registering method loader.", "extension", ext)
		r.loaders[ext] = l
	}
}

// Extensions lists the file extensions the registry can read.
func (r *Registry) Extensions() []string {
	out := make([]string, 0, len(r.loaders))
	for ext := range r.loaders {
		out = append(out, ext)
	}
	return out
}

// Methods returns the registered methods in load order.
func (r *Registry) Methods() []*config.Method {
	return append([]*config.Method(nil), r.methods...)
}

// Model returns the registered methods as a unified model.
func (r *Registry) Model() *config.Model {
	return &config.Model{Methods: r.Methods()}
}

// register adds the methods of one file. Method names must be unique across
// all files.
func (r *Registry) register(path string, methods []*config.Method) error {
	for _, m := range methods {
		if prev, exists := r.byName[m.Name]; exists {
			return fmt.Errorf("method %q in %s is already declared in %s", m.Name, path, prev.Source)
		}
		r.byName[m.Name] = m
		r.methods = append(r.methods, m)
	}
	r.byPath[path] = methods
	return nil
}

package registry

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/kajjjak/ATM/internal/cpt"
	"github.com/kajjjak/ATM/internal/hcl"
	"github.com/kajjjak/ATM/internal/jsonmethod"
	tu "github.com/kajjjak/ATM/internal/testutil"
	"github.com/kajjjak/ATM/internal/yamlmethod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var methodFiles = map[string]string{
	"methods/svm.json": `{
		"name": "svm",
		"root_parameters": ["kernel"],
		"parameters": {"kernel": {"type": "string", "values": ["rbf", "linear"]}}
	}`,
	"methods/knn.yaml": `
		name: knn
		root_parameters: [k]
		parameters:
		  k: {type: int, range: [1, 20]}
	`,
	"methods/nested/dt.hcl": `
		method "dt" {
		  root_parameters = ["criterion"]
		  parameter "criterion" {
		    type   = string
		    values = ["gini", "entropy"]
		  }
		}
	`,
	"methods/README.txt": "not a method",
}

func newRegistry() *Registry {
	return New(hcl.NewLoader(), jsonmethod.NewLoader(), yamlmethod.NewLoader())
}

func TestLoad(t *testing.T) {
	ctx, logs := tu.LogContext(t)
	root := tu.WriteFiles(t, methodFiles)

	r := newRegistry()
	require.NoError(t, r.Load(ctx, filepath.Join(root, "methods"), filepath.Join(root, "missing")))

	var names []string
	for _, m := range r.Methods() {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"knn", "dt", "svm"}, names, "files are read in lexical order")
	assert.Len(t, r.Model().Methods, 3)
	assert.Contains(t, logs.String(), "No method files found in path")

	// Loading the same directory again does not duplicate anything.
	require.NoError(t, r.Load(ctx, filepath.Join(root, "methods")))
	assert.Len(t, r.Methods(), 3)
}

func TestLookup(t *testing.T) {
	ctx, _ := tu.LogContext(t)
	root := tu.WriteFiles(t, methodFiles)
	r := newRegistry()
	require.NoError(t, r.Load(ctx, filepath.Join(root, "methods")))

	byCode, err := r.Lookup(ctx, "svm")
	require.NoError(t, err)
	byPath, err := r.Lookup(ctx, filepath.Join(root, "methods", "svm.json"))
	require.NoError(t, err)
	assert.Same(t, byCode, byPath)

	_, err = r.Lookup(ctx, "nope")
	assert.ErrorIs(t, err, ErrMethodNotFound)

	extra := tu.WriteFiles(t, map[string]string{"lr.json": `{"name": "lr", "root_parameters": ["C"], "parameters": {"C": {"type": "float", "range": [0, 1]}}}`})
	m, err := r.Lookup(ctx, filepath.Join(extra, "lr.json"))
	require.NoError(t, err)
	assert.Equal(t, "lr", m.Name)

	again, err := r.Lookup(ctx, "lr")
	require.NoError(t, err)
	assert.Same(t, m, again, "a file looked up by path is registered")
}

func TestLookup_FileWithSeveralMethods(t *testing.T) {
	root := tu.WriteFiles(t, map[string]string{"two.yaml": `
		name: a
		root_parameters: [x]
		parameters:
		  x: {type: bool, values: [true]}
		---
		name: b
		root_parameters: [x]
		parameters:
		  x: {type: bool, values: [false]}
	`})

	_, err := newRegistry().Lookup(context.Background(), filepath.Join(root, "two.yaml"))
	assert.ErrorContains(t, err, "declares 2 methods")
}

func TestLoad_Errors(t *testing.T) {
	t.Run("duplicate method names", func(t *testing.T) {
		root := tu.WriteFiles(t, map[string]string{
			"a.json": `{"name": "svm", "root_parameters": ["x"], "parameters": {"x": {"type": "bool", "values": [true]}}}`,
			"b.yaml": "name: svm\nroot_parameters: [x]\nparameters:\n  x: {type: bool, values: [true]}\n",
		})
		err := newRegistry().Load(context.Background(), root)
		assert.ErrorContains(t, err, `method "svm"`)
		assert.ErrorContains(t, err, "already declared")
	})

	t.Run("loader error", func(t *testing.T) {
		root := tu.WriteFiles(t, map[string]string{"bad.json": `{"name": `})
		err := newRegistry().Load(context.Background(), root)
		assert.ErrorContains(t, err, "invalid JSON")
	})

	t.Run("no loader for extension", func(t *testing.T) {
		root := tu.WriteFiles(t, map[string]string{"m.toml": "name = 'x'"})
		_, err := newRegistry().Lookup(context.Background(), filepath.Join(root, "m.toml"))
		assert.ErrorContains(t, err, "no loader for")
	})

	t.Run("duplicate loader", func(t *testing.T) {
		assert.Panics(t, func() { New(jsonmethod.NewLoader(), jsonmethod.NewLoader()) })
	})
}

func TestValidateRegistry(t *testing.T) {
	ctx, _ := tu.LogContext(t)
	files := map[string]string{
		"ok.json":     `{"name": "ok", "root_parameters": ["x"], "parameters": {"x": {"type": "bool", "values": [true, false]}}}`,
		"broken.json": `{"name": "broken", "root_parameters": ["x", "y"], "parameters": {"x": {"type": "bool", "values": [true]}}}`,
		"cyclic.json": `{
			"name": "cyclic",
			"root_parameters": ["a"],
			"parameters": {"a": {"type": "string", "values": ["x"]}},
			"conditions": {"a": {"x": ["a"]}}
		}`,
	}
	root := tu.WriteFiles(t, files)

	r := newRegistry()
	require.NoError(t, r.Load(ctx, root))

	err := r.ValidateRegistry(ctx, cpt.Options{})
	require.Error(t, err)
	assert.ErrorContains(t, err, "registry validation failed")
	assert.ErrorContains(t, err, "broken.json")
	assert.ErrorContains(t, err, "unknown parameter")
	assert.ErrorContains(t, err, "cyclic.json")
	assert.ErrorContains(t, err, "cycle detected")
	assert.NotContains(t, err.Error(), "ok.json")
}

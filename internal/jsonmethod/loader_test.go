package jsonmethod

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/kajjjak/ATM/internal/cpt"
	tu "github.com/kajjjak/ATM/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

const mlpJSON = `{
	"name": "mlp",
	"class": "sklearn.neural_network.MLPClassifier",
	"root_parameters": ["hidden_layer_sizes", "alpha", "solver"],
	"parameters": {
		"solver": {"type": "string", "values": ["adam", "lbfgs"]},
		"alpha": {"type": "float_exp", "range": [1e-05, 0.01]},
		"hidden_layer_sizes": {
			"type": "list",
			"sizes": [1, 2],
			"element": {"type": "int", "range": [2, 300]}
		},
		"beta_1": {"type": "float", "range": [0.8, 0.9999]},
		"shuffle": {"type": "bool", "values": [true, false]}
	},
	"conditions": {
		"solver": {"adam": ["beta_1", "shuffle"]}
	}
}`

func TestLoadFile(t *testing.T) {
	ctx, _ := tu.LogContext(t)
	root := tu.WriteFiles(t, map[string]string{"mlp.json": mlpJSON})
	path := filepath.Join(root, "mlp.json")

	methods, err := NewLoader().LoadFile(ctx, path)
	require.NoError(t, err)
	require.Len(t, methods, 1)
	m := methods[0]

	assert.Equal(t, "mlp", m.Name)
	assert.Equal(t, "sklearn.neural_network.MLPClassifier", m.Class)
	assert.Equal(t, path, m.Source)

	var names []string
	for _, p := range m.Parameters {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"solver", "alpha", "hidden_layer_sizes", "beta_1", "shuffle"}, names, "document order is kept")

	alpha := m.Parameter("alpha")
	require.Len(t, alpha.Range, 2)
	assert.True(t, alpha.Range[0].Equals(cty.MustParseNumberVal("1e-05")).True())

	list := m.Parameter("hidden_layer_sizes")
	require.NotNil(t, list.Element)
	assert.Equal(t, "element", list.Element.Name)
	assert.Equal(t, "int", list.Element.Type)

	require.Len(t, m.Conditions, 1)
	c := m.Conditions[0]
	assert.True(t, c.Stringified)
	assert.Equal(t, "adam", c.When.AsString())
	assert.Equal(t, []string{"beta_1", "shuffle"}, c.Unlocks)

	s, err := cpt.New(ctx, m, cpt.Options{})
	require.NoError(t, err)
	parts, err := s.Enumerate(ctx)
	require.NoError(t, err)
	// Two list lengths, times adam (two shuffle values) or lbfgs.
	assert.Len(t, parts, 6)
}

func TestParse_StringKeysMatchTypedValues(t *testing.T) {
	m, err := Parse([]byte(`{
		"name": "m",
		"root_parameters": ["degree", "fit"],
		"parameters": {
			"degree": {"type": "int_cat", "values": [1, 2]},
			"fit": {"type": "bool", "values": [true, false]},
			"coef0": {"type": "float", "range": [0, 1]},
			"tol": {"type": "float", "range": [0, 1]}
		},
		"conditions": {
			"degree": {"2": ["coef0"]},
			"fit": {"True": ["tol"]}
		}
	}`))
	require.NoError(t, err)

	s, err := cpt.New(context.Background(), m, cpt.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"coef0"}, s.Unlocks("degree", cty.NumberIntVal(2)))
	assert.Equal(t, []string{"tol"}, s.Unlocks("fit", cty.True))
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name     string
		doc      string
		contains string
	}{
		{"not json", `{"name": `, "invalid JSON"},
		{"not an object", `[1, 2]`, "must be an object"},
		{"roots are not a list", `{"name": "m", "root_parameters": "a"}`, "root_parameters"},
		{"root is not a name", `{"name": "m", "root_parameters": [1]}`, "expected a name"},
		{"schema is not an object", `{"name": "m", "root_parameters": ["a"], "parameters": {"a": 3}}`, `parameter "a"`},
		{"nested value", `{"name": "m", "root_parameters": ["a"], "parameters": {"a": {"type": "string", "values": [[1]]}}}`, "values"},
		{"nested element", `{"name": "m", "root_parameters": ["a"], "parameters": {"a": {"type": "list", "sizes": [1], "element": {"type": "list", "element": {}}}}}`, "cannot declare an element"},
		{"condition is not an object", `{"name": "m", "root_parameters": ["a"], "conditions": {"a": ["b"]}}`, `conditions of "a"`},
		{"unlocks are not a list", `{"name": "m", "root_parameters": ["a"], "conditions": {"a": {"x": "b"}}}`, `condition "a" = "x"`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.contains)
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := NewLoader().LoadFile(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorContains(t, err, "failed to read JSON file")
}

package cpt

import (
	"context"
	"errors"
	"testing"

	"github.com/kajjjak/ATM/internal/config"
	"github.com/kajjjak/ATM/internal/dag"
	"github.com/kajjjak/ATM/internal/hyperparam"
	tu "github.com/kajjjak/ATM/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestNew_ExpandsLists(t *testing.T) {
	ctx, logs := tu.LogContext(t)
	m := tu.Method("mlp",
		[]string{"alpha", "hidden", "activation"},
		[]*config.ParameterSpec{
			tu.Numeric("alpha", "float_exp", 1e-4, 1),
			tu.List("hidden", []float64{1, 3, 2}, tu.Numeric("", "int", 2, 300)),
			tu.Categorical("activation", "string", tu.Strs("relu", "tanh")...),
		},
	)

	s, err := New(ctx, m, Options{})
	require.NoError(t, err)

	assert.Equal(t, "mlp", s.Name())
	assert.Equal(t, "test.mlp", s.Class())
	assert.Equal(t, []string{"alpha", "hidden_size", "activation"}, s.RootParams(), "the size parameter takes the list's place")
	assert.Equal(t,
		[]string{"alpha", "hidden_size", "hidden[0]", "hidden[1]", "hidden[2]", "activation"},
		s.Names(),
	)

	_, ok := s.Parameter("hidden")
	assert.False(t, ok, "list parameters never enter the table")

	elem, ok := s.Parameter("hidden[2]")
	require.True(t, ok)
	assert.Equal(t, hyperparam.KindInt, elem.Kind())

	assert.Empty(t, s.Unlocks("hidden_size", cty.NumberIntVal(0)))
	assert.Equal(t, []string{"hidden[0]"}, s.Unlocks("hidden_size", cty.NumberIntVal(1)))
	assert.Equal(t, []string{"hidden[0]", "hidden[1]", "hidden[2]"}, s.Unlocks("hidden_size", cty.NumberIntVal(3)))

	assert.Contains(t, logs.String(), "Expanded list parameter")
	assert.Contains(t, logs.String(), "list=hidden")
}

func TestNew_ListUnlockedByCondition(t *testing.T) {
	m := tu.Method("mlp",
		[]string{"solver"},
		[]*config.ParameterSpec{
			tu.Categorical("solver", "string", tu.Strs("adam", "lbfgs")...),
			tu.List("betas", []float64{1, 2}, tu.Numeric("", "float", 0, 1)),
		},
		tu.WhenKey("solver", "adam", "betas"),
	)

	s, err := New(context.Background(), m, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"betas_size"}, s.Unlocks("solver", cty.StringVal("adam")))
}

func TestNew_Errors(t *testing.T) {
	kernel := tu.Categorical("kernel", "string", tu.Strs("rbf", "poly")...)
	gamma := tu.Numeric("gamma", "float_exp", 1e-3, 1)
	layers := tu.List("layers", []float64{1, 2}, tu.Categorical("", "bool", tu.Bools(true, false)...))

	testCases := []struct {
		name      string
		method    *config.Method
		expectErr error
		contains  string
	}{
		{
			name:      "unknown type tag",
			method:    tu.Method("m", []string{"x"}, []*config.ParameterSpec{tu.Categorical("x", "tensor", tu.Strs("a")...)}),
			expectErr: hyperparam.ErrUnknownType,
			contains:  `"tensor"`,
		},
		{
			name:      "invalid domain",
			method:    tu.Method("m", []string{"x"}, []*config.ParameterSpec{tu.Numeric("x", "int", 5, 1)}),
			expectErr: hyperparam.ErrInvalidDomain,
		},
		{
			name:      "unknown root",
			method:    tu.Method("m", []string{"kernel", "nope"}, []*config.ParameterSpec{kernel}),
			expectErr: ErrUnknownParameter,
			contains:  `"nope"`,
		},
		{
			name:      "duplicate root",
			method:    tu.Method("m", []string{"kernel", "kernel"}, []*config.ParameterSpec{kernel}),
			expectErr: ErrDuplicateParameter,
		},
		{
			name:      "unknown trigger",
			method:    tu.Method("m", []string{"kernel"}, []*config.ParameterSpec{kernel, gamma}, tu.WhenKey("nope", "rbf", "gamma")),
			expectErr: ErrUnknownParameter,
		},
		{
			name:      "unknown unlocked parameter",
			method:    tu.Method("m", []string{"kernel"}, []*config.ParameterSpec{kernel}, tu.WhenKey("kernel", "rbf", "gamma")),
			expectErr: ErrUnknownParameter,
			contains:  `"gamma"`,
		},
		{
			name:      "numeric trigger",
			method:    tu.Method("m", []string{"gamma"}, []*config.ParameterSpec{kernel, gamma}, tu.WhenKey("gamma", "0.1", "kernel")),
			expectErr: ErrInvalidCondition,
			contains:  "not categorical",
		},
		{
			name:      "list trigger",
			method:    tu.Method("m", []string{"layers"}, []*config.ParameterSpec{layers, gamma}, tu.WhenKey("layers", "1", "gamma")),
			expectErr: ErrInvalidCondition,
			contains:  "layers_size",
		},
		{
			name:      "condition without value",
			method:    tu.Method("m", []string{"kernel"}, []*config.ParameterSpec{kernel, gamma}, tu.When("kernel", cty.NullVal(cty.String), "gamma")),
			expectErr: ErrInvalidCondition,
		},
		{
			name: "keys selecting the same value",
			method: tu.Method("m", []string{"degree"},
				[]*config.ParameterSpec{tu.Categorical("degree", "int_cat", tu.Nums(1, 2)...), gamma},
				tu.WhenKey("degree", "1", "gamma"),
				tu.WhenKey("degree", "1.0", "gamma"),
			),
			expectErr: ErrInvalidCondition,
			contains:  "both select 1",
		},
		{
			name:      "unlocked twice",
			method:    tu.Method("m", []string{"kernel"}, []*config.ParameterSpec{kernel, gamma}, tu.WhenKey("kernel", "rbf", "gamma", "gamma")),
			expectErr: ErrDuplicateParameter,
		},
		{
			name:      "synthesized name clashes with a declared one",
			method:    tu.Method("m", []string{"layers"}, []*config.ParameterSpec{layers, tu.Numeric("layers_size", "int", 1, 2)}),
			expectErr: ErrDuplicateParameter,
			contains:  `"layers_size"`,
		},
		{
			name:      "self-referential condition",
			method:    tu.Method("m", []string{"kernel"}, []*config.ParameterSpec{kernel}, tu.WhenKey("kernel", "rbf", "kernel")),
			expectErr: ErrCycle,
			contains:  "kernel -> kernel",
		},
		{
			name: "cycle through two triggers",
			method: tu.Method("m", []string{"a"},
				[]*config.ParameterSpec{
					tu.Categorical("a", "string", tu.Strs("a1", "a2")...),
					tu.Categorical("b", "string", tu.Strs("b1", "b2")...),
				},
				tu.WhenKey("a", "a1", "b"),
				tu.WhenKey("b", "b2", "a"),
			),
			expectErr: ErrCycle,
			contains:  "a -> b -> a",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(context.Background(), tc.method, Options{})
			require.ErrorIs(t, err, tc.expectErr)
			assert.ErrorContains(t, err, `method "m"`)
			if tc.contains != "" {
				assert.ErrorContains(t, err, tc.contains)
			}
		})
	}
}

func TestNew_CycleErrorCarriesPath(t *testing.T) {
	m := tu.Method("m", []string{"a"},
		[]*config.ParameterSpec{
			tu.Categorical("a", "string", tu.Strs("a1")...),
			tu.Categorical("b", "bool", tu.Bools(true, false)...),
		},
		tu.WhenKey("a", "a1", "b"),
		tu.WhenKey("b", "true", "a"),
	)
	_, err := New(context.Background(), m, Options{})

	var cycleErr *dag.CycleError
	require.True(t, errors.As(err, &cycleErr))
	assert.Equal(t, []string{"a", "b", "a"}, cycleErr.Path)
}

func TestNew_MalformedMethod(t *testing.T) {
	_, err := New(context.Background(), &config.Method{Name: "empty"}, Options{})
	assert.ErrorContains(t, err, "is malformed")

	m := tu.Method("dup", []string{"x"}, []*config.ParameterSpec{
		tu.Numeric("x", "int", 1, 2),
		tu.Numeric("x", "int", 3, 4),
	})
	_, err = New(context.Background(), m, Options{})
	assert.ErrorContains(t, err, "more than once")

	_, err = New(context.Background(), nil, Options{})
	assert.Error(t, err)
}

func TestConditionKeys(t *testing.T) {
	degree := tu.Categorical("degree", "int_cat", tu.Nums(1, 2)...)
	shrinking := tu.Categorical("shrinking", "bool", tu.Bools(true, false)...)
	coef := tu.Numeric("coef0", "float", 0, 1)

	testCases := []struct {
		name     string
		trigger  *config.ParameterSpec
		cond     *config.Condition
		value    cty.Value
		unlocked bool
	}{
		{"string key for a number", degree, tu.WhenKey("degree", "1", "coef0"), cty.NumberIntVal(1), true},
		{"string key in float notation", degree, tu.WhenKey("degree", "2.0", "coef0"), cty.NumberIntVal(2), true},
		{"string key for a bool", shrinking, tu.WhenKey("shrinking", "True", "coef0"), cty.True, true},
		{"typed number", degree, tu.When("degree", cty.NumberIntVal(2), "coef0"), cty.NumberIntVal(2), true},
		{"typed bool", shrinking, tu.When("shrinking", cty.False, "coef0"), cty.False, true},
		{"typed string never selects a number", degree, tu.When("degree", cty.StringVal("1"), "coef0"), cty.NumberIntVal(1), false},
		{"typed number never selects a bool", shrinking, tu.When("shrinking", cty.NumberIntVal(1), "coef0"), cty.True, false},
		{"string key outside the domain", degree, tu.WhenKey("degree", "7", "coef0"), cty.NumberIntVal(1), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, logs := tu.LogContext(t)
			m := tu.Method("m", []string{tc.trigger.Name}, []*config.ParameterSpec{tc.trigger, coef}, tc.cond)
			s, err := New(ctx, m, Options{})
			require.NoError(t, err)

			if tc.unlocked {
				assert.Equal(t, []string{"coef0"}, s.Unlocks(tc.trigger.Name, tc.value))
				assert.NotContains(t, logs.String(), "matches no value")
				return
			}
			for _, v := range []cty.Value{cty.NumberIntVal(1), cty.NumberIntVal(2), cty.True, cty.False} {
				assert.Empty(t, s.Unlocks(tc.trigger.Name, v))
			}
			assert.Contains(t, logs.String(), "matches no value")
			assert.Contains(t, logs.String(), "level=WARN")
		})
	}
}

func TestConditionsMerge(t *testing.T) {
	m := tu.Method("m", []string{"kernel"},
		[]*config.ParameterSpec{
			tu.Categorical("kernel", "string", tu.Strs("rbf", "poly")...),
			tu.Numeric("gamma", "float", 0, 1),
			tu.Numeric("coef0", "float", 0, 1),
		},
		tu.When("kernel", cty.StringVal("poly"), "gamma"),
		tu.When("kernel", cty.StringVal("poly"), "coef0"),
	)
	s, err := New(context.Background(), m, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"gamma", "coef0"}, s.Unlocks("kernel", cty.StringVal("poly")))
}

func TestClassify(t *testing.T) {
	m := tu.Method("svm", []string{"C", "kernel", "tol", "probability"},
		[]*config.ParameterSpec{
			tu.Numeric("C", "float_exp", 0.01, 100),
			tu.Categorical("kernel", "string", tu.Strs("rbf", "poly")...),
			tu.Numeric("tol", "float", 0.001),
			tu.Categorical("probability", "bool", tu.Bools(true)...),
		},
	)
	s, err := New(context.Background(), m, Options{})
	require.NoError(t, err)

	c, err := s.Classify([]string{"C", "kernel", "tol", "probability"})
	require.NoError(t, err)

	require.Len(t, c.Constants, 2)
	assert.Equal(t, "tol=0.001", c.Constants[0].String())
	assert.Equal(t, "probability=true", c.Constants[1].String())
	assert.Equal(t, []string{"kernel"}, c.Categoricals)
	require.Len(t, c.Tunables, 1)
	assert.Equal(t, "C:float_exp[0.01, 100]", c.Tunables[0].String())

	_, err = s.Classify([]string{"C", "nope"})
	assert.ErrorIs(t, err, ErrUnknownParameter)

	roles := map[string]string{}
	for _, name := range s.Names() {
		p, _ := s.Parameter(name)
		roles[name] = Role(p)
	}
	assert.Equal(t, map[string]string{
		"C": "tunable", "kernel": "categorical", "tol": "constant", "probability": "constant",
	}, roles)
}

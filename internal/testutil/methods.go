package testutil

import (
	"github.com/kajjjak/ATM/internal/config"
	"github.com/zclconf/go-cty/cty"
)

// Nums converts numbers to cty values.
func Nums(vs ...float64) []cty.Value {
	out := make([]cty.Value, len(vs))
	for i, v := range vs {
		out[i] = cty.NumberFloatVal(v)
	}
	return out
}

// Strs converts strings to cty values.
func Strs(vs ...string) []cty.Value {
	out := make([]cty.Value, len(vs))
	for i, v := range vs {
		out[i] = cty.StringVal(v)
	}
	return out
}

// Bools converts bools to cty values.
func Bools(vs ...bool) []cty.Value {
	out := make([]cty.Value, len(vs))
	for i, v := range vs {
		out[i] = cty.BoolVal(v)
	}
	return out
}

// Numeric declares a numeric parameter.
func Numeric(name, kind string, rng ...float64) *config.ParameterSpec {
	return &config.ParameterSpec{Name: name, Type: kind, Range: Nums(rng...)}
}

// Categorical declares a categorical parameter.
func Categorical(name, kind string, values ...cty.Value) *config.ParameterSpec {
	return &config.ParameterSpec{Name: name, Type: kind, Values: values}
}

// List declares a list parameter. The element's name is replaced.
func List(name string, sizes []float64, element *config.ParameterSpec) *config.ParameterSpec {
	elem := *element
	elem.Name = "element"
	return &config.ParameterSpec{Name: name, Type: "list", Sizes: Nums(sizes...), Element: &elem}
}

// When declares a condition with a typed key.
func When(trigger string, value cty.Value, unlocks ...string) *config.Condition {
	return &config.Condition{Trigger: trigger, When: value, Unlocks: unlocks}
}

// WhenKey declares a condition with a string key, as JSON method files do.
func WhenKey(trigger, key string, unlocks ...string) *config.Condition {
	return &config.Condition{Trigger: trigger, When: cty.StringVal(key), Stringified: true, Unlocks: unlocks}
}

// Method assembles a method.
func Method(name string, roots []string, params []*config.ParameterSpec, conds ...*config.Condition) *config.Method {
	return &config.Method{
		Name:           name,
		Class:          "test." + name,
		RootParameters: roots,
		Parameters:     params,
		Conditions:     conds,
	}
}

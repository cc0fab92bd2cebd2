package config

import (
	"github.com/zclconf/go-cty/cty"
)

// Model is the unified representation of every method loaded from one or
// more method files.
type Model struct {
	Methods []*Method
}

// Method is the format-agnostic representation of a single method file.
type Method struct {
	// Name is the method code used to look the method up, e.g. "svm".
	Name string `validate:"required"`
	// Class is an opaque reference to the model class a dispatcher
	// instantiates from a chosen hyperpartition.
	Class string
	// Source is the file the method was loaded from, if any.
	Source string

	RootParameters []string `validate:"required,min=1,dive,required"`

	// Parameters keeps declaration order, which fixes the order of the
	// emitted hyperpartitions.
	Parameters []*ParameterSpec `validate:"required,min=1,dive,required"`
	Conditions []*Condition     `validate:"dive,required"`
}

// Parameter returns the spec declared under name, or nil.
func (m *Method) Parameter(name string) *ParameterSpec {
	for _, p := range m.Parameters {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// ParameterSpec is the raw schema of one hyperparameter: a type tag plus the
// type-specific fields. Which fields are meaningful depends on Type.
type ParameterSpec struct {
	Name string `validate:"required"`
	Type string `validate:"required"`

	// Range is [min, max] or [value] for numeric types.
	Range []cty.Value
	// Values is the ordered candidate set for categorical types.
	Values []cty.Value
	// Sizes and Element describe a list parameter.
	Sizes   []cty.Value
	Element *ParameterSpec
}

// Condition states that choosing When for the Trigger parameter reveals the
// Unlocks parameters.
type Condition struct {
	Trigger string `validate:"required"`
	When    cty.Value
	// Stringified is set by formats whose condition keys can only be
	// strings. Such a key is matched against the string form of the
	// trigger's domain values instead of by typed equality.
	Stringified bool
	Unlocks     []string `validate:"dive,required"`
}

package hyperparam

import (
	"fmt"

	"github.com/kajjjak/ATM/internal/config"
	"github.com/zclconf/go-cty/cty"
)

// Parameter is a single hyperparameter. It is implemented only by *Numeric,
// *Categorical and *List.
type Parameter interface {
	// Name is the parameter's name in the parameter table.
	Name() string
	// Kind is the parameter's type tag.
	Kind() Kind
	// IsConstant reports whether the domain has exactly one element.
	IsConstant() bool
	// IsCategorical reports whether choosing a value branches the space.
	// True for categorical and list parameters.
	IsCategorical() bool
	// Constant returns the sole value of a constant parameter. The boolean
	// is false when the parameter is not constant.
	Constant() (cty.Value, bool)
	// AsTunable describes the parameter's domain for an external optimizer.
	AsTunable() Tunable
	// WithName returns a copy of the parameter registered under a new name.
	WithName(name string) Parameter

	isParameter()
}

// New builds a parameter from its raw schema, validating the type tag and
// the domain.
func New(spec *config.ParameterSpec) (Parameter, error) {
	if spec == nil {
		return nil, fmt.Errorf("%w: missing schema", ErrInvalidDomain)
	}
	kind, err := ParseKind(spec.Type)
	if err != nil {
		return nil, fmt.Errorf("parameter %q: %w", spec.Name, err)
	}

	var p Parameter
	switch {
	case kind.IsNumeric():
		p, err = NewNumeric(spec.Name, kind, spec.Range)
	case kind == KindList:
		p, err = newListFromSpec(spec)
	default:
		p, err = NewCategorical(spec.Name, kind, spec.Values)
	}
	if err != nil {
		return nil, fmt.Errorf("parameter %q: %w", spec.Name, err)
	}
	return p, nil
}

func newListFromSpec(spec *config.ParameterSpec) (*List, error) {
	if spec.Element == nil {
		return nil, fmt.Errorf("%w: list has no element schema", ErrInvalidDomain)
	}
	elemKind, err := ParseKind(spec.Element.Type)
	if err != nil {
		return nil, fmt.Errorf("list element: %w", err)
	}
	if elemKind == KindList {
		return nil, fmt.Errorf("%w: list elements cannot themselves be lists", ErrInvalidDomain)
	}
	elem, err := New(spec.Element)
	if err != nil {
		return nil, fmt.Errorf("list element: %w", err)
	}
	return NewList(spec.Name, spec.Sizes, elem)
}

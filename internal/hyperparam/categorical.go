package hyperparam

import (
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// Categorical is an ordered set of candidate values.
type Categorical struct {
	name   string
	kind   Kind
	values []cty.Value
}

// NewCategorical validates and builds a categorical parameter. Values are
// coerced to the kind's type and must be distinct.
func NewCategorical(name string, kind Kind, values []cty.Value) (*Categorical, error) {
	if kind.IsNumeric() || kind == KindList {
		return nil, fmt.Errorf("%w: %s is not a categorical kind", ErrInvalidDomain, kind)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: no candidate values", ErrInvalidDomain)
	}
	coerced, err := coerceValues(kind, values)
	if err != nil {
		return nil, err
	}
	if err := checkDistinct(coerced); err != nil {
		return nil, err
	}
	return &Categorical{name: name, kind: kind, values: coerced}, nil
}

func (c *Categorical) Name() string { return c.name }
func (c *Categorical) Kind() Kind   { return c.kind }

// Values returns a copy of the candidate values in declared order.
func (c *Categorical) Values() []cty.Value {
	return append([]cty.Value(nil), c.values...)
}

// Len is the number of candidate values.
func (c *Categorical) Len() int { return len(c.values) }

// Value returns the i-th candidate value.
func (c *Categorical) Value(i int) cty.Value { return c.values[i] }

func (c *Categorical) IsConstant() bool    { return len(c.values) == 1 }
func (c *Categorical) IsCategorical() bool { return true }

func (c *Categorical) Constant() (cty.Value, bool) {
	if !c.IsConstant() {
		return cty.NilVal, false
	}
	return c.values[0], true
}

func (c *Categorical) AsTunable() Tunable {
	return Tunable{Kind: c.kind, Domain: c.Values()}
}

func (c *Categorical) WithName(name string) Parameter {
	cp := *c
	cp.name = name
	return &cp
}

func (c *Categorical) String() string {
	parts := make([]string, len(c.values))
	for i, v := range c.values {
		parts[i] = FormatValue(v)
	}
	return fmt.Sprintf("%s %s in {%s}", c.kind, c.name, strings.Join(parts, ", "))
}

func (*Categorical) isParameter() {}

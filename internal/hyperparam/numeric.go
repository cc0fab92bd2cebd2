package hyperparam

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// Numeric is an integer or float range, written as [min, max] or as a
// single value.
type Numeric struct {
	name string
	kind Kind
	rng  []cty.Value
}

// NewNumeric validates and builds a numeric parameter.
func NewNumeric(name string, kind Kind, rng []cty.Value) (*Numeric, error) {
	if !kind.IsNumeric() {
		return nil, fmt.Errorf("%w: %s is not a numeric kind", ErrInvalidDomain, kind)
	}
	if len(rng) != 1 && len(rng) != 2 {
		return nil, fmt.Errorf("%w: range needs one or two values, got %d", ErrInvalidDomain, len(rng))
	}
	values, err := coerceValues(kind, rng)
	if err != nil {
		return nil, err
	}
	lo, hi := values[0], values[len(values)-1]
	if lo.GreaterThan(hi).True() {
		return nil, fmt.Errorf("%w: range min %s is greater than max %s", ErrInvalidDomain, FormatValue(lo), FormatValue(hi))
	}
	if kind.IsLogScaled() && !lo.GreaterThan(cty.Zero).True() {
		return nil, fmt.Errorf("%w: log-scaled range must be positive, got min %s", ErrInvalidDomain, FormatValue(lo))
	}
	return &Numeric{name: name, kind: kind, rng: values}, nil
}

func (n *Numeric) Name() string { return n.name }
func (n *Numeric) Kind() Kind   { return n.kind }

// Min is the lower bound of the range.
func (n *Numeric) Min() cty.Value { return n.rng[0] }

// Max is the upper bound of the range.
func (n *Numeric) Max() cty.Value { return n.rng[len(n.rng)-1] }

// Range returns a copy of the range as declared.
func (n *Numeric) Range() []cty.Value {
	return append([]cty.Value(nil), n.rng...)
}

// IsConstant is true for a single-value range and for min == max.
func (n *Numeric) IsConstant() bool {
	return len(n.rng) == 1 || n.Min().Equals(n.Max()).True()
}

func (n *Numeric) IsCategorical() bool { return false }

func (n *Numeric) Constant() (cty.Value, bool) {
	if !n.IsConstant() {
		return cty.NilVal, false
	}
	return n.rng[0], true
}

func (n *Numeric) AsTunable() Tunable {
	return Tunable{Kind: n.kind, Domain: n.Range()}
}

func (n *Numeric) WithName(name string) Parameter {
	cp := *n
	cp.name = name
	return &cp
}

func (n *Numeric) String() string {
	if len(n.rng) == 1 {
		return fmt.Sprintf("%s %s = %s", n.kind, n.name, FormatValue(n.rng[0]))
	}
	return fmt.Sprintf("%s %s in [%s, %s]", n.kind, n.name, FormatValue(n.Min()), FormatValue(n.Max()))
}

func (*Numeric) isParameter() {}

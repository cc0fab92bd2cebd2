package hyperparam

import (
	"errors"
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

var (
	// ErrUnknownType is returned for a parameter whose type tag is not one
	// of the known kinds.
	ErrUnknownType = errors.New("unknown parameter type")
	// ErrInvalidDomain is returned for a malformed range, value set or
	// size set.
	ErrInvalidDomain = errors.New("invalid parameter domain")
)

// Kind is the type tag of a parameter as written in a method file.
type Kind string

const (
	KindInt      Kind = "int"
	KindIntExp   Kind = "int_exp"
	KindFloat    Kind = "float"
	KindFloatExp Kind = "float_exp"
	KindIntCat   Kind = "int_cat"
	KindFloatCat Kind = "float_cat"
	KindString   Kind = "string"
	KindBool     Kind = "bool"
	KindList     Kind = "list"
)

// ParseKind validates a raw type tag.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindInt, KindIntExp, KindFloat, KindFloatExp,
		KindIntCat, KindFloatCat, KindString, KindBool, KindList:
		return k, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownType, s)
	}
}

// IsNumeric reports whether the kind describes a numeric range.
func (k Kind) IsNumeric() bool {
	switch k {
	case KindInt, KindIntExp, KindFloat, KindFloatExp:
		return true
	}
	return false
}

// IsInteger reports whether values of this kind must be whole numbers.
func (k Kind) IsInteger() bool {
	return k == KindInt || k == KindIntExp || k == KindIntCat
}

// IsLogScaled reports whether the optimizer should search this kind on a
// logarithmic scale.
func (k Kind) IsLogScaled() bool {
	return k == KindIntExp || k == KindFloatExp
}

// ValueType is the cty type every value of this kind is coerced to.
func (k Kind) ValueType() cty.Type {
	switch k {
	case KindString:
		return cty.String
	case KindBool:
		return cty.Bool
	default:
		return cty.Number
	}
}

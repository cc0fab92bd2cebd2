package hyperparam

import (
	"fmt"
	"math"
	"math/big"

	"github.com/zclconf/go-cty/cty"
)

// List is a variable-length sequence of values. Its length is chosen from a
// synthesized size categorical and every index shares one element schema.
type List struct {
	name    string
	size    *Categorical
	element Parameter
	maxSize int
}

// SizeName is the name of the size parameter synthesized for a list.
func SizeName(list string) string { return list + "_size" }

// ElementName is the name of the element parameter at index i of a list.
func ElementName(list string, i int) string { return fmt.Sprintf("%s[%d]", list, i) }

// NewList validates the allowed sizes and builds a list parameter.
func NewList(name string, sizes []cty.Value, element Parameter) (*List, error) {
	if element == nil {
		return nil, fmt.Errorf("%w: list has no element schema", ErrInvalidDomain)
	}
	if _, nested := element.(*List); nested {
		return nil, fmt.Errorf("%w: list elements cannot themselves be lists", ErrInvalidDomain)
	}
	size, err := NewCategorical(SizeName(name), KindIntCat, sizes)
	if err != nil {
		return nil, fmt.Errorf("list sizes: %w", err)
	}

	maxSize := 0
	for _, v := range size.values {
		n, err := sizeToInt(v)
		if err != nil {
			return nil, err
		}
		if n > maxSize {
			maxSize = n
		}
	}
	return &List{name: name, size: size, element: element, maxSize: maxSize}, nil
}

func sizeToInt(v cty.Value) (int, error) {
	if v.LessThan(cty.Zero).True() {
		return 0, fmt.Errorf("%w: list size %s is negative", ErrInvalidDomain, FormatValue(v))
	}
	i, acc := v.AsBigFloat().Int64()
	if acc != big.Exact || i > math.MaxInt32 {
		return 0, fmt.Errorf("%w: list size %s is out of range", ErrInvalidDomain, FormatValue(v))
	}
	return int(i), nil
}

func (l *List) Name() string { return l.name }
func (l *List) Kind() Kind   { return KindList }

// Size is the synthesized "<list>_size" categorical.
func (l *List) Size() *Categorical { return l.size }

// Element is the schema shared by every index.
func (l *List) Element() Parameter { return l.element }

// MaxSize is the largest allowed length.
func (l *List) MaxSize() int { return l.maxSize }

// Len converts one of the size parameter's values to a length.
func (l *List) Len(size cty.Value) (int, error) {
	return sizeToInt(size)
}

// IsConstant is always false: even a single allowed length is expanded into
// a size parameter and element parameters.
func (l *List) IsConstant() bool    { return false }
func (l *List) IsCategorical() bool { return true }

func (l *List) Constant() (cty.Value, bool) { return cty.NilVal, false }

// AsTunable describes the list by its allowed lengths.
func (l *List) AsTunable() Tunable { return l.size.AsTunable() }

func (l *List) WithName(name string) Parameter {
	cp := *l
	cp.name = name
	cp.size = l.size.WithName(SizeName(name)).(*Categorical)
	return &cp
}

func (l *List) String() string {
	return fmt.Sprintf("list %s of %v, sizes %s", l.name, l.element, l.size)
}

func (*List) isParameter() {}

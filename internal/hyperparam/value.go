package hyperparam

import (
	"fmt"
	"strconv"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// coerceValues converts raw values to the cty type of kind. Null, unknown
// and non-convertible values are rejected, as are fractional values for
// integer kinds.
func coerceValues(kind Kind, raw []cty.Value) ([]cty.Value, error) {
	out := make([]cty.Value, 0, len(raw))
	for i, v := range raw {
		if v.IsNull() || !v.IsKnown() {
			return nil, fmt.Errorf("%w: value %d is null or unknown", ErrInvalidDomain, i)
		}
		converted, err := convert.Convert(v, kind.ValueType())
		if err != nil {
			return nil, fmt.Errorf("%w: value %d is not a valid %s: %v", ErrInvalidDomain, i, kind, err)
		}
		if kind.IsInteger() && !converted.AsBigFloat().IsInt() {
			return nil, fmt.Errorf("%w: value %d (%s) is not a whole number", ErrInvalidDomain, i, FormatValue(converted))
		}
		out = append(out, converted)
	}
	return out, nil
}

// checkDistinct rejects a domain that lists the same value twice.
func checkDistinct(values []cty.Value) error {
	for i := range values {
		for j := i + 1; j < len(values); j++ {
			if values[i].Equals(values[j]).True() {
				return fmt.Errorf("%w: value %s is listed more than once", ErrInvalidDomain, FormatValue(values[i]))
			}
		}
	}
	return nil
}

// FormatValue renders a primitive value the way it would be written in a
// method file.
func FormatValue(v cty.Value) string {
	if v.IsNull() {
		return "null"
	}
	switch v.Type() {
	case cty.String:
		return v.AsString()
	case cty.Bool:
		return strconv.FormatBool(v.True())
	case cty.Number:
		return v.AsBigFloat().Text('g', -1)
	default:
		return v.GoString()
	}
}

// ToGo converts a primitive value into a plain Go value: string, bool, int64
// for whole numbers and float64 otherwise.
func ToGo(v cty.Value) (any, error) {
	switch v.Type() {
	case cty.String:
		var s string
		err := gocty.FromCtyValue(v, &s)
		return s, err
	case cty.Bool:
		var b bool
		err := gocty.FromCtyValue(v, &b)
		return b, err
	case cty.Number:
		if v.AsBigFloat().IsInt() {
			var i int64
			if err := gocty.FromCtyValue(v, &i); err == nil {
				return i, nil
			}
		}
		var f float64
		err := gocty.FromCtyValue(v, &f)
		return f, err
	default:
		return nil, fmt.Errorf("cannot convert %s value to a Go value", v.Type().FriendlyName())
	}
}

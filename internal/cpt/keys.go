package cpt

import (
	"strings"

	"github.com/kajjjak/ATM/internal/config"
	"github.com/kajjjak/ATM/internal/hyperparam"
	"github.com/zclconf/go-cty/cty"
)

// valueKey identifies a typed value. Values of different types never share
// a key, even when they print the same.
type valueKey struct {
	typ  string
	repr string
}

func keyOf(v cty.Value) valueKey {
	return valueKey{typ: v.Type().FriendlyName(), repr: hyperparam.FormatValue(v)}
}

// spelling is how a condition key was written, used in error messages.
func spelling(c *config.Condition) string {
	if c.Stringified {
		return c.When.AsString()
	}
	return hyperparam.FormatValue(c.When) + " (" + c.When.Type().FriendlyName() + ")"
}

// matchValue finds the value of domain that a condition key selects. String
// keys are compared with the string form of each domain value: numbers by
// numeric equality, bools case-insensitively. Typed keys select only a value
// of the same type.
func matchValue(domain []cty.Value, c *config.Condition) (cty.Value, bool) {
	for _, v := range domain {
		if c.Stringified {
			if matchString(v, c.When.AsString()) {
				return v, true
			}
			continue
		}
		if v.Type().Equals(c.When.Type()) && v.Equals(c.When).True() {
			return v, true
		}
	}
	return cty.NilVal, false
}

func matchString(v cty.Value, s string) bool {
	switch v.Type() {
	case cty.String:
		return v.AsString() == s
	case cty.Bool:
		return strings.EqualFold(s, hyperparam.FormatValue(v))
	case cty.Number:
		n, err := cty.ParseNumberVal(strings.TrimSpace(s))
		return err == nil && n.Equals(v).True()
	}
	return false
}

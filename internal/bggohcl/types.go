package bggohcl

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// Keyword reads an attribute that names a kind. It accepts either a string
// (type = "float_exp") or a bare keyword (type = float_exp).
func Keyword(expr hcl.Expression) (string, hcl.Diagnostics) {
	// A bare keyword parses as a single-step traversal.
	if traversal, diags := hcl.AbsTraversalForExpr(expr); !diags.HasErrors() && len(traversal) == 1 {
		return traversal.RootName(), nil
	}

	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return "", diags
	}
	if val.IsNull() || !val.Type().Equals(cty.String) {
		return "", hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid type specification",
			Detail:   "The 'type' attribute must be a keyword like float_exp or a string like \"float_exp\".",
			Subject:  expr.Range().Ptr(),
		}}
	}
	return val.AsString(), nil
}

// Values evaluates an attribute that holds a sequence of literals. A single
// scalar is read as a one-element sequence. An omitted attribute yields nil.
func Values(expr hcl.Expression) ([]cty.Value, hcl.Diagnostics) {
	if !IsDefined(expr) {
		return nil, nil
	}

	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return nil, nil
	}

	ty := val.Type()
	if !ty.IsTupleType() && !ty.IsListType() && !ty.IsSetType() {
		if !ty.IsPrimitiveType() {
			return nil, hcl.Diagnostics{{
				Severity: hcl.DiagError,
				Summary:  "Invalid value list",
				Detail:   "Expected a list of strings, numbers or bools, got " + ty.FriendlyName() + ".",
				Subject:  expr.Range().Ptr(),
			}}
		}
		return []cty.Value{val}, nil
	}

	var out []cty.Value
	for it := val.ElementIterator(); it.Next(); {
		_, v := it.Element()
		if !v.Type().IsPrimitiveType() && !v.Type().Equals(cty.DynamicPseudoType) {
			return nil, hcl.Diagnostics{{
				Severity: hcl.DiagError,
				Summary:  "Invalid value list",
				Detail:   "List elements must be strings, numbers or bools, got " + v.Type().FriendlyName() + ".",
				Subject:  expr.Range().Ptr(),
			}}
		}
		out = append(out, v)
	}
	return out, nil
}

// IsDefined checks if an HCL expression was actually present in the source.
// The decoder populates omitted optional attributes with zero-width
// placeholder expressions, so a nil check is insufficient.
func IsDefined(expr hcl.Expression) bool {
	if expr == nil {
		return false
	}
	r := expr.Range()
	return r.End.Byte > r.Start.Byte
}

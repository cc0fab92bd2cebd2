package hcl

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/kajjjak/ATM/internal/bggohcl"
	"github.com/kajjjak/ATM/internal/config"
)

// translateMethod converts the HCL-specific method schema into the agnostic
// model.
func translateMethod(mb *methodBlock) (*config.Method, hcl.Diagnostics) {
	var diags hcl.Diagnostics

	m := &config.Method{
		Name:           mb.Name,
		Class:          mb.Class,
		RootParameters: mb.RootParameters,
	}

	for _, pb := range mb.Parameters {
		spec, pDiags := translateParameter(pb.Name, pb.Body, true)
		diags = append(diags, pDiags...)
		if spec != nil {
			m.Parameters = append(m.Parameters, spec)
		}
	}

	for _, cb := range mb.Conditions {
		when, wDiags := cb.When.Value(nil)
		diags = append(diags, wDiags...)
		m.Conditions = append(m.Conditions, &config.Condition{
			Trigger: cb.Trigger,
			When:    when,
			Unlocks: cb.Unlocks,
		})
	}

	return m, diags
}

// translateParameter decodes a parameter body. Top-level parameters may hold
// a single element block; elements may not.
func translateParameter(name string, body hcl.Body, allowElement bool) (*config.ParameterSpec, hcl.Diagnostics) {
	var pb parameterBody
	diags := gohcl.DecodeBody(body, nil, &pb)
	if diags.HasErrors() {
		return nil, diags
	}

	kind, kDiags := bggohcl.Keyword(pb.Type)
	diags = append(diags, kDiags...)
	rng, rDiags := bggohcl.Values(pb.Range)
	diags = append(diags, rDiags...)
	values, vDiags := bggohcl.Values(pb.Values)
	diags = append(diags, vDiags...)
	sizes, sDiags := bggohcl.Values(pb.Sizes)
	diags = append(diags, sDiags...)

	spec := &config.ParameterSpec{
		Name:   name,
		Type:   kind,
		Range:  rng,
		Values: values,
		Sizes:  sizes,
	}

	if !allowElement {
		// Let the remaining body report any unexpected block or attribute.
		_, rest := pb.Remain.Content(&hcl.BodySchema{})
		return spec, append(diags, rest...)
	}

	content, cDiags := pb.Remain.Content(elementSchema)
	diags = append(diags, cDiags...)
	if content == nil {
		return spec, diags
	}
	block, bDiags := bggohcl.FindUniqueBlock(content.Blocks, "element")
	diags = append(diags, bDiags...)
	if block != nil {
		elem, eDiags := translateParameter("element", block.Body, false)
		diags = append(diags, eDiags...)
		spec.Element = elem
	}
	return spec, diags
}

package hcl

import (
	"github.com/hashicorp/hcl/v2"
)

// fileRoot decodes all top-level blocks of a method file.
type fileRoot struct {
	Methods []*methodBlock `hcl:"method,block"`
	Remain  hcl.Body       `hcl:",remain"`
}

type methodBlock struct {
	Name           string            `hcl:"name,label"`
	Class          string            `hcl:"class,optional"`
	RootParameters []string          `hcl:"root_parameters"`
	Parameters     []*parameterBlock `hcl:"parameter,block"`
	Conditions     []*conditionBlock `hcl:"condition,block"`
}

// parameterBlock is a labelled parameter. Its body is decoded in two steps
// because the optional element block reuses the same attributes.
type parameterBlock struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

// parameterBody holds the attributes shared by parameters and list
// elements.
type parameterBody struct {
	Type   hcl.Expression `hcl:"type"`
	Range  hcl.Expression `hcl:"range,optional"`
	Values hcl.Expression `hcl:"values,optional"`
	Sizes  hcl.Expression `hcl:"sizes,optional"`
	Remain hcl.Body       `hcl:",remain"`
}

type conditionBlock struct {
	Trigger string         `hcl:"trigger,label"`
	When    hcl.Expression `hcl:"when"`
	Unlocks []string       `hcl:"unlocks"`
}

// elementSchema finds the element block left in a parameter's remaining
// body.
var elementSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{{Type: "element"}},
}

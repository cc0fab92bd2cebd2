package yamlmethod

import (
	"fmt"
	"math"

	"github.com/kajjjak/ATM/internal/config"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

type document struct {
	Name           string     `yaml:"name"`
	Class          string     `yaml:"class"`
	RootParameters []string   `yaml:"root_parameters"`
	Parameters     parameters `yaml:"parameters"`
	Conditions     conditions `yaml:"conditions"`
}

func (d *document) method() *config.Method {
	return &config.Method{
		Name:           d.Name,
		Class:          d.Class,
		RootParameters: d.RootParameters,
		Parameters:     d.Parameters,
		Conditions:     d.Conditions,
	}
}

type parameter struct {
	Type    string     `yaml:"type"`
	Range   scalars    `yaml:"range"`
	Values  scalars    `yaml:"values"`
	Sizes   scalars    `yaml:"sizes"`
	Element *parameter `yaml:"element"`
}

func (p *parameter) spec(name string) *config.ParameterSpec {
	s := &config.ParameterSpec{
		Name:   name,
		Type:   p.Type,
		Range:  p.Range,
		Values: p.Values,
		Sizes:  p.Sizes,
	}
	if p.Element != nil {
		s.Element = p.Element.spec("element")
	}
	return s
}

// parameters decodes a mapping of parameters, keeping document order.
type parameters []*config.ParameterSpec

func (ps *parameters) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: parameters must be a mapping", value.Line)
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, body := value.Content[i], value.Content[i+1]
		var p parameter
		if err := body.Decode(&p); err != nil {
			return fmt.Errorf("parameter %q: %w", key.Value, err)
		}
		if p.Element != nil && p.Element.Element != nil {
			return fmt.Errorf("line %d: parameter %q: list elements cannot declare an element", key.Line, key.Value)
		}
		*ps = append(*ps, p.spec(key.Value))
	}
	return nil
}

// conditions decodes trigger -> value -> names. Value keys keep their YAML
// type.
type conditions []*config.Condition

func (cs *conditions) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: conditions must be a mapping", value.Line)
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		trigger, byValue := value.Content[i], value.Content[i+1]
		if byValue.Kind != yaml.MappingNode {
			return fmt.Errorf("line %d: conditions of %q must map values to parameter names", byValue.Line, trigger.Value)
		}
		for j := 0; j+1 < len(byValue.Content); j += 2 {
			keyNode, namesNode := byValue.Content[j], byValue.Content[j+1]
			when, err := scalar(keyNode)
			if err != nil {
				return fmt.Errorf("condition %q: %w", trigger.Value, err)
			}
			var unlocks []string
			if err := namesNode.Decode(&unlocks); err != nil {
				return fmt.Errorf("condition %q = %s: %w", trigger.Value, keyNode.Value, err)
			}
			*cs = append(*cs, &config.Condition{
				Trigger: trigger.Value,
				When:    when,
				Unlocks: unlocks,
			})
		}
	}
	return nil
}

// scalars decodes a sequence of scalars, or a single scalar, as typed
// values.
type scalars []cty.Value

func (s *scalars) UnmarshalYAML(value *yaml.Node) error {
	nodes := []*yaml.Node{value}
	if value.Kind == yaml.SequenceNode {
		nodes = value.Content
	}
	for _, n := range nodes {
		v, err := scalar(n)
		if err != nil {
			return err
		}
		*s = append(*s, v)
	}
	return nil
}

// scalar converts a scalar node according to its resolved tag.
func scalar(n *yaml.Node) (cty.Value, error) {
	if n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	if n.Kind != yaml.ScalarNode {
		return cty.NilVal, fmt.Errorf("line %d: expected a string, number or bool", n.Line)
	}

	switch n.ShortTag() {
	case "!!str":
		return cty.StringVal(n.Value), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return cty.NilVal, err
		}
		return cty.BoolVal(b), nil
	case "!!null":
		return cty.NullVal(cty.DynamicPseudoType), nil
	case "!!int", "!!float":
		if v, err := cty.ParseNumberVal(n.Value); err == nil {
			return v, nil
		}
		// Forms such as 0x1F or 1_000 only yaml understands.
		var f float64
		if err := n.Decode(&f); err != nil {
			return cty.NilVal, err
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return cty.NilVal, fmt.Errorf("line %d: %s is not a finite number", n.Line, n.Value)
		}
		return cty.NumberFloatVal(f), nil
	default:
		return cty.NilVal, fmt.Errorf("line %d: unsupported tag %s", n.Line, n.ShortTag())
	}
}

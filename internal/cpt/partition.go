package cpt

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/kajjjak/ATM/internal/hyperparam"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// Assignment binds a parameter to a single value.
type Assignment struct {
	Name  string
	Value cty.Value
}

// GoValue returns the value as a string, bool, int64 or float64.
func (a Assignment) GoValue() (any, error) {
	return hyperparam.ToGo(a.Value)
}

func (a Assignment) String() string {
	return a.Name + "=" + hyperparam.FormatValue(a.Value)
}

// TunableParam is a parameter left open for the optimizer.
type TunableParam struct {
	Name    string
	Tunable hyperparam.Tunable
}

func (t TunableParam) String() string {
	return t.Name + ":" + t.Tunable.String()
}

func (t TunableParam) clone() TunableParam {
	t.Tunable.Domain = slices.Clone(t.Tunable.Domain)
	return t
}

// HyperPartition is one leaf of the enumeration: the categorical choices
// that define it, the constants resolved under those choices and the
// tunables left open. It is an immutable value; accessors return copies.
type HyperPartition struct {
	categoricals []Assignment
	constants    []Assignment
	tunables     []TunableParam
}

// NewHyperPartition builds a partition from copies of its parts.
func NewHyperPartition(categoricals, constants []Assignment, tunables []TunableParam) HyperPartition {
	p := HyperPartition{
		categoricals: slices.Clone(categoricals),
		constants:    slices.Clone(constants),
		tunables:     make([]TunableParam, len(tunables)),
	}
	for i, t := range tunables {
		p.tunables[i] = t.clone()
	}
	return p
}

// Categoricals returns the fixed categorical choices in the order they were
// made.
func (p HyperPartition) Categoricals() []Assignment { return slices.Clone(p.categoricals) }

// Constants returns the single-valued parameters in scope.
func (p HyperPartition) Constants() []Assignment { return slices.Clone(p.constants) }

// Tunables returns the parameters left open for the optimizer.
func (p HyperPartition) Tunables() []TunableParam {
	out := make([]TunableParam, len(p.tunables))
	for i, t := range p.tunables {
		out[i] = t.clone()
	}
	return out
}

// Names returns every parameter name in the partition.
func (p HyperPartition) Names() []string {
	out := make([]string, 0, len(p.categoricals)+len(p.constants)+len(p.tunables))
	for _, a := range p.categoricals {
		out = append(out, a.Name)
	}
	for _, a := range p.constants {
		out = append(out, a.Name)
	}
	for _, t := range p.tunables {
		out = append(out, t.Name)
	}
	return out
}

// GoValues returns the categorical and constant assignments as plain Go
// values keyed by name, the part of a partition a dispatcher passes to the
// model class unchanged.
func (p HyperPartition) GoValues() (map[string]any, error) {
	out := make(map[string]any, len(p.categoricals)+len(p.constants))
	for _, a := range slices.Concat(p.categoricals, p.constants) {
		v, err := a.GoValue()
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", a.Name, err)
		}
		out[a.Name] = v
	}
	return out, nil
}

// Key identifies the partition by content, ignoring the order of its
// entries. Two partitions with equal keys are interchangeable.
func (p HyperPartition) Key() string {
	group := func(entries []string) string {
		slices.Sort(entries)
		return strings.Join(entries, ",")
	}
	cats := make([]string, len(p.categoricals))
	for i, a := range p.categoricals {
		cats[i] = assignmentKey(a)
	}
	consts := make([]string, len(p.constants))
	for i, a := range p.constants {
		consts[i] = assignmentKey(a)
	}
	tuns := make([]string, len(p.tunables))
	for i, t := range p.tunables {
		tuns[i] = t.Name + ":" + t.Tunable.String()
	}
	return group(cats) + "|" + group(consts) + "|" + group(tuns)
}

func assignmentKey(a Assignment) string {
	k := keyOf(a.Value)
	return a.Name + "=" + k.typ + ":" + k.repr
}

// Equal reports whether two partitions hold the same content.
func (p HyperPartition) Equal(o HyperPartition) bool {
	return p.Key() == o.Key()
}

func (p HyperPartition) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, a := range p.categoricals {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(a.String())
	}
	sb.WriteString("}")
	if len(p.constants) > 0 {
		parts := make([]string, len(p.constants))
		for i, a := range p.constants {
			parts[i] = a.String()
		}
		fmt.Fprintf(&sb, " constants{%s}", strings.Join(parts, ", "))
	}
	if len(p.tunables) > 0 {
		parts := make([]string, len(p.tunables))
		for i, t := range p.tunables {
			parts[i] = t.String()
		}
		fmt.Fprintf(&sb, " tunables{%s}", strings.Join(parts, ", "))
	}
	return sb.String()
}

type jsonAssignment struct {
	Name  string                  `json:"name"`
	Value ctyjson.SimpleJSONValue `json:"value"`
}

type jsonTunable struct {
	Name    string             `json:"name"`
	Tunable hyperparam.Tunable `json:"tunable"`
}

type jsonPartition struct {
	Categoricals []jsonAssignment `json:"categoricals"`
	Constants    []jsonAssignment `json:"constants"`
	Tunables     []jsonTunable    `json:"tunables"`
}

// MarshalJSON renders the partition with its entries in order.
func (p HyperPartition) MarshalJSON() ([]byte, error) {
	out := jsonPartition{
		Categoricals: toJSONAssignments(p.categoricals),
		Constants:    toJSONAssignments(p.constants),
		Tunables:     make([]jsonTunable, len(p.tunables)),
	}
	for i, t := range p.tunables {
		out.Tunables[i] = jsonTunable{Name: t.Name, Tunable: t.Tunable}
	}
	return json.Marshal(out)
}

func toJSONAssignments(in []Assignment) []jsonAssignment {
	out := make([]jsonAssignment, len(in))
	for i, a := range in {
		out[i] = jsonAssignment{Name: a.Name, Value: ctyjson.SimpleJSONValue{Value: a.Value}}
	}
	return out
}

package cpt

import (
	"fmt"

	"github.com/kajjjak/ATM/internal/hyperparam"
)

// Classification sorts a set of parameter names by how a partition treats
// them.
type Classification struct {
	// Constants are resolved to their only value.
	Constants []Assignment
	// Categoricals are free: each of their values starts a branch.
	Categoricals []string
	// Tunables are left open for the optimizer.
	Tunables []TunableParam
}

// Classify sorts names into constants, free categoricals and tunables,
// keeping their relative order.
func (s *Space) Classify(names []string) (Classification, error) {
	var c Classification
	for _, name := range names {
		p, ok := s.params[name]
		if !ok {
			return Classification{}, fmt.Errorf("%w %q", ErrUnknownParameter, name)
		}
		switch {
		case p.IsConstant():
			v, _ := p.Constant()
			c.Constants = append(c.Constants, Assignment{Name: name, Value: v})
		case p.IsCategorical():
			c.Categoricals = append(c.Categoricals, name)
		default:
			c.Tunables = append(c.Tunables, TunableParam{Name: name, Tunable: p.AsTunable()})
		}
	}
	return c, nil
}

// Role reports how Classify treats a single parameter.
func Role(p hyperparam.Parameter) string {
	switch {
	case p.IsConstant():
		return "constant"
	case p.IsCategorical():
		return "categorical"
	default:
		return "tunable"
	}
}

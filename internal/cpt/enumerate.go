package cpt

import (
	"context"
	"fmt"
	"slices"

	"github.com/kajjjak/ATM/internal/ctxlog"
	"github.com/kajjjak/ATM/internal/hyperparam"
)

// branch is the state of one path through the tree. A branch owns its
// slices: children are created with clipped copies so that appending in a
// child always reallocates and never writes into the parent's or a
// sibling's backing array.
type branch struct {
	fixed     []Assignment
	constants []Assignment
	free      []string
	tunables  []TunableParam
}

func (b *branch) has(name string) bool {
	for _, a := range b.fixed {
		if a.Name == name {
			return true
		}
	}
	for _, a := range b.constants {
		if a.Name == name {
			return true
		}
	}
	for _, t := range b.tunables {
		if t.Name == name {
			return true
		}
	}
	return slices.Contains(b.free, name)
}

// Enumerate returns every hyperpartition of the space. The context only
// carries the logger; enumeration is synchronous.
func (s *Space) Enumerate(ctx context.Context) ([]HyperPartition, error) {
	logger := ctxlog.FromContext(ctx).With("method", s.name)

	var root branch
	if err := s.reveal(&root, s.roots); err != nil {
		return nil, fmt.Errorf("method %q: %w", s.name, err)
	}

	e := &enumerator{space: s}
	if err := e.walk(root); err != nil {
		return nil, fmt.Errorf("method %q: %w", s.name, err)
	}

	logger.Debug("Enumerated hyperpartitions", "count", len(e.out))
	return e.out, nil
}

// reveal brings names into scope on b. Names already in scope are skipped.
// A categorical resolved to a constant still unlocks whatever its only
// value is conditioned on, so a list with a single allowed length reveals
// its elements.
func (s *Space) reveal(b *branch, names []string) error {
	for len(names) > 0 {
		fresh := make([]string, 0, len(names))
		for _, n := range names {
			if !b.has(n) && !slices.Contains(fresh, n) {
				fresh = append(fresh, n)
			}
		}
		c, err := s.Classify(fresh)
		if err != nil {
			return err
		}
		b.constants = append(b.constants, c.Constants...)
		b.free = append(b.free, c.Categoricals...)
		b.tunables = append(b.tunables, c.Tunables...)

		names = nil
		for _, a := range c.Constants {
			names = append(names, s.Unlocks(a.Name, a.Value)...)
		}
	}
	return nil
}

type enumerator struct {
	space *Space
	out   []HyperPartition
}

func (e *enumerator) walk(b branch) error {
	opts := e.space.opts
	if len(b.free) == 0 {
		if opts.MaxPartitions > 0 && len(e.out) >= opts.MaxPartitions {
			return fmt.Errorf("%w: more than %d", ErrTooManyPartitions, opts.MaxPartitions)
		}
		e.out = append(e.out, NewHyperPartition(b.fixed, b.constants, b.tunables))
		return nil
	}

	name := b.free[0]
	if len(b.fixed) >= opts.MaxDepth {
		return fmt.Errorf("%w: a branch fixes more than %d categoricals (next is %q)", ErrMaxDepth, opts.MaxDepth, name)
	}
	cat, ok := e.space.params[name].(*hyperparam.Categorical)
	if !ok {
		return fmt.Errorf("%w: %q is not categorical", ErrInvalidCondition, name)
	}

	for _, v := range cat.Values() {
		child := branch{
			fixed:     append(slices.Clip(b.fixed), Assignment{Name: name, Value: v}),
			constants: slices.Clip(b.constants),
			free:      slices.Clip(b.free[1:]),
			tunables:  slices.Clip(b.tunables),
		}
		if err := e.space.reveal(&child, e.space.Unlocks(name, v)); err != nil {
			return err
		}
		if err := e.walk(child); err != nil {
			return err
		}
	}
	return nil
}

package cpt

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/kajjjak/ATM/internal/config"
	"github.com/kajjjak/ATM/internal/ctxlog"
	"github.com/kajjjak/ATM/internal/dag"
	"github.com/kajjjak/ATM/internal/hyperparam"
	"github.com/zclconf/go-cty/cty"
)

// DefaultMaxDepth bounds the number of categoricals a single branch may fix
// when Options.MaxDepth is zero.
const DefaultMaxDepth = 512

// Options bound the enumeration of a Space.
type Options struct {
	// MaxDepth is the largest number of categoricals one branch may fix.
	// Zero selects DefaultMaxDepth.
	MaxDepth int
	// MaxPartitions caps the number of hyperpartitions. Zero means no cap.
	MaxPartitions int
}

// Space is the frozen parameter table and conditional tree of one method.
type Space struct {
	name  string
	class string

	params map[string]hyperparam.Parameter
	// names is the declaration order after list expansion.
	names []string
	roots []string
	// conditions maps a trigger to the names each of its values unlocks.
	conditions map[string]map[valueKey][]string

	opts Options
}

// New builds the Space of a method. Every configuration error is reported
// here, before any enumeration.
func New(ctx context.Context, m *config.Method, opts Options) (*Space, error) {
	if m == nil {
		return nil, fmt.Errorf("cpt: nil method")
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	s, err := build(ctx, m, opts)
	if err != nil {
		return nil, fmt.Errorf("method %q: %w", m.Name, err)
	}
	return s, nil
}

// builder holds the state that only exists while a Space is constructed.
type builder struct {
	space    *Space
	declared map[string]hyperparam.Parameter
	lists    map[string]*hyperparam.List
	// spelled remembers how the key that selected a value was written.
	spelled map[string]map[valueKey]string
}

func build(ctx context.Context, m *config.Method, opts Options) (*Space, error) {
	logger := ctxlog.FromContext(ctx).With("method", m.Name)

	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.MaxPartitions < 0 {
		opts.MaxPartitions = 0
	}

	b := &builder{
		space: &Space{
			name:       m.Name,
			class:      m.Class,
			params:     make(map[string]hyperparam.Parameter, len(m.Parameters)),
			conditions: make(map[string]map[valueKey][]string),
			opts:       opts,
		},
		declared: make(map[string]hyperparam.Parameter, len(m.Parameters)),
		lists:    make(map[string]*hyperparam.List),
		spelled:  make(map[string]map[valueKey]string),
	}

	// Phase 1: raw schemas to parameters.
	for _, spec := range m.Parameters {
		p, err := hyperparam.New(spec)
		if err != nil {
			return nil, err
		}
		b.declared[spec.Name] = p
	}

	// Phase 2: the parameter table, with lists expanded in place.
	for _, spec := range m.Parameters {
		p := b.declared[spec.Name]
		l, ok := p.(*hyperparam.List)
		if !ok {
			if err := b.register(p); err != nil {
				return nil, err
			}
			continue
		}
		if err := b.expandList(l); err != nil {
			return nil, err
		}
		logger.Debug("Expanded list parameter", "list", l.Name(), "size", l.Size().Name(), "elements", l.MaxSize())
	}

	if err := b.setRoots(m.RootParameters); err != nil {
		return nil, err
	}
	for _, c := range m.Conditions {
		if err := b.addCondition(logger, c); err != nil {
			return nil, err
		}
	}
	if err := b.space.checkCycles(); err != nil {
		return nil, err
	}

	logger.Debug("Built parameter space",
		"parameters", len(b.space.names),
		"roots", len(b.space.roots),
		"triggers", len(b.space.conditions),
	)
	return b.space, nil
}

func (b *builder) register(p hyperparam.Parameter) error {
	s := b.space
	if _, ok := s.params[p.Name()]; ok {
		return fmt.Errorf("%w: %q is declared more than once", ErrDuplicateParameter, p.Name())
	}
	s.params[p.Name()] = p
	s.names = append(s.names, p.Name())
	return nil
}

// expandList replaces a list by its size categorical and its element slots.
// Choosing size i unlocks exactly the first i slots.
func (b *builder) expandList(l *hyperparam.List) error {
	b.lists[l.Name()] = l
	size := l.Size()
	if err := b.register(size); err != nil {
		return fmt.Errorf("list %q: %w", l.Name(), err)
	}

	elements := make([]string, l.MaxSize())
	for i := range elements {
		elements[i] = hyperparam.ElementName(l.Name(), i)
		if err := b.register(l.Element().WithName(elements[i])); err != nil {
			return fmt.Errorf("list %q: %w", l.Name(), err)
		}
	}

	byValue := make(map[valueKey][]string, size.Len())
	for _, v := range size.Values() {
		n, err := l.Len(v)
		if err != nil {
			return fmt.Errorf("list %q: %w", l.Name(), err)
		}
		if n > 0 {
			byValue[keyOf(v)] = slices.Clone(elements[:n])
		}
	}
	b.space.conditions[size.Name()] = byValue
	return nil
}

// resolve maps a declared name to its name in the expanded table.
func (b *builder) resolve(name string) (string, error) {
	if _, ok := b.declared[name]; !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownParameter, name)
	}
	if _, ok := b.lists[name]; ok {
		return hyperparam.SizeName(name), nil
	}
	return name, nil
}

func (b *builder) setRoots(roots []string) error {
	out := make([]string, 0, len(roots))
	for _, r := range roots {
		name, err := b.resolve(r)
		if err != nil {
			return fmt.Errorf("root parameters: %w", err)
		}
		if slices.Contains(out, name) {
			return fmt.Errorf("root parameters: %w: %q is listed more than once", ErrDuplicateParameter, r)
		}
		out = append(out, name)
	}
	b.space.roots = out
	return nil
}

func (b *builder) addCondition(logger *slog.Logger, c *config.Condition) error {
	p, ok := b.declared[c.Trigger]
	if !ok {
		return fmt.Errorf("condition: %w %q", ErrUnknownParameter, c.Trigger)
	}
	if _, isList := p.(*hyperparam.List); isList {
		return fmt.Errorf("%w: condition on list %q; its length is chosen by %q", ErrInvalidCondition, c.Trigger, hyperparam.SizeName(c.Trigger))
	}
	trigger, ok := p.(*hyperparam.Categorical)
	if !ok {
		return fmt.Errorf("%w: trigger %q is %s, not categorical", ErrInvalidCondition, c.Trigger, p.Kind())
	}
	if c.When.IsNull() || !c.When.IsKnown() {
		return fmt.Errorf("%w: condition on %q has no value", ErrInvalidCondition, c.Trigger)
	}
	if c.Stringified && !c.When.Type().Equals(cty.String) {
		return fmt.Errorf("%w: condition on %q has a non-string key", ErrInvalidCondition, c.Trigger)
	}

	unlocks := make([]string, 0, len(c.Unlocks))
	for _, u := range c.Unlocks {
		name, err := b.resolve(u)
		if err != nil {
			return fmt.Errorf("condition on %q: %w", c.Trigger, err)
		}
		unlocks = append(unlocks, name)
	}

	v, ok := matchValue(trigger.Values(), c)
	if !ok {
		logger.Warn("Condition key matches no value of its trigger; it unlocks nothing",
			"trigger", c.Trigger, "key", spelling(c))
		return nil
	}

	k := keyOf(v)
	if b.spelled[c.Trigger] == nil {
		b.spelled[c.Trigger] = make(map[valueKey]string)
	}
	if prev, seen := b.spelled[c.Trigger][k]; seen && prev != spelling(c) {
		return fmt.Errorf("%w: keys %q and %q of condition %q both select %s",
			ErrInvalidCondition, prev, spelling(c), c.Trigger, hyperparam.FormatValue(v))
	}
	b.spelled[c.Trigger][k] = spelling(c)

	byValue := b.space.conditions[c.Trigger]
	if byValue == nil {
		byValue = make(map[valueKey][]string)
		b.space.conditions[c.Trigger] = byValue
	}
	merged := byValue[k]
	for _, name := range unlocks {
		if slices.Contains(merged, name) {
			return fmt.Errorf("condition %q = %s: %w: %q is unlocked more than once",
				c.Trigger, hyperparam.FormatValue(v), ErrDuplicateParameter, name)
		}
		merged = append(merged, name)
	}
	byValue[k] = merged
	return nil
}

// checkCycles rejects a tree in which a parameter can unlock itself.
func (s *Space) checkCycles() error {
	g := dag.New()
	for _, name := range s.names {
		g.AddNode(name)
	}
	for _, name := range s.names {
		if _, ok := s.conditions[name]; !ok {
			continue
		}
		for _, v := range s.domain(name) {
			for _, u := range s.Unlocks(name, v) {
				if err := g.AddEdge(name, u); err != nil {
					return err
				}
			}
		}
	}
	return g.DetectCycles()
}

// domain returns the candidate values of a categorical, or nil.
func (s *Space) domain(name string) []cty.Value {
	if c, ok := s.params[name].(*hyperparam.Categorical); ok {
		return c.Values()
	}
	return nil
}

// Name is the method's name.
func (s *Space) Name() string { return s.name }

// Class is the opaque model class reference of the method.
func (s *Space) Class() string { return s.class }

// RootParams returns the names that are always in scope, with list names
// replaced by their size parameter.
func (s *Space) RootParams() []string { return slices.Clone(s.roots) }

// Names returns every parameter name of the expanded table in declaration
// order.
func (s *Space) Names() []string { return slices.Clone(s.names) }

// Parameter looks a parameter up in the expanded table.
func (s *Space) Parameter(name string) (hyperparam.Parameter, bool) {
	p, ok := s.params[name]
	return p, ok
}

// Unlocks returns the names revealed by choosing value v for trigger.
func (s *Space) Unlocks(trigger string, v cty.Value) []string {
	byValue, ok := s.conditions[trigger]
	if !ok || v.IsNull() {
		return nil
	}
	return slices.Clone(byValue[keyOf(v)])
}

package cpt

import (
	"errors"

	"github.com/kajjjak/ATM/internal/dag"
)

var (
	// ErrUnknownParameter is returned when a root parameter or a condition
	// names a parameter that is not declared.
	ErrUnknownParameter = errors.New("unknown parameter")
	// ErrInvalidCondition is returned for a condition that cannot be
	// evaluated: its trigger is not categorical, or two of its keys select
	// the same value.
	ErrInvalidCondition = errors.New("invalid condition")
	// ErrDuplicateParameter is returned when a name is declared, listed or
	// synthesized more than once.
	ErrDuplicateParameter = errors.New("duplicate parameter")
	// ErrCycle is returned when a parameter can, directly or indirectly,
	// unlock itself.
	ErrCycle = dag.ErrCycle
	// ErrMaxDepth is returned when a branch fixes more categoricals than
	// Options.MaxDepth allows.
	ErrMaxDepth = errors.New("cycle or excessive nesting")
	// ErrTooManyPartitions is returned when enumeration would produce more
	// hyperpartitions than Options.MaxPartitions allows.
	ErrTooManyPartitions = errors.New("too many hyperpartitions")
)

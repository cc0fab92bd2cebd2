// Package hyperparam models a single hyperparameter of a method.
//
// A Parameter is one of three variants:
//
//   - Numeric: an integer or float range, optionally log-scaled ("_exp").
//   - Categorical: an ordered set of candidate values.
//   - List: a variable-length sequence described by a size Categorical and a
//     single element schema shared by every index.
//
// The Parameter interface is sealed; the only implementations are the three
// types in this package, and code that needs per-variant behavior switches
// over them exhaustively. All values are cty.Values so that a value keeps its
// type: the number 1, the string "1" and the bool true are never confused.
//
// Parameters that survive classification as tunables are handed to an
// external optimizer as a Tunable, an opaque {kind, domain} descriptor.
package hyperparam

// Package cpt builds the conditional parameter tree of a method and
// enumerates it into hyperpartitions.
//
// Construction is two-phase. New takes the raw, format-agnostic
// config.Method, builds every parameter, expands list parameters into a size
// categorical plus per-index element parameters, resolves condition keys
// against the typed domains of their triggers and checks the condition graph
// for cycles. The resulting Space is frozen: nothing mutates it afterwards,
// so it can be enumerated any number of times, from any number of
// goroutines.
//
// Enumerate walks the tree depth first. Each free categorical is fixed to
// each of its values in declared order; values that unlock further
// parameters add them to the branch. A branch emits one HyperPartition when
// no free categoricals are left.
package cpt

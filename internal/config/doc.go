// Package config defines the format-agnostic model of a method definition,
// along with the Loader interface implemented by each file format (HCL, JSON,
// YAML).
//
// A Method is the raw, unexpanded description of a method's hyperparameter
// space exactly as the user wrote it. It is the single input of the cpt
// package, which expands list parameters and freezes the result into a
// conditional parameter tree. Nothing in this package interprets parameter
// types; that belongs to the hyperparam package.
package config

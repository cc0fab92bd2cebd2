// Package yamlmethod loads method files written in YAML. The layout mirrors
// the JSON one; a file may hold several methods as separate documents.
//
// Unlike JSON, YAML keys are typed: under a condition, 2: selects the
// number 2, "2": selects the string "2" and true: selects the bool.
package yamlmethod

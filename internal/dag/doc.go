// Package dag provides a small directed graph used to validate the
// dependency structure of a conditional parameter tree before it is
// enumerated.
//
// Nodes are parameter names. An edge from A to B means that choosing some
// value of A reveals B. A cycle in this graph would make enumeration recurse
// forever, so DetectCycles reports it up front together with the offending
// path. Traversal follows insertion order, which keeps error messages stable
// between runs.
package dag

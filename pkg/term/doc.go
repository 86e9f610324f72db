// Package term implements the symbolic side of the system: immutable
// configuration objects, constructions with tree-shaped signatures,
// argument tuples, configurations over a loose-object layout, theorems,
// and the canonical string converter that identifies configurations up
// to the symmetries of their loose objects.
//
// Objects form a DAG: every argument of a constructed object refers to
// an earlier object. Objects never mutate after creation; operations
// that "change" identifiers (canonical rewriting) build new objects.
package term

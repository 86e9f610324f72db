// Package input parses the line-oriented text formats: generator
// inputs (layout declaration, initial constructed objects, Rules
// block) and template theorem files (numbered blocks of the same shape
// followed by a theorem declaration).
//
// Whitespace and # comments are ignored everywhere. Parse errors carry
// the offending line and column and wrap ErrParseFailure.
package input

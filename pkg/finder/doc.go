// Package finder discovers theorems in a realized configuration. It
// enumerates candidate statements structurally (pairs of lines, point
// triples, segment pairs, ...), keeps only those involving the
// configuration's last-added object, and accepts a candidate iff its
// analytic predicate holds in every picture within rounding.
//
// Line and circle entities enter candidates both as configuration
// objects and as point-defined entities (a line by two of its points,
// a circle by three), so theorems about implicit lines are found even
// when no line object was ever constructed.
package finder

// Package filter classifies the discovered theorems of one
// configuration against the template library and the facts known for
// that configuration. A theorem is trivial when the
// definitional axioms of the last construction already state it, a
// sub-theorem when a template theorem maps onto it, definable in a
// simpler configuration when its dependency closure needs fewer
// constructed objects, or transitively implied when it composes from
// two known facts. The first matching category wins; a theorem gets at
// most one annotation.
package filter

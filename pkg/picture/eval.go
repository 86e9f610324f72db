package picture

import (
	"github.com/AnonymousPurplePotato/geogen/pkg/analytic"
	"github.com/AnonymousPurplePotato/geogen/pkg/term"
)

// evaluate applies a constructed object's constructor function to the
// analytic values of its arguments within one picture. The boolean
// reports constructability: degenerate inputs and empty intersections
// both leave the object unconstructable in this picture.
func evaluate(o *term.Object, values map[int]analytic.Object) (analytic.Object, bool) {
	flat := make([]analytic.Object, 0, 4)
	for _, dep := range o.Args.Objects() {
		v, ok := values[dep.ID]
		if !ok {
			return nil, false
		}
		flat = append(flat, v)
	}

	switch c := o.Construction.(type) {
	case *term.Predefined:
		return evaluatePredefined(c.Kind, flat, o.Index)
	case *term.Composed:
		return evaluateComposed(c, flat)
	default:
		return nil, false
	}
}

// evaluatePredefined dispatches over the closed predefined set. flat
// holds the argument values in signature order (set arguments in their
// canonical order; every predefined construction is insensitive to the
// order within its sets).
func evaluatePredefined(kind term.ConstructionKind, flat []analytic.Object, index int) (analytic.Object, bool) {
	switch kind {
	case term.KindMidpoint:
		a, b := flat[0].(analytic.Point), flat[1].(analytic.Point)
		if a.Equal(b) {
			return nil, false
		}
		return analytic.Midpoint(a, b), true

	case term.KindLineFromPoints:
		l, err := analytic.LineFromPoints(flat[0].(analytic.Point), flat[1].(analytic.Point))
		return l, err == nil

	case term.KindIntersectionOfLines:
		p, ok := analytic.IntersectLines(flat[0].(analytic.Line), flat[1].(analytic.Line))
		return p, ok

	case term.KindCircumcircle:
		c, err := analytic.Circumcircle(flat[0].(analytic.Point), flat[1].(analytic.Point), flat[2].(analytic.Point))
		return c, err == nil

	case term.KindCircleWithCenterThroughPoint:
		c, err := analytic.CircleThrough(flat[0].(analytic.Point), flat[1].(analytic.Point))
		return c, err == nil

	case term.KindPerpendicularLine:
		l, err := analytic.PerpendicularThrough(flat[1].(analytic.Line), flat[0].(analytic.Point))
		return l, err == nil

	case term.KindParallelLine:
		// Through an incident point this reproduces the base line;
		// coincidence detection classifies that as a duplicate.
		l, err := analytic.ParallelThrough(flat[1].(analytic.Line), flat[0].(analytic.Point))
		return l, err == nil

	case term.KindPerpendicularProjection:
		return analytic.Project(flat[0].(analytic.Point), flat[1].(analytic.Line)), true

	case term.KindPerpendicularBisector:
		l, err := analytic.PerpendicularBisector(flat[0].(analytic.Point), flat[1].(analytic.Point))
		return l, err == nil

	case term.KindInternalAngleBisector:
		l, err := analytic.InternalAngleBisector(
			flat[0].(analytic.Point), flat[1].(analytic.Point), flat[2].(analytic.Point))
		return l, err == nil

	case term.KindSecondIntersectionOfLineAndCircle:
		p := flat[0].(analytic.Point)
		l := flat[1].(analytic.Line)
		c := flat[2].(analytic.Circle)
		if !analytic.LiesOnLine(p, l) || !analytic.LiesOnCircle(p, c) {
			return nil, false
		}
		for _, q := range analytic.IntersectLineCircle(l, c) {
			if !q.Equal(p) {
				// index selects among remaining solutions; the
				// predefined form has exactly one.
				if index == 0 {
					return q, true
				}
				index--
			}
		}
		return nil, false

	default:
		return nil, false
	}
}

// evaluateComposed inlines the steps of a composed construction under
// a local binding of its loose objects to the caller's argument
// values. No fresh picture set is involved.
func evaluateComposed(c *term.Composed, flat []analytic.Object) (analytic.Object, bool) {
	local := make(map[int]analytic.Object, len(c.Config.Loose)+len(c.Config.Constructed))
	for i, loose := range c.Config.Loose {
		local[loose.ID] = flat[i]
	}
	var last analytic.Object
	for _, step := range c.Config.Constructed {
		v, ok := evaluate(step, local)
		if !ok {
			return nil, false
		}
		local[step.ID] = v
		last = v
	}
	return last, true
}

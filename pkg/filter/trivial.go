package filter

import (
	"github.com/AnonymousPurplePotato/geogen/pkg/term"
)

// TrivialTheorems derives, from the last-added object's construction
// alone, the closed set of theorems that hold by definition. A
// configuration without a last-added object (or whose last
// construction implies nothing expressible as a theorem) yields an
// empty set.
func TrivialTheorems(cfg *term.Configuration) []term.Theorem {
	last := cfg.LastAdded
	if last == nil || last.Loose() {
		return nil
	}
	p, ok := last.Construction.(*term.Predefined)
	if !ok {
		// Composed constructions state their facts through their
		// template configurations, not through axioms.
		return nil
	}

	flat := last.Args.Objects()
	switch p.Kind {
	case term.KindMidpoint:
		a, b := flat[0], flat[1]
		return []term.Theorem{
			term.NewTheorem(term.EqualLineSegments,
				term.SegmentOf(a, last), term.SegmentOf(b, last)),
			term.NewTheorem(term.CollinearPoints,
				term.PointByObject(a), term.PointByObject(b), term.PointByObject(last)),
		}

	case term.KindPerpendicularLine:
		return []term.Theorem{
			term.NewTheorem(term.PerpendicularLines,
				term.LineByObject(last), term.LineByObject(flat[1])),
		}

	case term.KindParallelLine:
		return []term.Theorem{
			term.NewTheorem(term.ParallelLines,
				term.LineByObject(last), term.LineByObject(flat[1])),
		}

	case term.KindPerpendicularProjection:
		point, base := flat[0], flat[1]
		return []term.Theorem{
			term.NewTheorem(term.PerpendicularLines,
				term.LineByPoints(point, last), term.LineByObject(base)),
		}

	case term.KindPerpendicularBisector:
		a, b := flat[0], flat[1]
		return []term.Theorem{
			term.NewTheorem(term.PerpendicularLines,
				term.LineByObject(last), term.LineByPoints(a, b)),
		}

	case term.KindInternalAngleBisector:
		vertex, b, c := flat[0], flat[1], flat[2]
		return []term.Theorem{
			term.NewTheorem(term.EqualAngles,
				term.AngleOf(term.LineByPoints(vertex, b), term.LineByObject(last)),
				term.AngleOf(term.LineByObject(last), term.LineByPoints(vertex, c))),
		}

	default:
		// LineFromPoints, IntersectionOfLines, Circumcircle and the
		// circle constructions assert only incidences, which are not
		// theorem statements.
		return nil
	}
}

package filter

import (
	"github.com/AnonymousPurplePotato/geogen/pkg/finder"
	"github.com/AnonymousPurplePotato/geogen/pkg/picture"
	"github.com/AnonymousPurplePotato/geogen/pkg/term"
)

// transitivity searches for two known facts whose composition yields
// t. Facts qualify as known when they verify numerically in every
// picture and either belong to the knowledge accumulated for the
// configuration being classified (its trivial axioms and the theorems
// classified before t) or do not involve the last-added object, i.e.
// they already held in a simpler sub-configuration. Theorems of other
// configurations of the run are not consulted.
type transitivity struct {
	cfg   *term.Configuration
	pics  []*picture.Picture
	known map[string]bool

	points []*term.Object
	lines  []term.TheoremObject
}

func newTransitivity(cfg *term.Configuration, pics []*picture.Picture, known map[string]bool) *transitivity {
	points, lines, _ := finder.Entities(cfg)
	return &transitivity{cfg: cfg, pics: pics, known: known, points: points, lines: lines}
}

// isKnown reports whether a fact may serve as a composition factor.
func (tr *transitivity) isKnown(fact term.Theorem) bool {
	if !finder.Holds(fact, tr.pics) {
		return false
	}
	if tr.known[fact.Key()] {
		return true
	}
	last := tr.cfg.LastAdded
	return last != nil && !fact.Involves(last.ID)
}

// Explain returns the two composing facts, if any.
func (tr *transitivity) Explain(t term.Theorem) (term.Theorem, term.Theorem, bool) {
	switch t.Type {
	case term.EqualLineSegments:
		return tr.explainTwoSided(t, tr.segmentEntities(), term.EqualLineSegments)
	case term.EqualAngles:
		return tr.explainTwoSided(t, tr.angleEntities(), term.EqualAngles)
	case term.ParallelLines, term.PerpendicularLines:
		return tr.explainLinePair(t)
	case term.ConcyclicPoints:
		return tr.explainConcyclic(t)
	default:
		return term.Theorem{}, term.Theorem{}, false
	}
}

// explainTwoSided handles plain equivalence relations: t = (X, Z)
// follows from (X, Y) and (Y, Z) over the same relation.
func (tr *transitivity) explainTwoSided(t term.Theorem, middles []term.TheoremObject, typ term.TheoremType) (term.Theorem, term.Theorem, bool) {
	x, z := t.Objects[0], t.Objects[1]
	tKey := t.Key()
	for _, y := range middles {
		f1 := term.NewTheorem(typ, x, y)
		f2 := term.NewTheorem(typ, y, z)
		if f1.Key() == tKey || f2.Key() == tKey {
			continue
		}
		if tr.isKnown(f1) && tr.isKnown(f2) {
			return f1, f2, true
		}
	}
	return term.Theorem{}, term.Theorem{}, false
}

// explainLinePair composes parallelism and perpendicularity:
//
//	X ∥ Y, Y ∥ Z => X ∥ Z    X ⊥ Y, Y ⊥ Z => X ∥ Z
//	X ⊥ Y, Y ∥ Z => X ⊥ Z    X ∥ Y, Y ⊥ Z => X ⊥ Z
func (tr *transitivity) explainLinePair(t term.Theorem) (term.Theorem, term.Theorem, bool) {
	x, z := t.Objects[0], t.Objects[1]
	tKey := t.Key()

	type rule struct{ first, second term.TheoremType }
	var rules []rule
	if t.Type == term.ParallelLines {
		rules = []rule{
			{term.ParallelLines, term.ParallelLines},
			{term.PerpendicularLines, term.PerpendicularLines},
		}
	} else {
		rules = []rule{
			{term.PerpendicularLines, term.ParallelLines},
			{term.ParallelLines, term.PerpendicularLines},
		}
	}

	for _, y := range tr.lines {
		for _, r := range rules {
			f1 := term.NewTheorem(r.first, x, y)
			f2 := term.NewTheorem(r.second, y, z)
			if f1.Key() == tKey || f2.Key() == tKey {
				continue
			}
			if tr.isKnown(f1) && tr.isKnown(f2) {
				return f1, f2, true
			}
		}
	}
	return term.Theorem{}, term.Theorem{}, false
}

// explainConcyclic treats concyclicity as equality of circumscribing
// circles: {a,b,c,d} follows from {a,b,c,w} and {a,b,d,w} whenever
// both are known, since three shared points pin the circle.
func (tr *transitivity) explainConcyclic(t term.Theorem) (term.Theorem, term.Theorem, bool) {
	inTheorem := make(map[int]bool)
	for _, o := range t.Objects {
		inTheorem[o.Obj.ID] = true
	}
	pts := t.Objects
	for _, w := range tr.points {
		if inTheorem[w.ID] {
			continue
		}
		for drop1 := 0; drop1 < len(pts); drop1++ {
			for drop2 := drop1 + 1; drop2 < len(pts); drop2++ {
				f1 := concyclicWithout(pts, drop1, w)
				f2 := concyclicWithout(pts, drop2, w)
				if tr.isKnown(f1) && tr.isKnown(f2) {
					return f1, f2, true
				}
			}
		}
	}
	return term.Theorem{}, term.Theorem{}, false
}

// concyclicWithout states the concyclicity of the theorem's points
// with index drop replaced by w.
func concyclicWithout(pts []term.TheoremObject, drop int, w *term.Object) term.Theorem {
	objs := make([]term.TheoremObject, 0, len(pts))
	for i, p := range pts {
		if i == drop {
			continue
		}
		objs = append(objs, p)
	}
	objs = append(objs, term.PointByObject(w))
	return term.NewTheorem(term.ConcyclicPoints, objs...)
}

// segmentEntities lists every segment between configuration points.
func (tr *transitivity) segmentEntities() []term.TheoremObject {
	var out []term.TheoremObject
	for i := 0; i < len(tr.points); i++ {
		for j := i + 1; j < len(tr.points); j++ {
			out = append(out, term.SegmentOf(tr.points[i], tr.points[j]))
		}
	}
	return out
}

// angleEntities lists every angle between two line entities.
func (tr *transitivity) angleEntities() []term.TheoremObject {
	var out []term.TheoremObject
	for i := 0; i < len(tr.lines); i++ {
		for j := i + 1; j < len(tr.lines); j++ {
			out = append(out, term.AngleOf(tr.lines[i], tr.lines[j]))
		}
	}
	return out
}

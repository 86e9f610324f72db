package finder

import (
	"github.com/AnonymousPurplePotato/geogen/pkg/analytic"
	"github.com/AnonymousPurplePotato/geogen/pkg/picture"
	"github.com/AnonymousPurplePotato/geogen/pkg/term"
)

// Find enumerates and verifies the theorems of a realized
// configuration that involve its last-added object. Theorems already
// holding in the parent configuration concern only earlier objects and
// are excluded by that restriction. The result is normalized and
// duplicate-free.
//
// A configuration without a last-added object (the initial one) is
// searched without the involvement restriction.
func Find(cfg *term.Configuration, pics []*picture.Picture) []term.Theorem {
	f := &finder{cfg: cfg, pics: pics, seen: make(map[string]bool)}
	if cfg.LastAdded != nil {
		f.lastID = cfg.LastAdded.ID
		f.restrict = true
	}
	f.collectEntities()

	f.findSegmentEqualities()
	f.findCollinear()
	f.findConcyclic()
	f.findLinePairs()
	f.findConcurrent()
	f.findCirclePairs()
	f.findLineCircleTangencies()
	f.findEqualAngles()
	return f.found
}

// Entities returns the point objects and the line and circle entities
// (object-backed and point-defined) of a configuration, the same pools
// the finder enumerates candidates from. The transitivity filter uses
// them to search for middle entities.
func Entities(cfg *term.Configuration) (points []*term.Object, lines, circles []term.TheoremObject) {
	f := &finder{cfg: cfg}
	f.collectEntities()
	return f.points, f.lines, f.circles
}

type finder struct {
	cfg      *term.Configuration
	pics     []*picture.Picture
	restrict bool
	lastID   int

	points  []*term.Object
	lines   []term.TheoremObject
	circles []term.TheoremObject

	seen  map[string]bool
	found []term.Theorem
}

// collectEntities gathers the point objects and the line and circle
// entities, both object-backed and point-defined. Point-defined
// entities that symbolically duplicate an existing object (the pair of
// a LineFromPoints, the triple of a Circumcircle) are skipped.
func (f *finder) collectEntities() {
	f.points = f.cfg.ObjectsOfType(term.Point)

	explicitLines := make(map[string]bool)
	explicitCircles := make(map[string]bool)
	for _, o := range f.cfg.Objects() {
		switch o.Type {
		case term.Line:
			f.lines = append(f.lines, term.LineByObject(o))
			if p, ok := o.Construction.(*term.Predefined); ok && p.Kind == term.KindLineFromPoints {
				explicitLines[term.ArgumentsKey(o.Args)] = true
			}
		case term.Circle:
			f.circles = append(f.circles, term.CircleByObject(o))
			if p, ok := o.Construction.(*term.Predefined); ok && p.Kind == term.KindCircumcircle {
				explicitCircles[term.ArgumentsKey(o.Args)] = true
			}
		}
	}

	for i := 0; i < len(f.points); i++ {
		for j := i + 1; j < len(f.points); j++ {
			p, q := f.points[i], f.points[j]
			if explicitLines[pairKey(p, q)] {
				continue
			}
			f.lines = append(f.lines, term.LineByPoints(p, q))
		}
	}
	for i := 0; i < len(f.points); i++ {
		for j := i + 1; j < len(f.points); j++ {
			for k := j + 1; k < len(f.points); k++ {
				p, q, r := f.points[i], f.points[j], f.points[k]
				if explicitCircles[tripleKey(p, q, r)] {
					continue
				}
				f.circles = append(f.circles, term.CircleByPoints(p, q, r))
			}
		}
	}
}

func pairKey(p, q *term.Object) string {
	set, err := term.NewSetArg([]term.Argument{
		term.ObjectArg{Obj: p}, term.ObjectArg{Obj: q},
	})
	if err != nil {
		return ""
	}
	return term.ArgumentsKey(term.ArgList{set})
}

func tripleKey(p, q, r *term.Object) string {
	set, err := term.NewSetArg([]term.Argument{
		term.ObjectArg{Obj: p}, term.ObjectArg{Obj: q}, term.ObjectArg{Obj: r},
	})
	if err != nil {
		return ""
	}
	return term.ArgumentsKey(term.ArgList{set})
}

// involves reports whether any of the theorem objects mentions the
// last-added object.
func (f *finder) involves(objs ...term.TheoremObject) bool {
	if !f.restrict {
		return true
	}
	for _, o := range objs {
		for _, m := range o.MentionedObjects() {
			if m.ID == f.lastID {
				return true
			}
		}
	}
	return false
}

// accept records a verified theorem, deduplicating by key.
func (f *finder) accept(t term.Theorem) {
	key := t.Key()
	if f.seen[key] {
		return
	}
	f.seen[key] = true
	f.found = append(f.found, t)
}

// resolve maps a theorem object to its analytic value in one picture.
// Point-defined entities are built on the fly; a degenerate definition
// (collinear circle triple) fails resolution.
func resolve(o term.TheoremObject, pic *picture.Picture) (analytic.Object, bool) {
	if o.Obj != nil {
		return pic.Get(o.Obj)
	}
	switch o.Kind {
	case term.LineObject:
		a, ok1 := pic.Get(o.Points[0])
		b, ok2 := pic.Get(o.Points[1])
		if !ok1 || !ok2 {
			return nil, false
		}
		l, err := analytic.LineFromPoints(a.(analytic.Point), b.(analytic.Point))
		return l, err == nil
	case term.CircleObject:
		a, ok1 := pic.Get(o.Points[0])
		b, ok2 := pic.Get(o.Points[1])
		c, ok3 := pic.Get(o.Points[2])
		if !ok1 || !ok2 || !ok3 {
			return nil, false
		}
		circ, err := analytic.Circumcircle(a.(analytic.Point), b.(analytic.Point), c.(analytic.Point))
		return circ, err == nil
	default:
		return nil, false
	}
}

// holdsInAll verifies a predicate over every picture; the candidate is
// rejected the moment any picture fails.
func (f *finder) holdsInAll(check func(pic *picture.Picture) bool) bool {
	for _, pic := range f.pics {
		if !check(pic) {
			return false
		}
	}
	return true
}

func (f *finder) findSegmentEqualities() {
	pts := f.points
	type seg struct{ a, b *term.Object }
	var segs []seg
	for i := 0; i < len(pts); i++ {
		for j := i + 1; j < len(pts); j++ {
			segs = append(segs, seg{pts[i], pts[j]})
		}
	}
	for i := 0; i < len(segs); i++ {
		for j := i + 1; j < len(segs); j++ {
			s1, s2 := segs[i], segs[j]
			o1 := term.SegmentOf(s1.a, s1.b)
			o2 := term.SegmentOf(s2.a, s2.b)
			if !f.involves(o1, o2) {
				continue
			}
			candidate := term.NewTheorem(term.EqualLineSegments, o1, o2)
			if Holds(candidate, f.pics) {
				f.accept(candidate)
			}
		}
	}
}

func (f *finder) findCollinear() {
	pts := f.points
	for i := 0; i < len(pts); i++ {
		for j := i + 1; j < len(pts); j++ {
			for k := j + 1; k < len(pts); k++ {
				a, b, c := pts[i], pts[j], pts[k]
				objs := []term.TheoremObject{
					term.PointByObject(a), term.PointByObject(b), term.PointByObject(c),
				}
				if !f.involves(objs...) {
					continue
				}
				candidate := term.NewTheorem(term.CollinearPoints, objs...)
				if Holds(candidate, f.pics) {
					f.accept(candidate)
				}
			}
		}
	}
}

func (f *finder) findConcyclic() {
	pts := f.points
	for i := 0; i < len(pts); i++ {
		for j := i + 1; j < len(pts); j++ {
			for k := j + 1; k < len(pts); k++ {
				for l := k + 1; l < len(pts); l++ {
					a, b, c, d := pts[i], pts[j], pts[k], pts[l]
					objs := []term.TheoremObject{
						term.PointByObject(a), term.PointByObject(b),
						term.PointByObject(c), term.PointByObject(d),
					}
					if !f.involves(objs...) {
						continue
					}
					candidate := term.NewTheorem(term.ConcyclicPoints, objs...)
					if Holds(candidate, f.pics) {
						f.accept(candidate)
					}
				}
			}
		}
	}
}

func (f *finder) findLinePairs() {
	for i := 0; i < len(f.lines); i++ {
		for j := i + 1; j < len(f.lines); j++ {
			l1, l2 := f.lines[i], f.lines[j]
			if !f.involves(l1, l2) {
				continue
			}
			parallel := term.NewTheorem(term.ParallelLines, l1, l2)
			if Holds(parallel, f.pics) {
				f.accept(parallel)
				continue
			}
			perpendicular := term.NewTheorem(term.PerpendicularLines, l1, l2)
			if Holds(perpendicular, f.pics) {
				f.accept(perpendicular)
			}
		}
	}
}

func (f *finder) findConcurrent() {
	for i := 0; i < len(f.lines); i++ {
		for j := i + 1; j < len(f.lines); j++ {
			for k := j + 1; k < len(f.lines); k++ {
				l1, l2, l3 := f.lines[i], f.lines[j], f.lines[k]
				if !f.involves(l1, l2, l3) {
					continue
				}
				// Concurrency through a point that is itself an object
				// of the configuration is an incidence fact, not a
				// theorem; such pencils are dropped.
				knownPoint := false
				ok := f.holdsInAll(func(pic *picture.Picture) bool {
					a, ok1 := resolve(l1, pic)
					b, ok2 := resolve(l2, pic)
					c, ok3 := resolve(l3, pic)
					if !ok1 || !ok2 || !ok3 {
						return false
					}
					p, conc := analytic.Concurrent(a.(analytic.Line), b.(analytic.Line), c.(analytic.Line))
					if !conc {
						return false
					}
					if _, exists := pic.ObjectAt(p); exists {
						knownPoint = true
					}
					return true
				})
				if ok && !knownPoint {
					f.accept(term.NewTheorem(term.ConcurrentLines, l1, l2, l3))
				}
			}
		}
	}
}

func (f *finder) findCirclePairs() {
	for i := 0; i < len(f.circles); i++ {
		for j := i + 1; j < len(f.circles); j++ {
			c1, c2 := f.circles[i], f.circles[j]
			if !f.involves(c1, c2) {
				continue
			}
			candidate := term.NewTheorem(term.TangentCircles, c1, c2)
			if Holds(candidate, f.pics) {
				f.accept(candidate)
			}
		}
	}
}

func (f *finder) findLineCircleTangencies() {
	for _, l := range f.lines {
		for _, c := range f.circles {
			if !f.involves(l, c) {
				continue
			}
			candidate := term.NewTheorem(term.LineTangentToCircle, l, c)
			if Holds(candidate, f.pics) {
				f.accept(candidate)
			}
		}
	}
}

func (f *finder) findEqualAngles() {
	type anglePair struct{ l1, l2 term.TheoremObject }
	var angles []anglePair
	for i := 0; i < len(f.lines); i++ {
		for j := i + 1; j < len(f.lines); j++ {
			angles = append(angles, anglePair{f.lines[i], f.lines[j]})
		}
	}
	for i := 0; i < len(angles); i++ {
		for j := i + 1; j < len(angles); j++ {
			a1, a2 := angles[i], angles[j]
			o1 := term.AngleOf(a1.l1, a1.l2)
			o2 := term.AngleOf(a2.l1, a2.l2)
			if !f.involves(o1, o2) {
				continue
			}
			ok := f.holdsInAll(func(pic *picture.Picture) bool {
				u1, k1 := resolve(a1.l1, pic)
				u2, k2 := resolve(a1.l2, pic)
				if !k1 || !k2 {
					return false
				}
				// Degenerate angles between parallel lines say
				// nothing; ParallelLines covers them.
				return !analytic.Zero(analytic.AngleBetween(u1.(analytic.Line), u2.(analytic.Line)))
			})
			if !ok {
				continue
			}
			candidate := term.NewTheorem(term.EqualAngles, o1, o2)
			if Holds(candidate, f.pics) {
				f.accept(candidate)
			}
		}
	}
}

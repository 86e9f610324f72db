package finder

import (
	"github.com/AnonymousPurplePotato/geogen/pkg/analytic"
	"github.com/AnonymousPurplePotato/geogen/pkg/picture"
	"github.com/AnonymousPurplePotato/geogen/pkg/term"
)

// Holds verifies a theorem numerically in every picture. It is the
// plain predicate check: the finder's enumeration heuristics (known
// pencil points, degenerate angles) sit on top of it.
func Holds(t term.Theorem, pics []*picture.Picture) bool {
	for _, pic := range pics {
		if !holdsIn(t, pic) {
			return false
		}
	}
	return true
}

func holdsIn(t term.Theorem, pic *picture.Picture) bool {
	switch t.Type {
	case term.EqualLineSegments:
		a, ok1 := segmentPoints(t.Objects[0], pic)
		b, ok2 := segmentPoints(t.Objects[1], pic)
		return ok1 && ok2 && analytic.SegmentsEqual(a[0], a[1], b[0], b[1])

	case term.CollinearPoints:
		pts, ok := allPoints(t, pic)
		return ok && analytic.Collinear(pts[0], pts[1], pts[2])

	case term.ConcyclicPoints:
		pts, ok := allPoints(t, pic)
		return ok && analytic.Concyclic(pts[0], pts[1], pts[2], pts[3])

	case term.ConcurrentLines:
		lines, ok := allLines(t, pic)
		if !ok {
			return false
		}
		_, conc := analytic.Concurrent(lines[0], lines[1], lines[2])
		return conc

	case term.ParallelLines:
		lines, ok := allLines(t, pic)
		return ok && analytic.Parallel(lines[0], lines[1])

	case term.PerpendicularLines:
		lines, ok := allLines(t, pic)
		return ok && analytic.Perpendicular(lines[0], lines[1])

	case term.TangentCircles:
		a, ok1 := resolve(t.Objects[0], pic)
		b, ok2 := resolve(t.Objects[1], pic)
		return ok1 && ok2 && analytic.CirclesTangent(a.(analytic.Circle), b.(analytic.Circle))

	case term.LineTangentToCircle:
		var line analytic.Line
		var circle analytic.Circle
		for _, o := range t.Objects {
			v, ok := resolve(o, pic)
			if !ok {
				return false
			}
			switch v := v.(type) {
			case analytic.Line:
				line = v
			case analytic.Circle:
				circle = v
			}
		}
		return analytic.LineTangentToCircle(line, circle)

	case term.EqualAngles:
		a, ok1 := angleLines(t.Objects[0], pic)
		b, ok2 := angleLines(t.Objects[1], pic)
		return ok1 && ok2 && analytic.AnglesEqual(a[0], a[1], b[0], b[1])

	default:
		return false
	}
}

func segmentPoints(o term.TheoremObject, pic *picture.Picture) ([2]analytic.Point, bool) {
	var out [2]analytic.Point
	if o.Kind != term.Segment {
		return out, false
	}
	for i, p := range o.Points {
		v, ok := pic.Get(p)
		if !ok {
			return out, false
		}
		out[i] = v.(analytic.Point)
	}
	return out, true
}

func allPoints(t term.Theorem, pic *picture.Picture) ([]analytic.Point, bool) {
	out := make([]analytic.Point, len(t.Objects))
	for i, o := range t.Objects {
		v, ok := resolve(o, pic)
		if !ok {
			return nil, false
		}
		p, ok := v.(analytic.Point)
		if !ok {
			return nil, false
		}
		out[i] = p
	}
	return out, true
}

func allLines(t term.Theorem, pic *picture.Picture) ([]analytic.Line, bool) {
	out := make([]analytic.Line, len(t.Objects))
	for i, o := range t.Objects {
		v, ok := resolve(o, pic)
		if !ok {
			return nil, false
		}
		l, ok := v.(analytic.Line)
		if !ok {
			return nil, false
		}
		out[i] = l
	}
	return out, true
}

func angleLines(o term.TheoremObject, pic *picture.Picture) ([2]analytic.Line, bool) {
	var out [2]analytic.Line
	if o.Kind != term.Angle || len(o.Lines) != 2 {
		return out, false
	}
	for i, l := range o.Lines {
		v, ok := resolve(l, pic)
		if !ok {
			return out, false
		}
		out[i] = v.(analytic.Line)
	}
	return out, true
}

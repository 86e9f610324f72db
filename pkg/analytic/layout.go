package analytic

import (
	"fmt"
	"math"

	"github.com/AnonymousPurplePotato/geogen/pkg/rng"
)

// Layout draw parameters. Draws happen in a bounded box so rounding at
// Precision stays far below the feature sizes the rejection rules
// enforce.
const (
	drawSpan = 5.0 // coordinates drawn in [-drawSpan, drawSpan]

	minSeparation = 1.0 // minimum pairwise point distance
	minArea       = 1.0 // minimum absolute triangle area
	minOffLine    = 0.8 // minimum distance of an explicit point from its line

	maxDrawAttempts = 256
)

// ErrLayoutRejected reports that a layout generator could not produce a
// non-degenerate draw within its attempt budget. It wraps
// ErrAnalyticFailure so callers recover it the same way.
var ErrLayoutRejected = fmt.Errorf("layout draw rejected: %w", ErrAnalyticFailure)

func drawPoint(r *rng.RNG) Point {
	return NewPoint(r.Float64Range(-drawSpan, drawSpan), r.Float64Range(-drawSpan, drawSpan))
}

func triangleArea(a, b, c Point) float64 {
	return math.Abs((b.X-a.X)*(c.Y-a.Y)-(c.X-a.X)*(b.Y-a.Y)) / 2
}

// DrawLineSegment draws two distinct points.
func DrawLineSegment(r *rng.RNG) ([]Object, error) {
	for i := 0; i < maxDrawAttempts; i++ {
		a, b := drawPoint(r), drawPoint(r)
		if a.Distance(b) < minSeparation {
			continue
		}
		return []Object{a, b}, nil
	}
	return nil, ErrLayoutRejected
}

// DrawTriangle draws three points forming a non-degenerate triangle.
func DrawTriangle(r *rng.RNG) ([]Object, error) {
	for i := 0; i < maxDrawAttempts; i++ {
		a, b, c := drawPoint(r), drawPoint(r), drawPoint(r)
		if a.Distance(b) < minSeparation || a.Distance(c) < minSeparation || b.Distance(c) < minSeparation {
			continue
		}
		if triangleArea(a, b, c) < minArea {
			continue
		}
		return []Object{a, b, c}, nil
	}
	return nil, ErrLayoutRejected
}

// DrawRightTriangle draws a triangle with the right angle at the first
// vertex. The right angle is exact by construction, not by rejection.
func DrawRightTriangle(r *rng.RNG) ([]Object, error) {
	for i := 0; i < maxDrawAttempts; i++ {
		a := drawPoint(r)
		th := r.Float64Range(0, 2*math.Pi)
		leg1 := r.Float64Range(minSeparation*2, drawSpan)
		leg2 := r.Float64Range(minSeparation*2, drawSpan)
		b := NewPoint(a.X+leg1*math.Cos(th), a.Y+leg1*math.Sin(th))
		c := NewPoint(a.X-leg2*math.Sin(th), a.Y+leg2*math.Cos(th))
		if triangleArea(a, b, c) < minArea {
			continue
		}
		return []Object{a, b, c}, nil
	}
	return nil, ErrLayoutRejected
}

// DrawQuadrilateral draws four points forming a convex quadrilateral in
// vertex order, with no three vertices collinear.
func DrawQuadrilateral(r *rng.RNG) ([]Object, error) {
	for i := 0; i < maxDrawAttempts; i++ {
		pts := [4]Point{drawPoint(r), drawPoint(r), drawPoint(r), drawPoint(r)}
		if !convexInOrder(pts) {
			continue
		}
		ok := true
		for j := 0; j < 4 && ok; j++ {
			for k := j + 1; k < 4; k++ {
				if pts[j].Distance(pts[k]) < minSeparation {
					ok = false
					break
				}
			}
		}
		if !ok {
			continue
		}
		return []Object{pts[0], pts[1], pts[2], pts[3]}, nil
	}
	return nil, ErrLayoutRejected
}

// convexInOrder reports whether the four points in the given cyclic
// order form a strictly convex quadrilateral.
func convexInOrder(p [4]Point) bool {
	sign := 0
	for i := 0; i < 4; i++ {
		a, b, c := p[i], p[(i+1)%4], p[(i+2)%4]
		cross := (b.X-a.X)*(c.Y-b.Y) - (b.Y-a.Y)*(c.X-b.X)
		if math.Abs(cross) < minArea {
			return false
		}
		s := 1
		if cross < 0 {
			s = -1
		}
		if sign == 0 {
			sign = s
		} else if s != sign {
			return false
		}
	}
	return true
}

// DrawExplicitLineAndPoint draws a line and a point clearly off it.
func DrawExplicitLineAndPoint(r *rng.RNG) ([]Object, error) {
	for i := 0; i < maxDrawAttempts; i++ {
		a, b := drawPoint(r), drawPoint(r)
		if a.Distance(b) < minSeparation {
			continue
		}
		l, err := LineFromPoints(a, b)
		if err != nil {
			continue
		}
		p := drawPoint(r)
		if math.Abs(l.Eval(p)) < minOffLine {
			continue
		}
		return []Object{l, p}, nil
	}
	return nil, ErrLayoutRejected
}

// DrawExplicitLineAndTwoPoints draws a line and two distinct points,
// both clearly off the line.
func DrawExplicitLineAndTwoPoints(r *rng.RNG) ([]Object, error) {
	for i := 0; i < maxDrawAttempts; i++ {
		a, b := drawPoint(r), drawPoint(r)
		if a.Distance(b) < minSeparation {
			continue
		}
		l, err := LineFromPoints(a, b)
		if err != nil {
			continue
		}
		p, q := drawPoint(r), drawPoint(r)
		if math.Abs(l.Eval(p)) < minOffLine || math.Abs(l.Eval(q)) < minOffLine {
			continue
		}
		if p.Distance(q) < minSeparation {
			continue
		}
		return []Object{l, p, q}, nil
	}
	return nil, ErrLayoutRejected
}

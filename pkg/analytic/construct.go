package analytic

import (
	"fmt"
)

// LineFromPoints returns the line through p and q.
// Fails when the points coincide.
func LineFromPoints(p, q Point) (Line, error) {
	if p.Equal(q) {
		return Line{}, fmt.Errorf("line through coincident points %s: %w", p.Key(), ErrAnalyticFailure)
	}
	// Direction (dx, dy); normal (dy, -dx).
	dx, dy := q.X-p.X, q.Y-p.Y
	return NewLine(dy, -dx, dx*p.Y-dy*p.X)
}

// Midpoint returns the midpoint of segment pq.
func Midpoint(p, q Point) Point {
	return NewPoint((p.X+q.X)/2, (p.Y+q.Y)/2)
}

// Circumcircle returns the circle through a, b and c.
// Fails when the points are collinear or not distinct.
func Circumcircle(a, b, c Point) (Circle, error) {
	d := 2 * (a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y))
	if Zero(d) {
		return Circle{}, fmt.Errorf("circumcircle of collinear points: %w", ErrAnalyticFailure)
	}
	a2 := a.X*a.X + a.Y*a.Y
	b2 := b.X*b.X + b.Y*b.Y
	c2 := c.X*c.X + c.Y*c.Y
	ux := (a2*(b.Y-c.Y) + b2*(c.Y-a.Y) + c2*(a.Y-b.Y)) / d
	uy := (a2*(c.X-b.X) + b2*(a.X-c.X) + c2*(b.X-a.X)) / d
	center := NewPoint(ux, uy)
	return NewCircle(center, center.Distance(a))
}

// CircleThrough returns the circle centered at c passing through p.
// Fails when c and p coincide.
func CircleThrough(c, p Point) (Circle, error) {
	if c.Equal(p) {
		return Circle{}, fmt.Errorf("circle through its own center: %w", ErrAnalyticFailure)
	}
	return NewCircle(c, c.Distance(p))
}

// PerpendicularThrough returns the line through p perpendicular to l.
func PerpendicularThrough(l Line, p Point) (Line, error) {
	// Normal of the perpendicular is the direction of l: (-B, A).
	return NewLine(-l.B, l.A, l.B*p.X-l.A*p.Y)
}

// ParallelThrough returns the line through p parallel to l.
func ParallelThrough(l Line, p Point) (Line, error) {
	return NewLine(l.A, l.B, -(l.A*p.X + l.B*p.Y))
}

// PerpendicularBisector returns the perpendicular bisector of segment pq.
// Fails when the points coincide.
func PerpendicularBisector(p, q Point) (Line, error) {
	if p.Equal(q) {
		return Line{}, fmt.Errorf("perpendicular bisector of coincident points: %w", ErrAnalyticFailure)
	}
	seg, err := LineFromPoints(p, q)
	if err != nil {
		return Line{}, err
	}
	return PerpendicularThrough(seg, Midpoint(p, q))
}

// Project returns the orthogonal projection of p onto l.
func Project(p Point, l Line) Point {
	// l is normalized, so Eval is the signed distance.
	d := l.Eval(p)
	return NewPoint(p.X-d*l.A, p.Y-d*l.B)
}

// InternalAngleBisector returns the internal bisector of the angle at
// vertex a in the triangle a, b, c (the angle ∠bac). Fails when the
// rays ab and ac are collinear, i.e. when the angle degenerates.
func InternalAngleBisector(a, b, c Point) (Line, error) {
	if a.Equal(b) || a.Equal(c) {
		return Line{}, fmt.Errorf("angle bisector with coincident vertex: %w", ErrAnalyticFailure)
	}
	db := a.Distance(b)
	dc := a.Distance(c)
	ub := Point{X: (b.X - a.X) / db, Y: (b.Y - a.Y) / db}
	uc := Point{X: (c.X - a.X) / dc, Y: (c.Y - a.Y) / dc}
	if Zero(ub.X*uc.Y - ub.Y*uc.X) {
		// The rays point in the same or in opposite directions.
		return Line{}, fmt.Errorf("angle bisector of collinear rays: %w", ErrAnalyticFailure)
	}
	dir := Point{X: ub.X + uc.X, Y: ub.Y + uc.Y}
	return LineFromPoints(a, NewPoint(a.X+dir.X, a.Y+dir.Y))
}

// ShiftSegment moves both endpoints of segment pq outward by d along
// the segment direction, returning the widened endpoints. Drawer
// support: labels placed past the endpoints need the extended segment.
func ShiftSegment(p, q Point, d float64) (Point, Point, error) {
	if p.Equal(q) {
		return Point{}, Point{}, fmt.Errorf("shift of a degenerate segment: %w", ErrAnalyticFailure)
	}
	length := p.Distance(q)
	ux, uy := (q.X-p.X)/length, (q.Y-p.Y)/length
	return NewPoint(p.X-d*ux, p.Y-d*uy), NewPoint(q.X+d*ux, q.Y+d*uy), nil
}

package analytic

import (
	"math"
	"sort"
)

// IntersectLines returns the intersection point of two lines.
// The second result is false when the lines are parallel (including
// the case of equal lines, which have no single intersection).
func IntersectLines(l, m Line) (Point, bool) {
	det := l.A*m.B - m.A*l.B
	if Zero(det) {
		return Point{}, false
	}
	x := (l.B*m.C - m.B*l.C) / det
	y := (m.A*l.C - l.A*m.C) / det
	return NewPoint(x, y), true
}

// IntersectLineCircle returns the 0, 1 or 2 intersection points of a
// line and a circle, ordered by rounded (x, y).
func IntersectLineCircle(l Line, c Circle) []Point {
	// Signed distance from center to line; l is normalized.
	d := l.Eval(c.Center)
	disc := c.R*c.R - d*d
	foot := Point{X: c.Center.X - d*l.A, Y: c.Center.Y - d*l.B}
	switch {
	case check(disc) < 0:
		return nil
	case check(disc) == 0:
		return []Point{NewPoint(foot.X, foot.Y)}
	default:
		h := math.Sqrt(disc)
		// Direction of the line is (-B, A).
		p1 := NewPoint(foot.X-h*l.B, foot.Y+h*l.A)
		p2 := NewPoint(foot.X+h*l.B, foot.Y-h*l.A)
		return orderPair(p1, p2)
	}
}

// IntersectCircles returns the 0, 1 or 2 intersection points of two
// circles, ordered by rounded (x, y). Equal circles intersect nowhere
// for the purposes of construction (the solution set is not finite).
func IntersectCircles(c, d Circle) []Point {
	if c.Equal(d) {
		return nil
	}
	dx, dy := d.Center.X-c.Center.X, d.Center.Y-c.Center.Y
	dist := math.Hypot(dx, dy)
	if Zero(dist) {
		// Concentric with different radii.
		return nil
	}
	// Radical line distance from c's center.
	a := (dist*dist + c.R*c.R - d.R*d.R) / (2 * dist)
	disc := c.R*c.R - a*a
	if check(disc) < 0 {
		return nil
	}
	ux, uy := dx/dist, dy/dist
	mx, my := c.Center.X+a*ux, c.Center.Y+a*uy
	if check(disc) == 0 {
		return []Point{NewPoint(mx, my)}
	}
	h := math.Sqrt(disc)
	p1 := NewPoint(mx-h*uy, my+h*ux)
	p2 := NewPoint(mx+h*uy, my-h*ux)
	return orderPair(p1, p2)
}

// orderPair returns the two points sorted by (x, y) so multi-solution
// intersections index deterministically across pictures of the same
// draw.
func orderPair(p, q Point) []Point {
	pts := []Point{p, q}
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})
	return pts
}

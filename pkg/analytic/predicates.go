package analytic

import "math"

// LiesOnLine reports whether p lies on l, up to rounding.
func LiesOnLine(p Point, l Line) bool {
	return Zero(l.Eval(p))
}

// LiesOnCircle reports whether p lies on c, up to rounding.
func LiesOnCircle(p Point, c Circle) bool {
	return eq(c.Center.Distance(p), c.R)
}

// Parallel reports whether two distinct lines are parallel.
func Parallel(l, m Line) bool {
	if l.Equal(m) {
		return false
	}
	return Zero(l.A*m.B - m.A*l.B)
}

// Perpendicular reports whether two lines are perpendicular.
func Perpendicular(l, m Line) bool {
	return Zero(l.A*m.A + l.B*m.B)
}

// Collinear reports whether three distinct points lie on one line.
func Collinear(a, b, c Point) bool {
	if a.Equal(b) || a.Equal(c) || b.Equal(c) {
		return false
	}
	area := (b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y)
	return Zero(area)
}

// Concyclic reports whether four distinct points lie on one circle.
// Collinear quadruples are not concyclic.
func Concyclic(a, b, c, d Point) bool {
	circ, err := Circumcircle(a, b, c)
	if err != nil {
		return false
	}
	if a.Equal(d) || b.Equal(d) || c.Equal(d) {
		return false
	}
	return LiesOnCircle(d, circ)
}

// Concurrent reports whether three pairwise distinct, pairwise
// non-parallel lines pass through a single point, and returns that
// point when they do.
func Concurrent(l, m, n Line) (Point, bool) {
	if l.Equal(m) || l.Equal(n) || m.Equal(n) {
		return Point{}, false
	}
	p, ok := IntersectLines(l, m)
	if !ok {
		return Point{}, false
	}
	if !LiesOnLine(p, n) {
		return Point{}, false
	}
	return p, true
}

// SegmentsEqual reports whether segments ab and cd have equal length.
func SegmentsEqual(a, b, c, d Point) bool {
	return eq(a.Distance(b), c.Distance(d))
}

// AngleBetween returns the undirected angle between two lines, folded
// into [0, pi/2].
func AngleBetween(l, m Line) float64 {
	th := math.Abs(l.angle() - m.angle())
	if th > math.Pi/2 {
		th = math.Pi - th
	}
	return th
}

// AnglesEqual reports whether the angle between (l1, l2) equals the
// angle between (m1, m2), up to rounding.
func AnglesEqual(l1, l2, m1, m2 Line) bool {
	return eq(AngleBetween(l1, l2), AngleBetween(m1, m2))
}

// CirclesTangent reports whether two distinct circles are tangent
// (internally or externally).
func CirclesTangent(c, d Circle) bool {
	if c.Equal(d) {
		return false
	}
	dist := c.Center.Distance(d.Center)
	return eq(dist, c.R+d.R) || eq(dist, math.Abs(c.R-d.R))
}

// LineTangentToCircle reports whether l touches c in exactly one point.
func LineTangentToCircle(l Line, c Circle) bool {
	return eq(math.Abs(l.Eval(c.Center)), c.R)
}

package analytic

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// Rounding precisions. Coordinates are stored rounded to Precision
// decimal places; predicate checks compare derived quantities (cross
// products, distances, discriminants) at the coarser CheckPrecision,
// since those accumulate the storage rounding error.
const (
	Precision      = 9
	CheckPrecision = 6
)

// ErrAnalyticFailure reports a degenerate input to a geometric
// constructor, e.g. a line through two coincident points. It is
// distinct from an intersection having no solutions.
var ErrAnalyticFailure = errors.New("analytic: degenerate configuration")

// Round rounds x to the storage precision.
func Round(x float64) float64 {
	return scalar.Round(x, Precision)
}

func check(x float64) float64 {
	return scalar.Round(x, CheckPrecision)
}

// eq reports whether a and b agree after rounding at the check
// precision.
func eq(a, b float64) bool {
	return check(a) == check(b)
}

// Zero reports whether x rounds to zero at the check precision.
func Zero(x float64) bool {
	return check(x) == 0
}

// Kind discriminates the analytic object types.
type Kind int

const (
	KindPoint Kind = iota
	KindLine
	KindCircle
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindLine:
		return "line"
	case KindCircle:
		return "circle"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Object is the sum of the three analytic types. Point, Line and
// Circle are small value types; the interface exists so pictures can
// map configuration objects to analytic instances uniformly.
type Object interface {
	Kind() Kind
	// Key is the rounded string form used for duplicate detection
	// within one picture.
	Key() string
}

// Point is a point in the plane. Coordinates are rounded on creation.
type Point struct {
	X, Y float64
}

// NewPoint creates a point with rounded coordinates.
func NewPoint(x, y float64) Point {
	return Point{X: Round(x), Y: Round(y)}
}

// Kind implements Object.
func (Point) Kind() Kind { return KindPoint }

// Key implements Object.
func (p Point) Key() string {
	return fmt.Sprintf("P(%.*f,%.*f)", CheckPrecision, p.X, CheckPrecision, p.Y)
}

// Equal reports rounded coordinate equality.
func (p Point) Equal(q Point) bool {
	return eq(p.X, q.X) && eq(p.Y, q.Y)
}

// Distance returns the Euclidean distance to q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Line is a line A*x + B*y + C = 0 with (A, B) a unit vector and a
// canonical sign (first nonzero of A, B is positive), so equal lines
// have equal fields after rounding.
type Line struct {
	A, B, C float64
}

// NewLine creates a normalized line from the coefficients of
// a*x + b*y + c = 0. Fails when a and b are both (numerically) zero.
func NewLine(a, b, c float64) (Line, error) {
	norm := math.Hypot(a, b)
	if Zero(norm) {
		return Line{}, fmt.Errorf("line %v*x + %v*y + %v = 0: %w", a, b, c, ErrAnalyticFailure)
	}
	a, b, c = a/norm, b/norm, c/norm
	// Canonical orientation: the first nonzero of (A, B) is positive.
	if check(a) < 0 || (check(a) == 0 && check(b) < 0) {
		a, b, c = -a, -b, -c
	}
	return Line{A: Round(a), B: Round(b), C: Round(c)}, nil
}

// Kind implements Object.
func (Line) Kind() Kind { return KindLine }

// Key implements Object.
func (l Line) Key() string {
	return fmt.Sprintf("L(%.*f,%.*f,%.*f)", CheckPrecision, l.A, CheckPrecision, l.B, CheckPrecision, l.C)
}

// Equal reports rounded coefficient equality of the normalized forms.
func (l Line) Equal(m Line) bool {
	return eq(l.A, m.A) && eq(l.B, m.B) && eq(l.C, m.C)
}

// Eval returns the signed value A*x + B*y + C; zero (after rounding)
// iff the point lies on the line.
func (l Line) Eval(p Point) float64 {
	return l.A*p.X + l.B*p.Y + l.C
}

// angle returns the direction angle of the line folded into [0, pi).
func (l Line) angle() float64 {
	// Direction vector of the line is (-B, A).
	th := math.Atan2(l.A, -l.B)
	if th < 0 {
		th += math.Pi
	}
	if th >= math.Pi {
		th -= math.Pi
	}
	return th
}

// Circle is a circle given by center and radius, rounded on creation.
type Circle struct {
	Center Point
	R      float64
}

// NewCircle creates a circle. Fails on a non-positive radius.
func NewCircle(center Point, r float64) (Circle, error) {
	if check(r) <= 0 {
		return Circle{}, fmt.Errorf("circle with radius %v: %w", r, ErrAnalyticFailure)
	}
	return Circle{Center: center, R: Round(r)}, nil
}

// Kind implements Object.
func (Circle) Kind() Kind { return KindCircle }

// Key implements Object.
func (c Circle) Key() string {
	return fmt.Sprintf("C(%.*f,%.*f,%.*f)", CheckPrecision, c.Center.X, CheckPrecision, c.Center.Y, CheckPrecision, c.R)
}

// Equal reports rounded equality of center and radius.
func (c Circle) Equal(d Circle) bool {
	return c.Center.Equal(d.Center) && eq(c.R, d.R)
}

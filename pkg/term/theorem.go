package term

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// TheoremType enumerates the theorem statements the finder verifies.
type TheoremType int

const (
	EqualLineSegments TheoremType = iota
	CollinearPoints
	ConcurrentLines
	ConcyclicPoints
	ParallelLines
	PerpendicularLines
	TangentCircles
	LineTangentToCircle
	EqualAngles
)

var theoremTypeNames = map[TheoremType]string{
	EqualLineSegments:   "EqualLineSegments",
	CollinearPoints:     "CollinearPoints",
	ConcurrentLines:     "ConcurrentLines",
	ConcyclicPoints:     "ConcyclicPoints",
	ParallelLines:       "ParallelLines",
	PerpendicularLines:  "PerpendicularLines",
	TangentCircles:      "TangentCircles",
	LineTangentToCircle: "LineTangentToCircle",
	EqualAngles:         "EqualAngles",
}

// String returns the theorem type name.
func (t TheoremType) String() string {
	if n, ok := theoremTypeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("TheoremType(%d)", int(t))
}

// ParseTheoremType resolves a theorem type name.
func ParseTheoremType(name string) (TheoremType, bool) {
	for t, n := range theoremTypeNames {
		if n == name {
			return t, true
		}
	}
	return 0, false
}

// Transitive reports whether the theorem type carries
// equivalence-relation semantics, enabling the transitivity filter.
// ConcyclicPoints qualifies through equality of the circumscribing
// circle.
func (t TheoremType) Transitive() bool {
	switch t {
	case ParallelLines, PerpendicularLines, EqualLineSegments, EqualAngles, ConcyclicPoints:
		return true
	default:
		return false
	}
}

// TheoremObjectKind discriminates the entities a theorem talks about.
type TheoremObjectKind int

const (
	PointObject TheoremObjectKind = iota
	LineObject
	CircleObject
	Segment
	Angle
)

// TheoremObject is one entity inside a theorem statement. Points are
// always given by object; lines and circles are given either by object
// or by their defining points; a segment is two points; an angle is
// two lines (each itself a line-kind theorem object).
type TheoremObject struct {
	Kind   TheoremObjectKind
	Obj    *Object         // point/line/circle by object
	Points []*Object       // line by 2 points, circle by 3 points, segment endpoints
	Lines  []TheoremObject // angle: exactly two line-kind objects
}

// PointByObject wraps a point object.
func PointByObject(o *Object) TheoremObject {
	return TheoremObject{Kind: PointObject, Obj: o}
}

// LineByObject wraps a line object.
func LineByObject(o *Object) TheoremObject {
	return TheoremObject{Kind: LineObject, Obj: o}
}

// LineByPoints denotes the line through two points.
func LineByPoints(p, q *Object) TheoremObject {
	return TheoremObject{Kind: LineObject, Points: sortByID(p, q)}
}

// CircleByObject wraps a circle object.
func CircleByObject(o *Object) TheoremObject {
	return TheoremObject{Kind: CircleObject, Obj: o}
}

// CircleByPoints denotes the circle through three points.
func CircleByPoints(p, q, r *Object) TheoremObject {
	return TheoremObject{Kind: CircleObject, Points: sortByID(p, q, r)}
}

// SegmentOf denotes the segment between two points.
func SegmentOf(p, q *Object) TheoremObject {
	return TheoremObject{Kind: Segment, Points: sortByID(p, q)}
}

// AngleOf denotes the angle between two lines.
func AngleOf(l, m TheoremObject) TheoremObject {
	lines := []TheoremObject{l, m}
	sort.Slice(lines, func(i, j int) bool { return lines[i].key() < lines[j].key() })
	return TheoremObject{Kind: Angle, Lines: lines}
}

func sortByID(objs ...*Object) []*Object {
	out := append([]*Object{}, objs...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// key is the normalized string form used for structural equality.
func (o TheoremObject) key() string {
	switch o.Kind {
	case PointObject:
		return "pt[" + strconv.Itoa(o.Obj.ID) + "]"
	case LineObject:
		if o.Obj != nil {
			return "ln[" + strconv.Itoa(o.Obj.ID) + "]"
		}
		return "ln(" + idList(o.Points) + ")"
	case CircleObject:
		if o.Obj != nil {
			return "cr[" + strconv.Itoa(o.Obj.ID) + "]"
		}
		return "cr(" + idList(o.Points) + ")"
	case Segment:
		return "sg(" + idList(o.Points) + ")"
	case Angle:
		return "an(" + o.Lines[0].key() + ";" + o.Lines[1].key() + ")"
	default:
		return "?"
	}
}

func idList(objs []*Object) string {
	parts := make([]string, len(objs))
	for i, o := range objs {
		parts[i] = strconv.Itoa(o.ID)
	}
	return strings.Join(parts, ",")
}

// MentionedObjects returns every configuration object the theorem
// object refers to.
func (o TheoremObject) MentionedObjects() []*Object {
	var out []*Object
	if o.Obj != nil {
		out = append(out, o.Obj)
	}
	out = append(out, o.Points...)
	for _, l := range o.Lines {
		out = append(out, l.MentionedObjects()...)
	}
	return out
}

// Theorem is a statement of a theorem type over an unordered set of
// theorem objects. Construction normalizes the component order, so two
// structurally equivalent theorems have equal keys.
type Theorem struct {
	Type    TheoremType
	Objects []TheoremObject
}

// NewTheorem builds a normalized theorem.
func NewTheorem(t TheoremType, objs ...TheoremObject) Theorem {
	sorted := append([]TheoremObject{}, objs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].key() < sorted[j].key() })
	return Theorem{Type: t, Objects: sorted}
}

// Key returns the normalized string form; equal keys mean structurally
// equivalent theorems.
func (t Theorem) Key() string {
	parts := make([]string, len(t.Objects))
	for i, o := range t.Objects {
		parts[i] = o.key()
	}
	return t.Type.String() + "(" + strings.Join(parts, ";") + ")"
}

// MentionedObjects returns every configuration object the theorem
// refers to, deduplicated, in first-mention order.
func (t Theorem) MentionedObjects() []*Object {
	seen := make(map[int]bool)
	var out []*Object
	for _, to := range t.Objects {
		for _, o := range to.MentionedObjects() {
			if !seen[o.ID] {
				seen[o.ID] = true
				out = append(out, o)
			}
		}
	}
	return out
}

// Involves reports whether the theorem mentions the object with the
// given identifier.
func (t Theorem) Involves(id int) bool {
	for _, o := range t.MentionedObjects() {
		if o.ID == id {
			return true
		}
	}
	return false
}

// Format renders the theorem for a report, naming objects through the
// configuration's display names: segments as A-B, lines and circles by
// name or by their defining points in brackets, angles in angle
// brackets.
func (t Theorem) Format(c *Configuration) string {
	parts := make([]string, len(t.Objects))
	for i, o := range t.Objects {
		parts[i] = o.format(c)
	}
	return t.Type.String() + "(" + strings.Join(parts, ", ") + ")"
}

func (o TheoremObject) format(c *Configuration) string {
	switch o.Kind {
	case PointObject:
		return c.NameOf(o.Obj)
	case LineObject, CircleObject:
		if o.Obj != nil {
			return c.NameOf(o.Obj)
		}
		names := make([]string, len(o.Points))
		for i, p := range o.Points {
			names[i] = c.NameOf(p)
		}
		return "[" + strings.Join(names, ", ") + "]"
	case Segment:
		return c.NameOf(o.Points[0]) + "-" + c.NameOf(o.Points[1])
	case Angle:
		return "<" + o.Lines[0].format(c) + ", " + o.Lines[1].format(c) + ">"
	default:
		return "?"
	}
}

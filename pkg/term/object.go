package term

import "fmt"

// ObjectType is the geometric type of a configuration object.
type ObjectType int

const (
	Point ObjectType = iota
	Line
	Circle
)

// String returns the type name.
func (t ObjectType) String() string {
	switch t {
	case Point:
		return "Point"
	case Line:
		return "Line"
	case Circle:
		return "Circle"
	default:
		return fmt.Sprintf("ObjectType(%d)", int(t))
	}
}

// Object is a node in the configuration DAG. A loose object has a nil
// Construction; a constructed object carries its construction, its
// argument tuple and, for multi-output constructions, the index of the
// output it denotes (zero by default).
//
// Objects are immutable once built and are compared by ID, never by
// pointer identity.
type Object struct {
	ID           int
	Type         ObjectType
	Construction Construction
	Args         ArgList
	Index        int
}

// NewLoose creates a free object of the given type.
func NewLoose(id int, t ObjectType) *Object {
	return &Object{ID: id, Type: t}
}

// NewConstructed creates an object produced by applying c to args.
// The object's type is the construction's output type.
func NewConstructed(id int, c Construction, args ArgList, index int) *Object {
	return &Object{
		ID:           id,
		Type:         c.OutputType(),
		Construction: c,
		Args:         args,
		Index:        index,
	}
}

// Loose reports whether the object is a free primitive.
func (o *Object) Loose() bool {
	return o.Construction == nil
}

// InternalObjects returns the transitive closure of o over its argument
// subtrees, deduplicated by identifier, in first-visit (pre-order)
// order. o itself is included first.
func (o *Object) InternalObjects() []*Object {
	seen := make(map[int]bool)
	var out []*Object
	var visit func(obj *Object)
	visit = func(obj *Object) {
		if seen[obj.ID] {
			return
		}
		seen[obj.ID] = true
		out = append(out, obj)
		for _, inner := range obj.Args.Objects() {
			visit(inner)
		}
	}
	visit(o)
	return out
}

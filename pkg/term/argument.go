package term

import (
	"errors"
	"fmt"
	"sort"
)

// ErrSignatureMismatch reports that a flat object list cannot be folded
// into a construction signature.
var ErrSignatureMismatch = errors.New("term: arguments do not match construction signature")

// Parameter is the recursive signature element of a construction:
// either a typed object slot or an unordered set of n inner parameters.
type Parameter interface {
	isParameter()
	// FlatCount is the number of objects an argument for this
	// parameter consumes.
	FlatCount() int
}

// ObjectParam is a slot for a single object of a fixed type.
type ObjectParam struct {
	Type ObjectType
}

func (ObjectParam) isParameter()   {}
func (ObjectParam) FlatCount() int { return 1 }

// SetParam is an unordered multiset of Count arguments, each matching
// Inner. Nesting is allowed.
type SetParam struct {
	Inner Parameter
	Count int
}

func (SetParam) isParameter() {}

// FlatCount implements Parameter.
func (p SetParam) FlatCount() int { return p.Count * p.Inner.FlatCount() }

// Argument instantiates a parameter: a single object or an unordered
// set of inner arguments.
type Argument interface {
	isArgument()
	// Objects returns the objects mentioned by this argument subtree.
	Objects() []*Object
}

// ObjectArg is a single-object argument.
type ObjectArg struct {
	Obj *Object
}

func (ObjectArg) isArgument() {}

// Objects implements Argument.
func (a ObjectArg) Objects() []*Object { return []*Object{a.Obj} }

// SetArg is an unordered, duplicate-free set of inner arguments. Items
// are held sorted by canonical string so equal sets compare equal.
type SetArg struct {
	Items []Argument
}

func (SetArg) isArgument() {}

// Objects implements Argument.
func (a SetArg) Objects() []*Object {
	var out []*Object
	for _, item := range a.Items {
		out = append(out, item.Objects()...)
	}
	return out
}

// NewSetArg builds a set argument, rejecting duplicate items and
// storing them in canonical order.
func NewSetArg(items []Argument) (SetArg, error) {
	keys := make([]string, len(items))
	seen := make(map[string]bool, len(items))
	for i, item := range items {
		keys[i] = argumentString(item, nil, nil)
		if seen[keys[i]] {
			return SetArg{}, fmt.Errorf("duplicate set element %s: %w", keys[i], ErrSignatureMismatch)
		}
		seen[keys[i]] = true
	}
	sorted := make([]Argument, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool {
		return argumentString(sorted[i], nil, nil) < argumentString(sorted[j], nil, nil)
	})
	return SetArg{Items: sorted}, nil
}

// ArgList is the ordered argument tuple of a constructed object.
type ArgList []Argument

// Objects returns all objects mentioned by the tuple, in order, with
// duplicates preserved.
func (l ArgList) Objects() []*Object {
	var out []*Object
	for _, a := range l {
		out = append(out, a.Objects()...)
	}
	return out
}

// Match folds a flat object list into the tree shape a signature
// demands, canonicalising set arguments. It fails with
// ErrSignatureMismatch when the count or any type does not fit, or
// when a set would contain duplicates.
func Match(sig []Parameter, flat []*Object) (ArgList, error) {
	need := 0
	for _, p := range sig {
		need += p.FlatCount()
	}
	if need != len(flat) {
		return nil, fmt.Errorf("need %d objects, got %d: %w", need, len(flat), ErrSignatureMismatch)
	}
	args := make(ArgList, 0, len(sig))
	rest := flat
	for _, p := range sig {
		a, remaining, err := matchOne(p, rest)
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		rest = remaining
	}
	return args, nil
}

func matchOne(p Parameter, flat []*Object) (Argument, []*Object, error) {
	switch p := p.(type) {
	case ObjectParam:
		obj := flat[0]
		if obj.Type != p.Type {
			return nil, nil, fmt.Errorf("object %d is a %s, parameter wants %s: %w",
				obj.ID, obj.Type, p.Type, ErrSignatureMismatch)
		}
		return ObjectArg{Obj: obj}, flat[1:], nil
	case SetParam:
		items := make([]Argument, 0, p.Count)
		rest := flat
		for i := 0; i < p.Count; i++ {
			item, remaining, err := matchOne(p.Inner, rest)
			if err != nil {
				return nil, nil, err
			}
			items = append(items, item)
			rest = remaining
		}
		set, err := NewSetArg(items)
		if err != nil {
			return nil, nil, err
		}
		return set, rest, nil
	default:
		return nil, nil, fmt.Errorf("unknown parameter %T: %w", p, ErrSignatureMismatch)
	}
}

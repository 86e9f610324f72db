package gen

import (
	"github.com/AnonymousPurplePotato/geogen/pkg/term"
)

// ArgumentStream lazily yields the distinct argument tuples of a
// construction over a configuration: tuples that match the signature
// and are not already represented in the configuration's forbidden
// index for that construction. Set arguments canonicalize, so ordered
// variations that fold to the same set appear once.
type ArgumentStream struct {
	sig       []term.Parameter
	slotTypes []term.ObjectType

	// pools[t] holds the ordered variations drawn for type t;
	// cursor is an odometer over the per-type variation lists.
	types  []term.ObjectType
	pools  map[term.ObjectType][][]*term.Object
	cursor map[term.ObjectType]int

	exhausted bool
	seen      map[string]bool
	forbidden map[string]bool
}

// Arguments opens the stream of new argument tuples for c over cfg.
func Arguments(cfg *term.Configuration, c term.Construction) *ArgumentStream {
	sig := c.Signature()
	slotTypes := flattenTypes(sig)

	need := make(map[term.ObjectType]int)
	for _, t := range slotTypes {
		need[t]++
	}

	s := &ArgumentStream{
		sig:       sig,
		slotTypes: slotTypes,
		pools:     make(map[term.ObjectType][][]*term.Object),
		cursor:    make(map[term.ObjectType]int),
		seen:      make(map[string]bool),
		forbidden: cfg.ForbiddenArguments(c.Name()),
	}

	// Fixed type order keeps enumeration deterministic.
	for _, t := range []term.ObjectType{term.Point, term.Line, term.Circle} {
		k, ok := need[t]
		if !ok {
			continue
		}
		objs := cfg.ObjectsOfType(t)
		if len(objs) < k {
			s.exhausted = true
			return s
		}
		s.types = append(s.types, t)
		s.pools[t] = variations(objs, k)
		s.cursor[t] = 0
	}
	return s
}

// Next returns the next distinct argument tuple, or false when the
// stream is exhausted.
func (s *ArgumentStream) Next() (term.ArgList, bool) {
	for !s.exhausted {
		flat := s.assemble()
		s.advance()

		args, err := term.Match(s.sig, flat)
		if err != nil {
			continue
		}
		key := term.ArgumentsKey(args)
		if s.seen[key] || s.forbidden[key] {
			continue
		}
		s.seen[key] = true
		return args, true
	}
	return nil, false
}

// assemble fills the flat slot list from the current per-type
// variations, consuming each type's variation in slot order.
func (s *ArgumentStream) assemble() []*term.Object {
	taken := make(map[term.ObjectType]int)
	flat := make([]*term.Object, len(s.slotTypes))
	for i, t := range s.slotTypes {
		variation := s.pools[t][s.cursor[t]]
		flat[i] = variation[taken[t]]
		taken[t]++
	}
	return flat
}

// advance steps the odometer over the per-type variation lists.
func (s *ArgumentStream) advance() {
	for i := len(s.types) - 1; i >= 0; i-- {
		t := s.types[i]
		s.cursor[t]++
		if s.cursor[t] < len(s.pools[t]) {
			return
		}
		s.cursor[t] = 0
	}
	s.exhausted = true
}

// flattenTypes lists the object types of the signature's flat slots in
// signature order.
func flattenTypes(sig []term.Parameter) []term.ObjectType {
	var out []term.ObjectType
	var walk func(p term.Parameter)
	walk = func(p term.Parameter) {
		switch p := p.(type) {
		case term.ObjectParam:
			out = append(out, p.Type)
		case term.SetParam:
			for i := 0; i < p.Count; i++ {
				walk(p.Inner)
			}
		}
	}
	for _, p := range sig {
		walk(p)
	}
	return out
}

// variations enumerates all ordered k-selections without repetition
// from objs, in lexicographic index order.
func variations(objs []*term.Object, k int) [][]*term.Object {
	var out [][]*term.Object
	used := make([]bool, len(objs))
	current := make([]*term.Object, 0, k)
	var rec func()
	rec = func() {
		if len(current) == k {
			out = append(out, append([]*term.Object{}, current...))
			return
		}
		for i, o := range objs {
			if used[i] {
				continue
			}
			used[i] = true
			current = append(current, o)
			rec()
			current = current[:len(current)-1]
			used[i] = false
		}
	}
	rec()
	return out
}

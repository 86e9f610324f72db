package term

import (
	"sort"
	"strconv"
	"strings"
)

// Remap is a permutation of loose-object identifiers. Identifiers
// absent from the map stay fixed. A nil Remap is the identity.
type Remap map[int]int

func (r Remap) apply(id int) int {
	if r == nil {
		return id
	}
	if mapped, ok := r[id]; ok {
		return mapped
	}
	return id
}

// objectString encodes an object under a remapping:
//
//	loose object       -> its remapped identifier
//	constructed object -> name "(" args ")" and, when the output index
//	                      is non-zero, "[" index "]"
//
// memo caches results by object identifier; it may be nil.
func objectString(o *Object, remap Remap, memo map[int]string) string {
	if memo != nil {
		if s, ok := memo[o.ID]; ok {
			return s
		}
	}
	var s string
	if o.Loose() {
		s = strconv.Itoa(remap.apply(o.ID))
	} else {
		var sb strings.Builder
		sb.WriteString(o.Construction.Name())
		sb.WriteString(argListString(o.Args, remap, memo))
		if o.Index != 0 {
			sb.WriteString("[")
			sb.WriteString(strconv.Itoa(o.Index))
			sb.WriteString("]")
		}
		s = sb.String()
	}
	if memo != nil {
		memo[o.ID] = s
	}
	return s
}

// argumentString encodes one argument: the object's string, or the
// lexicographically sorted inner strings wrapped in braces for a set.
func argumentString(a Argument, remap Remap, memo map[int]string) string {
	switch a := a.(type) {
	case ObjectArg:
		return objectString(a.Obj, remap, memo)
	case SetArg:
		inner := make([]string, len(a.Items))
		for i, item := range a.Items {
			inner[i] = argumentString(item, remap, memo)
		}
		sort.Strings(inner)
		return "{" + strings.Join(inner, ",") + "}"
	default:
		return "?"
	}
}

// ArgumentsKey returns the canonical string of an argument tuple under
// the identity remapping. The argument generator and the forbidden
// index both dedup by this key.
func ArgumentsKey(l ArgList) string {
	return argListString(l, nil, nil)
}

// argListString encodes an argument tuple as "(" parts "," ... ")".
func argListString(l ArgList, remap Remap, memo map[int]string) string {
	parts := make([]string, len(l))
	for i, a := range l {
		parts[i] = argumentString(a, remap, memo)
	}
	return "(" + strings.Join(parts, ",") + ")"
}

// CanonicalString converts the configuration to its string form under
// the given loose-identifier remapping: the layout tag and remapped
// loose identifiers, then the lexicographically sorted strings of the
// constructed objects joined by "|".
func CanonicalString(c *Configuration, remap Remap) string {
	memo := make(map[int]string, len(c.Constructed))
	parts := make([]string, len(c.Constructed))
	for i, o := range c.Constructed {
		parts[i] = objectString(o, remap, memo)
	}
	sort.Strings(parts)

	ids := make([]int, len(c.Loose))
	for i, o := range c.Loose {
		ids[i] = remap.apply(o.ID)
	}
	sort.Ints(ids)

	var sb strings.Builder
	sb.WriteString(c.Layout.String())
	for _, id := range ids {
		sb.WriteString(" ")
		sb.WriteString(strconv.Itoa(id))
	}
	sb.WriteString("|")
	sb.WriteString(strings.Join(parts, "|"))
	return sb.String()
}

// LeastConfiguration enumerates all loose-identifier remappings
// consistent with the layout's symmetry group, computes the string
// under each, and returns the lexicographically smallest string
// together with the winning remapping. The string is the
// configuration's canonical key.
func LeastConfiguration(c *Configuration) (string, Remap) {
	var (
		best      string
		bestRemap Remap
	)
	for _, perm := range c.Layout.Symmetries() {
		remap := make(Remap, len(perm))
		for i, target := range perm {
			remap[c.Loose[i].ID] = c.Loose[target].ID
		}
		s := CanonicalString(c, remap)
		if bestRemap == nil || s < best {
			best = s
			bestRemap = remap
		}
	}
	return best, bestRemap
}

// Rewrite produces a new configuration whose loose identifiers are
// renamed through remap. Objects are immutable, so every object is
// rebuilt; constructed objects keep their identifiers and order, set
// arguments re-sort under the new names, and display names follow
// their objects.
func Rewrite(c *Configuration, remap Remap) *Configuration {
	objMap := make(map[int]*Object, len(c.Loose)+len(c.Constructed))
	names := make(map[int]string, len(c.Names))

	loose := make([]*Object, len(c.Loose))
	for i, o := range c.Loose {
		loose[i] = NewLoose(remap.apply(o.ID), o.Type)
		objMap[o.ID] = loose[i]
		if n, ok := c.Names[o.ID]; ok {
			names[loose[i].ID] = n
		}
	}
	sort.Slice(loose, func(i, j int) bool { return loose[i].ID < loose[j].ID })

	constructed := make([]*Object, len(c.Constructed))
	for i, o := range c.Constructed {
		args := make(ArgList, len(o.Args))
		for j, a := range o.Args {
			args[j] = rewriteArgument(a, objMap)
		}
		constructed[i] = NewConstructed(o.ID, o.Construction, args, o.Index)
		objMap[o.ID] = constructed[i]
		if n, ok := c.Names[o.ID]; ok {
			names[o.ID] = n
		}
	}

	out := &Configuration{
		LooseHolder: LooseHolder{Layout: c.Layout, Loose: loose},
		Constructed: constructed,
		Names:       names,
	}
	if c.LastAdded != nil {
		out.LastAdded = objMap[c.LastAdded.ID]
	}
	return out
}

func rewriteArgument(a Argument, objMap map[int]*Object) Argument {
	switch a := a.(type) {
	case ObjectArg:
		return ObjectArg{Obj: objMap[a.Obj.ID]}
	case SetArg:
		items := make([]Argument, len(a.Items))
		for i, item := range a.Items {
			items[i] = rewriteArgument(item, objMap)
		}
		set, err := NewSetArg(items)
		if err != nil {
			// A valid set stays valid under a bijective rename.
			panic("term: rewrite produced an invalid set argument: " + err.Error())
		}
		return set
	default:
		return a
	}
}

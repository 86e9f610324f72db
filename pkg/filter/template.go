package filter

import (
	"github.com/AnonymousPurplePotato/geogen/pkg/term"
)

// Template is a (configuration, theorem) pair loaded at startup.
// A discovered theorem matching a template through a
// signature-preserving remapping is a sub-theorem of it.
type Template struct {
	ID      int
	File    string
	Config  *term.Configuration
	Theorem term.Theorem
}

// Match looks for an injective, signature-preserving identifier
// remapping from the template configuration into a sub-DAG of cfg that
// maps the template theorem onto t: loose template objects may bind to
// any object of their type, constructed template objects must bind to
// constructed objects with the same construction and correspondingly
// bound arguments.
func (tpl *Template) Match(cfg *term.Configuration, t term.Theorem) bool {
	if tpl.Theorem.Type != t.Type {
		return false
	}
	m := &matcher{tpl: tpl, cfg: cfg, target: t,
		binding: make(map[int]*term.Object),
		used:    make(map[int]bool),
	}
	return m.matchConstructed(0)
}

type matcher struct {
	tpl    *Template
	cfg    *term.Configuration
	target term.Theorem

	binding map[int]*term.Object // template object id -> cfg object
	used    map[int]bool         // cfg object ids already in the image
}

// bind records tmpl -> obj, enforcing consistency and injectivity.
func (m *matcher) bind(tmpl, obj *term.Object) bool {
	if bound, ok := m.binding[tmpl.ID]; ok {
		return bound.ID == obj.ID
	}
	if m.used[obj.ID] || tmpl.Type != obj.Type {
		return false
	}
	m.binding[tmpl.ID] = obj
	m.used[obj.ID] = true
	return true
}

func (m *matcher) unbind(tmpl *term.Object) {
	if obj, ok := m.binding[tmpl.ID]; ok {
		delete(m.binding, tmpl.ID)
		delete(m.used, obj.ID)
	}
}

// snapshot captures the binding state for backtracking.
func (m *matcher) snapshot() map[int]int {
	s := make(map[int]int, len(m.binding))
	for id, obj := range m.binding {
		s[id] = obj.ID
	}
	return s
}

func (m *matcher) restore(s map[int]int) {
	for id := range m.binding {
		if _, keep := s[id]; !keep {
			delete(m.used, m.binding[id].ID)
			delete(m.binding, id)
		}
	}
}

// matchConstructed walks the template's constructed objects in
// topological order, trying every compatible constructed object of the
// host configuration.
func (m *matcher) matchConstructed(idx int) bool {
	if idx == len(m.tpl.Config.Constructed) {
		return m.matchLoose(looseMentionedInTheorem(m.tpl), 0)
	}
	tmpl := m.tpl.Config.Constructed[idx]
	for _, candidate := range m.cfg.Constructed {
		if m.used[candidate.ID] || candidate.Index != tmpl.Index {
			continue
		}
		if candidate.Construction.Name() != tmpl.Construction.Name() {
			continue
		}
		before := m.snapshot()
		if m.unifyArgs(tmpl.Args, candidate.Args) && m.bind(tmpl, candidate) {
			if m.matchConstructed(idx + 1) {
				return true
			}
		}
		m.restore(before)
	}
	return false
}

// unifyArgs unifies parallel argument trees. Set arguments match as
// multisets: every assignment of template items to distinct host items
// is tried.
func (m *matcher) unifyArgs(tmpl, host term.ArgList) bool {
	if len(tmpl) != len(host) {
		return false
	}
	for i := range tmpl {
		if !m.unifyArgument(tmpl[i], host[i]) {
			return false
		}
	}
	return true
}

func (m *matcher) unifyArgument(tmpl, host term.Argument) bool {
	switch tmpl := tmpl.(type) {
	case term.ObjectArg:
		host, ok := host.(term.ObjectArg)
		if !ok {
			return false
		}
		return m.bind(tmpl.Obj, host.Obj)
	case term.SetArg:
		host, ok := host.(term.SetArg)
		if !ok || len(tmpl.Items) != len(host.Items) {
			return false
		}
		return m.unifySet(tmpl.Items, host.Items, make([]bool, len(host.Items)))
	default:
		return false
	}
}

func (m *matcher) unifySet(tmpl, host []term.Argument, taken []bool) bool {
	if len(tmpl) == 0 {
		return true
	}
	for i, h := range host {
		if taken[i] {
			continue
		}
		before := m.snapshot()
		if m.unifyArgument(tmpl[0], h) {
			taken[i] = true
			if m.unifySet(tmpl[1:], host, taken) {
				return true
			}
			taken[i] = false
		}
		m.restore(before)
	}
	return false
}

// matchLoose binds the template's remaining loose objects (those the
// theorem mentions but no construction pinned down) to host objects of
// the same type, then checks the remapped theorem.
func (m *matcher) matchLoose(loose []*term.Object, idx int) bool {
	if idx == len(loose) {
		mapped, ok := remapTheorem(m.tpl.Theorem, m.binding)
		return ok && mapped.Key() == m.target.Key()
	}
	tmpl := loose[idx]
	if _, bound := m.binding[tmpl.ID]; bound {
		return m.matchLoose(loose, idx+1)
	}
	for _, candidate := range m.cfg.Objects() {
		if m.bind(tmpl, candidate) {
			if m.matchLoose(loose, idx+1) {
				return true
			}
			m.unbind(tmpl)
		}
	}
	return false
}

// looseMentionedInTheorem lists the template's loose objects that its
// theorem mentions, in identifier order.
func looseMentionedInTheorem(tpl *Template) []*term.Object {
	mentioned := make(map[int]bool)
	for _, o := range tpl.Theorem.MentionedObjects() {
		mentioned[o.ID] = true
	}
	var out []*term.Object
	for _, o := range tpl.Config.Loose {
		if mentioned[o.ID] {
			out = append(out, o)
		}
	}
	return out
}

// remapTheorem rebuilds the template theorem under the binding. It
// fails when a mentioned object is unbound (a template whose theorem
// mentions an object no construction or loose binding reached).
func remapTheorem(t term.Theorem, binding map[int]*term.Object) (term.Theorem, bool) {
	mapped := make([]term.TheoremObject, len(t.Objects))
	for i, o := range t.Objects {
		mo, ok := remapTheoremObject(o, binding)
		if !ok {
			return term.Theorem{}, false
		}
		mapped[i] = mo
	}
	return term.NewTheorem(t.Type, mapped...), true
}

func remapTheoremObject(o term.TheoremObject, binding map[int]*term.Object) (term.TheoremObject, bool) {
	out := term.TheoremObject{Kind: o.Kind}
	if o.Obj != nil {
		bound, ok := binding[o.Obj.ID]
		if !ok {
			return out, false
		}
		out.Obj = bound
	}
	if len(o.Points) > 0 {
		pts := make([]*term.Object, len(o.Points))
		for i, p := range o.Points {
			bound, ok := binding[p.ID]
			if !ok {
				return out, false
			}
			pts[i] = bound
		}
		switch {
		case o.Kind == term.Segment:
			return term.SegmentOf(pts[0], pts[1]), true
		case o.Kind == term.LineObject:
			return term.LineByPoints(pts[0], pts[1]), true
		case o.Kind == term.CircleObject:
			return term.CircleByPoints(pts[0], pts[1], pts[2]), true
		}
	}
	if len(o.Lines) > 0 {
		l0, ok0 := remapTheoremObject(o.Lines[0], binding)
		l1, ok1 := remapTheoremObject(o.Lines[1], binding)
		if !ok0 || !ok1 {
			return out, false
		}
		return term.AngleOf(l0, l1), true
	}
	return out, true
}

package filter

import (
	"github.com/AnonymousPurplePotato/geogen/pkg/picture"
	"github.com/AnonymousPurplePotato/geogen/pkg/term"
)

// Classification labels a theorem with the first matching category.
type Classification int

const (
	// Unclassified theorems are the interesting output of a run.
	Unclassified Classification = iota
	// Trivial: implied by the last construction's definition.
	Trivial
	// SubTheorem: an instance of a template theorem.
	SubTheorem
	// SimplerDefinable: statable in a strictly smaller configuration.
	SimplerDefinable
	// Transitive: composes from two known facts.
	Transitive
)

// Verdict is a classified theorem. The template fields are set for
// SubTheorem, the fact fields for Transitive.
type Verdict struct {
	Theorem term.Theorem
	Class   Classification

	TemplateID   int
	TemplateFile string

	Fact1, Fact2 *term.Theorem
}

// Filter classifies theorems against the template library and the
// knowledge accumulated while classifying one configuration. The
// library is immutable after startup.
type Filter struct {
	Templates []*Template
}

// New creates a filter over a template library.
func New(templates []*Template) *Filter {
	return &Filter{Templates: templates}
}

// Classify processes the raw theorems of one realized configuration in
// order. The categories apply first-match: trivial, sub-theorem,
// definable-in-simpler-configuration, transitivity. Knowledge
// accumulates as theorems are processed, so later theorems may be
// explained through earlier ones.
func (f *Filter) Classify(cfg *term.Configuration, pics []*picture.Picture, theorems []term.Theorem) []Verdict {
	known := make(map[string]bool)
	axioms := TrivialTheorems(cfg)
	for _, a := range axioms {
		known[a.Key()] = true
	}
	trans := newTransitivity(cfg, pics, known)

	verdicts := make([]Verdict, 0, len(theorems))
	for _, t := range theorems {
		v := Verdict{Theorem: t}
		switch {
		case isAxiom(t, axioms):
			v.Class = Trivial
		case f.matchTemplate(cfg, t, &v):
			v.Class = SubTheorem
		case DefinableInSimpler(cfg, t):
			v.Class = SimplerDefinable
		default:
			if f1, f2, ok := trans.Explain(t); ok {
				v.Class = Transitive
				v.Fact1, v.Fact2 = &f1, &f2
			}
		}
		known[t.Key()] = true
		verdicts = append(verdicts, v)
	}
	return verdicts
}

func isAxiom(t term.Theorem, axioms []term.Theorem) bool {
	key := t.Key()
	for _, a := range axioms {
		if a.Key() == key {
			return true
		}
	}
	return false
}

func (f *Filter) matchTemplate(cfg *term.Configuration, t term.Theorem, v *Verdict) bool {
	for _, tpl := range f.Templates {
		if tpl.Match(cfg, t) {
			v.TemplateID = tpl.ID
			v.TemplateFile = tpl.File
			return true
		}
	}
	return false
}

// DefinableInSimpler computes the dependency closure of the objects t
// mentions and reports whether it spans strictly fewer constructed
// objects than the configuration holds: the theorem is then statable
// in a smaller configuration.
func DefinableInSimpler(cfg *term.Configuration, t term.Theorem) bool {
	needed := make(map[int]bool)
	for _, o := range t.MentionedObjects() {
		for _, dep := range o.InternalObjects() {
			needed[dep.ID] = true
		}
	}
	count := 0
	for _, o := range cfg.Constructed {
		if needed[o.ID] {
			count++
		}
	}
	return count < len(cfg.Constructed)
}

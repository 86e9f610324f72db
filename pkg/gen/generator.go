package gen

import (
	"fmt"

	"github.com/AnonymousPurplePotato/geogen/pkg/term"
)

// Candidate is one accepted configuration emitted by the generator,
// already rewritten into canonical identifiers.
type Candidate struct {
	Config *term.Configuration
	Key    string
	Depth  int
	Seq    int
}

// Generator performs the breadth-first expansion: one constructed
// object per iteration, canonicalization under the layout symmetry,
// deduplication by canonical key. It is a lazy, finite stream; call
// Next until it reports exhaustion.
type Generator struct {
	catalogue  []term.Construction
	iterations int

	// Skip, when set, is consulted before a queued configuration is
	// expanded. The analysis layer uses it to drop duplicate-bearing
	// and inconstructible configurations from further generation.
	Skip func(key string) bool

	accepted map[string]bool
	current  []queued
	next     []queued

	depth   int
	cfgIdx  int
	consIdx int
	stream  *ArgumentStream
	seq     int
}

type queued struct {
	cfg *term.Configuration
	key string
}

// New creates a generator over the initial configuration. The
// catalogue lists the constructions allowed during generation.
func New(initial *term.Configuration, catalogue []term.Construction, iterations int) (*Generator, error) {
	if len(catalogue) == 0 && iterations > 0 {
		return nil, fmt.Errorf("gen: empty construction catalogue with %d iterations", iterations)
	}
	if iterations < 0 {
		return nil, fmt.Errorf("gen: negative iteration budget %d", iterations)
	}
	key, remap := term.LeastConfiguration(initial)
	canonical := term.Rewrite(initial, remap)
	g := &Generator{
		catalogue:  catalogue,
		iterations: iterations,
		accepted:   map[string]bool{key: true},
		current:    []queued{{cfg: canonical, key: key}},
		depth:      1,
	}
	if iterations == 0 {
		g.current = nil
	}
	return g, nil
}

// Accepted reports whether a canonical key has been seen.
func (g *Generator) Accepted(key string) bool {
	return g.accepted[key]
}

// Next returns the next accepted configuration, or false when the
// queue for the last permitted depth has drained.
func (g *Generator) Next() (*Candidate, bool) {
	for {
		if g.cfgIdx >= len(g.current) {
			// Current depth drained; move one level down.
			if g.depth >= g.iterations || len(g.next) == 0 {
				return nil, false
			}
			g.depth++
			g.current, g.next = g.next, nil
			g.cfgIdx, g.consIdx, g.stream = 0, 0, nil
		}

		entry := g.current[g.cfgIdx]
		if g.Skip != nil && g.consIdx == 0 && g.stream == nil && g.Skip(entry.key) {
			g.cfgIdx++
			continue
		}
		cfg := entry.cfg
		if g.consIdx >= len(g.catalogue) {
			g.cfgIdx++
			g.consIdx, g.stream = 0, nil
			continue
		}
		construction := g.catalogue[g.consIdx]
		if g.stream == nil {
			g.stream = Arguments(cfg, construction)
		}

		args, ok := g.stream.Next()
		if !ok {
			g.consIdx++
			g.stream = nil
			continue
		}

		obj := term.NewConstructed(cfg.NextID(), construction, args, 0)
		candidate, err := cfg.Extend(obj, "")
		if err != nil {
			// Arguments came from cfg itself; this cannot happen.
			panic("gen: extension with in-configuration arguments failed: " + err.Error())
		}

		key, remap := term.LeastConfiguration(candidate)
		if g.accepted[key] {
			continue
		}
		g.accepted[key] = true

		canonical := term.Rewrite(candidate, remap)
		g.next = append(g.next, queued{cfg: canonical, key: key})
		g.seq++
		return &Candidate{Config: canonical, Key: key, Depth: g.depth, Seq: g.seq}, true
	}
}

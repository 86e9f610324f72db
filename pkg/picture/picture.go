package picture

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/AnonymousPurplePotato/geogen/pkg/analytic"
	"github.com/AnonymousPurplePotato/geogen/pkg/rng"
	"github.com/AnonymousPurplePotato/geogen/pkg/term"
)

// Defaults for realization.
const (
	DefaultCount   = 5
	DefaultRetries = 5
)

var (
	// ErrTooFewPictures reports a picture count below the hard
	// minimum of two.
	ErrTooFewPictures = errors.New("picture: picture set needs at least two pictures")

	// ErrUnresolvedInconsistency reports that the rebuild budget ran
	// out without the pictures reaching agreement.
	ErrUnresolvedInconsistency = errors.New("picture: pictures disagree after all rebuilds")
)

// Picture is one numeric realization: a mapping from configuration
// objects to analytic instances, plus the reverse index used for
// coincidence detection.
type Picture struct {
	values map[int]analytic.Object
	byKey  map[string]int // analytic key -> id of the first object drawn there
	dupOf  map[int]int    // constructed object id -> id of the older coincident object
	failed int            // id of the first unconstructable object, or -1
}

// Get returns the analytic instance of o in this picture.
func (p *Picture) Get(o *term.Object) (analytic.Object, bool) {
	v, ok := p.values[o.ID]
	return v, ok
}

// ObjectAt returns the identifier of the object realized at the given
// analytic instance, if any. This is the instance-to-object direction
// of the mapping kept for incidence queries.
func (p *Picture) ObjectAt(v analytic.Object) (int, bool) {
	id, ok := p.byKey[v.Key()]
	return id, ok
}

// Outcome classifies the realization of a configuration.
type Outcome int

const (
	// Realized: all objects constructable and mutually distinct in
	// every picture.
	Realized Outcome = iota
	// Inconstructible: some object is unconstructable in every
	// picture; the configuration is pruned.
	Inconstructible
	// Duplicate: some object coincides with an older one in every
	// picture; the configuration reduces to a previous one.
	Duplicate
)

// Result is the agreed outcome of a realization.
type Result struct {
	Outcome  Outcome
	Pictures []*Picture

	// Witness is the unconstructable object (Inconstructible).
	Witness *term.Object
	// Older and Newer are the coincident pair (Duplicate).
	Older *term.Object
	Newer *term.Object
}

// Options configures a realization.
type Options struct {
	// Count is the number of pictures, at least two. Zero means
	// DefaultCount.
	Count int
	// Retries bounds the rebuild loop. Zero means DefaultRetries.
	Retries int
	// Seed is the master seed; pictures derive from it, the
	// configuration key and the attempt number.
	Seed uint64
	// Logger receives inconsistency traces. Nil discards them.
	Logger *log.Logger
}

func (o *Options) normalize() error {
	if o.Count == 0 {
		o.Count = DefaultCount
	}
	if o.Retries == 0 {
		o.Retries = DefaultRetries
	}
	if o.Count < 2 {
		return fmt.Errorf("%d pictures: %w", o.Count, ErrTooFewPictures)
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return nil
}

// Realize builds the picture set of a configuration. key is the
// configuration's canonical key; it seeds the per-picture randomness
// and labels inconsistency traces.
//
// The cross-picture consistency contract: for every constructed
// object, all pictures must agree on whether it was constructable and
// on which older object (if any) it coincided with. On disagreement
// all pictures are rebuilt from scratch with fresh randomness, up to
// the retry bound; exhaustion surfaces ErrUnresolvedInconsistency.
func Realize(ctx context.Context, cfg *term.Configuration, key string, opts Options) (*Result, error) {
	if err := opts.normalize(); err != nil {
		return nil, err
	}

	for attempt := 0; attempt <= opts.Retries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pictures := make([]*Picture, opts.Count)
		buildFailed := false
		for i := range pictures {
			r := rng.ForPicture(opts.Seed, fmt.Sprintf("%s#%d", key, attempt), i)
			pic, err := buildPicture(cfg, r)
			if err != nil {
				// The layout generator rejected every draw; try a
				// fresh attempt.
				opts.Logger.Debug("layout draw rejected", "config", key, "picture", i, "attempt", attempt)
				buildFailed = true
				break
			}
			pictures[i] = pic
		}
		if buildFailed {
			continue
		}

		result, consistent := reconcile(cfg, pictures)
		if consistent {
			return result, nil
		}
		opts.Logger.Debug("inconsistent pictures, rebuilding", "config", key, "attempt", attempt)
	}
	return nil, fmt.Errorf("configuration %s: %w", key, ErrUnresolvedInconsistency)
}

// buildPicture draws the loose objects and applies every constructor
// in order. Construction stops at the first unconstructable object;
// coincidences are recorded but do not stop construction.
func buildPicture(cfg *term.Configuration, r *rng.RNG) (*Picture, error) {
	loose, err := drawLoose(cfg.Layout, r)
	if err != nil {
		return nil, err
	}

	pic := &Picture{
		values: make(map[int]analytic.Object, len(cfg.Loose)+len(cfg.Constructed)),
		byKey:  make(map[string]int, len(cfg.Loose)+len(cfg.Constructed)),
		dupOf:  make(map[int]int),
		failed: -1,
	}
	for i, o := range cfg.Loose {
		pic.values[o.ID] = loose[i]
		pic.byKey[loose[i].Key()] = o.ID
	}

	for _, o := range cfg.Constructed {
		v, ok := evaluate(o, pic.values)
		if !ok {
			pic.failed = o.ID
			break
		}
		pic.values[o.ID] = v
		if older, dup := pic.byKey[v.Key()]; dup {
			pic.dupOf[o.ID] = older
		} else {
			pic.byKey[v.Key()] = o.ID
		}
	}
	return pic, nil
}

// drawLoose dispatches to the layout's random generator.
func drawLoose(layout term.Layout, r *rng.RNG) ([]analytic.Object, error) {
	switch layout {
	case term.LineSegment:
		return analytic.DrawLineSegment(r)
	case term.Triangle:
		return analytic.DrawTriangle(r)
	case term.RightTriangle:
		return analytic.DrawRightTriangle(r)
	case term.Quadrilateral:
		return analytic.DrawQuadrilateral(r)
	case term.ExplicitLineAndPoint:
		return analytic.DrawExplicitLineAndPoint(r)
	case term.ExplicitLineAndTwoPoints:
		return analytic.DrawExplicitLineAndTwoPoints(r)
	default:
		return nil, fmt.Errorf("layout %s has no generator: %w", layout, analytic.ErrAnalyticFailure)
	}
}

// reconcile applies the cross-picture consistency check and, when the
// pictures agree, classifies the configuration.
func reconcile(cfg *term.Configuration, pictures []*Picture) (*Result, bool) {
	first := pictures[0]
	for _, pic := range pictures[1:] {
		if pic.failed != first.failed {
			return nil, false
		}
		if len(pic.dupOf) != len(first.dupOf) {
			return nil, false
		}
		for id, older := range first.dupOf {
			if pic.dupOf[id] != older {
				return nil, false
			}
		}
	}

	if first.failed >= 0 {
		return &Result{
			Outcome:  Inconstructible,
			Pictures: pictures,
			Witness:  cfg.Find(first.failed),
		}, true
	}
	for _, o := range cfg.Constructed {
		if older, dup := first.dupOf[o.ID]; dup {
			return &Result{
				Outcome:  Duplicate,
				Pictures: pictures,
				Older:    cfg.Find(older),
				Newer:    o,
			}, true
		}
	}
	return &Result{Outcome: Realized, Pictures: pictures}, true
}

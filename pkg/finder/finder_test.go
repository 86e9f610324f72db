package finder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnonymousPurplePotato/geogen/pkg/picture"
	"github.com/AnonymousPurplePotato/geogen/pkg/term"
)

func extend(t *testing.T, cfg *term.Configuration, kind term.ConstructionKind, name string, flat ...*term.Object) *term.Configuration {
	t.Helper()
	c := term.Get(kind)
	args, err := term.Match(c.Signature(), flat)
	require.NoError(t, err)
	obj := term.NewConstructed(cfg.NextID(), c, args, 0)
	next, err := cfg.Extend(obj, name)
	require.NoError(t, err)
	return next
}

func realize(t *testing.T, cfg *term.Configuration) []*picture.Picture {
	t.Helper()
	res, err := picture.Realize(context.Background(), cfg, "finder-test", picture.Options{Seed: 21})
	require.NoError(t, err)
	require.Equal(t, picture.Realized, res.Outcome)
	return res.Pictures
}

func keys(theorems []term.Theorem) map[string]bool {
	out := make(map[string]bool, len(theorems))
	for _, th := range theorems {
		out[th.Key()] = true
	}
	return out
}

func TestFind_MidsegmentParallel(t *testing.T) {
	cfg, err := term.NewConfiguration(term.Triangle, []string{"A", "B", "C"})
	require.NoError(t, err)
	cfg = extend(t, cfg, term.KindMidpoint, "M1", cfg.Loose[0], cfg.Loose[1])
	m1 := cfg.LastAdded
	cfg = extend(t, cfg, term.KindMidpoint, "M2", cfg.Loose[0], cfg.Loose[2])
	m2 := cfg.LastAdded

	found := Find(cfg, realize(t, cfg))
	got := keys(found)

	// The midsegment theorem.
	midsegment := term.NewTheorem(term.ParallelLines,
		term.LineByPoints(m1, m2),
		term.LineByPoints(cfg.Loose[1], cfg.Loose[2]))
	assert.True(t, got[midsegment.Key()], "missing %s", midsegment.Key())

	// Definitional facts of the last midpoint involve it and are found
	// (classification happens downstream).
	collinear := term.NewTheorem(term.CollinearPoints,
		term.PointByObject(cfg.Loose[0]),
		term.PointByObject(cfg.Loose[2]),
		term.PointByObject(m2))
	assert.True(t, got[collinear.Key()], "missing %s", collinear.Key())

	equalSegs := term.NewTheorem(term.EqualLineSegments,
		term.SegmentOf(cfg.Loose[0], m2),
		term.SegmentOf(cfg.Loose[2], m2))
	assert.True(t, got[equalSegs.Key()], "missing %s", equalSegs.Key())

	// Facts of the parent configuration do not involve the last-added
	// object and are not re-emitted.
	parentFact := term.NewTheorem(term.CollinearPoints,
		term.PointByObject(cfg.Loose[0]),
		term.PointByObject(cfg.Loose[1]),
		term.PointByObject(m1))
	assert.False(t, got[parentFact.Key()], "parent fact re-emitted")
}

func TestFind_PerpendicularProjection(t *testing.T) {
	cfg, err := term.NewConfiguration(term.ExplicitLineAndPoint, []string{"l", "P"})
	require.NoError(t, err)
	line := cfg.Loose[0]
	p := cfg.Loose[1]
	cfg = extend(t, cfg, term.KindPerpendicularProjection, "F", p, line)
	foot := cfg.LastAdded

	found := Find(cfg, realize(t, cfg))
	got := keys(found)

	perp := term.NewTheorem(term.PerpendicularLines,
		term.LineByPoints(p, foot),
		term.LineByObject(line))
	assert.True(t, got[perp.Key()], "missing %s", perp.Key())
}

func TestFind_SoundUnderRounding(t *testing.T) {
	// Every reported theorem must re-verify in every picture.
	cfg, err := term.NewConfiguration(term.Triangle, []string{"A", "B", "C"})
	require.NoError(t, err)
	cfg = extend(t, cfg, term.KindMidpoint, "M1", cfg.Loose[0], cfg.Loose[1])
	cfg = extend(t, cfg, term.KindMidpoint, "M2", cfg.Loose[0], cfg.Loose[2])

	pics := realize(t, cfg)
	found := Find(cfg, pics)
	require.NotEmpty(t, found)
	for _, th := range found {
		assert.True(t, Holds(th, pics), "%s does not re-verify", th.Key())
	}

	// Finding twice over the same pictures is idempotent.
	again := Find(cfg, pics)
	assert.Equal(t, keys(found), keys(again))
}

func TestFind_InitialConfigurationUnrestricted(t *testing.T) {
	// The initial configuration has no last-added object; its own
	// theorems (here: the right angle) are searched without the
	// involvement restriction.
	cfg, err := term.NewConfiguration(term.RightTriangle, []string{"A", "B", "C"})
	require.NoError(t, err)

	found := Find(cfg, realize(t, cfg))
	got := keys(found)

	right := term.NewTheorem(term.PerpendicularLines,
		term.LineByPoints(cfg.Loose[0], cfg.Loose[1]),
		term.LineByPoints(cfg.Loose[0], cfg.Loose[2]))
	assert.True(t, got[right.Key()], "missing %s", right.Key())
}

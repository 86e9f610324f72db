package filter

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
	res, err := picture.Realize(context.Background(), cfg, "filter-test", picture.Options{Seed: 33})
	require.NoError(t, err)
	require.Equal(t, picture.Realized, res.Outcome)
	return res.Pictures
}

func midsegmentConfig(t *testing.T) (*term.Configuration, *term.Object, *term.Object) {
	cfg, err := term.NewConfiguration(term.Triangle, []string{"A", "B", "C"})
	require.NoError(t, err)
	cfg = extend(t, cfg, term.KindMidpoint, "M1", cfg.Loose[0], cfg.Loose[1])
	m1 := cfg.LastAdded
	cfg = extend(t, cfg, term.KindMidpoint, "M2", cfg.Loose[0], cfg.Loose[2])
	return cfg, m1, cfg.LastAdded
}

func TestTrivialTheorems_Midpoint(t *testing.T) {
	cfg, err := term.NewConfiguration(term.Triangle, []string{"A", "B", "C"})
	require.NoError(t, err)
	cfg = extend(t, cfg, term.KindMidpoint, "M", cfg.Loose[0], cfg.Loose[1])
	m := cfg.LastAdded

	axioms := TrivialTheorems(cfg)
	require.Len(t, axioms, 2)

	wantEqual := term.NewTheorem(term.EqualLineSegments,
		term.SegmentOf(cfg.Loose[0], m), term.SegmentOf(cfg.Loose[1], m))
	wantCollinear := term.NewTheorem(term.CollinearPoints,
		term.PointByObject(cfg.Loose[0]), term.PointByObject(cfg.Loose[1]), term.PointByObject(m))

	keys := map[string]bool{axioms[0].Key(): true, axioms[1].Key(): true}
	assert.True(t, keys[wantEqual.Key()])
	assert.True(t, keys[wantCollinear.Key()])
}

func TestTrivialTheorems_Projection(t *testing.T) {
	cfg, err := term.NewConfiguration(term.ExplicitLineAndPoint, []string{"l", "P"})
	require.NoError(t, err)
	cfg = extend(t, cfg, term.KindPerpendicularProjection, "F", cfg.Loose[1], cfg.Loose[0])
	foot := cfg.LastAdded

	axioms := TrivialTheorems(cfg)
	require.Len(t, axioms, 1)
	want := term.NewTheorem(term.PerpendicularLines,
		term.LineByPoints(cfg.Loose[1], foot), term.LineByObject(cfg.Loose[0]))
	assert.Equal(t, want.Key(), axioms[0].Key())
}

func TestClassify_TrivialFirst(t *testing.T) {
	cfg, _, m2 := midsegmentConfig(t)
	pics := realize(t, cfg)

	trivial := term.NewTheorem(term.EqualLineSegments,
		term.SegmentOf(cfg.Loose[0], m2), term.SegmentOf(cfg.Loose[2], m2))
	verdicts := New(nil).Classify(cfg, pics, []term.Theorem{trivial})
	require.Len(t, verdicts, 1)
	// Also definable in a simpler configuration, but trivial matches
	// first and a theorem gets at most one annotation.
	assert.Equal(t, Trivial, verdicts[0].Class)
}

func TestClassify_MidsegmentUnclassified(t *testing.T) {
	cfg, m1, m2 := midsegmentConfig(t)
	pics := realize(t, cfg)

	midsegment := term.NewTheorem(term.ParallelLines,
		term.LineByPoints(m1, m2),
		term.LineByPoints(cfg.Loose[1], cfg.Loose[2]))
	verdicts := New(nil).Classify(cfg, pics, []term.Theorem{midsegment})
	require.Len(t, verdicts, 1)
	assert.Equal(t, Unclassified, verdicts[0].Class)
}

func TestClassify_SimplerDefinable(t *testing.T) {
	// Extend the midsegment configuration with an unrelated third
	// midpoint; the old trivial fact of M2 now spans fewer constructed
	// objects than the configuration holds.
	cfg, _, m2 := midsegmentConfig(t)
	cfg = extend(t, cfg, term.KindMidpoint, "M3", cfg.Loose[1], cfg.Loose[2])
	pics := realize(t, cfg)

	old := term.NewTheorem(term.EqualLineSegments,
		term.SegmentOf(cfg.Loose[0], m2), term.SegmentOf(cfg.Loose[2], m2))
	verdicts := New(nil).Classify(cfg, pics, []term.Theorem{old})
	require.Len(t, verdicts, 1)
	assert.Equal(t, SimplerDefinable, verdicts[0].Class)
}

func TestTemplate_MatchesMidsegmentInstance(t *testing.T) {
	// Template: the midsegment theorem itself.
	tplCfg, tplM1, tplM2 := midsegmentConfig(t)
	tpl := &Template{
		ID:     1,
		File:   "midsegment.gt",
		Config: tplCfg,
		Theorem: term.NewTheorem(term.ParallelLines,
			term.LineByPoints(tplM1, tplM2),
			term.LineByPoints(tplCfg.Loose[1], tplCfg.Loose[2])),
	}

	// Host: same shape built over a different vertex pairing, plus an
	// extra construction the template must not need.
	cfg, err := term.NewConfiguration(term.Triangle, []string{"A", "B", "C"})
	require.NoError(t, err)
	cfg = extend(t, cfg, term.KindMidpoint, "P", cfg.Loose[1], cfg.Loose[0])
	p1 := cfg.LastAdded
	cfg = extend(t, cfg, term.KindMidpoint, "Q", cfg.Loose[1], cfg.Loose[2])
	p2 := cfg.LastAdded
	cfg = extend(t, cfg, term.KindLineFromPoints, "l", cfg.Loose[0], cfg.Loose[2])

	instance := term.NewTheorem(term.ParallelLines,
		term.LineByPoints(p1, p2),
		term.LineByPoints(cfg.Loose[0], cfg.Loose[2]))
	assert.True(t, tpl.Match(cfg, instance))

	// A statement the template does not imply.
	other := term.NewTheorem(term.ParallelLines,
		term.LineByPoints(p1, p2),
		term.LineByPoints(cfg.Loose[0], cfg.Loose[1]))
	assert.False(t, tpl.Match(cfg, other))
}

func TestClassify_SubTheoremBeforeSimpler(t *testing.T) {
	tplCfg, tplM1, tplM2 := midsegmentConfig(t)
	tpl := &Template{
		ID:     4,
		File:   "midsegment.gt",
		Config: tplCfg,
		Theorem: term.NewTheorem(term.ParallelLines,
			term.LineByPoints(tplM1, tplM2),
			term.LineByPoints(tplCfg.Loose[1], tplCfg.Loose[2])),
	}

	cfg, m1, m2 := midsegmentConfig(t)
	cfg = extend(t, cfg, term.KindMidpoint, "M3", cfg.Loose[1], cfg.Loose[2])
	pics := realize(t, cfg)

	midsegment := term.NewTheorem(term.ParallelLines,
		term.LineByPoints(m1, m2),
		term.LineByPoints(cfg.Loose[1], cfg.Loose[2]))
	verdicts := New([]*Template{tpl}).Classify(cfg, pics, []term.Theorem{midsegment})
	require.Len(t, verdicts, 1)
	assert.Equal(t, SubTheorem, verdicts[0].Class)
	assert.Equal(t, 4, verdicts[0].TemplateID)
	assert.Equal(t, "midsegment.gt", verdicts[0].TemplateFile)
}

func TestTransitivity_ParallelChain(t *testing.T) {
	// Base line through A and B, parallels through C and through the
	// midpoint of A and C. The two parallels are mutually parallel
	// because each is parallel to the base.
	cfg, err := term.NewConfiguration(term.Triangle, []string{"A", "B", "C"})
	require.NoError(t, err)
	cfg = extend(t, cfg, term.KindLineFromPoints, "l", cfg.Loose[0], cfg.Loose[1])
	base := cfg.LastAdded
	cfg = extend(t, cfg, term.KindParallelLine, "p1", cfg.Loose[2], base)
	par1 := cfg.LastAdded
	cfg = extend(t, cfg, term.KindMidpoint, "M", cfg.Loose[0], cfg.Loose[2])
	m := cfg.LastAdded
	cfg = extend(t, cfg, term.KindParallelLine, "p2", m, base)
	par2 := cfg.LastAdded
	pics := realize(t, cfg)

	target := term.NewTheorem(term.ParallelLines,
		term.LineByObject(par1), term.LineByObject(par2))
	verdicts := New(nil).Classify(cfg, pics, []term.Theorem{target})
	require.Len(t, verdicts, 1)
	require.Equal(t, Transitive, verdicts[0].Class)
	require.NotNil(t, verdicts[0].Fact1)
	require.NotNil(t, verdicts[0].Fact2)

	// The middle entity of both facts is the base line.
	baseKey := term.NewTheorem(term.ParallelLines,
		term.LineByObject(par1), term.LineByObject(base)).Key()
	assert.Equal(t, baseKey, verdicts[0].Fact1.Key())
}

func TestClassify_AtMostOneAnnotation(t *testing.T) {
	cfg, m1, m2 := midsegmentConfig(t)
	pics := realize(t, cfg)

	theorems := []term.Theorem{
		term.NewTheorem(term.EqualLineSegments,
			term.SegmentOf(cfg.Loose[0], m2), term.SegmentOf(cfg.Loose[2], m2)),
		term.NewTheorem(term.ParallelLines,
			term.LineByPoints(m1, m2),
			term.LineByPoints(cfg.Loose[1], cfg.Loose[2])),
	}
	verdicts := New(nil).Classify(cfg, pics, theorems)
	require.Len(t, verdicts, 2)
	for _, v := range verdicts {
		annotations := 0
		if v.Class == SubTheorem {
			annotations++
		}
		if v.Fact1 != nil || v.Fact2 != nil {
			require.Equal(t, Transitive, v.Class)
			annotations++
		}
		assert.LessOrEqual(t, annotations, 1)
	}
}

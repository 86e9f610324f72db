package picture

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnonymousPurplePotato/geogen/pkg/analytic"
	"github.com/AnonymousPurplePotato/geogen/pkg/term"
)

func triangle(t *testing.T) *term.Configuration {
	t.Helper()
	cfg, err := term.NewConfiguration(term.Triangle, []string{"A", "B", "C"})
	require.NoError(t, err)
	return cfg
}

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

func TestRealize_MidpointSucceeds(t *testing.T) {
	cfg := triangle(t)
	cfg = extend(t, cfg, term.KindMidpoint, "M", cfg.Loose[0], cfg.Loose[1])
	m := cfg.LastAdded

	res, err := Realize(context.Background(), cfg, "test-key", Options{Seed: 1})
	require.NoError(t, err)
	require.Equal(t, Realized, res.Outcome)
	require.Len(t, res.Pictures, DefaultCount)

	for _, pic := range res.Pictures {
		a, ok := pic.Get(cfg.Loose[0])
		require.True(t, ok)
		b, ok := pic.Get(cfg.Loose[1])
		require.True(t, ok)
		mv, ok := pic.Get(m)
		require.True(t, ok)
		want := analytic.Midpoint(a.(analytic.Point), b.(analytic.Point))
		assert.True(t, mv.(analytic.Point).Equal(want))

		id, ok := pic.ObjectAt(mv)
		require.True(t, ok)
		assert.Equal(t, m.ID, id)
	}
}

func TestRealize_DeterministicUnderSeed(t *testing.T) {
	cfg := triangle(t)
	cfg = extend(t, cfg, term.KindMidpoint, "M", cfg.Loose[0], cfg.Loose[1])

	r1, err := Realize(context.Background(), cfg, "k", Options{Seed: 42})
	require.NoError(t, err)
	r2, err := Realize(context.Background(), cfg, "k", Options{Seed: 42})
	require.NoError(t, err)

	for i := range r1.Pictures {
		for _, o := range cfg.Objects() {
			v1, _ := r1.Pictures[i].Get(o)
			v2, _ := r2.Pictures[i].Get(o)
			assert.Equal(t, v1.Key(), v2.Key())
		}
	}
}

func TestRealize_InconstructibleParallels(t *testing.T) {
	// The intersection of a line with its own parallel never exists.
	cfg := triangle(t)
	cfg = extend(t, cfg, term.KindLineFromPoints, "l", cfg.Loose[0], cfg.Loose[1])
	base := cfg.LastAdded
	cfg = extend(t, cfg, term.KindParallelLine, "m", cfg.Loose[2], base)
	par := cfg.LastAdded
	cfg = extend(t, cfg, term.KindIntersectionOfLines, "X", base, par)
	x := cfg.LastAdded

	res, err := Realize(context.Background(), cfg, "parallel-x", Options{Seed: 3})
	require.NoError(t, err)
	require.Equal(t, Inconstructible, res.Outcome)
	require.NotNil(t, res.Witness)
	assert.Equal(t, x.ID, res.Witness.ID)
}

func TestRealize_DuplicateProjection(t *testing.T) {
	// Projecting A onto the line AB lands back on A.
	cfg := triangle(t)
	cfg = extend(t, cfg, term.KindLineFromPoints, "l", cfg.Loose[0], cfg.Loose[1])
	l := cfg.LastAdded
	cfg = extend(t, cfg, term.KindPerpendicularProjection, "F", cfg.Loose[0], l)
	f := cfg.LastAdded

	res, err := Realize(context.Background(), cfg, "proj-dup", Options{Seed: 5})
	require.NoError(t, err)
	require.Equal(t, Duplicate, res.Outcome)
	require.NotNil(t, res.Older)
	require.NotNil(t, res.Newer)
	assert.Equal(t, cfg.Loose[0].ID, res.Older.ID)
	assert.Equal(t, f.ID, res.Newer.ID)
}

func TestRealize_RejectsSinglePicture(t *testing.T) {
	cfg := triangle(t)
	_, err := Realize(context.Background(), cfg, "k", Options{Seed: 1, Count: 1})
	assert.ErrorIs(t, err, ErrTooFewPictures)
}

func TestRealize_HonorsCancellation(t *testing.T) {
	cfg := triangle(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Realize(ctx, cfg, "k", Options{Seed: 1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRealize_SecondIntersection(t *testing.T) {
	// Circumcircle of ABC, line AB: the second intersection of the
	// line through A with the circle is B itself, a duplicate.
	cfg := triangle(t)
	cfg = extend(t, cfg, term.KindCircumcircle, "c", cfg.Loose[0], cfg.Loose[1], cfg.Loose[2])
	circ := cfg.LastAdded
	cfg = extend(t, cfg, term.KindLineFromPoints, "l", cfg.Loose[0], cfg.Loose[1])
	l := cfg.LastAdded
	cfg = extend(t, cfg, term.KindSecondIntersectionOfLineAndCircle, "X", cfg.Loose[0], l, circ)

	res, err := Realize(context.Background(), cfg, "second-x", Options{Seed: 7})
	require.NoError(t, err)
	require.Equal(t, Duplicate, res.Outcome)
	assert.Equal(t, cfg.Loose[1].ID, res.Older.ID)
}

func TestEvaluateComposed(t *testing.T) {
	// A composed "median" construction: midpoint of {A, B}, then the
	// line joining it to C, inlined into a fresh triangle.
	inner := triangle(t)
	inner = extend(t, inner, term.KindMidpoint, "M", inner.Loose[0], inner.Loose[1])
	inner = extend(t, inner, term.KindLineFromPoints, "l", inner.LastAdded, inner.Loose[2])
	median, err := term.NewComposed("Median", inner)
	require.NoError(t, err)

	a := analytic.NewPoint(0, 0)
	b := analytic.NewPoint(2, 0)
	c := analytic.NewPoint(0, 2)
	v, ok := evaluateComposed(median, []analytic.Object{a, b, c})
	require.True(t, ok)
	line := v.(analytic.Line)
	assert.True(t, analytic.LiesOnLine(analytic.NewPoint(1, 0), line))
	assert.True(t, analytic.LiesOnLine(c, line))
}

package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/AnonymousPurplePotato/geogen/pkg/term"
)

func triangle(t *testing.T) *term.Configuration {
	t.Helper()
	cfg, err := term.NewConfiguration(term.Triangle, []string{"A", "B", "C"})
	require.NoError(t, err)
	return cfg
}

func collect(t *testing.T, g *Generator) []*Candidate {
	t.Helper()
	var out []*Candidate
	for {
		c, ok := g.Next()
		if !ok {
			return out
		}
		out = append(out, c)
	}
}

func TestArgumentStream_MidpointOverTriangle(t *testing.T) {
	cfg := triangle(t)
	stream := Arguments(cfg, term.Get(term.KindMidpoint))

	var keys []string
	for {
		args, ok := stream.Next()
		if !ok {
			break
		}
		keys = append(keys, term.ArgumentsKey(args))
	}
	// C(3,2) unordered pairs.
	assert.ElementsMatch(t, []string{"({0,1})", "({0,2})", "({1,2})"}, keys)
}

func TestArgumentStream_InsufficientObjects(t *testing.T) {
	cfg, err := term.NewConfiguration(term.LineSegment, []string{"A", "B"})
	require.NoError(t, err)

	// Circumcircle needs three distinct points; only two exist.
	stream := Arguments(cfg, term.Get(term.KindCircumcircle))
	_, ok := stream.Next()
	assert.False(t, ok)

	// IntersectionOfLines needs lines; none exist.
	stream = Arguments(cfg, term.Get(term.KindIntersectionOfLines))
	_, ok = stream.Next()
	assert.False(t, ok)
}

func TestArgumentStream_SkipsForbidden(t *testing.T) {
	cfg := triangle(t)
	mid := term.Get(term.KindMidpoint)
	args, err := term.Match(mid.Signature(), []*term.Object{cfg.Loose[0], cfg.Loose[1]})
	require.NoError(t, err)
	obj := term.NewConstructed(cfg.NextID(), mid, args, 0)
	cfg, err = cfg.Extend(obj, "M")
	require.NoError(t, err)

	stream := Arguments(cfg, mid)
	var keys []string
	for {
		a, ok := stream.Next()
		if !ok {
			break
		}
		keys = append(keys, term.ArgumentsKey(a))
	}
	// {0,1} is forbidden; pairs with the midpoint (id 3) are new.
	assert.NotContains(t, keys, "({0,1})")
	assert.Len(t, keys, 5)
}

// TestProp_SetParamCounts checks the C(m, n) law: a set parameter of
// multiplicity n over m available objects yields exactly C(m, n)
// distinct sets.
func TestProp_SetParamCounts(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(2, 3).Draw(t, "n")
		extra := rapid.IntRange(0, 3).Draw(t, "extra")

		cfg, err := term.NewConfiguration(term.Quadrilateral, []string{"A", "B", "C", "D"})
		if err != nil {
			t.Fatalf("configuration: %v", err)
		}
		// Grow the point pool with midpoints of the first two points
		// of successive pairs to reach m = 4 + extra points.
		mid := term.Get(term.KindMidpoint)
		pairs := [][2]int{{0, 1}, {0, 2}, {0, 3}}
		for i := 0; i < extra; i++ {
			p := cfg.Find(pairs[i][0])
			q := cfg.Find(pairs[i][1])
			args, err := term.Match(mid.Signature(), []*term.Object{p, q})
			if err != nil {
				t.Fatalf("match: %v", err)
			}
			obj := term.NewConstructed(cfg.NextID(), mid, args, 0)
			cfg, err = cfg.Extend(obj, "")
			if err != nil {
				t.Fatalf("extend: %v", err)
			}
		}

		m := 4 + extra
		var c term.Construction
		if n == 2 {
			c = term.Get(term.KindLineFromPoints)
		} else {
			c = term.Get(term.KindCircumcircle)
		}
		stream := Arguments(cfg, c)
		count := 0
		for {
			if _, ok := stream.Next(); !ok {
				break
			}
			count++
		}
		want := binomial(m, n)
		if count != want {
			t.Fatalf("C(%d,%d): got %d tuples, want %d", m, n, count, want)
		}
	})
}

func binomial(m, n int) int {
	if n > m {
		return 0
	}
	out := 1
	for i := 0; i < n; i++ {
		out = out * (m - i) / (i + 1)
	}
	return out
}

func TestGenerator_IterationBudgetZero(t *testing.T) {
	g, err := New(triangle(t), []term.Construction{term.Get(term.KindMidpoint)}, 0)
	require.NoError(t, err)
	assert.Empty(t, collect(t, g))
}

func TestGenerator_MidpointDepthOne(t *testing.T) {
	// The three midpoint placements are equal up to the triangle's
	// symmetry group, so exactly one configuration is accepted.
	g, err := New(triangle(t), []term.Construction{term.Get(term.KindMidpoint)}, 1)
	require.NoError(t, err)
	candidates := collect(t, g)
	require.Len(t, candidates, 1)
	c := candidates[0]
	assert.Equal(t, 1, c.Depth)
	assert.Len(t, c.Config.Constructed, 1)
	require.NotNil(t, c.Config.LastAdded)
	assert.Equal(t, c.Config.Constructed[0].ID, c.Config.LastAdded.ID)
}

func TestGenerator_MidpointDepthTwo(t *testing.T) {
	// No duplicate canonical keys; the two-midpoint configurations
	// collapse under symmetry to three distinct shapes: two base
	// midpoints, a base midpoint with the midpoint of one of its own
	// endpoints, and a base midpoint with the midpoint to the
	// opposite vertex.
	g, err := New(triangle(t), []term.Construction{term.Get(term.KindMidpoint)}, 2)
	require.NoError(t, err)
	candidates := collect(t, g)

	seen := map[string]bool{}
	perDepth := map[int]int{}
	for _, c := range candidates {
		assert.False(t, seen[c.Key], "duplicate canonical key %s", c.Key)
		seen[c.Key] = true
		perDepth[c.Depth]++
		// Monotonicity: depth d has exactly d constructed objects.
		assert.Len(t, c.Config.Constructed, c.Depth)
	}
	assert.Equal(t, 1, perDepth[1])
	assert.Equal(t, 3, perDepth[2])
}

func TestGenerator_CandidatesAreCanonical(t *testing.T) {
	g, err := New(triangle(t), []term.Construction{
		term.Get(term.KindMidpoint),
		term.Get(term.KindLineFromPoints),
	}, 2)
	require.NoError(t, err)
	for _, c := range collect(t, g) {
		key, _ := term.LeastConfiguration(c.Config)
		assert.Equal(t, c.Key, key)
		assert.Equal(t, key, term.CanonicalString(c.Config, nil))
	}
}

package runner

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnonymousPurplePotato/geogen/pkg/input"
	"github.com/AnonymousPurplePotato/geogen/pkg/picture"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func writeInput(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func runOnce(t *testing.T, opts Options) string {
	t.Helper()
	r, err := New(opts)
	require.NoError(t, err)
	require.NoError(t, r.Run(context.Background()))

	data, err := os.ReadFile(filepath.Join(opts.OutputDir, "triangle.txt"))
	require.NoError(t, err)
	return string(data)
}

func baseOptions(t *testing.T, inputs string) Options {
	return Options{
		InputsDir:  inputs,
		OutputDir:  t.TempDir(),
		Iterations: 1,
		Workers:    1,
		Seed:       1234,
		Logger:     quietLogger(),
	}
}

const triangleMidpoint = `
Triangle A B C
Rules:
Midpoint
`

func TestRun_MidpointTrivialTheorem(t *testing.T) {
	inputs := t.TempDir()
	writeInput(t, inputs, "triangle.txt", triangleMidpoint)

	report := runOnce(t, baseOptions(t, inputs))

	assert.Contains(t, report, "Initial configuration:")
	assert.Contains(t, report, "Triangle A B C")
	assert.Contains(t, report, "Iterations: 1")
	assert.Contains(t, report, "Constructions: Midpoint")
	// The midpoint's defining facts carry the trivial annotation.
	assert.Contains(t, report, "EqualLineSegments")
	assert.Contains(t, report, " - trivial theorem")
	// One generated block: the three midpoint placements collapse
	// under the triangle's symmetry group.
	assert.Equal(t, 1, strings.Count(report, sectionRule))
}

func TestRun_MidsegmentUnannotated(t *testing.T) {
	inputs := t.TempDir()
	writeInput(t, inputs, "triangle.txt", triangleMidpoint)

	opts := baseOptions(t, inputs)
	opts.Iterations = 2
	report := runOnce(t, opts)

	// The two-midpoint configuration yields the midsegment theorem,
	// and it survives every filter.
	require.Contains(t, report, "ParallelLines")
	for _, line := range strings.Split(report, "\n") {
		if strings.Contains(line, "ParallelLines") && !strings.Contains(line, "because of") {
			assert.NotContains(t, line, " - ")
		}
	}
}

func TestRun_IterationBudgetZero(t *testing.T) {
	inputs := t.TempDir()
	writeInput(t, inputs, "triangle.txt", triangleMidpoint)

	opts := baseOptions(t, inputs)
	opts.Iterations = 0
	report := runOnce(t, opts)

	assert.Contains(t, report, "Iterations: 0")
	assert.NotContains(t, report, sectionRule)
}

func TestRun_SeededDeterminism(t *testing.T) {
	// E6: identical seed, one worker, two runs, byte-identical output.
	inputs := t.TempDir()
	writeInput(t, inputs, "triangle.txt", triangleMidpoint)

	opts1 := baseOptions(t, inputs)
	opts1.Iterations = 2
	first := runOnce(t, opts1)

	opts2 := baseOptions(t, inputs)
	opts2.Iterations = 2
	second := runOnce(t, opts2)

	assert.Equal(t, first, second)
}

func TestNew_RejectsSinglePicture(t *testing.T) {
	// E5: one picture is below the hard precondition.
	_, err := New(Options{
		InputsDir: t.TempDir(),
		OutputDir: t.TempDir(),
		Pictures:  1,
		Logger:    quietLogger(),
	})
	assert.ErrorIs(t, err, picture.ErrTooFewPictures)
}

func TestRun_ParseErrorSurfaces(t *testing.T) {
	inputs := t.TempDir()
	writeInput(t, inputs, "bad.txt", "Hexagon A B C\nRules:\n")

	r, err := New(baseOptions(t, inputs))
	require.NoError(t, err)
	err = r.Run(context.Background())
	assert.ErrorIs(t, err, input.ErrParseFailure)
}

func TestNew_TemplateErrorSurfaces(t *testing.T) {
	templates := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(templates, "bad.gt"),
		[]byte("1.\nTriangle A B C\n"), 0o644))

	_, err := New(Options{
		InputsDir:    t.TempDir(),
		TemplatesDir: templates,
		OutputDir:    t.TempDir(),
		Logger:       quietLogger(),
	})
	assert.ErrorIs(t, err, ErrTemplateLoad)
}

func TestRun_TemplateAnnotation(t *testing.T) {
	inputs := t.TempDir()
	writeInput(t, inputs, "triangle.txt", triangleMidpoint)

	templates := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(templates, "midline.gt"), []byte(`
1.
Triangle A B C
M1 = Midpoint({A, B})
M2 = Midpoint({A, C})
Theorem: ParallelLines([M1, M2], [B, C])
`), 0o644))

	opts := baseOptions(t, inputs)
	opts.Iterations = 2
	opts.TemplatesDir = templates
	report := runOnce(t, opts)

	assert.Contains(t, report, "sub-theorem implied from theorem 1 from file midline.gt")
}

func TestRun_OutputNaming(t *testing.T) {
	inputs := t.TempDir()
	writeInput(t, inputs, "triangle.txt", triangleMidpoint)

	opts := baseOptions(t, inputs)
	opts.OutputPrefix = "result-"
	opts.OutputExt = "out"

	r, err := New(opts)
	require.NoError(t, err)
	require.NoError(t, r.Run(context.Background()))

	_, err = os.Stat(filepath.Join(opts.OutputDir, "result-triangle.out"))
	assert.NoError(t, err)
}

func TestRun_DrawWritesSVG(t *testing.T) {
	inputs := t.TempDir()
	writeInput(t, inputs, "triangle.txt", triangleMidpoint)

	opts := baseOptions(t, inputs)
	opts.Draw = true

	r, err := New(opts)
	require.NoError(t, err)
	require.NoError(t, r.Run(context.Background()))

	entries, err := filepath.Glob(filepath.Join(opts.OutputDir, "*.svg"))
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	data, err := os.ReadFile(entries[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
}

func TestRun_ParallelWorkersMatchSequentialSet(t *testing.T) {
	// Worker interleaving may reorder discovery, but the reports sort
	// by generator sequence, so the content matches the
	// single-threaded run for a prune-free catalogue.
	inputs := t.TempDir()
	writeInput(t, inputs, "triangle.txt", triangleMidpoint)

	seq := baseOptions(t, inputs)
	seq.Iterations = 2
	sequential := runOnce(t, seq)

	par := baseOptions(t, inputs)
	par.Iterations = 2
	par.Workers = 4
	parallel := runOnce(t, par)

	assert.Equal(t, sequential, parallel)
}

func TestSettings_Validate(t *testing.T) {
	assert.NoError(t, (&Settings{}).Validate())
	assert.NoError(t, (&Settings{Pictures: 3, Workers: 2}).Validate())
	assert.Error(t, (&Settings{Pictures: 1}).Validate())
	assert.Error(t, (&Settings{Iterations: -1}).Validate())
}

func TestLoadSettings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"iterations: 3\npictures: 4\nworkers: 2\nseed: 99\noutputPrefix: res-\n"), 0o644))

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Iterations)
	assert.Equal(t, 4, s.Pictures)
	assert.Equal(t, 2, s.Workers)
	assert.Equal(t, uint64(99), s.Seed)
	assert.Equal(t, "res-", s.OutputPrefix)

	require.NoError(t, os.WriteFile(path, []byte("pictures: 1\n"), 0o644))
	_, err = LoadSettings(path)
	assert.Error(t, err)
}

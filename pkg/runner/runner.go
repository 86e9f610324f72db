package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/AnonymousPurplePotato/geogen/pkg/draw"
	"github.com/AnonymousPurplePotato/geogen/pkg/filter"
	"github.com/AnonymousPurplePotato/geogen/pkg/finder"
	"github.com/AnonymousPurplePotato/geogen/pkg/gen"
	"github.com/AnonymousPurplePotato/geogen/pkg/input"
	"github.com/AnonymousPurplePotato/geogen/pkg/picture"
	"github.com/AnonymousPurplePotato/geogen/pkg/term"
)

// Defaults for options left zero.
const (
	DefaultAnalysisBudget = 10 * time.Second
	DefaultOutputExt      = "txt"
)

var (
	// ErrTemplateLoad wraps a template-library startup failure.
	ErrTemplateLoad = errors.New("runner: template library failed to load")

	// ErrStartupAnalytic reports that an input's initial configuration
	// could not be realized at startup.
	ErrStartupAnalytic = errors.New("runner: initial configuration could not be realized")
)

// Options configures a run. Zero values take documented defaults.
type Options struct {
	InputsDir    string
	TemplatesDir string
	OutputDir    string

	Iterations int
	Pictures   int
	Workers    int
	Retries    int
	Seed       uint64

	AnalysisBudget time.Duration

	OutputPrefix string
	OutputExt    string

	// Draw renders one SVG per realized configuration next to the
	// report.
	Draw bool

	Logger *log.Logger
}

func (o *Options) normalize() error {
	if o.Pictures == 0 {
		o.Pictures = picture.DefaultCount
	}
	if o.Pictures < 2 {
		return fmt.Errorf("%d pictures: %w", o.Pictures, picture.ErrTooFewPictures)
	}
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.Retries == 0 {
		o.Retries = picture.DefaultRetries
	}
	if o.Seed == 0 {
		o.Seed = uint64(time.Now().UnixNano())
	}
	if o.AnalysisBudget == 0 {
		o.AnalysisBudget = DefaultAnalysisBudget
	}
	if o.OutputExt == "" {
		o.OutputExt = DefaultOutputExt
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	return nil
}

// Runner is the pipeline glue.
type Runner struct {
	opts   Options
	filter *filter.Filter
}

// New validates options and loads the template library.
func New(opts Options) (*Runner, error) {
	if err := opts.normalize(); err != nil {
		return nil, err
	}
	var templates []*filter.Template
	if opts.TemplatesDir != "" {
		var err error
		templates, err = input.LoadTemplates(opts.TemplatesDir)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTemplateLoad, err)
		}
		opts.Logger.Info("template library loaded", "templates", len(templates))
	}
	return &Runner{opts: opts, filter: filter.New(templates)}, nil
}

// Run processes every input and writes one report per input.
func (r *Runner) Run(ctx context.Context) error {
	inputs, err := input.LoadInputs(r.opts.InputsDir)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no inputs in %s", r.opts.InputsDir)
	}
	if err := os.MkdirAll(r.opts.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for _, in := range inputs {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := time.Now()
		if err := r.runInput(ctx, in); err != nil {
			return err
		}
		r.opts.Logger.Info("input processed", "input", in.Name,
			"elapsed", time.Since(start).Round(time.Millisecond))
	}
	return nil
}

// status classifies a generated configuration's analysis outcome.
type status int

const (
	statusAnalyzed status = iota
	statusInconstructible
	statusDuplicate
	statusInconsistent
	statusTimeout
)

// configResult is one generated configuration after analysis.
type configResult struct {
	seq    int
	depth  int
	cfg    *term.Configuration
	key    string
	status status

	witness      *term.Object // inconstructible
	older, newer *term.Object // duplicate

	verdicts []filter.Verdict
	pic      *picture.Picture // one realized picture, for the drawer
}

// runInput processes a single input file end to end.
func (r *Runner) runInput(ctx context.Context, in *input.Input) error {
	logger := r.opts.Logger.With("input", in.Name)

	// The initial configuration must realize; anything else is an
	// analytic fault at startup.
	initKey, _ := term.LeastConfiguration(in.Config)
	initRes, err := picture.Realize(ctx, in.Config, initKey, r.pictureOptions(logger))
	if err != nil {
		return fmt.Errorf("%w: input %s: %v", ErrStartupAnalytic, in.Name, err)
	}
	if initRes.Outcome != picture.Realized {
		return fmt.Errorf("%w: input %s: initial configuration is degenerate", ErrStartupAnalytic, in.Name)
	}
	initialTheorems := finder.Find(in.Config, initRes.Pictures)
	initialVerdicts := r.filter.Classify(in.Config, initRes.Pictures, initialTheorems)

	generator, err := gen.New(in.Config, in.Rules, r.opts.Iterations)
	if err != nil {
		return fmt.Errorf("input %s: %w", in.Name, err)
	}

	var excluded sync.Map
	generator.Skip = func(key string) bool {
		_, ok := excluded.Load(key)
		return ok
	}

	// Single-worker mode runs the pipeline synchronously: analysis
	// outcomes prune the very next expansion, and output is
	// reproducible byte-for-byte under a fixed seed.
	if r.opts.Workers == 1 {
		var collected []*configResult
		for {
			if err := ctx.Err(); err != nil {
				return err
			}
			c, ok := generator.Next()
			if !ok {
				break
			}
			res := r.analyze(ctx, c, logger)
			if res == nil {
				return ctx.Err()
			}
			if res.status != statusAnalyzed {
				excluded.Store(res.key, true)
			}
			collected = append(collected, res)
		}
		return r.writeOutputs(in, initialVerdicts, collected)
	}

	candidates := make(chan *gen.Candidate, 2*r.opts.Workers)
	results := make(chan *configResult, 2*r.opts.Workers)

	eg, egctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		defer close(candidates)
		for {
			c, ok := generator.Next()
			if !ok {
				return nil
			}
			select {
			case candidates <- c:
			case <-egctx.Done():
				return egctx.Err()
			}
		}
	})
	for i := 0; i < r.opts.Workers; i++ {
		eg.Go(func() error {
			for c := range candidates {
				if err := egctx.Err(); err != nil {
					return err
				}
				res := r.analyze(egctx, c, logger)
				if res == nil {
					return egctx.Err()
				}
				if res.status != statusAnalyzed {
					excluded.Store(res.key, true)
				}
				select {
				case results <- res:
				case <-egctx.Done():
					return egctx.Err()
				}
			}
			return nil
		})
	}

	done := make(chan struct{})
	var collected []*configResult
	go func() {
		defer close(done)
		for res := range results {
			collected = append(collected, res)
		}
	}()
	err = eg.Wait()
	close(results)
	<-done
	if err != nil {
		return err
	}

	return r.writeOutputs(in, initialVerdicts, collected)
}

func (r *Runner) pictureOptions(logger *log.Logger) picture.Options {
	return picture.Options{
		Count:   r.opts.Pictures,
		Retries: r.opts.Retries,
		Seed:    r.opts.Seed,
		Logger:  logger,
	}
}

// analyze realizes one generated configuration and runs the theorem
// pipeline over it. A nil result means the surrounding context was
// cancelled.
func (r *Runner) analyze(ctx context.Context, c *gen.Candidate, logger *log.Logger) *configResult {
	res := &configResult{seq: c.Seq, depth: c.Depth, cfg: c.Config, key: c.Key}

	actx, cancel := context.WithTimeout(ctx, r.opts.AnalysisBudget)
	defer cancel()

	realized, err := picture.Realize(actx, c.Config, c.Key, r.pictureOptions(logger))
	switch {
	case err == nil:
	case errors.Is(err, picture.ErrUnresolvedInconsistency):
		logger.Warn("skipping configuration: unresolved inconsistency",
			"config", c.Key, "seq", c.Seq, "seed", r.opts.Seed)
		res.status = statusInconsistent
		return res
	case ctx.Err() != nil:
		// The run itself is shutting down.
		return nil
	case actx.Err() != nil:
		logger.Warn("skipping configuration: analysis timeout",
			"config", c.Key, "seq", c.Seq, "budget", r.opts.AnalysisBudget)
		res.status = statusTimeout
		return res
	default:
		logger.Warn("skipping configuration", "config", c.Key, "seq", c.Seq, "error", err)
		res.status = statusInconsistent
		return res
	}

	switch realized.Outcome {
	case picture.Inconstructible:
		res.status = statusInconstructible
		res.witness = realized.Witness
	case picture.Duplicate:
		res.status = statusDuplicate
		res.older, res.newer = realized.Older, realized.Newer
	default:
		theorems := finder.Find(c.Config, realized.Pictures)
		res.verdicts = r.filter.Classify(c.Config, realized.Pictures, theorems)
		res.pic = realized.Pictures[0]
		if actx.Err() != nil {
			logger.Warn("skipping configuration: analysis timeout",
				"config", c.Key, "seq", c.Seq, "budget", r.opts.AnalysisBudget)
			res.status = statusTimeout
			res.verdicts = nil
			res.pic = nil
		}
	}
	return res
}

// writeOutputs writes the report (and optional drawings) for an input.
func (r *Runner) writeOutputs(in *input.Input, initialVerdicts []filter.Verdict, collected []*configResult) error {
	sortResults(collected)

	path := filepath.Join(r.opts.OutputDir,
		fmt.Sprintf("%s%s.%s", r.opts.OutputPrefix, in.Name, r.opts.OutputExt))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	defer f.Close()
	if err := writeReport(f, in, r.opts.Iterations, initialVerdicts, collected); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}

	if r.opts.Draw {
		for _, res := range collected {
			if res.pic == nil {
				continue
			}
			name := fmt.Sprintf("%s%s-%d.svg", r.opts.OutputPrefix, in.Name, res.seq)
			df, err := os.Create(filepath.Join(r.opts.OutputDir, name))
			if err != nil {
				return fmt.Errorf("creating drawing: %w", err)
			}
			draw.SVG(df, res.cfg, res.pic)
			df.Close()
		}
	}
	return nil
}

func sortResults(results []*configResult) {
	sort.Slice(results, func(i, j int) bool { return results[i].seq < results[j].seq })
}

package cli

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/AnonymousPurplePotato/geogen/pkg/runner"
	"github.com/AnonymousPurplePotato/geogen/pkg/term"
)

// newRunCmd builds the run command carrying the full flag surface.
func newRunCmd() *cobra.Command {
	var (
		inputsDir    string
		templatesDir string
		outputDir    string
		configPath   string
		iterations   int
		pictures     int
		workers      int
		retries      int
		seed         uint64
		budget       time.Duration
		outputPrefix string
		outputExt    string
		drawPictures bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Generate configurations and report their theorems",
		Long: "Generate configurations and report their theorems.\n\nAvailable constructions for input Rules blocks:\n  " +
			strings.Join(term.ConstructionNames(), "\n  "),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			opts := runner.Options{
				InputsDir:      inputsDir,
				TemplatesDir:   templatesDir,
				OutputDir:      outputDir,
				Iterations:     iterations,
				Pictures:       pictures,
				Workers:        workers,
				Retries:        retries,
				Seed:           seed,
				AnalysisBudget: budget,
				OutputPrefix:   outputPrefix,
				OutputExt:      outputExt,
				Draw:           drawPictures,
				Logger:         logger,
			}

			// A settings file supplies defaults; explicit flags win.
			if configPath != "" {
				settings, err := runner.LoadSettings(configPath)
				if err != nil {
					return err
				}
				applySettings(cmd, settings, &opts)
			}

			r, err := runner.New(opts)
			if err != nil {
				return err
			}
			return r.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&inputsDir, "inputs", "", "directory of generator input files (required)")
	cmd.Flags().StringVar(&templatesDir, "templates", "", "directory of template theorem files")
	cmd.Flags().StringVar(&outputDir, "output", ".", "output directory for reports")
	cmd.Flags().StringVar(&configPath, "config", "", "optional YAML settings file with run defaults")
	cmd.Flags().IntVar(&iterations, "iterations", 1, "construction depth budget")
	cmd.Flags().IntVar(&pictures, "pictures", 0, "pictures per configuration (default 5, minimum 2)")
	cmd.Flags().IntVar(&workers, "workers", 0, "analysis workers (default: available cores)")
	cmd.Flags().IntVar(&retries, "retries", 0, "picture rebuilds under inconsistency (default 5)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "master seed (0 derives one from the clock)")
	cmd.Flags().DurationVar(&budget, "analysis-budget", 0, "soft wall-clock budget per configuration (default 10s)")
	cmd.Flags().StringVar(&outputPrefix, "output-prefix", "", "output file name prefix")
	cmd.Flags().StringVar(&outputExt, "output-ext", "", "output file extension (default txt)")
	cmd.Flags().BoolVar(&drawPictures, "draw", false, "render one SVG picture per realized configuration")
	_ = cmd.MarkFlagRequired("inputs")

	return cmd
}

// applySettings copies settings into options for every flag the user
// did not set explicitly.
func applySettings(cmd *cobra.Command, s *runner.Settings, opts *runner.Options) {
	if !cmd.Flags().Changed("iterations") && s.Iterations > 0 {
		opts.Iterations = s.Iterations
	}
	if !cmd.Flags().Changed("pictures") && s.Pictures > 0 {
		opts.Pictures = s.Pictures
	}
	if !cmd.Flags().Changed("workers") && s.Workers > 0 {
		opts.Workers = s.Workers
	}
	if !cmd.Flags().Changed("retries") && s.Retries > 0 {
		opts.Retries = s.Retries
	}
	if !cmd.Flags().Changed("seed") && s.Seed != 0 {
		opts.Seed = s.Seed
	}
	if !cmd.Flags().Changed("analysis-budget") && s.AnalysisBudget > 0 {
		opts.AnalysisBudget = s.AnalysisBudget
	}
	if !cmd.Flags().Changed("output-prefix") && s.OutputPrefix != "" {
		opts.OutputPrefix = s.OutputPrefix
	}
	if !cmd.Flags().Changed("output-ext") && s.OutputExt != "" {
		opts.OutputExt = s.OutputExt
	}
	if !cmd.Flags().Changed("draw") && s.Draw {
		opts.Draw = true
	}
}

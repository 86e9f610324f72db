package runner

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings is the optional YAML settings file supplying defaults for
// the run flags.
type Settings struct {
	// Iterations is the construction depth budget.
	Iterations int `yaml:"iterations"`

	// Pictures is the picture-set size (at least 2).
	Pictures int `yaml:"pictures"`

	// Workers sizes the analysis pool. Zero means the host
	// parallelism.
	Workers int `yaml:"workers"`

	// Seed fixes the master seed. Zero derives one from the clock.
	Seed uint64 `yaml:"seed"`

	// Retries bounds picture rebuilds under inconsistency.
	Retries int `yaml:"retries"`

	// AnalysisBudget is the soft wall-clock budget per configuration.
	AnalysisBudget time.Duration `yaml:"analysisBudget"`

	// OutputPrefix and OutputExt shape output file names.
	OutputPrefix string `yaml:"outputPrefix"`
	OutputExt    string `yaml:"outputExt"`

	// Draw renders one SVG picture per realized configuration.
	Draw bool `yaml:"draw"`
}

// LoadSettings reads and validates a settings file.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing settings %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("settings %s: %w", path, err)
	}
	return &s, nil
}

// Validate checks ranges. Zero values mean "use the default" and pass.
func (s *Settings) Validate() error {
	if s.Iterations < 0 {
		return errors.New("iterations must be non-negative")
	}
	if s.Pictures == 1 {
		return errors.New("pictures must be at least 2")
	}
	if s.Pictures < 0 || s.Workers < 0 || s.Retries < 0 {
		return errors.New("pictures, workers and retries must be non-negative")
	}
	if s.AnalysisBudget < 0 {
		return errors.New("analysisBudget must be non-negative")
	}
	return nil
}

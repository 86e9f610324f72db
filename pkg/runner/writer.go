package runner

import (
	"fmt"
	"io"
	"strings"

	"github.com/AnonymousPurplePotato/geogen/pkg/filter"
	"github.com/AnonymousPurplePotato/geogen/pkg/input"
	"github.com/AnonymousPurplePotato/geogen/pkg/term"
)

// sectionRule separates result blocks.
var sectionRule = strings.Repeat("-", 48)

// writeReport renders the plain-text report: the initial configuration
// with its theorems, the run parameters, then one numbered block per
// generated configuration.
func writeReport(w io.Writer, in *input.Input, iterations int, initialVerdicts []filter.Verdict, results []*configResult) error {
	var sb strings.Builder

	sb.WriteString("Initial configuration:\n")
	writeConfiguration(&sb, in.Config)
	sb.WriteString("\nTheorems:\n")
	writeVerdicts(&sb, in.Config, initialVerdicts)

	sb.WriteString(fmt.Sprintf("\nIterations: %d\n", iterations))
	names := make([]string, len(in.Rules))
	for i, c := range in.Rules {
		names[i] = c.Name()
	}
	sb.WriteString(fmt.Sprintf("Constructions: %s\n", strings.Join(names, ", ")))

	for i, res := range results {
		sb.WriteString("\n")
		sb.WriteString(sectionRule)
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%d.\n", i+1))
		writeConfiguration(&sb, res.cfg)
		sb.WriteString("\n")

		switch res.status {
		case statusAnalyzed:
			writeVerdicts(&sb, res.cfg, res.verdicts)
		case statusInconstructible:
			sb.WriteString(fmt.Sprintf("inconstructible object %s\n", res.cfg.NameOf(res.witness)))
		case statusDuplicate:
			sb.WriteString(fmt.Sprintf("duplicate object: %s coincides with %s\n",
				res.cfg.NameOf(res.newer), res.cfg.NameOf(res.older)))
		case statusInconsistent:
			sb.WriteString("skipped: unresolved inconsistency\n")
		case statusTimeout:
			sb.WriteString("skipped: analysis timeout\n")
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// writeConfiguration renders the layout line and the constructed
// objects in input syntax.
func writeConfiguration(sb *strings.Builder, cfg *term.Configuration) {
	names := make([]string, len(cfg.Loose))
	for i, o := range cfg.Loose {
		names[i] = cfg.NameOf(o)
	}
	sb.WriteString(cfg.Layout.String())
	sb.WriteString(" ")
	sb.WriteString(strings.Join(names, " "))
	sb.WriteString("\n")
	for _, o := range cfg.Constructed {
		sb.WriteString(fmt.Sprintf("%s = %s%s\n", cfg.NameOf(o), o.Construction.Name(), formatArgs(cfg, o.Args)))
	}
}

func formatArgs(cfg *term.Configuration, args term.ArgList) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = formatArgument(cfg, a)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func formatArgument(cfg *term.Configuration, a term.Argument) string {
	switch a := a.(type) {
	case term.ObjectArg:
		return cfg.NameOf(a.Obj)
	case term.SetArg:
		parts := make([]string, len(a.Items))
		for i, item := range a.Items {
			parts[i] = formatArgument(cfg, item)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return "?"
	}
}

// writeVerdicts renders the numbered theorem lines with their
// classification annotations.
func writeVerdicts(sb *strings.Builder, cfg *term.Configuration, verdicts []filter.Verdict) {
	if len(verdicts) == 0 {
		sb.WriteString(" (none)\n")
		return
	}
	for i, v := range verdicts {
		line := fmt.Sprintf(" %2d. %s", i+1, v.Theorem.Format(cfg))
		switch v.Class {
		case filter.Trivial:
			line += " - trivial theorem"
		case filter.SubTheorem:
			line += fmt.Sprintf(" - sub-theorem implied from theorem %d from file %s",
				v.TemplateID, v.TemplateFile)
		case filter.SimplerDefinable:
			line += " - can be defined in a simpler configuration"
		case filter.Transitive:
			line += fmt.Sprintf(" - is true because of %s and %s",
				v.Fact1.Format(cfg), v.Fact2.Format(cfg))
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
}

package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/AnonymousPurplePotato/geogen/pkg/term"
)

// Input is one parsed generator input: the initial configuration and
// the constructions allowed during generation.
type Input struct {
	// Name identifies the input; for files, the base name without
	// extension. It names the output file.
	Name   string
	Config *term.Configuration
	Rules  []term.Construction
}

// LoadInputs parses every regular file in dir, sorted by name.
func LoadInputs(dir string) ([]*Input, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory: %w", err)
	}
	var inputs []*Input
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		in, err := ParseInput(f, entry.Name())
		f.Close()
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, in)
	}
	sort.Slice(inputs, func(i, j int) bool { return inputs[i].Name < inputs[j].Name })
	return inputs, nil
}

// ParseInput parses one generator input: a layout declaration, the
// initial constructed objects, and a Rules: block.
func ParseInput(r io.Reader, file string) (*Input, error) {
	p := newParser(r, file)

	cfg, names, err := p.parseHeader()
	if err != nil {
		return nil, err
	}

	inRules := false
	var rules []term.Construction
	seenRules := make(map[string]bool)
	for p.scan() {
		line := p.text()
		if line == "" {
			continue
		}
		if line == "Rules:" {
			if inRules {
				return nil, parseErrorf(file, p.line, 1, "duplicate Rules: block")
			}
			inRules = true
			continue
		}
		if inRules {
			for _, name := range strings.Fields(line) {
				c, ok := term.LookupConstruction(name)
				if !ok {
					return nil, parseErrorf(file, p.line, strings.Index(line, name)+1,
						"unknown construction %q", name)
				}
				if seenRules[name] {
					continue
				}
				seenRules[name] = true
				rules = append(rules, c)
			}
			continue
		}
		cfg, err = p.parseConstructed(cfg, names, line)
		if err != nil {
			return nil, err
		}
	}
	if err := p.err(); err != nil {
		return nil, err
	}
	if !inRules {
		return nil, parseErrorf(file, p.line, 1, "missing Rules: block")
	}

	name := strings.TrimSuffix(file, filepath.Ext(file))
	return &Input{Name: name, Config: cfg, Rules: rules}, nil
}

// parser wraps a scanner with line accounting and comment stripping.
type parser struct {
	file    string
	scanner *bufio.Scanner
	line    int
	current string
}

func newParser(r io.Reader, file string) *parser {
	return &parser{file: file, scanner: bufio.NewScanner(r)}
}

func (p *parser) scan() bool {
	if !p.scanner.Scan() {
		return false
	}
	p.line++
	text := p.scanner.Text()
	if i := strings.Index(text, "#"); i >= 0 {
		text = text[:i]
	}
	p.current = strings.TrimSpace(text)
	return true
}

func (p *parser) text() string { return p.current }

func (p *parser) err() error {
	if err := p.scanner.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", p.file, err)
	}
	return nil
}

// parseHeader reads the layout declaration: the layout tag followed by
// the loose-object identifiers.
func (p *parser) parseHeader() (*term.Configuration, map[string]*term.Object, error) {
	for p.scan() {
		line := p.text()
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		layout, ok := term.ParseLayout(fields[0])
		if !ok {
			return nil, nil, parseErrorf(p.file, p.line, 1, "unknown layout %q", fields[0])
		}
		looseNames := fields[1:]
		cfg, err := term.NewConfiguration(layout, looseNames)
		if err != nil {
			return nil, nil, parseErrorf(p.file, p.line, len(fields[0])+2, "%v", err)
		}
		names := make(map[string]*term.Object, len(looseNames))
		for i, n := range looseNames {
			if _, dup := names[n]; dup {
				return nil, nil, parseErrorf(p.file, p.line, strings.Index(line, n)+1,
					"duplicate identifier %q", n)
			}
			names[n] = cfg.Loose[i]
		}
		return cfg, names, nil
	}
	if err := p.err(); err != nil {
		return nil, nil, err
	}
	return nil, nil, parseErrorf(p.file, p.line, 1, "missing layout declaration")
}

// parseConstructed reads one `<id> = <Name>(<arg>, ...)` line and
// extends the configuration.
func (p *parser) parseConstructed(cfg *term.Configuration, names map[string]*term.Object, line string) (*term.Configuration, error) {
	eq := strings.Index(line, "=")
	if eq < 0 {
		return nil, parseErrorf(p.file, p.line, 1, "expected `<id> = <Construction>(...)`, got %q", line)
	}
	id := strings.TrimSpace(line[:eq])
	if id == "" {
		return nil, parseErrorf(p.file, p.line, 1, "empty identifier")
	}
	if _, dup := names[id]; dup {
		return nil, parseErrorf(p.file, p.line, 1, "duplicate identifier %q", id)
	}

	expr := strings.TrimSpace(line[eq+1:])
	open := strings.Index(expr, "(")
	if open < 0 || !strings.HasSuffix(expr, ")") {
		return nil, parseErrorf(p.file, p.line, eq+2, "expected `<Construction>(...)`, got %q", expr)
	}
	cname := strings.TrimSpace(expr[:open])
	construction, ok := term.LookupConstruction(cname)
	if !ok {
		return nil, parseErrorf(p.file, p.line, eq+2, "unknown construction %q", cname)
	}

	flat, err := p.parseFlatArgs(expr[open+1:len(expr)-1], names, eq+2+open)
	if err != nil {
		return nil, err
	}
	args, err := term.Match(construction.Signature(), flat)
	if err != nil {
		return nil, parseErrorf(p.file, p.line, eq+2, "%s: %v", cname, err)
	}

	obj := term.NewConstructed(cfg.NextID(), construction, args, 0)
	next, err := cfg.Extend(obj, id)
	if err != nil {
		return nil, parseErrorf(p.file, p.line, 1, "%v", err)
	}
	names[id] = obj
	return next, nil
}

// parseFlatArgs flattens an argument expression (identifiers and {...}
// sets, possibly nested) into the object list in written order. The
// signature match re-imposes the tree shape.
func (p *parser) parseFlatArgs(s string, names map[string]*term.Object, col int) ([]*term.Object, error) {
	var out []*term.Object
	for _, part := range splitTop(s) {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, parseErrorf(p.file, p.line, col, "empty argument")
		}
		if strings.HasPrefix(part, "{") {
			if !strings.HasSuffix(part, "}") {
				return nil, parseErrorf(p.file, p.line, col, "unterminated set %q", part)
			}
			inner, err := p.parseFlatArgs(part[1:len(part)-1], names, col)
			if err != nil {
				return nil, err
			}
			out = append(out, inner...)
			continue
		}
		obj, ok := names[part]
		if !ok {
			return nil, parseErrorf(p.file, p.line, col, "unknown identifier %q", part)
		}
		out = append(out, obj)
	}
	return out, nil
}

// splitTop splits on commas not nested inside (), {}, [] or <>.
func splitTop(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '(', '{', '[', '<':
			depth++
		case ')', '}', ']', '>':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	if strings.TrimSpace(s[start:]) != "" || len(parts) > 0 {
		parts = append(parts, s[start:])
	}
	return parts
}

package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/AnonymousPurplePotato/geogen/pkg/filter"
	"github.com/AnonymousPurplePotato/geogen/pkg/term"
)

var blockHeader = regexp.MustCompile(`^(\d+)\.$`)

// LoadTemplates parses every file in the template directory. Each file
// holds one or more numbered blocks; any malformed block fails the
// whole load (templates abort startup).
func LoadTemplates(dir string) ([]*filter.Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading template directory: %w", err)
	}
	var templates []*filter.Template
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	for _, name := range names {
		path := filepath.Join(dir, name)
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		parsed, err := ParseTemplates(f, name)
		f.Close()
		if err != nil {
			return nil, err
		}
		templates = append(templates, parsed...)
	}
	return templates, nil
}

// ParseTemplates parses the numbered template blocks of one file.
func ParseTemplates(r io.Reader, file string) ([]*filter.Template, error) {
	type rawBlock struct {
		id        int
		startLine int
		lines     []string
		lineNos   []int
	}

	var blocks []*rawBlock
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := scanner.Text()
		if i := strings.Index(text, "#"); i >= 0 {
			text = text[:i]
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if m := blockHeader.FindStringSubmatch(text); m != nil {
			id, _ := strconv.Atoi(m[1])
			blocks = append(blocks, &rawBlock{id: id, startLine: lineNo})
			continue
		}
		if len(blocks) == 0 {
			return nil, parseErrorf(file, lineNo, 1, "content before the first numbered block")
		}
		last := blocks[len(blocks)-1]
		last.lines = append(last.lines, text)
		last.lineNos = append(last.lineNos, lineNo)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", file, err)
	}
	if len(blocks) == 0 {
		return nil, parseErrorf(file, lineNo, 1, "no template blocks")
	}

	var templates []*filter.Template
	for _, b := range blocks {
		tpl, err := parseTemplateBlock(file, b.id, b.lines, b.lineNos)
		if err != nil {
			return nil, err
		}
		templates = append(templates, tpl)
	}
	return templates, nil
}

func parseTemplateBlock(file string, id int, lines []string, lineNos []int) (*filter.Template, error) {
	if len(lines) < 2 {
		firstLine := 1
		if len(lineNos) > 0 {
			firstLine = lineNos[0]
		}
		return nil, parseErrorf(file, firstLine, 1, "block %d: need a layout line and a theorem line", id)
	}

	p := &parser{file: file, line: lineNos[0]}

	// Layout declaration.
	fields := strings.Fields(lines[0])
	layout, ok := term.ParseLayout(fields[0])
	if !ok {
		return nil, parseErrorf(file, lineNos[0], 1, "unknown layout %q", fields[0])
	}
	cfg, err := term.NewConfiguration(layout, fields[1:])
	if err != nil {
		return nil, parseErrorf(file, lineNos[0], 1, "%v", err)
	}
	names := make(map[string]*term.Object, len(fields)-1)
	for i, n := range fields[1:] {
		names[n] = cfg.Loose[i]
	}

	// Constructed objects up to the theorem line.
	theoremIdx := -1
	for i := 1; i < len(lines); i++ {
		p.line = lineNos[i]
		if strings.HasPrefix(lines[i], "Theorem:") {
			theoremIdx = i
			break
		}
		cfg, err = p.parseConstructed(cfg, names, lines[i])
		if err != nil {
			return nil, err
		}
	}
	if theoremIdx < 0 {
		return nil, parseErrorf(file, lineNos[len(lineNos)-1], 1, "block %d: missing Theorem: line", id)
	}
	if theoremIdx != len(lines)-1 {
		return nil, parseErrorf(file, lineNos[theoremIdx+1], 1, "block %d: content after the theorem", id)
	}

	theorem, err := parseTheorem(file, lineNos[theoremIdx],
		strings.TrimSpace(strings.TrimPrefix(lines[theoremIdx], "Theorem:")), names)
	if err != nil {
		return nil, err
	}
	return &filter.Template{ID: id, File: file, Config: cfg, Theorem: theorem}, nil
}

// parseTheorem reads `<Type>(<object>, ...)`.
func parseTheorem(file string, line int, s string, names map[string]*term.Object) (term.Theorem, error) {
	open := strings.Index(s, "(")
	if open < 0 || !strings.HasSuffix(s, ")") {
		return term.Theorem{}, parseErrorf(file, line, 1, "expected `<Type>(...)`, got %q", s)
	}
	typ, ok := term.ParseTheoremType(strings.TrimSpace(s[:open]))
	if !ok {
		return term.Theorem{}, parseErrorf(file, line, 1, "unknown theorem type %q", s[:open])
	}
	var objs []term.TheoremObject
	for _, part := range splitTop(s[open+1 : len(s)-1]) {
		o, err := parseTheoremObject(file, line, strings.TrimSpace(part), names)
		if err != nil {
			return term.Theorem{}, err
		}
		objs = append(objs, o)
	}
	if len(objs) == 0 {
		return term.Theorem{}, parseErrorf(file, line, 1, "theorem without objects")
	}
	return term.NewTheorem(typ, objs...), nil
}

// parseTheoremObject reads one theorem object:
//
//	A        object by identifier
//	A-B      line segment between two points
//	[A, B]   line through two points
//	[A,B,C]  circle through three points
//	<x, y>   angle between two lines (each a line reference)
func parseTheoremObject(file string, line int, s string, names map[string]*term.Object) (term.TheoremObject, error) {
	switch {
	case strings.HasPrefix(s, "<") && strings.HasSuffix(s, ">"):
		parts := splitTop(s[1 : len(s)-1])
		if len(parts) != 2 {
			return term.TheoremObject{}, parseErrorf(file, line, 1, "angle needs two lines, got %q", s)
		}
		l1, err := parseLineRef(file, line, strings.TrimSpace(parts[0]), names)
		if err != nil {
			return term.TheoremObject{}, err
		}
		l2, err := parseLineRef(file, line, strings.TrimSpace(parts[1]), names)
		if err != nil {
			return term.TheoremObject{}, err
		}
		return term.AngleOf(l1, l2), nil

	case strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]"):
		pts, err := resolvePoints(file, line, s, names)
		if err != nil {
			return term.TheoremObject{}, err
		}
		switch len(pts) {
		case 2:
			return term.LineByPoints(pts[0], pts[1]), nil
		case 3:
			return term.CircleByPoints(pts[0], pts[1], pts[2]), nil
		default:
			return term.TheoremObject{}, parseErrorf(file, line, 1,
				"%q: two points define a line, three a circle", s)
		}

	case strings.Contains(s, "-"):
		halves := strings.SplitN(s, "-", 2)
		a, err := resolvePoint(file, line, strings.TrimSpace(halves[0]), names)
		if err != nil {
			return term.TheoremObject{}, err
		}
		b, err := resolvePoint(file, line, strings.TrimSpace(halves[1]), names)
		if err != nil {
			return term.TheoremObject{}, err
		}
		return term.SegmentOf(a, b), nil

	default:
		obj, ok := names[s]
		if !ok {
			return term.TheoremObject{}, parseErrorf(file, line, 1, "unknown identifier %q", s)
		}
		switch obj.Type {
		case term.Point:
			return term.PointByObject(obj), nil
		case term.Line:
			return term.LineByObject(obj), nil
		default:
			return term.CircleByObject(obj), nil
		}
	}
}

func parseLineRef(file string, line int, s string, names map[string]*term.Object) (term.TheoremObject, error) {
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		pts, err := resolvePoints(file, line, s, names)
		if err != nil {
			return term.TheoremObject{}, err
		}
		if len(pts) != 2 {
			return term.TheoremObject{}, parseErrorf(file, line, 1, "line needs two points, got %q", s)
		}
		return term.LineByPoints(pts[0], pts[1]), nil
	}
	obj, ok := names[s]
	if !ok || obj.Type != term.Line {
		return term.TheoremObject{}, parseErrorf(file, line, 1, "%q is not a line", s)
	}
	return term.LineByObject(obj), nil
}

func resolvePoints(file string, line int, bracketed string, names map[string]*term.Object) ([]*term.Object, error) {
	var out []*term.Object
	for _, part := range splitTop(bracketed[1 : len(bracketed)-1]) {
		p, err := resolvePoint(file, line, strings.TrimSpace(part), names)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func resolvePoint(file string, line int, name string, names map[string]*term.Object) (*term.Object, error) {
	obj, ok := names[name]
	if !ok {
		return nil, parseErrorf(file, line, 1, "unknown identifier %q", name)
	}
	if obj.Type != term.Point {
		return nil, parseErrorf(file, line, 1, "%q is not a point", name)
	}
	return obj, nil
}

package term

import "fmt"

// Construction is the closed sum of predefined operations and composed
// (macro) constructions. Both expose a name, an ordered parameter list
// and the type of the produced object.
type Construction interface {
	Name() string
	Signature() []Parameter
	OutputType() ObjectType
}

// ConstructionKind enumerates the predefined constructions.
type ConstructionKind int

const (
	KindMidpoint ConstructionKind = iota
	KindLineFromPoints
	KindIntersectionOfLines
	KindCircumcircle
	KindCircleWithCenterThroughPoint
	KindPerpendicularLine
	KindParallelLine
	KindPerpendicularProjection
	KindPerpendicularBisector
	KindInternalAngleBisector
	KindSecondIntersectionOfLineAndCircle

	numConstructionKinds
)

// Predefined is a named predefined construction.
type Predefined struct {
	Kind ConstructionKind

	name   string
	sig    []Parameter
	output ObjectType
}

// Name implements Construction.
func (p *Predefined) Name() string { return p.name }

// Signature implements Construction.
func (p *Predefined) Signature() []Parameter { return p.sig }

// OutputType implements Construction.
func (p *Predefined) OutputType() ObjectType { return p.output }

// predefinedTable is the immutable registry of predefined
// constructions, indexed by kind. Built once at package init.
var predefinedTable = buildPredefined()

func buildPredefined() [numConstructionKinds]*Predefined {
	pointPair := SetParam{Inner: ObjectParam{Type: Point}, Count: 2}
	pointTriple := SetParam{Inner: ObjectParam{Type: Point}, Count: 3}
	linePair := SetParam{Inner: ObjectParam{Type: Line}, Count: 2}

	var table [numConstructionKinds]*Predefined
	add := func(kind ConstructionKind, name string, output ObjectType, sig ...Parameter) {
		table[kind] = &Predefined{Kind: kind, name: name, sig: sig, output: output}
	}

	add(KindMidpoint, "Midpoint", Point, pointPair)
	add(KindLineFromPoints, "LineFromPoints", Line, pointPair)
	add(KindIntersectionOfLines, "IntersectionOfLines", Point, linePair)
	add(KindCircumcircle, "Circumcircle", Circle, pointTriple)
	add(KindCircleWithCenterThroughPoint, "CircleWithCenterThroughPoint", Circle,
		ObjectParam{Type: Point}, ObjectParam{Type: Point})
	add(KindPerpendicularLine, "PerpendicularLine", Line,
		ObjectParam{Type: Point}, ObjectParam{Type: Line})
	add(KindParallelLine, "ParallelLine", Line,
		ObjectParam{Type: Point}, ObjectParam{Type: Line})
	add(KindPerpendicularProjection, "PerpendicularProjection", Point,
		ObjectParam{Type: Point}, ObjectParam{Type: Line})
	add(KindPerpendicularBisector, "PerpendicularBisector", Line, pointPair)
	add(KindInternalAngleBisector, "InternalAngleBisector", Line,
		ObjectParam{Type: Point}, pointPair)
	add(KindSecondIntersectionOfLineAndCircle, "SecondIntersectionOfLineAndCircle", Point,
		ObjectParam{Type: Point}, ObjectParam{Type: Line}, ObjectParam{Type: Circle})
	return table
}

// Get returns the predefined construction of the given kind.
func Get(kind ConstructionKind) *Predefined {
	return predefinedTable[kind]
}

// LookupConstruction resolves a predefined construction by name.
func LookupConstruction(name string) (*Predefined, bool) {
	for _, p := range predefinedTable {
		if p.name == name {
			return p, true
		}
	}
	return nil, false
}

// ConstructionNames returns the names of all predefined constructions,
// in kind order.
func ConstructionNames() []string {
	names := make([]string, 0, len(predefinedTable))
	for _, p := range predefinedTable {
		names = append(names, p.name)
	}
	return names
}

// Composed is a user-defined construction: a sub-configuration whose
// last constructed object is the output. Its parameters are the loose
// objects of that configuration, in order. Evaluation inlines the
// configuration's steps into the caller under a local identifier
// remap; pictures never recurse into a fresh picture set for it.
type Composed struct {
	name   string
	Config *Configuration
	sig    []Parameter
}

// NewComposed wraps a configuration as a construction. The
// configuration must have at least one constructed object.
func NewComposed(name string, cfg *Configuration) (*Composed, error) {
	if len(cfg.Constructed) == 0 {
		return nil, fmt.Errorf("composed construction %q has no output object", name)
	}
	sig := make([]Parameter, len(cfg.Loose))
	for i, o := range cfg.Loose {
		sig[i] = ObjectParam{Type: o.Type}
	}
	return &Composed{name: name, Config: cfg, sig: sig}, nil
}

// Name implements Construction.
func (c *Composed) Name() string { return c.name }

// Signature implements Construction.
func (c *Composed) Signature() []Parameter { return c.sig }

// OutputType implements Construction.
func (c *Composed) OutputType() ObjectType {
	return c.Output().Type
}

// Output returns the configuration object the composed construction
// produces: the last constructed object of its configuration.
func (c *Composed) Output() *Object {
	return c.Config.Constructed[len(c.Config.Constructed)-1]
}

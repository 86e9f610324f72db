package term

import (
	"fmt"
)

// LooseHolder is the tuple of loose objects together with the layout
// tag that fixes their geometric meaning and symmetry group.
type LooseHolder struct {
	Layout Layout
	Loose  []*Object
}

// Configuration is an ordered list of constructed objects preceded by
// its loose-object holder. Every argument of a constructed object
// refers to an earlier object, so the list is topologically ordered.
//
// Names carries display names keyed by object identifier. It plays no
// part in identity or canonicalization; it only feeds the report
// writer and the drawer.
type Configuration struct {
	LooseHolder
	Constructed []*Object
	LastAdded   *Object
	Names       map[int]string
}

// NewConfiguration creates a configuration holding only the loose
// objects of the given layout, with identifiers 0..n-1 and the given
// display names.
func NewConfiguration(layout Layout, names []string) (*Configuration, error) {
	types := layout.LooseTypes()
	if len(names) != len(types) {
		return nil, fmt.Errorf("layout %s needs %d loose objects, got %d names",
			layout, len(types), len(names))
	}
	cfg := &Configuration{
		LooseHolder: LooseHolder{Layout: layout},
		Names:       make(map[int]string, len(types)),
	}
	for i, t := range types {
		obj := NewLoose(i, t)
		cfg.Loose = append(cfg.Loose, obj)
		cfg.Names[obj.ID] = names[i]
	}
	return cfg, nil
}

// Objects returns the loose objects followed by the constructed ones.
func (c *Configuration) Objects() []*Object {
	out := make([]*Object, 0, len(c.Loose)+len(c.Constructed))
	out = append(out, c.Loose...)
	out = append(out, c.Constructed...)
	return out
}

// ObjectsOfType returns the objects of type t in configuration order.
func (c *Configuration) ObjectsOfType(t ObjectType) []*Object {
	var out []*Object
	for _, o := range c.Objects() {
		if o.Type == t {
			out = append(out, o)
		}
	}
	return out
}

// Find returns the object with the given identifier, or nil.
func (c *Configuration) Find(id int) *Object {
	for _, o := range c.Objects() {
		if o.ID == id {
			return o
		}
	}
	return nil
}

// NextID returns the identifier the next constructed object receives.
func (c *Configuration) NextID() int {
	return len(c.Loose) + len(c.Constructed)
}

// Extend returns a new configuration with o appended as the last
// constructed object. Every object mentioned by o's arguments must
// already be part of the configuration.
func (c *Configuration) Extend(o *Object, name string) (*Configuration, error) {
	for _, dep := range o.Args.Objects() {
		if c.Find(dep.ID) == nil {
			return nil, fmt.Errorf("object %d argument refers to unknown object %d", o.ID, dep.ID)
		}
	}
	names := make(map[int]string, len(c.Names)+1)
	for id, n := range c.Names {
		names[id] = n
	}
	if name != "" {
		names[o.ID] = name
	}
	next := &Configuration{
		LooseHolder: c.LooseHolder,
		Constructed: append(append([]*Object{}, c.Constructed...), o),
		LastAdded:   o,
		Names:       names,
	}
	return next, nil
}

// NameOf returns the display name of o, falling back to an
// identifier-derived name for objects that never got one.
func (c *Configuration) NameOf(o *Object) string {
	if n, ok := c.Names[o.ID]; ok {
		return n
	}
	return fmt.Sprintf("x%d", o.ID)
}

// ForbiddenArguments returns the canonical argument strings already
// used with the named construction anywhere in the configuration. The
// argument generator consults it so existing objects are not rebuilt.
func (c *Configuration) ForbiddenArguments(construction string) map[string]bool {
	out := make(map[string]bool)
	for _, o := range c.Constructed {
		if o.Construction.Name() == construction {
			out[argListString(o.Args, nil, nil)] = true
		}
	}
	return out
}

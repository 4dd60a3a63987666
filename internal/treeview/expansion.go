// Package treeview renders an element tree as a collapsible outline, either
// as indented text or as HTML built with gomponents.
//
// Expansion state is keyed by element name, so every element sharing a name
// opens and closes together. The state belongs to the caller and is passed
// to each render; this package keeps none of its own.
package treeview

import "sort"

// Expansion records which element names are expanded. A nil *Expansion can
// be read and reports everything collapsed. It is not safe for concurrent
// mutation.
type Expansion struct {
	all   bool
	names map[string]bool
}

// NewExpansion returns a state with the given names expanded.
func NewExpansion(names ...string) *Expansion {
	e := &Expansion{names: make(map[string]bool, len(names))}
	for _, n := range names {
		e.names[n] = true
	}
	return e
}

// Expanded reports whether elements called name are expanded.
func (e *Expansion) Expanded(name string) bool {
	if e == nil {
		return false
	}
	if open, ok := e.names[name]; ok {
		return open
	}
	return e.all
}

// Toggle flips the state of name and returns the new state.
func (e *Expansion) Toggle(name string) bool {
	open := !e.Expanded(name)
	e.Set(name, open)
	return open
}

// Set forces the state of name.
func (e *Expansion) Set(name string, open bool) {
	if e.names == nil {
		e.names = make(map[string]bool)
	}
	e.names[name] = open
}

// ExpandAll sets the default for names without an explicit state and clears
// the explicit ones.
func (e *Expansion) ExpandAll(open bool) {
	e.all = open
	e.names = make(map[string]bool)
}

// Names returns the explicitly expanded names, sorted.
func (e *Expansion) Names() []string {
	if e == nil {
		return nil
	}
	var out []string
	for n, open := range e.names {
		if open {
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}

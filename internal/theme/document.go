package theme

import (
	"sort"
	"strings"
	"sync"
)

// Names the applier writes into a document.
const (
	StyleBlockID    = "theme-override-style"
	AttrTheme       = "data-theme"
	ClassTransition = "theme-transition"
)

// Document is the mutable page surface themes are written to: root custom
// properties, body attributes and classes, and named style blocks.
type Document interface {
	SetRootProperty(name, value string)
	SetBodyAttr(name, value string)
	RemoveBodyAttr(name string)
	AddBodyClass(class string)
	RemoveBodyClass(class string)
	SetStyleBlock(id, css string)
	RemoveStyleBlock(id string)
}

// Sheet is an in-memory Document. The web client keeps one per session and
// renders it into every page; the terminal client reads its root properties.
type Sheet struct {
	mu        sync.RWMutex
	root      map[string]string
	attrs     map[string]string
	classes   map[string]struct{}
	blocks    map[string]string
	mutations int
}

// NewSheet returns an empty Sheet.
func NewSheet() *Sheet {
	return &Sheet{
		root:    make(map[string]string),
		attrs:   make(map[string]string),
		classes: make(map[string]struct{}),
		blocks:  make(map[string]string),
	}
}

// SetRootProperty sets a custom property on the document root.
func (s *Sheet) SetRootProperty(name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.root[name] = value
	s.mutations++
}

// SetBodyAttr sets a body attribute.
func (s *Sheet) SetBodyAttr(name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attrs[name] = value
	s.mutations++
}

// RemoveBodyAttr removes a body attribute.
func (s *Sheet) RemoveBodyAttr(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.attrs, name)
	s.mutations++
}

// AddBodyClass adds a body class.
func (s *Sheet) AddBodyClass(class string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.classes[class] = struct{}{}
	s.mutations++
}

// RemoveBodyClass removes a body class.
func (s *Sheet) RemoveBodyClass(class string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.classes, class)
	s.mutations++
}

// SetStyleBlock installs or replaces the style block id.
func (s *Sheet) SetStyleBlock(id, css string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocks[id] = css
	s.mutations++
}

// RemoveStyleBlock removes the style block id.
func (s *Sheet) RemoveStyleBlock(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blocks, id)
	s.mutations++
}

// Mutations counts every write made to the sheet since creation.
func (s *Sheet) Mutations() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mutations
}

// Snapshot is a point-in-time copy of a Sheet used for rendering.
type Snapshot struct {
	RootProperties map[string]string
	BodyAttrs      map[string]string
	BodyClasses    []string
	StyleBlocks    map[string]string
}

// Snapshot copies the current sheet contents.
func (s *Sheet) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{
		RootProperties: make(map[string]string, len(s.root)),
		BodyAttrs:      make(map[string]string, len(s.attrs)),
		StyleBlocks:    make(map[string]string, len(s.blocks)),
	}
	for k, v := range s.root {
		snap.RootProperties[k] = v
	}
	for k, v := range s.attrs {
		snap.BodyAttrs[k] = v
	}
	for k, v := range s.blocks {
		snap.StyleBlocks[k] = v
	}
	for c := range s.classes {
		snap.BodyClasses = append(snap.BodyClasses, c)
	}
	sort.Strings(snap.BodyClasses)
	return snap
}

// RootStyle renders the root properties as an inline style declaration list.
func (snap Snapshot) RootStyle() string {
	names := make([]string, 0, len(snap.RootProperties))
	for name := range snap.RootProperties {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(snap.RootProperties[name])
		b.WriteByte(';')
	}
	return b.String()
}

// BodyClass joins the body classes with spaces.
func (snap Snapshot) BodyClass() string {
	return strings.Join(snap.BodyClasses, " ")
}

// DataTheme returns the data-theme body attribute, or "".
func (snap Snapshot) DataTheme() string {
	return snap.BodyAttrs[AttrTheme]
}

// OverrideStyle returns the override style block, or "".
func (snap Snapshot) OverrideStyle() string {
	return snap.StyleBlocks[StyleBlockID]
}

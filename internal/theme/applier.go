package theme

import (
	"context"
	"path"
	"strings"
	"sync"

	"github.com/alexisbeaulieu97/momentum/internal/logging"
)

// DefaultRoutes are the path prefixes that receive theme overrides.
var DefaultRoutes = []string{"/shop", "/inventory", "/dashboard", "/achievements"}

// State is the applier's position in its two-state machine.
type State int

const (
	// Unthemed means no override is installed.
	Unthemed State = iota
	// Themed means the override for ThemeID is installed.
	Themed
)

func (s State) String() string {
	if s == Themed {
		return "themed"
	}
	return "unthemed"
}

// Applier installs and removes the override stylesheet as a session moves
// between themed and unthemed pages.
type Applier struct {
	mu       sync.Mutex
	registry *Registry
	doc      Document
	routes   []string
	log      logging.Logger

	source func() string
	route  string

	state   State
	themeID string
	marker  string
}

// NewApplier creates an Applier in the Unthemed state. A nil or empty routes
// slice uses DefaultRoutes.
func NewApplier(registry *Registry, doc Document, routes []string, log logging.Logger) *Applier {
	if registry == nil {
		registry = Builtin()
	}
	if len(routes) == 0 {
		routes = DefaultRoutes
	}
	cleaned := make([]string, 0, len(routes))
	for _, r := range routes {
		cleaned = append(cleaned, normalizeRoute(r))
	}
	return &Applier{
		registry: registry,
		doc:      doc,
		routes:   cleaned,
		log:      logging.OrNoOp(log),
	}
}

// IsThemedRoute reports whether route falls under one of the allow-listed
// prefixes. Prefixes match whole path segments.
func (a *Applier) IsThemedRoute(route string) bool {
	route = normalizeRoute(route)
	for _, prefix := range a.routes {
		if route == prefix || strings.HasPrefix(route, prefix+"/") {
			return true
		}
	}
	return false
}

// Follow makes c the theme source for Navigate and re-syncs the current route
// whenever c applies a new theme.
func (a *Applier) Follow(c *Context) {
	a.mu.Lock()
	a.source = c.Current
	a.mu.Unlock()
	c.OnChange(func(ctx context.Context, id string) {
		a.mu.Lock()
		route := a.route
		a.mu.Unlock()
		if route != "" {
			a.Sync(ctx, route, id)
		}
	})
}

// Navigate syncs route against the followed context's theme. Without a
// source it falls back to the registry default.
func (a *Applier) Navigate(ctx context.Context, route string) bool {
	id := a.currentID()
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.syncLocked(ctx, route, id)
}

// Render is Navigate followed by a snapshot of the document, taken before
// any other route can sync. A document that cannot snapshot yields the zero
// Snapshot.
func (a *Applier) Render(ctx context.Context, route string) Snapshot {
	id := a.currentID()
	a.mu.Lock()
	defer a.mu.Unlock()
	a.syncLocked(ctx, route, id)
	if s, ok := a.doc.(interface{ Snapshot() Snapshot }); ok {
		return s.Snapshot()
	}
	return Snapshot{}
}

// Sync brings the document in line with themeID on route. It reports whether
// the document was modified.
func (a *Applier) Sync(ctx context.Context, route, themeID string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.syncLocked(ctx, route, themeID)
}

func (a *Applier) currentID() string {
	a.mu.Lock()
	source := a.source
	a.mu.Unlock()
	if source != nil {
		return source()
	}
	return a.registry.Default().ID
}

func (a *Applier) syncLocked(ctx context.Context, route, themeID string) bool {
	route = normalizeRoute(route)
	a.route = route
	if !a.IsThemedRoute(route) {
		if a.state != Themed {
			return false
		}
		a.reset()
		a.log.Debug(ctx, "theme override removed", "route", route)
		return true
	}

	marker := themeID + "@" + route
	if a.state == Themed && marker == a.marker {
		return false
	}

	theme, ok := a.registry.Lookup(themeID)
	if !ok {
		a.log.Warn(ctx, "theme not found, keeping current override", "theme", themeID, "route", route)
		return false
	}

	if a.state == Themed {
		a.reset()
	}
	a.install(theme)
	a.marker = marker
	a.log.Debug(ctx, "theme override installed", "theme", themeID, "route", route)
	return true
}

// Close reverts the document as if the session left every themed page.
func (a *Applier) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state == Themed {
		a.reset()
	}
}

// State returns the current state and, when themed, the installed theme id.
func (a *Applier) State() (State, string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state, a.themeID
}

func (a *Applier) install(t Theme) {
	a.doc.SetStyleBlock(StyleBlockID, OverrideCSS(t.ID, t.Palette))
	a.doc.SetBodyAttr(AttrTheme, t.ID)
	a.doc.AddBodyClass(ClassTransition)
	for _, prop := range t.Palette.Properties() {
		a.doc.SetRootProperty(prop.Name, prop.Value)
	}
	a.state = Themed
	a.themeID = t.ID
}

func (a *Applier) reset() {
	a.doc.RemoveStyleBlock(StyleBlockID)
	a.doc.RemoveBodyAttr(AttrTheme)
	a.doc.RemoveBodyClass(ClassTransition)
	for _, prop := range a.registry.Default().Palette.Properties() {
		a.doc.SetRootProperty(prop.Name, prop.Value)
	}
	a.state = Unthemed
	a.themeID = ""
	a.marker = ""
}

func normalizeRoute(route string) string {
	if i := strings.IndexAny(route, "?#"); i >= 0 {
		route = route[:i]
	}
	if route == "" {
		return "/"
	}
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	return path.Clean(route)
}

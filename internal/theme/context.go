package theme

import (
	"context"
	"sync"

	"github.com/alexisbeaulieu97/momentum/internal/logging"
	"github.com/alexisbeaulieu97/momentum/internal/storage"
)

// Context holds one session's selected theme. Selection is mirrored to the
// store under storage.KeyTheme and written onto the document root as
// --theme-* custom properties.
type Context struct {
	mu       sync.RWMutex
	registry *Registry
	store    storage.Store
	doc      Document
	log      logging.Logger
	current  string
	onChange []func(ctx context.Context, id string)
}

// NewContext creates a Context positioned on the registry default. Call Load
// to restore a persisted selection.
func NewContext(registry *Registry, store storage.Store, doc Document, log logging.Logger) *Context {
	if registry == nil {
		registry = Builtin()
	}
	return &Context{
		registry: registry,
		store:    store,
		doc:      doc,
		log:      logging.OrNoOp(log),
		current:  registry.Default().ID,
	}
}

// Load restores the persisted theme, falling back to the default when the
// store is empty, unreadable, or names an unknown theme. It returns the
// resulting selection.
func (c *Context) Load(ctx context.Context) string {
	id := c.registry.Default().ID
	if c.store != nil {
		saved, ok, err := c.store.Get(ctx, storage.KeyTheme)
		switch {
		case err != nil:
			c.log.Warn(ctx, "read saved theme", "error", err)
		case ok && c.registry.Has(saved):
			id = saved
		case ok:
			c.log.Warn(ctx, "ignoring unknown saved theme", "theme", saved)
		}
	}

	theme, _ := c.registry.Lookup(id)
	c.mu.Lock()
	c.current = id
	c.writeRoot(theme.Palette)
	c.mu.Unlock()
	return id
}

// Apply selects theme id. Unknown ids return false and leave the selection,
// the store and the document untouched.
func (c *Context) Apply(ctx context.Context, id string) bool {
	theme, ok := c.registry.Lookup(id)
	if !ok {
		c.log.Warn(ctx, "unknown theme", "theme", id)
		return false
	}

	c.mu.Lock()
	c.current = id
	if c.store != nil {
		if err := c.store.Set(ctx, storage.KeyTheme, id); err != nil {
			c.log.Error(ctx, "persist theme", "theme", id, "error", err)
		}
	}
	c.writeRoot(theme.Palette)
	listeners := append([]func(context.Context, string){}, c.onChange...)
	c.mu.Unlock()

	c.log.Debug(ctx, "theme applied", "theme", id)
	for _, fn := range listeners {
		fn(ctx, id)
	}
	return true
}

// OnChange registers fn to run after every successful Apply.
func (c *Context) OnChange(fn func(ctx context.Context, id string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = append(c.onChange, fn)
}

// Current returns the selected theme id.
func (c *Context) Current() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Palette returns the selected theme's palette.
func (c *Context) Palette() Palette {
	theme, _ := c.registry.Lookup(c.Current())
	return theme.Palette
}

// Themes returns every registered palette keyed by id.
func (c *Context) Themes() map[string]Palette {
	return c.registry.All()
}

// Registry exposes the registry backing this context.
func (c *Context) Registry() *Registry {
	return c.registry
}

func (c *Context) writeRoot(p Palette) {
	if c.doc == nil {
		return
	}
	for _, prop := range p.Properties() {
		c.doc.SetRootProperty(prop.Name, prop.Value)
	}
}

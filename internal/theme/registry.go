// Package theme holds Momentum's cosmetic theming layer: the built-in
// palettes, the per-session selection, and the applier that scopes palette
// overrides to themed pages.
package theme

import (
	"fmt"
	"sort"
)

// DefaultID is the theme every session starts with and falls back to.
const DefaultID = "basic"

// Palette is the fixed set of eight values a theme defines.
type Palette struct {
	Primary     string
	Secondary   string
	Accent      string
	Background  string
	CardBg      string
	BorderColor string
	TextColor   string
	TextMuted   string
}

// Property is one CSS custom property derived from a palette.
type Property struct {
	Name  string
	Value string
}

// Properties returns the palette as --theme-* custom properties in a stable
// order.
func (p Palette) Properties() []Property {
	return []Property{
		{Name: "--theme-primary", Value: p.Primary},
		{Name: "--theme-secondary", Value: p.Secondary},
		{Name: "--theme-accent", Value: p.Accent},
		{Name: "--theme-background", Value: p.Background},
		{Name: "--theme-cardBg", Value: p.CardBg},
		{Name: "--theme-borderColor", Value: p.BorderColor},
		{Name: "--theme-textColor", Value: p.TextColor},
		{Name: "--theme-textMuted", Value: p.TextMuted},
	}
}

// Theme is a named palette.
type Theme struct {
	ID      string
	Name    string
	Palette Palette
}

// Registry maps theme identifiers to themes. It is immutable once built.
type Registry struct {
	themes    map[string]Theme
	order     []string
	defaultID string
}

// NewRegistry builds a registry. defaultID must name one of themes.
func NewRegistry(defaultID string, themes ...Theme) (*Registry, error) {
	r := &Registry{themes: make(map[string]Theme, len(themes)), defaultID: defaultID}
	for _, t := range themes {
		if t.ID == "" {
			return nil, fmt.Errorf("theme %q has no id", t.Name)
		}
		if _, exists := r.themes[t.ID]; exists {
			return nil, fmt.Errorf("duplicate theme id %q", t.ID)
		}
		r.themes[t.ID] = t
		r.order = append(r.order, t.ID)
	}
	if _, ok := r.themes[defaultID]; !ok {
		return nil, fmt.Errorf("default theme %q is not registered", defaultID)
	}
	return r, nil
}

// WithDefault returns a copy of r whose fallback theme is id.
func (r *Registry) WithDefault(id string) (*Registry, error) {
	themes := make([]Theme, 0, len(r.order))
	for _, key := range r.order {
		themes = append(themes, r.themes[key])
	}
	return NewRegistry(id, themes...)
}

// Lookup returns the theme registered under id.
func (r *Registry) Lookup(id string) (Theme, bool) {
	t, ok := r.themes[id]
	return t, ok
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.themes[id]
	return ok
}

// Default returns the fallback theme.
func (r *Registry) Default() Theme {
	return r.themes[r.defaultID]
}

// IDs returns theme identifiers in registration order.
func (r *Registry) IDs() []string {
	return append([]string(nil), r.order...)
}

// SortedIDs returns theme identifiers alphabetically.
func (r *Registry) SortedIDs() []string {
	ids := r.IDs()
	sort.Strings(ids)
	return ids
}

// All returns a copy of every palette keyed by theme id.
func (r *Registry) All() map[string]Palette {
	all := make(map[string]Palette, len(r.themes))
	for id, t := range r.themes {
		all[id] = t.Palette
	}
	return all
}

// Builtin returns the registry of themes shipped with Momentum.
func Builtin() *Registry {
	r, err := NewRegistry(DefaultID, builtinThemes...)
	if err != nil {
		panic(err)
	}
	return r
}

var builtinThemes = []Theme{
	{ID: "basic", Name: "Basic", Palette: Palette{
		Primary: "#00DCFF", Secondary: "#3B82F6", Accent: "#9333EA", Background: "#000000",
		CardBg: "rgba(0, 0, 0, 0.4)", BorderColor: "rgba(255, 255, 255, 0.1)",
		TextColor: "#FFFFFF", TextMuted: "#9CA3AF",
	}},
	{ID: "darkMinimal", Name: "Dark Minimal", Palette: Palette{
		Primary: "#6B7280", Secondary: "#4B5563", Accent: "#D1D5DB", Background: "#111111",
		CardBg: "rgba(20, 20, 20, 0.8)", BorderColor: "rgba(75, 85, 99, 0.2)",
		TextColor: "#F3F4F6", TextMuted: "#9CA3AF",
	}},
	{ID: "neonSynthwave", Name: "Neon Synthwave", Palette: Palette{
		Primary: "#FF00FF", Secondary: "#00FFFF", Accent: "#FE5BFF", Background: "#150024",
		CardBg: "rgba(32, 0, 48, 0.7)", BorderColor: "rgba(255, 0, 255, 0.2)",
		TextColor: "#FFFFFF", TextMuted: "#D1B3FF",
	}},
	{ID: "calmPastel", Name: "Calm Pastel", Palette: Palette{
		Primary: "#A7D2CB", Secondary: "#F2D388", Accent: "#C98474", Background: "#111827",
		CardBg: "rgba(17, 24, 39, 0.7)", BorderColor: "rgba(167, 210, 203, 0.2)",
		TextColor: "#F9FAFB", TextMuted: "#D1D5DB",
	}},
	{ID: "nature", Name: "Nature", Palette: Palette{
		Primary: "#4ADE80", Secondary: "#22C55E", Accent: "#86EFAC", Background: "#0F172A",
		CardBg: "rgba(15, 23, 42, 0.7)", BorderColor: "rgba(74, 222, 128, 0.2)",
		TextColor: "#F8FAFC", TextMuted: "#94A3B8",
	}},
	{ID: "ocean", Name: "Ocean", Palette: Palette{
		Primary: "#38BDF8", Secondary: "#0EA5E9", Accent: "#7DD3FC", Background: "#0C4A6E",
		CardBg: "rgba(12, 74, 110, 0.7)", BorderColor: "rgba(56, 189, 248, 0.2)",
		TextColor: "#F0F9FF", TextMuted: "#BAE6FD",
	}},
	{ID: "midnightGalaxy", Name: "Midnight Galaxy", Palette: Palette{
		Primary: "#8B5CF6", Secondary: "#6D28D9", Accent: "#A78BFA", Background: "#020617",
		CardBg: "rgba(2, 6, 23, 0.8)", BorderColor: "rgba(139, 92, 246, 0.2)",
		TextColor: "#F5F3FF", TextMuted: "#C4B5FD",
	}},
	{ID: "cyberpunk", Name: "Cyberpunk", Palette: Palette{
		Primary: "#F9A8D4", Secondary: "#EC4899", Accent: "#FBCFE8", Background: "#18181B",
		CardBg: "rgba(24, 24, 27, 0.7)", BorderColor: "rgba(236, 72, 153, 0.3)",
		TextColor: "#FAFAFA", TextMuted: "#A1A1AA",
	}},
	{ID: "minimalistLight", Name: "Minimalist Light", Palette: Palette{
		Primary: "#3B82F6", Secondary: "#1D4ED8", Accent: "#93C5FD", Background: "#F9FAFB",
		CardBg: "rgba(255, 255, 255, 0.8)", BorderColor: "rgba(209, 213, 219, 0.5)",
		TextColor: "#111827", TextMuted: "#4B5563",
	}},
	{ID: "sunsetGradient", Name: "Sunset Gradient", Palette: Palette{
		Primary: "#F97316", Secondary: "#EA580C", Accent: "#FDBA74", Background: "#27272A",
		CardBg: "rgba(39, 39, 42, 0.7)", BorderColor: "rgba(249, 115, 22, 0.2)",
		TextColor: "#FAFAFA", TextMuted: "#A1A1AA",
	}},
	{ID: "forestMist", Name: "Forest Mist", Palette: Palette{
		Primary: "#10B981", Secondary: "#059669", Accent: "#6EE7B7", Background: "#1F2937",
		CardBg: "rgba(31, 41, 55, 0.7)", BorderColor: "rgba(16, 185, 129, 0.2)",
		TextColor: "#F9FAFB", TextMuted: "#9CA3AF",
	}},
	{ID: "desertSands", Name: "Desert Sands", Palette: Palette{
		Primary: "#D97706", Secondary: "#B45309", Accent: "#FBBF24", Background: "#292524",
		CardBg: "rgba(41, 37, 36, 0.7)", BorderColor: "rgba(217, 119, 6, 0.2)",
		TextColor: "#FAFAF9", TextMuted: "#A8A29E",
	}},
	{ID: "cherryBlossom", Name: "Cherry Blossom", Palette: Palette{
		Primary: "#EC4899", Secondary: "#DB2777", Accent: "#F9A8D4", Background: "#1F2937",
		CardBg: "rgba(31, 41, 55, 0.7)", BorderColor: "rgba(236, 72, 153, 0.2)",
		TextColor: "#F9FAFB", TextMuted: "#9CA3AF",
	}},
	{ID: "monochrome", Name: "Monochrome", Palette: Palette{
		Primary: "#FFFFFF", Secondary: "#A3A3A3", Accent: "#D4D4D4", Background: "#000000",
		CardBg: "rgba(23, 23, 23, 0.7)", BorderColor: "rgba(163, 163, 163, 0.2)",
		TextColor: "#FFFFFF", TextMuted: "#A3A3A3",
	}},
	{ID: "northernLights", Name: "Northern Lights", Palette: Palette{
		Primary: "#06B6D4", Secondary: "#0891B2", Accent: "#67E8F9", Background: "#0F172A",
		CardBg: "rgba(15, 23, 42, 0.7)", BorderColor: "rgba(6, 182, 212, 0.2)",
		TextColor: "#F8FAFC", TextMuted: "#94A3B8",
	}},
	{ID: "vintagePaper", Name: "Vintage Paper", Palette: Palette{
		Primary: "#B45309", Secondary: "#92400E", Accent: "#F59E0B", Background: "#292524",
		CardBg: "rgba(41, 37, 36, 0.8)", BorderColor: "rgba(180, 83, 9, 0.2)",
		TextColor: "#F5F5F4", TextMuted: "#A8A29E",
	}},
}

package theme

import (
	"fmt"
	"strings"
)

// Semantic markers pages emit as data-role attributes. The override
// stylesheet targets these instead of inspecting rendered text.
const (
	RoleCompleteAction  = "complete-action"
	RoleAppliedState    = "applied-state"
	RoleThemeToggleIcon = "theme-toggle-icon"
	RoleGradientText    = "gradient-text"
	RoleCard            = "card"
	RoleNavActive       = "nav-active"
	RolePrimaryAction   = "primary-action"
	RoleMutedText       = "muted-text"
)

const (
	appliedBackground = "rgba(34, 197, 94, 0.2)"
	appliedForeground = "rgb(74, 222, 128)"
	shadowAlpha       = "33"
	focusRingAlpha    = "80"
)

func role(name string) string {
	return fmt.Sprintf(`[data-role="%s"]`, name)
}

// OverrideCSS builds the stylesheet that forces palette p over the page's
// default styling for theme id.
func OverrideCSS(id string, p Palette) string {
	var b strings.Builder
	w := func(format string, args ...interface{}) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	w("/* theme: %s */", id)
	w(":root {")
	for _, prop := range p.Properties() {
		w("  %s: %s !important;", prop.Name, prop.Value)
	}
	w("}")

	w(`body[data-theme="%s"] {`, id)
	w("  background-color: %s !important;", p.Background)
	w("  color: %s !important;", p.TextColor)
	w("}")

	w("%s {", role(RoleGradientText))
	w("  background-image: linear-gradient(to right, %s, %s) !important;", p.Primary, p.Secondary)
	w("  -webkit-background-clip: text !important;")
	w("  background-clip: text !important;")
	w("  color: transparent !important;")
	w("}")

	w("%s, .text-muted {", role(RoleMutedText))
	w("  color: %s !important;", p.TextMuted)
	w("}")

	w("%s {", role(RoleCard))
	w("  background-color: %s !important;", p.CardBg)
	w("  border-color: %s !important;", p.BorderColor)
	w("  box-shadow: 0 4px 24px %s%s !important;", p.Primary, shadowAlpha)
	w("}")

	w("%s, %s {", role(RolePrimaryAction), role(RoleCompleteAction))
	w("  background-image: linear-gradient(to right, %s, %s) !important;", p.Primary, p.Secondary)
	w("  color: %s !important;", p.TextColor)
	w("  border-color: transparent !important;")
	w("}")

	w("%s:focus-visible, input:focus, select:focus, textarea:focus {", role(RolePrimaryAction))
	w("  outline: 2px solid %s%s !important;", p.Primary, focusRingAlpha)
	w("  border-color: %s !important;", p.Primary)
	w("}")

	w("%s, %s[data-state=\"done\"] {", role(RoleAppliedState), role(RoleCompleteAction))
	w("  background-image: none !important;")
	w("  background-color: %s !important;", appliedBackground)
	w("  color: %s !important;", appliedForeground)
	w("  cursor: default !important;")
	w("}")

	w("%s, %s svg {", role(RoleThemeToggleIcon), role(RoleThemeToggleIcon))
	w("  color: %s !important;", p.Primary)
	w("  stroke: %s !important;", p.Primary)
	w("}")

	w("%s {", role(RoleNavActive))
	w("  color: %s !important;", p.Primary)
	w("  border-bottom-color: %s !important;", p.Primary)
	w("}")

	w("hr, .border {")
	w("  border-color: %s !important;", p.BorderColor)
	w("}")

	return b.String()
}

package theme

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TerminalStyles are lipgloss styles derived from a palette for the CLI and
// the terminal dashboard.
type TerminalStyles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Accent   lipgloss.Style
	Card     lipgloss.Style
	Selected lipgloss.Style
	Applied  lipgloss.Style
	Error    lipgloss.Style
	Coins    lipgloss.Style
}

// Styles builds terminal styles from p. Colors the terminal cannot express
// (rgba with transparency) are converted to opaque hex.
func Styles(p Palette) TerminalStyles {
	primary := lipgloss.Color(TerminalColor(p.Primary))
	secondary := lipgloss.Color(TerminalColor(p.Secondary))
	accent := lipgloss.Color(TerminalColor(p.Accent))
	text := lipgloss.Color(TerminalColor(p.TextColor))
	muted := lipgloss.Color(TerminalColor(p.TextMuted))
	border := lipgloss.Color(TerminalColor(p.BorderColor))

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)

	return TerminalStyles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(primary),
		Subtitle: lipgloss.NewStyle().Foreground(secondary),
		Text:     lipgloss.NewStyle().Foreground(text),
		Muted:    lipgloss.NewStyle().Foreground(muted),
		Accent:   lipgloss.NewStyle().Foreground(accent),
		Card:     card,
		Selected: lipgloss.NewStyle().Bold(true).Foreground(primary),
		Applied:  lipgloss.NewStyle().Foreground(lipgloss.Color("#4ADE80")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("#F87171")),
		Coins:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FACC15")),
	}
}

// TerminalColor returns value unchanged when it is hex, and converts
// rgb()/rgba() to #RRGGBB. Alpha is dropped. Unparseable values yield "".
func TerminalColor(value string) string {
	value = strings.TrimSpace(value)
	if strings.HasPrefix(value, "#") {
		return value
	}
	open := strings.IndexByte(value, '(')
	end := strings.LastIndexByte(value, ')')
	if open < 0 || end <= open {
		return ""
	}
	parts := strings.Split(value[open+1:end], ",")
	if len(parts) < 3 {
		return ""
	}
	var rgb [3]int
	for i := 0; i < 3; i++ {
		if _, err := fmt.Sscanf(strings.TrimSpace(parts[i]), "%d", &rgb[i]); err != nil {
			return ""
		}
		rgb[i] = max(0, min(255, rgb[i]))
	}
	return fmt.Sprintf("#%02X%02X%02X", rgb[0], rgb[1], rgb[2])
}

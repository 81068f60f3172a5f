package dashboard

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/momentum/internal/theme"
)

var (
	warningColor = lipgloss.Color("226")
	errorColor   = lipgloss.Color("196")
	successColor = lipgloss.Color("42")
)

// styles derive from the active theme palette so the dashboard recolors
// when a theme item is used.
type styles struct {
	palette theme.TerminalStyles

	title       lipgloss.Style
	header      lipgloss.Style
	tab         lipgloss.Style
	activeTab   lipgloss.Style
	item        lipgloss.Style
	selected    lipgloss.Style
	footer      lipgloss.Style
	helpTitle   lipgloss.Style
	helpKey     lipgloss.Style
	helpDesc    lipgloss.Style
	helpBox     lipgloss.Style
	confirmBox  lipgloss.Style
	confirmHead lipgloss.Style
	confirmYes  lipgloss.Style
	confirmNo   lipgloss.Style
	empty       lipgloss.Style
	spinner     lipgloss.Style
}

func newStyles(p theme.Palette, width int) styles {
	ts := theme.Styles(p)
	primary := lipgloss.Color(theme.TerminalColor(p.Primary))
	accent := lipgloss.Color(theme.TerminalColor(p.Accent))
	muted := lipgloss.Color(theme.TerminalColor(p.TextMuted))
	border := lipgloss.Color(theme.TerminalColor(p.BorderColor))

	button := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 2).
		MarginLeft(1).
		MarginRight(1).
		BorderStyle(lipgloss.NormalBorder())

	return styles{
		palette: ts,
		title: ts.Title.
			PaddingLeft(2).
			PaddingRight(2),
		header: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(border).
			PaddingBottom(1).
			MarginBottom(1).
			Width(max(width-2, 0)),
		tab: lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 2),
		activeTab: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary).
			Padding(0, 2).
			Underline(true),
		item: lipgloss.NewStyle().
			PaddingLeft(2).
			PaddingRight(2).
			MaxWidth(max(width-4, 0)),
		selected: lipgloss.NewStyle().
			PaddingLeft(2).
			PaddingRight(2).
			Foreground(accent).
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(primary).
			MaxWidth(max(width-4, 0)),
		footer: lipgloss.NewStyle().
			Foreground(muted).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(border).
			PaddingTop(1).
			MarginTop(1).
			Width(max(width-2, 0)),
		helpTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary).
			MarginBottom(1),
		helpKey: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true).
			Width(16),
		helpDesc: ts.Text,
		helpBox: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Padding(1, 4),
		confirmBox: lipgloss.NewStyle().
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(warningColor).
			Padding(1, 4).
			Align(lipgloss.Center),
		confirmHead: lipgloss.NewStyle().
			Bold(true).
			Foreground(warningColor).
			MarginBottom(1),
		confirmYes: button.
			Foreground(successColor).
			BorderForeground(successColor),
		confirmNo: button.
			Foreground(errorColor).
			BorderForeground(errorColor),
		empty: lipgloss.NewStyle().
			Foreground(muted).
			Italic(true).
			PaddingTop(2).
			PaddingBottom(2).
			PaddingLeft(2),
		spinner: lipgloss.NewStyle().
			Foreground(primary),
	}
}

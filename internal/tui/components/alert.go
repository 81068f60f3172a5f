package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// AlertVariant selects an alert's icon and color.
type AlertVariant int

const (
	AlertInfo AlertVariant = iota
	AlertSuccess
	AlertWarning
	AlertError
)

var alertColors = map[AlertVariant]lipgloss.Color{
	AlertInfo:    lipgloss.Color("39"),
	AlertSuccess: lipgloss.Color("42"),
	AlertWarning: lipgloss.Color("226"),
	AlertError:   lipgloss.Color("196"),
}

var alertIcons = map[AlertVariant]string{
	AlertInfo:    "ℹ",
	AlertSuccess: "✓",
	AlertWarning: "!",
	AlertError:   "✗",
}

// Alert is a bordered notification line. Compact alerts drop the border.
type Alert struct {
	message string
	title   string
	variant AlertVariant
	compact bool
}

// NewAlert creates an info alert.
func NewAlert(message string) Alert {
	return Alert{message: message}
}

// SuccessAlert creates a success alert.
func SuccessAlert(message string) Alert { return NewAlert(message).WithVariant(AlertSuccess) }

// WarningAlert creates a warning alert.
func WarningAlert(message string) Alert { return NewAlert(message).WithVariant(AlertWarning) }

// ErrorAlert creates an error alert.
func ErrorAlert(message string) Alert { return NewAlert(message).WithVariant(AlertError) }

// WithVariant sets the variant.
func (a Alert) WithVariant(v AlertVariant) Alert {
	a.variant = v
	return a
}

// WithTitle adds a bold first line.
func (a Alert) WithTitle(title string) Alert {
	a.title = title
	return a
}

// Compact renders the alert as a single unbordered line.
func (a Alert) Compact() Alert {
	a.compact = true
	return a
}

// Variant returns the alert variant.
func (a Alert) Variant() AlertVariant { return a.variant }

// View renders the alert. An empty message renders "".
func (a Alert) View() string {
	if strings.TrimSpace(a.message) == "" {
		return ""
	}
	colour := alertColors[a.variant]
	line := alertIcons[a.variant] + " " + a.message

	if a.compact {
		return lipgloss.NewStyle().Foreground(colour).Render(line)
	}

	var body string
	if a.title != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, lipgloss.NewStyle().Bold(true).Render(a.title), line)
	} else {
		body = line
	}

	style := lipgloss.NewStyle().
		Foreground(colour).
		Padding(0, 2).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colour)
	if a.variant == AlertError {
		style = style.Bold(true).BorderStyle(lipgloss.ThickBorder())
	}
	return style.Render(body)
}

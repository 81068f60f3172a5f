package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Stat is one labelled figure in a Summary.
type Stat struct {
	Label string
	Value string
}

// Summary renders a single line of stats.
type Summary struct {
	stats []Stat
	label lipgloss.Style
	value lipgloss.Style
}

// NewSummary creates a Summary of stats.
func NewSummary(stats ...Stat) Summary {
	return Summary{
		stats: stats,
		label: lipgloss.NewStyle(),
		value: lipgloss.NewStyle().Bold(true),
	}
}

// WithStyles sets the label and value styles.
func (s Summary) WithStyles(label, value lipgloss.Style) Summary {
	s.label = label
	s.value = value
	return s
}

// View renders the summary.
func (s Summary) View() string {
	parts := make([]string, 0, len(s.stats))
	for _, st := range s.stats {
		parts = append(parts, s.label.Render(st.Label+" ")+s.value.Render(st.Value))
	}
	return strings.Join(parts, "  ·  ")
}

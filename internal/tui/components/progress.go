package components

import (
	"fmt"
	"math"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/momentum/internal/theme"
)

// Progress renders a labelled completion bar.
type Progress struct {
	bar   progress.Model
	total int
}

// NewProgress creates a progress component for the given total, shaded from
// the palette's primary to its accent color.
func NewProgress(total int, p theme.Palette) Progress {
	from, to := theme.TerminalColor(p.Primary), theme.TerminalColor(p.Accent)
	opt := progress.WithDefaultGradient()
	if from != "" && to != "" {
		opt = progress.WithGradient(from, to)
	}
	bar := progress.New(opt, progress.WithoutPercentage())
	bar.Width = 20
	return Progress{bar: bar, total: total}
}

// Width sets the bar width in cells.
func (p Progress) Width(cells int) Progress {
	p.bar.Width = cells
	return p
}

// View renders the bar for the provided completion count.
func (p Progress) View(completed int) string {
	ratio := 0.0
	if p.total > 0 {
		ratio = math.Min(1.0, float64(completed)/float64(p.total))
	}
	label := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%d/%d", completed, p.total))
	return lipgloss.JoinHorizontal(lipgloss.Left, p.bar.ViewAs(ratio), " ", label)
}

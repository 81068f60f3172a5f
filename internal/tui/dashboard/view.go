package dashboard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/momentum/internal/tui/components"
	"github.com/alexisbeaulieu97/momentum/internal/views"
)

// View renders the current model state
func (m Model) View() string {
	switch m.viewMode {
	case ViewHelp:
		return m.renderHelpView()
	case ViewConfirm:
		return m.renderConfirmView()
	default:
		return m.renderListView()
	}
}

func (m Model) renderListView() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	var content strings.Builder
	content.WriteString(m.renderHeader())
	content.WriteString("\n")

	if m.showError {
		content.WriteString(components.ErrorAlert(m.errorMsg).View())
		content.WriteString("\n")
	} else if m.info != "" {
		content.WriteString(components.SuccessAlert(m.info).View())
		content.WriteString("\n")
	}
	for _, n := range m.notices {
		content.WriteString(components.WarningAlert(n).Compact().View())
		content.WriteString("\n")
	}

	content.WriteString(m.renderTab())
	content.WriteString("\n")
	content.WriteString(m.renderFooter())
	return content.String()
}

// renderHeader renders the title, coin balance and tab bar.
func (m Model) renderHeader() string {
	title := m.styles.title.Render("Momentum")
	coins := m.styles.palette.Coins.Render(fmt.Sprintf("%d coins", m.Coins()))
	status := ""
	if m.IsLoading() {
		label := "Loading"
		if m.pending != "" {
			label = "Working"
		}
		status = "  " + m.spinner.View() + " " + label
	}

	tabs := make([]string, 0, tabCount)
	for t := Tab(0); t < tabCount; t++ {
		style := m.styles.tab
		if t == m.tab {
			style = m.styles.activeTab
		}
		tabs = append(tabs, style.Render(t.String()))
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top, title, coins, status)
	return m.styles.header.Render(lipgloss.JoinVertical(lipgloss.Left, top, lipgloss.JoinHorizontal(lipgloss.Top, tabs...)))
}

func (m Model) renderTab() string {
	switch m.tab {
	case TabShop:
		return m.renderShop()
	case TabInventory:
		return m.renderInventory()
	case TabAchievements:
		return m.renderAchievements()
	default:
		return m.renderHabits()
	}
}

func (m Model) renderHabits() string {
	habits := m.pages.Habits.Habits()
	stats := m.pages.Habits.Stats()
	summary := components.NewSummary(
		components.Stat{Label: "Habits", Value: strconv.Itoa(stats.Total)},
		components.Stat{Label: "Done today", Value: strconv.Itoa(stats.CompletedToday)},
		components.Stat{Label: "Rate", Value: fmt.Sprintf("%d%%", stats.CompletionRate)},
		components.Stat{Label: "Best streak", Value: strconv.Itoa(stats.LongestStreak)},
	).WithStyles(m.styles.palette.Muted, m.styles.palette.Text.Bold(true)).View()
	bar := components.NewProgress(stats.Total, m.themes.Palette()).Width(30).View(stats.CompletedToday)

	if len(habits) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, summary, m.renderEmpty("No habits yet. Add one with `momentum habits add`."))
	}

	rows := make([]string, 0, len(habits))
	for i, h := range habits {
		mark := "[ ]"
		if h.CompletedToday {
			mark = m.styles.palette.Applied.Render("[x]")
		}
		line1 := fmt.Sprintf("%s %s", mark, lipgloss.NewStyle().Bold(true).Render(h.Title))
		line2 := m.styles.palette.Muted.Render(fmt.Sprintf("    %s · %s · streak %d · +%d coins",
			h.Frequency, h.Category, h.Streak, h.CoinReward))
		rows = append(rows, m.renderRow(i, TabHabits, line1, line2))
	}
	return lipgloss.JoinVertical(lipgloss.Left, append([]string{summary, bar, ""}, m.window(TabHabits, rows)...)...)
}

func (m Model) renderShop() string {
	entries := m.pages.Shop.Entries(views.ItemFilter{})
	if len(entries) == 0 {
		return m.renderEmpty("The shop is empty.")
	}
	rows := make([]string, 0, len(entries))
	for i, e := range entries {
		state := m.styles.palette.Coins.Render(fmt.Sprintf("%d coins", e.Item.Price))
		switch {
		case e.Owned:
			state = m.styles.palette.Applied.Render("Owned")
		case !e.Affordable:
			state = m.styles.palette.Muted.Render(fmt.Sprintf("%d coins (not enough)", e.Item.Price))
		}
		line1 := fmt.Sprintf("%s  %s", lipgloss.NewStyle().Bold(true).Render(e.Item.Name), state)
		line2 := m.styles.palette.Muted.Render(fmt.Sprintf("    %s · %s · %s", e.Item.Category, e.Item.Rarity, e.Item.Description))
		rows = append(rows, m.renderRow(i, TabShop, line1, line2))
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.window(TabShop, rows)...)
}

func (m Model) renderInventory() string {
	items := m.pages.Inventory.Items(views.ItemFilter{})
	if len(items) == 0 {
		return m.renderEmpty("Your inventory is empty. Visit the shop to buy items.")
	}
	rows := make([]string, 0, len(items))
	for i, it := range items {
		state := ""
		switch {
		case it.IsActive:
			state = m.styles.palette.Applied.Render("Applied")
		case it.UsageLimit > 0:
			state = m.styles.palette.Muted.Render(fmt.Sprintf("%d uses left", it.UsesLeft))
		}
		line1 := fmt.Sprintf("%s  %s", lipgloss.NewStyle().Bold(true).Render(it.Name), state)
		line2 := m.styles.palette.Muted.Render(fmt.Sprintf("    %s · %s", it.Category, it.Rarity))
		rows = append(rows, m.renderRow(i, TabInventory, line1, line2))
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.window(TabInventory, rows)...)
}

func (m Model) renderAchievements() string {
	list := m.pages.Achievements.Filtered(views.AchievementFilter{})
	stats := m.pages.Achievements.Stats()
	summary := components.NewSummary(
		components.Stat{Label: "Earned", Value: fmt.Sprintf("%d/%d", stats.Earned, stats.Total)},
		components.Stat{Label: "Completion", Value: fmt.Sprintf("%d%%", stats.CompletionRate)},
	).WithStyles(m.styles.palette.Muted, m.styles.palette.Text.Bold(true)).View()
	if len(list) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, summary, m.renderEmpty("No achievements yet."))
	}

	rows := make([]string, 0, len(list))
	for i, a := range list {
		state := components.NewProgress(a.Total, m.themes.Palette()).View(a.Progress)
		switch {
		case a.Claimed:
			state = m.styles.palette.Applied.Render("Claimed")
		case a.Claimable():
			state = m.styles.palette.Coins.Render(fmt.Sprintf("Claim +%d coins", a.CoinReward))
		}
		line1 := fmt.Sprintf("%s  %s", lipgloss.NewStyle().Bold(true).Render(a.Name), state)
		line2 := m.styles.palette.Muted.Render(fmt.Sprintf("    %s · %s · %s", a.Category, a.Rarity, a.Description))
		rows = append(rows, m.renderRow(i, TabAchievements, line1, line2))
	}
	return lipgloss.JoinVertical(lipgloss.Left, append([]string{summary, ""}, m.window(TabAchievements, rows)...)...)
}

func (m Model) renderRow(index int, tab Tab, lines ...string) string {
	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	if index == m.cursors[tab] {
		return m.styles.selected.Render(content)
	}
	return m.styles.item.Render(content)
}

// window keeps the selected row visible when rows overflow the screen.
func (m Model) window(tab Tab, rows []string) []string {
	visible := max((m.height-14)/2, 1)
	if len(rows) <= visible {
		return rows
	}
	start := max(m.cursors[tab]-visible+1, 0)
	end := min(start+visible, len(rows))

	out := append([]string(nil), rows[start:end]...)
	if start > 0 {
		out = append([]string{m.styles.palette.Muted.Render("▲ More above")}, out...)
	}
	if end < len(rows) {
		out = append(out, m.styles.palette.Muted.Render("▼ More below"))
	}
	return out
}

func (m Model) renderEmpty(message string) string {
	return m.styles.empty.Render(message)
}

var tabActions = [tabCount]string{"enter: complete", "enter: buy", "enter: use", "enter: claim"}

// renderFooter renders the footer with keyboard shortcuts
func (m Model) renderFooter() string {
	hints := []string{"tab: switch page", "↑/↓: navigate", tabActions[m.tab]}
	if m.tab == TabHabits {
		hints = append(hints, "d: delete")
	}
	hints = append(hints, "r: refresh", "?: help")
	if m.showError {
		hints = append(hints, "x: dismiss error")
	}
	hints = append(hints, "q: quit")
	return m.styles.footer.Render(strings.Join(hints, "  •  "))
}

var helpKeys = []struct{ key, desc string }{
	{"tab / l / →", "next page"},
	{"shift+tab / h / ←", "previous page"},
	{"1-4", "jump to page"},
	{"↑/k  ↓/j", "move selection"},
	{"enter / space", "complete habit, buy, use or claim"},
	{"d", "delete the selected habit"},
	{"r", "reload every page"},
	{"x / esc", "dismiss error"},
	{"?", "toggle this help"},
	{"q / ctrl+c", "quit"},
}

func (m Model) renderHelpView() string {
	var b strings.Builder
	b.WriteString(m.styles.helpTitle.Render("Keyboard shortcuts"))
	b.WriteString("\n")
	for _, k := range helpKeys {
		b.WriteString(m.styles.helpKey.Render(k.key))
		b.WriteString(m.styles.helpDesc.Render(k.desc))
		b.WriteString("\n")
	}
	return m.styles.helpBox.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderConfirmView() string {
	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		m.styles.confirmYes.Render("y: yes"),
		m.styles.confirmNo.Render("n: no"),
	)
	body := lipgloss.JoinVertical(lipgloss.Center,
		m.styles.confirmHead.Render("Confirm"),
		m.confirm.message,
		"",
		buttons,
	)
	return m.styles.confirmBox.Render(body)
}

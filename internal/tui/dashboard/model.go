package dashboard

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/momentum/internal/model"
	"github.com/alexisbeaulieu97/momentum/internal/theme"
	"github.com/alexisbeaulieu97/momentum/internal/views"
)

// Model is the main dashboard model
type Model struct {
	ctx    context.Context
	pages  Pages
	themes ThemeSource
	styles styles

	// UI state
	viewMode ViewMode
	tab      Tab
	cursors  [tabCount]int

	spinner spinner.Model

	// Operation state
	loading   bool
	pending   string
	notices   []string
	info      string
	showError bool
	errorMsg  string
	signedOut bool

	confirm confirmation

	width  int
	height int
}

// NewModel creates a dashboard over pages. themes may be nil, in which case
// the built-in default palette is used. Commands run under ctx.
func NewModel(ctx context.Context, pages Pages, themes ThemeSource) Model {
	if themes == nil {
		themes = staticTheme{t: theme.Builtin().Default()}
	}
	st := newStyles(themes.Palette(), 80)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = st.spinner

	return Model{
		ctx:      ctx,
		pages:    pages,
		themes:   themes,
		styles:   st,
		viewMode: ViewList,
		tab:      TabHabits,
		spinner:  s,
		loading:  true,
		width:    80,
		height:   24,
	}
}

// Init initializes the model and returns initial commands
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadAllCmd(m.ctx, m.pages))
}

// Helper Methods

// rowCount returns the number of selectable rows on tab.
func (m *Model) rowCount(tab Tab) int {
	switch tab {
	case TabHabits:
		return len(m.pages.Habits.Habits())
	case TabShop:
		return len(m.pages.Shop.Entries(views.ItemFilter{}))
	case TabInventory:
		return len(m.pages.Inventory.Items(views.ItemFilter{}))
	case TabAchievements:
		return len(m.pages.Achievements.Filtered(views.AchievementFilter{}))
	}
	return 0
}

// clampCursors keeps every cursor inside its list after a reload.
func (m *Model) clampCursors() {
	for t := Tab(0); t < tabCount; t++ {
		n := m.rowCount(t)
		switch {
		case n == 0:
			m.cursors[t] = 0
		case m.cursors[t] >= n:
			m.cursors[t] = n - 1
		}
	}
}

// Cursor returns the selected row on the current tab.
func (m *Model) Cursor() int {
	return m.cursors[m.tab]
}

// MoveCursorUp moves cursor up with wrapping
func (m *Model) MoveCursorUp() {
	n := m.rowCount(m.tab)
	if n == 0 {
		return
	}
	m.cursors[m.tab]--
	if m.cursors[m.tab] < 0 {
		m.cursors[m.tab] = n - 1
	}
}

// MoveCursorDown moves cursor down with wrapping
func (m *Model) MoveCursorDown() {
	n := m.rowCount(m.tab)
	if n == 0 {
		return
	}
	m.cursors[m.tab]++
	if m.cursors[m.tab] >= n {
		m.cursors[m.tab] = 0
	}
}

// NextTab selects the following tab with wrapping.
func (m *Model) NextTab() {
	m.tab = (m.tab + 1) % tabCount
}

// PrevTab selects the preceding tab with wrapping.
func (m *Model) PrevTab() {
	m.tab = (m.tab + tabCount - 1) % tabCount
}

// SelectedHabit returns the habit under the cursor.
func (m *Model) SelectedHabit() (model.Habit, bool) {
	habits := m.pages.Habits.Habits()
	if i := m.cursors[TabHabits]; i < len(habits) {
		return habits[i], true
	}
	return model.Habit{}, false
}

// SelectedEntry returns the shop entry under the cursor.
func (m *Model) SelectedEntry() (views.ShopEntry, bool) {
	entries := m.pages.Shop.Entries(views.ItemFilter{})
	if i := m.cursors[TabShop]; i < len(entries) {
		return entries[i], true
	}
	return views.ShopEntry{}, false
}

// SelectedItem returns the inventory item under the cursor.
func (m *Model) SelectedItem() (model.InventoryItem, bool) {
	items := m.pages.Inventory.Items(views.ItemFilter{})
	if i := m.cursors[TabInventory]; i < len(items) {
		return items[i], true
	}
	return model.InventoryItem{}, false
}

// SelectedAchievement returns the achievement under the cursor.
func (m *Model) SelectedAchievement() (model.Achievement, bool) {
	list := m.pages.Achievements.Filtered(views.AchievementFilter{})
	if i := m.cursors[TabAchievements]; i < len(list) {
		return list[i], true
	}
	return model.Achievement{}, false
}

// Coins returns the freshest known balance.
func (m *Model) Coins() int {
	return m.pages.Habits.Coins()
}

// GetViewMode returns the current view mode
func (m *Model) GetViewMode() ViewMode {
	return m.viewMode
}

// Tab returns the current tab.
func (m *Model) Tab() Tab {
	return m.tab
}

// IsLoading reports whether a load or action is in flight.
func (m *Model) IsLoading() bool {
	return m.loading || m.pending != ""
}

// Info returns the last success message.
func (m *Model) Info() string {
	return m.info
}

// Error returns the banner text when one is showing.
func (m *Model) Error() (string, bool) {
	return m.errorMsg, m.showError
}

// restyle rebuilds styles from the current palette.
func (m *Model) restyle() {
	m.styles = newStyles(m.themes.Palette(), m.width)
	m.spinner.Style = m.styles.spinner
}

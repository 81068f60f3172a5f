package dashboard

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/alexisbeaulieu97/momentum/internal/model"
)

func TestViewBeforeSize(t *testing.T) {
	m := newFixture(t).model
	m.width, m.height = 0, 0
	assert.Equal(t, "Initializing...", m.View())
}

func TestViewHabits(t *testing.T) {
	f := newFixture(t)
	f.fake.SetInventory(150)
	seedHabits(f.fake)
	m := update(t, f.loaded(t), tea.WindowSizeMsg{Width: 100, Height: 40})

	view := m.View()
	assert.Contains(t, view, "Momentum")
	assert.Contains(t, view, "150 coins")
	assert.Contains(t, view, "Read")
	assert.Contains(t, view, "[x]")
	assert.Contains(t, view, "1/3")
	assert.Contains(t, view, "d: delete")
	assert.Contains(t, view, "enter: complete")
}

func TestViewEmptyStates(t *testing.T) {
	f := newFixture(t)
	m := f.loaded(t)

	assert.Contains(t, m.View(), "No habits yet.")
	m.tab = TabInventory
	assert.Contains(t, m.View(), "Your inventory is empty.")
	assert.NotContains(t, m.View(), "d: delete")
	m.tab = TabAchievements
	assert.Contains(t, m.View(), "No achievements yet.")
}

func TestViewShopMarksOwnedItems(t *testing.T) {
	f := newFixture(t)
	f.fake.SetInventory(0, model.InventoryItem{ID: "theme-1", Name: "Dark Minimal Theme", Category: model.CategoryThemes})
	m := f.loaded(t)
	m.tab = TabShop

	view := m.View()
	assert.Contains(t, view, "Owned")
	assert.Contains(t, view, "(not enough)")
	assert.Contains(t, view, "enter: buy")
}

func TestViewAchievements(t *testing.T) {
	f := newFixture(t)
	f.fake.SetAchievements(
		model.Achievement{ID: "a1", Name: "First Steps", Progress: 1, Total: 1, Earned: true, CoinReward: 25},
		model.Achievement{ID: "a2", Name: "Marathon", Progress: 3, Total: 10},
	)
	m := update(t, f.loaded(t), tea.WindowSizeMsg{Width: 100, Height: 40})
	m.tab = TabAchievements

	view := m.View()
	assert.Contains(t, view, "Claim +25 coins")
	assert.Contains(t, view, "3/10")
	assert.Contains(t, view, "1/2")
}

func TestViewBanners(t *testing.T) {
	m := newFixture(t).loaded(t)

	m = update(t, m, ErrorMsg{Message: "Claim failed"})
	view := m.View()
	assert.Contains(t, view, "Claim failed")
	assert.Contains(t, view, "x: dismiss error")

	m = update(t, m, ClearErrorMsg{})
	assert.NotContains(t, m.View(), "Claim failed")
}

func TestViewNotices(t *testing.T) {
	m := newFixture(t).loaded(t)
	m = update(t, m, LoadedMsg{Notices: []string{"Could not load your coin balance."}})
	assert.Contains(t, m.View(), "Could not load your coin balance.")
}

func TestViewHelp(t *testing.T) {
	m := newFixture(t).model
	m.viewMode = ViewHelp

	view := m.View()
	assert.Contains(t, view, "Keyboard shortcuts")
	assert.Contains(t, view, "reload every page")
}

func TestWindowKeepsSelectionVisible(t *testing.T) {
	m := newFixture(t).model
	m.height = 24
	rows := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	m.cursors[TabHabits] = 7

	out := m.window(TabHabits, rows)
	assert.Contains(t, out, "h")
	assert.NotContains(t, out, "a")
	assert.Contains(t, out[0], "More above")
}

package dashboard

import (
	"context"
	"net/http"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/momentum/internal/api"
	"github.com/alexisbeaulieu97/momentum/internal/api/apitest"
	"github.com/alexisbeaulieu97/momentum/internal/model"
	"github.com/alexisbeaulieu97/momentum/internal/theme"
)

// drain executes cmd and any batched children, returning every message
// except spinner ticks.
func drain(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case nil, spinner.TickMsg:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, drain(t, c)...)
		}
		return out
	default:
		return []tea.Msg{msg}
	}
}

// press sends k and feeds every resulting message back until the model
// settles.
func press(t *testing.T, m Model, k string) Model {
	t.Helper()
	next, cmd := m.Update(key(k))
	m = next.(Model)
	queue := drain(t, cmd)
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]
		next, cmd = m.Update(msg)
		m = next.(Model)
		queue = append(queue, drain(t, cmd)...)
	}
	return m
}

func TestUpdate_WindowSizeMsg(t *testing.T) {
	m := update(t, newFixture(t).model, tea.WindowSizeMsg{Width: 100, Height: 40})

	assert.Equal(t, 100, m.width)
	assert.Equal(t, 40, m.height)
	_, showing := m.Error()
	assert.False(t, showing)
}

func TestUpdate_WindowSizeMsg_TooSmall(t *testing.T) {
	m := update(t, newFixture(t).model, tea.WindowSizeMsg{Width: 60, Height: 20})

	msg, showing := m.Error()
	assert.True(t, showing, "Should show error for small terminal")
	assert.Contains(t, msg, "Terminal too small")

	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	_, showing = m.Error()
	assert.False(t, showing)
}

func TestUpdate_SpinnerTickMsg(t *testing.T) {
	m := newFixture(t).model
	_, cmd := m.Update(m.spinner.Tick())
	assert.NotNil(t, cmd)
}

func TestUpdate_LoadedMsg(t *testing.T) {
	f := newFixture(t)
	seedHabits(f.fake)
	m := f.loaded(t)

	assert.False(t, m.IsLoading())
	assert.Len(t, m.pages.Habits.Habits(), 3)
	assert.Empty(t, m.notices)
}

func TestUpdate_LoadCollectsNotices(t *testing.T) {
	f := newFixture(t)
	f.fake.Fail(http.MethodGet, "/habits", http.StatusInternalServerError, "")
	m := f.loaded(t)

	assert.Contains(t, m.notices, "Could not load your habits.")
}

func TestUpdate_LoadWithoutTokenSignsOut(t *testing.T) {
	fake := apitest.New(t)
	client, err := api.New(fake.URL())
	require.NoError(t, err)
	m := NewModel(context.Background(), NewPages(client, nil, nil, nil), nil)

	msg := loadAllCmd(context.Background(), m.pages)()
	m = update(t, m, msg)

	text, showing := m.Error()
	require.True(t, showing)
	assert.True(t, m.signedOut)
	assert.Contains(t, text, "momentum login")
	assert.Zero(t, fake.RequestCount())
}

func TestCompleteHabitFromKeyboard(t *testing.T) {
	f := newFixture(t)
	f.fake.SetInventory(100)
	seedHabits(f.fake)
	m := f.loaded(t)

	m = press(t, m, "enter")

	assert.Equal(t, "Read completed! +10 coins", m.Info())
	assert.False(t, m.IsLoading())
	assert.Equal(t, 110, f.fake.Coins())
	assert.Equal(t, 110, m.Coins())
}

func TestCompleteHabitAlreadyDone(t *testing.T) {
	f := newFixture(t)
	seedHabits(f.fake)
	m := f.loaded(t)
	m.MoveCursorDown()

	before := f.fake.RequestCount()
	m = press(t, m, " ")

	assert.Equal(t, "Already completed today.", m.Info())
	// Only the reload reaches the backend.
	assert.Greater(t, f.fake.RequestCount(), before)
	for _, r := range f.fake.Requests()[before:] {
		assert.NotEqual(t, http.MethodPost, r.Method)
	}
}

func TestDeleteHabitNeedsConfirmation(t *testing.T) {
	f := newFixture(t)
	seedHabits(f.fake)
	m := f.loaded(t)

	m = press(t, m, "d")
	require.Equal(t, ViewConfirm, m.GetViewMode())
	assert.Contains(t, m.View(), "Delete 'Read'?")

	m = press(t, m, "n")
	assert.Equal(t, ViewList, m.GetViewMode())
	assert.Len(t, f.fake.Habits(), 3)

	m = press(t, m, "d")
	m = press(t, m, "y")
	assert.Equal(t, "Habit deleted.", m.Info())
	assert.Len(t, f.fake.Habits(), 2)
	assert.Len(t, m.pages.Habits.Habits(), 2)
}

func TestDeleteOnlyOnHabitsTab(t *testing.T) {
	f := newFixture(t)
	seedHabits(f.fake)
	m := f.loaded(t)

	m = press(t, m, "tab")
	m = press(t, m, "d")
	assert.Equal(t, ViewList, m.GetViewMode())
}

func TestPurchaseFromShop(t *testing.T) {
	f := newFixture(t)
	f.fake.SetInventory(500)
	m := f.loaded(t)

	m = press(t, m, "2")
	require.Equal(t, TabShop, m.Tab())
	entry, ok := m.SelectedEntry()
	require.True(t, ok)

	m = press(t, m, "enter")
	require.Equal(t, ViewConfirm, m.GetViewMode())
	m = press(t, m, "y")

	assert.Equal(t, entry.Item.Name+" added to your inventory.", m.Info())
	assert.Equal(t, 500-entry.Item.Price, f.fake.Coins())

	m = press(t, m, "3")
	item, ok := m.SelectedItem()
	require.True(t, ok)
	assert.Equal(t, entry.Item.ID, item.ID)
}

func TestPurchaseTooExpensiveShowsError(t *testing.T) {
	f := newFixture(t)
	f.fake.SetInventory(0)
	m := f.loaded(t)

	m = press(t, m, "2")
	m = press(t, m, "enter")
	m = press(t, m, "y")

	msg, showing := m.Error()
	require.True(t, showing)
	assert.Equal(t, "You don't have enough coins to purchase this item", msg)

	m = press(t, m, "x")
	_, showing = m.Error()
	assert.False(t, showing)
}

func TestUseThemeItemRestyles(t *testing.T) {
	f := newFixture(t)
	f.fake.SetInventory(0, model.InventoryItem{
		ID: "theme-2", Name: "Neon Synthwave Theme", Category: model.CategoryThemes,
		Rarity: model.RarityEpic, ThemeID: "neonSynthwave",
	})
	m := f.loaded(t)

	m = press(t, m, "3")
	m = press(t, m, "enter")

	assert.Equal(t, "Neon Synthwave Theme has been applied!", m.Info())
	assert.Equal(t, "neonSynthwave", f.themes.Current())

	primary := lipgloss.Color(theme.TerminalColor(f.themes.Palette().Primary))
	assert.Equal(t, primary, m.styles.spinner.GetForeground())
	assert.Equal(t, primary, m.spinner.Style.GetForeground())
}

func TestClaimAchievement(t *testing.T) {
	f := newFixture(t)
	f.fake.SetInventory(20)
	f.fake.SetAchievements(model.Achievement{
		ID: "a1", Name: "First Steps", Category: "habits", Progress: 1, Total: 1,
		Earned: true, CoinReward: 25,
	})
	m := f.loaded(t)

	m = press(t, m, "4")
	m = press(t, m, "enter")

	assert.Equal(t, "Reward claimed! +25 coins", m.Info())
	assert.Equal(t, 45, f.fake.Coins())

	m = press(t, m, "enter")
	msg, showing := m.Error()
	require.True(t, showing)
	assert.Equal(t, "This achievement has no reward to claim yet", msg)
}

func TestActionsIgnoredWhileBusy(t *testing.T) {
	f := newFixture(t)
	seedHabits(f.fake)
	m := f.loaded(t)
	m.pending = ActionComplete

	next, cmd := m.Update(key("enter"))
	assert.Nil(t, cmd)
	assert.Equal(t, ActionComplete, next.(Model).pending)

	_, cmd = m.Update(key("r"))
	assert.Nil(t, cmd)
}

func TestHelpToggle(t *testing.T) {
	m := newFixture(t).model

	m = update(t, m, key("?"))
	assert.Equal(t, ViewHelp, m.GetViewMode())
	m = update(t, m, key("esc"))
	assert.Equal(t, ViewList, m.GetViewMode())
}

func TestQuitKeys(t *testing.T) {
	m := newFixture(t).model
	for _, k := range []string{"q", "ctrl+c"} {
		_, cmd := m.Update(key(k))
		require.NotNil(t, cmd, k)
		assert.Equal(t, tea.Quit(), cmd(), k)
	}
}

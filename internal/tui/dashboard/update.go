package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	minWidth  = 80
	minHeight = 24
)

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.restyle()

		if m.width < minWidth || m.height < minHeight {
			m.showError = true
			m.errorMsg = fmt.Sprintf("Terminal too small (%dx%d). Minimum size: %dx%d",
				m.width, m.height, minWidth, minHeight)
		} else if m.showError && strings.HasPrefix(m.errorMsg, "Terminal too small") {
			m.showError = false
			m.errorMsg = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case LoadedMsg:
		m.loading = false
		m.signedOut = false
		m.notices = msg.Notices
		m.clampCursors()
		m.restyle()
		return m, nil

	case ActionDoneMsg:
		m.pending = ""
		m.info = msg.Message
		m.showError = false
		m.errorMsg = ""
		// Actions touch coins and items other pages show.
		m.loading = true
		m.restyle()
		return m, tea.Batch(m.spinner.Tick, loadAllCmd(m.ctx, m.pages))

	case ErrorMsg:
		m.loading = false
		m.pending = ""
		m.info = ""
		m.showError = true
		m.errorMsg = msg.Message
		m.signedOut = msg.SignedOut
		return m, nil

	case ClearErrorMsg:
		m.showError = false
		m.errorMsg = ""
		return m, nil
	}

	return m, nil
}

// handleKeyPress handles keyboard input based on current view mode
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.viewMode {
	case ViewList:
		return m.handleListKeys(msg)
	case ViewHelp:
		return m.handleHelpKeys(msg)
	case ViewConfirm:
		return m.handleConfirmKeys(msg)
	default:
		return m, nil
	}
}

// handleListKeys handles keys in list view
func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "x", "esc":
		if m.showError {
			m.showError = false
			m.errorMsg = ""
		}
		return m, nil

	case "q", "ctrl+c":
		return m, tea.Quit

	case "tab", "right", "l":
		m.NextTab()
		return m, nil

	case "shift+tab", "left", "h":
		m.PrevTab()
		return m, nil

	case "1", "2", "3", "4":
		m.tab = Tab(msg.String()[0] - '1')
		return m, nil

	case "up", "k":
		m.MoveCursorUp()
		return m, nil

	case "down", "j":
		m.MoveCursorDown()
		return m, nil

	case "enter", " ":
		return m.activate()

	case "d":
		if m.tab != TabHabits || m.IsLoading() {
			return m, nil
		}
		if h, ok := m.SelectedHabit(); ok {
			m.confirm = confirmation{
				action:  ActionDelete,
				id:      h.ID,
				message: fmt.Sprintf("Delete '%s'?", h.Title),
			}
			m.viewMode = ViewConfirm
		}
		return m, nil

	case "r":
		if m.IsLoading() {
			return m, nil
		}
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, loadAllCmd(m.ctx, m.pages))

	case "?":
		m.viewMode = ViewHelp
		return m, nil
	}

	return m, nil
}

// activate runs the current tab's primary action on the selected row.
// Purchases are confirmed first since they spend coins.
func (m Model) activate() (tea.Model, tea.Cmd) {
	if m.IsLoading() {
		return m, nil
	}
	switch m.tab {
	case TabHabits:
		if h, ok := m.SelectedHabit(); ok {
			return m.start(ActionComplete, completeCmd(m.ctx, m.pages, h.ID, h.Title))
		}
	case TabShop:
		if e, ok := m.SelectedEntry(); ok {
			m.confirm = confirmation{
				action:  ActionPurchase,
				id:      e.Item.ID,
				message: fmt.Sprintf("Buy '%s' for %d coins?", e.Item.Name, e.Item.Price),
			}
			m.viewMode = ViewConfirm
		}
	case TabInventory:
		if it, ok := m.SelectedItem(); ok {
			return m.start(ActionUse, useCmd(m.ctx, m.pages, it.ID))
		}
	case TabAchievements:
		if a, ok := m.SelectedAchievement(); ok {
			return m.start(ActionClaim, claimCmd(m.ctx, m.pages, a.ID))
		}
	}
	return m, nil
}

func (m Model) start(action string, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	m.pending = action
	m.info = ""
	return m, tea.Batch(m.spinner.Tick, cmd)
}

// handleHelpKeys handles keys in help view
func (m Model) handleHelpKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "?", "esc", "q":
		m.viewMode = ViewList
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

// handleConfirmKeys handles keys in confirmation dialog
func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		c := m.confirm
		m.confirm = confirmation{}
		m.viewMode = ViewList

		switch c.action {
		case ActionDelete:
			return m.start(ActionDelete, deleteCmd(m.ctx, m.pages, c.id))
		case ActionPurchase:
			return m.start(ActionPurchase, purchaseCmd(m.ctx, m.pages, c.id))
		}
		return m, nil

	case "n", "N", "esc":
		m.confirm = confirmation{}
		m.viewMode = ViewList
		return m, nil

	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

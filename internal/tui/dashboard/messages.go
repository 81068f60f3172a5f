package dashboard

// ViewMode determines which screen to render
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewHelp
	ViewConfirm
)

// Tab is one of the dashboard's pages.
type Tab int

const (
	TabHabits Tab = iota
	TabShop
	TabInventory
	TabAchievements
	tabCount
)

var tabTitles = [tabCount]string{"Habits", "Shop", "Inventory", "Achievements"}

func (t Tab) String() string {
	if t < 0 || t >= tabCount {
		return "Unknown"
	}
	return tabTitles[t]
}

// LoadedMsg reports that every page finished loading. Notices are the
// inline fetch messages the pages collected.
type LoadedMsg struct {
	Notices []string
}

// ActionDoneMsg reports a successful action with the message to show.
type ActionDoneMsg struct {
	Action  string
	Message string
}

// ErrorMsg indicates a general error occurred
type ErrorMsg struct {
	Message string
	// SignedOut is set when the stored token is missing.
	SignedOut bool
}

// ClearErrorMsg requests error banner dismissal
type ClearErrorMsg struct{}

// confirmation is a pending action awaiting y/n.
type confirmation struct {
	action  string
	id      string
	message string
}

// Package model defines the entities Momentum reads from the habit API.
// The API owns them; the client replaces its copies with whatever the server
// returns and never derives an entity locally.
package model

import "strings"

// Frequency values accepted by the API.
const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
)

// Habit is a recurring activity the user completes for coins.
type Habit struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	Frequency        string `json:"frequency"`
	Category         string `json:"category"`
	TimeOfDay        string `json:"timeOfDay"`
	Difficulty       string `json:"difficulty"`
	Color            string `json:"color"`
	CoinReward       int    `json:"coinReward"`
	Streak           int    `json:"streak"`
	TotalCompletions int    `json:"totalCompletions"`
	CompletedToday   bool   `json:"completedToday"`
	CreatedAt        string `json:"createdAt,omitempty"`
}

// NewHabit holds the fields submitted when creating a habit.
type NewHabit struct {
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
	Frequency   string `json:"frequency" validate:"required,oneof=daily weekly monthly"`
	Category    string `json:"category" validate:"required"`
	TimeOfDay   string `json:"timeOfDay" validate:"required,oneof=any morning afternoon evening"`
	Difficulty  string `json:"difficulty" validate:"required,oneof=easy medium hard"`
	Color       string `json:"color" validate:"required,hexcolor"`
	CoinReward  int    `json:"coinReward" validate:"min=1,max=1000"`
}

// DefaultNewHabit returns the form defaults the dashboard starts from.
func DefaultNewHabit() NewHabit {
	return NewHabit{
		Frequency:  FrequencyDaily,
		Category:   "wellness",
		TimeOfDay:  "any",
		Difficulty: "medium",
		Color:      "#00DCFF",
		CoinReward: 10,
	}
}

// Matches reports whether the habit's title or description contains query,
// ignoring case. An empty query matches everything.
func (h Habit) Matches(query string) bool {
	return containsFold(query, h.Title, h.Description)
}

func containsFold(query string, fields ...string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

package model

// Achievement is a milestone the API tracks for the user.
type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Rarity      string `json:"rarity"`
	Progress    int    `json:"progress"`
	Total       int    `json:"total"`
	Earned      bool   `json:"earned"`
	Claimed     bool   `json:"claimed"`
	CoinReward  int    `json:"coinReward"`
}

// Matches reports whether the achievement's name or description contains query.
func (a Achievement) Matches(query string) bool {
	return containsFold(query, a.Name, a.Description)
}

// Claimable reports whether the reward can be collected.
func (a Achievement) Claimable() bool {
	return a.Earned && !a.Claimed
}

// ProgressPercent returns progress as a rounded percentage capped at 100.
func (a Achievement) ProgressPercent() int {
	if a.Total <= 0 {
		if a.Earned {
			return 100
		}
		return 0
	}
	pct := Percent(a.Progress, a.Total)
	if pct > 100 {
		return 100
	}
	return pct
}

// Percent returns part/whole as a percentage rounded to the nearest integer,
// or 0 when whole is not positive.
func Percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return (part*100 + whole/2) / whole
}

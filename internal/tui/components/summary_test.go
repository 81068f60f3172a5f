package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSummaryView(t *testing.T) {
	t.Parallel()

	t.Run("renders nothing without stats", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "", NewSummary().View())
	})

	t.Run("renders each stat in order", func(t *testing.T) {
		t.Parallel()
		view := NewSummary(
			Stat{Label: "Streak", Value: "4"},
			Stat{Label: "Coins", Value: "150"},
		).View()
		require.Contains(t, view, "Streak")
		require.Contains(t, view, "150")
		require.Less(t, strings.Index(view, "Streak"), strings.Index(view, "Coins"))
	})
}

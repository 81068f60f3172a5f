package tui

import (
	"bytes"
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type quitter struct{ seen []string }

func (q quitter) Init() tea.Cmd { return nil }

func (q quitter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		q.seen = append(q.seen, k.String())
		// Runes read in one chunk may arrive as a single key.
		if strings.Contains(k.String(), "q") {
			return q, tea.Quit
		}
	}
	return q, nil
}

func (q quitter) View() string { return "" }

func TestRunFeedsInputUntilQuit(t *testing.T) {
	final, err := Run(context.Background(), quitter{}, Options{
		In:       strings.NewReader("jq"),
		Out:      &bytes.Buffer{},
		Headless: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "jq", strings.Join(final.(quitter).seen, ""))
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, quitter{}, Options{
		In:       strings.NewReader(""),
		Out:      &bytes.Buffer{},
		Headless: true,
	})
	assert.NoError(t, err)
}

package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTerminalColor(t *testing.T) {
	tests := map[string]string{
		"#00DCFF":                  "#00DCFF",
		"rgba(255, 255, 255, 0.1)": "#FFFFFF",
		"rgb(74, 222, 128)":        "#4ADE80",
		"rgba(300, -4, 16, 1)":     "#FF0010",
		"transparent":              "",
		"rgba(1, 2)":               "",
	}
	for in, want := range tests {
		assert.Equal(t, want, TerminalColor(in), in)
	}
}

func TestStylesRender(t *testing.T) {
	styles := Styles(Builtin().Default().Palette)
	assert.Contains(t, styles.Title.Render("Momentum"), "Momentum")
	assert.Contains(t, styles.Card.Render("body"), "body")
}

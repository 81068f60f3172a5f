package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinRegistry(t *testing.T) {
	reg := Builtin()

	ids := reg.IDs()
	assert.Len(t, ids, 16)
	assert.Equal(t, DefaultID, ids[0])
	assert.Equal(t, DefaultID, reg.Default().ID)

	for _, id := range ids {
		theme, ok := reg.Lookup(id)
		require.True(t, ok, id)
		assert.NotEmpty(t, theme.Name, id)
		for _, prop := range theme.Palette.Properties() {
			assert.NotEmpty(t, prop.Value, "%s %s", id, prop.Name)
		}
	}

	_, ok := reg.Lookup("doesNotExist")
	assert.False(t, ok)
}

func TestBasicPalette(t *testing.T) {
	basic := Builtin().Default().Palette
	assert.Equal(t, "#00DCFF", basic.Primary)
	assert.Equal(t, "#3B82F6", basic.Secondary)
	assert.Equal(t, "rgba(0, 0, 0, 0.4)", basic.CardBg)
}

func TestPaletteProperties(t *testing.T) {
	props := Builtin().Default().Palette.Properties()
	require.Len(t, props, 8)

	names := make([]string, 0, len(props))
	for _, p := range props {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{
		"--theme-primary", "--theme-secondary", "--theme-accent", "--theme-background",
		"--theme-cardBg", "--theme-borderColor", "--theme-textColor", "--theme-textMuted",
	}, names)
}

func TestNewRegistryRejectsBadInput(t *testing.T) {
	_, err := NewRegistry("missing", Theme{ID: "a"})
	assert.Error(t, err)

	_, err = NewRegistry("a", Theme{ID: "a"}, Theme{ID: "a"})
	assert.Error(t, err)

	_, err = NewRegistry("a", Theme{Name: "nameless"})
	assert.Error(t, err)
}

func TestSortedIDs(t *testing.T) {
	ids := Builtin().SortedIDs()
	assert.Equal(t, "basic", ids[0])
	assert.Equal(t, "vintagePaper", ids[len(ids)-1])
}

func TestWithDefault(t *testing.T) {
	reg, err := Builtin().WithDefault("darkMinimal")
	require.NoError(t, err)
	assert.Equal(t, "darkMinimal", reg.Default().ID)
	assert.Equal(t, Builtin().IDs(), reg.IDs())
	assert.Equal(t, DefaultID, Builtin().Default().ID)

	_, err = Builtin().WithDefault("nope")
	assert.Error(t, err)
}

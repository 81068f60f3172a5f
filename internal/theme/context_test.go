package theme

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/momentum/internal/storage"
)

func TestContextApplyKnownTheme(t *testing.T) {
	ctx := context.Background()
	reg := Builtin()

	for _, id := range reg.IDs() {
		t.Run(id, func(t *testing.T) {
			store := storage.NewMemoryStore(nil)
			sheet := NewSheet()
			tc := NewContext(reg, store, sheet, nil)

			require.True(t, tc.Apply(ctx, id))
			assert.Equal(t, id, tc.Current())

			saved, ok, err := store.Get(ctx, storage.KeyTheme)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, id, saved)

			want, _ := reg.Lookup(id)
			root := sheet.Snapshot().RootProperties
			require.Len(t, root, 8)
			for _, prop := range want.Palette.Properties() {
				assert.Equal(t, prop.Value, root[prop.Name], prop.Name)
			}
		})
	}
}

func TestContextApplyUnknownTheme(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore(nil)
	sheet := NewSheet()
	tc := NewContext(nil, store, sheet, nil)
	require.True(t, tc.Apply(ctx, "ocean"))

	before := sheet.Snapshot()
	mutations := sheet.Mutations()

	assert.False(t, tc.Apply(ctx, "doesNotExist"))
	assert.Equal(t, "ocean", tc.Current())
	assert.Equal(t, mutations, sheet.Mutations())
	assert.Equal(t, before, sheet.Snapshot())

	saved, _, err := store.Get(ctx, storage.KeyTheme)
	require.NoError(t, err)
	assert.Equal(t, "ocean", saved)
}

func TestContextLoad(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		seed map[string]string
		want string
	}{
		{name: "empty store", seed: nil, want: DefaultID},
		{name: "saved theme", seed: map[string]string{storage.KeyTheme: "cyberpunk"}, want: "cyberpunk"},
		{name: "unknown saved theme", seed: map[string]string{storage.KeyTheme: "retro"}, want: DefaultID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet := NewSheet()
			tc := NewContext(nil, storage.NewMemoryStore(tt.seed), sheet, nil)

			assert.Equal(t, tt.want, tc.Load(ctx))
			assert.Equal(t, tt.want, tc.Current())
			assert.Equal(t, tc.Palette().Primary, sheet.Snapshot().RootProperties["--theme-primary"])
		})
	}
}

func TestContextOnChange(t *testing.T) {
	ctx := context.Background()
	tc := NewContext(nil, nil, nil, nil)

	var seen []string
	tc.OnChange(func(_ context.Context, id string) { seen = append(seen, id) })

	tc.Apply(ctx, "nature")
	tc.Apply(ctx, "nope")
	tc.Apply(ctx, "ocean")

	assert.Equal(t, []string{"nature", "ocean"}, seen)
}

func TestContextThemes(t *testing.T) {
	tc := NewContext(nil, nil, nil, nil)
	themes := tc.Themes()
	assert.Len(t, themes, 16)
	assert.Equal(t, "#00DCFF", themes["basic"].Primary)
}

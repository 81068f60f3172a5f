package dashboard

import (
	"context"

	"github.com/alexisbeaulieu97/momentum/internal/api"
	"github.com/alexisbeaulieu97/momentum/internal/catalog"
	"github.com/alexisbeaulieu97/momentum/internal/logging"
	"github.com/alexisbeaulieu97/momentum/internal/theme"
	"github.com/alexisbeaulieu97/momentum/internal/views"
)

// Pages are the views the dashboard drives. Each one keeps its own state;
// the dashboard only reads them and forwards actions.
type Pages struct {
	Habits       *views.Dashboard
	Shop         *views.Shop
	Inventory    *views.Inventory
	Achievements *views.Achievements
	Profile      *views.ProfileMenu
}

// NewPages builds every page against client, which must carry the user's
// token.
func NewPages(client *api.Client, cat *catalog.Catalog, themes views.ThemeSelector, log logging.Logger) Pages {
	return Pages{
		Habits:       views.NewDashboard(client, log),
		Shop:         views.NewShop(client, cat, log),
		Inventory:    views.NewInventory(client, themes, log),
		Achievements: views.NewAchievements(client, log),
		Profile:      views.NewProfileMenu(client, log),
	}
}

type loader interface {
	Load(ctx context.Context) error
	Status() views.Status
}

func (p Pages) loaders() []loader {
	return []loader{p.Habits, p.Shop, p.Inventory, p.Achievements, p.Profile}
}

// ThemeSource supplies the palette the dashboard colors itself with.
// *theme.Context satisfies it.
type ThemeSource interface {
	Current() string
	Palette() theme.Palette
}

type staticTheme struct{ t theme.Theme }

func (s staticTheme) Current() string        { return s.t.ID }
func (s staticTheme) Palette() theme.Palette { return s.t.Palette }

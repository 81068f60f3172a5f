package views

import (
	"context"
	"fmt"

	"github.com/alexisbeaulieu97/momentum/internal/api"
	"github.com/alexisbeaulieu97/momentum/internal/logging"
	"github.com/alexisbeaulieu97/momentum/internal/model"
	momentumerrors "github.com/alexisbeaulieu97/momentum/pkg/errors"
)

// ThemeSelector is the part of the theme context the inventory drives.
type ThemeSelector interface {
	Apply(ctx context.Context, id string) bool
}

// Inventory is the owned-items page.
type Inventory struct {
	page
	client *api.Client
	themes ThemeSelector
	log    logging.Logger

	items []model.InventoryItem
	coins int
}

// NewInventory creates an unloaded inventory. themes may be nil when no
// theme context is attached.
func NewInventory(client *api.Client, themes ThemeSelector, log logging.Logger) *Inventory {
	return &Inventory{client: client, themes: themes, log: logging.OrNoOp(log)}
}

// Load fetches owned items and coins. An active theme item re-applies its
// theme.
func (v *Inventory) Load(ctx context.Context) error {
	inv, err := v.client.Inventory(ctx)
	if fetchFailed(err) {
		return err
	}

	v.mu.Lock()
	v.notices = nil
	v.items, v.coins = nil, 0
	if err != nil {
		v.log.Error(ctx, "fetch inventory", "error", err)
		v.notices = append(v.notices, "Could not load your inventory.")
	} else {
		v.items, v.coins = inv.Items, inv.Coins
	}
	v.loaded = true
	active, hasActive := v.activeLocked(model.CategoryThemes)
	v.mu.Unlock()

	if hasActive && active.ThemeID != "" && v.themes != nil {
		v.themes.Apply(ctx, active.ThemeID)
	}
	return nil
}

// Items returns owned items matching f.
func (v *Inventory) Items(f ItemFilter) []model.InventoryItem {
	v.mu.RLock()
	defer v.mu.RUnlock()
	var out []model.InventoryItem
	for _, it := range v.items {
		if f.keeps(it.Category) && it.Matches(f.Query) {
			out = append(out, it)
		}
	}
	return out
}

// Coins returns the coin balance.
func (v *Inventory) Coins() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.coins
}

// Active returns the active item of category, if any.
func (v *Inventory) Active(category string) (model.InventoryItem, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.activeLocked(category)
}

func (v *Inventory) activeLocked(category string) (model.InventoryItem, bool) {
	for _, it := range v.items {
		if it.Category == category && it.IsActive {
			return it, true
		}
	}
	return model.InventoryItem{}, false
}

// Use activates or consumes itemID and returns a confirmation message.
func (v *Inventory) Use(ctx context.Context, itemID string) (string, error) {
	key := "use:" + itemID
	v.mu.Lock()
	var item model.InventoryItem
	found := false
	for _, it := range v.items {
		if it.ID == itemID {
			item, found = it, true
			break
		}
	}
	if !found {
		v.mu.Unlock()
		return "", momentumerrors.NewUserError(MsgItemNotFound, nil)
	}
	if err := v.begin(key); err != nil {
		v.mu.Unlock()
		return "", err
	}
	v.mu.Unlock()
	defer v.end(key)

	resp, err := v.client.UseItem(ctx, itemID)
	if err != nil {
		v.log.Warn(ctx, "use item", "item_id", itemID, "error", err)
		return "", mutationError(err, MsgUseFailed)
	}

	v.mu.Lock()
	if resp.CurrentCoins != nil {
		v.coins = *resp.CurrentCoins
	}
	msg, applyTheme := v.applyUseLocked(item)
	v.mu.Unlock()

	if applyTheme != "" && v.themes != nil {
		if !v.themes.Apply(ctx, applyTheme) {
			v.log.Warn(ctx, "item names unknown theme", "item_id", itemID, "theme", applyTheme)
		}
	}
	v.log.Info(ctx, "item used", "item_id", itemID)
	return msg, nil
}

// applyUseLocked patches local state after the backend accepted a use. It
// returns the confirmation message and, for theme items, the theme to apply.
func (v *Inventory) applyUseLocked(item model.InventoryItem) (string, string) {
	switch item.Category {
	case model.CategoryThemes:
		v.setOnlyActive(model.CategoryThemes, item.ID)
		return fmt.Sprintf("%s has been applied!", item.Name), item.ThemeID
	case model.CategoryBackgrounds:
		v.setOnlyActive(model.CategoryBackgrounds, item.ID)
		return fmt.Sprintf("%s has been applied!", item.Name), ""
	case model.CategoryPowerups:
		if item.ID == model.BonusCoinsItemID {
			v.items = removeByID(v.items, item.ID, inventoryID)
			return "You received 50 bonus coins!", ""
		}
		// A zero usageLimit has no use count to spend.
		if item.UsageLimit > 0 {
			left := item.UsesLeft
			if left == 0 {
				left = item.UsageLimit
			}
			if left <= 1 {
				v.items = removeByID(v.items, item.ID, inventoryID)
			} else {
				next := item
				next.UsesLeft = left - 1
				v.items, _ = replaceByID(v.items, item.ID, inventoryID, next)
			}
		}
		return fmt.Sprintf("%s has been activated!", item.Name), ""
	default:
		return fmt.Sprintf("%s has been used.", item.Name), ""
	}
}

func (v *Inventory) setOnlyActive(category, id string) {
	next := make([]model.InventoryItem, len(v.items))
	for i, it := range v.items {
		if it.Category == category {
			it.IsActive = it.ID == id
		}
		next[i] = it
	}
	v.items = next
}

func inventoryID(i model.InventoryItem) string { return i.ID }

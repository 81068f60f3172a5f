package views

import (
	"context"

	"github.com/alexisbeaulieu97/momentum/internal/api"
	"github.com/alexisbeaulieu97/momentum/internal/catalog"
	"github.com/alexisbeaulieu97/momentum/internal/logging"
	"github.com/alexisbeaulieu97/momentum/internal/model"
	momentumerrors "github.com/alexisbeaulieu97/momentum/pkg/errors"
)

// ItemFilter narrows shop and inventory listings by category ("" or "all"
// for every category) and a case-insensitive name/description query.
type ItemFilter struct {
	Category string
	Query    string
}

func (f ItemFilter) keeps(category string) bool {
	return f.Category == "" || f.Category == "all" || f.Category == category
}

// ShopEntry is a catalog item with the viewer's relationship to it.
type ShopEntry struct {
	Item       model.ShopItem
	Owned      bool
	Affordable bool
}

// Shop is the store page.
type Shop struct {
	page
	client  *api.Client
	catalog *catalog.Catalog
	log     logging.Logger

	owned []model.InventoryItem
	coins int
}

// NewShop creates an unloaded shop selling the items in cat.
func NewShop(client *api.Client, cat *catalog.Catalog, log logging.Logger) *Shop {
	if cat == nil {
		cat = catalog.Builtin()
	}
	return &Shop{client: client, catalog: cat, log: logging.OrNoOp(log)}
}

// Load fetches owned items and the coin balance.
func (s *Shop) Load(ctx context.Context) error {
	inv, err := s.client.Inventory(ctx)
	if fetchFailed(err) {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.notices = nil
	s.owned, s.coins = nil, 0
	if err != nil {
		s.log.Error(ctx, "fetch inventory", "error", err)
		s.notices = append(s.notices, "Could not load your inventory. Owned items may show as available.")
	} else {
		s.owned, s.coins = inv.Items, inv.Coins
	}
	s.loaded = true
	return nil
}

// Entries returns the catalog items matching f in catalog order.
func (s *Shop) Entries(f ItemFilter) []ShopEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []ShopEntry
	for _, item := range s.catalog.Items() {
		if !f.keeps(item.Category) || !item.Matches(f.Query) {
			continue
		}
		out = append(out, ShopEntry{
			Item:       item,
			Owned:      s.ownsLocked(item.ID),
			Affordable: s.coins >= item.Price,
		})
	}
	return out
}

// Owned returns the owned items.
func (s *Shop) Owned() []model.InventoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.InventoryItem(nil), s.owned...)
}

// Coins returns the coin balance.
func (s *Shop) Coins() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.coins
}

// Purchase buys itemID. Unknown, already owned and unaffordable items fail
// without contacting the backend.
func (s *Shop) Purchase(ctx context.Context, itemID string) (model.InventoryItem, error) {
	item, ok := s.catalog.Find(itemID)
	if !ok {
		return model.InventoryItem{}, momentumerrors.NewUserError(MsgItemNotFound, nil)
	}

	key := "purchase:" + itemID
	s.mu.Lock()
	switch {
	case s.ownsLocked(itemID):
		s.mu.Unlock()
		return model.InventoryItem{}, momentumerrors.NewUserError(MsgAlreadyOwned, nil)
	case s.coins < item.Price:
		s.mu.Unlock()
		return model.InventoryItem{}, momentumerrors.NewUserError(MsgNotEnoughCoins, nil)
	}
	if err := s.begin(key); err != nil {
		s.mu.Unlock()
		return model.InventoryItem{}, err
	}
	s.mu.Unlock()
	defer s.end(key)

	resp, err := s.client.Purchase(ctx, item)
	if err != nil {
		s.log.Warn(ctx, "purchase", "item_id", itemID, "error", err)
		return model.InventoryItem{}, mutationError(err, MsgPurchaseFailed)
	}

	s.mu.Lock()
	if resp.CurrentCoins != nil {
		s.coins = *resp.CurrentCoins
	}
	s.owned = append(s.owned, resp.Item)
	s.mu.Unlock()
	s.log.Info(ctx, "item purchased", "item_id", itemID)
	return resp.Item, nil
}

func (s *Shop) ownsLocked(id string) bool {
	for _, it := range s.owned {
		if it.ID == id {
			return true
		}
	}
	return false
}

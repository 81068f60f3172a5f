package views_test

import (
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/momentum/internal/catalog"
	"github.com/alexisbeaulieu97/momentum/internal/model"
	"github.com/alexisbeaulieu97/momentum/internal/views"
	momentumerrors "github.com/alexisbeaulieu97/momentum/pkg/errors"
)

func TestShopLoadAndEntries(t *testing.T) {
	client, fake := newClient(t)
	fake.SetInventory(130, model.InventoryItem{ID: "theme-1", Category: model.CategoryThemes, ThemeID: "darkMinimal"})

	shop := views.NewShop(client, catalog.Builtin(), nil)
	require.NoError(t, shop.Load(ctx))
	assert.Equal(t, 130, shop.Coins())

	themes := shop.Entries(views.ItemFilter{Category: model.CategoryThemes})
	require.Len(t, themes, 15)
	assert.True(t, themes[0].Owned)
	assert.True(t, themes[0].Affordable)
	assert.False(t, themes[1].Owned)
	assert.False(t, themes[1].Affordable)

	found := shop.Entries(views.ItemFilter{Query: "streak"})
	require.Len(t, found, 1)
	assert.Equal(t, "powerup-1", found[0].Item.ID)
}

func TestShopPurchase(t *testing.T) {
	client, fake := newClient(t)
	fake.SetInventory(300)

	shop := views.NewShop(client, nil, nil)
	require.NoError(t, shop.Load(ctx))

	item, err := shop.Purchase(ctx, "theme-7")
	require.NoError(t, err)
	assert.Equal(t, "cyberpunk", item.ThemeID)
	assert.Equal(t, 100, shop.Coins())
	require.Len(t, shop.Owned(), 1)

	_, err = shop.Purchase(ctx, "theme-7")
	assert.Equal(t, views.MsgAlreadyOwned, momentumerrors.UserMessage(err, ""))
	assert.Equal(t, 1, countRequests(fake, http.MethodPost, "/inventory/purchase"))
}

func TestShopPurchaseLocalChecksSkipRequest(t *testing.T) {
	client, fake := newClient(t)
	fake.SetInventory(50)

	shop := views.NewShop(client, nil, nil)
	require.NoError(t, shop.Load(ctx))

	_, err := shop.Purchase(ctx, "theme-7")
	assert.Equal(t, views.MsgNotEnoughCoins, momentumerrors.UserMessage(err, ""))

	_, err = shop.Purchase(ctx, "theme-404")
	assert.Equal(t, views.MsgItemNotFound, momentumerrors.UserMessage(err, ""))

	assert.Zero(t, countRequests(fake, http.MethodPost, "/inventory/purchase"))
}

func TestShopPurchaseFailureLeavesStateUnchanged(t *testing.T) {
	client, fake := newClient(t)
	owned := model.InventoryItem{ID: "background-1", Category: model.CategoryBackgrounds}
	fake.SetInventory(500, owned)
	fake.Fail(http.MethodPost, "/inventory/purchase", http.StatusBadRequest, "Not enough coins")

	shop := views.NewShop(client, nil, nil)
	require.NoError(t, shop.Load(ctx))
	beforeOwned := shop.Owned()

	_, err := shop.Purchase(ctx, "theme-14")
	require.Error(t, err)
	assert.Equal(t, "Not enough coins", momentumerrors.UserMessage(err, ""))
	assert.Equal(t, 500, shop.Coins())
	if diff := cmp.Diff(beforeOwned, shop.Owned()); diff != "" {
		t.Fatalf("owned items changed (-before +after):\n%s", diff)
	}
}

func TestShopPurchaseFallbackMessage(t *testing.T) {
	client, fake := newClient(t)
	fake.SetInventory(500)
	fake.Fail(http.MethodPost, "/inventory/purchase", http.StatusInternalServerError, "")

	shop := views.NewShop(client, nil, nil)
	require.NoError(t, shop.Load(ctx))

	_, err := shop.Purchase(ctx, "powerup-3")
	assert.Equal(t, views.MsgPurchaseFailed, momentumerrors.UserMessage(err, ""))
}

func TestShopLoadFailure(t *testing.T) {
	client, fake := newClient(t)
	fake.Fail(http.MethodGet, "/inventory", http.StatusBadGateway, "")

	shop := views.NewShop(client, nil, nil)
	require.NoError(t, shop.Load(ctx))
	assert.Len(t, shop.Status().Notices, 1)
	assert.Zero(t, shop.Coins())
	assert.Len(t, shop.Entries(views.ItemFilter{}), 23)
}

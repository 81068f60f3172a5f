package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/momentum/internal/logging"
	"github.com/alexisbeaulieu97/momentum/internal/views"
)

func newShopCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shop",
		Short: "Browse and buy items",
	}
	cmd.AddCommand(newShopListCmd(flags))
	cmd.AddCommand(newShopBuyCmd(flags))
	return cmd
}

func loadShop(ctx context.Context, app *AppContext, log logging.Logger, operation string) (*views.Shop, error) {
	client, err := app.AuthedClient(ctx)
	if err != nil {
		return nil, actionError(operation, "reading the stored token", err, views.MsgUnavailable)
	}
	shop := views.NewShop(client, app.Catalog, log)
	if err := shop.Load(ctx); err != nil {
		return nil, actionError(operation, "loading the shop", err, views.MsgUnavailable)
	}
	return shop, nil
}

func newShopListCmd(flags *rootFlags) *cobra.Command {
	filter := views.ItemFilter{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the catalog with prices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, "command.shop.list", func(ctx context.Context, app *AppContext, log logging.Logger) error {
				shop, err := loadShop(ctx, app, log, "list shop")
				if err != nil {
					return err
				}

				p := app.Printer(ctx, cmd.OutOrStdout())
				p.Title("Shop")
				p.Line("Balance: %s", p.Coins(shop.Coins()))
				p.Notices(shop.Status().Notices)

				entries := shop.Entries(filter)
				rows := make([][]string, 0, len(entries))
				for _, e := range entries {
					state := "buy"
					switch {
					case e.Owned:
						state = "owned"
					case !e.Affordable:
						state = "not enough coins"
					}
					rows = append(rows, []string{e.Item.ID, e.Item.Name, e.Item.Category, e.Item.Rarity, strconv.Itoa(e.Item.Price), state})
				}
				p.Line("")
				return p.Table([]string{"ID", "NAME", "CATEGORY", "RARITY", "PRICE", "STATUS"}, rows)
			})
		},
	}
	cmd.Flags().StringVarP(&filter.Category, "category", "c", "all", "themes, powerups or backgrounds")
	cmd.Flags().StringVarP(&filter.Query, "query", "q", "", "Only show items whose name or description match")
	return cmd
}

func newShopBuyCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "buy <item-id>",
		Short: "Purchase an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return withApp(cmd, flags, "command.shop.buy", func(ctx context.Context, app *AppContext, log logging.Logger) error {
				shop, err := loadShop(ctx, app, log, "buy item")
				if err != nil {
					return err
				}
				item, err := shop.Purchase(ctx, id)
				if err != nil {
					return actionError("buy item", fmt.Sprintf("purchasing %q", id), err, views.MsgPurchaseFailed)
				}
				p := app.Printer(ctx, cmd.OutOrStdout())
				p.Success("%s added to your inventory.", item.Name)
				p.Line("Balance: %s", p.Coins(shop.Coins()))
				return nil
			})
		},
	}
}

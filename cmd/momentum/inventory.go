package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/momentum/internal/logging"
	"github.com/alexisbeaulieu97/momentum/internal/theme"
	"github.com/alexisbeaulieu97/momentum/internal/views"
)

func newInventoryCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "List and use owned items",
	}
	cmd.AddCommand(newInventoryListCmd(flags))
	cmd.AddCommand(newInventoryUseCmd(flags))
	return cmd
}

// loadInventory loads the inventory with the CLI theme context attached, so
// an active theme item re-applies and using one switches the CLI theme.
func loadInventory(ctx context.Context, app *AppContext, log logging.Logger, operation string) (*views.Inventory, *theme.Context, error) {
	client, err := app.AuthedClient(ctx)
	if err != nil {
		return nil, nil, actionError(operation, "reading the stored token", err, views.MsgUnavailable)
	}
	themes := app.ThemeContext(ctx)
	inv := views.NewInventory(client, themes, log)
	if err := inv.Load(ctx); err != nil {
		return nil, nil, actionError(operation, "loading the inventory", err, views.MsgUnavailable)
	}
	return inv, themes, nil
}

func newInventoryListCmd(flags *rootFlags) *cobra.Command {
	filter := views.ItemFilter{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show owned items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, "command.inventory.list", func(ctx context.Context, app *AppContext, log logging.Logger) error {
				inv, themes, err := loadInventory(ctx, app, log, "list inventory")
				if err != nil {
					return err
				}

				p := newPrinter(cmd.OutOrStdout(), themes.Palette())
				p.Title("Inventory")
				p.Line("Balance: %s", p.Coins(inv.Coins()))
				p.Notices(inv.Status().Notices)

				items := inv.Items(filter)
				if len(items) == 0 {
					p.Line("")
					p.Hint("Your inventory is empty. Run 'momentum shop list' to browse items.")
					return nil
				}
				rows := make([][]string, 0, len(items))
				for _, it := range items {
					uses := "-"
					if it.UsageLimit > 0 {
						uses = strconv.Itoa(it.UsesLeft)
					}
					rows = append(rows, []string{it.ID, it.Name, it.Category, it.Rarity, yesNo(it.IsActive), uses})
				}
				p.Line("")
				return p.Table([]string{"ID", "NAME", "CATEGORY", "RARITY", "ACTIVE", "USES LEFT"}, rows)
			})
		},
	}
	cmd.Flags().StringVarP(&filter.Category, "category", "c", "all", "themes, powerups or backgrounds")
	cmd.Flags().StringVarP(&filter.Query, "query", "q", "", "Only show items whose name or description match")
	return cmd
}

func newInventoryUseCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "use <item-id>",
		Short: "Apply a theme or background, or use a power-up",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return withApp(cmd, flags, "command.inventory.use", func(ctx context.Context, app *AppContext, log logging.Logger) error {
				inv, themes, err := loadInventory(ctx, app, log, "use item")
				if err != nil {
					return err
				}
				msg, err := inv.Use(ctx, id)
				if err != nil {
					return actionError("use item", fmt.Sprintf("using %q", id), err, views.MsgUseFailed)
				}
				newPrinter(cmd.OutOrStdout(), themes.Palette()).Success("%s", msg)
				return nil
			})
		},
	}
}

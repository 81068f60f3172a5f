package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/momentum/internal/logging"
	"github.com/alexisbeaulieu97/momentum/internal/tui"
	"github.com/alexisbeaulieu97/momentum/internal/tui/dashboard"
	"github.com/alexisbeaulieu97/momentum/internal/views"
)

func newDashboardCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Launch the interactive dashboard",
		Long:  `Launch the terminal dashboard to complete habits, shop, use items and claim rewards.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(cmd, flags)
		},
	}
}

func runDashboard(cmd *cobra.Command, flags *rootFlags) error {
	return withApp(cmd, flags, "command.dashboard", func(ctx context.Context, app *AppContext, log logging.Logger) error {
		client, err := app.AuthedClient(ctx)
		if err != nil {
			return actionError("open dashboard", "reading the stored token", err, views.MsgUnavailable)
		}

		themes := app.ThemeContext(ctx)
		pages := dashboard.NewPages(client, app.Catalog, themes, log)
		log.Info(ctx, "launching dashboard", "theme", themes.Current())

		_, err = tui.Run(ctx, dashboard.NewModel(ctx, pages, themes), tui.Options{
			In:  cmd.InOrStdin(),
			Out: cmd.OutOrStdout(),
		})
		if err != nil {
			return newCommandError("open dashboard", "running the terminal UI", err, "Run from an interactive terminal of at least 80x24.")
		}
		return nil
	})
}

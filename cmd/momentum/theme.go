package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/momentum/internal/logging"
	"github.com/alexisbeaulieu97/momentum/internal/theme"
)

func newThemeCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Inspect and select the color theme",
	}
	cmd.AddCommand(newThemeListCmd(flags))
	cmd.AddCommand(newThemeCurrentCmd(flags))
	cmd.AddCommand(newThemeApplyCmd(flags))
	return cmd
}

func newThemeListCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, "command.theme.list", func(ctx context.Context, app *AppContext, _ logging.Logger) error {
				current := app.ThemeContext(ctx).Current()
				rows := make([][]string, 0, len(app.Themes.IDs()))
				for _, id := range app.Themes.IDs() {
					t, _ := app.Themes.Lookup(id)
					mark := ""
					if id == current {
						mark = "*"
					}
					rows = append(rows, []string{mark, t.ID, t.Name, theme.TerminalColor(t.Palette.Primary), theme.TerminalColor(t.Palette.Accent)})
				}
				return app.Printer(ctx, cmd.OutOrStdout()).Table([]string{"", "ID", "NAME", "PRIMARY", "ACCENT"}, rows)
			})
		},
	}
}

func newThemeCurrentCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Show the selected theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, "command.theme.current", func(ctx context.Context, app *AppContext, _ logging.Logger) error {
				c := app.ThemeContext(ctx)
				p := newPrinter(cmd.OutOrStdout(), c.Palette())
				p.Title(c.Current())
				for _, prop := range c.Palette().Properties() {
					p.Line("  %s: %s", prop.Name, prop.Value)
				}
				return nil
			})
		},
	}
}

func newThemeApplyCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "apply <theme-id>",
		Short: "Select a theme for terminal output",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return withApp(cmd, flags, "command.theme.apply", func(ctx context.Context, app *AppContext, _ logging.Logger) error {
				c := app.ThemeContext(ctx)
				if !c.Apply(ctx, id) {
					return newCommandError("apply theme", fmt.Sprintf("selecting %q", id), fmt.Errorf("unknown theme %q", id), "Run 'momentum theme list' to see the available themes.")
				}
				newPrinter(cmd.OutOrStdout(), c.Palette()).Success("Theme set to %s", id)
				return nil
			})
		},
	}
}

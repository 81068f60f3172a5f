package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/momentum/internal/logging"
	"github.com/alexisbeaulieu97/momentum/internal/views"
)

func newAchievementsCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "achievements",
		Short: "Track milestones and claim rewards",
	}
	cmd.AddCommand(newAchievementsListCmd(flags))
	cmd.AddCommand(newAchievementsClaimCmd(flags))
	return cmd
}

func loadAchievements(ctx context.Context, app *AppContext, log logging.Logger, operation string) (*views.Achievements, error) {
	client, err := app.AuthedClient(ctx)
	if err != nil {
		return nil, actionError(operation, "reading the stored token", err, views.MsgUnavailable)
	}
	a := views.NewAchievements(client, log)
	if err := a.Load(ctx); err != nil {
		return nil, actionError(operation, "loading achievements", err, views.MsgUnavailable)
	}
	return a, nil
}

func newAchievementsListCmd(flags *rootFlags) *cobra.Command {
	filter := views.AchievementFilter{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show achievements and progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, "command.achievements.list", func(ctx context.Context, app *AppContext, log logging.Logger) error {
				a, err := loadAchievements(ctx, app, log, "list achievements")
				if err != nil {
					return err
				}

				stats := a.Stats()
				p := app.Printer(ctx, cmd.OutOrStdout())
				p.Title("Achievements")
				p.Line("%d/%d earned (%d%%) · %s", stats.Earned, stats.Total, stats.CompletionRate, p.Coins(a.Coins()))
				p.Notices(a.Status().Notices)

				list := a.Filtered(filter)
				if len(list) == 0 {
					p.Line("")
					p.Hint("No achievements match.")
					return nil
				}
				rows := make([][]string, 0, len(list))
				for _, ach := range list {
					state := fmt.Sprintf("%d%%", ach.ProgressPercent())
					switch {
					case ach.Claimed:
						state = "claimed"
					case ach.Claimable():
						state = "claimable"
					}
					rows = append(rows, []string{
						ach.ID, ach.Name, ach.Category, ach.Rarity,
						fmt.Sprintf("%d/%d", ach.Progress, ach.Total), strconv.Itoa(ach.CoinReward), state,
					})
				}
				p.Line("")
				return p.Table([]string{"ID", "NAME", "CATEGORY", "RARITY", "PROGRESS", "REWARD", "STATUS"}, rows)
			})
		},
	}
	cmd.Flags().StringVarP(&filter.Category, "category", "c", "all", "Only show one category")
	cmd.Flags().StringVar(&filter.Earned, "earned", views.EarnedAll, "all, earned or unearned")
	cmd.Flags().StringVarP(&filter.Query, "query", "q", "", "Only show achievements whose name or description match")
	return cmd
}

func newAchievementsClaimCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "claim <achievement-id>",
		Short: "Collect an earned reward",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return withApp(cmd, flags, "command.achievements.claim", func(ctx context.Context, app *AppContext, log logging.Logger) error {
				a, err := loadAchievements(ctx, app, log, "claim reward")
				if err != nil {
					return err
				}
				ach, err := a.Claim(ctx, id)
				if err != nil {
					return actionError("claim reward", fmt.Sprintf("claiming %q", id), err, views.MsgClaimFailed)
				}
				p := app.Printer(ctx, cmd.OutOrStdout())
				p.Success("Reward claimed! +%d coins", ach.CoinReward)
				p.Line("Balance: %s", p.Coins(a.Coins()))
				return nil
			})
		},
	}
}

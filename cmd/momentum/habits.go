package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/momentum/internal/logging"
	"github.com/alexisbeaulieu97/momentum/internal/model"
	"github.com/alexisbeaulieu97/momentum/internal/views"
)

func newHabitsCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "habits",
		Short: "List and track habits",
	}
	cmd.AddCommand(newHabitsListCmd(flags))
	cmd.AddCommand(newHabitsAddCmd(flags))
	cmd.AddCommand(newHabitsCompleteCmd(flags))
	cmd.AddCommand(newHabitsDeleteCmd(flags))
	return cmd
}

// loadDashboard signs the client in and loads the habits view.
func loadDashboard(ctx context.Context, app *AppContext, log logging.Logger, operation string) (*views.Dashboard, error) {
	client, err := app.AuthedClient(ctx)
	if err != nil {
		return nil, actionError(operation, "reading the stored token", err, views.MsgUnavailable)
	}
	dash := views.NewDashboard(client, log)
	if err := dash.Load(ctx); err != nil {
		return nil, actionError(operation, "loading habits", err, views.MsgUnavailable)
	}
	return dash, nil
}

type habitsListOptions struct {
	frequency string
	query     string
}

func newHabitsListCmd(flags *rootFlags) *cobra.Command {
	opts := &habitsListOptions{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show habits with today's progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, "command.habits.list", func(ctx context.Context, app *AppContext, log logging.Logger) error {
				dash, err := loadDashboard(ctx, app, log, "list habits")
				if err != nil {
					return err
				}
				return renderHabits(app.Printer(ctx, cmd.OutOrStdout()), dash, views.HabitFilter{Frequency: opts.frequency, Query: opts.query})
			})
		},
	}
	cmd.Flags().StringVarP(&opts.frequency, "frequency", "f", "all", "Only show daily, weekly or monthly habits")
	cmd.Flags().StringVarP(&opts.query, "query", "q", "", "Only show habits whose title or description match")
	return cmd
}

func renderHabits(p printer, dash *views.Dashboard, filter views.HabitFilter) error {
	stats := dash.Stats()
	p.Title("Habits")
	p.Line("%d habits · %d done today (%d%%) · best streak %d · %s",
		stats.Total, stats.CompletedToday, stats.CompletionRate, stats.LongestStreak, p.Coins(dash.Coins()))
	p.Notices(dash.Status().Notices)

	habits := dash.Filtered(filter)
	if len(habits) == 0 {
		p.Line("")
		p.Hint("No habits yet. Run 'momentum habits add <title>' to create one.")
		return nil
	}

	rows := make([][]string, 0, len(habits))
	for _, h := range habits {
		rows = append(rows, []string{
			h.ID, h.Title, h.Frequency, h.Category,
			strconv.Itoa(h.Streak), strconv.Itoa(h.CoinReward), yesNo(h.CompletedToday),
		})
	}
	p.Line("")
	return p.Table([]string{"ID", "TITLE", "FREQUENCY", "CATEGORY", "STREAK", "REWARD", "DONE TODAY"}, rows)
}

func newHabitsAddCmd(flags *rootFlags) *cobra.Command {
	form := model.DefaultNewHabit()
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a habit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form.Title = args[0]
			return withApp(cmd, flags, "command.habits.add", func(ctx context.Context, app *AppContext, log logging.Logger) error {
				dash, err := loadDashboard(ctx, app, log, "add habit")
				if err != nil {
					return err
				}
				habit, err := dash.Create(ctx, form)
				if err != nil {
					return actionError("add habit", fmt.Sprintf("creating %q", form.Title), err, views.MsgCreateHabitFailed)
				}
				p := app.Printer(ctx, cmd.OutOrStdout())
				p.Success("%s added to your habits.", habit.Title)
				p.Hint("ID: %s", habit.ID)
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.StringVarP(&form.Description, "description", "d", form.Description, "Optional description")
	f.StringVarP(&form.Frequency, "frequency", "f", form.Frequency, "daily, weekly or monthly")
	f.StringVarP(&form.Category, "category", "c", form.Category, "Category")
	f.StringVar(&form.TimeOfDay, "time", form.TimeOfDay, "any, morning, afternoon or evening")
	f.StringVar(&form.Difficulty, "difficulty", form.Difficulty, "easy, medium or hard")
	f.StringVar(&form.Color, "color", form.Color, "Card color as #RRGGBB")
	f.IntVar(&form.CoinReward, "reward", form.CoinReward, "Coins earned per completion")
	return cmd
}

func newHabitsCompleteCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <habit-id>",
		Short: "Mark a habit done for today",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return withApp(cmd, flags, "command.habits.complete", func(ctx context.Context, app *AppContext, log logging.Logger) error {
				dash, err := loadDashboard(ctx, app, log, "complete habit")
				if err != nil {
					return err
				}
				sent, err := dash.Complete(ctx, id)
				if err != nil {
					return actionError("complete habit", fmt.Sprintf("completing %q", id), err, views.MsgCompleteFailed)
				}

				p := app.Printer(ctx, cmd.OutOrStdout())
				if !sent {
					p.Line("Already completed today.")
					return nil
				}
				for _, h := range dash.Habits() {
					if h.ID == id {
						p.Success("%s completed! +%d coins", h.Title, h.CoinReward)
						p.Line("Streak: %d · Balance: %s", h.Streak, p.Coins(dash.Coins()))
					}
				}
				return nil
			})
		},
	}
}

func newHabitsDeleteCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <habit-id>",
		Short: "Delete a habit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return withApp(cmd, flags, "command.habits.delete", func(ctx context.Context, app *AppContext, log logging.Logger) error {
				client, err := app.AuthedClient(ctx)
				if err != nil {
					return actionError("delete habit", "reading the stored token", err, views.MsgUnavailable)
				}
				if err := views.NewDashboard(client, log).Delete(ctx, id); err != nil {
					return actionError("delete habit", fmt.Sprintf("deleting %q", id), err, views.MsgDeleteFailed)
				}
				app.Printer(ctx, cmd.OutOrStdout()).Success("Habit deleted.")
				return nil
			})
		},
	}
}

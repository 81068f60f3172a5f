package views

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/alexisbeaulieu97/momentum/internal/api"
	"github.com/alexisbeaulieu97/momentum/internal/logging"
	"github.com/alexisbeaulieu97/momentum/internal/model"
	"github.com/alexisbeaulieu97/momentum/internal/validation"
	momentumerrors "github.com/alexisbeaulieu97/momentum/pkg/errors"
)

// HabitFilter narrows the dashboard list. An empty or "all" Frequency keeps
// every habit; Query matches title or description, ignoring case.
type HabitFilter struct {
	Frequency string
	Query     string
}

// DashboardStats summarises the loaded habits.
type DashboardStats struct {
	Total          int
	CompletedToday int
	CompletionRate int
	LongestStreak  int
}

// Dashboard is the habits page.
type Dashboard struct {
	page
	client *api.Client
	log    logging.Logger

	habits []model.Habit
	coins  int
}

// NewDashboard creates an unloaded dashboard.
func NewDashboard(client *api.Client, log logging.Logger) *Dashboard {
	return &Dashboard{client: client, log: logging.OrNoOp(log)}
}

// Load fetches habits and the coin balance concurrently. A failed fetch
// leaves its part empty and adds a notice.
func (d *Dashboard) Load(ctx context.Context) error {
	var (
		g         errgroup.Group
		habits    []model.Habit
		inventory api.InventoryResponse
		habitsErr error
		coinsErr  error
	)
	g.Go(func() error {
		habits, habitsErr = d.client.Habits(ctx)
		return nil
	})
	g.Go(func() error {
		inventory, coinsErr = d.client.Inventory(ctx)
		return nil
	})
	_ = g.Wait()

	for _, err := range []error{habitsErr, coinsErr} {
		if fetchFailed(err) {
			return err
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.notices = nil
	d.habits = nil
	d.coins = 0
	if habitsErr != nil {
		d.log.Error(ctx, "fetch habits", "error", habitsErr)
		d.notices = append(d.notices, "Could not load your habits.")
	} else {
		d.habits = habits
	}
	if coinsErr != nil {
		d.log.Error(ctx, "fetch coins", "error", coinsErr)
		d.notices = append(d.notices, "Could not load your coin balance.")
	} else {
		d.coins = inventory.Coins
	}
	d.loaded = true
	return nil
}

// Habits returns every loaded habit.
func (d *Dashboard) Habits() []model.Habit {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]model.Habit(nil), d.habits...)
}

// Filtered returns the habits matching f.
func (d *Dashboard) Filtered(f HabitFilter) []model.Habit {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var out []model.Habit
	for _, h := range d.habits {
		if f.Frequency != "" && f.Frequency != "all" && !strings.EqualFold(h.Frequency, f.Frequency) {
			continue
		}
		if !h.Matches(f.Query) {
			continue
		}
		out = append(out, h)
	}
	return out
}

// Coins returns the coin balance.
func (d *Dashboard) Coins() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.coins
}

// Stats computes totals over the loaded habits.
func (d *Dashboard) Stats() DashboardStats {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var s DashboardStats
	s.Total = len(d.habits)
	for _, h := range d.habits {
		if h.CompletedToday {
			s.CompletedToday++
		}
		s.LongestStreak = max(s.LongestStreak, h.Streak)
	}
	s.CompletionRate = model.Percent(s.CompletedToday, s.Total)
	return s
}

// Create validates form and creates the habit, appending the server's copy.
func (d *Dashboard) Create(ctx context.Context, form model.NewHabit) (model.Habit, error) {
	form = withHabitDefaults(form)
	if err := validation.Form(form, validation.Messages{"title.required": MsgTitleRequired}); err != nil {
		return model.Habit{}, err
	}

	const key = "create"
	d.mu.Lock()
	if err := d.begin(key); err != nil {
		d.mu.Unlock()
		return model.Habit{}, err
	}
	d.mu.Unlock()
	defer d.end(key)

	habit, err := d.client.CreateHabit(ctx, form)
	if err != nil {
		d.log.Warn(ctx, "create habit", "error", err)
		return model.Habit{}, mutationError(err, MsgCreateHabitFailed)
	}

	d.mu.Lock()
	d.habits = append(d.habits, habit)
	d.mu.Unlock()
	d.log.Info(ctx, "habit created", "habit_id", habit.ID)
	return habit, nil
}

// Complete marks habit id done for today. Habits already completed today
// are left alone and no request is sent; the bool reports whether the
// backend was asked.
func (d *Dashboard) Complete(ctx context.Context, id string) (bool, error) {
	key := "complete:" + id
	d.mu.Lock()
	var current *model.Habit
	for i := range d.habits {
		if d.habits[i].ID == id {
			current = &d.habits[i]
			break
		}
	}
	if current == nil {
		d.mu.Unlock()
		return false, momentumerrors.NewUserError(MsgHabitNotFound, nil)
	}
	if current.CompletedToday {
		d.mu.Unlock()
		return false, nil
	}
	if err := d.begin(key); err != nil {
		d.mu.Unlock()
		return false, err
	}
	d.mu.Unlock()
	defer d.end(key)

	resp, err := d.client.CompleteHabit(ctx, id)
	if err != nil {
		d.log.Warn(ctx, "complete habit", "habit_id", id, "error", err)
		return true, mutationError(err, MsgCompleteFailed)
	}

	d.mu.Lock()
	d.habits, _ = replaceByID(d.habits, id, habitID, resp.Habit)
	if resp.CurrentCoins != nil {
		d.coins = *resp.CurrentCoins
	}
	d.mu.Unlock()
	return true, nil
}

// Delete removes habit id once the backend confirms.
func (d *Dashboard) Delete(ctx context.Context, id string) error {
	key := "delete:" + id
	d.mu.Lock()
	if err := d.begin(key); err != nil {
		d.mu.Unlock()
		return err
	}
	d.mu.Unlock()
	defer d.end(key)

	if err := d.client.DeleteHabit(ctx, id); err != nil {
		d.log.Warn(ctx, "delete habit", "habit_id", id, "error", err)
		return mutationError(err, MsgDeleteFailed)
	}

	d.mu.Lock()
	d.habits = removeByID(d.habits, id, habitID)
	d.mu.Unlock()
	return nil
}

func habitID(h model.Habit) string { return h.ID }

// withHabitDefaults fills blank optional fields with the new-habit defaults.
func withHabitDefaults(form model.NewHabit) model.NewHabit {
	def := model.DefaultNewHabit()
	form.Title = strings.TrimSpace(form.Title)
	if form.Frequency == "" {
		form.Frequency = def.Frequency
	}
	if form.Category == "" {
		form.Category = def.Category
	}
	if form.TimeOfDay == "" {
		form.TimeOfDay = def.TimeOfDay
	}
	if form.Difficulty == "" {
		form.Difficulty = def.Difficulty
	}
	if form.Color == "" {
		form.Color = def.Color
	}
	if form.CoinReward == 0 {
		form.CoinReward = def.CoinReward
	}
	return form
}

package views

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/alexisbeaulieu97/momentum/internal/api"
	"github.com/alexisbeaulieu97/momentum/internal/logging"
	"github.com/alexisbeaulieu97/momentum/internal/model"
	momentumerrors "github.com/alexisbeaulieu97/momentum/pkg/errors"
)

// Earned filter values.
const (
	EarnedAll      = "all"
	EarnedOnly     = "earned"
	EarnedUnearned = "unearned"
)

// AchievementFilter narrows the achievements list.
type AchievementFilter struct {
	Category string
	Earned   string
	Query    string
}

// AchievementStats summarises the loaded achievements.
type AchievementStats struct {
	Total          int
	Earned         int
	CompletionRate int
}

// Achievements is the achievements page.
type Achievements struct {
	page
	client *api.Client
	log    logging.Logger

	achievements []model.Achievement
	coins        int
}

// NewAchievements creates an unloaded achievements page.
func NewAchievements(client *api.Client, log logging.Logger) *Achievements {
	return &Achievements{client: client, log: logging.OrNoOp(log)}
}

// Load fetches achievements and the coin balance concurrently.
func (a *Achievements) Load(ctx context.Context) error {
	var (
		g            errgroup.Group
		achievements []model.Achievement
		inventory    api.InventoryResponse
		listErr      error
		coinsErr     error
	)
	g.Go(func() error {
		achievements, listErr = a.client.Achievements(ctx)
		return nil
	})
	g.Go(func() error {
		inventory, coinsErr = a.client.Inventory(ctx)
		return nil
	})
	_ = g.Wait()

	for _, err := range []error{listErr, coinsErr} {
		if fetchFailed(err) {
			return err
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.notices = nil
	a.achievements, a.coins = nil, 0
	if listErr != nil {
		a.log.Error(ctx, "fetch achievements", "error", listErr)
		a.notices = append(a.notices, "Could not load your achievements.")
	} else {
		a.achievements = achievements
	}
	if coinsErr != nil {
		a.log.Error(ctx, "fetch coins", "error", coinsErr)
		a.notices = append(a.notices, "Could not load your coin balance.")
	} else {
		a.coins = inventory.Coins
	}
	a.loaded = true
	return nil
}

// Filtered returns achievements matching f.
func (a *Achievements) Filtered(f AchievementFilter) []model.Achievement {
	a.mu.RLock()
	defer a.mu.RUnlock()
	var out []model.Achievement
	for _, ach := range a.achievements {
		if f.Category != "" && f.Category != "all" && ach.Category != f.Category {
			continue
		}
		switch f.Earned {
		case EarnedOnly:
			if !ach.Earned {
				continue
			}
		case EarnedUnearned:
			if ach.Earned {
				continue
			}
		}
		if ach.Matches(f.Query) {
			out = append(out, ach)
		}
	}
	return out
}

// Categories lists the distinct achievement categories, sorted.
func (a *Achievements) Categories() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	seen := make(map[string]struct{})
	var out []string
	for _, ach := range a.achievements {
		if _, ok := seen[ach.Category]; ok || ach.Category == "" {
			continue
		}
		seen[ach.Category] = struct{}{}
		out = append(out, ach.Category)
	}
	sort.Strings(out)
	return out
}

// Stats computes totals over the loaded achievements.
func (a *Achievements) Stats() AchievementStats {
	a.mu.RLock()
	defer a.mu.RUnlock()
	s := AchievementStats{Total: len(a.achievements)}
	for _, ach := range a.achievements {
		if ach.Earned {
			s.Earned++
		}
	}
	s.CompletionRate = model.Percent(s.Earned, s.Total)
	return s
}

// Coins returns the coin balance.
func (a *Achievements) Coins() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.coins
}

// Claim collects the reward for achievement id and replaces it with the
// server's copy.
func (a *Achievements) Claim(ctx context.Context, id string) (model.Achievement, error) {
	key := "claim:" + id
	a.mu.Lock()
	var current *model.Achievement
	for i := range a.achievements {
		if a.achievements[i].ID == id {
			current = &a.achievements[i]
			break
		}
	}
	switch {
	case current == nil:
		a.mu.Unlock()
		return model.Achievement{}, momentumerrors.NewUserError(MsgClaimFailed, nil)
	case !current.Claimable():
		a.mu.Unlock()
		return model.Achievement{}, momentumerrors.NewUserError(MsgNotClaimable, nil)
	}
	if err := a.begin(key); err != nil {
		a.mu.Unlock()
		return model.Achievement{}, err
	}
	a.mu.Unlock()
	defer a.end(key)

	resp, err := a.client.ClaimAchievement(ctx, id)
	if err != nil {
		a.log.Warn(ctx, "claim achievement", "achievement_id", id, "error", err)
		return model.Achievement{}, mutationError(err, MsgClaimFailed)
	}

	a.mu.Lock()
	a.achievements, _ = replaceByID(a.achievements, id, achievementID, resp.Achievement)
	if resp.CurrentCoins != nil {
		a.coins = *resp.CurrentCoins
	}
	a.mu.Unlock()
	a.log.Info(ctx, "achievement claimed", "achievement_id", id)
	return resp.Achievement, nil
}

func achievementID(a model.Achievement) string { return a.ID }

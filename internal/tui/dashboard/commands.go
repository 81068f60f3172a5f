package dashboard

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/alexisbeaulieu97/momentum/internal/api"
	"github.com/alexisbeaulieu97/momentum/internal/views"
	momentumerrors "github.com/alexisbeaulieu97/momentum/pkg/errors"
)

// Action names carried by ActionDoneMsg.
const (
	ActionComplete = "complete"
	ActionDelete   = "delete"
	ActionPurchase = "purchase"
	ActionUse      = "use"
	ActionClaim    = "claim"
)

// errorMsg converts err to an ErrorMsg, or nil for cancellation.
func errorMsg(err error, fallback string) tea.Msg {
	switch {
	case errors.Is(err, context.Canceled):
		return nil
	case errors.Is(err, api.ErrNoToken):
		return ErrorMsg{Message: "You are signed out. Run `momentum login` first.", SignedOut: true}
	}
	return ErrorMsg{Message: momentumerrors.UserMessage(err, fallback)}
}

// loadAllCmd loads every page concurrently.
func loadAllCmd(ctx context.Context, pages Pages) tea.Cmd {
	return func() tea.Msg {
		g, gctx := errgroup.WithContext(ctx)
		loaders := pages.loaders()
		for _, l := range loaders {
			g.Go(func() error { return l.Load(gctx) })
		}
		if err := g.Wait(); err != nil {
			return errorMsg(err, views.MsgUnavailable)
		}

		var notices []string
		seen := make(map[string]bool)
		for _, l := range loaders {
			for _, n := range l.Status().Notices {
				if !seen[n] {
					seen[n] = true
					notices = append(notices, n)
				}
			}
		}
		return LoadedMsg{Notices: notices}
	}
}

func completeCmd(ctx context.Context, pages Pages, id, title string) tea.Cmd {
	return func() tea.Msg {
		sent, err := pages.Habits.Complete(ctx, id)
		if err != nil {
			return errorMsg(err, views.MsgCompleteFailed)
		}
		if !sent {
			return ActionDoneMsg{Action: ActionComplete, Message: "Already completed today."}
		}
		for _, h := range pages.Habits.Habits() {
			if h.ID == id {
				return ActionDoneMsg{Action: ActionComplete, Message: fmt.Sprintf("%s completed! +%d coins", title, h.CoinReward)}
			}
		}
		return ActionDoneMsg{Action: ActionComplete, Message: title + " completed!"}
	}
}

func deleteCmd(ctx context.Context, pages Pages, id string) tea.Cmd {
	return func() tea.Msg {
		if err := pages.Habits.Delete(ctx, id); err != nil {
			return errorMsg(err, views.MsgDeleteFailed)
		}
		return ActionDoneMsg{Action: ActionDelete, Message: "Habit deleted."}
	}
}

func purchaseCmd(ctx context.Context, pages Pages, id string) tea.Cmd {
	return func() tea.Msg {
		item, err := pages.Shop.Purchase(ctx, id)
		if err != nil {
			return errorMsg(err, views.MsgPurchaseFailed)
		}
		return ActionDoneMsg{Action: ActionPurchase, Message: item.Name + " added to your inventory."}
	}
}

func useCmd(ctx context.Context, pages Pages, id string) tea.Cmd {
	return func() tea.Msg {
		msg, err := pages.Inventory.Use(ctx, id)
		if err != nil {
			return errorMsg(err, views.MsgUseFailed)
		}
		return ActionDoneMsg{Action: ActionUse, Message: msg}
	}
}

func claimCmd(ctx context.Context, pages Pages, id string) tea.Cmd {
	return func() tea.Msg {
		a, err := pages.Achievements.Claim(ctx, id)
		if err != nil {
			return errorMsg(err, views.MsgClaimFailed)
		}
		return ActionDoneMsg{Action: ActionClaim, Message: fmt.Sprintf("Reward claimed! +%d coins", a.CoinReward)}
	}
}

// Package views holds the state behind each Momentum page. A view loads its
// entities from the backend, keeps them as local state, and patches that
// state only from confirmed server responses.
package views

import (
	"context"
	"errors"
	"sync"

	"github.com/alexisbeaulieu97/momentum/internal/api"
	momentumerrors "github.com/alexisbeaulieu97/momentum/pkg/errors"
)

// User-facing messages.
const (
	MsgTitleRequired     = "Title is required"
	MsgCreateHabitFailed = "Failed to create habit"
	MsgCompleteFailed    = "Failed to complete habit"
	MsgDeleteFailed      = "Failed to delete habit"
	MsgHabitNotFound     = "Habit not found"
	MsgItemNotFound      = "Item not found"
	MsgAlreadyOwned      = "You already own this item"
	MsgNotEnoughCoins    = "You don't have enough coins to purchase this item"
	MsgPurchaseFailed    = "Failed to purchase item"
	MsgUseFailed         = "Failed to use item"
	MsgClaimFailed       = "Claim failed"
	MsgNotClaimable      = "This achievement has no reward to claim yet"
	MsgBusy              = "Please wait for the previous request to finish"
	MsgUnavailable       = "An error occurred. Please try again."
)

// Status is a view's load state. Notices holds one inline message per fetch
// that failed.
type Status struct {
	Loaded  bool
	Notices []string
}

// page is the load bookkeeping and in-flight tracking every view shares.
type page struct {
	mu       sync.RWMutex
	loaded   bool
	notices  []string
	inFlight map[string]bool
}

func (p *page) Status() Status {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return Status{Loaded: p.loaded, Notices: append([]string(nil), p.notices...)}
}

// Pending reports whether a mutation keyed by key is in flight.
func (p *page) Pending(key string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.inFlight[key]
}

// begin marks key in flight. It fails when key is already in flight. Caller
// holds p.mu.
func (p *page) begin(key string) error {
	if p.inFlight == nil {
		p.inFlight = make(map[string]bool)
	}
	if p.inFlight[key] {
		return momentumerrors.NewUserError(MsgBusy, nil)
	}
	p.inFlight[key] = true
	return nil
}

func (p *page) end(key string) {
	p.mu.Lock()
	delete(p.inFlight, key)
	p.mu.Unlock()
}

// mutationError keeps ErrNoToken and cancellation recognisable and turns
// everything else into a UserError with the server message or fallback.
func mutationError(err error, fallback string) error {
	switch {
	case errors.Is(err, api.ErrNoToken), errors.Is(err, context.Canceled):
		return err
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return momentumerrors.NewUserError(api.Message(err, fallback), err)
	}
	return momentumerrors.NewUserError(MsgUnavailable, err)
}

// fetchFailed reports whether a load error must abort the page rather than
// degrade to an empty list.
func fetchFailed(err error) bool {
	return errors.Is(err, api.ErrNoToken) || errors.Is(err, context.Canceled)
}

func replaceByID[T any](list []T, id string, idOf func(T) string, next T) ([]T, bool) {
	out := make([]T, len(list))
	copy(out, list)
	for i := range out {
		if idOf(out[i]) == id {
			out[i] = next
			return out, true
		}
	}
	return out, false
}

func removeByID[T any](list []T, id string, idOf func(T) string) []T {
	out := make([]T, 0, len(list))
	for _, v := range list {
		if idOf(v) != id {
			out = append(out, v)
		}
	}
	return out
}

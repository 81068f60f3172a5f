package auth

import (
	"context"
	"fmt"

	"github.com/alexisbeaulieu97/momentum/internal/api"
	"github.com/alexisbeaulieu97/momentum/internal/storage"
)

// Guard gates protected pages on the presence of a stored token.
type Guard struct {
	store storage.Store
}

// NewGuard creates a Guard reading from store.
func NewGuard(store storage.Store) Guard {
	return Guard{store: store}
}

// Token returns the stored bearer token or ErrNoToken.
func (g Guard) Token(ctx context.Context) (string, error) {
	token, ok, err := g.store.Get(ctx, storage.KeyAuthToken)
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	if !ok || token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

// Client returns base bound to the stored token.
func (g Guard) Client(ctx context.Context, base *api.Client) (*api.Client, error) {
	token, err := g.Token(ctx)
	if err != nil {
		return nil, err
	}
	return base.WithToken(token), nil
}

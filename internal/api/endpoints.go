package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/alexisbeaulieu97/momentum/internal/model"
)

// LoginResponse is the body of a successful POST /login.
type LoginResponse struct {
	AccessToken string      `json:"access_token"`
	User        *model.User `json:"user,omitempty"`
}

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// CompleteHabitResponse is the body of POST /habits/{id}/complete.
type CompleteHabitResponse struct {
	Habit        model.Habit `json:"habit"`
	CurrentCoins *int        `json:"currentCoins,omitempty"`
}

// InventoryResponse is the body of GET /inventory.
type InventoryResponse struct {
	Coins int                   `json:"coins"`
	Items []model.InventoryItem `json:"items"`
}

// PurchaseResponse is the body of POST /inventory/purchase.
type PurchaseResponse struct {
	Item         model.InventoryItem `json:"item"`
	CurrentCoins *int                `json:"currentCoins,omitempty"`
}

// UseItemResponse is the body of POST /inventory/use.
type UseItemResponse struct {
	CurrentCoins *int `json:"currentCoins,omitempty"`
}

// ClaimResponse is the body of POST /achievements/{id}/claim.
type ClaimResponse struct {
	Achievement  model.Achievement `json:"achievement"`
	CurrentCoins *int              `json:"currentCoins,omitempty"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	var out LoginResponse
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/login",
		body:   map[string]string{"email": email, "password": password},
	}, &out)
	return out, err
}

// Register creates an account. It does not log the user in.
func (c *Client) Register(ctx context.Context, in RegisterRequest) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	err := c.do(ctx, request{method: http.MethodPost, path: "/register", body: in}, &out)
	return out.Message, err
}

// Habits lists the user's habits.
func (c *Client) Habits(ctx context.Context) ([]model.Habit, error) {
	var out struct {
		Habits []model.Habit `json:"habits"`
	}
	err := c.do(ctx, request{method: http.MethodGet, path: "/habits", protected: true}, &out)
	return out.Habits, err
}

// CreateHabit creates a habit and returns the server's copy.
func (c *Client) CreateHabit(ctx context.Context, in model.NewHabit) (model.Habit, error) {
	var out struct {
		Habit model.Habit `json:"habit"`
	}
	err := c.do(ctx, request{method: http.MethodPost, path: "/habits", body: in, protected: true}, &out)
	return out.Habit, err
}

// CompleteHabit marks a habit done for today.
func (c *Client) CompleteHabit(ctx context.Context, id string) (CompleteHabitResponse, error) {
	var out CompleteHabitResponse
	err := c.do(ctx, request{
		method:    http.MethodPost,
		path:      "/habits/" + url.PathEscape(id) + "/complete",
		protected: true,
	}, &out)
	return out, err
}

// DeleteHabit removes a habit.
func (c *Client) DeleteHabit(ctx context.Context, id string) error {
	return c.do(ctx, request{
		method:    http.MethodDelete,
		path:      "/habits/" + url.PathEscape(id),
		protected: true,
	}, nil)
}

// Inventory returns owned items and the coin balance.
func (c *Client) Inventory(ctx context.Context) (InventoryResponse, error) {
	var out InventoryResponse
	err := c.do(ctx, request{method: http.MethodGet, path: "/inventory", protected: true}, &out)
	return out, err
}

// Purchase buys a shop item. The request body is the catalog entry itself.
func (c *Client) Purchase(ctx context.Context, item model.ShopItem) (PurchaseResponse, error) {
	var out PurchaseResponse
	err := c.do(ctx, request{
		method:    http.MethodPost,
		path:      "/inventory/purchase",
		body:      item,
		protected: true,
	}, &out)
	return out, err
}

// UseItem consumes or activates an owned item.
func (c *Client) UseItem(ctx context.Context, itemID string) (UseItemResponse, error) {
	var out UseItemResponse
	err := c.do(ctx, request{
		method:    http.MethodPost,
		path:      "/inventory/use",
		body:      map[string]string{"itemId": itemID},
		protected: true,
	}, &out)
	return out, err
}

// Achievements lists the user's achievements.
func (c *Client) Achievements(ctx context.Context) ([]model.Achievement, error) {
	var out struct {
		Achievements []model.Achievement `json:"achievements"`
	}
	err := c.do(ctx, request{method: http.MethodGet, path: "/achievements", protected: true}, &out)
	return out.Achievements, err
}

// ClaimAchievement collects an earned achievement's reward.
func (c *Client) ClaimAchievement(ctx context.Context, id string) (ClaimResponse, error) {
	var out ClaimResponse
	err := c.do(ctx, request{
		method:    http.MethodPost,
		path:      "/achievements/" + url.PathEscape(id) + "/claim",
		protected: true,
	}, &out)
	return out, err
}

// Profile returns the signed-in user's profile.
func (c *Client) Profile(ctx context.Context) (model.Profile, error) {
	var out model.Profile
	err := c.do(ctx, request{method: http.MethodGet, path: "/user/profile", protected: true}, &out)
	return out, err
}

// Package apitest runs an in-process fake of the Momentum backend for tests.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/alexisbeaulieu97/momentum/internal/model"
)

// DefaultToken is the bearer token the fake issues and accepts.
const DefaultToken = "test-token"

// Request records one call the fake received.
type Request struct {
	Method        string
	Path          string
	Authorization string
}

type failure struct {
	status  int
	message string
}

type account struct {
	password string
	name     string
}

// Server is a stateful fake backend. Seed it with the Set* methods before
// exercising a client against URL().
type Server struct {
	srv *httptest.Server

	mu           sync.Mutex
	token        string
	accounts     map[string]account
	habits       []model.Habit
	coins        int
	items        []model.InventoryItem
	achievements []model.Achievement
	profile      model.Profile
	failures     map[string]failure
	requests     []Request
	nextID       int
}

// New starts a fake backend that shuts down when t finishes.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		token:    DefaultToken,
		accounts: make(map[string]account),
		failures: make(map[string]failure),
		nextID:   100,
	}
	s.srv = httptest.NewServer(s.routes())
	t.Cleanup(s.srv.Close)
	return s
}

// URL is the base URL clients should target.
func (s *Server) URL() string { return s.srv.URL }

// Close stops the server early.
func (s *Server) Close() { s.srv.Close() }

// AddUser registers credentials accepted by POST /login.
func (s *Server) AddUser(email, password, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[email] = account{password: password, name: name}
}

// SetHabits replaces the habit list.
func (s *Server) SetHabits(habits ...model.Habit) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.habits = append([]model.Habit(nil), habits...)
}

// SetInventory replaces the coin balance and owned items.
func (s *Server) SetInventory(coins int, items ...model.InventoryItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coins = coins
	s.items = append([]model.InventoryItem(nil), items...)
}

// SetAchievements replaces the achievement list.
func (s *Server) SetAchievements(achievements ...model.Achievement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.achievements = append([]model.Achievement(nil), achievements...)
}

// SetProfile sets the GET /user/profile response.
func (s *Server) SetProfile(p model.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = p
}

// Fail makes every request matching method and path answer status with
// {"error": message}. An empty message sends an empty JSON object.
func (s *Server) Fail(method, path string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+path] = failure{status: status, message: message}
}

// Coins returns the server-side balance.
func (s *Server) Coins() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.coins
}

// Habits returns a copy of the server-side habits.
func (s *Server) Habits() []model.Habit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Habit(nil), s.habits...)
}

// Requests returns every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// RequestCount returns how many requests were received.
func (s *Server) RequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("POST /register", s.handleRegister)
	mux.HandleFunc("GET /habits", s.protected(s.handleListHabits))
	mux.HandleFunc("POST /habits", s.protected(s.handleCreateHabit))
	mux.HandleFunc("POST /habits/{id}/complete", s.protected(s.handleCompleteHabit))
	mux.HandleFunc("DELETE /habits/{id}", s.protected(s.handleDeleteHabit))
	mux.HandleFunc("GET /inventory", s.protected(s.handleInventory))
	mux.HandleFunc("POST /inventory/purchase", s.protected(s.handlePurchase))
	mux.HandleFunc("POST /inventory/use", s.protected(s.handleUse))
	mux.HandleFunc("GET /achievements", s.protected(s.handleAchievements))
	mux.HandleFunc("POST /achievements/{id}/claim", s.protected(s.handleClaim))
	mux.HandleFunc("GET /user/profile", s.protected(s.handleProfile))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
		})
		f, failing := s.failures[r.Method+" "+r.URL.Path]
		s.mu.Unlock()

		if failing {
			if f.message == "" {
				writeJSON(w, f.status, map[string]string{})
				return
			}
			writeError(w, f.status, f.message)
			return
		}
		mux.ServeHTTP(w, r)
	})
}

func (s *Server) protected(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		want := "Bearer " + s.token
		s.mu.Unlock()
		if r.Header.Get("Authorization") != want {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next(w, r)
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.accounts[in.Email]
	if !ok || acct.password != in.Password {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"access_token": s.token,
		"user":         model.User{Email: in.Email, Name: acct.name},
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Email == "" || in.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[in.Email]; exists {
		writeError(w, http.StatusBadRequest, "User already exists")
		return
	}
	s.accounts[in.Email] = account{password: in.Password, name: in.Name}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "User registered successfully"})
}

func (s *Server) handleListHabits(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]interface{}{"habits": nonNil(s.habits)})
}

func (s *Server) handleCreateHabit(w http.ResponseWriter, r *http.Request) {
	var in model.NewHabit
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Title == "" {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	habit := model.Habit{
		ID:          strconv.Itoa(s.nextID),
		Title:       in.Title,
		Description: in.Description,
		Frequency:   in.Frequency,
		Category:    in.Category,
		TimeOfDay:   in.TimeOfDay,
		Difficulty:  in.Difficulty,
		Color:       in.Color,
		CoinReward:  in.CoinReward,
		CreatedAt:   "2024-01-01T00:00:00Z",
	}
	s.habits = append(s.habits, habit)
	writeJSON(w, http.StatusCreated, map[string]interface{}{"habit": habit})
}

func (s *Server) handleCompleteHabit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.habits {
		if s.habits[i].ID != id {
			continue
		}
		if s.habits[i].CompletedToday {
			writeError(w, http.StatusBadRequest, "Habit already completed today")
			return
		}
		s.habits[i].CompletedToday = true
		s.habits[i].Streak++
		s.habits[i].TotalCompletions++
		s.coins += s.habits[i].CoinReward
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"habit":        s.habits[i],
			"currentCoins": s.coins,
		})
		return
	}
	writeError(w, http.StatusNotFound, "Habit not found")
}

func (s *Server) handleDeleteHabit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.habits {
		if s.habits[i].ID == id {
			s.habits = append(s.habits[:i], s.habits[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "Habit deleted"})
			return
		}
	}
	writeError(w, http.StatusNotFound, "Habit not found")
}

func (s *Server) handleInventory(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]interface{}{"coins": s.coins, "items": nonNil(s.items)})
}

func (s *Server) handlePurchase(w http.ResponseWriter, r *http.Request) {
	var in model.ShopItem
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.ID == "" {
		writeError(w, http.StatusBadRequest, "Invalid item")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, owned := range s.items {
		if owned.ID == in.ID {
			writeError(w, http.StatusBadRequest, "Item already owned")
			return
		}
	}
	if s.coins < in.Price {
		writeError(w, http.StatusBadRequest, "Not enough coins")
		return
	}
	s.coins -= in.Price
	item := model.InventoryItem{
		ID:          in.ID,
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Rarity:      in.Rarity,
		Price:       in.Price,
		Image:       in.Image,
		UsageLimit:  in.UsageLimit,
		Duration:    in.Duration,
		ThemeID:     in.ThemeID,
	}
	s.items = append(s.items, item)
	writeJSON(w, http.StatusOK, map[string]interface{}{"item": item, "currentCoins": s.coins})
}

func (s *Server) handleUse(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ItemID string `json:"itemId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.ItemID == "" {
		writeError(w, http.StatusBadRequest, "itemId is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID != in.ItemID {
			continue
		}
		switch {
		case s.items[i].ID == model.BonusCoinsItemID:
			s.coins += 50
			s.items = append(s.items[:i], s.items[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]interface{}{"message": "Item used", "currentCoins": s.coins})
		default:
			s.activate(i)
			writeJSON(w, http.StatusOK, map[string]string{"message": "Item used"})
		}
		return
	}
	writeError(w, http.StatusNotFound, "Item not found")
}

// activate marks item i the only active item of its category for themes and
// backgrounds, and spends a use for powerups.
func (s *Server) activate(i int) {
	item := &s.items[i]
	if item.Category == model.CategoryPowerups {
		item.IsUsed = true
		return
	}
	for j := range s.items {
		if s.items[j].Category == item.Category {
			s.items[j].IsActive = j == i
		}
	}
}

func (s *Server) handleAchievements(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]interface{}{"achievements": nonNil(s.achievements)})
}

func (s *Server) handleClaim(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.achievements {
		a := &s.achievements[i]
		if a.ID != id {
			continue
		}
		if !a.Claimable() {
			writeError(w, http.StatusBadRequest, "Achievement cannot be claimed")
			return
		}
		a.Claimed = true
		s.coins += a.CoinReward
		writeJSON(w, http.StatusOK, map[string]interface{}{"achievement": *a, "currentCoins": s.coins})
		return
	}
	writeError(w, http.StatusNotFound, "Achievement not found")
}

func (s *Server) handleProfile(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.profile)
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

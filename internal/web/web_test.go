package web_test

import (
	"html"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/alexisbeaulieu97/momentum/internal/api"
	"github.com/alexisbeaulieu97/momentum/internal/api/apitest"
	"github.com/alexisbeaulieu97/momentum/internal/model"
	"github.com/alexisbeaulieu97/momentum/internal/views"
	"github.com/alexisbeaulieu97/momentum/internal/web"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
	)
}

type harness struct {
	t       *testing.T
	fake    *apitest.Server
	server  *web.Server
	site    *httptest.Server
	browser *http.Client
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	fake := apitest.New(t)
	client, err := api.New(fake.URL())
	require.NoError(t, err)

	server, err := web.NewServer(web.Options{Client: client})
	require.NoError(t, err)
	site := httptest.NewServer(server.Handler())
	t.Cleanup(site.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	browser := &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	t.Cleanup(browser.CloseIdleConnections)
	return &harness{t: t, fake: fake, server: server, site: site, browser: browser}
}

func (h *harness) get(path string) (*http.Response, string) {
	h.t.Helper()
	resp, err := h.browser.Get(h.site.URL + path)
	require.NoError(h.t, err)
	return resp, readBody(h.t, resp)
}

func (h *harness) post(path string, form url.Values) (*http.Response, string) {
	h.t.Helper()
	resp, err := h.browser.PostForm(h.site.URL+path, form)
	require.NoError(h.t, err)
	return resp, readBody(h.t, resp)
}

func (h *harness) login() {
	h.t.Helper()
	h.fake.AddUser("ada@example.com", "secret", "Ada Lovelace")
	h.fake.SetProfile(model.Profile{Name: "Ada Lovelace", Email: "ada@example.com"})
	resp, _ := h.post("/login", url.Values{"email": {"ada@example.com"}, "password": {"secret"}})
	require.Equal(h.t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(h.t, "/dashboard", resp.Header.Get("Location"))
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestProtectedPagesRedirectBeforeAnyRequest(t *testing.T) {
	h := newHarness(t)

	gets := []string{"/dashboard", "/shop", "/inventory", "/achievements", "/shop?category=themes"}
	for _, path := range gets {
		resp, _ := h.get(path)
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode, path)
		assert.Equal(t, "/login", resp.Header.Get("Location"), path)
	}

	posts := []string{"/dashboard/habits", "/dashboard/habits/1/complete", "/dashboard/habits/1/delete",
		"/shop/purchase", "/inventory/use", "/achievements/1/claim"}
	for _, path := range posts {
		resp, _ := h.post(path, url.Values{"itemId": {"theme-1"}})
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode, path)
		assert.Equal(t, "/login", resp.Header.Get("Location"), path)
	}

	assert.Zero(t, h.fake.RequestCount())
}

func TestPublicPagesRender(t *testing.T) {
	h := newHarness(t)
	for _, path := range []string{"/", "/login", "/signup"} {
		resp, body := h.get(path)
		require.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Contains(t, body, "Momentum", path)
		assert.NotContains(t, body, "data-theme=", path)
		assert.NotContains(t, body, "theme-override-style", path)
	}
	assert.Zero(t, h.fake.RequestCount())
}

func TestHealthAndStatic(t *testing.T) {
	h := newHarness(t)

	resp, body := h.get("/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body)

	resp, body = h.get("/static/app.css")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "var(--theme-primary)")
}

func TestCorrelationIDEchoed(t *testing.T) {
	h := newHarness(t)

	req, err := http.NewRequest(http.MethodGet, h.site.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set(web.HeaderCorrelationID, "abc-123")
	resp, err := h.browser.Do(req)
	require.NoError(t, err)
	readBody(t, resp)
	assert.Equal(t, "abc-123", resp.Header.Get(web.HeaderCorrelationID))

	resp, _ = h.get("/healthz")
	assert.NotEmpty(t, resp.Header.Get(web.HeaderCorrelationID))
}

func TestLoginFailureRendersMessage(t *testing.T) {
	h := newHarness(t)
	h.fake.AddUser("ada@example.com", "secret", "Ada")

	resp, body := h.post("/login", url.Values{"email": {"ada@example.com"}, "password": {"wrong"}})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "Invalid email or password")
	assert.Contains(t, body, `value="ada@example.com"`)

	resp, body = h.post("/login", url.Values{"email": {""}, "password": {""}})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "Email is required")
}

func TestSignupFlow(t *testing.T) {
	h := newHarness(t)

	resp, body := h.post("/signup", url.Values{
		"name": {"Grace Hopper"}, "email": {"grace@example.com"},
		"password": {"secret1"}, "confirmPassword": {"secret2"}, "agreeTerms": {"true"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "Passwords do not match")
	assert.Zero(t, h.fake.RequestCount())

	resp, _ = h.post("/signup", url.Values{
		"name": {"Grace Hopper"}, "email": {"grace@example.com"},
		"password": {"secret1"}, "confirmPassword": {"secret1"}, "agreeTerms": {"true"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	_, body = h.get("/login")
	assert.Contains(t, body, "Account created. Please sign in.")
}

func TestDashboardThemedAfterLogin(t *testing.T) {
	h := newHarness(t)
	h.fake.SetHabits(model.Habit{ID: "1", Title: "Read", Frequency: "daily", Color: "#00DCFF", CoinReward: 10})
	h.fake.SetInventory(150)
	h.login()

	resp, body := h.get("/dashboard")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Read")
	assert.Contains(t, body, "150 coins")
	assert.Contains(t, body, `data-theme="basic"`)
	assert.Contains(t, body, `<style id="theme-override-style">`)
	assert.Contains(t, body, `class="theme-transition"`)
	assert.Contains(t, body, `data-role="nav-active"`)
	assert.Contains(t, body, "AL")

	_, body = h.get("/")
	assert.NotContains(t, body, "data-theme=")
	assert.NotContains(t, body, "theme-override-style")
}

func TestCompleteHabitFlow(t *testing.T) {
	h := newHarness(t)
	h.fake.SetHabits(model.Habit{ID: "1", Title: "Read", Frequency: "daily", CoinReward: 10, Streak: 5})
	h.fake.SetInventory(150)
	h.login()

	resp, _ := h.post("/dashboard/habits/1/complete", url.Values{"return": {"/dashboard?frequency=daily"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/dashboard?frequency=daily", resp.Header.Get("Location"))
	assert.Equal(t, 160, h.fake.Coins())

	_, body := h.get("/dashboard")
	assert.Contains(t, html.UnescapeString(body), "Read completed! +10 coins")
	assert.Contains(t, body, `data-state="done"`)
	assert.Contains(t, body, "160 coins")
}

func TestCreateHabitValidation(t *testing.T) {
	h := newHarness(t)
	h.login()

	resp, body := h.post("/dashboard/habits", url.Values{"title": {"  "}})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, views.MsgTitleRequired)
	assert.Empty(t, h.fake.Habits())

	resp, body = h.post("/dashboard/habits", url.Values{"title": {"Walk"}, "coinReward": {"lots"}})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "Coin reward must be a whole number")

	resp, _ = h.post("/dashboard/habits", url.Values{"title": {"Walk"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Len(t, h.fake.Habits(), 1)
	assert.Equal(t, "Walk", h.fake.Habits()[0].Title)
}

func TestPurchaseFailureKeepsStateAndFlashes(t *testing.T) {
	h := newHarness(t)
	h.fake.SetInventory(500)
	h.fake.Fail(http.MethodPost, "/inventory/purchase", http.StatusBadRequest, "Not enough coins")
	h.login()

	resp, _ := h.post("/shop/purchase", url.Values{"itemId": {"theme-2"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/shop", resp.Header.Get("Location"))

	_, body := h.get("/shop")
	assert.Contains(t, body, "Not enough coins")
	assert.Contains(t, body, "500 coins")
	assert.Equal(t, 500, h.fake.Coins())
}

func TestPurchaseTooExpensiveSkipsRequest(t *testing.T) {
	h := newHarness(t)
	h.fake.SetInventory(10)
	h.login()

	before := h.fake.RequestCount()
	resp, _ := h.post("/shop/purchase", url.Values{"itemId": {"theme-2"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	// The view loads the inventory before checking the balance.
	assert.Equal(t, before+1, h.fake.RequestCount())

	_, body := h.get("/shop")
	assert.Contains(t, body, html.EscapeString(views.MsgNotEnoughCoins))
}

func TestUseThemeItemRethemesSession(t *testing.T) {
	h := newHarness(t)
	h.fake.SetInventory(0, model.InventoryItem{
		ID: "theme-2", Name: "Neon Synthwave Theme", Category: model.CategoryThemes,
		Rarity: model.RarityEpic, ThemeID: "neonSynthwave",
	})
	h.login()

	resp, _ := h.post("/inventory/use", url.Values{"itemId": {"theme-2"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	_, body := h.get("/inventory")
	assert.Contains(t, body, "Neon Synthwave Theme has been applied!")
	assert.Contains(t, body, `data-theme="neonSynthwave"`)
	assert.Contains(t, body, "Applied")

	_, body = h.get("/shop")
	assert.Contains(t, body, `data-theme="neonSynthwave"`)

	_, body = h.get("/")
	assert.NotContains(t, body, "data-theme=")
}

func TestClaimAchievement(t *testing.T) {
	h := newHarness(t)
	h.fake.SetInventory(20)
	h.fake.SetAchievements(model.Achievement{
		ID: "a1", Name: "First Steps", Category: "habits", Progress: 1, Total: 1,
		Earned: true, CoinReward: 25,
	})
	h.login()

	_, body := h.get("/achievements")
	assert.Contains(t, body, "Claim Reward")

	resp, _ := h.post("/achievements/a1/claim", nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	_, body = h.get("/achievements")
	assert.Contains(t, html.UnescapeString(body), "Reward claimed! +25 coins")
	assert.Contains(t, body, "Claimed")
}

func TestLogout(t *testing.T) {
	h := newHarness(t)
	h.login()

	resp, _ := h.post("/logout", nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	resp, _ = h.get("/dashboard")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestFetchFailureShowsNotice(t *testing.T) {
	h := newHarness(t)
	h.fake.Fail(http.MethodGet, "/habits", http.StatusInternalServerError, "boom")
	h.login()

	resp, body := h.get("/dashboard")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Could not load your habits.")
	assert.Contains(t, body, "No habits yet")
}

func TestReturnPathMustStayOnPage(t *testing.T) {
	h := newHarness(t)
	h.fake.SetInventory(0)
	h.login()

	resp, _ := h.post("/shop/purchase", url.Values{"itemId": {"nope"}, "return": {"https://evil.example/shop"}})
	assert.Equal(t, "/shop", resp.Header.Get("Location"))

	resp, _ = h.post("/shop/purchase", url.Values{"itemId": {"nope"}, "return": {"/dashboard"}})
	assert.Equal(t, "/shop", resp.Header.Get("Location"))

	resp, _ = h.post("/shop/purchase", url.Values{"itemId": {"nope"}, "return": {"/shop?category=themes"}})
	assert.Equal(t, "/shop?category=themes", resp.Header.Get("Location"))

	_, body := h.get("/shop")
	assert.Contains(t, body, views.MsgItemNotFound)
}

func TestCookielessTrafficStaysBounded(t *testing.T) {
	fake := apitest.New(t)
	client, err := api.New(fake.URL())
	require.NoError(t, err)
	server, err := web.NewServer(web.Options{
		Client:   client,
		Sessions: web.NewSessions(web.SessionOptions{MaxSessions: 16}),
	})
	require.NoError(t, err)
	site := httptest.NewServer(server.Handler())
	t.Cleanup(site.Close)

	for i := 0; i < 500; i++ {
		resp, err := site.Client().Get(site.URL + "/")
		require.NoError(t, err)
		_ = resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	assert.Equal(t, 16, server.Sessions().Len())
	assert.Zero(t, fake.RequestCount())
}

package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/momentum/internal/storage"
	"github.com/alexisbeaulieu97/momentum/internal/theme"
)

func TestSessionsIssueCookieOnce(t *testing.T) {
	sessions := NewSessions(SessionOptions{})

	rec := httptest.NewRecorder()
	first := sessions.Load(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, DefaultCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, first.ID, cookies[0].Value)

	req := httptest.NewRequest(http.MethodGet, "/shop", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	again := sessions.Load(rec, req)
	assert.Same(t, first, again)
	assert.Empty(t, rec.Result().Cookies())
	assert.Equal(t, 1, sessions.Len())
}

func TestSessionsRejectForgedCookie(t *testing.T) {
	sessions := NewSessions(SessionOptions{CookieName: "sid"})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "../../etc/passwd"})
	rec := httptest.NewRecorder()
	sess := sessions.Load(rec, req)

	assert.NotEqual(t, "../../etc/passwd", sess.ID)
	require.Len(t, rec.Result().Cookies(), 1)
}

func TestSessionsRebuildFromPersistentStore(t *testing.T) {
	ctx := context.Background()
	db, err := storage.Open(ctx, filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	opts := SessionOptions{NewStore: func(id string) storage.Store { return db.Namespace("web:" + id) }}
	first := NewSessions(opts)
	rec := httptest.NewRecorder()
	sess := first.Load(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.True(t, sess.Theme.Apply(ctx, "ocean"))
	require.NoError(t, sess.Store.Set(ctx, storage.KeyAuthToken, "tok"))
	cookie := rec.Result().Cookies()[0]

	restarted := NewSessions(opts)
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(cookie)
	rebuilt := restarted.Load(httptest.NewRecorder(), req)

	assert.Equal(t, sess.ID, rebuilt.ID)
	assert.Equal(t, "ocean", rebuilt.Theme.Current())
	assert.Equal(t, "tok", storage.GetString(ctx, rebuilt.Store, storage.KeyAuthToken))
}

func TestSessionsCloseRevertsDocuments(t *testing.T) {
	ctx := context.Background()
	sessions := NewSessions(SessionOptions{})
	sess := sessions.Load(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	sess.Applier.Navigate(ctx, "/shop")
	require.Equal(t, theme.DefaultID, sess.Sheet.Snapshot().DataTheme())

	sessions.Close()
	assert.Empty(t, sess.Sheet.Snapshot().DataTheme())
	assert.Empty(t, sess.Sheet.Snapshot().OverrideStyle())
	assert.Zero(t, sessions.Len())
}

func TestFlashesAreOneShot(t *testing.T) {
	sess := &Session{}
	sess.AddFlash(FlashError, "nope")
	sess.AddFlash(FlashSuccess, "yes")

	assert.Equal(t, []Flash{{FlashError, "nope"}, {FlashSuccess, "yes"}}, sess.TakeFlashes())
	assert.Empty(t, sess.TakeFlashes())
}

func TestBackOnlyAllowsSamePage(t *testing.T) {
	cases := map[string]string{
		"":                          "/shop",
		"/shop?category=themes":     "/shop?category=themes",
		"/dashboard":                "/shop",
		"https://evil.example/shop": "/shop",
		"//evil.example/shop":       "/shop",
		"/shop/../dashboard":        "/shop",
		"/shop/./":                  "/shop",
	}
	for in, want := range cases {
		req := httptest.NewRequest(http.MethodPost, "/shop/purchase", nil)
		req.PostForm = map[string][]string{"return": {in}}
		assert.Equal(t, want, back(req, "/shop"), in)
	}
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Themes", capitalize("themes"))
	assert.Equal(t, "", capitalize(""))
}

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func newSessionRequest(cookie *http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return req
}

func TestSessionsDropIdleSessions(t *testing.T) {
	clk := &clock{now: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}
	stores := map[string]storage.Store{}
	sessions := NewSessions(SessionOptions{
		IdleTimeout: time.Minute,
		Now:         clk.Now,
		NewStore: func(id string) storage.Store {
			if st, ok := stores[id]; ok {
				return st
			}
			st := storage.NewMemoryStore(nil)
			stores[id] = st
			return st
		},
	})

	rec := httptest.NewRecorder()
	kept := sessions.Load(rec, newSessionRequest(nil))
	keptCookie := rec.Result().Cookies()[0]
	require.True(t, kept.Theme.Apply(context.Background(), "ocean"))
	for i := 0; i < 9; i++ {
		sessions.Load(httptest.NewRecorder(), newSessionRequest(nil))
	}
	require.Equal(t, 10, sessions.Len())

	clk.now = clk.now.Add(30 * time.Second)
	assert.Same(t, kept, sessions.Load(httptest.NewRecorder(), newSessionRequest(keptCookie)))

	clk.now = clk.now.Add(45 * time.Second)
	sessions.Sweep()
	assert.Equal(t, 1, sessions.Len())

	clk.now = clk.now.Add(2 * time.Minute)
	sessions.Sweep()
	assert.Zero(t, sessions.Len())

	rebuilt := sessions.Load(httptest.NewRecorder(), newSessionRequest(keptCookie))
	assert.NotSame(t, kept, rebuilt)
	assert.Equal(t, kept.ID, rebuilt.ID)
	assert.Equal(t, "ocean", rebuilt.Theme.Current())
}

func TestSessionsCapEvictsLeastRecentlySeen(t *testing.T) {
	clk := &clock{now: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}
	sessions := NewSessions(SessionOptions{MaxSessions: 3, Now: clk.Now})

	for i := 0; i < 500; i++ {
		sessions.Load(httptest.NewRecorder(), newSessionRequest(nil))
	}
	assert.Equal(t, 3, sessions.Len())

	load := func(cookie *http.Cookie) (*Session, *http.Cookie) {
		clk.now = clk.now.Add(time.Second)
		rec := httptest.NewRecorder()
		sess := sessions.Load(rec, newSessionRequest(cookie))
		if cookie == nil {
			cookie = rec.Result().Cookies()[0]
		}
		return sess, cookie
	}
	a, aCookie := load(nil)
	b, bCookie := load(nil)
	_, _ = load(nil)
	load(aCookie)
	load(nil)

	assert.Equal(t, 3, sessions.Len())
	again, _ := load(aCookie)
	assert.Same(t, a, again)
	rebuilt, _ := load(bCookie)
	assert.NotSame(t, b, rebuilt)
}

package web

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alexisbeaulieu97/momentum/internal/logging"
	"github.com/alexisbeaulieu97/momentum/internal/storage"
	"github.com/alexisbeaulieu97/momentum/internal/theme"
)

// DefaultCookieName names the session cookie when none is configured.
const DefaultCookieName = "momentum_session"

// Session table limits used when SessionOptions leaves them zero.
const (
	DefaultIdleTimeout = 30 * time.Minute
	DefaultMaxSessions = 1024
)

// Flash kinds.
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Kind    string
	Message string
}

// Session is one browser's client state: its store namespace, its theme
// selection and the document the applier patches.
type Session struct {
	ID      string
	Store   storage.Store
	Sheet   *theme.Sheet
	Theme   *theme.Context
	Applier *theme.Applier

	mu       sync.Mutex
	flashes  []Flash
	lastSeen time.Time
}

// AddFlash queues a message for the next render.
func (s *Session) AddFlash(kind, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flashes = append(s.flashes, Flash{Kind: kind, Message: message})
}

// TakeFlashes returns and clears the queued messages.
func (s *Session) TakeFlashes() []Flash {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.flashes
	s.flashes = nil
	return out
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) seen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// SessionOptions configures a Sessions table.
type SessionOptions struct {
	CookieName string
	Registry   *theme.Registry
	// Routes are the themed path prefixes; empty uses theme.DefaultRoutes.
	Routes []string
	// NewStore returns the store backing session id. The default keeps state
	// in memory for the life of the process.
	NewStore func(id string) storage.Store
	// IdleTimeout drops sessions not seen for this long. MaxSessions caps
	// the table, evicting the least recently seen session. An evicted
	// session is rebuilt from its store on its next request.
	IdleTimeout time.Duration
	MaxSessions int
	// Now defaults to time.Now.
	Now func() time.Time
	Log logging.Logger
}

// Sessions maps session cookies to live sessions. A valid cookie whose
// session is not in memory is rebuilt from its store, so selections and
// tokens survive a restart when the store is persistent.
type Sessions struct {
	mu       sync.Mutex
	cookie   string
	registry *theme.Registry
	routes   []string
	newStore func(string) storage.Store
	idle     time.Duration
	max      int
	now      func() time.Time
	log      logging.Logger
	live     map[string]*Session
}

// NewSessions creates an empty session table.
func NewSessions(opts SessionOptions) *Sessions {
	if opts.CookieName == "" {
		opts.CookieName = DefaultCookieName
	}
	if opts.Registry == nil {
		opts.Registry = theme.Builtin()
	}
	if opts.NewStore == nil {
		opts.NewStore = func(string) storage.Store { return storage.NewMemoryStore(nil) }
	}
	if opts.IdleTimeout <= 0 {
		opts.IdleTimeout = DefaultIdleTimeout
	}
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = DefaultMaxSessions
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Sessions{
		cookie:   opts.CookieName,
		registry: opts.Registry,
		routes:   opts.Routes,
		newStore: opts.NewStore,
		idle:     opts.IdleTimeout,
		max:      opts.MaxSessions,
		now:      opts.Now,
		log:      logging.OrNoOp(opts.Log),
		live:     make(map[string]*Session),
	}
}

// Load returns the session named by the request cookie, starting a new one
// and setting the cookie when the request has none or an invalid one.
func (s *Sessions) Load(w http.ResponseWriter, r *http.Request) *Session {
	id := ""
	if c, err := r.Cookie(s.cookie); err == nil {
		if parsed, err := uuid.Parse(c.Value); err == nil {
			id = parsed.String()
		}
	}
	if id == "" {
		id = uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     s.cookie,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			Secure:   r.TLS != nil,
			SameSite: http.SameSiteLaxMode,
		})
	}

	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.live[id]; ok && now.Sub(sess.seen()) < s.idle {
		sess.touch(now)
		return sess
	}
	s.evictLocked(now)
	sess := s.build(r.Context(), id)
	sess.touch(now)
	s.live[id] = sess
	return sess
}

// Sweep drops every session idle for longer than the idle timeout.
func (s *Sessions) Sweep() {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictLocked(now)
}

// evictLocked drops idle sessions, then the least recently seen ones until
// there is room for one more.
func (s *Sessions) evictLocked(now time.Time) {
	for id, sess := range s.live {
		if now.Sub(sess.seen()) >= s.idle {
			delete(s.live, id)
		}
	}
	for len(s.live) >= s.max {
		oldest := ""
		var at time.Time
		for id, sess := range s.live {
			if seen := sess.seen(); oldest == "" || seen.Before(at) {
				oldest, at = id, seen
			}
		}
		delete(s.live, oldest)
	}
}

// Len reports how many sessions are live.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.live)
}

// Close reverts every session's document and forgets them.
func (s *Sessions) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.live {
		sess.Applier.Close()
		delete(s.live, id)
	}
}

func (s *Sessions) build(ctx context.Context, id string) *Session {
	log := s.log.With("session", id)
	store := s.newStore(id)
	sheet := theme.NewSheet()
	selection := theme.NewContext(s.registry, store, sheet, log)
	selection.Load(ctx)
	applier := theme.NewApplier(s.registry, sheet, s.routes, log)
	applier.Follow(selection)
	log.Debug(ctx, "session started", "theme", selection.Current())
	return &Session{
		ID:      id,
		Store:   store,
		Sheet:   sheet,
		Theme:   selection,
		Applier: applier,
	}
}

// Package web is Momentum's server-rendered browser client. Each browser
// gets a cookie-keyed session holding its token store and theme state; page
// handlers load the matching view from the habit API and render it with the
// session's theme applied.
package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/alexisbeaulieu97/momentum/internal/api"
	"github.com/alexisbeaulieu97/momentum/internal/catalog"
	"github.com/alexisbeaulieu97/momentum/internal/logging"
)

const (
	shutdownTimeout = 5 * time.Second
	sweepInterval   = time.Minute
)

// Options wires a Server to its collaborators.
type Options struct {
	// Client is the API client without a token; handlers bind the session's
	// token per request.
	Client   *api.Client
	Catalog  *catalog.Catalog
	Sessions *Sessions
	Log      logging.Logger
}

// Server serves the web client.
type Server struct {
	client   *api.Client
	catalog  *catalog.Catalog
	sessions *Sessions
	log      logging.Logger
	pages    *renderer
	handler  http.Handler
}

// NewServer builds a Server and its routes.
func NewServer(opts Options) (*Server, error) {
	if opts.Client == nil {
		return nil, errors.New("web: api client is required")
	}
	if opts.Catalog == nil {
		opts.Catalog = catalog.Builtin()
	}
	log := logging.OrNoOp(opts.Log)
	if opts.Sessions == nil {
		opts.Sessions = NewSessions(SessionOptions{Log: log})
	}
	pages, err := newRenderer()
	if err != nil {
		return nil, err
	}

	s := &Server{
		client:   opts.Client,
		catalog:  opts.Catalog,
		sessions: opts.Sessions,
		log:      log,
		pages:    pages,
	}
	s.handler = chain(s.routes(),
		withCorrelationID,
		withRequestLog(log),
		withRecover(log),
	)
	return s, nil
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.Handle("GET /static/", http.FileServerFS(staticFS()))

	mux.HandleFunc("GET /{$}", s.public(s.handleHome))
	mux.HandleFunc("GET /login", s.public(s.handleLoginPage))
	mux.HandleFunc("POST /login", s.public(s.handleLogin))
	mux.HandleFunc("GET /signup", s.public(s.handleSignupPage))
	mux.HandleFunc("POST /signup", s.public(s.handleSignup))
	mux.HandleFunc("POST /logout", s.public(s.handleLogout))

	mux.HandleFunc("GET /dashboard", s.protected(s.handleDashboard))
	mux.HandleFunc("POST /dashboard/habits", s.protected(s.handleCreateHabit))
	mux.HandleFunc("POST /dashboard/habits/{id}/complete", s.protected(s.handleCompleteHabit))
	mux.HandleFunc("POST /dashboard/habits/{id}/delete", s.protected(s.handleDeleteHabit))

	mux.HandleFunc("GET /shop", s.protected(s.handleShop))
	mux.HandleFunc("POST /shop/purchase", s.protected(s.handlePurchase))

	mux.HandleFunc("GET /inventory", s.protected(s.handleInventory))
	mux.HandleFunc("POST /inventory/use", s.protected(s.handleUseItem))

	mux.HandleFunc("GET /achievements", s.protected(s.handleAchievements))
	mux.HandleFunc("POST /achievements/{id}/claim", s.protected(s.handleClaim))

	return mux
}

// Handler returns the root handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Sessions exposes the server's session table.
func (s *Server) Sessions() *Sessions {
	return s.sessions
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sweepCtx, stopSweep := context.WithCancel(ctx)
	swept := make(chan struct{})
	go func() {
		defer close(swept)
		s.sweepSessions(sweepCtx)
	}()
	defer func() {
		stopSweep()
		<-swept
	}()

	errCh := make(chan error, 1)
	go func() {
		s.log.Info(ctx, "web client listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.sessions.Close()
	s.log.Info(ctx, "web client stopped")
	if err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

// sweepSessions drops idle sessions until ctx is done.
func (s *Server) sweepSessions(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sessions.Sweep()
		}
	}
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

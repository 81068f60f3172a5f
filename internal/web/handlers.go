package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/alexisbeaulieu97/momentum/internal/api"
	"github.com/alexisbeaulieu97/momentum/internal/auth"
	"github.com/alexisbeaulieu97/momentum/internal/model"
	"github.com/alexisbeaulieu97/momentum/internal/storage"
	"github.com/alexisbeaulieu97/momentum/internal/views"
	momentumerrors "github.com/alexisbeaulieu97/momentum/pkg/errors"
)

type publicHandler func(w http.ResponseWriter, r *http.Request, sess *Session)

type protectedHandler func(w http.ResponseWriter, r *http.Request, sess *Session, client *api.Client)

func (s *Server) public(h publicHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h(w, r, s.sessions.Load(w, r))
	}
}

// protected redirects to /login before the handler runs, and so before any
// API request, when the session holds no token.
func (s *Server) protected(h protectedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := s.sessions.Load(w, r)
		client, err := auth.NewGuard(sess.Store).Client(r.Context(), s.client)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		h(w, r, sess, client)
	}
}

// fail handles errors no page can render around: a missing token redirects
// to /login, a cancelled request is dropped, anything else is a 500.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, auth.ErrNoToken):
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	case errors.Is(err, context.Canceled):
		s.log.Debug(r.Context(), "request cancelled", "path", r.URL.Path)
	default:
		s.log.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// loader is the part of a view the page handlers drive.
type loader interface {
	Load(ctx context.Context) error
	Status() views.Status
}

// load fetches v and the profile menu concurrently.
func (s *Server) load(ctx context.Context, client *api.Client, v loader) (*views.ProfileMenu, error) {
	menu := views.NewProfileMenu(client, s.log)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return v.Load(gctx) })
	g.Go(func() error { return menu.Load(gctx) })
	return menu, g.Wait()
}

// page renders name for the session with the document synced to the
// request path.
func (s *Server) page(w http.ResponseWriter, r *http.Request, sess *Session, status int, name, title string, menu *views.ProfileMenu, notices []string, data any) {
	doc := sess.Applier.Render(r.Context(), r.URL.Path)

	l := layout{
		Title:   title,
		Nav:     name,
		Flashes: sess.TakeFlashes(),
		Notices: notices,
		Page:    data,
	}
	if menu != nil {
		profile := menu.Profile()
		l.SignedIn = true
		l.Initials = menu.Initials()
		l.ProfileName = profile.Name
		l.ProfileEmail = profile.Email
		l.Notices = append(l.Notices, menu.Status().Notices...)
	} else if _, err := auth.NewGuard(sess.Store).Token(r.Context()); err == nil {
		l.SignedIn = true
	}
	l.withDocument(doc)

	if err := s.pages.render(w, status, name, l); err != nil {
		s.log.Error(r.Context(), "render page", "page", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func seeOther(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// back returns the path to redirect to after a form post: the form's
// "return" field when it is a local path, otherwise fallback.
func back(r *http.Request, fallback string) string {
	target := r.PostFormValue("return")
	u, err := url.Parse(target)
	if target == "" || err != nil || u.IsAbs() || u.Host != "" {
		return fallback
	}
	clean := path.Clean("/" + u.Path)
	if clean != fallback && !strings.HasPrefix(clean, fallback+"/") {
		return fallback
	}
	u.Path = clean
	return u.RequestURI()
}

// flashFailure queues the user-facing message for a failed mutation, or
// reports false when err must be handled by fail.
func flashFailure(sess *Session, err error, fallback string) bool {
	if errors.Is(err, auth.ErrNoToken) || errors.Is(err, context.Canceled) {
		return false
	}
	sess.AddFlash(FlashError, momentumerrors.UserMessage(err, fallback))
	return true
}

type feature struct {
	Title string
	Body  string
}

var homeFeatures = []feature{
	{"Daily Tracking", "Monitor your progress with simple, intuitive habit tracking that keeps you accountable."},
	{"Reward System", "Earn coins for completed habits and redeem them in the shop for themes and powerups."},
	{"Minimalist Design", "Focus on what matters with a clean interface that eliminates distractions."},
}

type homePage struct {
	SignedIn bool
	Features []feature
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request, sess *Session) {
	_, err := auth.NewGuard(sess.Store).Token(r.Context())
	s.page(w, r, sess, http.StatusOK, "home", "Build habits that stick", nil, nil, homePage{
		SignedIn: err == nil,
		Features: homeFeatures,
	})
}

type loginPage struct {
	Email    string
	Remember bool
	Error    string
	Errors   momentumerrors.FieldErrors
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request, sess *Session) {
	s.page(w, r, sess, http.StatusOK, "login", "Sign in", nil, nil, loginPage{
		Email: storage.GetString(r.Context(), sess.Store, storage.KeyUserEmail),
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request, sess *Session) {
	form := auth.LoginForm{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
		Remember: r.PostFormValue("remember") != "",
	}
	svc := auth.NewService(s.client, sess.Store, s.log)
	if _, err := svc.Login(r.Context(), form); err != nil {
		if errors.Is(err, context.Canceled) {
			s.fail(w, r, err)
			return
		}
		data := loginPage{Email: strings.TrimSpace(form.Email), Remember: form.Remember}
		status := http.StatusUnprocessableEntity
		if !errors.As(err, &data.Errors) {
			data.Error = momentumerrors.UserMessage(err, auth.MsgLoginFailed)
			status = http.StatusUnauthorized
		}
		s.page(w, r, sess, status, "login", "Sign in", nil, nil, data)
		return
	}
	seeOther(w, r, "/dashboard")
}

type signupPage struct {
	Name       string
	Email      string
	AgreeTerms bool
	Error      string
	Errors     momentumerrors.FieldErrors
}

func (s *Server) handleSignupPage(w http.ResponseWriter, r *http.Request, sess *Session) {
	s.page(w, r, sess, http.StatusOK, "signup", "Create account", nil, nil, signupPage{})
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request, sess *Session) {
	form := auth.SignupForm{
		Name:            r.PostFormValue("name"),
		Email:           r.PostFormValue("email"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirmPassword"),
		AgreeTerms:      r.PostFormValue("agreeTerms") != "",
	}
	svc := auth.NewService(s.client, sess.Store, s.log)
	if err := svc.Signup(r.Context(), form); err != nil {
		if errors.Is(err, context.Canceled) {
			s.fail(w, r, err)
			return
		}
		data := signupPage{
			Name:       strings.TrimSpace(form.Name),
			Email:      strings.TrimSpace(form.Email),
			AgreeTerms: form.AgreeTerms,
		}
		if !errors.As(err, &data.Errors) {
			data.Error = momentumerrors.UserMessage(err, auth.MsgSignupFailed)
		}
		s.page(w, r, sess, http.StatusUnprocessableEntity, "signup", "Create account", nil, nil, data)
		return
	}
	sess.AddFlash(FlashSuccess, "Account created. Please sign in.")
	seeOther(w, r, "/login")
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request, sess *Session) {
	if err := auth.NewService(s.client, sess.Store, s.log).Logout(r.Context()); err != nil {
		s.fail(w, r, err)
		return
	}
	sess.AddFlash(FlashInfo, "You have been signed out.")
	seeOther(w, r, "/")
}

type dashboardPage struct {
	Habits      []model.Habit
	Stats       views.DashboardStats
	Coins       int
	Query       string
	Frequencies []option
	Form        model.NewHabit
	Errors      momentumerrors.FieldErrors
	Return      string
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request, sess *Session, client *api.Client) {
	s.renderDashboard(w, r, sess, client, http.StatusOK, model.DefaultNewHabit(), nil)
}

func (s *Server) renderDashboard(w http.ResponseWriter, r *http.Request, sess *Session, client *api.Client, status int, form model.NewHabit, fieldErrs momentumerrors.FieldErrors) {
	dash := views.NewDashboard(client, s.log)
	menu, err := s.load(r.Context(), client, dash)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	filter := views.HabitFilter{
		Frequency: r.URL.Query().Get("frequency"),
		Query:     r.URL.Query().Get("q"),
	}
	s.page(w, r, sess, status, "dashboard", "Dashboard", menu, dash.Status().Notices, dashboardPage{
		Habits:      dash.Filtered(filter),
		Stats:       dash.Stats(),
		Coins:       dash.Coins(),
		Query:       filter.Query,
		Frequencies: options(orAll(filter.Frequency), "all", model.FrequencyDaily, model.FrequencyWeekly, model.FrequencyMonthly),
		Form:        form,
		Errors:      fieldErrs,
		Return:      r.URL.RequestURI(),
	})
}

func (s *Server) handleCreateHabit(w http.ResponseWriter, r *http.Request, sess *Session, client *api.Client) {
	form, fieldErrs := habitForm(r)
	if len(fieldErrs) == 0 {
		dash := views.NewDashboard(client, s.log)
		habit, err := dash.Create(r.Context(), form)
		switch {
		case err == nil:
			sess.AddFlash(FlashSuccess, fmt.Sprintf("%s added to your habits.", habit.Title))
			seeOther(w, r, "/dashboard")
			return
		case errors.As(err, &fieldErrs):
		case flashFailure(sess, err, views.MsgCreateHabitFailed):
			seeOther(w, r, "/dashboard")
			return
		default:
			s.fail(w, r, err)
			return
		}
	}
	s.renderDashboard(w, r, sess, client, http.StatusUnprocessableEntity, form, fieldErrs)
}

// habitForm decodes the new-habit form. A non-numeric coin reward is
// reported as a field error.
func habitForm(r *http.Request) (model.NewHabit, momentumerrors.FieldErrors) {
	form := model.NewHabit{
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
		Frequency:   r.PostFormValue("frequency"),
		Category:    r.PostFormValue("category"),
		TimeOfDay:   r.PostFormValue("timeOfDay"),
		Difficulty:  r.PostFormValue("difficulty"),
		Color:       r.PostFormValue("color"),
	}
	errs := momentumerrors.FieldErrors{}
	if raw := strings.TrimSpace(r.PostFormValue("coinReward")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs.Add("coinReward", "Coin reward must be a whole number")
		}
		form.CoinReward = n
	}
	return form, errs
}

func (s *Server) handleCompleteHabit(w http.ResponseWriter, r *http.Request, sess *Session, client *api.Client) {
	target := back(r, "/dashboard")
	dash := views.NewDashboard(client, s.log)
	if err := dash.Load(r.Context()); err != nil {
		s.fail(w, r, err)
		return
	}
	id := r.PathValue("id")
	sent, err := dash.Complete(r.Context(), id)
	switch {
	case err != nil:
		if !flashFailure(sess, err, views.MsgCompleteFailed) {
			s.fail(w, r, err)
			return
		}
	case !sent:
		sess.AddFlash(FlashInfo, "Already completed today.")
	default:
		for _, h := range dash.Habits() {
			if h.ID == id {
				sess.AddFlash(FlashSuccess, fmt.Sprintf("%s completed! +%d coins", h.Title, h.CoinReward))
			}
		}
	}
	seeOther(w, r, target)
}

func (s *Server) handleDeleteHabit(w http.ResponseWriter, r *http.Request, sess *Session, client *api.Client) {
	target := back(r, "/dashboard")
	dash := views.NewDashboard(client, s.log)
	if err := dash.Delete(r.Context(), r.PathValue("id")); err != nil {
		if !flashFailure(sess, err, views.MsgDeleteFailed) {
			s.fail(w, r, err)
			return
		}
	} else {
		sess.AddFlash(FlashSuccess, "Habit deleted.")
	}
	seeOther(w, r, target)
}

type shopPage struct {
	Entries    []views.ShopEntry
	Coins      int
	Query      string
	Categories []option
	Return     string
}

func (s *Server) handleShop(w http.ResponseWriter, r *http.Request, sess *Session, client *api.Client) {
	shop := views.NewShop(client, s.catalog, s.log)
	menu, err := s.load(r.Context(), client, shop)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	filter := itemFilter(r)
	s.page(w, r, sess, http.StatusOK, "shop", "Shop", menu, shop.Status().Notices, shopPage{
		Entries:    shop.Entries(filter),
		Coins:      shop.Coins(),
		Query:      filter.Query,
		Categories: categoryOptions(filter.Category),
		Return:     r.URL.RequestURI(),
	})
}

func (s *Server) handlePurchase(w http.ResponseWriter, r *http.Request, sess *Session, client *api.Client) {
	target := back(r, "/shop")
	shop := views.NewShop(client, s.catalog, s.log)
	if err := shop.Load(r.Context()); err != nil {
		s.fail(w, r, err)
		return
	}
	item, err := shop.Purchase(r.Context(), r.PostFormValue("itemId"))
	if err != nil {
		if !flashFailure(sess, err, views.MsgPurchaseFailed) {
			s.fail(w, r, err)
			return
		}
	} else {
		sess.AddFlash(FlashSuccess, fmt.Sprintf("%s added to your inventory.", item.Name))
	}
	seeOther(w, r, target)
}

type inventoryPage struct {
	Items      []model.InventoryItem
	Coins      int
	Query      string
	Categories []option
	Return     string
}

func (s *Server) handleInventory(w http.ResponseWriter, r *http.Request, sess *Session, client *api.Client) {
	inv := views.NewInventory(client, sess.Theme, s.log)
	menu, err := s.load(r.Context(), client, inv)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	filter := itemFilter(r)
	s.page(w, r, sess, http.StatusOK, "inventory", "Inventory", menu, inv.Status().Notices, inventoryPage{
		Items:      inv.Items(filter),
		Coins:      inv.Coins(),
		Query:      filter.Query,
		Categories: categoryOptions(filter.Category),
		Return:     r.URL.RequestURI(),
	})
}

func (s *Server) handleUseItem(w http.ResponseWriter, r *http.Request, sess *Session, client *api.Client) {
	target := back(r, "/inventory")
	inv := views.NewInventory(client, sess.Theme, s.log)
	if err := inv.Load(r.Context()); err != nil {
		s.fail(w, r, err)
		return
	}
	msg, err := inv.Use(r.Context(), r.PostFormValue("itemId"))
	if err != nil {
		if !flashFailure(sess, err, views.MsgUseFailed) {
			s.fail(w, r, err)
			return
		}
	} else if msg != "" {
		sess.AddFlash(FlashSuccess, msg)
	}
	seeOther(w, r, target)
}

type achievementsPage struct {
	Achievements []model.Achievement
	Stats        views.AchievementStats
	Coins        int
	Query        string
	Categories   []option
	Earned       []option
	Return       string
}

func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request, sess *Session, client *api.Client) {
	ach := views.NewAchievements(client, s.log)
	menu, err := s.load(r.Context(), client, ach)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	q := r.URL.Query()
	filter := views.AchievementFilter{
		Category: q.Get("category"),
		Earned:   q.Get("earned"),
		Query:    q.Get("q"),
	}
	s.page(w, r, sess, http.StatusOK, "achievements", "Achievements", menu, ach.Status().Notices, achievementsPage{
		Achievements: ach.Filtered(filter),
		Stats:        ach.Stats(),
		Coins:        ach.Coins(),
		Query:        filter.Query,
		Categories:   options(orAll(filter.Category), append([]string{"all"}, ach.Categories()...)...),
		Earned:       options(orAll(filter.Earned), views.EarnedAll, views.EarnedOnly, views.EarnedUnearned),
		Return:       r.URL.RequestURI(),
	})
}

func (s *Server) handleClaim(w http.ResponseWriter, r *http.Request, sess *Session, client *api.Client) {
	target := back(r, "/achievements")
	ach := views.NewAchievements(client, s.log)
	if err := ach.Load(r.Context()); err != nil {
		s.fail(w, r, err)
		return
	}
	claimed, err := ach.Claim(r.Context(), r.PathValue("id"))
	if err != nil {
		if !flashFailure(sess, err, views.MsgClaimFailed) {
			s.fail(w, r, err)
			return
		}
	} else {
		sess.AddFlash(FlashSuccess, fmt.Sprintf("Reward claimed! +%d coins", claimed.CoinReward))
	}
	seeOther(w, r, target)
}

func itemFilter(r *http.Request) views.ItemFilter {
	q := r.URL.Query()
	return views.ItemFilter{Category: q.Get("category"), Query: q.Get("q")}
}

func categoryOptions(selected string) []option {
	return options(orAll(selected), "all", model.CategoryThemes, model.CategoryPowerups, model.CategoryBackgrounds)
}

func orAll(v string) string {
	if v == "" {
		return "all"
	}
	return v
}

// Package auth signs users in and out and guards protected pages. The bearer
// token lives in the client store under storage.KeyAuthToken.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/momentum/internal/api"
	"github.com/alexisbeaulieu97/momentum/internal/logging"
	"github.com/alexisbeaulieu97/momentum/internal/model"
	"github.com/alexisbeaulieu97/momentum/internal/storage"
	"github.com/alexisbeaulieu97/momentum/internal/validation"
	momentumerrors "github.com/alexisbeaulieu97/momentum/pkg/errors"
)

// ErrNoToken means no bearer token is stored.
var ErrNoToken = api.ErrNoToken

// User-facing messages.
const (
	MsgLoginFailed      = "Invalid email or password. Please try again."
	MsgSignupFailed     = "Registration failed. Please try again."
	MsgUnavailable      = "An error occurred. Please try again later."
	MsgPasswordMismatch = "Passwords do not match"
	MsgAcceptTerms      = "You must agree to the Terms of Service and Privacy Policy"
)

// LoginForm is the submitted login form.
type LoginForm struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Remember bool   `json:"remember"`
}

// SignupForm is the submitted registration form.
type SignupForm struct {
	Name            string `json:"name" validate:"required,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	AgreeTerms      bool   `json:"agreeTerms" validate:"eq=true"`
}

var signupMessages = validation.Messages{
	"confirmPassword.eqfield": MsgPasswordMismatch,
	"agreeTerms.eq":           MsgAcceptTerms,
}

// Session is the outcome of a successful login.
type Session struct {
	Token string
	User  *model.User
}

// Service performs authentication against the backend.
type Service struct {
	client *api.Client
	store  storage.Store
	log    logging.Logger
}

// NewService creates a Service that persists credentials in store.
func NewService(client *api.Client, store storage.Store, log logging.Logger) *Service {
	return &Service{client: client, store: store, log: logging.OrNoOp(log)}
}

// Login validates form, exchanges it for a token and persists the token and
// any returned user details. Validation failures are FieldErrors; backend
// failures are UserErrors.
func (s *Service) Login(ctx context.Context, form LoginForm) (Session, error) {
	form.Email = strings.TrimSpace(form.Email)
	if err := validation.Form(form, nil); err != nil {
		return Session{}, err
	}

	resp, err := s.client.Login(ctx, form.Email, form.Password)
	if err != nil {
		s.log.Warn(ctx, "login failed", "email", form.Email, "error", err)
		return Session{}, backendError(err, MsgLoginFailed)
	}
	if resp.AccessToken == "" {
		return Session{}, momentumerrors.NewUserError(MsgLoginFailed, errors.New("login response carried no token"))
	}

	values := [][2]string{{storage.KeyAuthToken, resp.AccessToken}}
	if form.Remember {
		values = append(values, [2]string{storage.KeyRememberUser, "true"})
	}
	if resp.User != nil {
		values = append(values,
			[2]string{storage.KeyUserEmail, resp.User.Email},
			[2]string{storage.KeyUserName, resp.User.Name},
		)
	}
	for _, kv := range values {
		if err := s.store.Set(ctx, kv[0], kv[1]); err != nil {
			return Session{}, momentumerrors.NewUserError(MsgUnavailable, fmt.Errorf("persist %s: %w", kv[0], err))
		}
	}

	s.log.Info(ctx, "logged in", "email", form.Email)
	return Session{Token: resp.AccessToken, User: resp.User}, nil
}

// Signup validates form and registers the account. It does not sign in.
func (s *Service) Signup(ctx context.Context, form SignupForm) error {
	form.Email = strings.TrimSpace(form.Email)
	form.Name = strings.TrimSpace(form.Name)
	if err := validation.Form(form, signupMessages); err != nil {
		return err
	}

	_, err := s.client.Register(ctx, api.RegisterRequest{
		Email:    form.Email,
		Password: form.Password,
		Name:     form.Name,
	})
	if err != nil {
		s.log.Warn(ctx, "signup failed", "email", form.Email, "error", err)
		return backendError(err, MsgSignupFailed)
	}
	s.log.Info(ctx, "registered", "email", form.Email)
	return nil
}

// Logout forgets the stored token.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.store.Delete(ctx, storage.KeyAuthToken); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	s.log.Info(ctx, "logged out")
	return nil
}

// backendError maps an API failure to a UserError: the server's message or
// fallback for HTTP errors, a generic message for transport failures.
func backendError(err error, fallback string) error {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return momentumerrors.NewUserError(api.Message(err, fallback), err)
	}
	return momentumerrors.NewUserError(MsgUnavailable, err)
}

package auth_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/alexisbeaulieu97/momentum/internal/api"
	"github.com/alexisbeaulieu97/momentum/internal/api/apitest"
	"github.com/alexisbeaulieu97/momentum/internal/auth"
	"github.com/alexisbeaulieu97/momentum/internal/storage"
	momentumerrors "github.com/alexisbeaulieu97/momentum/pkg/errors"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
	)
}

func newService(t *testing.T) (*auth.Service, *apitest.Server, *storage.MemoryStore) {
	t.Helper()
	fake := apitest.New(t)
	client, err := api.New(fake.URL())
	require.NoError(t, err)
	store := storage.NewMemoryStore(nil)
	return auth.NewService(client, store, nil), fake, store
}

func TestLoginPersistsCredentials(t *testing.T) {
	ctx := context.Background()
	svc, fake, store := newService(t)
	fake.AddUser("ada@example.com", "secret", "Ada Lovelace")

	session, err := svc.Login(ctx, auth.LoginForm{Email: " ada@example.com ", Password: "secret", Remember: true})
	require.NoError(t, err)
	assert.Equal(t, apitest.DefaultToken, session.Token)

	assert.Equal(t, apitest.DefaultToken, storage.GetString(ctx, store, storage.KeyAuthToken))
	assert.Equal(t, "true", storage.GetString(ctx, store, storage.KeyRememberUser))
	assert.Equal(t, "ada@example.com", storage.GetString(ctx, store, storage.KeyUserEmail))
	assert.Equal(t, "Ada Lovelace", storage.GetString(ctx, store, storage.KeyUserName))
}

func TestLoginWithoutRememberSkipsFlag(t *testing.T) {
	ctx := context.Background()
	svc, fake, store := newService(t)
	fake.AddUser("ada@example.com", "secret", "Ada")

	_, err := svc.Login(ctx, auth.LoginForm{Email: "ada@example.com", Password: "secret"})
	require.NoError(t, err)
	_, ok, _ := store.Get(ctx, storage.KeyRememberUser)
	assert.False(t, ok)
}

func TestLoginValidation(t *testing.T) {
	svc, fake, _ := newService(t)

	_, err := svc.Login(context.Background(), auth.LoginForm{})
	var fields momentumerrors.FieldErrors
	require.True(t, errors.As(err, &fields))
	assert.Equal(t, "Email is required", fields.Get("email"))
	assert.Equal(t, "Password is required", fields.Get("password"))
	assert.Zero(t, fake.RequestCount())
}

func TestLoginFailureMessages(t *testing.T) {
	ctx := context.Background()
	svc, fake, store := newService(t)

	_, err := svc.Login(ctx, auth.LoginForm{Email: "who@example.com", Password: "x"})
	assert.Equal(t, "Invalid email or password", momentumerrors.UserMessage(err, ""))

	fake.Fail(http.MethodPost, "/login", http.StatusInternalServerError, "")
	_, err = svc.Login(ctx, auth.LoginForm{Email: "who@example.com", Password: "x"})
	assert.Equal(t, auth.MsgLoginFailed, momentumerrors.UserMessage(err, ""))

	assert.Empty(t, store.Keys())
}

func TestLoginTransportFailure(t *testing.T) {
	svc, fake, _ := newService(t)
	fake.Close()

	_, err := svc.Login(context.Background(), auth.LoginForm{Email: "a@b.c", Password: "x"})
	assert.Equal(t, auth.MsgUnavailable, momentumerrors.UserMessage(err, ""))
}

func TestSignup(t *testing.T) {
	ctx := context.Background()
	svc, fake, _ := newService(t)

	form := auth.SignupForm{
		Name:            "Grace Hopper",
		Email:           "grace@example.com",
		Password:        "cobol59",
		ConfirmPassword: "cobol59",
		AgreeTerms:      true,
	}
	require.NoError(t, svc.Signup(ctx, form))

	err := svc.Signup(ctx, form)
	assert.Equal(t, "User already exists", momentumerrors.UserMessage(err, ""))
	assert.Equal(t, 2, fake.RequestCount())
}

func TestSignupValidation(t *testing.T) {
	svc, fake, _ := newService(t)

	err := svc.Signup(context.Background(), auth.SignupForm{
		Name:            "Grace",
		Email:           "grace@example.com",
		Password:        "cobol59",
		ConfirmPassword: "fortran",
	})
	var fields momentumerrors.FieldErrors
	require.True(t, errors.As(err, &fields))
	assert.Equal(t, auth.MsgPasswordMismatch, fields.Get("confirmPassword"))
	assert.Equal(t, auth.MsgAcceptTerms, fields.Get("agreeTerms"))
	assert.Zero(t, fake.RequestCount())
}

func TestLogoutAndGuard(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore(map[string]string{storage.KeyAuthToken: "tok"})
	guard := auth.NewGuard(store)

	token, err := guard.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok", token)

	base, err := api.New("http://127.0.0.1:1")
	require.NoError(t, err)
	client, err := guard.Client(ctx, base)
	require.NoError(t, err)
	assert.Equal(t, "tok", client.Token())

	client2, _ := api.New("http://127.0.0.1:1")
	svc := auth.NewService(client2, store, nil)
	require.NoError(t, svc.Logout(ctx))

	_, err = guard.Token(ctx)
	assert.ErrorIs(t, err, auth.ErrNoToken)
	_, err = guard.Client(ctx, base)
	assert.ErrorIs(t, err, auth.ErrNoToken)
}

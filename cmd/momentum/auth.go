package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/momentum/internal/auth"
	"github.com/alexisbeaulieu97/momentum/internal/logging"
	"github.com/alexisbeaulieu97/momentum/internal/storage"
)

type loginOptions struct {
	email    string
	password string
	remember bool
}

func newLoginCmd(flags *rootFlags) *cobra.Command {
	opts := &loginOptions{}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, "command.login", func(ctx context.Context, app *AppContext, log logging.Logger) error {
				return runLogin(ctx, cmd, app, log, opts)
			})
		},
	}

	cmd.Flags().StringVarP(&opts.email, "email", "e", "", "Account email (defaults to the remembered one)")
	cmd.Flags().StringVar(&opts.password, "password", "", "Password (prompted when omitted)")
	cmd.Flags().BoolVar(&opts.remember, "remember", false, "Remember the email for next time")

	return cmd
}

func runLogin(ctx context.Context, cmd *cobra.Command, app *AppContext, log logging.Logger, opts *loginOptions) error {
	in := bufio.NewReader(cmd.InOrStdin())

	email := opts.email
	if email == "" {
		email = storage.GetString(ctx, app.Store, storage.KeyUserEmail)
	}
	if email == "" {
		var err error
		if email, err = prompt(cmd, in, "Email: "); err != nil {
			return newCommandError("login", "reading email", err, "Pass --email instead.")
		}
	}

	password := opts.password
	if password == "" {
		var err error
		if password, err = promptPassword(cmd, in, "Password: "); err != nil {
			return newCommandError("login", "reading password", err, "Pipe the password on stdin or pass --password.")
		}
	}

	svc := auth.NewService(app.Client, app.Store, log)
	session, err := svc.Login(ctx, auth.LoginForm{Email: email, Password: password, Remember: opts.remember})
	if err != nil {
		return actionError("login", fmt.Sprintf("signing in as %q", email), err, auth.MsgLoginFailed)
	}

	p := app.Printer(ctx, cmd.OutOrStdout())
	name := email
	if session.User != nil && session.User.Name != "" {
		name = session.User.Name
	}
	p.Success("Signed in as %s", name)
	return nil
}

type signupOptions struct {
	name       string
	email      string
	password   string
	agreeTerms bool
}

func newSignupCmd(flags *rootFlags) *cobra.Command {
	opts := &signupOptions{}

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, "command.signup", func(ctx context.Context, app *AppContext, log logging.Logger) error {
				return runSignup(ctx, cmd, app, log, opts)
			})
		},
	}

	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "Display name")
	cmd.Flags().StringVarP(&opts.email, "email", "e", "", "Account email")
	cmd.Flags().StringVar(&opts.password, "password", "", "Password (prompted when omitted)")
	cmd.Flags().BoolVar(&opts.agreeTerms, "agree-terms", false, "Agree to the Terms of Service and Privacy Policy")

	return cmd
}

func runSignup(ctx context.Context, cmd *cobra.Command, app *AppContext, log logging.Logger, opts *signupOptions) error {
	in := bufio.NewReader(cmd.InOrStdin())
	password, confirm := opts.password, opts.password
	if password == "" {
		var err error
		if password, err = promptPassword(cmd, in, "Password: "); err != nil {
			return newCommandError("sign up", "reading password", err, "Pipe the password on stdin or pass --password.")
		}
		if confirm, err = promptPassword(cmd, in, "Confirm password: "); err != nil {
			return newCommandError("sign up", "reading password confirmation", err, "Pipe the password twice on stdin or pass --password.")
		}
	}

	svc := auth.NewService(app.Client, app.Store, log)
	err := svc.Signup(ctx, auth.SignupForm{
		Name:            opts.name,
		Email:           opts.email,
		Password:        password,
		ConfirmPassword: confirm,
		AgreeTerms:      opts.agreeTerms,
	})
	if err != nil {
		return actionError("sign up", fmt.Sprintf("registering %q", opts.email), err, auth.MsgSignupFailed)
	}

	p := app.Printer(ctx, cmd.OutOrStdout())
	p.Success("Account created. Please sign in.")
	p.Hint("Run 'momentum login --email %s' to continue.", opts.email)
	return nil
}

func newLogoutCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, "command.logout", func(ctx context.Context, app *AppContext, log logging.Logger) error {
				if err := auth.NewService(app.Client, app.Store, log).Logout(ctx); err != nil {
					return newCommandError("log out", "removing the stored token", err, "Check that the state database is writable.")
				}
				app.Printer(ctx, cmd.OutOrStdout()).Success("You have been signed out.")
				return nil
			})
		},
	}
}

func prompt(cmd *cobra.Command, in *bufio.Reader, label string) (string, error) {
	_, _ = fmt.Fprint(cmd.ErrOrStderr(), label)
	line, err := in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads without echo from a terminal, or a plain line from
// piped input.
func promptPassword(cmd *cobra.Command, in *bufio.Reader, label string) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		_, _ = fmt.Fprint(cmd.ErrOrStderr(), label)
		secret, err := term.ReadPassword(int(f.Fd()))
		_, _ = fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", err
		}
		return string(secret), nil
	}
	return prompt(cmd, in, label)
}

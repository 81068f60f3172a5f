package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/momentum/internal/logging"
	"github.com/alexisbeaulieu97/momentum/internal/storage"
	"github.com/alexisbeaulieu97/momentum/internal/web"
)

type serveOptions struct {
	addr string
}

func newServeCmd(flags *rootFlags) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web client",
		Long:  `Serve the browser client. Each browser session keeps its token and theme in the state database, so sessions survive a restart.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, "command.serve", func(ctx context.Context, app *AppContext, log logging.Logger) error {
				return runServe(ctx, cmd, app, log, opts)
			})
		},
	}

	cmd.Flags().StringVarP(&opts.addr, "addr", "a", "", "Listen address (defaults to server.addr)")

	return cmd
}

func newWebServer(app *AppContext, log logging.Logger) (*web.Server, error) {
	sessions := web.NewSessions(web.SessionOptions{
		CookieName: app.Config.Server.SessionCookie,
		Registry:   app.Themes,
		Routes:     app.Config.Theme.Routes,
		NewStore:   func(id string) storage.Store { return app.DB.Namespace("web:" + id) },
		Log:        log,
	})
	return web.NewServer(web.Options{
		Client:   app.Client,
		Catalog:  app.Catalog,
		Sessions: sessions,
		Log:      log,
	})
}

func runServe(ctx context.Context, cmd *cobra.Command, app *AppContext, log logging.Logger, opts *serveOptions) error {
	addr := opts.addr
	if addr == "" {
		addr = app.Config.Server.Addr
	}

	server, err := newWebServer(app, log)
	if err != nil {
		return newCommandError("serve", "building the web client", err, "This is a bug; please report it.")
	}

	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Momentum web client on http://%s (backend %s)\n", addr, app.Config.API.BaseURL)
	if err := server.ListenAndServe(ctx, addr); err != nil {
		return newCommandError("serve", fmt.Sprintf("listening on %s", addr), err, "Choose a free address with --addr.")
	}
	return nil
}

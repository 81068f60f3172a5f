package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/momentum/internal/api"
	"github.com/alexisbeaulieu97/momentum/internal/auth"
	"github.com/alexisbeaulieu97/momentum/internal/catalog"
	"github.com/alexisbeaulieu97/momentum/internal/config"
	"github.com/alexisbeaulieu97/momentum/internal/logging"
	"github.com/alexisbeaulieu97/momentum/internal/storage"
	"github.com/alexisbeaulieu97/momentum/internal/theme"
)

// cliNamespace scopes the command line's keys in the state database. Web
// sessions use "web:<session id>".
const cliNamespace = "cli"

// AppContext bundles long-lived services created at startup.
type AppContext struct {
	Config  *config.Config
	Log     logging.Logger
	DB      *storage.DB
	Store   storage.Store
	Client  *api.Client
	Catalog *catalog.Catalog
	Themes  *theme.Registry
}

// openApp loads configuration and opens the state database. The caller
// must Close the result.
func openApp(cmd *cobra.Command, flags *rootFlags) (*AppContext, error) {
	overrides := map[string]any{}
	if flags.apiURL != "" {
		overrides[config.KeyAPIBaseURL] = flags.apiURL
	}
	if flags.logLevel != "" {
		overrides[config.KeyLogLevel] = flags.logLevel
	}
	if flags.verbose {
		overrides[config.KeyLogLevel] = "debug"
	}
	if flags.logHuman {
		overrides[config.KeyLogHuman] = true
	}

	cfg, err := config.Load(config.WithFile(flags.configPath), config.WithOverrides(overrides))
	if err != nil {
		return nil, newCommandError("start", "loading configuration", err, "Fix the configuration file or the MOMENTUM_* environment variables.")
	}

	log, err := logging.New(logging.Options{
		Level:         cfg.Log.Level,
		HumanReadable: cfg.Log.Human,
		Writer:        cmd.ErrOrStderr(),
		Component:     "momentum",
	})
	if err != nil {
		return nil, newCommandError("start", "creating logger", err, "Use one of trace, debug, info, warn, error or disabled for log.level.")
	}

	cat := catalog.Builtin()
	if cfg.Shop.Catalog != "" {
		if cat, err = catalog.LoadFile(cfg.Shop.Catalog); err != nil {
			return nil, newCommandError("start", fmt.Sprintf("loading shop catalog %q", cfg.Shop.Catalog), err, "Fix the catalog file or unset shop.catalog.")
		}
	}

	themes, err := theme.Builtin().WithDefault(cfg.Theme.Default)
	if err != nil {
		return nil, newCommandError("start", "selecting default theme", err, "Set theme.default to one of `momentum theme list`.")
	}

	client, err := api.New(cfg.API.BaseURL, api.WithTimeout(cfg.API.Timeout), api.WithLogger(log))
	if err != nil {
		return nil, newCommandError("start", "creating API client", err, "Check api.base_url.")
	}

	db, err := storage.Open(cmd.Context(), cfg.Storage.Path)
	if err != nil {
		return nil, newCommandError("start", fmt.Sprintf("opening state database %q", cfg.Storage.Path), err, "Check that the directory is writable or set storage.path.")
	}

	return &AppContext{
		Config:  cfg,
		Log:     log,
		DB:      db,
		Store:   db.Namespace(cliNamespace),
		Client:  client,
		Catalog: cat,
		Themes:  themes,
	}, nil
}

// Close releases the state database.
func (a *AppContext) Close() error {
	return a.DB.Close()
}

// CommandContext tags the command's context with a correlation id and
// returns a logger scoped to the command.
func (a *AppContext) CommandContext(cmd *cobra.Command, name string) (context.Context, logging.Logger) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithCorrelationID(ctx, logging.GenerateCorrelationID())
	return ctx, a.Log.With("command", name)
}

// AuthedClient returns the API client bound to the stored token.
func (a *AppContext) AuthedClient(ctx context.Context) (*api.Client, error) {
	return auth.NewGuard(a.Store).Client(ctx, a.Client)
}

// ThemeContext restores the CLI's theme selection. The CLI has no
// document, so palette writes land in a detached sheet.
func (a *AppContext) ThemeContext(ctx context.Context) *theme.Context {
	c := theme.NewContext(a.Themes, a.Store, theme.NewSheet(), a.Log)
	c.Load(ctx)
	return c
}

// Printer returns output helpers styled with the selected theme.
func (a *AppContext) Printer(ctx context.Context, w io.Writer) printer {
	return newPrinter(w, a.ThemeContext(ctx).Palette())
}

// withApp opens the app for the duration of fn.
func withApp(cmd *cobra.Command, flags *rootFlags, name string, fn func(ctx context.Context, app *AppContext, log logging.Logger) error) error {
	app, err := openApp(cmd, flags)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	ctx, log := app.CommandContext(cmd, name)
	log.Debug(ctx, "command started")
	err = fn(ctx, app, log)
	if err != nil {
		log.Error(ctx, "command failed", "error", err)
	}
	return err
}

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/alexisbeaulieu97/momentum/internal/api/apitest"
	"github.com/alexisbeaulieu97/momentum/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("database/sql.(*DB).connectionOpener"),
	)
}

type cli struct {
	t      *testing.T
	fake   *apitest.Server
	config string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	fake := apitest.New(t)
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.yaml")
	body := "api:\n  base_url: " + fake.URL() + "\n" +
		"storage:\n  path: " + filepath.Join(dir, "state.db") + "\n" +
		"log:\n  level: disabled\n"
	require.NoError(t, os.WriteFile(cfg, []byte(body), 0o600))
	return &cli{t: t, fake: fake, config: cfg}
}

// run executes the root command with stdin and returns stdout and the error.
func (c *cli) run(stdin string, args ...string) (string, error) {
	c.t.Helper()
	root := newRootCmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config", c.config}, args...))
	err := root.Execute()
	return out.String(), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run("", args...)
	require.NoError(c.t, err)
	return out
}

func (c *cli) login() {
	c.t.Helper()
	c.fake.AddUser("ada@example.com", "secret", "Ada Lovelace")
	out, err := c.run("secret\n", "login", "--email", "ada@example.com")
	require.NoError(c.t, err)
	require.Contains(c.t, out, "Signed in as Ada Lovelace")
}

func seedHabits(fake *apitest.Server) {
	fake.SetHabits(
		model.Habit{ID: "1", Title: "Read", Frequency: "daily", Category: "learning", CoinReward: 10, Streak: 5},
		model.Habit{ID: "2", Title: "Run", Frequency: "weekly", Category: "fitness", CoinReward: 15, CompletedToday: true},
	)
}

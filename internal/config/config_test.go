package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	momentumerrors "github.com/alexisbeaulieu97/momentum/pkg/errors"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
}

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()

	cfg, err := Load(WithHome(home))
	require.NoError(t, err)
	assert.Equal(t, Default(home), *cfg)
	assert.Equal(t, filepath.Join(home, ".momentum", "state.db"), cfg.Storage.Path)
	assert.Equal(t, []string{"/shop", "/inventory", "/dashboard", "/achievements"}, cfg.Theme.Routes)
}

func TestLoadUserFile(t *testing.T) {
	home := t.TempDir()
	writeFile(t, filepath.Join(home, ".momentum", "config.yaml"), `
api:
  base_url: https://api.example.com
  timeout: 3s
storage:
  path: ~/data/momentum.db
theme:
  default: ocean
  routes: [/shop]
`)

	cfg, err := Load(WithHome(home))
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, filepath.Join(home, "data", "momentum.db"), cfg.Storage.Path)
	assert.Equal(t, "ocean", cfg.Theme.Default)
	assert.Equal(t, []string{"/shop"}, cfg.Theme.Routes)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr)
}

func TestLoadPrecedence(t *testing.T) {
	home := t.TempDir()
	path := filepath.Join(home, "custom.yaml")
	writeFile(t, path, "server:\n  addr: 0.0.0.0:9000\nlog:\n  level: debug\n")
	t.Setenv("MOMENTUM_LOG_LEVEL", "WARN")
	t.Setenv("MOMENTUM_API_BASE_URL", "http://env.example.com")

	cfg, err := Load(WithHome(home), WithFile(path), WithOverrides(map[string]any{KeyAPIBaseURL: "http://flag.example.com"}))
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Addr)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "http://flag.example.com", cfg.API.BaseURL)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(WithHome(t.TempDir()), WithFile("/nonexistent/momentum.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidValues(t *testing.T) {
	tests := map[string]struct {
		body  string
		field string
	}{
		"unknown theme": {body: "theme:\n  default: plaid\n", field: "theme.default"},
		"bad route":     {body: "theme:\n  routes: [shop]\n", field: "theme.routes[0]"},
		"bad level":     {body: "log:\n  level: loud\n", field: "log.level"},
		"bad url":       {body: "api:\n  base_url: not a url\n", field: "api.base_url"},
		"zero timeout":  {body: "api:\n  timeout: 0s\n", field: "api.timeout"},
		"empty cookie":  {body: "server:\n  session_cookie: \"\"\n", field: "server.session_cookie"},
		"cookie with ;": {body: "server:\n  session_cookie: a;b\n", field: "server.session_cookie"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			home := t.TempDir()
			path := filepath.Join(home, "c.yaml")
			writeFile(t, path, tt.body)

			_, err := Load(WithHome(home), WithFile(path))
			var ve *momentumerrors.ValidationError
			require.True(t, errors.As(err, &ve), "got %v", err)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	home := t.TempDir()
	path := filepath.Join(home, "c.yaml")
	writeFile(t, path, "api: [\n")

	_, err := Load(WithHome(home), WithFile(path))
	assert.ErrorContains(t, err, "parse")
}

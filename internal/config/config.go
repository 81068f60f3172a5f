// Package config loads Momentum settings with the precedence
// defaults < config file < MOMENTUM_* environment < explicit overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/alexisbeaulieu97/momentum/internal/theme"
	"github.com/alexisbeaulieu97/momentum/internal/validation"
)

// Configuration keys.
const (
	KeyAPIBaseURL    = "api.base_url"
	KeyAPITimeout    = "api.timeout"
	KeyServerAddr    = "server.addr"
	KeySessionCookie = "server.session_cookie"
	KeyStoragePath   = "storage.path"
	KeyLogLevel      = "log.level"
	KeyLogHuman      = "log.human"
	KeyThemeDefault  = "theme.default"
	KeyThemeRoutes   = "theme.routes"
	KeyShopCatalog   = "shop.catalog"

	envPrefix = "MOMENTUM"
)

// Config is the decoded, validated configuration.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`
	Theme   ThemeConfig   `mapstructure:"theme"`
	Shop    ShopConfig    `mapstructure:"shop"`
}

// APIConfig locates the habit backend.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url" validate:"required,url"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

// ServerConfig configures `momentum serve`.
type ServerConfig struct {
	Addr          string `mapstructure:"addr" validate:"required"`
	SessionCookie string `mapstructure:"session_cookie" validate:"required,printascii,excludesall=;= "`
}

// StorageConfig locates the client state database.
type StorageConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// LogConfig selects the log level and output format.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=trace debug info warn error disabled"`
	Human bool   `mapstructure:"human"`
}

// ThemeConfig sets the default theme and the themed path prefixes.
type ThemeConfig struct {
	Default string   `mapstructure:"default" validate:"required,theme_id"`
	Routes  []string `mapstructure:"routes" validate:"min=1,dive,route"`
}

// ShopConfig points at an optional catalog file replacing the built-in one.
type ShopConfig struct {
	Catalog string `mapstructure:"catalog"`
}

type loadSettings struct {
	file      string
	explicit  bool
	home      string
	overrides map[string]any
}

// Option configures Load.
type Option func(*loadSettings)

// WithFile reads path instead of the default ~/.momentum/config.yaml. A
// missing explicit file is an error.
func WithFile(path string) Option {
	return func(s *loadSettings) {
		if strings.TrimSpace(path) != "" {
			s.file = path
			s.explicit = true
		}
	}
}

// WithHome overrides the home directory used for default paths.
func WithHome(dir string) Option {
	return func(s *loadSettings) {
		s.home = dir
	}
}

// WithOverrides applies values that win over every other layer, typically
// from CLI flags.
func WithOverrides(overrides map[string]any) Option {
	return func(s *loadSettings) {
		if s.overrides == nil {
			s.overrides = make(map[string]any)
		}
		for k, v := range overrides {
			s.overrides[k] = v
		}
	}
}

// Load builds the configuration.
func Load(opts ...Option) (*Config, error) {
	settings := loadSettings{}
	for _, opt := range opts {
		opt(&settings)
	}

	home := settings.home
	if home == "" {
		h, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("determine user home: %w", err)
		}
		home = h
	}
	if settings.file == "" {
		settings.file = filepath.Join(home, ".momentum", "config.yaml")
	}

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v, home)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := mergeConfigFile(v, settings.file, settings.explicit); err != nil {
		return nil, err
	}
	for k, val := range settings.overrides {
		v.Set(k, val)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Storage.Path = expandHome(cfg.Storage.Path, home)
	cfg.Shop.Catalog = expandHome(cfg.Shop.Catalog, home)
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)

	if err := validation.Config(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration with no file, environment or overrides
// applied.
func Default(home string) Config {
	return Config{
		API:     APIConfig{BaseURL: "http://127.0.0.1:5000", Timeout: 10 * time.Second},
		Server:  ServerConfig{Addr: "127.0.0.1:8080", SessionCookie: "momentum_session"},
		Storage: StorageConfig{Path: filepath.Join(home, ".momentum", "state.db")},
		Log:     LogConfig{Level: "info"},
		Theme:   ThemeConfig{Default: theme.DefaultID, Routes: append([]string(nil), theme.DefaultRoutes...)},
	}
}

func setDefaults(v *viper.Viper, home string) {
	def := Default(home)
	v.SetDefault(KeyAPIBaseURL, def.API.BaseURL)
	v.SetDefault(KeyAPITimeout, def.API.Timeout)
	v.SetDefault(KeyServerAddr, def.Server.Addr)
	v.SetDefault(KeySessionCookie, def.Server.SessionCookie)
	v.SetDefault(KeyStoragePath, def.Storage.Path)
	v.SetDefault(KeyLogLevel, def.Log.Level)
	v.SetDefault(KeyLogHuman, def.Log.Human)
	v.SetDefault(KeyThemeDefault, def.Theme.Default)
	v.SetDefault(KeyThemeRoutes, def.Theme.Routes)
	v.SetDefault(KeyShopCatalog, "")
}

func mergeConfigFile(v *viper.Viper, path string, required bool) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		if required {
			return fmt.Errorf("config file %s: %w", path, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("config path %s is a directory", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := v.MergeConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func expandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

// Package config loads stackview configuration from TOML or YAML files.
//
// Every field has a default (see [Default]); a file only needs the values it
// changes. The format is chosen by file extension: .toml, .yaml or .yml.
// Environment variables named after the field path override both, e.g.
// STACKVIEW_LAYOUT_WIDTH_POLICY or STACKVIEW_CACHE_REDIS_ADDR.
//
//	# stackview.toml
//	[animation]
//	duration = "300ms"
//
//	[layout]
//	width_policy = "equal"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/stackview/pkg/errors"
	"github.com/matzehuels/stackview/pkg/hierarchy"
	"github.com/matzehuels/stackview/pkg/layout"
)

// Cache backends.
const (
	CacheNone  = "none"
	CacheFile  = "file"
	CacheRedis = "redis"
)

// Config is the complete stackview configuration.
type Config struct {
	Animation AnimationConfig `toml:"animation" yaml:"animation"`
	Layout    LayoutConfig    `toml:"layout" yaml:"layout"`
	Browse    BrowseConfig    `toml:"browse" yaml:"browse"`
	Server    ServerConfig    `toml:"server" yaml:"server"`
	Cache     CacheConfig     `toml:"cache" yaml:"cache"`
}

// AnimationConfig controls the hierarchy controller timers.
type AnimationConfig struct {
	Duration       Duration `toml:"duration" yaml:"duration"`
	ResizeDebounce Duration `toml:"resize_debounce" yaml:"resize_debounce" split_words:"true"`
}

// LayoutConfig selects the layout strategies, in pixels.
type LayoutConfig struct {
	WidthPolicy   string  `toml:"width_policy" yaml:"width_policy" split_words:"true"`
	MinPanelWidth float64 `toml:"min_panel_width" yaml:"min_panel_width" split_words:"true"`
}

// BrowseConfig tunes the terminal browser, in columns.
type BrowseConfig struct {
	MinPanelWidth float64  `toml:"min_panel_width" yaml:"min_panel_width" split_words:"true"`
	Duration      Duration `toml:"duration" yaml:"duration"`
	FrameRate     int      `toml:"frame_rate" yaml:"frame_rate" split_words:"true"`
	ShowHidden    bool     `toml:"show_hidden" yaml:"show_hidden" split_words:"true"`
}

// ServerConfig configures the layout API.
type ServerConfig struct {
	Addr            string   `toml:"addr" yaml:"addr"`
	ReadTimeout     Duration `toml:"read_timeout" yaml:"read_timeout" split_words:"true"`
	ShutdownTimeout Duration `toml:"shutdown_timeout" yaml:"shutdown_timeout" split_words:"true"`
}

// CacheConfig selects where API responses are cached.
type CacheConfig struct {
	Backend   string   `toml:"backend" yaml:"backend"`
	Dir       string   `toml:"dir" yaml:"dir"`
	RedisAddr string   `toml:"redis_addr" yaml:"redis_addr" split_words:"true"`
	RedisDB   int      `toml:"redis_db" yaml:"redis_db" split_words:"true"`
	TTL       Duration `toml:"ttl" yaml:"ttl"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Animation: AnimationConfig{
			Duration:       Duration(hierarchy.DefaultAnimationDuration),
			ResizeDebounce: Duration(hierarchy.DefaultResizeDebounce),
		},
		Layout: LayoutConfig{
			WidthPolicy:   "default",
			MinPanelWidth: layout.DefaultMinPanelWidth,
		},
		Browse: BrowseConfig{
			MinPanelWidth: 24,
			Duration:      Duration(400 * time.Millisecond),
			FrameRate:     30,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     Duration(10 * time.Second),
			ShutdownTimeout: Duration(5 * time.Second),
		},
		Cache: CacheConfig{
			Backend: CacheNone,
			TTL:     Duration(time.Hour),
		},
	}
}

// EnvPrefix prefixes the environment variables that override file values.
const EnvPrefix = "STACKVIEW"

// Load reads path on top of the defaults, applies environment overrides and
// validates the result. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			return cfg, err
		}
	}
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "environment")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeNotFound, err, "config file %s", path)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		return errors.New(errors.ErrCodeUnsupported, "unsupported config format %q (use .toml, .yaml or .yml)", ext)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	return nil
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs error
	if c.Animation.Duration < 0 {
		errs = multierr.Append(errs, fmt.Errorf("animation.duration cannot be negative"))
	}
	if c.Animation.ResizeDebounce < 0 {
		errs = multierr.Append(errs, fmt.Errorf("animation.resize_debounce cannot be negative"))
	}
	if _, ok := layout.WidthPolicies[c.Layout.WidthPolicy]; !ok {
		errs = multierr.Append(errs, fmt.Errorf("layout.width_policy %q is not one of: default, equal", c.Layout.WidthPolicy))
	}
	if c.Layout.MinPanelWidth <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("layout.min_panel_width must be positive"))
	}
	if c.Browse.MinPanelWidth <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("browse.min_panel_width must be positive"))
	}
	if c.Browse.FrameRate <= 0 || c.Browse.FrameRate > 120 {
		errs = multierr.Append(errs, fmt.Errorf("browse.frame_rate must be between 1 and 120"))
	}
	if c.Server.Addr == "" {
		errs = multierr.Append(errs, fmt.Errorf("server.addr cannot be empty"))
	}
	switch c.Cache.Backend {
	case CacheNone, CacheFile:
	case CacheRedis:
		if c.Cache.RedisAddr == "" {
			errs = multierr.Append(errs, fmt.Errorf("cache.redis_addr is required for the redis backend"))
		}
	default:
		errs = multierr.Append(errs, fmt.Errorf("cache.backend %q is not one of: none, file, redis", c.Cache.Backend))
	}

	if errs != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, errs, "invalid configuration")
	}
	return nil
}

// Problems returns the individual validation failures inside err.
func Problems(err error) []error {
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Cause == nil {
		return nil
	}
	return multierr.Errors(e.Cause)
}

// WidthFunc returns the configured width strategy.
func (c Config) WidthFunc() layout.WidthFunc {
	if fn, ok := layout.WidthPolicies[c.Layout.WidthPolicy]; ok {
		return fn
	}
	return layout.DefaultWidth
}

// HierarchyOptions returns controller options for pixel-based hosts.
func (c Config) HierarchyOptions() hierarchy.Options {
	return hierarchy.Options{
		AnimationDuration: c.Animation.Duration.Std(),
		ResizeDebounce:    c.Animation.ResizeDebounce.Std(),
		WidthFunc:         c.WidthFunc(),
		MinWidthFunc:      layout.MinWidthAtLeast(c.Layout.MinPanelWidth),
	}
}

// LayoutParams returns layout parameters for pixel-based hosts.
func (c Config) LayoutParams() layout.Params {
	return layout.Params{
		WidthFunc:    c.WidthFunc(),
		MinWidthFunc: layout.MinWidthAtLeast(c.Layout.MinPanelWidth),
	}
}

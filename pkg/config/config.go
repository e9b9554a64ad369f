// Package config loads optional user defaults from a TOML or YAML file.
//
// The file lives at $XDG_CONFIG_HOME/valvepath/valvepath.toml (or .yaml /
// .yml) unless a path is given explicitly. Every field is optional; command
// line flags override whatever the file sets.
//
//	entry = "AA"
//	budget = 30
//	workers = 8
//
//	[cache]
//	redis = "redis://localhost:6379/0"
//
//	[server]
//	addr = ":8080"
//	read_timeout = "10s"
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	pkgerrors "github.com/matzehuels/valvepath/pkg/errors"
	"github.com/matzehuels/valvepath/pkg/pipeline"
)

// Name is the base name searched for in the config directory.
const Name = "valvepath"

// Extensions tried by [Find], in order.
var Extensions = []string{".toml", ".yaml", ".yml"}

var validate = validator.New()

// Config is the decoded configuration file.
type Config struct {
	Entry   string `toml:"entry" yaml:"entry" validate:"omitempty,max=64"`
	Budget  int    `toml:"budget" yaml:"budget" validate:"gte=0,lte=10000"`
	Workers int    `toml:"workers" yaml:"workers" validate:"gte=0,lte=1024"`
	Top     int    `toml:"top" yaml:"top" validate:"gte=0,lte=1000"`

	Cache  CacheConfig  `toml:"cache" yaml:"cache"`
	Server ServerConfig `toml:"server" yaml:"server"`
	Log    LogConfig    `toml:"log" yaml:"log"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Disabled bool   `toml:"disabled" yaml:"disabled"`
	Dir      string `toml:"dir" yaml:"dir"`
	Redis    string `toml:"redis" yaml:"redis"`
}

// ServerConfig configures `valvepath serve`.
type ServerConfig struct {
	Addr         string        `toml:"addr" yaml:"addr"`
	ReadTimeout  time.Duration `toml:"read_timeout" yaml:"read_timeout" validate:"gte=0"`
	WriteTimeout time.Duration `toml:"write_timeout" yaml:"write_timeout" validate:"gte=0"`
	MaxBodyBytes int64         `toml:"max_body_bytes" yaml:"max_body_bytes" validate:"gte=0"`
}

// LogConfig configures the CLI logger.
type LogConfig struct {
	Level string `toml:"level" yaml:"level" validate:"omitempty,oneof=debug info warn error"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Entry:  pipeline.DefaultEntry,
		Budget: pipeline.DefaultBudget,
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			MaxBodyBytes: 1 << 20,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Dir returns the directory searched by [Find].
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, Name), nil
}

// Find returns the first existing config file in [Dir], or "" if none.
func Find() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	for _, ext := range Extensions {
		path := filepath.Join(dir, Name+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
	}
	return "", nil
}

// Load reads path over [Default]. The format is chosen by extension.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, pkgerrors.Wrap(pkgerrors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := Decode(data, filepath.Ext(path), &cfg); err != nil {
		return cfg, pkgerrors.Wrap(pkgerrors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Resolve loads explicit if set, otherwise the file found by [Find], and
// falls back to [Default] when there is none. It returns the path used.
func Resolve(explicit string) (Config, string, error) {
	path := explicit
	if path == "" {
		found, err := Find()
		if err != nil {
			return Default(), "", err
		}
		if found == "" {
			return Default(), "", nil
		}
		path = found
	}
	cfg, err := Load(path)
	return cfg, path, err
}

// Decode unmarshals data in the format named by ext into cfg.
func Decode(data []byte, ext string, cfg *Config) error {
	switch strings.ToLower(ext) {
	case ".toml":
		_, err := toml.Decode(string(data), cfg)
		return err
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("unsupported config format %q", ext)
	}
}

// Validate checks ranges and the redis URL.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			e := verrs[0]
			return pkgerrors.New(pkgerrors.ErrCodeInvalidConfig, "%s: invalid value %v (%s)", e.Namespace(), e.Value(), e.Tag())
		}
		return pkgerrors.Wrap(pkgerrors.ErrCodeInvalidConfig, err, "invalid config")
	}
	if c.Entry != "" {
		if err := pkgerrors.ValidateValveID(c.Entry); err != nil {
			return pkgerrors.Wrap(pkgerrors.ErrCodeInvalidConfig, err, "entry")
		}
	}
	if c.Cache.Redis != "" {
		if err := pkgerrors.ValidateRedisURL(c.Cache.Redis); err != nil {
			return err
		}
	}
	return nil
}

// Options returns pipeline options seeded from the file.
func (c *Config) Options() pipeline.Options {
	return pipeline.Options{
		Entry:   c.Entry,
		Budget:  c.Budget,
		Workers: c.Workers,
		Top:     c.Top,
	}
}

// Package config wraps viper into a small named-tree config reader,
// following the shape cmd/neofs-node/config uses across the teacher's
// whole configuration surface.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	separator    = "."
	envPrefix    = "osd"
	envSeparator = "_"
)

// Config represents a group of named values structured by tree type.
//
// Sub-trees are named configuration sub-sections, leaves are named
// configuration values. Names are of string type.
type Config struct {
	v *viper.Viper

	path []string
}

// Prm groups required parameters of the Config.
type Prm struct{}

// Option sets an optional parameter of Config.
type Option func(*cfg)

type cfg struct {
	path string
}

func defaultCfg() *cfg {
	return new(cfg)
}

// WithConfigFile returns an option to read config from the given file.
// If path is empty, the resulting Config is a degenerate tree fed only
// by environment variables.
func WithConfigFile(path string) Option {
	return func(c *cfg) {
		c.path = path
	}
}

// New creates a new Config instance.
//
// If file option is provided (WithConfigFile), configuration values
// are read from it. Environment variables of the form OSD_A_B override
// key "a.b" regardless of file content.
func New(_ Prm, opts ...Option) (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(separator, envSeparator))

	o := defaultCfg()
	for _, opt := range opts {
		opt(o)
	}

	if o.path != "" {
		v.SetConfigFile(o.path)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %q: %w", o.path, err)
		}
	}

	return &Config{v: v}, nil
}

// Sub returns the subsection of the Config by name.
func (x *Config) Sub(name string) *Config {
	return &Config{
		v:    x.v,
		path: append(append([]string{}, x.path...), name),
	}
}

// Value returns the configuration value by name.
//
// Result can be cast to a particular type via a corresponding
// function (e.g. String, BoolSafe). Casting via a bare Go type assertion
// is not recommended.
func (x *Config) Value(name string) interface{} {
	return x.v.Get(strings.Join(append(append([]string{}, x.path...), name), separator))
}

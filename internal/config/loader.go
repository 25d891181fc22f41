package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Loader reads configuration from defaults, an optional YAML file, the
// environment and any flags bound to its viper instance, in rising priority.
type Loader struct {
	v        *viper.Viper
	path     string
	explicit bool
}

// NewLoader creates a loader. An empty path falls back to DefaultConfigFile,
// which may be absent. An explicit path must exist.
func NewLoader(v *viper.Viper, path string) (*Loader, error) {
	if v == nil {
		v = viper.New()
	}

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}
	expanded, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}

	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigFile(expanded)
	v.SetConfigType("yaml")

	return &Loader{v: v, path: expanded, explicit: explicit}, nil
}

// Viper exposes the underlying instance so commands can bind flags to keys
func (l *Loader) Viper() *viper.Viper {
	return l.v
}

// Path returns the config file path if it exists, or "" when running without one
func (l *Loader) Path() string {
	if _, err := os.Stat(l.path); err != nil {
		return ""
	}
	return l.path
}

// Load reads, expands and validates the configuration
func (l *Loader) Load() (Config, error) {
	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
		if !missing || l.explicit {
			return Config{}, fmt.Errorf("read config %s: %w", l.path, err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.ExpandPaths(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("ui.refresh_per_second", d.UI.RefreshPerSecond)
	v.SetDefault("ui.layout", d.UI.Layout)
	v.SetDefault("ui.newest_first", d.UI.NewestFirst)
	v.SetDefault("display.split_decimals", d.Display.SplitDecimals)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.file", d.Output.File)
	v.SetDefault("server.listen", d.Server.Listen)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.format", d.Log.Format)
}

package config

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
)

const (
	EnvPrefix         = "LAPTIMER"
	DefaultConfigFile = "~/.go-lap-timer/config.yaml"
	DefaultLogFile    = "~/.go-lap-timer/logs/app.log"

	MinRefreshPerSecond = 0.1
	MaxRefreshPerSecond = 30
	MaxSplitDecimals    = 3
)

// Config is the full application configuration
type Config struct {
	UI      UIConfig      `mapstructure:"ui"`
	Display DisplayConfig `mapstructure:"display"`
	Output  OutputConfig  `mapstructure:"output"`
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
}

type UIConfig struct {
	RefreshPerSecond float64 `mapstructure:"refresh_per_second"`
	Layout           string  `mapstructure:"layout"`
	NewestFirst      bool    `mapstructure:"newest_first"`
}

type DisplayConfig struct {
	SplitDecimals int `mapstructure:"split_decimals"`
}

// OutputConfig controls the report written when an interactive session ends
type OutputConfig struct {
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

type ServerConfig struct {
	Listen          string        `mapstructure:"listen"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	File   string `mapstructure:"file"`
	Format string `mapstructure:"format"`
}

// Defaults returns the configuration used when nothing is set
func Defaults() Config {
	return Config{
		UI: UIConfig{
			RefreshPerSecond: 10,
			Layout:           "full",
		},
		Display: DisplayConfig{SplitDecimals: 2},
		Server: ServerConfig{
			Listen:          "127.0.0.1:8080",
			ShutdownTimeout: 5 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			File:   DefaultLogFile,
			Format: "text",
		},
	}
}

var (
	validLayouts       = []string{"full", "compact"}
	validOutputFormats = []string{"table", "json", "csv", "summary", "xlsx"}
	validLogLevels     = []string{"debug", "info", "warn", "warning", "error"}
	validLogFormats    = []string{"text", "json"}
)

// Validate checks value ranges and normalizes enum casing
func (c *Config) Validate() error {
	if c.UI.RefreshPerSecond < MinRefreshPerSecond || c.UI.RefreshPerSecond > MaxRefreshPerSecond {
		return fmt.Errorf("ui.refresh_per_second must be between %.1f and %.0f, got %v",
			MinRefreshPerSecond, float64(MaxRefreshPerSecond), c.UI.RefreshPerSecond)
	}

	c.UI.Layout = strings.ToLower(c.UI.Layout)
	if !contains(validLayouts, c.UI.Layout) {
		return fmt.Errorf("ui.layout must be one of %s, got '%s'", strings.Join(validLayouts, ", "), c.UI.Layout)
	}

	if c.Display.SplitDecimals < 0 || c.Display.SplitDecimals > MaxSplitDecimals {
		return fmt.Errorf("display.split_decimals must be between 0 and %d, got %d", MaxSplitDecimals, c.Display.SplitDecimals)
	}

	c.Output.Format = strings.ToLower(c.Output.Format)
	if c.Output.Format != "" && !contains(validOutputFormats, c.Output.Format) {
		return fmt.Errorf("output.format must be one of %s, got '%s'", strings.Join(validOutputFormats, ", "), c.Output.Format)
	}

	if _, _, err := net.SplitHostPort(c.Server.Listen); err != nil {
		return fmt.Errorf("server.listen '%s' is not a host:port address: %w", c.Server.Listen, err)
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = 5 * time.Second
	}

	c.Log.Level = strings.ToLower(c.Log.Level)
	if !contains(validLogLevels, c.Log.Level) {
		return fmt.Errorf("log.level must be one of %s, got '%s'", strings.Join(validLogLevels, ", "), c.Log.Level)
	}
	c.Log.Format = strings.ToLower(c.Log.Format)
	if !contains(validLogFormats, c.Log.Format) {
		return fmt.Errorf("log.format must be one of %s, got '%s'", strings.Join(validLogFormats, ", "), c.Log.Format)
	}

	return nil
}

// ExpandPaths resolves ~ in file paths
func (c *Config) ExpandPaths() error {
	var err error
	if c.Output.File, err = ExpandPath(c.Output.File); err != nil {
		return err
	}
	if c.Log.File, err = ExpandPath(c.Log.File); err != nil {
		return err
	}
	return nil
}

// ExpandPath resolves a leading ~ to the user's home directory
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("expand path %s: %w", path, err)
	}
	return expanded, nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

package timer

import (
	"fmt"
	"time"

	"github.com/penwyp/go-lap-timer/internal/config"
)

// TimerConfig contains configuration for the interactive timer
type TimerConfig struct {
	// Display settings
	RefreshPerSecond float64
	Layout           string
	NewestFirst      bool
	SplitDecimals    int

	// Report written on exit; empty format disables it
	OutputFormat string
	OutputFile   string
}

// NewTimerConfig extracts the timer settings from the application config
func NewTimerConfig(cfg config.Config) *TimerConfig {
	return &TimerConfig{
		RefreshPerSecond: cfg.UI.RefreshPerSecond,
		Layout:           cfg.UI.Layout,
		NewestFirst:      cfg.UI.NewestFirst,
		SplitDecimals:    cfg.Display.SplitDecimals,
		OutputFormat:     cfg.Output.Format,
		OutputFile:       cfg.Output.File,
	}
}

// Validate fills defaults and checks ranges
func (c *TimerConfig) Validate() error {
	if c.RefreshPerSecond == 0 {
		c.RefreshPerSecond = 10
	}
	if c.RefreshPerSecond < config.MinRefreshPerSecond || c.RefreshPerSecond > config.MaxRefreshPerSecond {
		return fmt.Errorf("refresh rate must be between %.1f and %.0f Hz, got %v",
			config.MinRefreshPerSecond, float64(config.MaxRefreshPerSecond), c.RefreshPerSecond)
	}
	if c.Layout == "" {
		c.Layout = "full"
	}
	if c.SplitDecimals < 0 || c.SplitDecimals > config.MaxSplitDecimals {
		return fmt.Errorf("split decimals must be between 0 and %d, got %d", config.MaxSplitDecimals, c.SplitDecimals)
	}
	if c.OutputFormat == "xlsx" && c.OutputFile == "" {
		return fmt.Errorf("xlsx reports need an output file")
	}
	return nil
}

// RefreshInterval is the time between two UI frames
func (c *TimerConfig) RefreshInterval() time.Duration {
	return time.Duration(float64(time.Second) / c.RefreshPerSecond)
}

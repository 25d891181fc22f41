package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/penwyp/go-lap-timer/internal/application/timer"
	"github.com/penwyp/go-lap-timer/internal/application/tracker"
	"github.com/penwyp/go-lap-timer/internal/config"
	"github.com/penwyp/go-lap-timer/internal/presentation/display"
	"github.com/penwyp/go-lap-timer/internal/presentation/interaction"
	"github.com/penwyp/go-lap-timer/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Logging related
	debug bool

	// Config file
	configFile string

	// Display related
	refreshPerSecond float64
	layoutStyle      string
	newestFirst      bool
	splitDecimals    int

	// Exit report
	outputFormat string
	outputFile   string

	rootCmd = &cobra.Command{
		Use:   "go-lap-timer [flags]",
		Short: "Interactive stopwatch with lap recording",
		Long: `go-lap-timer is a terminal stopwatch that records laps.

Laps can be skipped (kept but left out of the average) or split into two
equal halves after the fact. Settings are read from ~/.go-lap-timer/config.yaml
and LAPTIMER_* environment variables; flags take precedence.

Examples:
  go-lap-timer                                  # Start the interactive timer
  go-lap-timer --layout compact                 # Use the compact layout
  go-lap-timer -o csv --output-file laps.csv    # Write a CSV report on exit
  go-lap-timer -o summary                       # Print a summary on exit
  go-lap-timer serve --listen :8080             # Serve the timer in a browser`,
		SilenceUsage: true,
		RunE:         runTimer,
	}
)

// flagKeys maps flag names to config keys
var flagKeys = map[string]string{
	"refresh-per-second": "ui.refresh_per_second",
	"layout":             "ui.layout",
	"newest-first":       "ui.newest_first",
	"split-decimals":     "display.split_decimals",
	"output":             "output.format",
	"output-file":        "output.file",
	"listen":             "server.listen",
}

func init() {
	defaults := config.Defaults()

	// System and debugging
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"Config file (default "+config.DefaultConfigFile+")")

	// Display configuration
	rootCmd.PersistentFlags().IntVar(&splitDecimals, "split-decimals", defaults.Display.SplitDecimals,
		"Decimals shown for split times (0-3)")
	rootCmd.PersistentFlags().BoolVar(&newestFirst, "newest-first", defaults.UI.NewestFirst,
		"List the most recent lap first")
	rootCmd.Flags().Float64Var(&refreshPerSecond, "refresh-per-second", defaults.UI.RefreshPerSecond,
		"Display refresh rate (0.1-30 Hz)")
	rootCmd.Flags().StringVar(&layoutStyle, "layout", defaults.UI.Layout,
		"Layout style (full, compact)")

	// Output configuration
	rootCmd.Flags().StringVarP(&outputFormat, "output", "o", "",
		"Report format written on exit (table, json, csv, summary, xlsx)")
	rootCmd.Flags().StringVar(&outputFile, "output-file", "",
		"Write the exit report to this file instead of stdout")
}

func Execute() error {
	return rootCmd.Execute()
}

func runTimer(cmd *cobra.Command, args []string) error {
	loader, cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	// the terminal UI owns the console
	if err := initLogging(cfg, debug); err != nil {
		return err
	}
	defer util.CloseLogger()
	if path := loader.Path(); path != "" {
		util.LogInfof("Using config file %s", path)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	holder := config.NewHolder(cfg, loader)
	updates := holder.Subscribe()
	if err := holder.Watch(ctx); err != nil {
		util.LogWarn("Config hot reload disabled", util.F("error", err.Error()))
	}

	orchestrator, err := timer.NewOrchestrator(timer.NewTimerConfig(cfg), tracker.New(nil), display.NewTerminalDisplay())
	if err != nil {
		return err
	}
	orchestrator.SetConfigUpdates(updates)

	keyboard, err := interaction.NewKeyboardReader()
	if err != nil {
		return fmt.Errorf("failed to open keyboard: %w", err)
	}

	return orchestrator.Run(ctx, keyboard)
}

// loadConfig resolves the configuration for cmd with its flags bound on top
func loadConfig(cmd *cobra.Command) (*config.Loader, config.Config, error) {
	loader, err := config.NewLoader(viper.New(), configFile)
	if err != nil {
		return nil, config.Config{}, err
	}
	if err := bindFlags(loader.Viper(), cmd); err != nil {
		return nil, config.Config{}, err
	}

	cfg, err := loader.Load()
	if err != nil {
		return nil, config.Config{}, err
	}
	return loader, cfg, nil
}

// bindFlags binds every known flag the command carries to its config key
func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for name, key := range flagKeys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag --%s: %w", name, err)
		}
	}
	return nil
}

func initLogging(cfg config.Config, console bool) error {
	level := cfg.Log.Level
	if debug {
		level = "debug"
	}

	logFile := cfg.Log.File
	if logFile != "" {
		if err := ensureDir(filepath.Dir(logFile)); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	return util.InitLogger(util.LoggerOptions{
		Level:   level,
		File:    logFile,
		Format:  util.LogFormat(cfg.Log.Format),
		Console: console || logFile == "",
	})
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

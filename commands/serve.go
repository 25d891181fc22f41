package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/penwyp/go-lap-timer/internal/application/tracker"
	"github.com/penwyp/go-lap-timer/internal/application/web"
	"github.com/penwyp/go-lap-timer/internal/config"
	"github.com/penwyp/go-lap-timer/internal/util"
	"github.com/spf13/cobra"
)

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the lap timer in a browser",
	Long: `Runs the lap timer behind an HTTP server. The page at / drives the
stopwatch with buttons; the same actions are available as a JSON API under
/api. Prometheus metrics are exposed at /metrics.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveListen, "listen", config.Defaults().Server.Listen,
		"Address to listen on (host:port)")
}

func runServe(cmd *cobra.Command, args []string) error {
	loader, cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := initLogging(cfg, true); err != nil {
		return err
	}
	defer util.CloseLogger()
	if path := loader.Path(); path != "" {
		util.LogInfof("Using config file %s", path)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server, err := web.NewServer(web.Config{
		Listen:          cfg.Server.Listen,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		SplitDecimals:   cfg.Display.SplitDecimals,
		NewestFirst:     cfg.UI.NewestFirst,
	}, tracker.New(nil))
	if err != nil {
		return err
	}

	holder := config.NewHolder(cfg, loader)
	updates := holder.Subscribe()
	if err := holder.Watch(ctx); err != nil {
		util.LogWarn("Config hot reload disabled", util.F("error", err.Error()))
	}
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case next := <-updates:
				server.SetSplitDecimals(next.Display.SplitDecimals)
			}
		}
	}()

	return server.Run(ctx)
}

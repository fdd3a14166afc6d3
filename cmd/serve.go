package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/slaacns/slaacns/config"
	"github.com/slaacns/slaacns/evt"
	"github.com/slaacns/slaacns/log"
	"github.com/slaacns/slaacns/querylog"
	"github.com/slaacns/slaacns/registry"
	"github.com/slaacns/slaacns/server"
)

//nolint:gochecknoglobals
var (
	version   = "undefined"
	buildTime = "undefined"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Args:  cobra.NoArgs,
		Short: "start the DNS server (default command)",
		Run:   startServer,
	}
}

func startServer(_ *cobra.Command, _ []string) {
	cfg, reg := loadOrFatal()

	cfg.Listen = append(cfg.Listen, listenAddrs...)
	if queryLogging {
		cfg.QueryLog = true
	}

	srv, err := server.New(cfg, reg, int(port))
	log.FatalOnError("can't start server", err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.QueryLog {
		querylog.Start()
	}

	srv.Start(ctx, "")

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	evt.Bus().Publish(evt.ApplicationStarted, version, buildTime)

	<-signals

	log.Log().Info("shutting down")
	cancel()
	srv.Stop()
}

// loadOrFatal loads and fully compiles the configuration, exiting the
// process on any error (spec §7: ConfigInvalid refuses to start).
func loadOrFatal() (*config.Config, *registry.Registry) {
	cfg, err := config.Load(configPath)
	log.FatalOnError("invalid configuration", err)

	reg, err := registry.Build(cfg.Networks)
	log.FatalOnError("invalid configuration", err)

	return cfg, reg
}

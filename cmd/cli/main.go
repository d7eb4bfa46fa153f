package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/mechanicassist/internal/buildinfo"
	"github.com/dmitrijs2005/mechanicassist/internal/client/cli"
	"github.com/dmitrijs2005/mechanicassist/internal/client/config"
	"github.com/dmitrijs2005/mechanicassist/internal/logging"
	"github.com/dmitrijs2005/mechanicassist/internal/observability"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(logging.Options{Format: cfg.LogFormat, Level: cfg.LogLevel})
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	if s, ok := logger.(interface{ Sync() error }); ok {
		defer func() { _ = s.Sync() }()
	}

	if err := observability.InitSentry(cfg.SentryDSN, cfg.Environment, buildinfo.Version()); err != nil {
		logger.Warn(context.Background(), "sentry disabled", "error", err)
	}
	defer observability.FlushSentry()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "start", "error", err)
		return
	}
	defer app.Close()

	app.Run(ctx)

}

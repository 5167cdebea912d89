package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tkb-shop/storefront/config"
	"github.com/tkb-shop/storefront/internal/app"
	"github.com/tkb-shop/storefront/internal/shopfront"
	"github.com/tkb-shop/storefront/internal/webserver"
	"go.uber.org/zap"
)

var (
	confFile = flag.String("c", "storefront.yml", "config file")
	showVer  = flag.Bool("v", false, "print version and exit")
)

var version = "dev"

func main() {
	flag.Parse()
	if *showVer {
		fmt.Println(version)
		return
	}

	cfg := config.LoadConfig(*confFile)
	application := app.NewApplication(cfg)
	if err := application.Init(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "init failed: %v\n", err)
		os.Exit(1)
	}
	defer application.Release()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application.StartBackgroundJobs(ctx)

	webserver.Init(application)
	shopfront.Register(application)

	errCh := make(chan error, 1)
	go func() {
		errCh <- webserver.Listen()
	}()

	select {
	case err := <-errCh:
		zap.S().Errorf("web server stopped: %v", err)
	case <-ctx.Done():
		zap.S().Info("shutting down")
	}
}

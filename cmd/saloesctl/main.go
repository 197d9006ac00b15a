package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/BruksfildServices01/saloes-online/internal/cli"
	"github.com/BruksfildServices01/saloes-online/internal/config"
	"github.com/BruksfildServices01/saloes-online/internal/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Must(cfg.LogLevel)
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := cli.New(cfg, log).NewRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		stop()
		os.Exit(1)
	}
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/0FL01/docker-pg-dump-auto/internal/app"
	"github.com/0FL01/docker-pg-dump-auto/internal/config"
)

func main() {
	code, err := run()
	if err != nil {
		log.Fatalf("Error: %v\n", err)
	}
	os.Exit(code)
}

func run() (int, error) {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return 1, fmt.Errorf("load config: %w", err)
	}

	application, err := app.New(cfg)
	if err != nil {
		return 1, fmt.Errorf("initialize app: %w", err)
	}
	defer application.Shutdown()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return application.Run(ctx)
}

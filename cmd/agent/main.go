package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/levinOo/fleet-stats-collector/internal/agent"
	"github.com/levinOo/fleet-stats-collector/internal/agent/config"
	"github.com/levinOo/fleet-stats-collector/internal/logger"
)

var (
	buildVersion string = "N/A"
	buildDate    string = "N/A"
	buildCommit  string = "N/A"
)

func main() {
	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)

	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.GetAgentConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	sugar := logger.NewLogger(cfg.LogLevel)
	defer sugar.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	accepted, err := agent.Run(ctx, cfg, sugar)
	if err != nil {
		return err
	}

	if cfg.Shutdown {
		fmt.Println(shutdownMessage(accepted))
	}
	return nil
}

func shutdownMessage(accepted bool) string {
	if accepted {
		return "The server accepted the shutdown order"
	}
	return "The server did not accept the shutdown order"
}

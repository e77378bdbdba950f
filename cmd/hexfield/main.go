// Package main is the entry point for the hexfield scene server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/hexfield/internal/config"
	"github.com/Faultbox/hexfield/internal/game"
	"github.com/Faultbox/hexfield/internal/logger"
	"github.com/Faultbox/hexfield/internal/network"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== hexfield ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("hexfield stopped", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("hexfield closed normally")
}

func run(cfg *config.Config) error {
	scene, err := game.NewScene(cfg)
	if err != nil {
		return fmt.Errorf("building scene: %w", err)
	}

	hub := network.NewHub(cfg.Server.SendBuffer, logger.Named("hub"))
	server := network.NewServer(hub, game.Summary(cfg, scene), network.ViewerOptions{
		PingInterval: cfg.Server.PingInterval,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, logger.Named("server"))
	g := game.New(scene, hub, cfg.Server.TickInterval(), logger.Named("game"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return server.Run(groupCtx, cfg.Server.Addr)
	})
	group.Go(func() error {
		return g.Run(groupCtx)
	})
	return group.Wait()
}

package main

import (
	"github.com/secroll/missteps/cards"
	"github.com/secroll/missteps/config"
	"github.com/secroll/missteps/game"
	"github.com/secroll/missteps/logger"
	"github.com/secroll/missteps/monitor"
	"github.com/secroll/missteps/server"
)

func main() {
	// Initialize logger
	logger.Init()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Log.Fatalf("Failed to load configuration: %v", err)
	}

	// Load the card library, falling back to the built-in catalog
	lib, err := cards.Load(cfg.Cards.LibraryPath, game.BoardSize)
	if err != nil {
		logger.Log.Warnf("Using fallback card library: %v", err)
	}

	// Start metrics endpoint
	mon := monitor.NewMonitor("missteps")
	mon.StartServer(cfg.Server.MetricsAddress)

	// Initialize Game Server
	gameServer := server.NewGameServer(cfg.Server.HTTPAddress, cfg.Server.RPCAddress, lib, mon)

	// Start Server
	logger.Log.Infof("Starting game server on %s", cfg.Server.HTTPAddress)
	if err := gameServer.Start(); err != nil {
		logger.Log.Fatalf("Failed to start server: %v", err)
	}
}

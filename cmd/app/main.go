package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"FinSight/internal/di"
	"FinSight/pkg/config"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "config/config.yaml", "config file path")
	flag.Parse()

	// .env is optional; real env vars win either way
	_ = godotenv.Load()

	// Load config
	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	log.Printf("env=%s sentiment=%s period=%s", cfg.Environment, cfg.Sentiment.Provider, cfg.MarketData.Period)

	// Wire DI: Initialize all dependencies
	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	// Run application (blocks until signal)
	if err := app.Run(); err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}

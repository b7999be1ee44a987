package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gebeta/geoguess/internal/api"
	"github.com/gebeta/geoguess/internal/config"
	"github.com/gebeta/geoguess/internal/db"
	"github.com/gebeta/geoguess/internal/leaderboard"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	database, err := db.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Run migrations
	if err := database.RunMigrations(context.Background()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	store := db.NewScoreStore(database)
	scores := leaderboard.NewService(store)

	// Restore the one-record-per-(player, mode) invariant before serving, in
	// case a previous run crashed between a lost race and its sweep.
	sweeper := leaderboard.NewSweeper(store, cfg.SweepInterval)
	if removed, err := sweeper.Sweep(context.Background()); err != nil {
		log.Printf("Startup sweep failed: %v", err)
	} else if removed > 0 {
		log.Printf("Startup sweep pruned %d superseded scores", removed)
	}
	if cfg.SweepInterval > 0 {
		sweeper.Start()
		defer sweeper.Stop()
	}

	// Start API server
	apiServer := api.New(cfg, scores, database)
	go func() {
		if err := apiServer.Start(); err != nil {
			log.Printf("API server error: %v", err)
		}
	}()

	// Wait for signal to stop
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")
}

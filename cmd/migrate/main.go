package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"edustack/internal/config"
	"edustack/internal/repository"
	"edustack/internal/seed"
	"edustack/internal/store"
)

// Migrate creates the schema and, with -seed, loads the demo data.
func main() {
	withSeed := flag.Bool("seed", false, "load demo data when the database is empty")
	flag.Parse()

	cfg := config.Load()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// Abort cleanly on Ctrl-C
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("shutdown signal received")
		cancel()
	}()

	db, err := store.NewDB(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer db.Close()

	if err := store.Migrate(ctx, db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	log.Printf("schema up to date (%s)", cfg.DatabaseDriver)

	if !*withSeed {
		return
	}
	seeded, err := seed.Run(ctx, repository.NewRepository(db.Client))
	if err != nil {
		log.Fatalf("seed failed: %v", err)
	}
	if !seeded {
		log.Println("institutions already present, seed skipped")
	}
}

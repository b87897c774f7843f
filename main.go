package main

import (
	"context"
	"log"
	"os"
	"time"

	"kukuys-master/internal/api"
	"kukuys-master/internal/core"
	"kukuys-master/internal/enrich"
	"kukuys-master/internal/game"
	"kukuys-master/internal/rng"
	"kukuys-master/internal/store"
)

const cacheTTL = 24 * time.Hour

func main() {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is required")
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	cfg, err := game.Load(os.Getenv("GAME_CONFIG"))
	if err != nil {
		log.Fatalf("gameplay config: %v", err)
	}

	db := store.MustDB(dbURL)
	defer db.Close()

	st, err := store.New(context.Background(), db)
	if err != nil {
		log.Fatalf("init schema: %v", err)
	}

	enricher := enrich.NewClient(
		enrich.NewTTLCache(cacheTTL),
		enrich.NewTTLCache(cacheTTL),
		enrich.NewTTLCache(cacheTTL),
	)

	svc := core.New(st, enricher, cfg, rng.Default())

	// Passive income sweep: streamers earn coins and burn energy.
	go func() {
		ticker := time.NewTicker(game.StreamTickInterval)
		defer ticker.Stop()
		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := svc.StreamingSweep(ctx); err != nil {
				log.Printf("streaming sweep: %v", err)
			}
			cancel()
		}
	}()

	r := api.Router(svc)

	log.Printf("Listening on :%s", port)
	_ = r.Run(":" + port)
}

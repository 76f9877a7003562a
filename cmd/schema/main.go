// Command schema prepares the places table outside of the server: it creates
// it when missing, optionally drops it first, and optionally loads sample rows.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"ms-users/internal/config"
	"ms-users/internal/database"
	"ms-users/internal/logger"
)

func main() {
	reset := flag.Bool("reset", false, "drop and recreate the places table")
	seed := flag.Bool("seed", false, "insert sample users")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[CONFIG] %v", err)
	}

	logger := logger.New(os.Stdout, logger.ParseLevel(cfg.Log.Level))
	ctx := context.Background()

	store, err := database.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal("DATABASE", err.Error())
	}
	defer store.Close()

	if *reset {
		logger.Warn("SCHEMA", "Dropping places table")
		err = store.ResetSchema(ctx)
	} else {
		err = store.EnsureSchema(ctx)
	}
	if err != nil {
		logger.Fatal("SCHEMA", err.Error())
	}
	logger.Info("SCHEMA", "places table ready")

	if *seed {
		if _, err := seedUsers(ctx, store.DB, logger); err != nil {
			logger.Fatal("SEED", err.Error())
		}
		logger.Info("SEED", "✅ Done.")
	}
}

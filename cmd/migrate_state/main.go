package main

import (
	"encoding/json"
	"log"

	"whatsapp-console/internal/config"
	"whatsapp-console/internal/storage"
)

// Copies the persisted console state from the local SQLite file into the
// PostgreSQL instance configured by the environment. One-shot tool for
// moving a dev setup onto postgres.
func main() {
	cfg := config.LoadConfig()

	source, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to connect to SQLite: %v", err)
	}
	log.Printf("Connected to SQLite at %s", cfg.DBPath)

	pgCfg := *cfg
	pgCfg.DBDriver = "postgres"
	dest, err := storage.Open(&pgCfg)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}

	log.Println("Starting state migration...")

	var blob json.RawMessage
	if !source.Get(cfg.StateKey, &blob) {
		log.Fatalf("No state stored under key %q in %s", cfg.StateKey, cfg.DBPath)
	}
	if !dest.Set(cfg.StateKey, blob) {
		log.Fatal("Failed to write state to PostgreSQL")
	}

	log.Println("Migration completed!")
}

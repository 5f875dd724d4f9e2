package main

import (
	"log"

	"whatsapp-console/internal/api"
	"whatsapp-console/internal/config"
	"whatsapp-console/internal/delivery"
	"whatsapp-console/internal/models"
	"whatsapp-console/internal/state"
	"whatsapp-console/internal/storage"
	"whatsapp-console/internal/ws"
)

func main() {
	cfg := config.LoadConfig()

	if err := models.ValidateGateMap(); err != nil {
		log.Fatalf("Safety gate map is inconsistent: %v", err)
	}

	kv, err := storage.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	store := state.NewStore(kv, cfg.StateKey)

	hub := ws.NewHub()
	go hub.Run()

	engine := delivery.NewEngine(store, cfg, hub)
	r := api.NewRouter(store, engine, hub)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

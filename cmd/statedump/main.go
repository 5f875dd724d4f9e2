package main

import (
	"fmt"
	"log"

	"whatsapp-console/internal/config"
	"whatsapp-console/internal/models"
	"whatsapp-console/internal/storage"
)

// Prints a summary of the persisted console state for quick inspection of
// a local database.
func main() {
	cfg := config.LoadConfig()

	kv, err := storage.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}

	var app models.AppState
	if !kv.Get(cfg.StateKey, &app) {
		log.Fatalf("No state stored under key %q", cfg.StateKey)
	}

	messages := 0
	for _, chat := range app.Chats {
		messages += len(chat.Messages)
	}

	fmt.Printf("Chats:     %d (%d messages)\n", len(app.Chats), messages)
	fmt.Printf("Campaigns: %d\n", len(app.Campaigns))
	for _, c := range app.Campaigns {
		fmt.Printf("  %-8s %-24s sent=%-7d delivered=%-7d blocked=%-5d failed=%-5d %s",
			c.ID, c.Name, c.MessagesSent, c.Delivered(), c.Blocked, c.Failed, c.Status)
		if c.AutoAction != models.AutoActionNone {
			fmt.Printf(" (auto: %s)", c.AutoAction)
		}
		fmt.Println()
	}
	fmt.Printf("Templates: %d\n", len(app.Templates))
	fmt.Printf("Metrics:   sent=%d delivered=%d failed=%d blocked=%d limit=%d\n",
		app.Metrics.TotalSent, app.Metrics.TotalDelivered, app.Metrics.TotalFailed,
		app.Metrics.TotalBlocked, app.Metrics.DailyLimit)
	fmt.Printf("Kill switch: %v\n", app.SafetyFlags.KillSwitch)
}

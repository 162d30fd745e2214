package main

import (
	"context"
	"log"
	"time"

	"giggles/internal/app/bootstrap"
)

// Migrate process entrypoint: creates the submissions, captions and devices
// tables named by TABLE_* (or their per-environment defaults).
func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := bootstrap.RunMigrations(ctx); err != nil {
		log.Fatalf("giggles migrate failed: %v", err)
	}
}

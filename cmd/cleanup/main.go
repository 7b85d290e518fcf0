// Retention sweep: deletes jobs first seen more than the configured number
// of days ago. Meant to run from cron, independently of the crawl.

package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go-jobradar-crawler/internal/config"
	"go-jobradar-crawler/internal/database"
)

func main() {
	days := flag.Int("days", 0, "delete jobs older than this many days (default: retention_days from config)")
	flag.Parse()

	cfg := config.Load()
	retention := cfg.RetentionDays
	if *days > 0 {
		retention = *days
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	repo, err := database.ConnectDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer repo.Close()

	before, err := repo.CountJobs(ctx)
	if err != nil {
		log.Fatalf("❌ Failed to count jobs: %v", err)
	}

	removed, err := repo.DeleteOlderThan(ctx, retention)
	if err != nil {
		log.Fatalf("❌ Cleanup failed: %v", err)
	}

	log.Printf("🧹 Removed %d jobs older than %d days (%d remain)", removed, retention, before-removed)
}

package main

import (
	"context"
	"log"
	"time"

	"go-jobradar-crawler/internal/browser"
	"go-jobradar-crawler/internal/config"
	"go-jobradar-crawler/internal/crawler"
	"go-jobradar-crawler/internal/database"
	"go-jobradar-crawler/internal/dedup"
	"go-jobradar-crawler/internal/pipeline"
	"go-jobradar-crawler/internal/reporter"
	"go-jobradar-crawler/internal/sites"
)

func main() {
	//load config
	cfg := config.Load()
	log.Printf("🔧 Config loaded. Sites file: %s, days to check: %d", cfg.SitesCSV, cfg.DaysToCheck)

	//load site descriptors; a missing or malformed file is fatal
	descriptors, err := sites.Load(cfg.SitesCSV)
	if err != nil {
		log.Fatalf("❌ Failed to load site configurations: %v", err)
	}
	if len(descriptors) == 0 {
		log.Println("⚠️ No sites configured. Nothing to do.")
		return
	}

	//setup context with timeout = 30 mins
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	log.Println("🚀 Starting job crawler...")

	//connect database
	repo, err := database.ConnectDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer repo.Close()

	//init playwright manager
	manager, err := browser.NewManager(cfg.IsHeadless())
	if err != nil {
		log.Fatalf("❌ Failed to init Playwright: %v", err)
	}
	defer manager.Close()
	log.Println("✅ Browser initialized successfully!")

	//optional telegram reporting
	var tg *reporter.TelegramReporter
	if cfg.TelegramEnabled() {
		tg, err = reporter.NewTelegramReporter(cfg)
		if err != nil {
			log.Printf("⚠️ Telegram reporting disabled: %v", err)
			tg = nil
		}
	}

	opts := pipeline.Options{
		SeenCache:   dedup.NewSeenCache(cfg.CachePath, cfg.CacheMaxDays),
		DaysToCheck: cfg.DaysToCheck,
		SiteDelay:   time.Duration(cfg.SiteDelayMs) * time.Millisecond,
	}
	if tg != nil {
		opts.Reporter = tg
	}

	runner := pipeline.NewRunner(crawler.New(manager), repo, opts)
	summary := runner.Run(ctx, descriptors)

	//final summary; partial per-site errors still exit 0
	log.Println("\n=== Crawler Summary ===")
	log.Printf("Total jobs found: %d", summary.Found)
	log.Printf("Total jobs saved: %d", summary.Saved)
	log.Printf("Total jobs skipped: %d", summary.Skipped)
	if summary.Errors > 0 {
		log.Printf("Total errors encountered: %d", summary.Errors)
	}

	if tg != nil {
		if err := tg.SendSummary(summary.Found, summary.Saved, summary.Skipped, summary.Errors); err != nil {
			log.Printf("⚠️ Failed to send summary to Telegram: %v", err)
		}
	}

	log.Println("🏁 Execution finished.")
}

package main

import (
	"log"

	"medline_mirror/internal/config"
	"medline_mirror/internal/database"
	"medline_mirror/internal/files"
	"medline_mirror/internal/ftpclient"
	"medline_mirror/internal/listing"
	"medline_mirror/internal/logger"
	"medline_mirror/internal/service"

	"github.com/joho/godotenv"
)

func init() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger with log level
	if err := logger.Init(cfg.LogPath, logger.ParseLogLevel(cfg.LogLevel)); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// Initialize the download ledger
	db, err := database.New(cfg.DBPath)
	if err != nil {
		logger.Error.Fatalf("Failed to initialize download ledger: %v", err)
	}
	defer db.Close()

	storage, err := files.NewStorage(cfg.OutputPath)
	if err != nil {
		logger.Error.Fatalf("Failed to prepare output directory: %v", err)
	}

	// Connect and authenticate; the service only ever sees a connected
	// remote handle.
	client, err := ftpclient.Dial(cfg.NLMHost)
	if err != nil {
		logger.Error.Fatalf("Failed to connect to %s: %v", cfg.NLMHost, err)
	}
	defer client.Quit()

	if err := client.Login(cfg.NLMUser, cfg.NLMPassword); err != nil {
		logger.Error.Fatalf("Failed to log in to %s: %v", cfg.NLMHost, err)
	}
	logger.Info.Printf("Connected to %s", cfg.NLMHost)

	svc := service.NewSyncService(client, db, storage, listing.NewExcludeList(cfg.ExcludeSuffixes))

	committed, err := svc.Sync(cfg.ServerDir, cfg.DownloadLimit)
	if err != nil {
		// The ledger already reflects everything in committed; the next run
		// resumes from here.
		logger.Error.Fatalf("Sync failed after %d committed retrievals: %v", len(committed), err)
	}

	logger.Info.Printf("Sync complete: %d new files from %s", len(committed), cfg.ServerDir)
}

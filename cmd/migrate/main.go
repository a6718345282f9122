package main

import (
	"context"
	"log"
	"os"

	"github.com/raoelg/ttest-to-bayesfactor/adapters/postgres"
	"github.com/raoelg/ttest-to-bayesfactor/internal"
	"github.com/raoelg/ttest-to-bayesfactor/internal/migration"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: migrate <database_url> [calculation_export_dir]")
	}

	databaseURL := os.Args[1]
	ctx := context.Background()

	// Connect to database
	db, err := postgres.Connect(ctx, databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	runner := migration.NewRunner()
	if err := runner.Run(ctx, db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Printf("Calculation ledger schema at version %s", runner.Version())

	if len(os.Args) < 3 {
		return
	}

	exportDir := os.Args[2]
	log.Printf("Importing calculations from %s", exportDir)

	repo := postgres.NewCalculationRepository(db)
	stats, err := migration.ImportCalculations(ctx, repo, exportDir, internal.NewDefaultLogger())
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}
	log.Printf("Import complete: %d files, %d imported, %d skipped", stats.Files, stats.Imported, stats.Skipped)
}

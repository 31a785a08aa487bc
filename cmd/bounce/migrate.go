package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cjunker/bb-bounce/internal/storage"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Long: `Open the scores database and apply the schema. Opening runs
migrations, so this is mostly useful for provisioning a fresh database
before the first 'bounce serve'.

Examples:
  bounce migrate
  bounce migrate --db ./scores.db`,
	Run: runMigrate,
}

func runMigrate(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(cfg.Store.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	count, err := store.CountScores(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Schema verification failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Schema ready at %s (%d scores)\n", cfg.Store.Path, count)
}

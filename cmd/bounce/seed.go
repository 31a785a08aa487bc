package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cjunker/bb-bounce/internal/leaderboard"
	"github.com/cjunker/bb-bounce/internal/storage"
)

var flagClear bool

// sampleScores is the development fixture set.
var sampleScores = []struct {
	name  string
	score int
	level int
}{
	{"SpeedRunner", 8500, 15},
	{"BrickMaster", 7200, 12},
	{"ArcadeKing", 6800, 11},
	{"PixelPro", 5500, 9},
	{"RetroGamer", 4900, 8},
	{"PaddleWizard", 4200, 7},
	{"BallBouncer", 3700, 6},
	{"ComboQueen", 3100, 5},
	{"NeonNinja", 2600, 4},
	{"Anonymous", 2100, 3},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load sample scores for local development",
	Long: `Insert a fixed set of sample scores so the leaderboard has content
during development.

Examples:
  bounce seed
  bounce seed --clear        # Wipe existing scores first
  bounce seed --db ./dev.db`,
	Run: runSeed,
}

func init() {
	seedCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete existing scores before seeding")
}

func runSeed(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(cfg.Store.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx := context.Background()

	if flagClear {
		if err := store.ClearScores(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Cleared existing scores")
	}

	fmt.Println("Seeding database with sample scores...")

	for _, s := range sampleScores {
		hash := leaderboard.HashIdentity("seed-" + s.name)
		// Window 0 gives each seed row its own duplicate bucket.
		if _, err := store.InsertScore(ctx, s.name, s.score, s.level, hash, 0); err != nil {
			fmt.Fprintf(os.Stderr, "Error inserting %s: %v\n", s.name, err)
			os.Exit(1)
		}
		fmt.Printf("  Added: %s - %d pts (Level %d)\n", s.name, s.score, s.level)
	}

	count, err := store.CountScores(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error counting scores: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Seeding completed. Total scores in database: %d\n", count)
}

// bounce is the BB-Bounce leaderboard server and admin CLI.
//
// Usage:
//
//	bounce serve             - Start the HTTP server (API + game frontend)
//	bounce migrate           - Create or update the database schema
//	bounce seed              - Load sample scores for local development
//	bounce scores            - Show the leaderboard
//
// Global flags:
//
//	--config <path>  - Config file (default: search ~/.bounce, ./configs)
//	--db <path>      - Override the scores database path
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cjunker/bb-bounce/internal/config"
)

var (
	// Global flags
	flagConfig string
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bounce",
	Short: "BB-Bounce - Brick-breaker leaderboard server",
	Long: `BB-Bounce serves the brick-breaker game frontend and its global
leaderboard API, backed by a local SQLite database.

Available commands:
  serve    - Start the HTTP server
  migrate  - Create or update the database schema
  seed     - Load sample scores for local development
  scores   - View the leaderboard

Examples:
  bounce serve
  bounce serve --config ./configs/server.yaml
  bounce migrate --db ./scores.db
  bounce seed
  bounce scores --limit 25
  bounce scores --interactive`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (overrides config)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(scoresCmd)
}

// loadConfig resolves configuration with CLI overrides applied.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	if flagDBPath != "" {
		cfg.Store.Path = flagDBPath
	}
	return cfg, nil
}

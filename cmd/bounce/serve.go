package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cjunker/bb-bounce/internal/server"
)

var (
	flagAddr      string
	flagStaticDir string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the BB-Bounce HTTP server",
	Long: `Start the HTTP server that hosts the game frontend and the
leaderboard API.

Endpoints:
  GET  /api/scores  - Leaderboard page (limit/offset)
  POST /api/submit  - Submit a score (validated, throttled)
  GET  /api/stats   - Aggregate statistics
  GET  /health      - Liveness and database reachability

The submission secret comes from the config file or the SCORE_SECRET
environment variable.

Examples:
  bounce serve                            # Listen on the configured address
  bounce serve --addr :8080               # Override the listen address
  bounce serve --static ./public          # Serve a different frontend build
  bounce serve --db ./scores.db           # Use a specific database`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (host:port, overrides config)")
	serveCmd.Flags().StringVar(&flagStaticDir, "static", "", "Frontend directory (overrides config)")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if flagAddr != "" {
		cfg.Server.Addr = flagAddr
	}
	if flagStaticDir != "" {
		cfg.Server.StaticDir = flagStaticDir
	}

	srv, err := server.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting BB-Bounce server on %s\n", srv.Addr())
	fmt.Printf("Health: http://localhost%s/health\n", srv.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := srv.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

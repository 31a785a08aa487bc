package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/cjunker/bb-bounce/internal/storage"
	"github.com/cjunker/bb-bounce/internal/tui"
)

var (
	flagLimit       int
	flagInteractive bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the top scores from the leaderboard.

Examples:
  bounce scores
  bounce scores --limit 25
  bounce scores --interactive`,
	Run: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse the leaderboard interactively")
}

func runScores(_ *cobra.Command, _ []string) {
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

	if flagInteractive {
		if err := tui.RunLeaderboard(store); err != nil {
			fmt.Fprintf(os.Stderr, "Error running leaderboard: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if flagLimit < 1 {
		flagLimit = 10
	}
	if flagLimit > 100 {
		flagLimit = 100
	}

	scores, err := store.TopScores(context.Background(), flagLimit, 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	fmt.Println(titleStyle.Render("High Scores - BB-Bounce"))
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Run 'bounce serve' and play a round to set the first high score!")
		return
	}

	headerStyle := lipgloss.NewStyle().Bold(true)
	fmt.Println(headerStyle.Render(fmt.Sprintf("  %-4s  %-20s  %-10s  %-5s  %s", "Rank", "Name", "Score", "Lvl", "Date")))
	fmt.Printf("  %-4s  %-20s  %-10s  %-5s  %s\n", "----", "----", "-----", "---", "----")

	for _, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-20s  %-10d  %-5d  %s\n",
			entry.Rank, entry.Name, entry.Score, entry.LevelReached, dateStr)
	}
}

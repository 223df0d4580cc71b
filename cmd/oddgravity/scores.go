package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/oddgravity/internal/game"
	"github.com/vovakirdan/oddgravity/internal/storage"
)

var flagScoresMode string

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show local high scores",
	Long: `Display the top 10 local runs, optionally filtered by mode.

Examples:
  oddgravity scores
  oddgravity scores --mode Classic
  oddgravity scores --mode Bouncy`,
	Run: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresMode, "mode", "", "Filter by game mode")
}

func runScores(_ *cobra.Command, _ []string) {
	mode := flagScoresMode
	if mode != "" {
		mode = resolveModeName(mode)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	scores, err := store.TopScores(mode, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	title := "High Scores"
	if mode != "" {
		title = fmt.Sprintf("High Scores - %s", mode)
	}
	fmt.Println(title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'oddgravity play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-8s  %-7s  %-5s  %-12s  %s\n", "Rank", "Score", "Coins", "Lvl", "Mode", "Date")
	fmt.Printf("  %-4s  %-8s  %-7s  %-5s  %-12s  %s\n", "----", "-----", "-----", "---", "----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8d  %-7d  %-5d  %-12s  %s\n",
			i+1, entry.Score, entry.Coins, entry.Level, entry.Mode, dateStr)
	}

	fmt.Println()
	if best, err := store.BestScore(mode); err == nil && best > 0 {
		fmt.Printf("Best: %d\n", best)
	}

	if mode == "" {
		fmt.Printf("Modes: %s\n", strings.Join(game.ModeNames(), ", "))
	}
}

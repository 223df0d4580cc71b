package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/oddgravity/internal/progression"
	"github.com/vovakirdan/oddgravity/internal/storage"
)

var missionsCmd = &cobra.Command{
	Use:   "missions",
	Short: "Show today's missions",
	Long: `Display today's mission board and your progress on each.

Missions regenerate every day (UTC). Restricted missions only count runs
played in the named mode, but pay out more.

Examples:
  oddgravity missions`,
	Run: runMissions,
}

func runMissions(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	now := time.Now()
	missions := progression.NewMissions(store, now)
	missions.EnsureDate(now)

	fmt.Printf("Missions for %s (UTC)\n", now.UTC().Format("2006-01-02"))
	fmt.Println()

	for _, m := range missions.List() {
		mark := "[ ]"
		if m.Done {
			mark = "[x]"
		}
		fmt.Printf("  %s %-6s  %s\n", mark, m.Tier.String(), m.Description)
		fmt.Printf("      %d/%d  reward %d coins\n", m.Progress, m.Target, m.Reward)
	}
}

package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/oddgravity/internal/progression"
	"github.com/vovakirdan/oddgravity/internal/storage"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Lifetime stats and achievements",
	Long: `Display pilot level, lifetime totals, per-mode bests, and unlocked
achievements.

Examples:
  oddgravity stats`,
	Run: runStats,
}

func runStats(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ledger := progression.NewLedger(store)
	tracker := progression.NewTracker(store)
	stats := ledger.Stats()

	fmt.Printf("Pilot level %d", ledger.Level())
	if next := ledger.XPToNext(); next > 0 {
		fmt.Printf("  (%d XP to next)", next)
	}
	fmt.Printf("\nWallet: %d coins\n\n", ledger.Coins())

	fmt.Printf("  Runs            %d\n", stats.Games)
	fmt.Printf("  Best score      %d\n", stats.BestScore)
	fmt.Printf("  Total score     %d\n", stats.TotalScore)
	fmt.Printf("  Coins collected %d\n", stats.TotalCoins)
	fmt.Printf("  Obstacles       %d\n", stats.TotalObstacles)
	fmt.Printf("  Creatures dodged %d\n", stats.TotalDodges)
	fmt.Printf("  Near misses     %d\n", stats.TotalNearMisses)
	fmt.Printf("  Best combo      x%d\n", stats.BestCombo)
	fmt.Printf("  Longest run     %s\n", (time.Duration(stats.LongestRunMs) * time.Millisecond).Round(time.Second))
	fmt.Printf("  Time played     %s\n", (time.Duration(stats.TotalTimeMs) * time.Millisecond).Round(time.Second))

	if len(stats.BestPerMode) > 0 {
		fmt.Println("\nBest per mode:")
		for _, mode := range sortedKeys(stats.BestPerMode) {
			fmt.Printf("  %-12s %d\n", mode, stats.BestPerMode[mode])
		}
	}

	fmt.Printf("\nAchievements (%d/%d):\n", tracker.UnlockedCount(), len(progression.Achievements()))
	for _, a := range progression.Achievements() {
		mark := "[ ]"
		if tracker.IsUnlocked(a.ID) {
			mark = "[x]"
		}
		fmt.Printf("  %s %-18s %s\n", mark, a.Name, a.Description)
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// oddgravity is a gravity-flipping one-button arcade game for the terminal.
//
// Usage:
//
//	oddgravity play [mode]   - Play a mode directly, or pick from the menu
//	oddgravity daily         - Play today's shared daily challenge
//	oddgravity scores        - Show local high scores
//	oddgravity missions      - Show today's missions
//	oddgravity shop          - Browse and buy cosmetics
//	oddgravity stats         - Lifetime stats and achievements
//	oddgravity serve         - Start SSH server for remote play
//	oddgravity api           - Start the score API server
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.oddgravity/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "oddgravity",
	Short: "Odd Gravity - a gravity-flipping arcade game in your terminal",
	Long: `Odd Gravity is a one-button terminal arcade game. Gravity reverses on
a timer; your only move is a kick against it that also briefly freezes
the hazards. Dodge the columns and the creatures, bank coins, climb the
pilot levels.

Available commands:
  play      - Play a mode directly or pick from the menu
  daily     - Play today's shared daily challenge
  scores    - View local high scores
  missions  - View today's missions
  shop      - Browse and buy cosmetics
  stats     - Lifetime stats and achievements
  serve     - Start SSH server for remote play
  api       - Start the score API server

Examples:
  oddgravity play
  oddgravity play Bouncy
  oddgravity daily
  oddgravity serve --ssh :2222
  oddgravity scores --mode Classic`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.oddgravity/scores.db", "Path to scores database")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(dailyCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(missionsCmd)
	rootCmd.AddCommand(shopCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
}

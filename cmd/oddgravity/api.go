package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/oddgravity/internal/server"
)

var flagAPIAddr string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the score API server",
	Long: `Start the HTTP API that backs the daily challenge and the shared
leaderboard.

Endpoints:
  GET  /api/health       - Liveness check
  POST /api/register     - Issue an anonymous player id
  GET  /api/daily        - Today's challenge parameters
  POST /api/score        - Submit a score
  GET  /api/leaderboard  - Best scores (period=daily|weekly|all, mode, limit)

Examples:
  oddgravity api
  oddgravity api --addr :9000
  oddgravity api --db ./scores.db`,
	Run: runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagAPIAddr, "addr", ":8080", "HTTP listen address (host:port)")
}

func runAPI(_ *cobra.Command, _ []string) {
	srv, err := server.New(server.Config{
		Address: flagAPIAddr,
		DBPath:  flagDBPath,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting score API on %s\n", flagAPIAddr)
	fmt.Println("Press Ctrl+C to stop")

	if err := srv.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/oddgravity/internal/core"
	"github.com/vovakirdan/oddgravity/internal/daily"
	"github.com/vovakirdan/oddgravity/internal/game"
	"github.com/vovakirdan/oddgravity/internal/platform/tui"
	"github.com/vovakirdan/oddgravity/internal/storage"
)

// playerIDKey is the blob key holding this install's API player id.
const playerIDKey = "player_id"

var flagServer string

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Play today's shared daily challenge",
	Long: `Play the daily challenge: everyone gets the same seed, mode, and
physics for the date, so scores are comparable.

With --server set, parameters come from the score API and your result is
submitted to the shared leaderboard. Scores that fail to send are queued
and retried next time. Without a server, the same parameters are derived
locally from the date.

Examples:
  oddgravity daily
  oddgravity daily --server https://scores.example.com`,
	Run: runDaily,
}

func init() {
	dailyCmd.Flags().StringVar(&flagServer, "server", "", "Score API base URL (empty = offline)")
}

func runDaily(_ *cobra.Command, _ []string) {
	gameCfg := loadGameConfig()
	store := openStore()
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client := daily.NewClient(flagServer)
	params := client.FetchParams(ctx, time.Now())

	var submitter *daily.Submitter
	playerID := ""
	if flagServer != "" && store != nil {
		playerID = ensurePlayerID(ctx, client, store)
		submitter = daily.NewSubmitter(client, store)

		// Retry anything that failed to send last time
		if sent, err := submitter.Flush(ctx); err == nil && sent > 0 {
			fmt.Printf("Sent %d queued score(s)\n", sent)
		}
	}

	fmt.Printf("Daily challenge: %s mode, seed %d\n", params.ModeName, params.Seed)

	opts := tui.Options{
		Game:      game.New(gameCfg, params.Rules()),
		Store:     store,
		Config:    core.RuntimeConfig{TickRate: flagFPS, Seed: params.Seed},
		DailyRun:  true,
		Submitter: submitter,
		PlayerID:  playerID,
	}
	if err := tui.Run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}

// ensurePlayerID loads the stored player id, registering with the API
// on first use. Returns "" if registration is impossible.
func ensurePlayerID(ctx context.Context, client *daily.Client, store *storage.Store) string {
	var id string
	if found, err := store.Load(playerIDKey, &id); err == nil && found && id != "" {
		return id
	}

	id, err := client.Register(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not register with server: %v\n", err)
		return ""
	}
	//nolint:errcheck // Losing the id just means re-registering next time
	store.Save(playerIDKey, id)
	return id
}

package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/oddgravity/internal/config"
	"github.com/vovakirdan/oddgravity/internal/core"
	"github.com/vovakirdan/oddgravity/internal/daily"
	"github.com/vovakirdan/oddgravity/internal/game"
	"github.com/vovakirdan/oddgravity/internal/platform/tui"
	"github.com/vovakirdan/oddgravity/internal/storage"
)

var flagConfig string

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play the game",
	Long: `Start a run in the given mode, or open the mode picker menu.

Controls:
  Space/Up/W - Flap (kick against gravity, freezes hazards briefly)
  P/Esc      - Pause
  R          - Restart (after game over)
  Q/Ctrl+C   - Quit

Modes:
  Classic, Odd Gravity, Inverted, Flux, Pulse, Chaotic, Bouncy

Examples:
  oddgravity play
  oddgravity play Bouncy
  oddgravity play Classic --seed 42
  oddgravity play --config ./my-tuning.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom gameplay config YAML")
}

// terminalSize returns the current terminal dimensions, with fallbacks.
func terminalSize() (int, int) {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}

// loadGameConfig loads the gameplay tuning, falling back to the
// embedded defaults on error.
func loadGameConfig() config.GameConfig {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		return config.DefaultGameConfig()
	}
	return cfg
}

// openStore opens the scores database, or returns nil to play without
// persistence.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, args []string) {
	gameCfg := loadGameConfig()
	store := openStore()
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	if len(args) == 1 {
		modeName := resolveModeName(args[0])
		opts := tui.Options{
			Game:   game.New(gameCfg, game.DefaultRules(0, modeName)),
			Store:  store,
			Config: core.RuntimeConfig{TickRate: flagFPS, Seed: flagSeed},
		}
		if err := tui.Run(opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			os.Exit(1)
		}
		return
	}

	menuLoop(store, gameCfg)
}

// resolveModeName matches a user-supplied mode name case-insensitively.
func resolveModeName(arg string) string {
	for _, name := range game.ModeNames() {
		if strings.EqualFold(name, arg) {
			return name
		}
	}
	fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", arg)
	fmt.Fprintf(os.Stderr, "Modes: %s\n", strings.Join(game.ModeNames(), ", "))
	os.Exit(1)
	return ""
}

// menuLoop shows the mode picker until the user quits.
func menuLoop(store *storage.Store, gameCfg config.GameConfig) {
	for {
		width, height := terminalSize()

		menuResult, err := tui.RunMenu(store, width, height)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}

		if menuResult.Quit {
			return
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, width, height)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			return // User quit from scoreboard
		}

		opts := tui.Options{
			Store:  store,
			Config: core.RuntimeConfig{TickRate: flagFPS},
		}
		if menuResult.Daily {
			params := daily.FromDate(time.Now())
			opts.Game = game.New(gameCfg, params.Rules())
			opts.Config.Seed = params.Seed
			opts.DailyRun = true
		} else {
			opts.Game = game.New(gameCfg, game.DefaultRules(0, menuResult.ModeName))
			opts.Config.Seed = time.Now().UnixNano()
		}

		if err := tui.Run(opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}

		// Loop back to menu
	}
}

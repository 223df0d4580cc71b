package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/oddgravity/internal/core"
	"github.com/vovakirdan/oddgravity/internal/daily"
	"github.com/vovakirdan/oddgravity/internal/game"
	"github.com/vovakirdan/oddgravity/internal/progression"
	"github.com/vovakirdan/oddgravity/internal/storage"
)

// Default terminal dimensions before the first WindowSizeMsg arrives.
const (
	defaultScreenW = 80
	defaultScreenH = 24
)

// Options wires a game run to its surrounding services. Store may be nil
// (no persistence); Submitter may be nil (offline play).
type Options struct {
	Game      *game.Game
	Store     *storage.Store
	Config    core.RuntimeConfig
	DailyRun  bool // Restart keeps the shared seed instead of reseeding
	Submitter *daily.Submitter
	PlayerID  string
}

// Model is the Bubble Tea model for running the game.
type Model struct {
	game       *game.Game
	screen     *core.Screen
	store      *storage.Store
	ledger     *progression.Ledger
	missions   *progression.Missions
	tracker    *progression.Tracker
	submitter  *daily.Submitter
	playerID   string
	config     core.RuntimeConfig
	dailyRun   bool
	keys       *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether the finished run has been banked

	// Game-over overlay extras from the last banked run
	lastReward    progression.RunReward
	lastUnlocked  []progression.Achievement
	lastCompleted []progression.Mission
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(opts Options) Model {
	// Use time-based seed if not specified
	if opts.Config.Seed == 0 {
		opts.Config.Seed = time.Now().UnixNano()
	}
	if opts.Config.TickRate <= 0 {
		opts.Config.TickRate = 60
	}

	m := Model{
		game:       opts.Game,
		screen:     core.NewScreen(defaultScreenW, defaultScreenH),
		store:      opts.Store,
		submitter:  opts.Submitter,
		playerID:   opts.PlayerID,
		config:     opts.Config,
		dailyRun:   opts.DailyRun,
		keys:       NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
	if opts.Store != nil {
		now := time.Now()
		m.ledger = progression.NewLedger(opts.Store)
		m.missions = progression.NewMissions(opts.Store, now)
		m.tracker = progression.NewTracker(opts.Store)
	}
	return m
}

// Init initializes the model and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case tea.BlurMsg:
		// Auto-pause when the terminal loses focus
		if m.gameState.Phase == core.PhasePlaying {
			m.inputFrame.Set(core.ActionPause)
		}
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	// Back to menu (B or Esc when game over or paused)
	action := m.keys.MapKeyToMenuAction(msg)
	if action == MenuActionBack && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
	}

	return m, nil
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		if !m.dailyRun {
			m.config.Seed = time.Now().UnixNano()
		}
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.lastReward = progression.RunReward{}
		m.lastUnlocked = nil
		m.lastCompleted = nil
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Bank the run on game over (once)
	if m.gameState.GameOver && !m.scoreSaved {
		m.finishRun()
		m.scoreSaved = true
	}

	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// finishRun folds the completed run into missions, progression,
// achievements, local scores, and the online leaderboard. Everything
// here is best-effort: a failed save never interrupts play.
func (m *Model) finishRun() {
	sum := m.game.Summary()
	if sum == nil {
		return
	}

	if m.store != nil {
		now := time.Now()

		m.missions.EnsureDate(now)
		m.lastCompleted = m.missions.Apply(sum)

		reward, err := m.ledger.AddRun(sum, len(m.lastCompleted))
		if err == nil {
			m.lastReward = reward
		}
		for _, ms := range m.lastCompleted {
			//nolint:errcheck // Best-effort payout, same store as AddRun
			m.ledger.AddCoins(ms.Reward)
		}

		stats := m.ledger.Stats()
		m.lastUnlocked = m.tracker.Evaluate(&stats, sum, now)

		if sum.Score > 0 {
			//nolint:errcheck // Best-effort save, game continues regardless
			m.store.SaveScore(storage.ScoreEntry{
				Mode:       sum.Mode,
				Seed:       sum.Seed,
				Score:      sum.Score,
				Coins:      sum.Coins,
				Level:      sum.Level,
				DurationMs: int64(sum.DurationMs),
			})
		}
	}

	if m.submitter != nil && m.playerID != "" && sum.Score > 0 {
		score, mode := sum.Score, sum.Mode
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			//nolint:errcheck // Failed submits are queued for the next flush
			m.submitter.Submit(ctx, m.playerID, score, mode)
		}()
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.game.Snapshot()
	DrawFrame(m.screen, snap)

	m.drawXPBar()
	if snap.Phase == core.PhaseGameOver {
		m.drawRunRewards()
	}

	return RenderScreen(m.screen)
}

// drawXPBar shows pilot level progress in the HUD's second row.
func (m Model) drawXPBar() {
	if m.ledger == nil {
		return
	}
	w := m.screen.Width()

	next := m.ledger.XPToNext()
	var label string
	if next == 0 {
		label = fmt.Sprintf("L%d MAX", m.ledger.Level())
	} else {
		total := m.ledger.XP() + next
		filled := 0
		if total > 0 {
			filled = 8 * m.ledger.XP() / total
		}
		bar := strings.Repeat("=", filled) + strings.Repeat("-", 8-filled)
		label = fmt.Sprintf("L%d [%s]", m.ledger.Level(), bar)
	}

	x := (w - len(label)) / 2
	if x > 0 {
		m.screen.DrawTextColored(x, 1, label, core.ColorGray)
	}
}

// drawRunRewards extends the game-over overlay with progression results.
func (m Model) drawRunRewards() {
	mid := hudRows + (m.screen.Height()-hudRows)/2
	y := mid + 4

	if m.lastReward.XP > 0 {
		line := fmt.Sprintf("+%d XP", m.lastReward.XP)
		if m.lastReward.LevelsGained > 0 {
			line += fmt.Sprintf("  PILOT LEVEL %d!", m.lastReward.NewLevel)
		}
		m.screen.DrawTextCentered(y, line)
		y++
	}
	for _, ms := range m.lastCompleted {
		m.screen.DrawTextCentered(y, "mission complete: "+ms.Description)
		y++
	}
	for _, a := range m.lastUnlocked {
		m.screen.DrawTextCentered(y, "achievement: "+a.Name)
		y++
	}
}

// Run starts the Bubble Tea program with the given options.
func Run(opts Options) error {
	model := NewModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithReportFocus(),
	)

	_, err := p.Run()
	return err
}

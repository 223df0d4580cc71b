package core

// RuntimeConfig contains configuration passed to the game at initialization.
// The simulation runs in fixed world units, so screen size is a render-side
// concern and does not appear here.
type RuntimeConfig struct {
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Phase is the lifecycle state of a run.
type Phase int

const (
	PhaseReady    Phase = iota // Waiting for the first flap
	PhasePlaying               // Simulation advancing
	PhasePaused                // Frozen, resumable
	PhaseGameOver              // Terminal until restart
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// GameState summarizes the run for the platform layer.
type GameState struct {
	Phase    Phase
	Score    int  // Obstacles passed plus combo bonuses
	Coins    int  // Coins banked this run
	Level    int  // Current level index (1-based)
	GameOver bool // Convenience flag, Phase == PhaseGameOver
	Paused   bool // Convenience flag, Phase == PhasePaused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}

package game

// Mode is a named rule preset layered over the daily baseline.
type Mode struct {
	Name         string
	SpeedMul     float64 // Obstacle speed multiplier
	FreezeMul    float64 // Freeze window multiplier
	FlipMul      float64 // Gravity flip interval multiplier
	StartGravity float64 // +1 starts falling down, -1 starts falling up

	// Behavior flags
	SineAmp      float64 // Wobble acceleration as a fraction of gravity (0 = off)
	SinePeriodMs float64
	Bouncy       bool    // Boundaries reflect instead of killing
	Chaos        bool    // Random gravity flips layered over the timed ones
	ChaosMinMs   float64 // Minimum ms between chaos flips
	ChaosChance  float64 // Per-tick flip chance once armed
}

// modes is the fixed preset table. Read-only after init.
var modes = []Mode{
	{
		Name:         "Classic",
		SpeedMul:     1.0,
		FreezeMul:    1.0,
		FlipMul:      1.0,
		StartGravity: 1,
	},
	{
		Name:         "Odd Gravity",
		SpeedMul:     1.0,
		FreezeMul:    1.1,
		FlipMul:      0.75,
		StartGravity: 1,
	},
	{
		Name:         "Inverted",
		SpeedMul:     1.0,
		FreezeMul:    1.0,
		FlipMul:      1.0,
		StartGravity: -1,
	},
	{
		Name:         "Flux",
		SpeedMul:     0.95,
		FreezeMul:    1.0,
		FlipMul:      1.0,
		StartGravity: 1,
		SineAmp:      0.7,
		SinePeriodMs: 900,
	},
	{
		Name:         "Pulse",
		SpeedMul:     1.05,
		FreezeMul:    0.8,
		FlipMul:      0.85,
		StartGravity: 1,
	},
	{
		Name:         "Chaotic",
		SpeedMul:     1.0,
		FreezeMul:    1.0,
		FlipMul:      1.0,
		StartGravity: 1,
		Chaos:        true,
		ChaosMinMs:   400,
		ChaosChance:  0.02,
	},
	{
		Name:         "Bouncy",
		SpeedMul:     1.0,
		FreezeMul:    1.0,
		FlipMul:      1.0,
		StartGravity: 1,
		Bouncy:       true,
	},
}

// Modes returns the preset table.
func Modes() []Mode {
	out := make([]Mode, len(modes))
	copy(out, modes)
	return out
}

// ModeNames returns the preset names in table order.
func ModeNames() []string {
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = m.Name
	}
	return names
}

// ModeByName returns the preset with the given name.
// Unknown names fall back to Classic.
func ModeByName(name string) Mode {
	for _, m := range modes {
		if m.Name == name {
			return m
		}
	}
	return modes[0]
}

// Rules is the merged ruleset a run is played under: the daily baseline
// combined with a mode preset. A Rules value is immutable during a run.
type Rules struct {
	Seed          int64
	Mode          Mode
	FlipEveryMs   float64 // Baseline gravity flip interval
	ObstacleSpeed float64 // Baseline scroll speed
	FreezeMs      float64 // Baseline hazard freeze per flap
}

// DefaultRules returns free-play rules for the given seed and mode name.
// Baselines come from the gameplay config at Reset time when zero.
func DefaultRules(seed int64, modeName string) Rules {
	return Rules{
		Seed: seed,
		Mode: ModeByName(modeName),
	}
}

// ApplyMode merges a baseline (typically the daily challenge parameters)
// with a mode preset into run rules.
func ApplyMode(seed int64, flipEveryMs, obstacleSpeed, freezeMs float64, mode Mode) Rules {
	return Rules{
		Seed:          seed,
		Mode:          mode,
		FlipEveryMs:   flipEveryMs,
		ObstacleSpeed: obstacleSpeed,
		FreezeMs:      freezeMs,
	}
}

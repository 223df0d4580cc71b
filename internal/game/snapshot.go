package game

import (
	"github.com/vovakirdan/oddgravity/internal/core"
)

// Snapshot is the per-frame render model. It exposes everything a renderer
// needs in world coordinates and plain values, so the platform layer never
// reaches into live simulation state.
type Snapshot struct {
	Phase      core.Phase
	Mode       string
	WorldTheme string

	Score           int
	Coins           int
	Level           int
	Difficulty      float64 // Scalar in [0, 1]
	ComboCount      int
	ComboMultiplier int

	PlayerY    float64
	PlayerR    float64
	GravityDir float64
	MsToFlip   float64 // Time until the next scheduled flip; 0 while gravity is locked
	FrozenMs   float64 // Remaining hazard freeze

	ShieldArmed bool
	Effects     map[string]float64 // Active effect name -> remaining ms

	Obstacles    []ObstacleView
	Creatures    []CreatureView
	Collectibles []CoinView
	Pickups      []PickupView
}

// ObstacleView is a render-ready obstacle.
type ObstacleView struct {
	X, Width  float64
	GapY, Gap float64
	Landmark  Landmark
	Passed    bool
}

// CreatureView is a render-ready creature.
type CreatureView struct {
	Kind   CreatureKind
	X, Y   float64
	R      float64
	Angle  float64
	Alpha  float64
	Active bool
}

// CoinView is a render-ready collectible.
type CoinView struct {
	Kind CoinKind
	X, Y float64
}

// PickupView is a render-ready powerup pickup.
type PickupView struct {
	Kind PowerupKind
	X, Y float64
}

// Snapshot captures the current frame for rendering.
func (g *Game) Snapshot() Snapshot {
	dv := g.diff.Value(g.level-1, g.passesInLevel, g.clockMs/1000)
	mods := g.powerups.Modifiers()

	// Chaotic mode keeps the scheduled cadence, so the countdown stays
	// meaningful; a chaos roll may still preempt it.
	msToFlip := 0.0
	if !mods.GravityLock {
		flipMs := g.diff.FlipMs(dv, g.rules.FlipEveryMs) * g.rules.Mode.FlipMul
		if left := flipMs - g.sinceFlipMs; left > 0 {
			msToFlip = left
		}
	}

	frozen := 0.0
	if left := g.freezeUntilMs - g.clockMs; left > 0 {
		frozen = left
	}

	effects := make(map[string]float64)
	for kind, left := range g.powerups.ActiveEffects(g.clockMs) {
		effects[kind.String()] = left
	}

	s := Snapshot{
		Phase:           g.phase,
		Mode:            g.rules.Mode.Name,
		WorldTheme:      g.world.Theme,
		Score:           g.score,
		Coins:           g.coins,
		Level:           g.level,
		Difficulty:      dv,
		ComboCount:      g.combo.Count(),
		ComboMultiplier: g.combo.Multiplier(),
		PlayerY:         g.playerY,
		PlayerR:         g.cfg.Physics.PlayerRadius * mods.PlayerScale,
		GravityDir:      g.gravityDir,
		MsToFlip:        msToFlip,
		FrozenMs:        frozen,
		ShieldArmed:     g.powerups.ShieldArmed(),
		Effects:         effects,
	}

	for _, o := range g.obstacles.Obstacles() {
		s.Obstacles = append(s.Obstacles, ObstacleView{
			X: o.X, Width: o.Width, GapY: o.GapY, Gap: o.Gap,
			Landmark: o.Landmark, Passed: o.Passed,
		})
	}
	for _, c := range g.creatures.Creatures() {
		s.Creatures = append(s.Creatures, CreatureView{
			Kind: c.Kind, X: c.X, Y: c.Y, R: c.R,
			Angle: c.Angle, Alpha: c.Alpha, Active: c.Active,
		})
	}
	for _, c := range g.collectibles.Coins() {
		s.Collectibles = append(s.Collectibles, CoinView{Kind: c.Kind, X: c.X, Y: c.Y})
	}
	for _, p := range g.powerups.Pickups() {
		s.Pickups = append(s.Pickups, PickupView{Kind: p.Kind, X: p.X, Y: p.Y})
	}

	return s
}

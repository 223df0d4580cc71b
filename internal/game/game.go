// Package game implements the gravity-flip arcade simulation.
// The world is a fixed 360x640 float coordinate space; rendering and input
// mapping live in the platform layer. Gravity reverses on a timer, the one
// button kicks the player against the current gravity and briefly freezes
// the hazards, and a run ends on a boundary or hazard hit.
package game

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/oddgravity/internal/config"
	"github.com/vovakirdan/oddgravity/internal/core"
)

// World dimensions and the player's fixed horizontal position, in world units.
const (
	WorldW  = 360.0
	WorldH  = 640.0
	PlayerX = 96.0
)

// Bounce restitution for the Bouncy mode's boundary reflection.
const bounceDamping = 0.6

// Game is the simulation engine. It is platform-free and deterministic:
// identical seed, rules, and input sequences produce identical runs.
type Game struct {
	cfg   config.GameConfig
	rules Rules
	rng   *rand.Rand

	phase    core.Phase
	tickRate int

	clockMs       float64 // Simulation time, advanced by effective dt
	playerY       float64
	velY          float64
	gravityDir    float64 // +1 pulls down, -1 pulls up
	sinceFlipMs   float64
	freezeUntilMs float64

	score         int
	totalPasses   int
	coins         int
	level         int // 1-based
	passesInLevel int
	world         World

	diff         *Difficulty
	obstacles    *ObstacleField
	creatures    *CreatureField
	collectibles *CoinField
	powerups     *Powerups
	combo        *Combo

	// Run stats folded into the summary at game over
	maxCombo      int
	nearMisses    int
	dodges        int
	flaps         int
	shieldUsed    bool
	powerupsTaken int
	powerupKinds  map[PowerupKind]bool

	summary *RunSummary
}

// RunSummary captures a finished run for progression, missions,
// achievements, and score submission.
type RunSummary struct {
	Score           int
	Coins           int
	MaxCombo        int
	DurationMs      float64
	ObstaclesPassed int
	CreaturesDodged int
	NearMisses      int
	Flaps           int
	PowerupsTaken   int
	PowerupKinds    []string
	ShieldUsed      bool
	Level           int
	Mode            string
	Seed            int64
}

// New creates a game with the given gameplay config and run rules.
// Zero-valued rule baselines fall back to the config's physics section.
func New(cfg config.GameConfig, rules Rules) *Game {
	if rules.FlipEveryMs == 0 {
		rules.FlipEveryMs = cfg.Physics.BaseFlipMs
	}
	if rules.ObstacleSpeed == 0 {
		rules.ObstacleSpeed = cfg.Physics.BaseSpeed
	}
	if rules.FreezeMs == 0 {
		rules.FreezeMs = cfg.Physics.BaseFreezeMs
	}
	if rules.Mode.Name == "" {
		rules.Mode = ModeByName("Classic")
	}

	diff := NewDifficulty(cfg.Difficulty)
	return &Game{
		cfg:          cfg,
		rules:        rules,
		diff:         diff,
		obstacles:    NewObstacleField(cfg.Obstacles, diff),
		creatures:    NewCreatureField(),
		collectibles: NewCoinField(cfg.Collectibles),
		powerups:     NewPowerups(cfg.Powerups),
		combo:        NewCombo(cfg.Combo),
	}
}

// Rules returns the run's merged ruleset.
func (g *Game) Rules() Rules {
	return g.rules
}

// Reset initializes or restarts the run. Rules and config survive; all
// per-run state is cleared and the world is reseeded from cfg.Seed.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	seed := cfg.Seed
	if seed == 0 {
		seed = g.rules.Seed
	}
	g.rules.Seed = seed
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = 60
	}

	g.rng = rand.New(rand.NewSource(seed))
	g.phase = core.PhaseReady
	g.clockMs = 0
	g.playerY = WorldH / 2
	g.velY = 0
	g.gravityDir = g.rules.Mode.StartGravity
	if g.gravityDir == 0 {
		g.gravityDir = 1
	}
	g.sinceFlipMs = 0
	g.freezeUntilMs = 0

	g.score = 0
	g.totalPasses = 0
	g.coins = 0
	g.level = 1
	g.passesInLevel = 0
	g.world = WorldForLevel(1)

	g.maxCombo = 0
	g.nearMisses = 0
	g.dodges = 0
	g.flaps = 0
	g.shieldUsed = false
	g.powerupsTaken = 0
	g.powerupKinds = make(map[PowerupKind]bool)
	g.summary = nil

	g.obstacles.Reset(g.rng, g.world)
	g.creatures.Reset(g.rng)
	g.collectibles.Reset(g.rng)
	g.powerups.Reset(g.rng)
	g.combo.Reset()
}

// Step advances the simulation by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	switch g.phase {
	case core.PhaseGameOver:
		return core.StepResult{State: g.State()}

	case core.PhaseReady:
		// First flap starts the run
		if in.Has(core.ActionFlap) {
			g.phase = core.PhasePlaying
			g.flap()
		}
		return core.StepResult{State: g.State()}

	case core.PhasePaused:
		if in.Has(core.ActionPause) {
			g.phase = core.PhasePlaying
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.phase = core.PhasePaused
		return core.StepResult{State: g.State()}
	}

	dtMs := 1000.0 / float64(g.tickRate)
	dv := g.diff.Value(g.level-1, g.passesInLevel, g.clockMs/1000)

	// Single modifiers snapshot per frame: the only powerup->physics channel
	mods := g.powerups.Modifiers()
	effDtMs := dtMs * mods.TimeScale
	effR := g.cfg.Physics.PlayerRadius * mods.PlayerScale

	g.clockMs += effDtMs

	g.advanceGravity(effDtMs, dv, mods)

	if in.Has(core.ActionFlap) {
		g.flap()
		freeze := g.diff.FreezeMs(dv, g.rules.FreezeMs) * g.rules.Mode.FreezeMul
		g.freezeUntilMs = g.clockMs + freeze
	}

	g.integratePlayer(effDtMs)

	py := g.playerY
	player := core.Circle{X: PlayerX, Y: py, R: effR}
	frozen := g.clockMs < g.freezeUntilMs
	speed := g.diff.Speed(dv, g.rules.ObstacleSpeed*g.rules.Mode.SpeedMul)

	if frozen {
		// Hazards hold still; pickups can still be scooped and effects expire
		g.handleCoins(g.collectibles.Update(effDtMs, 0, player, mods.Magnet))
		g.handlePowerups(g.powerups.Update(effDtMs, 0, g.clockMs, player))
	} else {
		// A pass counts once the column is fully behind the player's trailing edge
		passed, spawned := g.obstacles.Update(effDtMs, speed, dv, g.world, PlayerX-effR)
		for _, o := range spawned {
			g.collectibles.TrySpawnCluster(o)
		}
		g.dodges += len(g.creatures.Update(effDtMs, speed, dv, g.level, PlayerX, py))
		g.handlePasses(passed, py, effR)
		g.handleCoins(g.collectibles.Update(effDtMs, speed, player, mods.Magnet))
		g.handlePowerups(g.powerups.Update(effDtMs, speed, g.clockMs, player))
		g.powerups.MaybeSpawn(g.clockMs, g.score)
	}

	g.combo.Update(g.clockMs)
	if c := g.combo.Count(); c > g.maxCombo {
		g.maxCombo = c
	}

	// A single shield absorbs at most one lethal event per frame: once
	// consumed here, a second hit in the same frame still ends the run.
	absorbed := false

	// Boundary check
	if py-effR < 0 || py+effR > WorldH {
		switch {
		case g.rules.Mode.Bouncy:
			g.bounce(effR)
		case g.powerups.ConsumeShield():
			g.shieldUsed = true
			absorbed = true
			g.settleAtBoundary(effR)
		default:
			g.endRun()
		}
	}

	// Hazard collision
	if g.phase == core.PhasePlaying && !mods.Ghost {
		fudge := g.diff.Fudge(dv)
		if g.obstacles.Collides(player, fudge) || g.creatures.Collides(player, fudge) {
			if !absorbed && g.powerups.ConsumeShield() {
				g.shieldUsed = true
			} else {
				g.endRun()
			}
		}
	}

	return core.StepResult{State: g.State()}
}

// advanceGravity flips the gravity sign on the run's schedule. Gravity lock
// suspends the timer entirely; Chaotic mode layers random flips over the
// scheduled cadence once a minimum spacing has elapsed.
func (g *Game) advanceGravity(effDtMs, dv float64, mods Modifiers) {
	if mods.GravityLock {
		return
	}
	g.sinceFlipMs += effDtMs

	flipMs := g.diff.FlipMs(dv, g.rules.FlipEveryMs) * g.rules.Mode.FlipMul
	if g.sinceFlipMs >= flipMs {
		g.gravityDir = -g.gravityDir
		g.sinceFlipMs = 0
	}

	if g.rules.Mode.Chaos &&
		g.sinceFlipMs >= g.rules.Mode.ChaosMinMs &&
		g.rng.Float64() < g.rules.Mode.ChaosChance {
		g.gravityDir = -g.gravityDir
		g.sinceFlipMs = 0
	}
}

// flap applies the one-button impulse against the current gravity.
func (g *Game) flap() {
	g.velY += -g.gravityDir * g.cfg.Physics.FlapImpulse
	g.velY = core.ClampF(g.velY, -g.cfg.Physics.MaxFallSpeed, g.cfg.Physics.MaxFallSpeed)
	g.flaps++
}

// integratePlayer advances the player's vertical motion. Modes with an
// ambient wobble feed it in as extra acceleration so it compounds with
// gravity like any other force.
func (g *Game) integratePlayer(effDtMs float64) {
	dt := effDtMs / 1000
	g.velY += g.gravityDir * g.cfg.Physics.Gravity * dt
	if amp := g.rules.Mode.SineAmp; amp > 0 {
		w := 2 * math.Pi / g.rules.Mode.SinePeriodMs
		g.velY += g.cfg.Physics.Gravity * amp * math.Sin(g.clockMs*w) * dt
	}
	g.velY = core.ClampF(g.velY, -g.cfg.Physics.MaxFallSpeed, g.cfg.Physics.MaxFallSpeed)
	g.playerY += g.velY * dt
}

// bounce reflects the player off a boundary with damping.
func (g *Game) bounce(effR float64) {
	if g.playerY < effR+1 {
		g.playerY = effR + 1
	}
	if g.playerY > WorldH-effR-1 {
		g.playerY = WorldH - effR - 1
	}
	g.velY = -g.velY * bounceDamping
}

// settleAtBoundary parks the player just inside the wall after a shield save.
func (g *Game) settleAtBoundary(effR float64) {
	g.playerY = core.ClampF(g.playerY, effR+1, WorldH-effR-1)
	g.velY = 0
}

// handlePasses credits obstacle passes: score, combo, near-miss bonuses,
// milestone bonuses, and level-ups.
func (g *Game) handlePasses(passed []*Obstacle, py, effR float64) {
	for _, o := range passed {
		g.totalPasses++
		g.passesInLevel++
		g.score++
		g.combo.Hit(g.clockMs)

		// Threading the needle pays extra
		clearance := o.Gap/2 - math.Abs(py-o.GapY) - effR
		if clearance >= 0 && clearance < g.cfg.Collectibles.NearMissDistance {
			g.nearMisses++
			g.coins += g.cfg.Collectibles.NearMissBonus
		}

		if g.totalPasses%5 == 0 {
			g.score += g.combo.Multiplier()
		}

		if g.passesInLevel >= g.diff.LevelSize() {
			g.level++
			g.passesInLevel = 0
			g.world = WorldForLevel(g.level)
			g.obstacles.OnLevelUp()
		}
	}
}

// handleCoins banks collected coins at the current combo multiplier.
func (g *Game) handleCoins(collected []CoinKind) {
	for _, kind := range collected {
		g.combo.Hit(g.clockMs)
		g.coins += kind.Value() * g.combo.Multiplier()
	}
}

// handlePowerups tracks collection stats; activation already happened
// inside the powerup manager.
func (g *Game) handlePowerups(collected []PowerupKind) {
	for _, kind := range collected {
		g.powerupsTaken++
		g.powerupKinds[kind] = true
	}
}

// endRun transitions to game over exactly once and freezes the summary.
func (g *Game) endRun() {
	if g.phase == core.PhaseGameOver {
		return
	}
	g.phase = core.PhaseGameOver

	kinds := make([]string, 0, len(g.powerupKinds))
	for k := PowerupKind(0); k < powerupCount; k++ {
		if g.powerupKinds[k] {
			kinds = append(kinds, k.String())
		}
	}

	g.summary = &RunSummary{
		Score:           g.score,
		Coins:           g.coins,
		MaxCombo:        g.maxCombo,
		DurationMs:      g.clockMs,
		ObstaclesPassed: g.totalPasses,
		CreaturesDodged: g.dodges,
		NearMisses:      g.nearMisses,
		Flaps:           g.flaps,
		PowerupsTaken:   g.powerupsTaken,
		PowerupKinds:    kinds,
		ShieldUsed:      g.shieldUsed,
		Level:           g.level,
		Mode:            g.rules.Mode.Name,
		Seed:            g.rules.Seed,
	}
}

// Summary returns the finished run's summary, or nil while the run is live.
func (g *Game) Summary() *RunSummary {
	return g.summary
}

// State returns the current game state for the platform layer.
func (g *Game) State() core.GameState {
	return core.GameState{
		Phase:    g.phase,
		Score:    g.score,
		Coins:    g.coins,
		Level:    g.level,
		GameOver: g.phase == core.PhaseGameOver,
		Paused:   g.phase == core.PhasePaused,
	}
}

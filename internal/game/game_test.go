package game

import (
	"testing"

	"github.com/vovakirdan/oddgravity/internal/config"
	"github.com/vovakirdan/oddgravity/internal/core"
)

func newTestGame(seed int64, modeName string) *Game {
	g := New(config.DefaultGameConfig(), DefaultRules(seed, modeName))
	g.Reset(core.RuntimeConfig{TickRate: 60, Seed: seed})
	return g
}

func flapFrame() core.InputFrame {
	in := core.NewInputFrame()
	in.Set(core.ActionFlap)
	return in
}

func TestGameDeterminism(t *testing.T) {
	// Identical seed and input sequence must produce identical runs
	seed := int64(12345)

	inputSequence := make([]core.InputFrame, 600)
	for i := range inputSequence {
		inputSequence[i] = core.NewInputFrame()
		if i%15 == 0 {
			inputSequence[i].Set(core.ActionFlap)
		}
	}

	run := func() (core.GameState, float64) {
		g := newTestGame(seed, "Classic")
		var state core.GameState
		for _, in := range inputSequence {
			state = g.Step(in).State
			if state.GameOver {
				break
			}
		}
		return state, g.clockMs
	}

	state1, clock1 := run()
	state2, clock2 := run()

	if state1.Score != state2.Score {
		t.Errorf("Determinism failed: scores differ. Run1=%d, Run2=%d", state1.Score, state2.Score)
	}
	if state1.Coins != state2.Coins {
		t.Errorf("Determinism failed: coins differ. Run1=%d, Run2=%d", state1.Coins, state2.Coins)
	}
	if clock1 != clock2 {
		t.Errorf("Determinism failed: clocks differ. Run1=%f, Run2=%f", clock1, clock2)
	}
}

func TestGameStartsReady(t *testing.T) {
	g := newTestGame(1, "Classic")

	if g.phase != core.PhaseReady {
		t.Errorf("New run should be ready, got %v", g.phase)
	}

	// Without a flap nothing moves
	startY := g.playerY
	for i := 0; i < 30; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.playerY != startY {
		t.Error("Player should not move before the first flap")
	}

	// First flap starts the run
	g.Step(flapFrame())
	if g.phase != core.PhasePlaying {
		t.Errorf("First flap should start the run, got %v", g.phase)
	}
}

func TestGameReset(t *testing.T) {
	g := newTestGame(42, "Classic")

	g.Step(flapFrame())
	for i := 0; i < 50; i++ {
		in := core.NewInputFrame()
		if i%10 == 0 {
			in.Set(core.ActionFlap)
		}
		g.Step(in)
	}

	g.Reset(core.RuntimeConfig{TickRate: 60, Seed: 42})

	if g.score != 0 {
		t.Errorf("Reset should clear score, got %d", g.score)
	}
	if g.coins != 0 {
		t.Errorf("Reset should clear coins, got %d", g.coins)
	}
	if g.phase != core.PhaseReady {
		t.Errorf("Reset should return to ready, got %v", g.phase)
	}
	if g.clockMs != 0 {
		t.Errorf("Reset should clear the clock, got %f", g.clockMs)
	}
	if g.level != 1 {
		t.Errorf("Reset should return to level 1, got %d", g.level)
	}
	if g.summary != nil {
		t.Error("Reset should clear the run summary")
	}
}

func TestGameFlapImpulse(t *testing.T) {
	g := newTestGame(1, "Classic")

	g.Step(flapFrame()) // Starts the run with an impulse

	// Gravity starts downward, so the kick must be upward
	if g.velY >= 0 {
		t.Errorf("Flap against downward gravity should set negative velocity, got %f", g.velY)
	}

	startY := g.playerY
	g.Step(core.NewInputFrame())
	if g.playerY >= startY {
		t.Errorf("Player should rise after flap, was %f, now %f", startY, g.playerY)
	}
}

func TestGameGravityPullsTowardSign(t *testing.T) {
	g := newTestGame(1, "Classic")
	g.Step(flapFrame())

	// Cancel the flap so only gravity acts
	g.velY = 0
	startY := g.playerY

	g.Step(core.NewInputFrame())

	if g.velY <= 0 {
		t.Errorf("Downward gravity should build positive velocity, got %f", g.velY)
	}
	if g.playerY <= startY {
		t.Errorf("Player should fall, was %f, now %f", startY, g.playerY)
	}
}

func TestGameGravityFlip(t *testing.T) {
	g := newTestGame(1, "Classic")
	g.Step(flapFrame())

	dir := g.gravityDir
	mods := Modifiers{PlayerScale: 1, TimeScale: 1}

	// One accumulated interval past the flip schedule must flip the sign.
	// At difficulty 0 the interval is base * slow scale = 2800 * 1.35.
	g.advanceGravity(3790, 0, mods)

	if g.gravityDir != -dir {
		t.Errorf("Gravity should have flipped from %v to %v", dir, -dir)
	}
	if g.sinceFlipMs != 0 {
		t.Errorf("Flip should reset the timer, got %f", g.sinceFlipMs)
	}
}

func TestGameChaoticKeepsScheduledFlips(t *testing.T) {
	g := newTestGame(1, "Chaotic")
	g.Step(flapFrame())

	// Silence the random layer so only the timer can flip
	g.rules.Mode.ChaosChance = 0

	dir := g.gravityDir
	mods := Modifiers{PlayerScale: 1, TimeScale: 1}

	g.advanceGravity(20000, 0, mods)

	if g.gravityDir != -dir {
		t.Error("Chaotic mode should keep the scheduled flip cadence")
	}

	// The random layer flips too once the minimum spacing has elapsed
	g.rules.Mode.ChaosChance = 1
	dir = g.gravityDir
	g.advanceGravity(g.rules.Mode.ChaosMinMs, 0, mods)

	if g.gravityDir != -dir {
		t.Error("Chaos roll should flip once the minimum spacing has elapsed")
	}
}

func TestGameGravityLockSuspendsFlips(t *testing.T) {
	g := newTestGame(1, "Classic")
	g.Step(flapFrame())

	dir := g.gravityDir
	locked := Modifiers{PlayerScale: 1, TimeScale: 1, GravityLock: true}

	g.advanceGravity(10000, 0, locked)

	if g.gravityDir != dir {
		t.Error("Gravity lock should suspend timed flips")
	}
	if g.sinceFlipMs != 0 {
		t.Error("Gravity lock should hold the flip timer")
	}
}

func TestGamePause(t *testing.T) {
	g := newTestGame(1, "Classic")
	g.Step(flapFrame())

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)

	g.Step(pause)
	if g.phase != core.PhasePaused {
		t.Errorf("Game should be paused, got %v", g.phase)
	}

	yBefore := g.playerY
	clockBefore := g.clockMs
	g.Step(core.NewInputFrame())

	if g.playerY != yBefore {
		t.Errorf("Position should not change while paused, was %f, now %f", yBefore, g.playerY)
	}
	if g.clockMs != clockBefore {
		t.Error("Clock should not advance while paused")
	}

	g.Step(pause)
	if g.phase != core.PhasePlaying {
		t.Errorf("Game should resume, got %v", g.phase)
	}
}

func TestGamePauseIgnoredWhenReady(t *testing.T) {
	g := newTestGame(1, "Classic")

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(pause)

	if g.phase != core.PhaseReady {
		t.Errorf("Pause before the run starts should be ignored, got %v", g.phase)
	}
}

func TestGameBoundaryDeath(t *testing.T) {
	g := newTestGame(1, "Classic")
	g.Step(flapFrame())

	// Force the player into the floor
	g.playerY = WorldH - 5
	g.velY = g.cfg.Physics.MaxFallSpeed

	result := g.Step(core.NewInputFrame())

	if !result.State.GameOver {
		t.Error("Hitting the boundary should end the run")
	}
	if g.Summary() == nil {
		t.Fatal("Game over should produce a run summary")
	}
	if g.Summary().Mode != "Classic" {
		t.Errorf("Summary mode = %q, expected Classic", g.Summary().Mode)
	}
}

func TestGameOverIsIdempotent(t *testing.T) {
	g := newTestGame(1, "Classic")
	g.Step(flapFrame())

	g.playerY = WorldH - 5
	g.velY = g.cfg.Physics.MaxFallSpeed
	g.Step(core.NewInputFrame())

	summary := g.Summary()
	score := g.score

	// Further steps change nothing
	for i := 0; i < 10; i++ {
		g.Step(flapFrame())
	}
	if g.Summary() != summary {
		t.Error("Summary should be built exactly once")
	}
	if g.score != score {
		t.Error("Score should freeze at game over")
	}
}

func TestGameBouncyReflects(t *testing.T) {
	g := newTestGame(1, "Bouncy")
	g.Step(flapFrame())

	g.playerY = WorldH - 5
	g.velY = 500

	result := g.Step(core.NewInputFrame())

	if result.State.GameOver {
		t.Fatal("Bouncy mode should survive boundary contact")
	}
	if g.velY >= 0 {
		t.Errorf("Boundary should reflect velocity upward, got %f", g.velY)
	}
	if g.playerY+g.cfg.Physics.PlayerRadius > WorldH {
		t.Errorf("Player should be clamped inside the world, y=%f", g.playerY)
	}
}

func TestGameShieldAbsorbsBoundary(t *testing.T) {
	g := newTestGame(1, "Classic")
	g.Step(flapFrame())

	g.powerups.shieldArmed = true
	g.playerY = WorldH - 5
	g.velY = g.cfg.Physics.MaxFallSpeed

	result := g.Step(core.NewInputFrame())

	if result.State.GameOver {
		t.Fatal("Armed shield should absorb the boundary hit")
	}
	if g.powerups.ShieldArmed() {
		t.Error("Shield should be consumed by the save")
	}
	if !g.shieldUsed {
		t.Error("Shield use should be recorded for the summary")
	}

	// A second hit without a shield is lethal
	g.playerY = WorldH - 5
	g.velY = g.cfg.Physics.MaxFallSpeed
	result = g.Step(core.NewInputFrame())
	if !result.State.GameOver {
		t.Error("Second boundary hit without a shield should end the run")
	}
}

func TestGameObstacleCollision(t *testing.T) {
	g := newTestGame(1, "Classic")
	g.Step(flapFrame())

	// Plant a wall on top of the player with the gap far away
	g.obstacles.obstacles = append(g.obstacles.obstacles, &Obstacle{
		X:     PlayerX - 40,
		Width: 80,
		GapY:  600,
		Gap:   120,
	})

	result := g.Step(core.NewInputFrame())

	if !result.State.GameOver {
		t.Error("Obstacle collision should end the run")
	}
}

func TestGameGhostSkipsHazards(t *testing.T) {
	g := newTestGame(1, "Classic")
	g.Step(flapFrame())

	g.powerups.apply(PowerGhost, g.clockMs)
	g.obstacles.obstacles = append(g.obstacles.obstacles, &Obstacle{
		X:     PlayerX - 40,
		Width: 80,
		GapY:  600,
		Gap:   120,
	})

	result := g.Step(core.NewInputFrame())

	if result.State.GameOver {
		t.Error("Ghost effect should skip hazard collision")
	}
}

func TestGamePassScoring(t *testing.T) {
	g := newTestGame(1, "Classic")
	g.Step(flapFrame())

	// Keep the player safely mid-world and hand-feed a pass
	g.playerY = 320
	g.velY = 0

	o := &Obstacle{X: PlayerX - 200, Width: 30, GapY: 320, Gap: 200}
	g.handlePasses([]*Obstacle{o}, 320, 12)

	if g.score != 1 {
		t.Errorf("Pass should score 1, got %d", g.score)
	}
	if g.combo.Count() != 1 {
		t.Errorf("Pass should feed the combo, count = %d", g.combo.Count())
	}
}

func TestGameFluxWobbleDrivesVelocity(t *testing.T) {
	g := newTestGame(1, "Flux")
	g.Step(flapFrame())

	if g.rules.Mode.SineAmp <= 0 {
		t.Fatal("Flux mode should carry a wobble")
	}

	g.clockMs = g.rules.Mode.SinePeriodMs / 4 // Wobble peak
	g.velY = 0
	g.playerY = 320
	g.integratePlayer(16)

	gravityOnly := g.gravityDir * g.cfg.Physics.Gravity * 16 / 1000
	if g.velY <= gravityOnly {
		t.Errorf("velY = %f, expected the wobble to add to gravity %f", g.velY, gravityOnly)
	}

	// The wobble lives in the velocity; the reported position is the real one
	if got := g.Snapshot().PlayerY; got != g.playerY {
		t.Errorf("Snapshot PlayerY = %f, expected physics position %f", got, g.playerY)
	}
}

func TestGamePassWaitsForTrailingEdge(t *testing.T) {
	g := newTestGame(1, "Classic")
	g.Step(flapFrame())
	g.freezeUntilMs = 0

	r := g.cfg.Physics.PlayerRadius
	o := &Obstacle{X: PlayerX - 32, Width: 30, GapY: 320, Gap: 400}
	g.obstacles.obstacles = append(g.obstacles.obstacles, o)

	// The column's right edge is behind the player's center but still
	// overlaps the player circle: no credit yet.
	g.playerY, g.velY = 320, 0
	g.Step(core.NewInputFrame())
	if g.score != 0 {
		t.Fatalf("Column overlapping the player credited early, score = %d", g.score)
	}

	for i := 0; i < 120 && g.score == 0; i++ {
		g.playerY, g.velY = 320, 0
		g.Step(core.NewInputFrame())
	}
	if g.score != 1 {
		t.Fatalf("Column never credited after clearing the player, score = %d", g.score)
	}
	if edge := o.X + o.Width; edge >= PlayerX-r {
		t.Errorf("Credited with right edge at %.1f, expected behind %.1f", edge, PlayerX-r)
	}
}

func TestGameLevelUp(t *testing.T) {
	g := newTestGame(1, "Classic")
	g.Step(flapFrame())

	size := g.diff.LevelSize()
	for i := 0; i < size; i++ {
		o := &Obstacle{X: 0, Width: 30, GapY: 320, Gap: 200}
		g.handlePasses([]*Obstacle{o}, 320, 12)
	}

	if g.level != 2 {
		t.Errorf("Level should advance after %d passes, got level %d", size, g.level)
	}
	if g.passesInLevel != 0 {
		t.Errorf("Level-up should reset the in-level counter, got %d", g.passesInLevel)
	}
	if g.world.Name != WorldForLevel(2).Name {
		t.Errorf("Level-up should rotate the world, got %q", g.world.Name)
	}
}

func TestGameNearMissBonus(t *testing.T) {
	g := newTestGame(1, "Classic")
	g.Step(flapFrame())
	coinsBefore := g.coins

	// Clearance of 28 units: gap/2 (60) - offset (20) - radius (12)
	o := &Obstacle{X: 0, Width: 30, GapY: 300, Gap: 120}
	g.handlePasses([]*Obstacle{o}, 320, 12)

	if g.nearMisses != 1 {
		t.Errorf("Tight pass should count as a near miss, got %d", g.nearMisses)
	}
	if g.coins != coinsBefore+g.cfg.Collectibles.NearMissBonus {
		t.Errorf("Near miss should grant bonus coins, got %d", g.coins)
	}

	// A comfortable pass through a wide gap is not a near miss
	o2 := &Obstacle{X: 0, Width: 30, GapY: 320, Gap: 300}
	g.handlePasses([]*Obstacle{o2}, 320, 12)
	if g.nearMisses != 1 {
		t.Errorf("Wide pass should not count as a near miss, got %d", g.nearMisses)
	}
}

func TestGameSummaryContents(t *testing.T) {
	g := newTestGame(7, "Classic")
	g.Step(flapFrame())

	g.powerups.apply(PowerMagnet, g.clockMs)
	g.handlePowerups([]PowerupKind{PowerMagnet})

	g.playerY = WorldH - 5
	g.velY = g.cfg.Physics.MaxFallSpeed
	g.Step(core.NewInputFrame())

	s := g.Summary()
	if s == nil {
		t.Fatal("Summary should exist after game over")
	}
	if s.Seed != 7 {
		t.Errorf("Summary seed = %d, expected 7", s.Seed)
	}
	if s.PowerupsTaken != 1 {
		t.Errorf("Summary powerups = %d, expected 1", s.PowerupsTaken)
	}
	if len(s.PowerupKinds) != 1 || s.PowerupKinds[0] != "magnet" {
		t.Errorf("Summary kinds = %v, expected [magnet]", s.PowerupKinds)
	}
	if s.DurationMs <= 0 {
		t.Error("Summary duration should be positive")
	}
}

package game

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/oddgravity/internal/config"
	"github.com/vovakirdan/oddgravity/internal/core"
)

func newTestObstacleField(seed int64) *ObstacleField {
	cfg := config.DefaultGameConfig()
	f := NewObstacleField(cfg.Obstacles, NewDifficulty(cfg.Difficulty))
	f.Reset(rand.New(rand.NewSource(seed)), WorldForLevel(1))
	return f
}

func TestObstacleFieldSeeding(t *testing.T) {
	f := newTestObstacleField(1)

	if len(f.Obstacles()) != f.cfg.InitialCount {
		t.Fatalf("Seeded %d obstacles, expected %d", len(f.Obstacles()), f.cfg.InitialCount)
	}

	prevX := 0.0
	for i, o := range f.Obstacles() {
		if o.X <= WorldW {
			t.Errorf("Obstacle %d should start off-screen, x = %f", i, o.X)
		}
		if o.X <= prevX {
			t.Errorf("Obstacles should be ordered left to right, %f after %f", o.X, prevX)
		}
		prevX = o.X

		if o.GapY < f.cfg.EdgeMargin || o.GapY > WorldH-f.cfg.EdgeMargin {
			t.Errorf("Gap center %f outside the edge margins", o.GapY)
		}
		if o.Gap < f.cfg.MinGap || o.Gap > f.cfg.MaxGap {
			t.Errorf("Gap height %f outside [%f, %f]", o.Gap, f.cfg.MinGap, f.cfg.MaxGap)
		}
	}
}

func TestObstacleFieldKeepsWindowFull(t *testing.T) {
	f := newTestObstacleField(1)

	// Scroll hard enough to cull everything; the field must refill
	f.Update(1000, 2000, 0, WorldForLevel(1), PlayerX)

	if len(f.Obstacles()) != f.cfg.KeepCount {
		t.Errorf("Field should hold %d obstacles, have %d", f.cfg.KeepCount, len(f.Obstacles()))
	}
}

func TestObstacleFieldReportsSpawns(t *testing.T) {
	f := newTestObstacleField(1)

	_, spawned := f.Update(1000, 2000, 0, WorldForLevel(1), PlayerX)
	if len(spawned) == 0 {
		t.Fatal("Culling should trigger replacement spawns")
	}
	for _, o := range spawned {
		if o.X <= WorldW {
			t.Errorf("Replacement should spawn off-screen, x = %f", o.X)
		}
	}
}

func TestObstaclePassOnce(t *testing.T) {
	f := newTestObstacleField(1)
	f.obstacles = append(f.obstacles, &Obstacle{X: 50, Width: 26, GapY: 320, Gap: 200})

	passed, _ := f.Update(16, 100, 0, WorldForLevel(1), PlayerX)
	if len(passed) != 1 {
		t.Fatalf("Expected one pass, got %d", len(passed))
	}
	if !passed[0].Passed {
		t.Error("Passed flag should be set")
	}

	// The same obstacle is never credited again
	passed, _ = f.Update(16, 100, 0, WorldForLevel(1), PlayerX)
	if len(passed) != 0 {
		t.Errorf("Obstacle credited twice, got %d passes", len(passed))
	}
}

func TestObstacleCollision(t *testing.T) {
	o := &Obstacle{X: 80, Width: 40, GapY: 320, Gap: 160}

	// Through the gap center: clear
	inGap := core.Circle{X: 100, Y: 320, R: 12}
	if o.Collides(inGap, 0) {
		t.Error("Player in the gap should not collide")
	}

	// Into the top column: hit
	inColumn := core.Circle{X: 100, Y: 100, R: 12}
	if !o.Collides(inColumn, 0) {
		t.Error("Player in the column should collide")
	}

	// A graze that the forgiveness margin absorbs
	graze := core.Circle{X: 100, Y: o.GapY - o.Gap/2 - 2, R: 12}
	if !o.Collides(graze, 0) {
		t.Error("Graze should collide with no forgiveness")
	}
	if o.Collides(graze, 20) {
		t.Error("Graze should survive with a generous margin")
	}
}

func TestObstacleLevelUpResetsSpacing(t *testing.T) {
	f := newTestObstacleField(1)

	if f.wallInLevel == 0 {
		t.Fatal("Seeding should count walls")
	}
	f.OnLevelUp()
	if f.wallInLevel != 0 {
		t.Errorf("Level-up should reset the wall counter, got %d", f.wallInLevel)
	}
}

func TestObstacleZigzagStaysInBounds(t *testing.T) {
	f := newTestObstacleField(1)
	o := &Obstacle{
		X: 500, Width: 26, GapY: 100, Gap: 160,
		Pattern: PatternZigzag, baseGapY: 100, drift: -1,
	}

	// Drive the gap toward the top margin for a long time
	for i := 0; i < 600; i++ {
		f.drift(o, 16)
	}

	min := f.cfg.EdgeMargin + o.Gap/2
	max := WorldH - f.cfg.EdgeMargin - o.Gap/2
	if o.GapY < min || o.GapY > max {
		t.Errorf("Zigzag gap %f escaped [%f, %f]", o.GapY, min, max)
	}
}

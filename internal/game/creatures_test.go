package game

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/oddgravity/internal/core"
)

func newTestCreatureField(seed int64) *CreatureField {
	f := NewCreatureField()
	f.Reset(rand.New(rand.NewSource(seed)))
	return f
}

func TestCreatureUnlockGating(t *testing.T) {
	tests := []struct {
		level   int
		allowed map[CreatureKind]bool
	}{
		{1, map[CreatureKind]bool{CreatureBubble: true, CreatureFish: true}},
		{3, map[CreatureKind]bool{
			CreatureBubble: true, CreatureFish: true,
			CreaturePterodactyl: true, CreatureShark: true,
		}},
	}

	for _, tt := range tests {
		f := newTestCreatureField(1)
		for i := 0; i < 100; i++ {
			f.spawn(tt.level)
		}
		for _, c := range f.Creatures() {
			if !tt.allowed[c.Kind] {
				t.Errorf("Level %d spawned locked kind %v", tt.level, c.Kind)
			}
		}
	}
}

func TestCreatureUnlockLevels(t *testing.T) {
	order := []CreatureKind{
		CreatureBubble, CreatureFish, CreaturePterodactyl, CreatureShark,
		CreatureDragon, CreatureAsteroid, CreatureGhost, CreatureLightning,
		CreatureUFO,
	}

	prev := 0
	for _, kind := range order {
		lvl := UnlockLevel(kind)
		if lvl < prev {
			t.Errorf("%v unlocks at %d, before the previous kind's %d", kind, lvl, prev)
		}
		prev = lvl
	}
	if UnlockLevel(CreatureUFO) != 8 {
		t.Errorf("UFO unlock = %d, expected 8", UnlockLevel(CreatureUFO))
	}
}

func TestCreatureSpawnTimer(t *testing.T) {
	f := newTestCreatureField(1)

	// The first hazard holds off for the opening seconds
	f.Update(4000, 100, 0, 1, PlayerX, 320)
	if len(f.Creatures()) != 0 {
		t.Fatalf("No creature expected before the first spawn window, have %d", len(f.Creatures()))
	}

	f.Update(1100, 100, 0, 1, PlayerX, 320)
	if len(f.Creatures()) != 1 {
		t.Fatalf("Expected the first spawn, have %d", len(f.Creatures()))
	}
	if c := f.Creatures()[0]; c.X <= WorldW-100 {
		t.Errorf("Creature should enter from the right, x = %f", c.X)
	}
}

func TestCreatureGhostAlphaGate(t *testing.T) {
	player := core.Circle{X: 100, Y: 100, R: 12}
	ghost := &Creature{Kind: CreatureGhost, X: 100, Y: 100, R: 14}

	ghost.Alpha = 0.3
	if behaviors[CreatureGhost].collides(ghost, player, 0) {
		t.Error("Faded ghost should be harmless")
	}

	ghost.Alpha = 0.9
	if !behaviors[CreatureGhost].collides(ghost, player, 0) {
		t.Error("Visible ghost should be solid")
	}
}

func TestCreatureLightningStrikeGate(t *testing.T) {
	// Player directly under the cloud, far below the body
	player := core.Circle{X: 100, Y: 500, R: 12}
	cloud := &Creature{Kind: CreatureLightning, X: 100, Y: 80, R: 14}

	if behaviors[CreatureLightning].collides(cloud, player, 0) {
		t.Error("Idle cloud should be harmless")
	}

	cloud.Active = true
	if !behaviors[CreatureLightning].collides(cloud, player, 0) {
		t.Error("Striking bolt should span the full height")
	}
}

func TestCreatureDragonFire(t *testing.T) {
	// Player ahead of the mouth, outside the body circle
	dragon := &Creature{Kind: CreatureDragon, X: 200, Y: 300, R: 18}
	player := core.Circle{X: 150, Y: 300, R: 12}

	if behaviors[CreatureDragon].collides(dragon, player, 0) {
		t.Error("Dragon between breaths should only hit with its body")
	}

	dragon.Active = true
	if !behaviors[CreatureDragon].collides(dragon, player, 0) {
		t.Error("Breathing dragon should hit through its fire cone")
	}
}

func TestCreatureUFOBeam(t *testing.T) {
	ufo := &Creature{Kind: CreatureUFO, X: 100, Y: 100, R: 14}
	below := core.Circle{X: 100, Y: 400, R: 12}

	if behaviors[CreatureUFO].collides(ufo, below, 0) {
		t.Error("Idle saucer should not reach below itself")
	}

	ufo.Active = true
	if !behaviors[CreatureUFO].collides(ufo, below, 0) {
		t.Error("Active beam should catch the player underneath")
	}
}

func TestCreatureSharkBody(t *testing.T) {
	shark := &Creature{Kind: CreatureShark, X: 100, Y: 100, R: 14}

	// The elongated body reaches further sideways than a circle would
	side := core.Circle{X: 100 + 14*1.5, Y: 100, R: 5}
	if !behaviors[CreatureShark].collides(shark, side, 0) {
		t.Error("Shark body should extend past its radius")
	}

	above := core.Circle{X: 100, Y: 100 - 14*2, R: 5}
	if behaviors[CreatureShark].collides(shark, above, 0) {
		t.Error("Shark body is flat, not tall")
	}
}

func TestCreatureDodgeOnce(t *testing.T) {
	f := newTestCreatureField(1)
	f.creatures = append(f.creatures, &Creature{Kind: CreatureFish, X: 60, Y: 320, R: 14, Alpha: 1, baseY: 320})

	dodged := f.Update(16, 100, 0, 1, PlayerX, 320)
	if len(dodged) != 1 {
		t.Fatalf("Expected one dodge, got %d", len(dodged))
	}

	dodged = f.Update(16, 100, 0, 1, PlayerX, 320)
	if len(dodged) != 0 {
		t.Errorf("Creature dodged twice, got %d", len(dodged))
	}
}

func TestCreatureCull(t *testing.T) {
	f := newTestCreatureField(1)
	f.creatures = append(f.creatures, &Creature{Kind: CreatureBubble, X: -85, Y: 320, R: 10, Alpha: 1, Passed: true})

	f.Update(16, 100, 0, 1, PlayerX, 320)
	if len(f.Creatures()) != 0 {
		t.Error("Off-screen creature should be culled")
	}
}

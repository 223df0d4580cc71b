package game

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/oddgravity/internal/config"
	"github.com/vovakirdan/oddgravity/internal/core"
)

func newTestPowerups(seed int64) *Powerups {
	p := NewPowerups(config.DefaultGameConfig().Powerups)
	p.Reset(rand.New(rand.NewSource(seed)))
	return p
}

func TestPowerupRefreshNotStack(t *testing.T) {
	p := newTestPowerups(1)

	p.apply(PowerSlowmo, 0)
	if r := p.Remaining(PowerSlowmo, 0); r != PowerSlowmo.DurationMs() {
		t.Errorf("Fresh effect remaining = %f, expected %f", r, PowerSlowmo.DurationMs())
	}

	// Re-collecting resets the expiry instead of adding a second effect
	p.apply(PowerSlowmo, 1000)
	if r := p.Remaining(PowerSlowmo, 1000); r != PowerSlowmo.DurationMs() {
		t.Errorf("Refreshed effect remaining = %f, expected %f", r, PowerSlowmo.DurationMs())
	}
	if len(p.effects) != 1 {
		t.Errorf("Refresh should not stack effects, have %d", len(p.effects))
	}
}

func TestPowerupExpiry(t *testing.T) {
	p := newTestPowerups(1)
	p.apply(PowerGhost, 0)

	if !p.Has(PowerGhost) {
		t.Fatal("Ghost should be active after apply")
	}

	// Run an update past the expiry with nothing to collect
	farPlayer := core.Circle{X: -1000, Y: -1000, R: 1}
	p.Update(16, 0, PowerGhost.DurationMs()+1, farPlayer)

	if p.Has(PowerGhost) {
		t.Error("Ghost should expire after its window")
	}
	if p.Remaining(PowerGhost, PowerGhost.DurationMs()+1) != 0 {
		t.Error("Expired effect should report zero remaining")
	}
}

func TestPowerupModifiers(t *testing.T) {
	p := newTestPowerups(1)

	m := p.Modifiers()
	if m.PlayerScale != 1 || m.TimeScale != 1 || m.Ghost || m.Magnet || m.GravityLock || m.Shield {
		t.Errorf("Idle modifiers should be neutral, got %+v", m)
	}

	p.apply(PowerShrink, 0)
	p.apply(PowerSlowmo, 0)
	p.apply(PowerMagnet, 0)
	p.apply(PowerGravityLock, 0)

	m = p.Modifiers()
	if m.PlayerScale != 0.5 {
		t.Errorf("Shrink scale = %f, expected 0.5", m.PlayerScale)
	}
	if m.TimeScale != 0.4 {
		t.Errorf("Slowmo time scale = %f, expected 0.4", m.TimeScale)
	}
	if !m.Magnet || !m.GravityLock {
		t.Errorf("Magnet and gravity lock should be set, got %+v", m)
	}
}

func TestPowerupShield(t *testing.T) {
	p := newTestPowerups(1)

	if p.ConsumeShield() {
		t.Error("Consuming without a shield should fail")
	}

	p.apply(PowerShield, 0)
	if !p.ShieldArmed() {
		t.Fatal("Shield should be armed after pickup")
	}
	if !p.Modifiers().Shield {
		t.Error("Armed shield should show in the modifiers snapshot")
	}

	if !p.ConsumeShield() {
		t.Error("First consume should succeed")
	}
	if p.ConsumeShield() {
		t.Error("Shield is single-use")
	}
}

func TestPowerupSpawnCooldown(t *testing.T) {
	p := newTestPowerups(1)

	// Inside the cooldown nothing spawns no matter the roll
	for now := 0.0; now < p.cfg.MinIntervalMs; now += 500 {
		p.MaybeSpawn(now, 1000)
	}
	if len(p.Pickups()) != 0 {
		t.Errorf("Cooldown should block spawns, have %d pickups", len(p.Pickups()))
	}
}

func TestPowerupSpawnEventually(t *testing.T) {
	p := newTestPowerups(1)

	// Past the cooldown the per-roll chance lands within a few seconds
	for now := p.cfg.MinIntervalMs; now < p.cfg.MinIntervalMs+60000; now += 16 {
		p.MaybeSpawn(now, 0)
		if len(p.Pickups()) > 0 {
			break
		}
	}

	if len(p.Pickups()) == 0 {
		t.Fatal("Spawn chance never landed")
	}
	pk := p.Pickups()[0]
	if pk.X <= WorldW {
		t.Errorf("Pickup should enter from the right, x = %f", pk.X)
	}
	if pk.Y < 80 || pk.Y > WorldH-80 {
		t.Errorf("Pickup y = %f outside the spawn band", pk.Y)
	}
}

func TestPowerupCollection(t *testing.T) {
	p := newTestPowerups(1)
	p.pickups = append(p.pickups, &Pickup{Kind: PowerMagnet, X: 100, Y: 100})

	player := core.Circle{X: 100, Y: 100, R: 12}
	collected := p.Update(16, 0, 0, player)

	if len(collected) != 1 || collected[0] != PowerMagnet {
		t.Fatalf("Expected magnet collection, got %v", collected)
	}
	if !p.Has(PowerMagnet) {
		t.Error("Collection should activate the effect")
	}
	if len(p.Pickups()) != 0 {
		t.Error("Collected pickup should be removed")
	}
}

func TestPowerupDriftAndCull(t *testing.T) {
	p := newTestPowerups(1)
	p.pickups = append(p.pickups, &Pickup{Kind: PowerGhost, X: 200, Y: 500})

	farPlayer := core.Circle{X: -1000, Y: -1000, R: 1}
	p.Update(1000, 100, 0, farPlayer)

	// Pickups drift slower than the world
	if x := p.Pickups()[0].X; x != 200-100*p.cfg.DriftFactor {
		t.Errorf("Drifted x = %f, expected %f", x, 200-100*p.cfg.DriftFactor)
	}

	p.pickups[0].X = -25
	p.Update(16, 0, 0, farPlayer)
	if len(p.Pickups()) != 0 {
		t.Error("Off-screen pickup should be culled")
	}
}

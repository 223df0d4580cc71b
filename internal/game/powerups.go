package game

import (
	"math/rand"

	"github.com/vovakirdan/oddgravity/internal/config"
	"github.com/vovakirdan/oddgravity/internal/core"
)

// PowerupKind identifies a powerup.
type PowerupKind int

const (
	PowerShield      PowerupKind = iota // Instant: arms a one-hit shield
	PowerShrink                         // Halves the player radius
	PowerSlowmo                         // Slows simulation time
	PowerGhost                          // Pass through hazards
	PowerMagnet                         // Pull nearby coins
	PowerGravityLock                    // Suspend timed gravity flips
	powerupCount
)

// String returns the powerup's name.
func (k PowerupKind) String() string {
	switch k {
	case PowerShield:
		return "shield"
	case PowerShrink:
		return "shrink"
	case PowerSlowmo:
		return "slowmo"
	case PowerGhost:
		return "ghost"
	case PowerMagnet:
		return "magnet"
	case PowerGravityLock:
		return "gravity_lock"
	default:
		return "unknown"
	}
}

// DurationMs returns the effect duration. Shield is instant and has none.
func (k PowerupKind) DurationMs() float64 {
	switch k {
	case PowerShrink:
		return 5000
	case PowerSlowmo:
		return 4000
	case PowerGhost:
		return 3000
	case PowerMagnet:
		return 6000
	case PowerGravityLock:
		return 5000
	default:
		return 0
	}
}

// powerupRarities drives the spawn draw. Cumulative roll, order matters.
var powerupRarities = []struct {
	kind   PowerupKind
	chance float64
}{
	{PowerShield, 0.3},
	{PowerShrink, 0.2},
	{PowerSlowmo, 0.15},
	{PowerGhost, 0.1},
	{PowerMagnet, 0.15},
	{PowerGravityLock, 0.1},
}

// Pickup is an uncollected powerup drifting with the world.
type Pickup struct {
	Kind PowerupKind
	X, Y float64
}

// effect is an active timed powerup.
type effect struct {
	kind    PowerupKind
	untilMs float64
}

// Modifiers is the per-frame snapshot of active effects. It is the only
// channel from powerups into the physics step.
type Modifiers struct {
	PlayerScale float64 // Radius multiplier
	TimeScale   float64 // Simulation time multiplier
	Ghost       bool    // Skip hazard collision
	Magnet      bool    // Coin attraction active
	GravityLock bool    // Timed flips suspended
	Shield      bool    // One-hit shield armed
}

// Powerups manages pickup spawning, drift, collection, and active effects.
type Powerups struct {
	cfg     config.PowerupsConfig
	pickups []*Pickup
	effects []*effect
	rng     *rand.Rand

	lastSpawnMs float64
	shieldArmed bool
}

// NewPowerups creates a powerup manager. Call Reset before use.
func NewPowerups(cfg config.PowerupsConfig) *Powerups {
	return &Powerups{
		cfg:     cfg,
		pickups: make([]*Pickup, 0, 4),
		effects: make([]*effect, 0, 4),
	}
}

// Reset clears pickups, effects, and the shield.
func (p *Powerups) Reset(rng *rand.Rand) {
	p.pickups = p.pickups[:0]
	p.effects = p.effects[:0]
	p.rng = rng
	p.lastSpawnMs = 0
	p.shieldArmed = false
}

// MaybeSpawn rolls the spawn chance. The chance grows slowly with score and
// a cooldown keeps pickups spaced out.
func (p *Powerups) MaybeSpawn(nowMs float64, score int) {
	if nowMs-p.lastSpawnMs < p.cfg.MinIntervalMs {
		return
	}

	chance := p.cfg.BaseChance + core.ClampF(float64(score)/100, 0, p.cfg.ScoreChanceCap)
	if p.rng.Float64() >= chance {
		return
	}

	margin := 80.0
	p.pickups = append(p.pickups, &Pickup{
		Kind: p.rollKind(),
		X:    WorldW + 30,
		Y:    margin + p.rng.Float64()*(WorldH-2*margin),
	})
	p.lastSpawnMs = nowMs
}

// rollKind draws a powerup kind by rarity.
func (p *Powerups) rollKind() PowerupKind {
	roll := p.rng.Float64()
	acc := 0.0
	for _, r := range powerupRarities {
		acc += r.chance
		if roll < acc {
			return r.kind
		}
	}
	return PowerShield
}

// Update drifts pickups (slower than obstacles, so they linger), collects
// overlapping ones, and culls off-screen ones. Collected kinds are applied
// immediately and returned for stat tracking.
func (p *Powerups) Update(dtMs, speed, nowMs float64, player core.Circle) []PowerupKind {
	dx := speed * p.cfg.DriftFactor * dtMs / 1000
	var collected []PowerupKind

	alive := p.pickups[:0]
	for _, pk := range p.pickups {
		pk.X -= dx

		reach := core.Circle{X: player.X, Y: player.Y, R: player.R + p.cfg.CollectRadius}
		if reach.ContainsPoint(pk.X, pk.Y) {
			p.apply(pk.Kind, nowMs)
			collected = append(collected, pk.Kind)
			continue
		}

		if pk.X > -20 {
			alive = append(alive, pk)
		}
	}
	p.pickups = alive

	p.expire(nowMs)
	return collected
}

// apply activates a collected powerup. Re-collecting a timed effect
// refreshes its expiry rather than stacking.
func (p *Powerups) apply(kind PowerupKind, nowMs float64) {
	if kind == PowerShield {
		p.shieldArmed = true
		return
	}

	until := nowMs + kind.DurationMs()
	for _, e := range p.effects {
		if e.kind == kind {
			e.untilMs = until
			return
		}
	}
	p.effects = append(p.effects, &effect{kind: kind, untilMs: until})
}

// expire drops effects whose window has lapsed.
func (p *Powerups) expire(nowMs float64) {
	active := p.effects[:0]
	for _, e := range p.effects {
		if e.untilMs > nowMs {
			active = append(active, e)
		}
	}
	p.effects = active
}

// Has returns true if the given timed effect is active.
func (p *Powerups) Has(kind PowerupKind) bool {
	for _, e := range p.effects {
		if e.kind == kind {
			return true
		}
	}
	return false
}

// Remaining returns ms left on an effect, or 0 if inactive.
func (p *Powerups) Remaining(kind PowerupKind, nowMs float64) float64 {
	for _, e := range p.effects {
		if e.kind == kind {
			if left := e.untilMs - nowMs; left > 0 {
				return left
			}
		}
	}
	return 0
}

// ShieldArmed returns true if a shield is waiting to absorb a hit.
func (p *Powerups) ShieldArmed() bool {
	return p.shieldArmed
}

// ConsumeShield uses up an armed shield. Returns false if none was armed.
func (p *Powerups) ConsumeShield() bool {
	if !p.shieldArmed {
		return false
	}
	p.shieldArmed = false
	return true
}

// Modifiers snapshots the active effects for this frame.
func (p *Powerups) Modifiers() Modifiers {
	m := Modifiers{PlayerScale: 1, TimeScale: 1, Shield: p.shieldArmed}
	for _, e := range p.effects {
		switch e.kind {
		case PowerShrink:
			m.PlayerScale = 0.5
		case PowerSlowmo:
			m.TimeScale = 0.4
		case PowerGhost:
			m.Ghost = true
		case PowerMagnet:
			m.Magnet = true
		case PowerGravityLock:
			m.GravityLock = true
		}
	}
	return m
}

// Pickups returns the live pickup slice.
func (p *Powerups) Pickups() []*Pickup {
	return p.pickups
}

// ActiveEffects returns the kinds currently active, with remaining ms.
func (p *Powerups) ActiveEffects(nowMs float64) map[PowerupKind]float64 {
	out := make(map[PowerupKind]float64, len(p.effects))
	for _, e := range p.effects {
		if left := e.untilMs - nowMs; left > 0 {
			out[e.kind] = left
		}
	}
	return out
}

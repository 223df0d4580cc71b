package game

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/oddgravity/internal/core"
)

// CreatureKind identifies a hazard species.
type CreatureKind int

const (
	CreatureBubble CreatureKind = iota
	CreatureFish
	CreaturePterodactyl
	CreatureShark
	CreatureDragon
	CreatureAsteroid
	CreatureGhost
	CreatureLightning
	CreatureUFO
)

// String returns the creature's name.
func (k CreatureKind) String() string {
	switch k {
	case CreatureBubble:
		return "bubble"
	case CreatureFish:
		return "fish"
	case CreaturePterodactyl:
		return "pterodactyl"
	case CreatureShark:
		return "shark"
	case CreatureDragon:
		return "dragon"
	case CreatureAsteroid:
		return "asteroid"
	case CreatureGhost:
		return "ghost"
	case CreatureLightning:
		return "lightning"
	case CreatureUFO:
		return "ufo"
	default:
		return "unknown"
	}
}

// Creature is a single live hazard.
type Creature struct {
	Kind   CreatureKind
	X, Y   float64
	VX, VY float64
	R      float64 // Body radius

	Angle  float64 // Asteroid rotation, radians
	Alpha  float64 // Ghost visibility in [0.2, 1]
	Active bool    // Strike/beam/breath window is live
	Passed bool    // Player has dodged past this creature

	baseY   float64 // Swim/wobble anchor
	phase   float64 // Motion phase in ms
	timerMs float64 // Behavior state countdown
	cycleMs float64 // Current cycle length for randomized timers
}

// creatureCtx carries the per-frame inputs behaviors may read.
type creatureCtx struct {
	rng     *rand.Rand
	playerY float64
	speed   float64 // Current scroll speed
}

// behavior bundles a creature kind's motion and collision rules.
type behavior struct {
	unlockLevel int
	weight      int
	update      func(c *Creature, ctx *creatureCtx, dtMs float64)
	collides    func(c *Creature, player core.Circle, fudge float64) bool
}

// circleHit is the default body test, shrunk by the forgiveness margin.
func circleHit(c *Creature, player core.Circle, fudge float64) bool {
	r := c.R - fudge
	if r < 1 {
		r = 1
	}
	return core.Circle{X: c.X, Y: c.Y, R: r}.Intersects(player)
}

// Dragon fire and UFO beam extents.
const (
	dragonFireLen  = 70.0
	dragonFireHalf = 10.0
	beamHalfWidth  = 14.0
	boltHalfWidth  = 6.0
)

var behaviors = map[CreatureKind]behavior{
	CreatureBubble: {
		unlockLevel: 1,
		weight:      20,
		update: func(c *Creature, _ *creatureCtx, dtMs float64) {
			c.phase += dtMs
			c.Y -= 20 * dtMs / 1000 // Slow float upward
			c.X += 8 * math.Sin(2*math.Pi*c.phase/1800) * dtMs / 1000
		},
		collides: circleHit,
	},
	CreatureFish: {
		unlockLevel: 1,
		weight:      18,
		update: func(c *Creature, _ *creatureCtx, dtMs float64) {
			c.phase += dtMs
			c.Y = c.baseY + 24*math.Sin(2*math.Pi*c.phase/1400)
		},
		collides: circleHit,
	},
	CreaturePterodactyl: {
		unlockLevel: 2,
		weight:      14,
		update: func(c *Creature, ctx *creatureCtx, dtMs float64) {
			// Steers toward the player's altitude, capped dive speed
			dy := ctx.playerY - c.Y
			c.VY += core.ClampF(dy, -1, 1) * 140 * dtMs / 1000
			c.VY = core.ClampF(c.VY, -90, 90)
			c.Y += c.VY * dtMs / 1000
		},
		collides: circleHit,
	},
	CreatureShark: {
		unlockLevel: 3,
		weight:      12,
		update: func(c *Creature, ctx *creatureCtx, dtMs float64) {
			c.timerMs -= dtMs
			if c.Active {
				// Mid-lunge: extra forward burst
				c.X -= 180 * dtMs / 1000
				if c.timerMs <= 0 {
					c.Active = false
					c.timerMs = 1200 + ctx.rng.Float64()*800
				}
			} else if c.timerMs <= 0 {
				c.Active = true
				c.timerMs = 300
			}
		},
		collides: func(c *Creature, player core.Circle, fudge float64) bool {
			// Elongated body
			body := core.NewRect(c.X-c.R*1.6, c.Y-c.R*0.7, c.R*3.2, c.R*1.4)
			return body.Inset(fudge).IntersectsCircle(player)
		},
	},
	CreatureDragon: {
		unlockLevel: 4,
		weight:      10,
		update: func(c *Creature, ctx *creatureCtx, dtMs float64) {
			c.timerMs -= dtMs
			if c.timerMs <= 0 {
				if c.Active {
					c.Active = false
					c.cycleMs = 2000 + ctx.rng.Float64()*1000
					c.timerMs = c.cycleMs
				} else {
					c.Active = true
					c.timerMs = 1500 // Breath burns for 1.5s
				}
			}
		},
		collides: func(c *Creature, player core.Circle, fudge float64) bool {
			if circleHit(c, player, fudge) {
				return true
			}
			if !c.Active {
				return false
			}
			// Fire cone ahead of the mouth, toward the player
			fire := core.NewRect(c.X-dragonFireLen, c.Y-dragonFireHalf, dragonFireLen, dragonFireHalf*2)
			return fire.Inset(fudge).IntersectsCircle(player)
		},
	},
	CreatureAsteroid: {
		unlockLevel: 5,
		weight:      12,
		update: func(c *Creature, _ *creatureCtx, dtMs float64) {
			c.Angle += 2.4 * dtMs / 1000
		},
		collides: circleHit,
	},
	CreatureGhost: {
		unlockLevel: 6,
		weight:      10,
		update: func(c *Creature, _ *creatureCtx, dtMs float64) {
			c.phase += dtMs
			// Fade between 0.2 and 1.0
			c.Alpha = 0.6 + 0.4*math.Sin(2*math.Pi*c.phase/2400)
			c.Alpha = core.ClampF(c.Alpha, 0.2, 1)
		},
		collides: func(c *Creature, player core.Circle, fudge float64) bool {
			// Only solid enough to kill while mostly visible
			if c.Alpha <= 0.5 {
				return false
			}
			return circleHit(c, player, fudge)
		},
	},
	CreatureLightning: {
		unlockLevel: 7,
		weight:      8,
		update: func(c *Creature, ctx *creatureCtx, dtMs float64) {
			c.timerMs -= dtMs
			if c.Active {
				if c.timerMs <= 0 {
					c.Active = false
					c.timerMs = 2000 + ctx.rng.Float64()*1500
				}
			} else if c.timerMs <= 0 {
				c.Active = true
				c.timerMs = 200 // Strike flash
			}
		},
		collides: func(c *Creature, player core.Circle, fudge float64) bool {
			if !c.Active {
				return false
			}
			// Full-height bolt at the cloud's x
			bolt := core.NewRect(c.X-boltHalfWidth, 0, boltHalfWidth*2, WorldH)
			return bolt.Inset(fudge).IntersectsCircle(player)
		},
	},
	CreatureUFO: {
		unlockLevel: 8,
		weight:      8,
		update: func(c *Creature, ctx *creatureCtx, dtMs float64) {
			c.phase += dtMs
			c.Y = c.baseY + 16*math.Sin(2*math.Pi*c.phase/2000)
			c.timerMs -= dtMs
			if c.timerMs <= 0 {
				if c.Active {
					c.Active = false
					c.timerMs = 2000 + ctx.rng.Float64()*1000
				} else {
					c.Active = true
					c.timerMs = 1000
				}
			}
		},
		collides: func(c *Creature, player core.Circle, fudge float64) bool {
			if circleHit(c, player, fudge) {
				return true
			}
			if !c.Active {
				return false
			}
			// Tractor beam column below the saucer
			beam := core.NewRect(c.X-beamHalfWidth, c.Y, beamHalfWidth*2, WorldH-c.Y)
			return beam.Inset(fudge).IntersectsCircle(player)
		},
	},
}

// CreatureField manages hazard spawning and updates.
type CreatureField struct {
	creatures []*Creature
	rng       *rand.Rand
	spawnInMs float64
}

// NewCreatureField creates a creature field. Call Reset before use.
func NewCreatureField() *CreatureField {
	return &CreatureField{creatures: make([]*Creature, 0, 8)}
}

// Reset clears all creatures and arms the spawn timer.
func (f *CreatureField) Reset(rng *rand.Rand) {
	f.creatures = f.creatures[:0]
	f.rng = rng
	f.spawnInMs = 5000
}

// Update advances every creature, culls off-screen ones, and spawns new
// hazards on a difficulty-shrinking interval. Returns creatures the player
// newly dodged past this frame.
func (f *CreatureField) Update(dtMs, speed, dv float64, level int, playerX, playerY float64) []*Creature {
	ctx := &creatureCtx{rng: f.rng, playerY: playerY, speed: speed}
	dx := speed * dtMs / 1000

	var dodged []*Creature
	for _, c := range f.creatures {
		c.X -= (dx + c.VX*dtMs/1000)
		behaviors[c.Kind].update(c, ctx, dtMs)

		if !c.Passed && c.X+c.R < playerX {
			c.Passed = true
			dodged = append(dodged, c)
		}
	}

	alive := f.creatures[:0]
	for _, c := range f.creatures {
		if c.X > -80 {
			alive = append(alive, c)
		}
	}
	f.creatures = alive

	f.spawnInMs -= dtMs
	if f.spawnInMs <= 0 {
		f.spawn(level)
		f.spawnInMs = core.Lerp(6000, 2500, dv) * (0.75 + f.rng.Float64()*0.5)
	}

	return dodged
}

// spawn rolls a weighted draw among kinds unlocked at the given level.
// No eligible kind means no spawn.
func (f *CreatureField) spawn(level int) {
	total := 0
	for _, b := range behaviors {
		if b.unlockLevel <= level {
			total += b.weight
		}
	}
	if total == 0 {
		return
	}

	roll := f.rng.Intn(total)
	var kind CreatureKind
	found := false
	// Iterate kinds in declaration order for deterministic draws
	for k := CreatureBubble; k <= CreatureUFO; k++ {
		b := behaviors[k]
		if b.unlockLevel > level {
			continue
		}
		roll -= b.weight
		if roll < 0 {
			kind = k
			found = true
			break
		}
	}
	if !found {
		return
	}

	margin := 60.0
	y := margin + f.rng.Float64()*(WorldH-2*margin)

	c := &Creature{
		Kind:  kind,
		X:     WorldW + 40,
		Y:     y,
		R:     14,
		Alpha: 1,
		baseY: y,
	}

	switch kind {
	case CreatureBubble:
		c.R = 10
	case CreatureShark:
		c.timerMs = 1200 + f.rng.Float64()*800
	case CreatureDragon:
		c.R = 18
		c.cycleMs = 2000 + f.rng.Float64()*1000
		c.timerMs = c.cycleMs
	case CreatureAsteroid:
		c.R = 16
	case CreatureLightning:
		c.VX = -20 // Clouds drift a little faster than the world
		c.timerMs = 2000 + f.rng.Float64()*1500
	case CreatureUFO:
		c.timerMs = 2000 + f.rng.Float64()*1000
	}

	f.creatures = append(f.creatures, c)
}

// Creatures returns the live creature slice.
func (f *CreatureField) Creatures() []*Creature {
	return f.creatures
}

// Collides tests the player against every live creature.
func (f *CreatureField) Collides(player core.Circle, fudge float64) bool {
	for _, c := range f.creatures {
		if behaviors[c.Kind].collides(c, player, fudge) {
			return true
		}
	}
	return false
}

// UnlockLevel returns the level at which a creature kind starts spawning.
func UnlockLevel(kind CreatureKind) int {
	return behaviors[kind].unlockLevel
}

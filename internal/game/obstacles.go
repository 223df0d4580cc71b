package game

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/oddgravity/internal/config"
	"github.com/vovakirdan/oddgravity/internal/core"
)

// MovePattern describes how an obstacle's gap drifts while scrolling.
type MovePattern int

const (
	PatternStatic MovePattern = iota
	PatternSine               // Gap bobs up and down
	PatternZigzag             // Gap drifts linearly, reversing at margins
)

// Landmark tags an obstacle with a cosmetic silhouette for the renderer.
// Higher tiers enter the pool as the run progresses.
type Landmark int

const (
	LandmarkColumn Landmark = iota
	LandmarkSpire
	LandmarkArch
	LandmarkCrystal
	LandmarkRuin
	landmarkCount
)

// Pattern drift tuning.
const (
	sineAmplitude  = 28.0
	sinePeriodMs   = 2600.0
	zigzagSpeed    = 40.0 // World units per second
	patternMaxRate = 0.35 // Max chance of a moving gap at full difficulty
)

// Obstacle is a vertical column pair with a passable gap.
type Obstacle struct {
	X        float64 // Left edge
	Width    float64
	GapY     float64 // Gap center
	Gap      float64 // Gap height
	Pattern  MovePattern
	Landmark Landmark
	Passed   bool // Monotonic: set once when the player clears it

	baseGapY float64 // Anchor for pattern drift
	phase    float64 // Pattern phase in ms
	drift    float64 // Zigzag direction, +1 or -1
}

// TopRect returns the hitbox of the column above the gap.
func (o *Obstacle) TopRect() core.Rect {
	return core.NewRect(o.X, 0, o.Width, o.GapY-o.Gap/2)
}

// BottomRect returns the hitbox of the column below the gap.
func (o *Obstacle) BottomRect() core.Rect {
	bottom := o.GapY + o.Gap/2
	return core.NewRect(o.X, bottom, o.Width, WorldH-bottom)
}

// Collides tests the player circle against both columns, with hitboxes
// shrunk by the forgiveness margin.
func (o *Obstacle) Collides(player core.Circle, fudge float64) bool {
	return o.TopRect().Inset(fudge).IntersectsCircle(player) ||
		o.BottomRect().Inset(fudge).IntersectsCircle(player)
}

// ObstacleField manages the rolling window of gap obstacles.
type ObstacleField struct {
	obstacles []*Obstacle
	rng       *rand.Rand
	cfg       config.ObstaclesConfig
	diff      *Difficulty

	wallInLevel  int // Walls spawned since the last level boundary
	totalSpawned int
}

// NewObstacleField creates an obstacle field. Call Reset before use.
func NewObstacleField(cfg config.ObstaclesConfig, diff *Difficulty) *ObstacleField {
	return &ObstacleField{
		obstacles: make([]*Obstacle, 0, cfg.KeepCount+2),
		cfg:       cfg,
		diff:      diff,
	}
}

// Reset clears the field and seeds the initial wall of obstacles off-screen
// to the right, so the first seconds of a run are already populated.
func (f *ObstacleField) Reset(rng *rand.Rand, world World) {
	f.obstacles = f.obstacles[:0]
	f.rng = rng
	f.wallInLevel = 0
	f.totalSpawned = 0

	x := WorldW + 120.0
	for i := 0; i < f.cfg.InitialCount; i++ {
		f.spawnAt(x, 0, world)
		x += f.diff.SpawnDist(0, f.wallInLevel)
	}
}

// OnLevelUp resets the per-level wall counter so early-level spacing
// generosity applies again.
func (f *ObstacleField) OnLevelUp() {
	f.wallInLevel = 0
}

// Update scrolls obstacles left, applies gap drift, culls off-screen columns,
// and spawns replacements. Returns obstacles newly passed this frame and
// obstacles newly spawned, so callers can attach collectibles.
func (f *ObstacleField) Update(dtMs, speed, dv float64, world World, playerX float64) (passed, spawned []*Obstacle) {
	dx := speed * dtMs / 1000

	for _, o := range f.obstacles {
		o.X -= dx
		f.drift(o, dtMs)

		if !o.Passed && o.X+o.Width < playerX {
			o.Passed = true
			passed = append(passed, o)
		}
	}

	// Cull fully off-screen columns
	alive := f.obstacles[:0]
	for _, o := range f.obstacles {
		if o.X+o.Width > -4 {
			alive = append(alive, o)
		}
	}
	f.obstacles = alive

	// Keep the window full
	for len(f.obstacles) < f.cfg.KeepCount {
		x := WorldW + 60.0
		if n := len(f.obstacles); n > 0 {
			last := f.obstacles[n-1]
			x = last.X + f.diff.SpawnDist(dv, f.wallInLevel)
		}
		spawned = append(spawned, f.spawnAt(x, dv, world))
	}

	return passed, spawned
}

// drift applies the obstacle's movement pattern to its gap center.
func (f *ObstacleField) drift(o *Obstacle, dtMs float64) {
	switch o.Pattern {
	case PatternSine:
		o.phase += dtMs
		o.GapY = o.baseGapY + sineAmplitude*math.Sin(2*math.Pi*o.phase/sinePeriodMs)
	case PatternZigzag:
		o.GapY += o.drift * zigzagSpeed * dtMs / 1000
		min := f.cfg.EdgeMargin + o.Gap/2
		max := WorldH - f.cfg.EdgeMargin - o.Gap/2
		if o.GapY < min {
			o.GapY = min
			o.drift = 1
		} else if o.GapY > max {
			o.GapY = max
			o.drift = -1
		}
	}
}

// spawnAt creates one obstacle at the given x for difficulty dv.
func (f *ObstacleField) spawnAt(x, dv float64, world World) *Obstacle {
	gap := f.diff.Gap(dv, world.GapBonus, f.cfg.MinGap, f.cfg.MaxGap)
	width := f.diff.ColumnWidth(dv, world.ColMul)

	gapMin := f.cfg.EdgeMargin
	gapMax := WorldH - f.cfg.EdgeMargin
	gapY := gapMin + f.rng.Float64()*(gapMax-gapMin)

	o := &Obstacle{
		X:        x,
		Width:    width,
		GapY:     gapY,
		Gap:      gap,
		Landmark: f.rollLandmark(),
		baseGapY: gapY,
		drift:    1,
	}
	if f.rng.Float64() < 0.5 {
		o.drift = -1
	}

	// Moving gaps become more common as difficulty rises
	if f.rng.Float64() < dv*patternMaxRate {
		if f.rng.Float64() < 0.5 {
			o.Pattern = PatternSine
		} else {
			o.Pattern = PatternZigzag
		}
	}

	f.obstacles = append(f.obstacles, o)
	f.wallInLevel++
	f.totalSpawned++
	return o
}

// rollLandmark draws a cosmetic shape; the pool widens as more walls spawn.
func (f *ObstacleField) rollLandmark() Landmark {
	pool := 2 + f.totalSpawned/20
	if pool > int(landmarkCount) {
		pool = int(landmarkCount)
	}
	return Landmark(f.rng.Intn(pool))
}

// Obstacles returns the live obstacle slice.
func (f *ObstacleField) Obstacles() []*Obstacle {
	return f.obstacles
}

// Collides tests the player against every live obstacle.
func (f *ObstacleField) Collides(player core.Circle, fudge float64) bool {
	for _, o := range f.obstacles {
		if o.Collides(player, fudge) {
			return true
		}
	}
	return false
}
